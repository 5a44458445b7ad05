package access

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotStruct indicates that the owner type is not a struct.
	ErrNotStruct = errors.New("not a struct type")

	// ErrFieldNotFound indicates that the struct has no field of that name.
	ErrFieldNotFound = errors.New("field not found")

	// ErrUnexported indicates that the field exists but cannot be accessed.
	ErrUnexported = errors.New("field is not exported")

	// ErrNilValue indicates a nil pointer on the way to the field.
	ErrNilValue = errors.New("nil value")

	// ErrIncompatible indicates that a value does not fit the field or owner type.
	ErrIncompatible = errors.New("incompatible type")

	// ErrNotAddressable indicates a write into a value that cannot be set.
	ErrNotAddressable = errors.New("value is not addressable")
)

// Op names the accessor operation that failed.
type Op string

const (
	OpResolve Op = "resolve"
	OpRead    Op = "read"
	OpWrite   Op = "write"
)

// Error reports a failed field resolution, read or write.
type Error struct {
	Op    Op
	Type  reflect.Type
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s.%s: %v", e.Op, TypeName(e.Type), e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// TypeName returns the short name of t, falling back to its full string for
// unnamed types.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}
