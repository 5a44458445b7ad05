package access

import (
	"fmt"
	"reflect"
)

// Field is a resolved, exported field of a struct type. It is immutable.
type Field struct {
	Owner reflect.Type // struct type declaring (or promoting) the field
	Name  string
	Type  reflect.Type

	index []int
}

// Resolve looks up the exported field name on owner, which may be a struct
// type or a pointer to one. Promoted fields of embedded structs resolve too.
func Resolve(owner reflect.Type, name string) (Field, error) {
	st := indirectType(owner)
	if st == nil || st.Kind() != reflect.Struct {
		return Field{}, &Error{Op: OpResolve, Type: owner, Field: name, Err: ErrNotStruct}
	}

	sf, ok := st.FieldByName(name)
	if !ok {
		return Field{}, &Error{Op: OpResolve, Type: st, Field: name, Err: ErrFieldNotFound}
	}

	if !sf.IsExported() {
		return Field{}, &Error{Op: OpResolve, Type: st, Field: name, Err: ErrUnexported}
	}

	return Field{Owner: st, Name: name, Type: sf.Type, index: sf.Index}, nil
}

// Fields lists the exported fields of owner in declaration order, promoted
// fields included and the embedded fields themselves excluded.
func Fields(owner reflect.Type) []Field {
	st := indirectType(owner)
	if st == nil || st.Kind() != reflect.Struct {
		return nil
	}

	var fields []Field

	for _, sf := range reflect.VisibleFields(st) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}

		fields = append(fields, Field{Owner: st, Name: sf.Name, Type: sf.Type, index: sf.Index})
	}

	return fields
}

// Names returns the names of Fields(owner).
func Names(owner reflect.Type) []string {
	fields := Fields(owner)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	return names
}

// IsZero reports whether f was never resolved.
func (f Field) IsZero() bool {
	return f.Owner == nil
}

// Equal reports whether f and other denote the same field of the same type.
func (f Field) Equal(other Field) bool {
	return f.Owner == other.Owner && f.Name == other.Name
}

// String renders the field as "Owner.Name".
func (f Field) String() string {
	if f.IsZero() {
		return "<none>"
	}

	return TypeName(f.Owner) + "." + f.Name
}

// Detailed renders the field with its package-qualified owner and type.
func (f Field) Detailed() string {
	if f.IsZero() {
		return "<none>"
	}

	return fmt.Sprintf("%s.%s (%s)", f.Owner, f.Name, f.Type)
}

// Read returns the current value of the field in obj, a struct or a pointer
// to one.
func (f Field) Read(obj reflect.Value) (reflect.Value, error) {
	obj, err := f.indirect(OpRead, obj)
	if err != nil {
		return reflect.Value{}, err
	}

	v, err := obj.FieldByIndexErr(f.index)
	if err != nil {
		// Nil embedded pointer on the promotion path.
		return reflect.Value{}, f.fail(OpRead, fmt.Errorf("%w: %v", ErrNilValue, err))
	}

	return v, nil
}

// Write stores value into the field of obj. An invalid value stores the zero
// value. Values of a named type sharing the field's kind are converted. Nil
// embedded pointers on the promotion path are allocated.
func (f Field) Write(obj reflect.Value, value reflect.Value) error {
	obj, err := f.indirect(OpWrite, obj)
	if err != nil {
		return err
	}

	dst := obj
	for i, x := range f.index {
		if i > 0 && dst.Kind() == reflect.Pointer {
			if dst.IsNil() {
				if !dst.CanSet() {
					return f.fail(OpWrite, ErrNotAddressable)
				}

				dst.Set(reflect.New(dst.Type().Elem()))
			}

			dst = dst.Elem()
		}

		dst = dst.Field(x)
	}

	if !dst.CanSet() {
		return f.fail(OpWrite, ErrNotAddressable)
	}

	switch {
	case !value.IsValid():
		dst.SetZero()
	case value.Type().AssignableTo(f.Type):
		dst.Set(value)
	case value.Kind() == f.Type.Kind() && value.Type().ConvertibleTo(f.Type):
		dst.Set(value.Convert(f.Type))
	default:
		return f.fail(OpWrite, fmt.Errorf("%w: %s is not assignable to %s", ErrIncompatible, value.Type(), f.Type))
	}

	return nil
}

func (f Field) indirect(op Op, obj reflect.Value) (reflect.Value, error) {
	for obj.Kind() == reflect.Pointer || obj.Kind() == reflect.Interface {
		if obj.IsNil() {
			return reflect.Value{}, f.fail(op, ErrNilValue)
		}

		obj = obj.Elem()
	}

	if !obj.IsValid() {
		return reflect.Value{}, f.fail(op, ErrNilValue)
	}

	if obj.Type() != f.Owner {
		return reflect.Value{}, f.fail(op, fmt.Errorf("%w: got %s", ErrIncompatible, obj.Type()))
	}

	return obj, nil
}

func (f Field) fail(op Op, err error) *Error {
	return &Error{Op: op, Type: f.Owner, Field: f.Name, Err: err}
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
