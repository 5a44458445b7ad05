package remap

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"remapper/internal/access"
	"remapper/internal/diagnostic"
)

var (
	// ErrInvalidConfiguration is wrapped by every *ConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid mapping configuration")

	// ErrNilSource indicates a nil source pointer or collection.
	ErrNilSource = errors.New("nil source")

	// ErrNilDestination indicates a nil destination pointer.
	ErrNilDestination = errors.New("nil destination")

	// ErrConversionPanic indicates a Replace function that panicked.
	ErrConversionPanic = errors.New("conversion panicked")
)

// Field describes an exported field of a struct type.
type Field = access.Field

// AccessError reports a field that could not be resolved, read or written.
type AccessError = access.Error

// ConfigurationError reports every problem found while building a mapping.
// It is never returned while mapping.
type ConfigurationError struct {
	Source      reflect.Type
	Destination reflect.Type

	diags *diagnostic.Diagnostics
}

func newConfigurationError(source, destination reflect.Type, diags *diagnostic.Diagnostics) *ConfigurationError {
	return &ConfigurationError{Source: source, Destination: destination, diags: diags}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %s -> %s: %s",
		ErrInvalidConfiguration, access.TypeName(e.Source), access.TypeName(e.Destination),
		strings.Join(e.Problems(), "; "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Problems renders every problem, one string each.
func (e *ConfigurationError) Problems() []string {
	if e.diags == nil {
		return nil
	}

	return e.diags.Problems()
}

// Codes returns the stable codes of every problem, e.g. "unknown_field".
func (e *ConfigurationError) Codes() []string {
	if e.diags == nil {
		return nil
	}

	return e.diags.Codes()
}

// Diagnostics returns the underlying diagnostics.
func (e *ConfigurationError) Diagnostics() []diagnostic.Diagnostic {
	if e.diags == nil {
		return nil
	}

	return e.diags.Errors
}

// MappingError reports a rule that failed while mapping a value.
type MappingError struct {
	Source      Field
	Destination Field
	// Expr is the textual form of a nested expression such as a property
	// path, if the rule has one.
	Expr string
	Msg  string
	Err  error
}

func (e *MappingError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "mapping %s -> %s", e.Source, e.Destination)

	if e.Expr != "" {
		fmt.Fprintf(&b, " (%s)", e.Expr)
	}

	if e.Msg != "" {
		b.WriteString(": " + e.Msg)
	}

	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}

	return b.String()
}

func (e *MappingError) Unwrap() error {
	return e.Err
}
