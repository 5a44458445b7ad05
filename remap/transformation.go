package remap

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"remapper/internal/access"
	"remapper/internal/diagnostic"
)

var errorType = reflect.TypeFor[error]()

// Transformation is one configured field rule of a mapping. The set of
// implementations is closed; rules are created by a Builder.
type Transformation interface {
	// Kind reports the variant of the rule.
	Kind() Kind
	// SourceField returns the field read by the rule, or the zero Field for
	// rules without a source.
	SourceField() Field
	// DestinationField returns the field written by the rule, or the zero
	// Field for rules without a destination.
	DestinationField() Field
	// ValidateTransformation checks the rule once, before any value is
	// mapped. Failures are *ConfigurationError.
	ValidateTransformation() error
	// PerformTransformation applies the rule to one source and destination
	// struct value. Failures are *MappingError.
	PerformTransformation(source, destination reflect.Value) error
	// Describe renders the rule for diagnostics. The detailed form includes
	// full type information.
	Describe(detailed bool) string
	// Equal reports whether other is the same rule: same kind, same fields
	// and same kind-specific configuration.
	Equal(other Transformation) bool

	sealed()
}

// pair is the source and destination type of the mapping owning a rule.
type pair struct {
	source      reflect.Type
	destination reflect.Type
}

func (p pair) String() string {
	return access.TypeName(p.source) + "->" + access.TypeName(p.destination)
}

// rule holds what every Transformation has in common.
type rule struct {
	kind        Kind
	source      Field
	destination Field
	pair        pair
	logger      *zap.Logger
}

func newRule(kind Kind, p pair, source, destination Field, logger *zap.Logger) rule {
	if logger == nil {
		logger = zap.NewNop()
	}

	return rule{kind: kind, source: source, destination: destination, pair: p, logger: logger}
}

func (r *rule) Kind() Kind { return r.kind }

func (r *rule) SourceField() Field { return r.source }

func (r *rule) DestinationField() Field { return r.destination }

func (r *rule) ValidateTransformation() error { return nil }

func (r *rule) sealed() {}

// sameAs compares the parts every rule shares.
func (r *rule) sameAs(other Transformation) bool {
	return other != nil &&
		r.kind == other.Kind() &&
		r.source.Equal(other.SourceField()) &&
		r.destination.Equal(other.DestinationField())
}

// readOrFail reads the source field of obj.
func (r *rule) readOrFail(obj reflect.Value) (reflect.Value, error) {
	v, err := r.source.Read(obj)
	if err != nil {
		return reflect.Value{}, r.fail("cannot read source field", err)
	}

	return v, nil
}

// writeOrFail writes v into the destination field of obj.
func (r *rule) writeOrFail(obj, v reflect.Value) error {
	if err := r.destination.Write(obj, v); err != nil {
		return r.fail("cannot write destination field", err)
	}

	return nil
}

func (r *rule) fail(msg string, err error) *MappingError {
	return &MappingError{Source: r.source, Destination: r.destination, Msg: msg, Err: err}
}

// invalid builds the configuration error returned by ValidateTransformation.
func (r *rule) invalid(code, format string, args ...any) *ConfigurationError {
	field := r.destination
	if field.IsZero() {
		field = r.source
	}

	var diags diagnostic.Diagnostics
	diags.AddError(code, fmt.Sprintf(format, args...), r.pair.String(), field.Name)

	return newConfigurationError(r.pair.source, r.pair.destination, &diags)
}

// describe renders "<verb> <source> <link> <destination>". The detailed form
// puts the destination on a second line, indented under the source.
func (r *rule) describe(verb, link string, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("%s %s %s %s", verb, r.source, link, r.destination)
	}

	return fmt.Sprintf("%s %s\n%s%s %s", verb, r.source.Detailed(), indent(verb), link, r.destination.Detailed())
}

// indent returns the blank prefix aligning a continuation line with the
// text following verb.
func indent(verb string) string {
	return strings.Repeat(" ", len(verb)+1)
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func funcName(fn reflect.Value) string {
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return "<nil>"
	}

	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return f.Name()
	}

	return fn.Type().String()
}

func funcType(fn reflect.Value) string {
	if !fn.IsValid() {
		return "<nil>"
	}

	return fn.Type().String()
}

func sameFunc(a, b reflect.Value) bool {
	return a.IsValid() && b.IsValid() && a.Type() == b.Type() && a.Pointer() == b.Pointer()
}
