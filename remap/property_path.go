package remap

import (
	"reflect"

	"go.uber.org/zap"

	"remapper/internal/propertypath"
)

// PropertyPathTransformation evaluates a property path on the value of the
// source field and writes the result to the destination field.
//
// The rule is nil-tolerant end to end: a nil source value or a path that
// yields no value leaves the destination field unchanged. Evaluation
// failures are reported as *MappingError naming both fields and the path.
type PropertyPathTransformation struct {
	rule

	path  *propertypath.Path
	deref bool // the path yields *T and the destination holds T
}

func newPropertyPath(r rule, path *propertypath.Path, deref bool) *PropertyPathTransformation {
	r.kind = KindPropertyPath
	return &PropertyPathTransformation{rule: r, path: path, deref: deref}
}

// Path returns the textual form of the property path.
func (t *PropertyPathTransformation) Path() string {
	return t.path.String()
}

func (t *PropertyPathTransformation) PerformTransformation(source, destination reflect.Value) error {
	v, err := t.readOrFail(source)
	if err != nil {
		return err
	}

	if isNil(v) {
		t.skipped("nil source value")
		return nil
	}

	out, ok, err := t.path.Evaluate(v)
	if err != nil {
		return &MappingError{
			Source:      t.source,
			Destination: t.destination,
			Expr:        t.path.String(),
			Msg:         "property path evaluation failed",
			Err:         err,
		}
	}

	if ok && t.deref {
		out = out.Elem()
	}

	if !ok {
		t.skipped("no value")
		return nil
	}

	return t.writeOrFail(destination, out)
}

func (t *PropertyPathTransformation) skipped(reason string) {
	if ce := t.logger.Check(zap.DebugLevel, "property path skipped"); ce != nil {
		ce.Write(
			zap.Stringer("source", t.source),
			zap.Stringer("destination", t.destination),
			zap.String("path", t.path.String()),
			zap.String("reason", reason),
		)
	}
}

func (t *PropertyPathTransformation) Describe(detailed bool) string {
	s := t.describe("Replacing", "with", detailed)

	if detailed {
		return s + "\n" + indent("Replacing") + "using property path: " + t.path.Detailed()
	}

	return s + " using property path " + t.path.String()
}

func (t *PropertyPathTransformation) Equal(other Transformation) bool {
	o, ok := other.(*PropertyPathTransformation)
	return ok && t.sameAs(other) && t.path.Equal(o.path)
}
