package remap

import (
	"reflect"

	"remapper/internal/match"
)

// ReassignTransformation copies a source field into a destination field.
// Named types of the same kind are converted.
type ReassignTransformation struct {
	rule
}

func newReassign(r rule) *ReassignTransformation {
	r.kind = KindReassign
	return &ReassignTransformation{rule: r}
}

func (t *ReassignTransformation) ValidateTransformation() error {
	c := match.Compatibility(t.source.Type, t.destination.Type)
	if c.Direct() {
		return nil
	}

	if c == match.TypeNeedsTransform {
		return t.invalid("needs_transform",
			"%s cannot be reassigned to %s: use Replace or register a mapper with UseMapper",
			t.source.Type, t.destination.Type)
	}

	return t.invalid("incompatible_types", "%s cannot be reassigned to %s", t.source.Type, t.destination.Type)
}

func (t *ReassignTransformation) PerformTransformation(source, destination reflect.Value) error {
	v, err := t.readOrFail(source)
	if err != nil {
		return err
	}

	return t.writeOrFail(destination, v)
}

func (t *ReassignTransformation) Describe(detailed bool) string {
	return t.describe("Reassigning", "to", detailed)
}

func (t *ReassignTransformation) Equal(other Transformation) bool {
	_, ok := other.(*ReassignTransformation)
	return ok && t.sameAs(other)
}
