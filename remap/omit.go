package remap

import "reflect"

// OmitTransformation marks a source or destination field as intentionally
// unmapped. It excludes the field from implicit mapping and does nothing
// when performed.
type OmitTransformation struct {
	rule
}

func newOmitInSource(r rule) *OmitTransformation {
	r.kind = KindOmitInSource
	r.destination = Field{}

	return &OmitTransformation{rule: r}
}

func newOmitInDestination(r rule) *OmitTransformation {
	r.kind = KindOmitInDestination
	r.source = Field{}

	return &OmitTransformation{rule: r}
}

func (t *OmitTransformation) PerformTransformation(reflect.Value, reflect.Value) error {
	return nil
}

func (t *OmitTransformation) Describe(detailed bool) string {
	side, field := "destination", t.destination
	if t.kind == KindOmitInSource {
		side, field = "source", t.source
	}

	if detailed {
		return "Omitting " + side + " field " + field.Detailed()
	}

	return "Omitting " + side + " field " + field.String()
}

func (t *OmitTransformation) Equal(other Transformation) bool {
	_, ok := other.(*OmitTransformation)
	return ok && t.sameAs(other)
}
