package remap

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Mapping is the ordered, immutable set of rules for one source and
// destination type pair. S is a struct type or a pointer to one; D is a
// struct type. A Mapping is safe for concurrent use.
type Mapping[S, D any] struct {
	name        string
	source      reflect.Type // S
	base        reflect.Type // struct type behind S
	destination reflect.Type // D
	rules       []Transformation
	logger      *zap.Logger
}

// Map allocates a new destination and applies every rule to it.
func (m *Mapping[S, D]) Map(src S) (D, error) {
	var dst D

	if err := m.MapInto(src, &dst); err != nil {
		var zero D
		return zero, err
	}

	return dst, nil
}

// MapInto applies every rule to the existing destination dst. Fields no rule
// writes keep their values.
func (m *Mapping[S, D]) MapInto(src S, dst *D) error {
	if dst == nil {
		return ErrNilDestination
	}

	sv, ok := structValue(reflect.ValueOf(&src).Elem())
	if !ok {
		return ErrNilSource
	}

	return m.apply(sv, reflect.ValueOf(dst).Elem())
}

func (m *Mapping[S, D]) apply(src, dst reflect.Value) error {
	for _, t := range m.rules {
		if err := t.PerformTransformation(src, dst); err != nil {
			if ce := m.logger.Check(zap.DebugLevel, "mapping failed"); ce != nil {
				ce.Write(zap.String("mapping", m.name), zap.Stringer("kind", t.Kind()), zap.Error(err))
			}

			return err
		}
	}

	return nil
}

// Transformations returns a copy of the rules in the order they run.
func (m *Mapping[S, D]) Transformations() []Transformation {
	return slices.Clone(m.rules)
}

// String renders the mapping header followed by one line per rule.
func (m *Mapping[S, D]) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Mapping from %s\n\t  to %s", m.source, m.destination)

	for _, t := range m.rules {
		b.WriteString("\n\t" + t.Describe(false))
	}

	return b.String()
}

func (m *Mapping[S, D]) mappingName() string { return m.name }

func (m *Mapping[S, D]) sourceStruct() reflect.Type { return m.base }

func (m *Mapping[S, D]) destinationStruct() reflect.Type { return m.destination }

func (m *Mapping[S, D]) mapStruct(src reflect.Value) (reflect.Value, error) {
	dst := reflect.New(m.destination).Elem()

	if err := m.apply(src, dst); err != nil {
		return reflect.Value{}, err
	}

	return dst, nil
}

// structValue follows pointers and interfaces down to a struct value. ok is
// false when a nil is met on the way.
func structValue(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	return v, v.IsValid()
}
