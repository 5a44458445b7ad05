package remap

import (
	"iter"
	"reflect"

	"remapper/collection"
)

// Mapper maps values of type S to values of type D. It wraps one Mapping and
// adds collection variants. A Mapper holds no mutable state and is safe for
// concurrent use.
//
// Every collection variant allocates a new result and leaves the input and
// its elements untouched. An error on any element aborts the whole call: no
// partial result is returned and the element's error is returned unchanged.
type Mapper[S, D any] struct {
	mapping *Mapping[S, D]
}

// Map returns a new destination mapped from src. src is not modified.
func (m *Mapper[S, D]) Map(src S) (D, error) {
	return m.mapping.Map(src)
}

// MapInto maps src into the existing destination dst and returns dst. Fields
// no rule writes keep their values.
//
// Only the top level is merged: a rule that builds a nested value (a field
// mapped through another mapper) replaces the existing nested value instead
// of merging into it. Concurrent calls sharing one dst must be serialized by
// the caller.
func (m *Mapper[S, D]) MapInto(src S, dst *D) (*D, error) {
	if err := m.mapping.MapInto(src, dst); err != nil {
		return nil, err
	}

	return dst, nil
}

// MapCollection maps every element of src and returns a collection of the
// same kind: a *collection.Set for sets, a collection.List otherwise.
// Traversal order is preserved in both cases.
func (m *Mapper[S, D]) MapCollection(src collection.Collection[S]) (collection.Collection[D], error) {
	if src == nil {
		return nil, ErrNilSource
	}

	if src.Kind() == collection.KindSet {
		set, err := m.MapSet(src)
		if err != nil {
			return nil, err
		}

		return set, nil
	}

	list, err := m.collect(src.All(), src.Len())
	if err != nil {
		return nil, err
	}

	return collection.List[D](list), nil
}

// MapSlice maps every element of src into a new slice of the same order and
// length. A nil src yields a nil result.
func (m *Mapper[S, D]) MapSlice(src []S) ([]D, error) {
	if src == nil {
		return nil, nil
	}

	out := make([]D, 0, len(src))

	for _, s := range src {
		d, err := m.mapping.Map(s)
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	return out, nil
}

// MapSet maps every element of src into a new set. Mapped values equal to an
// earlier one collapse, so the result may be smaller than src.
func (m *Mapper[S, D]) MapSet(src collection.Collection[S]) (*collection.Set[D], error) {
	if src == nil {
		return nil, ErrNilSource
	}

	out := collection.NewSet[D]()

	for s := range src.All() {
		d, err := m.mapping.Map(s)
		if err != nil {
			return nil, err
		}

		out.Add(d)
	}

	return out, nil
}

// MapSeq consumes seq exactly once and returns the mapped values in
// traversal order.
func (m *Mapper[S, D]) MapSeq(seq iter.Seq[S]) ([]D, error) {
	if seq == nil {
		return nil, ErrNilSource
	}

	return m.collect(seq, 0)
}

func (m *Mapper[S, D]) collect(seq iter.Seq[S], size int) ([]D, error) {
	out := make([]D, 0, size)

	for s := range seq {
		d, err := m.mapping.Map(s)
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	return out, nil
}

// Mapping returns the mapping the mapper applies.
func (m *Mapper[S, D]) Mapping() *Mapping[S, D] {
	return m.mapping
}

// String renders every rule of the mapping, one line each.
func (m *Mapper[S, D]) String() string {
	return m.mapping.String()
}

func (m *Mapper[S, D]) mappingName() string { return m.mapping.mappingName() }

func (m *Mapper[S, D]) sourceStruct() reflect.Type { return m.mapping.sourceStruct() }

func (m *Mapper[S, D]) destinationStruct() reflect.Type { return m.mapping.destinationStruct() }

func (m *Mapper[S, D]) mapStruct(src reflect.Value) (reflect.Value, error) {
	return m.mapping.mapStruct(src)
}
