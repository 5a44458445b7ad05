package collection

import (
	"iter"
	"reflect"
	"slices"
)

// Set is a collection of unique elements that remembers insertion order.
//
// Elements whose dynamic value is comparable are deduplicated with ==; all
// other elements (slices, maps, structs holding them) with reflect.DeepEqual.
// The zero value is an empty set ready to use. A Set is not safe for
// concurrent mutation.
type Set[T any] struct {
	items []T
	keys  map[any]struct{}
}

var _ Collection[int] = (*Set[int])(nil)

// NewSet returns a set holding the distinct values of items, in order of
// first occurrence.
func NewSet[T any](items ...T) *Set[T] {
	s := &Set[T]{}
	for _, item := range items {
		s.Add(item)
	}

	return s
}

// Add inserts v unless an equal element is present. It reports whether v was
// added.
func (s *Set[T]) Add(v T) bool {
	if s.Contains(v) {
		return false
	}

	if key, ok := comparableKey(v); ok {
		if s.keys == nil {
			s.keys = make(map[any]struct{})
		}

		s.keys[key] = struct{}{}
	}

	s.items = append(s.items, v)

	return true
}

// Contains reports whether an element equal to v is present.
func (s *Set[T]) Contains(v T) bool {
	if s == nil {
		return false
	}

	if key, ok := comparableKey(v); ok {
		_, found := s.keys[key]
		return found
	}

	return slices.ContainsFunc(s.items, func(item T) bool {
		return reflect.DeepEqual(item, v)
	})
}

func (s *Set[T]) Kind() Kind { return KindSet }

func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

func (s *Set[T]) All() iter.Seq[T] {
	if s == nil {
		return func(func(T) bool) {}
	}

	return slices.Values(s.items)
}

// Slice returns a copy of the elements in insertion order.
func (s *Set[T]) Slice() []T {
	if s == nil {
		return nil
	}

	return slices.Clone(s.items)
}

// comparableKey returns v as a map key when its dynamic value supports ==.
func comparableKey[T any](v T) (any, bool) {
	key := any(v)

	rv := reflect.ValueOf(key)
	if !rv.IsValid() || !rv.Comparable() {
		return nil, false
	}

	return key, true
}
