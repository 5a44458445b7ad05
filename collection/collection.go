package collection

import (
	"iter"
	"slices"
)

// Kind is the structural kind of a collection.
type Kind int

const (
	// KindList is an ordered sequence that may hold duplicates.
	KindList Kind = iota
	// KindSet is a container of unique elements.
	KindSet
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Collection is a finite, replayable group of values.
type Collection[T any] interface {
	// Kind reports the structural kind of the collection.
	Kind() Kind
	// Len returns the number of elements.
	Len() int
	// All yields the elements in traversal order.
	All() iter.Seq[T]
}

// List is an ordered sequence backed by a slice.
type List[T any] []T

var _ Collection[int] = List[int](nil)

// NewList returns a list holding items.
func NewList[T any](items ...T) List[T] {
	return List[T](items)
}

// Collect drains seq into a new list.
func Collect[T any](seq iter.Seq[T]) List[T] {
	return List[T](slices.Collect(seq))
}

func (l List[T]) Kind() Kind { return KindList }

func (l List[T]) Len() int { return len(l) }

func (l List[T]) All() iter.Seq[T] { return slices.Values(l) }
