package match

import (
	"reflect"
)

// TypeCompatibility represents how a value of a source type can be stored in
// a target type.
type TypeCompatibility int

const (
	// TypeIncompatible means the types cannot be converted.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means a function or a nested mapping is required.
	TypeNeedsTransform
	// TypeConvertible means a Go conversion between values of the same kind works.
	TypeConvertible
	// TypeAssignable means the source value can be assigned as is.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Direct reports whether values can be copied without a transform.
func (c TypeCompatibility) Direct() bool {
	return c >= TypeConvertible
}

// Compatibility scores source against target.
//
// Conversions are only accepted between types of the same reflect.Kind, so
// that named basic types ("type Status string") map onto their underlying
// type while int -> string, which Go allows but which produces a rune, is
// rejected.
func Compatibility(source, target reflect.Type) TypeCompatibility {
	return compatibility(source, target, 0)
}

// maxDepth bounds the recursion through element types of self-referencing
// slice and map types.
const maxDepth = 8

func compatibility(source, target reflect.Type, depth int) TypeCompatibility {
	switch {
	case source == nil || target == nil:
		return TypeIncompatible
	case source == target:
		return TypeIdentical
	case source.AssignableTo(target):
		return TypeAssignable
	case source.Kind() == target.Kind() && source.ConvertibleTo(target) && source.Kind() != reflect.Struct:
		return TypeConvertible
	case depth < maxDepth && needsTransform(source, target, depth+1):
		return TypeNeedsTransform
	default:
		return TypeIncompatible
	}
}

// needsTransform checks for shapes that a nested mapping could bridge.
func needsTransform(source, target reflect.Type, depth int) bool {
	s, t := deref(source), deref(target)

	switch {
	case s.Kind() == reflect.Struct && t.Kind() == reflect.Struct:
		return true
	case isList(s) && isList(t):
		return compatibility(s.Elem(), t.Elem(), depth) >= TypeNeedsTransform
	case s.Kind() == reflect.Map && t.Kind() == reflect.Map:
		return compatibility(s.Key(), t.Key(), depth).Direct() &&
			compatibility(s.Elem(), t.Elem(), depth) >= TypeNeedsTransform
	case s != source || t != target:
		// Pointer lifting or dereferencing.
		return compatibility(s, t, depth).Direct()
	default:
		return false
	}
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

func isList(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}
