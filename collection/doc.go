// Package collection provides the container kinds a mapper distinguishes
// when mapping many values at once: ordered lists and insertion-ordered sets.
//
// Both implement Collection, whose Kind is reported by the value itself, so
// a mapper can preserve the kind of its input without knowing its static type.
package collection
