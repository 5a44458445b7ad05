// Package propertypath compiles property path expressions against a Go type
// and evaluates them nil-safely.
//
// # Path Syntax
//
//   - Fields: "City", "Address.City"
//   - Zero-argument methods: "Primary().City"
//   - Slice and array elements: "Lines[0].Street"
//   - Map entries: `Labels["team"]`, Labels[team]
//
// A path is compiled once for a root type. Evaluation yields an optional
// result: a nil pointer, interface, slice or map anywhere along the chain, a
// missing map key or a method returning (T, false) all end evaluation with no
// value and no error. Genuine failures (an index out of range, a method
// returning a non-nil error, a panic inside a method) are returned as errors.
package propertypath
