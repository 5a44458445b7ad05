// Package remap maps values of one struct type onto another.
//
// A Builder collects field rules for a source and destination type pair:
//
//	mapper, err := remap.NewBuilder[store.Customer, warehouse.Customer]().
//		Reassign("FullName", "FirstName").
//		PropertyPath("Address", "City", "City").
//		Replace("ID", "ID", func(id int64) uint { return uint(id) }).
//		OmitInDestination("PasswordHash").
//		Build()
//
// Build validates every rule once and either returns a ready Mapper or a
// *ConfigurationError listing every problem. A Mapper is immutable and safe
// for concurrent use. It maps single values, values into existing
// destinations, slices, sets and one-pass sequences.
//
// # Rules
//
//   - Reassign copies a field as is, converting between named types of the
//     same kind. Struct-typed fields go through a mapper registered with
//     UseMapper.
//   - Replace converts a field with a function.
//   - PropertyPath evaluates a nil-safe property path on the source field and
//     writes the result only when one is present.
//   - Set writes a constant or the result of a supplier.
//   - OmitInSource and OmitInDestination mark fields as intentionally unmapped.
//
// Destination fields that no rule covers and that have a same-named,
// compatible source field are copied implicitly unless disabled with
// WithImplicitMapping(false).
//
// # Errors
//
// Configuration problems surface only from Build as *ConfigurationError.
// Failures while mapping surface as *MappingError naming both fields and
// wrapping the cause, typically an *AccessError or the error of a conversion
// function.
package remap
