// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to build an
// in-memory model of the named types declared in a set of packages, so
// mapping files can be checked against real source types without
// compiling or running them.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/array/map/interface/external)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - MethodInfo: describes an exported method and its results
package analyze
