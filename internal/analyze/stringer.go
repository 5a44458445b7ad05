package analyze

import (
	"slices"
	"strings"
)

// TypePath builds a readable path string for a type.
// Examples:
//   - "Order" for a simple struct
//   - "Order.Items" for a nested field
//   - "Order.Items[]" for a slice, array or map field
//   - "Order.Items[].ProductID" for a field within slice elements
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(slices.Clone(p.parts), name),
	}
}

// Slice marks the last element as indexed.
func (p *TypePath) Slice() *TypePath {
	return p.decorate(func(last string) string { return last + "[]" })
}

// Pointer marks the last element as a pointer.
func (p *TypePath) Pointer() *TypePath {
	return p.decorate(func(last string) string { return "*" + last })
}

func (p *TypePath) decorate(fn func(string) string) *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{fn("")}}
	}

	parts := slices.Clone(p.parts)
	parts[len(parts)-1] = fn(parts[len(parts)-1])

	return &TypePath{parts: parts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer provides methods for creating readable type path strings.
type TypeStringer struct{}

// NewTypeStringer creates a new TypeStringer.
func NewTypeStringer() *TypeStringer {
	return &TypeStringer{}
}

// TypeString returns a human-readable string representation of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindStruct:
		if t.IsNamed() {
			return t.ID.Name
		}

		return "struct{...}"

	case TypeKindPointer:
		return "*" + s.elem(t.ElemType)

	case TypeKindSlice:
		return "[]" + s.elem(t.ElemType)

	case TypeKindArray:
		return "[...]" + s.elem(t.ElemType)

	case TypeKindMap:
		return "map[" + s.elem(t.KeyType) + "]" + s.elem(t.ElemType)

	case TypeKindAlias:
		if t.IsNamed() {
			return t.ID.Name
		}

		return s.TypeString(t.Underlying)

	case TypeKindExternal, TypeKindInterface:
		if t.IsNamed() {
			return t.ID.Short()
		}

		return "interface{...}"

	default:
		if t.GoType == nil {
			return "<unknown>"
		}

		return t.GoType.String()
	}
}

func (s *TypeStringer) elem(t *TypeInfo) string {
	if t == nil {
		return "<unknown>"
	}

	return s.TypeString(t)
}

// FieldPath returns a path string for a field within a type.
// Example: Order, Items -> "Order.Items"
func (s *TypeStringer) FieldPath(typeName string, fieldNames ...string) string {
	path := NewTypePath(typeName)
	for _, fn := range fieldNames {
		path = path.Field(fn)
	}

	return path.String()
}

// BuildFieldPaths recursively builds all field paths for a struct type.
// Returns a map of path string to FieldInfo.
func (s *TypeStringer) BuildFieldPaths(root *TypeInfo, maxDepth int) map[string]*FieldInfo {
	result := make(map[string]*FieldInfo)
	if root == nil || root.Kind != TypeKindStruct {
		return result
	}

	rootName := root.ID.Name
	if rootName == "" {
		rootName = "root"
	}

	s.buildFieldPathsRecursive(root, NewTypePath(rootName), result, 0, maxDepth)

	return result
}

func (s *TypeStringer) buildFieldPathsRecursive(t *TypeInfo, path *TypePath, result map[string]*FieldInfo, depth, maxDepth int) {
	if depth > maxDepth || t == nil {
		return
	}

	for i := range t.Fields {
		field := &t.Fields[i]
		fieldPath := path.Field(field.Name)

		result[fieldPath.String()] = field

		s.processNestedType(field.Type, fieldPath, result, depth+1, maxDepth)
	}
}

func (s *TypeStringer) processNestedType(t *TypeInfo, path *TypePath, result map[string]*FieldInfo, depth, maxDepth int) {
	if t == nil || depth > maxDepth {
		return
	}

	switch t.Kind {
	case TypeKindStruct:
		s.buildFieldPathsRecursive(t, path, result, depth, maxDepth)

	case TypeKindPointer:
		s.processNestedType(t.ElemType, path, result, depth, maxDepth)

	case TypeKindSlice, TypeKindArray, TypeKindMap:
		s.processNestedType(t.ElemType, path.Slice(), result, depth, maxDepth)

	case TypeKindAlias:
		s.processNestedType(t.Underlying, path, result, depth, maxDepth)

	case TypeKindBasic, TypeKindInterface, TypeKindExternal, TypeKindUnknown:
		// Terminal types.
	}
}

// SortedPaths returns the keys of a BuildFieldPaths result in order.
func SortedPaths(paths map[string]*FieldInfo) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
