package analyze

import (
	"go/types"
	"reflect"
	"strings"

	"remapper/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "remapper/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the "pkg.Name" form of the TypeID, using the last element
// of the import path as the package name.
func (t TypeID) Short() string {
	if alias := common.PkgAlias(t.PkgPath); alias != "" {
		return alias + "." + t.Name
	}

	return t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map from KeyType to ElemType
	TypeKindInterface          // interface type
	TypeKindAlias              // named type wrapping another
	TypeKindExternal           // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID       // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind     // Kind of type
	Underlying *TypeInfo    // For named non-struct types, the underlying type
	ElemType   *TypeInfo    // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo    // For maps, the key type
	Fields     []FieldInfo  // For structs, the exported fields
	Methods    []MethodInfo // For named types of loaded packages, the exported methods
	GoType     types.Type   // The original go/types.Type
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Resolve follows named non-struct types down to the type they wrap.
func (t *TypeInfo) Resolve() *TypeInfo {
	for t != nil && t.Kind == TypeKindAlias && t.Underlying != nil {
		t = t.Underlying
	}

	return t
}

// Deref resolves t and strips a single pointer level.
func (t *TypeInfo) Deref() *TypeInfo {
	t = t.Resolve()
	if t != nil && t.Kind == TypeKindPointer {
		return t.ElemType.Resolve()
	}

	return t
}

// Field returns the exported field with the given name, looking through
// embedded structs the way Go promotes their fields.
func (t *TypeInfo) Field(name string) (*FieldInfo, bool) {
	return t.field(name, make(map[*TypeInfo]bool))
}

func (t *TypeInfo) field(name string, seen map[*TypeInfo]bool) (*FieldInfo, bool) {
	t = t.Deref()
	if t == nil || t.Kind != TypeKindStruct || seen[t] {
		return nil, false
	}

	seen[t] = true

	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}

	for i := range t.Fields {
		if !t.Fields[i].Embedded {
			continue
		}

		if f, ok := t.Fields[i].Type.field(name, seen); ok {
			return f, true
		}
	}

	return nil, false
}

// FieldNames returns the names of the direct exported fields.
func (t *TypeInfo) FieldNames() []string {
	t = t.Deref()
	if t == nil {
		return nil
	}

	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		names = append(names, f.Name)
	}

	return names
}

// Method returns the exported method with the given name.
func (t *TypeInfo) Method(name string) (*MethodInfo, bool) {
	candidates := []*TypeInfo{t, t.Resolve(), t.Deref()}
	if t != nil && t.Kind == TypeKindPointer {
		candidates = append(candidates, t.ElemType)
	}

	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}

		for i := range candidate.Methods {
			if candidate.Methods[i].Name == name {
				return &candidate.Methods[i], true
			}
		}
	}

	return nil, false
}

// MethodNames returns the names of the exported methods.
func (t *TypeInfo) MethodNames() []string {
	t = t.Deref()
	if t == nil {
		return nil
	}

	names := make([]string, 0, len(t.Methods))
	for _, m := range t.Methods {
		names = append(names, m.Name)
	}

	return names
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}

	return f.Name
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// MethodInfo describes an exported method in the method set of *T.
type MethodInfo struct {
	Name    string      // Method name
	Params  int         // Number of parameters, receiver excluded
	Results []*TypeInfo // Result types
}

// Accessor reports whether the method can be called as a getter: no
// parameters and a single result, optionally followed by an error or a
// bool. It returns the type of the value the call yields.
func (m *MethodInfo) Accessor() (*TypeInfo, bool) {
	if m == nil || m.Params != 0 {
		return nil, false
	}

	switch len(m.Results) {
	case 1:
		return m.Results[0], true
	case 2:
		second := m.Results[1].GoType
		if types.Identical(second, errorType) || types.Identical(second, types.Typ[types.Bool]) {
			return m.Results[0], true
		}
	}

	return nil, false
}

var errorType = types.Universe.Lookup("error").Type()

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
