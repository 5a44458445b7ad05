package analyze

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	storePkg     = "remapper/store"
	warehousePkg = "remapper/warehouse"
)

func loadGraph(t *testing.T, patterns ...string) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(patterns...)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func mustType(t *testing.T, graph *TypeGraph, pkg, name string) *TypeInfo {
	t.Helper()

	info := graph.GetType(TypeID{PkgPath: pkg, Name: name})
	require.NotNil(t, info, "type %s.%s", pkg, name)

	return info
}

func mustField(t *testing.T, info *TypeInfo, name string) *FieldInfo {
	t.Helper()

	f, ok := info.Field(name)
	require.True(t, ok, "field %s", name)

	return f
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadGraph(t, storePkg, warehousePkg)

	assert.Contains(t, graph.Packages, storePkg)
	assert.Contains(t, graph.Packages, warehousePkg)
	assert.Equal(t, "store", graph.Packages[storePkg].Name)
	assert.Contains(t, graph.Packages[storePkg].Types, TypeID{PkgPath: storePkg, Name: "Order"})

	assert.Contains(t, graph.Types, TypeID{PkgPath: storePkg, Name: "Order"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: warehousePkg, Name: "Order"})
}

func TestAnalyzer_LoadPackagesError(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("remapper/does/not/exist")
	require.Error(t, err)
}

func TestAnalyzer_StoreOrderFields(t *testing.T) {
	order := mustType(t, loadGraph(t, storePkg), storePkg, "Order")
	assert.Equal(t, TypeKindStruct, order.Kind)

	assert.Equal(t,
		[]string{"ID", "CustomerID", "Status", "TotalCents", "Items", "OrderedAt"},
		order.FieldNames())
}

func TestAnalyzer_FieldTags(t *testing.T) {
	product := mustType(t, loadGraph(t, storePkg), storePkg, "Product")

	sku := mustField(t, product, "SKU")
	assert.Equal(t, "sku", sku.JSONName())
	assert.True(t, sku.HasTag("json"))
	assert.Equal(t, "sku", sku.GetTag("json"))
}

func TestAnalyzer_FieldKinds(t *testing.T) {
	graph := loadGraph(t, storePkg)
	order := mustType(t, graph, storePkg, "Order")
	customer := mustType(t, graph, storePkg, "Customer")

	items := mustField(t, order, "Items")
	assert.Equal(t, TypeKindSlice, items.Type.Kind)
	require.NotNil(t, items.Type.ElemType)
	assert.Equal(t, TypeKindStruct, items.Type.ElemType.Kind)

	address := mustField(t, customer, "Address")
	assert.Equal(t, TypeKindPointer, address.Type.Kind)
	assert.Equal(t, TypeKindStruct, address.Type.Deref().Kind)
	assert.Equal(t, "Address", address.Type.Deref().ID.Name)

	labels := mustField(t, customer, "Labels")
	assert.Equal(t, TypeKindMap, labels.Type.Kind)
	assert.Equal(t, TypeKindBasic, labels.Type.KeyType.Kind)
	assert.Equal(t, TypeKindBasic, labels.Type.ElemType.Kind)

	orderedAt := mustField(t, order, "OrderedAt")
	assert.Equal(t, TypeKindExternal, orderedAt.Type.Kind)
	assert.Equal(t, "time.Time", orderedAt.Type.ID.Short())
}

func TestAnalyzer_TypeAlias(t *testing.T) {
	status := mustType(t, loadGraph(t, storePkg), storePkg, "OrderStatus")

	assert.Equal(t, TypeKindAlias, status.Kind)
	assert.Equal(t, TypeKindBasic, status.Resolve().Kind)
}

func TestAnalyzer_Methods(t *testing.T) {
	graph := loadGraph(t, storePkg)

	customer := mustType(t, graph, storePkg, "Customer")
	assert.Equal(t, []string{"DisplayName"}, customer.MethodNames())

	display, ok := customer.Method("DisplayName")
	require.True(t, ok)

	result, ok := display.Accessor()
	require.True(t, ok)
	assert.Equal(t, TypeKindBasic, result.Kind)

	order := mustType(t, graph, storePkg, "Order")

	total, ok := order.Method("Total")
	require.True(t, ok)
	assert.Len(t, total.Results, 2)

	result, ok = total.Accessor()
	require.True(t, ok)
	assert.Equal(t, "int64", result.GoType.String())

	_, ok = order.Method("Missing")
	assert.False(t, ok)
}

func TestAnalyzer_SharedTypeInfo(t *testing.T) {
	graph := loadGraph(t, warehousePkg)

	order := mustType(t, graph, warehousePkg, "Order")
	shipping := mustField(t, order, "ShippingAddress")

	assert.Equal(t, TypeKindStruct, shipping.Type.Kind)
	assert.Same(t, mustType(t, graph, warehousePkg, "Address"), shipping.Type)

	lines := mustField(t, order, "Lines")
	require.NotNil(t, lines.Type.ElemType)
	assert.Same(t, mustType(t, graph, warehousePkg, "Line"), lines.Type.ElemType)

	label, ok := shipping.Type.Method("Label")
	require.True(t, ok)

	_, ok = label.Accessor()
	assert.True(t, ok)
}

func TestAnalyzer_GetStruct(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(storePkg)
	require.NoError(t, err)

	order, err := analyzer.GetStruct(storePkg, "Order")
	require.NoError(t, err)
	assert.Equal(t, "Order", order.ID.Name)

	_, err = analyzer.GetStruct(storePkg, "OrderStatus")
	require.ErrorContains(t, err, "is not a struct")

	_, err = analyzer.GetStruct(storePkg, "Nope")
	require.ErrorContains(t, err, "not found")
}

func TestTypeInfo_EmbeddedField(t *testing.T) {
	base := &TypeInfo{Kind: TypeKindStruct, Fields: []FieldInfo{{Name: "CreatedAt", Type: &TypeInfo{Kind: TypeKindBasic}}}}
	outer := &TypeInfo{Kind: TypeKindStruct, Fields: []FieldInfo{
		{Name: "ID", Type: &TypeInfo{Kind: TypeKindBasic}},
		{Name: "Base", Embedded: true, Type: &TypeInfo{Kind: TypeKindPointer, ElemType: base}},
	}}

	f, ok := outer.Field("CreatedAt")
	require.True(t, ok)
	assert.Equal(t, "CreatedAt", f.Name)

	_, ok = outer.Field("Missing")
	assert.False(t, ok)

	var nilInfo *TypeInfo
	_, ok = nilInfo.Field("ID")
	assert.False(t, ok)
	assert.Nil(t, nilInfo.FieldNames())
}

func TestMethodInfo_Accessor(t *testing.T) {
	graph := loadGraph(t, storePkg)
	str := mustField(t, mustType(t, graph, storePkg, "Customer"), "Email").Type

	tests := []struct {
		name   string
		method *MethodInfo
		ok     bool
	}{
		{name: "nil", method: nil},
		{name: "single result", method: &MethodInfo{Results: []*TypeInfo{str}}, ok: true},
		{name: "with params", method: &MethodInfo{Params: 1, Results: []*TypeInfo{str}}},
		{name: "no results", method: &MethodInfo{}},
		{name: "two strings", method: &MethodInfo{Results: []*TypeInfo{str, str}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.method.Accessor()
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: storePkg, Name: "Order"}
	assert.Equal(t, "remapper/store.Order", id.String())
	assert.Equal(t, "store.Order", id.Short())

	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
	assert.Equal(t, "int", idNoPkg.Short())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "pointer", TypeKindPointer.String())
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "array", TypeKindArray.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "interface", TypeKindInterface.String())
	assert.Equal(t, "alias", TypeKindAlias.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

func TestFieldInfo_JSONName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{tag: `json:"my_field"`, want: "my_field"},
		{tag: `json:"my_field,omitempty"`, want: "my_field"},
		{tag: `json:",omitempty"`, want: "MyField"},
		{tag: `xml:"other"`, want: "MyField"},
		{tag: `json:"-"`, want: "MyField"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			f := FieldInfo{Name: "MyField", Tag: reflect.StructTag(tt.tag)}
			assert.Equal(t, tt.want, f.JSONName())
		})
	}
}
