package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remapper/internal/analyze"
	"remapper/internal/propertypath"
)

var loadGraph = sync.OnceValues(func() (*analyze.TypeGraph, error) {
	return analyze.NewAnalyzer().LoadPackages("remapper/store", "remapper/warehouse")
})

func testGraph(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	graph, err := loadGraph()
	require.NoError(t, err)

	return graph
}

const validHeader = `
transforms:
  - name: firstName
mappings:
  - source: store.Customer
    target: warehouse.Customer
`

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		codes    []string
		warnings []string
		suggest  string
	}{
		{
			name: "valid",
			yaml: validHeader + `
    121: {Email: Email}
    fields:
      - {source: FullName, target: FirstName, transform: firstName}
      - {source: Address, target: Phone, path: City}
      - {source: Labels, target: LastName, path: "[family]"}
      - {source: Orders, target: PasswordHash, path: "[0].Items[0].Name"}
      - {target: DefaultBillingAddressID, default: 7}
    omit_source: IsActive
    omit_target: [Orders]
`,
		},
		{
			name: "valid order",
			yaml: `
mappings:
  - source: store.Order
    target: warehouse.Order
    121: {CustomerID: CustomerID, TotalCents: TotalAmount}
    fields:
      - {source: Items, target: Status, path: "[0].Name"}
    omit_target: [Lines, PlacedAt, ShippedAt]
`,
		},
		{
			name: "unknown source type",
			yaml: `
mappings:
  - source: store.Customr
    target: warehouse.Customer
`,
			codes:   []string{"unknown_type"},
			suggest: "store.Customer",
		},
		{
			name: "unknown target type",
			yaml: `
mappings:
  - source: store.Customer
    target: Nowhere
`,
			codes: []string{"unknown_type"},
		},
		{
			name: "not a struct",
			yaml: `
mappings:
  - source: store.OrderStatus
    target: warehouse.Order
`,
			codes: []string{"not_struct"},
		},
		{
			name:    "unknown field in shorthand",
			yaml:    validHeader + "    121: {Emial: Email}\n",
			codes:   []string{"unknown_field"},
			suggest: "Email",
		},
		{
			name:  "unknown target field",
			yaml:  validHeader + "    fields:\n      - {source: Email, target: Mail}\n",
			codes: []string{"unknown_field"},
		},
		{
			name:  "unknown omitted field",
			yaml:  validHeader + "    omit_source: [Nope]\n    omit_target: Nada\n",
			codes: []string{"unknown_field", "unknown_field"},
		},
		{
			name:  "bad property path field",
			yaml:  validHeader + "    fields:\n      - {source: Address, target: Phone, path: Town}\n",
			codes: []string{"invalid_property_path"},
		},
		{
			name:  "bad property path syntax",
			yaml:  validHeader + "    fields:\n      - {source: Address, target: Phone, path: \"City.\"}\n",
			codes: []string{"invalid_property_path"},
		},
		{
			name:  "bad property path method",
			yaml:  validHeader + "    fields:\n      - {source: Orders, target: Phone, path: \"[0].Sum()\"}\n",
			codes: []string{"invalid_property_path"},
		},
		{
			name:    "undeclared transform",
			yaml:    validHeader + "    fields:\n      - {source: FullName, target: FirstName, transform: firstNme}\n",
			codes:   []string{"undeclared_transform"},
			suggest: "firstName",
		},
		{
			name:  "missing target",
			yaml:  validHeader + "    fields:\n      - {source: Email}\n",
			codes: []string{"missing_target"},
		},
		{
			name:  "path without source",
			yaml:  validHeader + "    fields:\n      - {target: Phone, path: City}\n",
			codes: []string{"missing_source"},
		},
		{
			name:  "target written twice",
			yaml:  validHeader + "    121: {Email: Email}\n    fields:\n      - {source: FullName, target: Email}\n",
			codes: []string{"conflicting_rule"},
		},
		{
			name:  "target written three times reported once",
			yaml:  validHeader + "    121: {Email: Email, FullName: Email}\n    fields:\n      - {target: Email, default: x}\n",
			codes: []string{"conflicting_rule"},
		},
		{
			name:  "target written and omitted",
			yaml:  validHeader + "    121: {Email: Email}\n    omit_target: Email\n",
			codes: []string{"conflicting_rule"},
		},
		{
			name:     "zero default",
			yaml:     validHeader + "    fields:\n      - {target: Phone}\n",
			warnings: []string{"zero_default"},
		},
		{
			name: "duplicate mapping",
			yaml: `
mappings:
  - source: store.Order
    target: warehouse.Order
  - source: remapper/store.Order
    target: remapper/warehouse.Order
`,
			codes: []string{"duplicate_mapping"},
		},
		{
			name: "duplicate transform",
			yaml: `
transforms:
  - name: a
  - name: a
  - name: ""
mappings: []
`,
			codes: []string{"duplicate_transform", "invalid_transform"},
		},
	}

	graph := testGraph(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mf, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			res := Validate(mf, graph)

			codes := tt.codes
			if codes == nil {
				codes = []string{}
			}

			assert.Equal(t, codes, res.Codes(), "problems: %v", res.Problems())

			var warnings []string
			for _, w := range res.Warnings {
				warnings = append(warnings, w.Code)
			}

			assert.Equal(t, tt.warnings, warnings)

			if tt.suggest != "" {
				require.NotEmpty(t, res.Errors)
				assert.Contains(t, res.Errors[0].Suggestions, tt.suggest)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Equal(t, []string{"mapping_is_nil"}, Validate(nil, testGraph(t)).Codes())
	assert.Equal(t, []string{"graph_is_nil"}, Validate(&MappingFile{}, nil).Codes())
}

func TestCheckPath(t *testing.T) {
	graph := testGraph(t)
	customer := graph.GetType(analyze.TypeID{PkgPath: "remapper/store", Name: "Customer"})
	require.NotNil(t, customer)

	tests := []struct {
		expr    string
		wantErr error
		message string
	}{
		{expr: "Address.City"},
		{expr: "DisplayName()"},
		{expr: "Orders[0].Total()"},
		{expr: "Orders[0].Items[0].Name"},
		{expr: "Labels[team]"},
		{expr: "Orders[0].OrderedAt.Unix()"},
		{expr: "Orders[0].Status"},
		{expr: "Address.Town", wantErr: ErrPathField, message: "*Address has no field Town"},
		{expr: "Adress.City", wantErr: ErrPathField, message: "did you mean Address?"},
		{expr: "Email.Domain", wantErr: ErrPathField, message: "string is a basic"},
		{expr: "Email[0]", wantErr: ErrPathIndex},
		{expr: "Address[0]", wantErr: ErrPathIndex},
		{expr: "Labels[team].Name", wantErr: ErrPathField},
		{expr: "Nope()", wantErr: ErrPathMethod},
		{expr: "Orders[0].Totl()", wantErr: ErrPathMethod, message: "did you mean Total?"},
		{expr: "City.", wantErr: propertypath.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := CheckPath(customer, tt.expr)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)

			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestCheckPath_UnusableMethod(t *testing.T) {
	str := &analyze.TypeInfo{Kind: analyze.TypeKindBasic}
	root := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: "example.com/x", Name: "Thing"},
		Kind: analyze.TypeKindStruct,
		Methods: []analyze.MethodInfo{
			{Name: "WithArg", Params: 1, Results: []*analyze.TypeInfo{str}},
		},
	}

	err := CheckPath(root, "WithArg()")
	require.ErrorIs(t, err, ErrPathMethod)
	assert.Contains(t, err.Error(), "must take no arguments")
}
