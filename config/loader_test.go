package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
mappings:
  - source: store.Customer
    target: warehouse.Customer
    implicit: false
    121:
      Email: Email
      FullName: FirstName
    fields:
      - source: Address
        target: Phone
        path: City
      - source: ID
        target: LastName
        transform: idToString
        skip_nil: true
      - target: PasswordHash
        default: secret
    omit_source: Labels
    omit_target: [Orders, Addresses]
transforms:
  - name: idToString
    description: formats an identifier
`

func TestParse(t *testing.T) {
	mf, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "1", mf.Version)
	require.Len(t, mf.TypeMappings, 1)

	tm := mf.TypeMappings[0]
	assert.Equal(t, "store.Customer->warehouse.Customer", tm.Pair())
	assert.False(t, tm.IsImplicit())
	assert.Equal(t, map[string]string{"Email": "Email", "FullName": "FirstName"}, tm.OneToOne)
	assert.Equal(t, StringArray{"Labels"}, tm.OmitSource)
	assert.Equal(t, StringArray{"Orders", "Addresses"}, tm.OmitTarget)

	require.Len(t, tm.Fields, 3)
	assert.Equal(t, RulePropertyPath, tm.Fields[0].Kind())
	assert.Equal(t, RuleTransform, tm.Fields[1].Kind())
	assert.True(t, tm.Fields[1].SkipNil)
	assert.Equal(t, RuleDefault, tm.Fields[2].Kind())
	assert.Equal(t, "secret", tm.Fields[2].Default)

	assert.Equal(t, []string{"idToString"}, mf.TransformNames())
	assert.True(t, mf.HasTransform("idToString"))
	assert.False(t, mf.HasTransform("other"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "mappings: [\n"},
		{name: "omit as map", yaml: "mappings:\n  - source: A\n    target: B\n    omit_source: {a: b}\n"},
		{name: "mappings as string", yaml: "mappings: nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorContains(t, err, "failed to parse mapping YAML")
		})
	}
}

func TestParse_KeepsVersion(t *testing.T) {
	mf, err := Parse([]byte("version: \"2\"\nmappings: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "2", mf.Version)
	assert.Empty(t, mf.TypeMappings)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	mf, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(mf, path))

	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, again)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "omit_source: Labels\n")
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "failed to read mapping file")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("mappings: ["), 0o600))

	_, err = LoadFile(broken)
	require.ErrorContains(t, err, broken)
}

func TestNormalizeMappingFile(t *testing.T) {
	mf, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	NormalizeMappingFile(mf)

	tm := mf.TypeMappings[0]
	assert.Nil(t, tm.OneToOne)
	require.Len(t, tm.Fields, 5)
	assert.Equal(t, FieldMapping{Source: "Email", Target: "Email"}, tm.Fields[0])
	assert.Equal(t, FieldMapping{Source: "FullName", Target: "FirstName"}, tm.Fields[1])
	assert.Equal(t, "Phone", tm.Fields[2].Target)

	// Idempotent.
	NormalizeMappingFile(mf)
	assert.Len(t, mf.TypeMappings[0].Fields, 5)
}

func TestStringArray_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    StringArray
		wantErr bool
	}{
		{name: "single", yaml: "v: Name\n", want: StringArray{"Name"}},
		{name: "empty string", yaml: "v: \"\"\n", want: StringArray{}},
		{name: "list", yaml: "v: [A, B]\n", want: StringArray{"A", "B"}},
		{name: "map", yaml: "v: {a: b}\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V StringArray `yaml:"v"`
			}

			err := yamlUnmarshal(tt.yaml, &out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.V)
		})
	}
}

func TestStringArray_MarshalYAML(t *testing.T) {
	single, err := StringArray{"A"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "A", single)

	multi, err := StringArray{"A", "B"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, multi)
}
