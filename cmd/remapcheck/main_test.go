package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodMapping = `mappings:
  - source: store.Customer
    target: warehouse.Customer
    121: {FullName: FirstName}
    fields:
      - {source: Address, target: LastName, path: City}
    omit_target: [Orders]
`

const badMapping = `mappings:
  - source: store.Customer
    target: warehouse.Customer
    121: {FullNam: FirstName}
    fields:
      - {target: Phone}
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestCheck(t *testing.T) {
	path := writeFile(t, goodMapping)

	out, _, err := execute(t, "check", "-f", path, "-p", "remapper/store,remapper/warehouse")
	require.NoError(t, err)
	assert.Contains(t, out, "1 mappings OK")
}

func TestCheck_Errors(t *testing.T) {
	path := writeFile(t, badMapping)

	out, _, err := execute(t, "check", "-f", path, "-p", "remapper/store", "-p", "remapper/warehouse")
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "error: [store.Customer->warehouse.Customer] FullNam: [unknown_field]")
	assert.Contains(t, out, "did you mean FullName")
	assert.Contains(t, out, "warning: [store.Customer->warehouse.Customer] Phone: [zero_default]")
}

func TestCheck_MultipleFiles(t *testing.T) {
	good := writeFile(t, goodMapping)
	bad := writeFile(t, badMapping)

	out, _, err := execute(t, "check", "-f", good+","+bad, "-p", "remapper/store,remapper/warehouse")
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, good+": 1 mappings OK")
	assert.Contains(t, out, "[unknown_field]")
	assert.NotContains(t, out, bad+": 1 mappings OK")

	_, _, err = execute(t, "check", "-f", good+","+filepath.Join(t.TempDir(), "gone.yaml"))
	require.ErrorContains(t, err, "gone.yaml")
}

func TestCheck_StrictWarnings(t *testing.T) {
	path := writeFile(t, goodMapping+"      - {target: Phone}\n")

	_, _, err := execute(t, "check", "-f", path, "-p", "remapper/store,remapper/warehouse")
	require.NoError(t, err)

	_, _, err = execute(t, "check", "--strict", "-f", path, "-p", "remapper/store,remapper/warehouse")
	require.ErrorIs(t, err, errCheckFailed)
}

func TestCheck_DumpAndLogging(t *testing.T) {
	path := writeFile(t, goodMapping)

	out, errOut, err := execute(t, "check", "--dump", "--log-level", "debug", "--log-format", "json",
		"-f", path, "-p", "remapper/store,remapper/warehouse")
	require.NoError(t, err)

	assert.Contains(t, out, "(*config.MappingFile)")
	assert.Contains(t, out, `Source: (string) (len=14) "store.Customer"`)
	assert.Contains(t, errOut, `"message":"loading packages"`)
	assert.Contains(t, errOut, `"message":"mapping file checked"`)
	assert.Contains(t, errOut, `"command":"check"`)
}

func TestCheck_BadInput(t *testing.T) {
	_, _, err := execute(t, "check")
	require.ErrorContains(t, err, `required flag(s) "file" not set`)

	_, _, err = execute(t, "check", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "failed to read mapping file")

	_, _, err = execute(t, "check", "--log-level", "loud", "-f", writeFile(t, goodMapping))
	require.ErrorContains(t, err, "unknown log level")
}

func TestFmt(t *testing.T) {
	path := writeFile(t, goodMapping)

	out, _, err := execute(t, "fmt", "-f", path, "--expand")
	require.NoError(t, err)
	assert.Contains(t, out, `version: "1"`)
	assert.Contains(t, out, "source: FullName")
	assert.NotContains(t, out, "121")

	_, _, err = execute(t, "fmt", "-f", path, "-w")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `version: "1"`)
	assert.Contains(t, string(data), `"121":`)
}

func TestFields(t *testing.T) {
	out, _, err := execute(t, "fields", "store.Customer", "-p", "remapper/store", "--depth", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "PATH")
	assert.Regexp(t, `Customer\.Address\s+\|\s+\*Address\s+\|\s+address\s`, out)
	assert.Regexp(t, `Customer\.Address\.City\s+\|\s+string\s+\|\s+city\s`, out)
	assert.Regexp(t, `Customer\.Labels\s+\|\s+map\[string\]string\s+\|\s+labels\s`, out)
	assert.NotContains(t, out, "Customer.Orders[].Items[].Name")

	_, _, err = execute(t, "fields", "store.Custmer", "-p", "remapper/store")
	require.ErrorContains(t, err, "did you mean store.Customer")

	_, _, err = execute(t, "fields", "store.OrderStatus", "-p", "remapper/store")
	require.ErrorContains(t, err, "not a struct")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "remapcheck dev\n", out)
}
