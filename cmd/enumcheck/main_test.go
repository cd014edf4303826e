package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dball/enumcheck/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sizes = `
types:
  - name: Size
    identifier_boundary: "10"
    attributes:
      - {name: id, datatype: Integer, unique: true, identifier: true}
      - {name: LITERAL_NAME, literal_name: true}
    rows:
      - [1, SMALL]
      - [1, LARGE]
`

func execute(t *testing.T, args ...string) (out string, err error) {
	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err = cmd.Execute()
	out = stdout.String()
	return
}

func writeFile(t *testing.T, name, content string) (path string) {
	path = filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "sizes.yaml", sizes)
	out, err := execute(t, "validate", path)
	assert.ErrorIs(t, err, errFailed)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "WARNING "+sys.TypeBoundaryWithoutExtension+": "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "ERROR "+sys.ValueIdentifierDuplicate+": "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "ERROR "+sys.ValueIdentifierDuplicate+": "), lines[2])
}

func TestValidateWarnings(t *testing.T) {
	path := writeFile(t, "sizes.yaml", strings.Replace(sizes, "[1, LARGE]", "[2, LARGE]", 1))
	out, err := execute(t, "validate", path)
	assert.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	_, err = execute(t, "validate", "--fail-on-warning", path)
	assert.ErrorIs(t, err, errFailed)

	other := writeFile(t, "other.yaml", "types: []\n")
	out, err = execute(t, "validate", path, other)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, path+": WARNING "), out)
}

func TestValidateErrors(t *testing.T) {
	_, err := execute(t, "validate")
	assert.Error(t, err)

	_, err = execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "sizes.yaml", sizes)
	_, err = execute(t, "validate", "--log-level", "loud", path)
	assert.ErrorContains(t, err, "invalid configuration")

	config := writeFile(t, "enumcheck.yaml", "btree_degree: 1\n")
	_, err = execute(t, "validate", "-c", config, path)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.Equal(t, "enumcheck version "+Version+"\n", out)
}
