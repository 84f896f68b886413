package literal_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fnlists/internal/literal"
	"github.com/vk/fnlists/internal/numeric"
	"github.com/vk/fnlists/internal/sharedlist"
	"github.com/vk/fnlists/internal/typeregistry"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const hclDoc = `
list "weights" {
  type   = float_list
  values = [0.25, 0.5, 0.25]
}

list "normals" {
  type   = fvec3
  values = [[0, 0, 1], [0, 1, 0]]
}

list "mask" {
  type   = bool_list
  values = []
}
`

func TestLoadBytes_HCL(t *testing.T) {
	stats := sharedlist.NewStats()
	loader := literal.NewLoader(literal.WithTracker(stats))

	lits, err := loader.LoadBytes(context.Background(), "main.hcl", []byte(hclDoc))
	require.NoError(t, err)
	require.Len(t, lits, 3)

	assert.Equal(t, "weights", lits[0].Name)
	assert.Equal(t, "main.hcl", lits[0].Source)
	assert.Equal(t, "literal.weights", lits[0].Socket().String())
	weights, err := sharedlist.Cast(lits[0].Value, sharedlist.Floats)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.5, 0.25}, weights.Values())

	normals, err := sharedlist.Cast(lits[1].Value, sharedlist.FVec3s)
	require.NoError(t, err)
	assert.Equal(t, []numeric.Vector{numeric.Vec3(0, 0, 1), numeric.Vec3(0, 1, 0)}, normals.Values())

	assert.Same(t, typeregistry.For(typeregistry.Bool), lits[2].Value.Type())
	assert.Equal(t, 0, lits[2].Value.Len())

	assert.EqualValues(t, 3, stats.Live())
	literal.ReleaseAll(lits)
	assert.EqualValues(t, 0, stats.Live())
}

func TestLoadBytes_HCLErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		msg  string
	}{
		{
			name: "syntax error",
			src:  `list "a" {`,
			msg:  "failed to parse HCL file",
		},
		{
			name: "unknown type",
			src:  `list "a" { type = string_list  values = [] }`,
			msg:  `unknown list type "string_list"`,
		},
		{
			name: "type is not a keyword",
			src:  `list "a" { type = "float_list"  values = [] }`,
			msg:  "Invalid type specification",
		},
		{
			name: "missing values",
			src:  `list "a" { type = int32_list }`,
			msg:  "values",
		},
		{
			name: "values reference a variable",
			src:  `list "a" { type = int32_list  values = var.xs }`,
			msg:  "Variables not allowed",
		},
		{
			name: "bad name",
			src:  `list "a.b" { type = int32_list  values = [] }`,
			msg:  "Invalid list name",
		},
		{
			name: "float out of range",
			src:  `list "big" { type = float_list  values = [1, 1e40] }`,
			msg:  "float_list element 1: 1e+40 is out of float32 range",
		},
		{
			name: "vector component out of range",
			src:  `list "far" { type = fvec3_list  values = [[0, -1e40, 0]] }`,
			msg:  "vector component 1: -1e+40 is out of float32 range",
		},
		{
			name: "fractional int",
			src:  `list "a" { type = int32_list  values = [1.5] }`,
			msg:  `list "a"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := literal.NewLoader().LoadBytes(context.Background(), "bad.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

const yamlDoc = `
lists:
  - name: offsets
    type: fvec3_list
    values: [[0, 0, 1], [0.5, 0.5, 0]]
  - name: ids
    type: int32
    select: "$.points[*].id"
  - name: flags
    type: bool_list
    values: [true, false, true]
data:
  points:
    - id: 4
    - id: 9
    - id: 4
`

func TestLoadBytes_YAML(t *testing.T) {
	lits, err := literal.NewLoader().LoadBytes(context.Background(), "lists.yaml", []byte(yamlDoc))
	require.NoError(t, err)
	defer literal.ReleaseAll(lits)
	require.Len(t, lits, 3)

	offsets, err := sharedlist.Cast(lits[0].Value, sharedlist.FVec3s)
	require.NoError(t, err)
	assert.Equal(t, []numeric.Vector{numeric.Vec3(0, 0, 1), numeric.Vec3(0.5, 0.5, 0)}, offsets.Values())

	ids, err := sharedlist.Cast(lits[1].Value, sharedlist.Int32s)
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 9, 4}, ids.Values())

	flags, err := sharedlist.Cast(lits[2].Value, sharedlist.Bools)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, flags.Values())
}

func TestLoadBytes_YAMLErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		msg  string
	}{
		{
			name: "missing lists",
			src:  "data: {}\n",
			msg:  "invalid literal document",
		},
		{
			name: "values and select together",
			src:  "lists:\n  - {name: a, type: float, values: [1], select: $.x}\ndata: {x: 1}\n",
			msg:  "invalid literal document",
		},
		{
			name: "unknown field",
			src:  "lists:\n  - {name: a, type: float, values: [1], extra: 2}\n",
			msg:  "invalid literal document",
		},
		{
			name: "unknown type",
			src:  "lists:\n  - {name: a, type: matrix, values: []}\n",
			msg:  `unknown list type "matrix"`,
		},
		{
			name: "values do not fit",
			src:  "lists:\n  - {name: a, type: bool_list, values: [1, 2]}\n",
			msg:  "values do not fit bool_list",
		},
		{
			name: "float out of range",
			src:  "lists:\n  - {name: big, type: float_list, values: [1.0e+40]}\n",
			msg:  "1e+40 is out of float32 range",
		},
		{
			name: "selected float out of range",
			src:  "lists:\n  - {name: big, type: float, select: '$.xs[*]'}\ndata: {xs: [2.0e+40]}\n",
			msg:  "2e+40 is out of float32 range",
		},
		{
			name: "select without data",
			src:  "lists:\n  - {name: a, type: float, select: $.x}\n",
			msg:  "needs a data section",
		},
		{
			name: "malformed yaml",
			src:  "lists: [\n",
			msg:  "failed to parse YAML file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := literal.NewLoader().LoadBytes(context.Background(), "bad.yml", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `list "first" { type = int32_list  values = [1, 2] }`)
	writeFile(t, dir, "nested/b.yaml", "lists:\n  - {name: second, type: float_list, values: [3]}\n")
	writeFile(t, dir, "README.md", "ignored")

	stats := sharedlist.NewStats()
	lits, err := literal.NewLoader(literal.WithTracker(stats), literal.WithParallelism(1)).Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, lits, 2)
	assert.Equal(t, "first", lits[0].Name)
	assert.Equal(t, "second", lits[1].Name)

	literal.ReleaseAll(lits)
	assert.EqualValues(t, 0, stats.Live())
}

func TestLoad_DuplicateNamesReleaseEverything(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `list "dup" { type = int32_list  values = [1] }`)
	writeFile(t, dir, "b.hcl", `list "dup" { type = int32_list  values = [2] }`)

	stats := sharedlist.NewStats()
	_, err := literal.NewLoader(literal.WithTracker(stats)).Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `list "dup"`)
	assert.Contains(t, err.Error(), "already defined")
	assert.EqualValues(t, 0, stats.Live())
}

func TestLoad_OverlappingPathsLoadFilesOnce(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.hcl", `list "only" { type = bool_list  values = [true] }`)

	stats := sharedlist.NewStats()
	lits, err := literal.NewLoader(literal.WithTracker(stats)).Load(context.Background(), dir, file, dir)
	require.NoError(t, err)
	require.Len(t, lits, 1)
	assert.Equal(t, "only", lits[0].Name)
	assert.Equal(t, file, lits[0].Source)

	literal.ReleaseAll(lits)
	assert.EqualValues(t, 0, stats.Live())
}

func TestLoad_EmptyDirectory(t *testing.T) {
	lits, err := literal.NewLoader().Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, lits)
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := literal.NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find literal files")
}
