package app_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fnlists/internal/app"
)

const meshHCL = `
list "weights" {
  type   = float_list
  values = [1, 2.5]
}

list "normals" {
  type   = fvec3
  values = [[0, 0, 1]]
}

list "mask" {
  type   = bool_list
  values = []
}
`

const idsYAML = `
lists:
  - name: ids
    type: int32_list
    values: [4, 9]
`

func writeLiterals(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mesh.hcl"), []byte(meshHCL), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ids.yaml"), []byte(idsYAML), 0o600))
	return dir
}

func TestInspect_Text(t *testing.T) {
	dir := writeLiterals(t)
	a, out, logs := app.SetupAppTest(t, app.Config{Paths: []string{dir}})

	require.NoError(t, a.Inspect(context.Background()))

	report := out.String()
	for _, want := range []string{
		"literal.weights", "float_list", "[1, 2.5]",
		"literal.normals", "fvec3_list", "[(0, 0, 1)]",
		"literal.mask", "bool_list", "[]",
		"literal.ids", "int32_list", "[4, 9]",
	} {
		assert.Contains(t, report, want)
	}
	assert.Contains(t, logs.String(), "Inspect finished.")
	assert.EqualValues(t, 0, a.Stats().Live())
	assert.EqualValues(t, 4, a.Stats().Allocs())
	assert.EqualValues(t, 4, a.Stats().Frees())
}

func TestInspect_JSON(t *testing.T) {
	dir := writeLiterals(t)
	a, out, _ := app.SetupAppTest(t, app.Config{Paths: []string{dir}, Output: "json"})

	require.NoError(t, a.Inspect(context.Background()))

	var reports []struct {
		Socket string `json:"socket"`
		Type   string `json:"type"`
		Len    int    `json:"len"`
		Source string `json:"source"`
		Values any    `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.String()), &reports))
	require.Len(t, reports, 4)

	// Sockets are reported in address order.
	assert.Equal(t, "literal.ids", reports[0].Socket)
	assert.Equal(t, "literal.mask", reports[1].Socket)
	assert.Equal(t, "literal.normals", reports[2].Socket)
	assert.Equal(t, "literal.weights", reports[3].Socket)

	assert.Equal(t, []any{4.0, 9.0}, reports[0].Values)
	assert.Equal(t, []any{}, reports[1].Values)
	assert.Equal(t, []any{[]any{0.0, 0.0, 1.0}}, reports[2].Values)
	assert.Equal(t, 2, reports[3].Len)
	assert.Equal(t, filepath.Join(dir, "mesh.hcl"), reports[3].Source)
}

func TestInspect_YAML(t *testing.T) {
	dir := writeLiterals(t)
	a, out, _ := app.SetupAppTest(t, app.Config{Paths: []string{filepath.Join(dir, "ids.yaml")}, Output: "yaml"})

	require.NoError(t, a.Inspect(context.Background()))

	var reports []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out.String()), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "literal.ids", reports[0]["socket"])
	assert.Equal(t, "int32_list", reports[0]["type"])
}

func TestInspect_LoadError(t *testing.T) {
	dir := writeLiterals(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.hcl"), []byte(`list "x" {`), 0o600))
	a, out, _ := app.SetupAppTest(t, app.Config{Paths: []string{dir}})

	err := a.Inspect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load literals")
	assert.Empty(t, out.String())
	assert.EqualValues(t, 0, a.Stats().Live())
}

func TestInspect_FloatOverflowFailsAtLoad(t *testing.T) {
	dir := t.TempDir()
	src := "list \"big\" {\n  type   = float_list\n  values = [1e40]\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.hcl"), []byte(src), 0o600))
	a, out, _ := app.SetupAppTest(t, app.Config{Paths: []string{dir}})

	err := a.Inspect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load literals")
	assert.Contains(t, err.Error(), "out of float32 range")
	assert.Empty(t, out.String())
	assert.EqualValues(t, 0, a.Stats().Live())
}

func TestInspect_NoFiles(t *testing.T) {
	a, out, logs := app.SetupAppTest(t, app.Config{Paths: []string{t.TempDir()}})

	require.NoError(t, a.Inspect(context.Background()))
	assert.Contains(t, logs.String(), "No literal files found.")
	assert.NotContains(t, out.String(), "literal.")
}

func TestTypes(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		a, out, _ := app.SetupAppTest(t, app.Config{})
		require.NoError(t, a.Types(context.Background()))
		for _, want := range []string{"float_list", "fvec3_list", "int32_list", "bool_list", "numeric.Vector"} {
			assert.Contains(t, out.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		a, out, _ := app.SetupAppTest(t, app.Config{Output: "json"})
		require.NoError(t, a.Types(context.Background()))

		var reports []struct {
			Name      string `json:"name"`
			Element   string `json:"element"`
			ElemSize  int    `json:"elem_size"`
			ElemAlign int    `json:"elem_align"`
		}
		require.NoError(t, json.Unmarshal([]byte(out.String()), &reports))
		require.Len(t, reports, 4)
		assert.Equal(t, "fvec3_list", reports[1].Name)
		assert.Equal(t, "fvec3", reports[1].Element)
		assert.Equal(t, 12, reports[1].ElemSize)
		assert.Equal(t, 4, reports[1].ElemAlign)
	})
}
