package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boundInput = `
filePath: Pages/Index.razor
nodes:
  - tag: input
    mode: selfClosing
    attributes:
      - {name: "@bind", value: "Name"}
`

const emptyBind = `
filePath: Pages/Broken.razor
nodes:
  - tag: input
    mode: selfClosing
    attributes:
      - {name: "@bind", value: ""}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseLowerOptions(t *testing.T) {
	t.Run("should read flags and documents", func(t *testing.T) {
		opts, err := parseLowerOptions([]string{"-catalog", "c.yaml", "-metrics", "m.prom", "a.yaml", "b.yaml"})
		require.NoError(t, err)
		assert.Equal(t, "c.yaml", opts.catalogPath)
		assert.Equal(t, "m.prom", opts.metricsPath)
		assert.Equal(t, ".env", opts.envFile)
		assert.Equal(t, []string{"a.yaml", "b.yaml"}, opts.documents)
	})

	t.Run("should reject unknown flags", func(t *testing.T) {
		_, err := parseLowerOptions([]string{"-bogus"})
		assert.Error(t, err)
	})
}

func TestLower(t *testing.T) {
	t.Run("should write lowered documents and metrics", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "index.yaml", boundInput)
		metricsPath := filepath.Join(dir, "lower.prom")

		var out bytes.Buffer
		hasErrors, err := lower(&lowerOptions{metricsPath: metricsPath, documents: []string{doc}}, &out)
		require.NoError(t, err)
		assert.False(t, hasErrors)

		var result []map[string]interface{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Len(t, result, 1)
		assert.Equal(t, "Pages/Index.razor", result[0]["filePath"])
		assert.Contains(t, out.String(), `"name": "onchange"`)

		data, err := os.ReadFile(metricsPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "rzc_documents_lowered_total 1")
	})

	t.Run("should report error diagnostics", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "broken.yaml", emptyBind)

		var out bytes.Buffer
		hasErrors, err := lower(&lowerOptions{documents: []string{doc}}, &out)
		require.NoError(t, err)
		assert.True(t, hasErrors)
		assert.Contains(t, out.String(), "RZ10006")
	})

	t.Run("should take documents from the project file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "index.yaml", boundInput)
		project := writeFile(t, dir, "rzc.yaml", "documents: [index.yaml]\nworkers: 2\n")

		var out bytes.Buffer
		hasErrors, err := lower(&lowerOptions{configPath: project}, &out)
		require.NoError(t, err)
		assert.False(t, hasErrors)
		assert.Contains(t, out.String(), "Pages/Index.razor")
	})

	t.Run("should fail without documents", func(t *testing.T) {
		_, err := lower(&lowerOptions{}, &bytes.Buffer{})
		assert.EqualError(t, err, "no documents to lower")
	})

	t.Run("should fail on a missing document", func(t *testing.T) {
		_, err := lower(&lowerOptions{documents: []string{filepath.Join(t.TempDir(), "missing.yaml")}}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
