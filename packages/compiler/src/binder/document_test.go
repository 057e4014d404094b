package binder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `
filePath: Pages/Index.razor
namespace: App.Pages
nodes:
  - using: App.Components
  - tag: input
    mode: selfClosing
    attributes:
      - {name: "@bind", value: "Name"}
      - name: disabled
  - text: Hello
`

func TestParseDocument(t *testing.T) {
	t.Run("should parse nodes and record their positions", func(t *testing.T) {
		doc, err := ParseDocument([]byte(sampleDocument))
		require.NoError(t, err)

		assert.Equal(t, "Pages/Index.razor", doc.FilePath)
		assert.Equal(t, "App.Pages", doc.Namespace)
		require.Len(t, doc.Nodes, 3)

		assert.Equal(t, "App.Components", doc.Nodes[0].Using)
		assert.Equal(t, 5, doc.Nodes[0].Line)
		assert.Equal(t, 5, doc.Nodes[0].Column)

		input := doc.Nodes[1]
		assert.Equal(t, "input", input.Tag)
		assert.Equal(t, "selfClosing", input.Mode)
		require.Len(t, input.Attributes, 2)
		require.NotNil(t, input.Attributes[0].Value)
		assert.Equal(t, "Name", *input.Attributes[0].Value)
		assert.Equal(t, 9, input.Attributes[0].Line)
		assert.Equal(t, 9, input.Attributes[0].Column)
		assert.Nil(t, input.Attributes[1].Value, "an attribute without a value is minimized")

		assert.Equal(t, "Hello", doc.Nodes[2].Text)
	})

	t.Run("should accept JSON documents", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{"filePath": "a.razor", "nodes": [{"tag": "div", "children": [{"expr": "Count"}]}]}`))
		require.NoError(t, err)
		require.Len(t, doc.Nodes, 1)
		require.Len(t, doc.Nodes[0].Children, 1)
		assert.Equal(t, "Count", doc.Nodes[0].Children[0].Expr)
	})

	t.Run("should reject malformed nodes", func(t *testing.T) {
		cases := map[string]string{
			"two kinds":              "nodes: [{tag: div, text: hi}]",
			"no kind":                "nodes: [{mode: startEnd}]",
			"unknown mode":           "nodes: [{tag: div, mode: open}]",
			"attributes on text":     "nodes: [{text: hi, attributes: [{name: a}]}]",
			"attribute without name": "nodes: [{tag: div, attributes: [{value: x}]}]",
			"nested error":           "nodes: [{tag: div, children: [{expr: a, using: b}]}]",
		}
		for name, data := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := ParseDocument([]byte(data))
				assert.Error(t, err)
			})
		}
	})
}

func TestLoadDocument(t *testing.T) {
	t.Run("should default the file path to the path it was loaded from", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Counter.yaml")
		require.NoError(t, os.WriteFile(path, []byte("nodes: [{text: hi}]"), 0o644))

		doc, err := LoadDocument(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(path), doc.FilePath)
	})

	t.Run("should report a missing file", func(t *testing.T) {
		_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read document")
	})
}
