package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rzc-go/packages/compiler/src/util"
)

func sampleTree() (*Document, *MarkupElement) {
	element := &MarkupElement{TagName: "ul"}
	element.AddChild(&MarkupAttribute{Name: "class", Value: HTMLValue("list")})
	element.AddChild(&HTMLContent{Content: "a"})
	element.AddChild(&HTMLContent{Content: "b"})
	doc := &Document{FilePath: "a.razor"}
	doc.AddChild(&NamespaceImport{Namespace: "App"})
	doc.AddChild(element)
	return doc, element
}

func TestTree(t *testing.T) {
	t.Run("should replace a child with several nodes", func(t *testing.T) {
		doc, element := sampleTree()
		element.ReplaceChild(1, &HTMLContent{Content: "x"}, &HTMLContent{Content: "y"})

		expected := []interface{}{
			[]interface{}{"NamespaceImport", "App", 0},
			[]interface{}{"MarkupElement", "ul", 0},
			[]interface{}{"MarkupAttribute", "class", 1, "list"},
			[]interface{}{"HTMLContent", "x", 1},
			[]interface{}{"HTMLContent", "y", 1},
			[]interface{}{"HTMLContent", "b", 1},
		}
		if diff := cmp.Diff(expected, Humanize(doc)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should edit through references", func(t *testing.T) {
		doc, _ := sampleTree()
		refs := FindDescendantsOfKind(doc, NodeKindHTMLContent)
		refs[0].InsertBefore(&HTMLContent{Content: "before"})
		refs[1].InsertAfter(&HTMLContent{Content: "after"})
		refs[0].Remove()

		var contents []string
		for _, ref := range FindDescendantsOfKind(doc, NodeKindHTMLContent) {
			contents = append(contents, ref.Node.(*HTMLContent).Content)
		}
		if diff := cmp.Diff([]string{"before", "b", "after"}, contents); diff != "" {
			t.Errorf("contents mismatch (-want +got):\n%s", diff)
		}
		if refs[0].Index() != -1 {
			t.Errorf("expected the removed node to have no index")
		}
	})

	t.Run("should panic on an out-of-range edit", func(t *testing.T) {
		_, element := sampleTree()
		defer func() {
			if recover() == nil {
				t.Errorf("expected a panic")
			}
		}()
		element.ReplaceChild(5)
	})

	t.Run("should remove matching children and return them", func(t *testing.T) {
		_, element := sampleTree()
		removed := element.RemoveChildren(func(n Node) bool { return n.Kind() == NodeKindHTMLContent })
		if len(removed) != 2 || len(element.Children) != 1 {
			t.Errorf("expected two removed and one kept, got %d and %d", len(removed), len(element.Children))
		}
		element.RemoveChild(0)
		if len(element.Children) != 0 {
			t.Errorf("expected no children, got %d", len(element.Children))
		}
	})

	t.Run("should walk with ancestors and prune", func(t *testing.T) {
		doc, _ := sampleTree()
		var depths []int
		Walk(doc, func(node Node, ancestors []Node) bool {
			depths = append(depths, len(ancestors))
			return node.Kind() != NodeKindMarkupElement
		})
		if diff := cmp.Diff([]int{0, 1, 1}, depths); diff != "" {
			t.Errorf("Walk() depths mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should collect diagnostics in document order", func(t *testing.T) {
		doc, element := sampleTree()
		doc.AddDiagnostic(util.NewDiagnostic("RZ1", nil, "document"))
		element.Children[2].Base().AddDiagnostic(util.NewWarning("RZ3", nil, "child"))
		element.AddDiagnostic(util.NewDiagnostic("RZ2", nil, "element"))

		expected := []interface{}{
			[]interface{}{"RZ1", "error"},
			[]interface{}{"RZ2", "error"},
			[]interface{}{"RZ3", "warning"},
		}
		if diff := cmp.Diff(expected, HumanizeDiagnostics(doc)); diff != "" {
			t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
		}
	})
}
