package phases_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rzc-go/packages/compiler/src/binder"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/lowering/phases"
)

const mouseEventArgs = global + "Microsoft.AspNetCore.Components.Web.MouseEventArgs"

var eventPhases = []func(*compilation.CompilationJob){
	phases.ResolveDuplicateDirectives,
	phases.ClassifyElements,
	phases.ExpandBindings,
	phases.ExpandEventHandlers,
}

func buttonComponent() *descriptor.ComponentDeclaration {
	return &descriptor.ComponentDeclaration{
		TypeName: "Test.App.Components.Button",
		Attributes: []*descriptor.BoundAttribute{
			{Name: "OnClick", TypeName: "Microsoft.AspNetCore.Components.EventCallback<Microsoft.AspNetCore.Components.Web.MouseEventArgs>", IsEventCallback: true},
		},
	}
}

func TestExpandEventHandlers(t *testing.T) {
	run := func(catalog *descriptor.Catalog, source ...*binder.NodeYAML) *compilation.CompilationJob {
		return lower(catalog, latest(), source, eventPhases...)
	}

	t.Run("should wrap a handler in a typed event callback", func(t *testing.T) {
		job := run(catalogWith(), tag("button", attr("@onclick", "Go")), tag("div", attr("@onmyevent", "Handle")))

		expected := []interface{}{
			[]interface{}{"MarkupElement", "button", 0},
			[]interface{}{"MarkupAttribute", "onclick", 1, factory + "Create<" + mouseEventArgs + ">(this, Go)"},
			[]interface{}{"MarkupElement", "div", 0},
			[]interface{}{"MarkupAttribute", "onmyevent", 1, factory + "Create<global::System.EventArgs>(this, Handle)"},
		}
		if diff := cmp.Diff(expected, ir.Humanize(job.Document)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
		if len(job.Diagnostics()) != 0 {
			t.Errorf("expected no diagnostics, got %v", job.Diagnostics())
		}
	})

	t.Run("should lower modifiers to event options", func(t *testing.T) {
		job := run(catalogWith(), tag("form",
			attr("@onsubmit", "Save"),
			minimized("@onsubmit:preventDefault"),
			attr("@onsubmit:stopPropagation", "stop")))

		expected := []interface{}{
			[]interface{}{"MarkupElement", "form", 0},
			[]interface{}{"MarkupAttribute", "onsubmit", 1, factory + "Create<global::System.EventArgs>(this, Save)"},
			[]interface{}{"EventOption", "onsubmit:preventDefault", 1, "true"},
			[]interface{}{"EventOption", "onsubmit:stopPropagation", 1, "stop"},
		}
		if diff := cmp.Diff(expected, ir.Humanize(job.Document)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should set a component event parameter", func(t *testing.T) {
		job := run(catalogWith(buttonComponent()), tag("Button", attr("@onclick", "Go")))

		expected := []interface{}{
			[]interface{}{"ComponentInvocation", "global::Test.App.Components.Button", 0},
			[]interface{}{"ComponentParameter", "onclick", 1, factory + "Create<" + mouseEventArgs + ">(this, Go)"},
		}
		if diff := cmp.Diff(expected, ir.Humanize(job.Document)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
		param := firstOfKind(t, job.Document, ir.NodeKindComponentParameter).(*ir.ComponentParameter)
		if !param.IsEventCallback {
			t.Errorf("expected an event callback parameter")
		}
	})

	t.Run("should silently drop a handler that collides with a component parameter", func(t *testing.T) {
		job := run(catalogWith(buttonComponent()), tag("Button",
			attr("OnClick", "Go"),
			attr("@onclick", "Other"),
			minimized("@onclick:preventDefault")))

		expected := []interface{}{
			[]interface{}{"ComponentInvocation", "global::Test.App.Components.Button", 0},
			[]interface{}{"ComponentParameter", "OnClick", 1, "Go"},
		}
		if diff := cmp.Diff(expected, ir.Humanize(job.Document)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
		if len(job.Diagnostics()) != 0 {
			t.Errorf("expected no diagnostics, got %v", job.Diagnostics())
		}
	})

	t.Run("should report handlers for the same event that differ only in case", func(t *testing.T) {
		job := run(catalogWith(), tag("button", attr("@onclick", "A"), attr("@onClick", "B")))

		expected := []interface{}{
			[]interface{}{"MarkupElement", "button", 0},
		}
		if diff := cmp.Diff(expected, ir.Humanize(job.Document)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]interface{}{[]interface{}{"RZ10014", "error"}}, ir.HumanizeDiagnostics(job.Document)); diff != "" {
			t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should leave invalid occurrences in place", func(t *testing.T) {
		cases := []struct {
			name     string
			attr     *binder.AttributeYAML
			expected string
		}{
			{"empty handler", attr("@onclick", ""), "RZ10006"},
			{"minimized handler", minimized("@onclick"), "RZ10006"},
			{"unknown modifier", attr("@onclick:bogus", "x"), "RZ10020"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				job := run(catalogWith(), tag("button", tc.attr))

				if refs := ir.FindDescendantsOfKind(job.Document, ir.NodeKindDirectiveAttribute); len(refs) != 1 {
					t.Errorf("expected the occurrence to remain, got %d", len(refs))
				}
				if diff := cmp.Diff([]interface{}{[]interface{}{tc.expected, "error"}}, ir.HumanizeDiagnostics(job.Document)); diff != "" {
					t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
				}
			})
		}
	})
}
