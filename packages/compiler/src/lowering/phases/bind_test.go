package phases_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rzc-go/packages/compiler/src/binder"
	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/lowering/phases"
)

const (
	formatValue      = runtime + "BindConverter.FormatValue"
	createBinder     = factory + "CreateBinder"
	bindSetter       = helpers + "CreateInferredBindSetter"
	inferredCallback = helpers + "CreateInferredEventCallback"
	invariantCulture = global + "System.Globalization.CultureInfo.InvariantCulture"
)

var bindPhases = []func(*compilation.CompilationJob){
	phases.ResolveDuplicateDirectives,
	phases.ClassifyElements,
	phases.ExpandBindings,
}

func editorComponent() *descriptor.ComponentDeclaration {
	return &descriptor.ComponentDeclaration{
		TypeName: "Test.App.Components.Editor",
		Attributes: []*descriptor.BoundAttribute{
			{Name: "Value", TypeName: "System.String"},
			{Name: "ValueChanged", TypeName: "Microsoft.AspNetCore.Components.EventCallback<System.String>", IsEventCallback: true},
			{Name: "ValueExpression", TypeName: "System.Linq.Expressions.Expression<System.Func<System.String>>"},
		},
	}
}

func sliderComponent() *descriptor.ComponentDeclaration {
	return &descriptor.ComponentDeclaration{
		TypeName: "Test.App.Components.Slider",
		Attributes: []*descriptor.BoundAttribute{
			{Name: "Value", TypeName: "System.Int32"},
			{Name: "ValueChanged", TypeName: "System.Action<System.Int32>", IsDelegate: true},
		},
	}
}

func TestExpandBindings(t *testing.T) {
	humanizeBind := func(catalog *descriptor.Catalog, cfg *config.CompilerConfig, source ...*binder.NodeYAML) ([]interface{}, []interface{}) {
		job := lower(catalog, cfg, source, bindPhases...)
		return ir.Humanize(job.Document), ir.HumanizeDiagnostics(job.Document)
	}

	t.Run("elements", func(t *testing.T) {
		t.Run("should expand @bind into a formatted value and a binder on change", func(t *testing.T) {
			rows, diags := humanizeBind(catalogWith(), latest(), tag("input", attr("@bind", "Name")))

			expected := []interface{}{
				[]interface{}{"MarkupElement", "input", 0},
				[]interface{}{"MarkupAttribute", "value", 1, formatValue + "(Name)"},
				[]interface{}{"MarkupAttribute", "onchange", 1, createBinder + "(this, __value => Name = __value, Name)", "updates=value"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
			if len(diags) != 0 {
				t.Errorf("expected no diagnostics, got %v", diags)
			}
		})

		t.Run("should use the format and culture of the input type", func(t *testing.T) {
			rows, _ := humanizeBind(catalogWith(), latest(), tag("input", attr("type", "date"), attr("@bind", "When")))

			extras := `format: "yyyy-MM-dd", culture: ` + invariantCulture
			expected := []interface{}{
				[]interface{}{"MarkupElement", "input", 0},
				[]interface{}{"MarkupAttribute", "type", 1, "date"},
				[]interface{}{"MarkupAttribute", "value", 1, formatValue + "(When, " + extras + ")"},
				[]interface{}{"MarkupAttribute", "onchange", 1, createBinder + "(this, __value => When = __value, When, " + extras + ")", "updates=value"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should bind checked for checkboxes", func(t *testing.T) {
			rows, _ := humanizeBind(catalogWith(), latest(), tag("input", attr("type", "checkbox"), attr("@bind", "Done")))

			expected := []interface{}{
				[]interface{}{"MarkupElement", "input", 0},
				[]interface{}{"MarkupAttribute", "type", 1, "checkbox"},
				[]interface{}{"MarkupAttribute", "checked", 1, formatValue + "(Done)"},
				[]interface{}{"MarkupAttribute", "onchange", 1, createBinder + "(this, __value => Done = __value, Done)", "updates=checked"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should honor explicit :format and :event", func(t *testing.T) {
			rows, _ := humanizeBind(catalogWith(), latest(), tag("input",
				attr("@bind", "Price"), attr("@bind:format", "0.00"), attr("@bind:event", "oninput")))

			expected := []interface{}{
				[]interface{}{"MarkupElement", "input", 0},
				[]interface{}{"MarkupAttribute", "value", 1, formatValue + `(Price, format: "0.00")`},
				[]interface{}{"MarkupAttribute", "oninput", 1, createBinder + `(this, __value => Price = __value, Price, format: "0.00")`, "updates=value"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should derive names from the attribute for unknown elements", func(t *testing.T) {
			rows, _ := humanizeBind(catalogWith(), latest(),
				tag("div", attr("@bind-title", "Title")),
				tag("span", attr("@bind-value-oninput", "Name")))

			expected := []interface{}{
				[]interface{}{"MarkupElement", "div", 0},
				[]interface{}{"MarkupAttribute", "title", 1, formatValue + "(Title)"},
				[]interface{}{"MarkupAttribute", "onchange", 1, createBinder + "(this, __value => Title = __value, Title)", "updates=title"},
				[]interface{}{"MarkupElement", "span", 0},
				[]interface{}{"MarkupAttribute", "value", 1, formatValue + "(Name)"},
				[]interface{}{"MarkupAttribute", "oninput", 1, createBinder + "(this, __value => Name = __value, Name)", "updates=value"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should route :get/:set/:after through the bind setter helper", func(t *testing.T) {
			rows, _ := humanizeBind(catalogWith(), latest(),
				tag("input", attr("@bind:get", "Name"), attr("@bind:set", "SetName")),
				tag("textarea", attr("@bind", "Notes"), attr("@bind:after", "Save")))

			setter := bindSetter + "(callback: SetName, value: Name)"
			after := bindSetter + "(callback: __value => { Notes = __value; return " + helpers + "InvokeAsynchronousDelegate(callback: Save); }, value: Notes)"
			expected := []interface{}{
				[]interface{}{"MarkupElement", "input", 0},
				[]interface{}{"MarkupAttribute", "value", 1, formatValue + "(Name)"},
				[]interface{}{"MarkupAttribute", "onchange", 1, createBinder + "(this, " + setter + ", Name)", "updates=value"},
				[]interface{}{"MarkupElement", "textarea", 0},
				[]interface{}{"MarkupAttribute", "value", 1, formatValue + "(Notes)"},
				[]interface{}{"MarkupAttribute", "onchange", 1, createBinder + "(this, " + after + ", Notes)", "updates=value"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
		})
	})

	t.Run("components", func(t *testing.T) {
		t.Run("should expand @bind-Value into value, changed and expression parameters", func(t *testing.T) {
			rows, diags := humanizeBind(catalogWith(editorComponent()), latest(), tag("Editor", attr("@bind-Value", "Name")))

			changed := factory + "Create<global::System.String>(this, " + inferredCallback + "(this, __value => Name = __value, Name))"
			expected := []interface{}{
				[]interface{}{"ComponentInvocation", "global::Test.App.Components.Editor", 0},
				[]interface{}{"ComponentParameter", "Value", 1, "Name"},
				[]interface{}{"ComponentParameter", "ValueChanged", 1, changed},
				[]interface{}{"ComponentParameter", "ValueExpression", 1, "() => Name"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
			if len(diags) != 0 {
				t.Errorf("expected no diagnostics, got %v", diags)
			}
		})

		t.Run("should call the :after hook synchronously for delegate parameters", func(t *testing.T) {
			rows, _ := humanizeBind(catalogWith(sliderComponent()), latest(),
				tag("Slider", attr("@bind-Value", "Level"), attr("@bind-Value:after", "Save")))

			expected := []interface{}{
				[]interface{}{"ComponentInvocation", "global::Test.App.Components.Slider", 0},
				[]interface{}{"ComponentParameter", "Value", 1, "Level"},
				[]interface{}{"ComponentParameter", "ValueChanged", 1, "__value => { Level = __value; " + helpers + "InvokeSynchronousDelegate(Save); }"},
				[]interface{}{"ToolingReference", "after", 1, "Save"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should omit tooling references when disabled", func(t *testing.T) {
			cfg := config.NewCompilerConfig(config.WithToolingReferences(false))
			job := lower(catalogWith(sliderComponent()), cfg,
				nodes(tag("Slider", attr("@bind-Value", "Level"), attr("@bind-Value:after", "Save"))),
				bindPhases...)

			if refs := ir.FindDescendantsOfKind(job.Document, ir.NodeKindToolingReference); len(refs) != 0 {
				t.Errorf("expected no tooling references, got %d", len(refs))
			}
		})
	})

	t.Run("diagnostics", func(t *testing.T) {
		t.Run("should report :set without :get once and leave the attribute unexpanded", func(t *testing.T) {
			rows, diags := humanizeBind(catalogWith(), latest(), tag("input", attr("@bind:set", "SetName")))

			expected := []interface{}{
				[]interface{}{"MarkupElement", "input", 0},
				[]interface{}{"DirectiveAttribute", "@bind:set", 1, "SetName"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]interface{}{[]interface{}{"RZ10008", "error"}}, diags); diff != "" {
				t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should report shape errors", func(t *testing.T) {
			cases := []struct {
				name     string
				node     *binder.NodeYAML
				expected string
			}{
				{"get without set", tag("input", attr("@bind:get", "Name")), "RZ10009"},
				{"get with base", tag("input", attr("@bind", "Name"), attr("@bind:get", "Name"), attr("@bind:set", "SetName")), "RZ10011"},
				{"modifier without base", tag("input", attr("@bind:format", "d")), "RZ10022"},
				{"empty value", tag("input", attr("@bind", " ")), "RZ10006"},
				{"minimized", tag("input", minimized("@bind")), "RZ10006"},
			}
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					_, diags := humanizeBind(catalogWith(), latest(), tc.node)
					if diff := cmp.Diff([]interface{}{[]interface{}{tc.expected, "error"}}, diags); diff != "" {
						t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
					}
				})
			}
		})

		t.Run("should report :after combined with :set but still expand", func(t *testing.T) {
			rows, diags := humanizeBind(catalogWith(), latest(),
				tag("input", attr("@bind:get", "Name"), attr("@bind:set", "SetName"), attr("@bind:after", "Save")))

			if diff := cmp.Diff([]interface{}{[]interface{}{"RZ10010", "error"}}, diags); diff != "" {
				t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
			}
			if len(rows) != 3 {
				t.Errorf("expected the binding to expand, got %v", rows)
			}
		})

		t.Run("should gate :get/:set on the language version", func(t *testing.T) {
			cfg := config.NewCompilerConfig(config.WithLanguageVersion(config.Version6_0))
			rows, diags := humanizeBind(catalogWith(), cfg,
				tag("input", attr("@bind:get", "Name"), attr("@bind:set", "SetName")))

			if diff := cmp.Diff([]interface{}{[]interface{}{"RZ10007", "error"}}, diags); diff != "" {
				t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
			}
			if len(rows) != 3 {
				t.Errorf("expected the binding to expand, got %v", rows)
			}
		})

		t.Run("should report a second binding of the same attribute and drop it", func(t *testing.T) {
			rows, diags := humanizeBind(catalogWith(), latest(),
				tag("input", attr("@bind", "A"), attr("@bind-value", "B")))

			expected := []interface{}{
				[]interface{}{"MarkupElement", "input", 0},
				[]interface{}{"MarkupAttribute", "value", 1, formatValue + "(A)"},
				[]interface{}{"MarkupAttribute", "onchange", 1, createBinder + "(this, __value => A = __value, A)", "updates=value"},
			}
			if diff := cmp.Diff(expected, rows); diff != "" {
				t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]interface{}{[]interface{}{"RZ10013", "error"}}, diags); diff != "" {
				t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("should report an unknown parameter", func(t *testing.T) {
			_, diags := humanizeBind(catalogWith(), latest(),
				tag("input", attr("@bind", "Name"), attr("@bind:bogus", "x")))

			if diff := cmp.Diff([]interface{}{[]interface{}{"RZ10020", "error"}}, diags); diff != "" {
				t.Errorf("HumanizeDiagnostics() mismatch (-want +got):\n%s", diff)
			}
		})
	})
}
