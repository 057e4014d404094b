package phases

import (
	"strings"

	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/diagnostics"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
)

const formTagName = "form"

// ExpandFormNames lowers `@formname`. Outside a `<form>` the name is still emitted.
func ExpandFormNames(job *compilation.CompilationJob) {
	cfg := job.Config
	lowerDirectives(job, descriptor.KindFormName, func(parent ir.Node, d *ir.DirectiveAttribute) ir.Node {
		element, ok := parent.(*ir.MarkupElement)
		switch {
		case !ok || !strings.EqualFold(element.TagName, formTagName):
			parent.Base().AddDiagnostic(diagnostics.FormNameNotOnForm(d.Span, tagName(parent)))
		case !hasSubmitHandler(element):
			parent.Base().AddDiagnostic(diagnostics.FormNameWithoutSubmit(d.Span))
		}
		if !cfg.SupportsRenderModes() {
			parent.Base().AddDiagnostic(diagnostics.UnsupportedLanguageVersion(
				d.Span, d.Name, config.Version8_0.String(), cfg.LanguageVersion.String()))
		}
		return &ir.FormNameAssignment{Value: d.Value.Clone()}
	})
}

func hasSubmitHandler(element *ir.MarkupElement) bool {
	for _, child := range element.Children {
		switch n := child.(type) {
		case *ir.MarkupAttribute:
			if n.IsEventCallback && strings.EqualFold(n.Name, "onsubmit") {
				return true
			}
		case *ir.DirectiveAttribute:
			if strings.EqualFold(n.BaseName, descriptor.EventPrefix+"submit") {
				return true
			}
		}
	}
	return false
}
