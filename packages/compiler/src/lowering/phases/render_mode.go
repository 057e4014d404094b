package phases

import (
	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/diagnostics"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
)

// ExpandRenderModes lowers `@rendermode`. On a markup element it is reported and still assigned;
// on a component that declares a fixed render mode it is dropped.
func ExpandRenderModes(job *compilation.CompilationJob) {
	cfg := job.Config
	lowerDirectives(job, descriptor.KindRenderMode, func(parent ir.Node, d *ir.DirectiveAttribute) ir.Node {
		if invocation, ok := parent.(*ir.ComponentInvocation); ok {
			if declared := invocation.Component.RenderMode; declared != "" {
				parent.Base().AddDiagnostic(diagnostics.RenderModeConflict(d.Span, invocation.Component.DisplayName(), declared))
				return nil
			}
		} else {
			parent.Base().AddDiagnostic(diagnostics.RenderModeOnElement(d.Span, tagName(parent)))
		}
		if !cfg.SupportsRenderModes() {
			parent.Base().AddDiagnostic(diagnostics.UnsupportedLanguageVersion(
				d.Span, d.Name, config.Version8_0.String(), cfg.LanguageVersion.String()))
		}
		return &ir.RenderModeAssignment{Value: d.Value.Clone()}
	})
}
