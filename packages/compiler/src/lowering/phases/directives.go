package phases

import (
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/diagnostics"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
)

// directiveLowering rewrites one directive occurrence into a primitive. Returning nil removes
// the occurrence.
type directiveLowering func(parent ir.Node, d *ir.DirectiveAttribute) ir.Node

// lowerDirectives applies lower to every occurrence of kind on every lowered tag. Occurrences
// with a parameter or without a value are diagnosed and left in place.
func lowerDirectives(job *compilation.CompilationJob, kind descriptor.Kind, lower directiveLowering) {
	for _, ref := range loweredTags(job.Document) {
		parent := ref.Node
		for _, d := range directivesOfKind(parent, kind) {
			if d.IsParameterized() {
				parent.Base().AddDiagnostic(diagnostics.DirectiveParameterUnknown(d.Span, d.BaseName, d.Parameter))
				continue
			}
			if d.Minimized || d.Value.IsEmpty() {
				parent.Base().AddDiagnostic(diagnostics.DirectiveEmptyValue(d.Span, d.Name))
				continue
			}
			if node := lower(parent, d); node != nil {
				node.Base().Span = d.Span
				replaceOccurrences(parent, []*ir.DirectiveAttribute{d}, node)
			} else {
				removeOccurrences(parent, []*ir.DirectiveAttribute{d})
			}
		}
	}
}
