package phases

import (
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/identifiers"
	"rzc-go/packages/compiler/src/lowering/ir"
)

// ExpandReferences lowers `@ref`. A capture on a component is typed as the component; a
// capture on an element is an element reference.
func ExpandReferences(job *compilation.CompilationJob) {
	lowerDirectives(job, descriptor.KindRef, func(parent ir.Node, d *ir.DirectiveAttribute) ir.Node {
		capture := &ir.ReferenceCapture{Value: d.Value.Clone(), TypeName: identifiers.ElementReference.String()}
		if invocation, ok := parent.(*ir.ComponentInvocation); ok {
			capture.IsComponentCapture = true
			capture.TypeName = invocation.TypeName
		}
		return capture
	})
}
