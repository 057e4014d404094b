package phases

import (
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/identifiers"
	"rzc-go/packages/compiler/src/lowering/ir"
)

// ExpandSplats lowers `@attributes` to an attribute bag, type-checked as a sequence of
// name/value pairs.
func ExpandSplats(job *compilation.CompilationJob) {
	lowerDirectives(job, descriptor.KindSplat, func(_ ir.Node, d *ir.DirectiveAttribute) ir.Node {
		check := identifiers.Generic(identifiers.TypeCheck.String(), identifiers.AttributeSequence)
		return &ir.AttributeBag{Value: ir.CodeValue(call(check, d.Value.AsCode()))}
	})
}
