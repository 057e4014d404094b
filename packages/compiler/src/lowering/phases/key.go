package phases

import (
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
)

// ExpandKeys lowers `@key` to a reconciliation key
func ExpandKeys(job *compilation.CompilationJob) {
	lowerDirectives(job, descriptor.KindKey, func(_ ir.Node, d *ir.DirectiveAttribute) ir.Node {
		return &ir.ReconciliationKey{Value: d.Value.Clone()}
	})
}
