package phases

import (
	"rzc-go/packages/compiler/src/diagnostics"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
)

// ResolveDuplicateDirectives removes conflicting directive attribute occurrences before any other
// phase looks at them. The binder creates one occurrence per matching helper, so a single
// attribute matched by a catch-all helper and a specific one shows up twice: the catch-all
// occurrence is dropped. Any remaining unparameterized name that still occurs more than once is
// a genuine conflict: it is reported once and every occurrence is removed, since no winner can
// be picked.
//
// Parameterized occurrences (`@bind-Value:event`) are not part of the conflict sweep.
func ResolveDuplicateDirectives(job *compilation.CompilationJob) {
	for _, ref := range ir.FindDescendantsOfKind(job.Document, ir.NodeKindTagCandidate) {
		resolveDuplicateDirectives(ref.Node.(*ir.TagCandidate))
	}
}

func resolveDuplicateDirectives(tag *ir.TagCandidate) {
	directives := ir.DirectiveAttributes(tag)
	if len(directives) < 2 {
		return
	}

	specific := map[string]bool{}
	for _, d := range directives {
		if !d.Descriptor.IsFallback {
			specific[d.Name] = true
		}
	}
	tag.RemoveChildren(func(n ir.Node) bool {
		d, ok := n.(*ir.DirectiveAttribute)
		return ok && d.Descriptor.IsFallback && specific[d.Name]
	})

	groups := map[string][]*ir.DirectiveAttribute{}
	var order []string
	for _, d := range ir.DirectiveAttributes(tag) {
		if d.IsParameterized() {
			continue
		}
		if _, ok := groups[d.Name]; !ok {
			order = append(order, d.Name)
		}
		groups[d.Name] = append(groups[d.Name], d)
	}

	for _, name := range order {
		group := groups[name]
		if len(group) < 2 {
			continue
		}
		tag.AddDiagnostic(diagnostics.DuplicateDirectiveAttribute(group[0].Span, name, uniqueDescriptors(group)))
		removeOccurrences(tag, group)
	}
}
