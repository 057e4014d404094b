package phases

import (
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/ir"
)

// loweredTags returns every markup element and component invocation in document order
func loweredTags(root ir.Node) []ir.Reference {
	return ir.FindDescendants(root, func(n ir.Node) bool {
		switch n.(type) {
		case *ir.MarkupElement, *ir.ComponentInvocation:
			return true
		}
		return false
	})
}

// directivesOfKind returns the directive occurrences of node bound to a descriptor of kind
func directivesOfKind(node ir.Node, kind descriptor.Kind) []*ir.DirectiveAttribute {
	var result []*ir.DirectiveAttribute
	for _, d := range ir.DirectiveAttributes(node) {
		if d.Descriptor != nil && d.Descriptor.Kind == kind {
			result = append(result, d)
		}
	}
	return result
}

// replaceOccurrences removes occurrences from parent and inserts nodes where the first one was
func replaceOccurrences(parent ir.Node, occurrences []*ir.DirectiveAttribute, nodes ...ir.Node) {
	if len(occurrences) == 0 {
		return
	}
	base := parent.Base()
	index := -1
	for _, o := range occurrences {
		i := base.IndexOf(o)
		if i >= 0 && (index < 0 || i < index) {
			index = i
		}
	}
	if index < 0 {
		panic("AssertionError: directive occurrences are not children of their parent")
	}
	remove := make(map[ir.Node]bool, len(occurrences))
	for _, o := range occurrences {
		remove[o] = true
	}
	base.InsertChildren(index, nodes...)
	base.RemoveChildren(func(n ir.Node) bool { return remove[n] })
}

// removeOccurrences removes occurrences from parent
func removeOccurrences(parent ir.Node, occurrences []*ir.DirectiveAttribute) {
	replaceOccurrences(parent, occurrences)
}

// tagName returns the tag name of a lowered tag
func tagName(node ir.Node) string {
	switch n := node.(type) {
	case *ir.MarkupElement:
		return n.TagName
	case *ir.ComponentInvocation:
		return n.TagName
	case *ir.TagCandidate:
		return n.TagName
	}
	return ""
}

// uniqueDescriptors returns the descriptors of occurrences without repeats, in order
func uniqueDescriptors(occurrences []*ir.DirectiveAttribute) []*descriptor.Descriptor {
	seen := map[*descriptor.Descriptor]bool{}
	var result []*descriptor.Descriptor
	for _, o := range occurrences {
		if o.Descriptor == nil || seen[o.Descriptor] {
			continue
		}
		seen[o.Descriptor] = true
		result = append(result, o.Descriptor)
	}
	return result
}
