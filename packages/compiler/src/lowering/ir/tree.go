package ir

import (
	"fmt"

	"rzc-go/packages/compiler/src/util"
)

// IndexOf returns the position of child among the children, or -1
func (b *NodeBase) IndexOf(child Node) int {
	for i, c := range b.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// ReplaceChild replaces the child at index with zero or more nodes
func (b *NodeBase) ReplaceChild(index int, nodes ...Node) {
	if index < 0 || index >= len(b.Children) {
		panic(fmt.Sprintf("AssertionError: child index %d out of range [0, %d)", index, len(b.Children)))
	}
	rest := append([]Node(nil), b.Children[index+1:]...)
	b.Children = append(append(b.Children[:index], nodes...), rest...)
}

// RemoveChild removes the child at index
func (b *NodeBase) RemoveChild(index int) {
	b.ReplaceChild(index)
}

// InsertChildren inserts nodes before the child at index (index == len appends)
func (b *NodeBase) InsertChildren(index int, nodes ...Node) {
	if index < 0 || index > len(b.Children) {
		panic(fmt.Sprintf("AssertionError: insert index %d out of range [0, %d]", index, len(b.Children)))
	}
	rest := append([]Node(nil), b.Children[index:]...)
	b.Children = append(append(b.Children[:index], nodes...), rest...)
}

// AddChild appends a child
func (b *NodeBase) AddChild(node Node) {
	b.Children = append(b.Children, node)
}

// RemoveChildren removes every child for which remove returns true and returns the removed nodes
func (b *NodeBase) RemoveChildren(remove func(Node) bool) []Node {
	var removed []Node
	kept := b.Children[:0]
	for _, c := range b.Children {
		if remove(c) {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(b.Children); i++ {
		b.Children[i] = nil
	}
	b.Children = kept
	return removed
}

// Reference is a node together with its parent at the time it was found
type Reference struct {
	Parent Node
	Node   Node
}

// Index returns the current position of the node in its parent, or -1 once it was moved
func (r Reference) Index() int {
	return r.Parent.Base().IndexOf(r.Node)
}

// Replace substitutes the node by nodes in its parent
func (r Reference) Replace(nodes ...Node) {
	index := r.Index()
	if index < 0 {
		panic(fmt.Sprintf("AssertionError: %s is no longer a child of %s", r.Node.Kind(), r.Parent.Kind()))
	}
	r.Parent.Base().ReplaceChild(index, nodes...)
}

// Remove removes the node from its parent
func (r Reference) Remove() {
	r.Replace()
}

// InsertBefore inserts nodes before the node
func (r Reference) InsertBefore(nodes ...Node) {
	index := r.Index()
	if index < 0 {
		panic(fmt.Sprintf("AssertionError: %s is no longer a child of %s", r.Node.Kind(), r.Parent.Kind()))
	}
	r.Parent.Base().InsertChildren(index, nodes...)
}

// InsertAfter inserts nodes after the node
func (r Reference) InsertAfter(nodes ...Node) {
	index := r.Index()
	if index < 0 {
		panic(fmt.Sprintf("AssertionError: %s is no longer a child of %s", r.Node.Kind(), r.Parent.Kind()))
	}
	r.Parent.Base().InsertChildren(index+1, nodes...)
}

// FindDescendants returns every descendant of root accepted by match, in document order.
// The result is a snapshot: callers may edit the tree while iterating over it.
func FindDescendants(root Node, match func(Node) bool) []Reference {
	var result []Reference
	var visit func(parent Node)
	visit = func(parent Node) {
		for _, child := range parent.Base().Children {
			if match(child) {
				result = append(result, Reference{Parent: parent, Node: child})
			}
			visit(child)
		}
	}
	visit(root)
	return result
}

// FindDescendantsOfKind returns every descendant of root with the given kind
func FindDescendantsOfKind(root Node, kind NodeKind) []Reference {
	return FindDescendants(root, func(n Node) bool { return n.Kind() == kind })
}

// Walk visits root and its descendants depth-first. Returning false skips the node's children.
func Walk(root Node, visitor func(node Node, ancestors []Node) bool) {
	var walk func(node Node, ancestors []Node)
	walk = func(node Node, ancestors []Node) {
		if !visitor(node, ancestors) {
			return
		}
		ancestors = append(ancestors, node)
		children := append([]Node(nil), node.Base().Children...)
		for _, child := range children {
			walk(child, ancestors)
		}
	}
	walk(root, nil)
}

// CollectDiagnostics gathers the diagnostics of root and its descendants in document order
func CollectDiagnostics(root Node) []*util.Diagnostic {
	var result []*util.Diagnostic
	Walk(root, func(node Node, _ []Node) bool {
		result = append(result, node.Base().Diagnostics...)
		return true
	})
	return result
}

// Attributes returns the attribute occurrences among the children of a tag candidate
func (t *TagCandidate) Attributes() []Node {
	var result []Node
	for _, c := range t.Children {
		switch c.(type) {
		case *PlainAttribute, *DirectiveAttribute:
			result = append(result, c)
		}
	}
	return result
}

// Body returns the children that are not attribute occurrences
func (t *TagCandidate) Body() []Node {
	var result []Node
	for _, c := range t.Children {
		switch c.(type) {
		case *PlainAttribute, *DirectiveAttribute:
		default:
			result = append(result, c)
		}
	}
	return result
}

// DirectiveAttributes returns the directive occurrences among the children of node
func DirectiveAttributes(node Node) []*DirectiveAttribute {
	var result []*DirectiveAttribute
	for _, c := range node.Base().Children {
		if d, ok := c.(*DirectiveAttribute); ok {
			result = append(result, d)
		}
	}
	return result
}

// Parameters returns the parameters set on a component invocation
func (c *ComponentInvocation) Parameters() []*ComponentParameter {
	var result []*ComponentParameter
	for _, child := range c.Children {
		if p, ok := child.(*ComponentParameter); ok {
			result = append(result, p)
		}
	}
	return result
}

// TypeArguments returns the literal type arguments of a component invocation
func (c *ComponentInvocation) TypeArguments() []*TypeArgument {
	var result []*TypeArgument
	for _, child := range c.Children {
		if t, ok := child.(*TypeArgument); ok {
			result = append(result, t)
		}
	}
	return result
}
