package phases

import (
	"strings"

	"golang.org/x/net/html/atom"

	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/diagnostics"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/identifiers"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/util"
)

// ClassifyElements decides, for every tag candidate, whether it is plain markup or the
// invocation of exactly one component, and rewrites it accordingly.
func ClassifyElements(job *compilation.CompilationJob) {
	c := &classifier{
		job:     job,
		imports: append([]string(nil), job.Config.DefaultImports...),
	}
	c.visitChildren(job.Document)
}

type classifier struct {
	job     *compilation.CompilationJob
	imports []string
}

func (c *classifier) visitChildren(parent ir.Node) {
	base := parent.Base()
	for i := 0; i < len(base.Children); i++ {
		child := base.Children[i]
		switch n := child.(type) {
		case *ir.NamespaceImport:
			c.imports = append(c.imports, n.Namespace)
		case *ir.TagCandidate:
			if lowered := c.classify(n); lowered != nil {
				base.ReplaceChild(i, lowered)
				child = lowered
			}
		}
		c.visitChildren(child)
	}
}

// classify returns the lowered node for tag, or nil when the tag stays un-lowered
func (c *classifier) classify(tag *ir.TagCandidate) ir.Node {
	var candidates []*descriptor.Descriptor
	for _, d := range tag.Descriptors {
		if d.IsComponent() {
			candidates = append(candidates, d)
		}
	}

	switch len(candidates) {
	case 0:
		return c.lowerMarkupElement(tag)
	case 1:
		return c.lowerComponent(tag, candidates[0])
	}

	selected, remaining := c.disambiguate(tag, candidates)
	if selected == nil {
		tag.AddDiagnostic(diagnostics.MultipleComponents(tag.Span, tag.TagName, remaining))
		return nil
	}
	return c.lowerComponent(tag, selected)
}

// disambiguate picks one of several component candidates. On failure it returns nil and the
// candidates that remained in contention.
func (c *classifier) disambiguate(tag *ir.TagCandidate, candidates []*descriptor.Descriptor) (*descriptor.Descriptor, []*descriptor.Descriptor) {
	var visible []*descriptor.Descriptor
	for _, d := range candidates {
		if c.isVisible(d) {
			visible = append(visible, d)
		}
	}
	if len(visible) == 1 {
		return visible[0], nil
	}
	if len(visible) > 0 {
		candidates = visible
	}

	var generic, nonGeneric []*descriptor.Descriptor
	for _, d := range candidates {
		if d.IsGeneric() {
			generic = append(generic, d)
		} else {
			nonGeneric = append(nonGeneric, d)
		}
	}

	used := usedAttributeNames(tag)
	provided := map[string]bool{}
	for _, name := range used {
		for _, d := range candidates {
			if d.FindTypeParameter(name) != nil {
				provided[name] = true
			}
		}
	}

	if len(provided) == 0 {
		switch {
		case len(nonGeneric) == 1:
			for _, g := range generic {
				if collidesOnUsedAttribute(g, nonGeneric[0], used) {
					return nil, candidates
				}
			}
			return nonGeneric[0], nil
		case len(nonGeneric) == 0 && len(generic) == 1:
			return generic[0], nil
		}
		return nil, candidates
	}

	var exact, superset []*descriptor.Descriptor
	for _, g := range generic {
		declared := map[string]bool{}
		for _, name := range g.TypeParameterNames() {
			declared[name] = true
		}
		coversProvided := true
		for name := range provided {
			if !declared[name] {
				coversProvided = false
				break
			}
		}
		if !coversProvided {
			continue
		}
		if len(declared) == len(provided) {
			exact = append(exact, g)
		} else {
			superset = append(superset, g)
		}
	}
	switch {
	case len(exact) == 1:
		return exact[0], nil
	case len(exact) > 1:
		return nil, exact
	case len(superset) == 1:
		return superset[0], nil
	case len(superset) > 1:
		return nil, superset
	}
	return nil, candidates
}

// collidesOnUsedAttribute reports whether an attribute used on the tag binds on both the
// generic and the non-generic candidate, which makes picking the non-generic one a guess.
func collidesOnUsedAttribute(generic, nonGeneric *descriptor.Descriptor, used []string) bool {
	for _, name := range used {
		if generic.FindTypeParameter(name) != nil {
			continue
		}
		attr := generic.FindBoundAttribute(name)
		if attr == nil || attr.IsTypeParameter {
			continue
		}
		if nonGeneric.HasBoundAttribute(name) {
			return true
		}
	}
	return false
}

// usedAttributeNames returns the parameter names a tag sets, including bind targets
func usedAttributeNames(tag *ir.TagCandidate) []string {
	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, attr := range tag.Attributes() {
		switch a := attr.(type) {
		case *ir.PlainAttribute:
			add(a.Name)
		case *ir.DirectiveAttribute:
			if strings.HasPrefix(a.BaseName, descriptor.BindPrefix) {
				add(strings.TrimPrefix(a.BaseName, descriptor.BindPrefix))
			}
		}
	}
	return names
}

// isVisible reports whether the component's namespace is in scope at the current position
func (c *classifier) isVisible(d *descriptor.Descriptor) bool {
	if d.FullyQualifiedNameMatch || d.TypeNamespace == "" {
		return true
	}
	for _, ns := range c.imports {
		if ns == d.TypeNamespace {
			return true
		}
	}
	docNamespace := c.job.Document.Namespace
	return docNamespace == d.TypeNamespace || strings.HasPrefix(docNamespace, d.TypeNamespace+".")
}

func (c *classifier) lowerMarkupElement(tag *ir.TagCandidate) *ir.MarkupElement {
	element := &ir.MarkupElement{TagName: tag.TagName, TagMode: tag.TagMode}
	element.Span = tag.Span
	element.Diagnostics = tag.Diagnostics

	for _, child := range tag.Children {
		if attr, ok := child.(*ir.PlainAttribute); ok {
			element.AddChild(markupAttribute(attr))
			continue
		}
		element.AddChild(child)
	}

	if util.StartsWithUpper(tag.TagName) && atom.Lookup([]byte(strings.ToLower(tag.TagName))) == 0 {
		element.AddDiagnostic(diagnostics.UnknownMarkupElement(tag.Span, tag.TagName))
	}
	return element
}

func markupAttribute(attr *ir.PlainAttribute) *ir.MarkupAttribute {
	result := &ir.MarkupAttribute{Name: attr.Name, Value: attr.Value}
	result.Span = attr.Span
	result.Diagnostics = attr.Diagnostics
	return result
}

func (c *classifier) lowerComponent(tag *ir.TagCandidate, component *descriptor.Descriptor) *ir.ComponentInvocation {
	invocation := &ir.ComponentInvocation{
		TagName:   tag.TagName,
		TagMode:   tag.TagMode,
		Component: component,
		TypeName:  identifiers.Qualify(component.TypeName),
	}
	invocation.Span = tag.Span
	invocation.Diagnostics = tag.Diagnostics

	var contextAttr *ir.PlainAttribute
	for _, attr := range tag.Attributes() {
		switch a := attr.(type) {
		case *ir.PlainAttribute:
			if a.Name == descriptor.ContextAttributeName && !component.HasBoundAttribute(a.Name) {
				contextAttr = a
				invocation.ChildContentParameterName = a.Value.String()
				continue
			}
			invocation.AddChild(componentAttribute(component, a))
		case *ir.DirectiveAttribute:
			invocation.AddChild(a)
		}
	}

	c.lowerChildContent(invocation, tag.Body())

	if contextAttr != nil && !hasParameterizedChildContent(invocation) {
		invocation.AddDiagnostic(diagnostics.ChildContentParameterConflict(contextAttr.Span, component.DisplayName()))
	}
	validateEditorRequired(invocation)
	return invocation
}

// componentAttribute lowers a plain attribute on a component to a type argument, a parameter,
// or an attribute the component does not declare.
func componentAttribute(component *descriptor.Descriptor, attr *ir.PlainAttribute) ir.Node {
	if component.FindTypeParameter(attr.Name) != nil {
		arg := &ir.TypeArgument{Name: attr.Name, Value: attr.Value}
		arg.Span = attr.Span
		return arg
	}
	bound := component.FindBoundAttribute(attr.Name)
	if bound == nil {
		return markupAttribute(attr)
	}
	param := &ir.ComponentParameter{
		Name:            attr.Name,
		Value:           attr.Value,
		Bound:           bound,
		TypeName:        bound.TypeName,
		IsEventCallback: bound.IsEventCallback,
		IsDelegate:      bound.IsDelegate,
	}
	if attr.Minimized && len(param.Value) == 0 {
		param.Value = ir.CodeValue("true")
	}
	param.Span = attr.Span
	param.Diagnostics = attr.Diagnostics
	return param
}

// lowerChildContent turns body tags matched by child-content descriptors of the component into
// named fragments, and the rest of the body into the default fragment.
func (c *classifier) lowerChildContent(invocation *ir.ComponentInvocation, body []ir.Node) {
	component := invocation.Component
	var explicit []*ir.ChildContent
	var loose []ir.Node
	for _, node := range body {
		if tag, ok := node.(*ir.TagCandidate); ok {
			if bound := childContentSlot(component, tag); bound != nil {
				explicit = append(explicit, c.namedChildContent(invocation, tag, bound))
				continue
			}
		}
		loose = append(loose, node)
	}

	for _, cc := range explicit {
		invocation.AddChild(cc)
	}
	if isWhitespace(loose) {
		return
	}

	bound := component.DefaultChildContent()
	if bound != nil {
		for _, p := range invocation.Parameters() {
			if p.Name == bound.Name {
				invocation.AddDiagnostic(diagnostics.ChildContentSetTwice(p.Span, component.DisplayName(), bound.Name))
				break
			}
		}
	}
	cc := &ir.ChildContent{AttributeName: descriptor.ChildContentAttributeName, Bound: bound}
	if bound != nil {
		cc.TypeName = bound.TypeName
		if bound.IsParameterizedChildContent {
			cc.ParameterName = parameterName(invocation.ChildContentParameterName)
		}
	}
	cc.Span = invocation.Span
	cc.Children = loose
	invocation.AddChild(cc)
}

func (c *classifier) namedChildContent(invocation *ir.ComponentInvocation, tag *ir.TagCandidate, bound *descriptor.BoundAttribute) *ir.ChildContent {
	cc := &ir.ChildContent{
		AttributeName: bound.Name,
		Bound:         bound,
		TypeName:      bound.TypeName,
	}
	cc.Span = tag.Span
	cc.Diagnostics = tag.Diagnostics

	// Only `Context` is meaningful on a child-content tag.
	name := invocation.ChildContentParameterName
	for _, attr := range tag.Attributes() {
		if a, ok := attr.(*ir.PlainAttribute); ok && a.Name == descriptor.ContextAttributeName {
			name = a.Value.String()
		}
	}
	if bound.IsParameterizedChildContent {
		cc.ParameterName = parameterName(name)
	}
	cc.Children = append(cc.Children, tag.Body()...)
	return cc
}

// childContentSlot returns the child-content attribute of component that tag fills, if any
func childContentSlot(component *descriptor.Descriptor, tag *ir.TagCandidate) *descriptor.BoundAttribute {
	for _, d := range tag.Descriptors {
		if !d.IsChildContentSlot() || !strings.HasPrefix(d.Name, component.TypeName+".") {
			continue
		}
		bound := component.FindBoundAttribute(tag.TagName)
		if bound != nil && bound.IsChildContent {
			return bound
		}
	}
	return nil
}

func parameterName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return descriptor.ChildContentParameterName
	}
	return name
}

func hasParameterizedChildContent(invocation *ir.ComponentInvocation) bool {
	for _, attr := range invocation.Component.ChildContentAttributes() {
		if attr.IsParameterizedChildContent {
			return true
		}
	}
	return false
}

func isWhitespace(nodes []ir.Node) bool {
	for _, n := range nodes {
		html, ok := n.(*ir.HTMLContent)
		if !ok || strings.TrimSpace(html.Content) != "" {
			return false
		}
	}
	return true
}

// validateEditorRequired warns about editor-required parameters that are never supplied.
// An attribute bag may supply anything, so its presence disables the check.
func validateEditorRequired(invocation *ir.ComponentInvocation) {
	supplied := map[string]bool{}
	for _, child := range invocation.Children {
		switch n := child.(type) {
		case *ir.ComponentParameter:
			supplied[n.Name] = true
		case *ir.ChildContent:
			supplied[n.AttributeName] = true
		case *ir.DirectiveAttribute:
			switch {
			case n.Descriptor != nil && n.Descriptor.Kind == descriptor.KindSplat:
				return
			case strings.HasPrefix(n.BaseName, descriptor.BindPrefix):
				if n.Parameter == "" || n.Parameter == descriptor.BindParameterGet {
					supplied[strings.TrimPrefix(n.BaseName, descriptor.BindPrefix)] = true
				}
			}
		}
	}

	var missing []string
	for _, attr := range invocation.Component.BoundAttributes {
		if attr.EditorRequired && !supplied[attr.Name] {
			missing = append(missing, attr.Name)
		}
	}
	for _, name := range missing {
		invocation.AddDiagnostic(diagnostics.EditorRequiredMissing(invocation.Span, invocation.Component.DisplayName(), name))
	}
}
