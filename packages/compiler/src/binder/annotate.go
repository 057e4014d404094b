package binder

import (
	"strings"

	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/util"
)

// literalDirectiveParameters take their value verbatim instead of as an expression
var literalDirectiveParameters = map[string]bool{
	descriptor.BindParameterFormat: true,
	descriptor.BindParameterEvent:  true,
}

// Annotate builds the document tree for file, matching every tag against catalog. Each tag
// becomes a TagCandidate carrying the descriptors whose rule it satisfies; each directive
// attribute becomes one DirectiveAttribute per helper descriptor that binds it.
func Annotate(file *DocumentFile, catalog *descriptor.Catalog) *ir.Document {
	a := &annotator{
		catalog: catalog,
		source:  util.NewParseSourceFile("", file.FilePath),
	}
	doc := &ir.Document{FilePath: file.FilePath, Namespace: file.Namespace}
	for _, n := range file.Nodes {
		doc.AddChild(a.node(n, ""))
	}
	return doc
}

type annotator struct {
	catalog *descriptor.Catalog
	source  *util.ParseSourceFile
}

func (a *annotator) span(line, column, length int) *util.ParseSourceSpan {
	if line <= 0 {
		return nil
	}
	start := util.NewParseLocation(a.source, 0, line-1, column-1)
	end := util.NewParseLocation(a.source, length, line-1, column-1+length)
	return util.NewParseSourceSpan(start, end)
}

func (a *annotator) node(n *NodeYAML, parentTag string) ir.Node {
	switch {
	case n.Using != "":
		node := &ir.NamespaceImport{Namespace: n.Using}
		node.Span = a.span(n.Line, n.Column, len(n.Using))
		return node
	case n.Text != "":
		node := &ir.HTMLContent{Content: n.Text}
		node.Span = a.span(n.Line, n.Column, len(n.Text))
		return node
	case n.Expr != "":
		node := &ir.Expression{Value: ir.CodeValue(n.Expr)}
		node.Span = a.span(n.Line, n.Column, len(n.Expr))
		return node
	}
	return a.tag(n, parentTag)
}

func (a *annotator) tag(n *NodeYAML, parentTag string) *ir.TagCandidate {
	attrs := make([]descriptor.Attribute, 0, len(n.Attributes))
	for _, attr := range n.Attributes {
		value := ""
		if attr.Value != nil {
			value = *attr.Value
		}
		attrs = append(attrs, descriptor.Attribute{Name: attr.Name, Value: value})
	}

	tag := &ir.TagCandidate{
		TagName:     n.Tag,
		TagMode:     tagMode(n.Mode),
		Descriptors: a.catalog.Match(n.Tag, parentTag, attrs),
	}
	tag.Span = a.span(n.Line, n.Column, len(n.Tag)+1)

	for _, attr := range n.Attributes {
		for _, node := range a.attribute(tag, attr, attrs, parentTag) {
			tag.AddChild(node)
		}
	}
	for _, child := range n.Children {
		tag.AddChild(a.node(child, n.Tag))
	}
	return tag
}

func tagMode(mode string) ir.TagMode {
	switch mode {
	case "selfClosing":
		return ir.TagModeSelfClosing
	case "startOnly":
		return ir.TagModeStartOnly
	}
	return ir.TagModeStartEnd
}

// attribute returns the occurrences for one written attribute
func (a *annotator) attribute(tag *ir.TagCandidate, attr *AttributeYAML, attrs []descriptor.Attribute, parentTag string) []ir.Node {
	span := a.span(attr.Line, attr.Column, len(attr.Name))

	if util.IsDirectiveName(attr.Name) {
		if occurrences := a.directiveOccurrences(tag, attr, attrs, parentTag); len(occurrences) > 0 {
			for _, o := range occurrences {
				o.Base().Span = span
			}
			return occurrences
		}
	}

	plain := &ir.PlainAttribute{Name: attr.Name, Minimized: attr.Value == nil}
	plain.Span = span
	for _, d := range tag.Descriptors {
		if !d.IsComponent() {
			continue
		}
		if bound := d.FindBoundAttribute(attr.Name); bound != nil {
			plain.Bound = bound
			plain.Descriptor = d
			break
		}
	}
	if attr.Value != nil {
		plain.Value = plainValue(*attr.Value, plain.Bound)
	}
	return []ir.Node{plain}
}

func (a *annotator) directiveOccurrences(tag *ir.TagCandidate, attr *AttributeYAML, attrs []descriptor.Attribute, parentTag string) []ir.Node {
	base, parameter := util.SplitDirectiveName(attr.Name)

	var helpers []*descriptor.Descriptor
	var bindRule *descriptor.TagMatchingRule
	var bind *descriptor.Descriptor
	for _, d := range tag.Descriptors {
		if !d.IsDirectiveHelper() || d.FindBoundAttribute(base) == nil {
			continue
		}
		if d.Kind == descriptor.KindBind && !d.IsFallback {
			// Of several specific bind helpers, the one with the most required attributes wins.
			rule := d.MatchingRule(tag.TagName, parentTag, attrs)
			if bind == nil || len(rule.Attributes) > len(bindRule.Attributes) {
				bind, bindRule = d, rule
			}
			continue
		}
		helpers = append(helpers, d)
	}
	if bind != nil {
		helpers = append([]*descriptor.Descriptor{bind}, helpers...)
	}

	var result []ir.Node
	for _, d := range helpers {
		bound := d.FindBoundAttribute(base)
		occurrence := &ir.DirectiveAttribute{
			Name:       attr.Name,
			BaseName:   base,
			Parameter:  parameter,
			Minimized:  attr.Value == nil,
			Descriptor: d,
			Bound:      bound,
		}
		if parameter != "" {
			occurrence.BoundParameter = bound.FindParameter(parameter)
		}
		if attr.Value != nil {
			occurrence.Value = directiveValue(*attr.Value, base, parameter)
		}
		result = append(result, occurrence)
	}
	return result
}

// directiveValue reads a directive value: expressions by default, literals for the
// parameters and directives that name things.
func directiveValue(value, base, parameter string) ir.Tokens {
	value, isCode := explicitCode(value)
	if isCode {
		return ir.CodeValue(value)
	}
	if literalDirectiveParameters[parameter] || (parameter == "" && base == descriptor.FormNameAttributeName) {
		return ir.HTMLValue(value)
	}
	return ir.CodeValue(value)
}

// plainValue reads a plain attribute value. Component parameters that are not strings take
// expressions.
func plainValue(value string, bound *descriptor.BoundAttribute) ir.Tokens {
	value, isCode := explicitCode(value)
	if isCode {
		return ir.CodeValue(value)
	}
	if bound != nil && !bound.IsTypeParameter && !isStringType(bound.TypeName) {
		return ir.CodeValue(value)
	}
	return ir.HTMLValue(value)
}

// explicitCode strips the '@' transition. `@@` escapes a literal '@'.
func explicitCode(value string) (string, bool) {
	if strings.HasPrefix(value, "@@") {
		return value[1:], false
	}
	if strings.HasPrefix(value, "@") {
		return value[1:], true
	}
	return value, false
}

func isStringType(typeName string) bool {
	switch typeName {
	case "string", "System.String", "global::System.String":
		return true
	}
	return false
}
