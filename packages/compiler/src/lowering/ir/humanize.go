package ir

import (
	"strings"
)

// Humanize flattens the descendants of root into rows of the form
// `{kind, name, depth, details...}`, suitable for comparing trees in tests.
func Humanize(root Node) []interface{} {
	result := []interface{}{}
	var visit func(node Node, depth int)
	visit = func(node Node, depth int) {
		for _, child := range node.Base().Children {
			result = append(result, humanizeNode(child, depth))
			visit(child, depth+1)
		}
	}
	visit(root, 0)
	return result
}

func humanizeNode(node Node, depth int) []interface{} {
	kind := node.Kind().String()
	switch n := node.(type) {
	case *Document:
		return []interface{}{kind, n.FilePath, depth}
	case *NamespaceImport:
		return []interface{}{kind, n.Namespace, depth}
	case *TagCandidate:
		return []interface{}{kind, n.TagName, depth}
	case *PlainAttribute:
		return []interface{}{kind, n.Name, depth, n.Value.String()}
	case *DirectiveAttribute:
		return []interface{}{kind, n.Name, depth, n.Value.String()}
	case *HTMLContent:
		return []interface{}{kind, n.Content, depth}
	case *Expression:
		return []interface{}{kind, n.Value.String(), depth}
	case *MarkupElement:
		return []interface{}{kind, n.TagName, depth}
	case *MarkupAttribute:
		name := n.Name
		if len(n.NameExpression) > 0 {
			name = "@(" + n.NameExpression.AsCode() + ")"
		}
		row := []interface{}{kind, name, depth, n.Value.String()}
		if n.Updates != "" {
			row = append(row, "updates="+n.Updates)
		}
		return row
	case *ComponentInvocation:
		return []interface{}{kind, n.TypeName, depth}
	case *ComponentParameter:
		return []interface{}{kind, n.Name, depth, n.Value.String()}
	case *TypeArgument:
		return []interface{}{kind, n.Name, depth, n.Value.String()}
	case *ChildContent:
		row := []interface{}{kind, n.AttributeName, depth}
		if n.IsParameterized() {
			row = append(row, n.ParameterName)
		}
		return row
	case *ToolingReference:
		return []interface{}{kind, n.Purpose, depth, n.Value.String()}
	case *EventOption:
		return []interface{}{kind, n.EventName + ":" + n.Option, depth, n.Value.String()}
	case *AttributeBag:
		return []interface{}{kind, n.Value.String(), depth}
	case *ReconciliationKey:
		return []interface{}{kind, n.Value.String(), depth}
	case *ReferenceCapture:
		return []interface{}{kind, n.Value.String(), depth, n.TypeName}
	case *RenderModeAssignment:
		return []interface{}{kind, n.Value.String(), depth}
	case *FormNameAssignment:
		return []interface{}{kind, n.Value.String(), depth}
	case *TypeInferenceCall:
		args := []interface{}{}
		for _, arg := range n.Arguments {
			args = append(args, humanizeArgument(arg))
		}
		return []interface{}{kind, n.Method.MethodName, depth, args}
	case *CaptureParametersCall:
		vars := []interface{}{}
		for _, v := range n.Variables {
			vars = append(vars, v.Name+"="+v.Value.String())
		}
		return []interface{}{kind, n.MethodName, depth, vars}
	}
	return []interface{}{kind, "", depth}
}

func humanizeArgument(arg *TypeInferenceArgument) string {
	var sb strings.Builder
	sb.WriteString(arg.Name)
	sb.WriteString("=")
	if arg.VariableName != "" {
		sb.WriteString(arg.VariableName)
	} else {
		sb.WriteString(arg.Value.String())
	}
	return sb.String()
}

// HumanizeDiagnostics returns `{code, severity}` rows for every diagnostic under root
func HumanizeDiagnostics(root Node) []interface{} {
	result := []interface{}{}
	for _, d := range CollectDiagnostics(root) {
		result = append(result, []interface{}{d.Code, d.Severity.String()})
	}
	return result
}
