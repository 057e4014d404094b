package phases

import (
	"fmt"
	"strings"
	"unicode"

	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/diagnostics"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/identifiers"
	"rzc-go/packages/compiler/src/lowering/ir"
)

const renderModeTypeName = "global::Microsoft.AspNetCore.Components.IComponentRenderMode"

// BuildGenericDispatch rewrites invocations of generic components.
//
// When every type argument is written out, the invocation is closed over them and stays a
// ComponentInvocation. Otherwise the invocation becomes a TypeInferenceCall to a synthesized
// routine whose parameters let the host infer the type arguments. A component that cascades a
// type parameter it infers is preceded by a CaptureParametersCall, so that descendants can
// refer to the captured values instead of re-evaluating them.
func BuildGenericDispatch(job *compilation.CompilationJob) {
	d := &genericDispatcher{job: job, methods: map[string]*ir.TypeInferenceMethod{}}
	d.visit(job.Document, nil)
}

// cascadeScope maps cascaded type parameter names to what an ancestor provides for them
type cascadeScope map[string]*ir.CascadingTypeArgument

func (s cascadeScope) extend(provided map[string]*ir.CascadingTypeArgument) cascadeScope {
	if len(provided) == 0 {
		return s
	}
	result := make(cascadeScope, len(s)+len(provided))
	for k, v := range s {
		result[k] = v
	}
	for k, v := range provided {
		result[k] = v
	}
	return result
}

type genericDispatcher struct {
	job     *compilation.CompilationJob
	methods map[string]*ir.TypeInferenceMethod
}

func (g *genericDispatcher) visit(parent ir.Node, scope cascadeScope) {
	base := parent.Base()
	for i := 0; i < len(base.Children); i++ {
		invocation, ok := base.Children[i].(*ir.ComponentInvocation)
		if !ok {
			g.visit(base.Children[i], scope)
			continue
		}
		if !invocation.Component.IsGeneric() {
			g.visit(invocation, scope)
			continue
		}

		nodes := g.dispatch(invocation, scope)
		base.ReplaceChild(i, nodes...)
		i += len(nodes) - 1
		// The last node owns the invocation's children.
		g.visit(nodes[len(nodes)-1], scope.extend(invocation.CascadingTypeArguments))
	}
}

func (g *genericDispatcher) dispatch(invocation *ir.ComponentInvocation, scope cascadeScope) []ir.Node {
	component := invocation.Component

	explicit := map[string]string{}
	for _, ta := range invocation.TypeArguments() {
		explicit[ta.Name] = strings.TrimSpace(ta.Value.String())
	}

	if len(explicit) == len(component.TypeParameters) && allExplicit(component, explicit) {
		closeInvocation(invocation, explicit)
		return []ir.Node{invocation}
	}

	inferable := map[string]*ir.ComponentParameter{}
	for _, p := range invocation.Parameters() {
		if p.Bound == nil {
			continue
		}
		for _, tp := range component.TypeParameters {
			if _, seen := inferable[tp.Name]; !seen && mentionsTypeParameter(p.Bound.TypeName, tp.Name) {
				inferable[tp.Name] = p
			}
		}
	}

	var missing []string
	var cascaded []*descriptor.TypeParameter
	for _, tp := range component.TypeParameters {
		if _, ok := explicit[tp.Name]; ok {
			continue
		}
		if _, ok := inferable[tp.Name]; ok {
			continue
		}
		if _, ok := scope[tp.Name]; ok {
			cascaded = append(cascaded, tp)
			continue
		}
		missing = append(missing, tp.Name)
	}
	if len(missing) > 0 {
		invocation.AddDiagnostic(diagnostics.TypeInferenceUnderspecified(invocation.Span, component.DisplayName(), missing))
		return []ir.Node{invocation}
	}

	args := inferenceArguments(invocation)
	for _, tp := range cascaded {
		args = append(args, cascadedArgument(tp, scope[tp.Name]))
	}

	var capture *ir.CaptureParametersCall
	provided := map[string]*ir.CascadingTypeArgument{}
	for _, tp := range component.TypeParameters {
		if !tp.Cascading {
			continue
		}
		if typeName, ok := explicit[tp.Name]; ok {
			provided[tp.Name] = &ir.CascadingTypeArgument{TypeParameter: tp.Name, TypeName: typeName}
			continue
		}
		if p, ok := inferable[tp.Name]; ok {
			provided[tp.Name] = &ir.CascadingTypeArgument{TypeParameter: tp.Name, ParameterTypeName: p.Bound.TypeName}
		}
	}

	id := g.job.AllocateTypeInferenceId()
	needsCapture := false
	for _, cta := range provided {
		if cta.TypeName == "" {
			needsCapture = true
		}
	}
	if needsCapture {
		capture = &ir.CaptureParametersCall{}
		capture.Span = invocation.Span
		for _, arg := range args {
			if arg.Kind != ir.InferenceArgumentKindParameter {
				continue
			}
			arg.VariableName = fmt.Sprintf("%s%d_%s", identifiers.TypeInferenceArgPrefix, id, arg.Name)
			capture.Variables = append(capture.Variables, &ir.CapturedVariable{
				Name:          arg.VariableName,
				ParameterName: arg.Name,
				Value:         arg.Value,
			})
		}
		for name, cta := range provided {
			if cta.TypeName != "" {
				continue
			}
			cta.VariableName = fmt.Sprintf("%s%d_%s", identifiers.TypeInferenceArgPrefix, id, inferable[name].Name)
		}
	}
	if len(provided) > 0 {
		invocation.CascadingTypeArguments = provided
	}

	method := g.method(component, args, needsCapture)
	if capture != nil {
		capture.MethodName = method.CaptureMethodName
	}

	call := &ir.TypeInferenceCall{Invocation: invocation, Method: method, Arguments: args}
	call.Span = invocation.Span
	call.Diagnostics = invocation.Diagnostics
	call.Children = invocation.Children
	invocation.Children = nil
	invocation.Diagnostics = nil

	if capture != nil {
		return []ir.Node{capture, call}
	}
	return []ir.Node{call}
}

func allExplicit(component *descriptor.Descriptor, explicit map[string]string) bool {
	for _, tp := range component.TypeParameters {
		if _, ok := explicit[tp.Name]; !ok {
			return false
		}
	}
	return true
}

// closeInvocation closes the invocation's type over explicit type arguments and drops the
// type argument nodes.
func closeInvocation(invocation *ir.ComponentInvocation, explicit map[string]string) {
	component := invocation.Component
	args := make([]string, 0, len(component.TypeParameters))
	for _, tp := range component.TypeParameters {
		args = append(args, explicit[tp.Name])
		if tp.Cascading {
			if invocation.CascadingTypeArguments == nil {
				invocation.CascadingTypeArguments = map[string]*ir.CascadingTypeArgument{}
			}
			invocation.CascadingTypeArguments[tp.Name] = &ir.CascadingTypeArgument{
				TypeParameter: tp.Name,
				TypeName:      explicit[tp.Name],
			}
		}
	}
	invocation.TypeName = identifiers.Generic(identifiers.Qualify(component.TypeName), args...)
	invocation.RemoveChildren(func(n ir.Node) bool {
		_, ok := n.(*ir.TypeArgument)
		return ok
	})
	for _, child := range invocation.Children {
		if capture, ok := child.(*ir.ReferenceCapture); ok && capture.IsComponentCapture {
			capture.TypeName = invocation.TypeName
		}
	}
}

// inferenceArguments lists the invocation's primitives in child order
func inferenceArguments(invocation *ir.ComponentInvocation) []*ir.TypeInferenceArgument {
	var args []*ir.TypeInferenceArgument
	for _, child := range invocation.Children {
		switch n := child.(type) {
		case *ir.ComponentParameter:
			typeName := identifiers.Object.String()
			if n.Bound != nil {
				typeName = n.TypeName
			}
			args = append(args, &ir.TypeInferenceArgument{
				Kind: ir.InferenceArgumentKindParameter, Name: n.Name, Value: n.Value, TypeName: typeName,
			})
		case *ir.TypeArgument:
			args = append(args, &ir.TypeInferenceArgument{
				Kind: ir.InferenceArgumentKindTypeArgument, Name: n.Name, Value: n.Value,
			})
		case *ir.ChildContent:
			args = append(args, &ir.TypeInferenceArgument{
				Kind: ir.InferenceArgumentKindChildContent, Name: n.AttributeName, TypeName: n.TypeName,
			})
		case *ir.ReconciliationKey:
			args = append(args, &ir.TypeInferenceArgument{
				Kind: ir.InferenceArgumentKindKey, Name: "__key", Value: n.Value, TypeName: identifiers.Object.String(),
			})
		case *ir.ReferenceCapture:
			args = append(args, &ir.TypeInferenceArgument{
				Kind: ir.InferenceArgumentKindReference, Name: "__ref", Value: n.Value,
				TypeName: identifiers.Generic(identifiers.Action.String(), openTypeName(invocation.Component)),
			})
		case *ir.AttributeBag:
			args = append(args, &ir.TypeInferenceArgument{
				Kind: ir.InferenceArgumentKindSplat, Name: "__attributes", Value: n.Value, TypeName: identifiers.AttributeSequence,
			})
		case *ir.RenderModeAssignment:
			args = append(args, &ir.TypeInferenceArgument{
				Kind: ir.InferenceArgumentKindRenderMode, Name: "__rendermode", Value: n.Value, TypeName: renderModeTypeName,
			})
		}
	}
	return args
}

// cascadedArgument passes a type provided by an ancestor as a synthetic argument
func cascadedArgument(tp *descriptor.TypeParameter, provided *ir.CascadingTypeArgument) *ir.TypeInferenceArgument {
	arg := &ir.TypeInferenceArgument{
		Kind: ir.InferenceArgumentKindCascadingType,
		Name: identifiers.SyntheticArgPrefix + tp.Name,
	}
	if provided.VariableName != "" {
		arg.VariableName = provided.VariableName
		arg.Value = ir.CodeValue(provided.VariableName)
		arg.TypeName = provided.ParameterTypeName
	} else {
		arg.Value = ir.CodeValue("default(" + provided.TypeName + ")")
		arg.TypeName = tp.Name
	}
	return arg
}

// method returns the inference routine for the argument shape, creating it on first use
func (g *genericDispatcher) method(component *descriptor.Descriptor, args []*ir.TypeInferenceArgument, capture bool) *ir.TypeInferenceMethod {
	var sb strings.Builder
	sb.WriteString(component.TypeName)
	sb.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%s:%s:%s", arg.Kind, arg.Name, arg.TypeName)
	}
	sb.WriteString(")")
	if capture {
		sb.WriteString("+capture")
	}
	signature := sb.String()
	if m, ok := g.methods[signature]; ok {
		return m
	}

	m := &ir.TypeInferenceMethod{
		MethodName:     fmt.Sprintf("Create%s_%d", component.TypeNameIdentifier, len(g.job.Document.TypeInferenceMethods)),
		ComponentType:  identifiers.Qualify(component.TypeName),
		TypeParameters: component.TypeParameters,
	}
	for _, arg := range args {
		m.Parameters = append(m.Parameters, &ir.TypeInferenceParameter{Kind: arg.Kind, Name: arg.Name, TypeName: arg.TypeName})
	}
	if capture {
		m.CaptureMethodName = m.MethodName + identifiers.CaptureParametersSuffix
	}
	g.methods[signature] = m
	g.job.Document.TypeInferenceMethods = append(g.job.Document.TypeInferenceMethods, m)
	return m
}

// openTypeName returns the component type over its own type parameters (`global::Ns.Grid<TItem>`)
func openTypeName(component *descriptor.Descriptor) string {
	return identifiers.Generic(identifiers.Qualify(component.TypeName), component.TypeParameterNames()...)
}

// mentionsTypeParameter reports whether typeName uses name as a whole identifier
func mentionsTypeParameter(typeName, name string) bool {
	words := strings.FieldsFunc(typeName, func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	for _, w := range words {
		if w == name {
			return true
		}
	}
	return false
}
