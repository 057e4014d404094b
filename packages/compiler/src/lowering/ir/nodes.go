package ir

import (
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/util"
)

// Node is the closed union of lowering IR nodes. Passes switch on the concrete type.
type Node interface {
	Kind() NodeKind
	Base() *NodeBase
	isNode()
}

// NodeBase holds the state shared by every node
type NodeBase struct {
	Children    []Node
	Span        *util.ParseSourceSpan
	Diagnostics []*util.Diagnostic
}

func (b *NodeBase) isNode() {}

// Base returns the shared node state
func (b *NodeBase) Base() *NodeBase {
	return b
}

// AddDiagnostic attaches a diagnostic to the node
func (b *NodeBase) AddDiagnostic(d *util.Diagnostic) {
	b.Diagnostics = append(b.Diagnostics, d)
}

// HasErrors reports whether an error diagnostic is attached to the node itself
func (b *NodeBase) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.Severity == util.DiagnosticSeverityError {
			return true
		}
	}
	return false
}

// Document is the root of one document tree
type Document struct {
	NodeBase
	FilePath  string
	Namespace string
	// TypeInferenceMethods are the out-of-line inference routines synthesized for this document.
	TypeInferenceMethods []*TypeInferenceMethod
}

func (*Document) Kind() NodeKind { return NodeKindDocument }

// NamespaceImport makes the types of a namespace visible to the tags after it
type NamespaceImport struct {
	NodeBase
	Namespace string
}

func (*NamespaceImport) Kind() NodeKind { return NodeKindNamespaceImport }

// TagCandidate is a tag occurrence before classification. Its children are the attribute
// occurrences followed by the body.
type TagCandidate struct {
	NodeBase
	TagName     string
	TagMode     TagMode
	Descriptors []*descriptor.Descriptor
}

func (*TagCandidate) Kind() NodeKind { return NodeKindTagCandidate }

// PlainAttribute is an attribute occurrence written without directive syntax
type PlainAttribute struct {
	NodeBase
	Name  string
	Value Tokens
	// Minimized attributes are written without a value (`<input disabled />`).
	Minimized bool
	// Bound is set when a component descriptor of the tag declares the attribute.
	Bound      *descriptor.BoundAttribute
	Descriptor *descriptor.Descriptor
}

func (*PlainAttribute) Kind() NodeKind { return NodeKindPlainAttribute }

// DirectiveAttribute is an `@name[:parameter]` occurrence bound to exactly one helper descriptor
type DirectiveAttribute struct {
	NodeBase
	// Name is the literal attribute name including any parameter (`@bind-Value:get`).
	Name string
	// BaseName is Name without the parameter (`@bind-Value`).
	BaseName  string
	Parameter string
	Value     Tokens
	Minimized bool

	Descriptor     *descriptor.Descriptor
	Bound          *descriptor.BoundAttribute
	BoundParameter *descriptor.BoundAttributeParameter
}

func (*DirectiveAttribute) Kind() NodeKind { return NodeKindDirectiveAttribute }

// IsParameterized reports whether the occurrence carries a `:parameter`
func (a *DirectiveAttribute) IsParameterized() bool {
	return a.Parameter != ""
}

// HTMLContent is literal markup text
type HTMLContent struct {
	NodeBase
	Content string
}

func (*HTMLContent) Kind() NodeKind { return NodeKindHTMLContent }

// Expression is a host-language expression rendered into the body
type Expression struct {
	NodeBase
	Value Tokens
}

func (*Expression) Kind() NodeKind { return NodeKindExpression }

// MarkupElement is a tag lowered to a plain markup element. Its children are attribute
// nodes, primitives, then the body.
type MarkupElement struct {
	NodeBase
	TagName string
	TagMode TagMode
}

func (*MarkupElement) Kind() NodeKind { return NodeKindMarkupElement }

// MarkupAttribute sets an attribute by name
type MarkupAttribute struct {
	NodeBase
	Name string
	// NameExpression computes the attribute name at runtime when Name is not known statically.
	NameExpression Tokens
	Value          Tokens
	// Updates names the attribute whose value this change handler writes back.
	Updates         string
	IsEventCallback bool
}

func (*MarkupAttribute) Kind() NodeKind { return NodeKindMarkupAttribute }

// ComponentInvocation is a tag lowered to a component. Its children are parameters,
// type arguments, primitives and child content.
type ComponentInvocation struct {
	NodeBase
	TagName   string
	TagMode   TagMode
	Component *descriptor.Descriptor
	// TypeName is the type emitted for the invocation, closed over explicit type arguments when known.
	TypeName string
	// ChildContentParameterName is set by a `Context` attribute on the component.
	ChildContentParameterName string
	// CascadingTypeArguments are the types this instance provides to descendants, by type parameter name.
	CascadingTypeArguments map[string]*CascadingTypeArgument
}

func (*ComponentInvocation) Kind() NodeKind { return NodeKindComponentInvocation }

// CascadingTypeArgument is a cascaded type parameter made available to descendants.
// Exactly one of TypeName (explicit) or VariableName (captured) is set.
type CascadingTypeArgument struct {
	TypeParameter string
	TypeName      string
	VariableName  string
	// ParameterTypeName is the declared type of the captured variable, over the type parameter.
	ParameterTypeName string
}

// ComponentParameter sets a named parameter on a component
type ComponentParameter struct {
	NodeBase
	Name  string
	Value Tokens
	// Bound is nil when the component does not declare the parameter; the value is then untyped.
	Bound           *descriptor.BoundAttribute
	TypeName        string
	IsEventCallback bool
	IsDelegate      bool
}

func (*ComponentParameter) Kind() NodeKind { return NodeKindComponentParameter }

// TypeArgument supplies a type parameter of a generic component literally
type TypeArgument struct {
	NodeBase
	Name  string
	Value Tokens
}

func (*TypeArgument) Kind() NodeKind { return NodeKindTypeArgument }

// ChildContent is a fragment passed to a component's child-content attribute
type ChildContent struct {
	NodeBase
	AttributeName string
	// ParameterName is the lambda parameter of parameterized child content.
	ParameterName string
	Bound         *descriptor.BoundAttribute
	TypeName      string
}

func (*ChildContent) Kind() NodeKind { return NodeKindChildContent }

// IsParameterized reports whether the fragment receives a parameter
func (c *ChildContent) IsParameterized() bool {
	return c.Bound != nil && c.Bound.IsParameterizedChildContent
}

// ToolingReference keeps a sub-expression visible to property-reference tooling. It has no
// runtime effect.
type ToolingReference struct {
	NodeBase
	Purpose string
	Value   Tokens
}

func (*ToolingReference) Kind() NodeKind { return NodeKindToolingReference }

// EventOption sets an option such as `preventDefault` on an event
type EventOption struct {
	NodeBase
	EventName string
	Option    string
	Value     Tokens
}

func (*EventOption) Kind() NodeKind { return NodeKindEventOption }

// AttributeBag splats a dictionary of attributes
type AttributeBag struct {
	NodeBase
	Value Tokens
}

func (*AttributeBag) Kind() NodeKind { return NodeKindAttributeBag }

// ReconciliationKey sets the key used to match elements across renders
type ReconciliationKey struct {
	NodeBase
	Value Tokens
}

func (*ReconciliationKey) Kind() NodeKind { return NodeKindReconciliationKey }

// ReferenceCapture assigns the rendered element or component to a field
type ReferenceCapture struct {
	NodeBase
	Value              Tokens
	IsComponentCapture bool
	// TypeName is the static type of the captured value.
	TypeName string
}

func (*ReferenceCapture) Kind() NodeKind { return NodeKindReferenceCapture }

// RenderModeAssignment sets the render mode of a component
type RenderModeAssignment struct {
	NodeBase
	Value Tokens
}

func (*RenderModeAssignment) Kind() NodeKind { return NodeKindRenderModeAssignment }

// FormNameAssignment names a form for form handling
type FormNameAssignment struct {
	NodeBase
	Value Tokens
}

func (*FormNameAssignment) Kind() NodeKind { return NodeKindFormNameAssignment }

// TypeInferenceArgument is one argument of a type inference call
type TypeInferenceArgument struct {
	Kind  InferenceArgumentKind
	Name  string
	Value Tokens
	// TypeName is the declared type of the parameter, expressed over the component's type parameters.
	TypeName string
	// VariableName is set when the value was evaluated by a capture call.
	VariableName string
}

// TypeInferenceCall replaces a generic component invocation with a call to a synthesized
// routine that lets the host infer the type arguments. Its children are the invocation's children.
type TypeInferenceCall struct {
	NodeBase
	Invocation *ComponentInvocation
	Method     *TypeInferenceMethod
	Arguments  []*TypeInferenceArgument
}

func (*TypeInferenceCall) Kind() NodeKind { return NodeKindTypeInferenceCall }

// CapturedVariable is one inference argument evaluated by a capture call
type CapturedVariable struct {
	Name          string
	ParameterName string
	Value         Tokens
}

// CaptureParametersCall evaluates inference arguments once, left to right, into variables
type CaptureParametersCall struct {
	NodeBase
	MethodName string
	Variables  []*CapturedVariable
}

func (*CaptureParametersCall) Kind() NodeKind { return NodeKindCaptureParametersCall }

// TypeInferenceParameter is one parameter of a synthesized inference routine
type TypeInferenceParameter struct {
	Kind     InferenceArgumentKind
	Name     string
	TypeName string
}

// TypeInferenceMethod is a synthesized routine that opens, populates and closes a generic
// component with inferred type arguments.
type TypeInferenceMethod struct {
	MethodName    string
	ComponentType string
	// TypeParameters are the generic parameters of the routine, with their constraint text.
	TypeParameters []*descriptor.TypeParameter
	Parameters     []*TypeInferenceParameter
	// CaptureMethodName is set when the routine has a capture counterpart.
	CaptureMethodName string
}

