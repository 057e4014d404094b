package ir

// NodeKind distinguishes different kinds of lowering IR nodes
type NodeKind int

const (
	// NodeKindDocument - The root of one document tree
	NodeKindDocument NodeKind = iota
	// NodeKindNamespaceImport - A namespace import visible to the tags that follow it
	NodeKindNamespaceImport
	// NodeKindTagCandidate - A tag occurrence annotated with the descriptors that matched it
	NodeKindTagCandidate
	// NodeKindPlainAttribute - An attribute occurrence written without directive syntax
	NodeKindPlainAttribute
	// NodeKindDirectiveAttribute - An `@name[:parameter]` attribute occurrence bound to one helper descriptor
	NodeKindDirectiveAttribute
	// NodeKindHTMLContent - Literal markup text
	NodeKindHTMLContent
	// NodeKindExpression - A host-language expression rendered into the body
	NodeKindExpression
	// NodeKindMarkupElement - A tag lowered to a plain markup element
	NodeKindMarkupElement
	// NodeKindMarkupAttribute - An attribute set on a markup element (or an unbound attribute on a component)
	NodeKindMarkupAttribute
	// NodeKindComponentInvocation - A tag lowered to a component invocation
	NodeKindComponentInvocation
	// NodeKindComponentParameter - A set-named-parameter operation on a component
	NodeKindComponentParameter
	// NodeKindTypeArgument - A literal type argument supplied to a generic component
	NodeKindTypeArgument
	// NodeKindChildContent - A child-content fragment passed to a component
	NodeKindChildContent
	// NodeKindToolingReference - A zero-effect expression kept for property-reference tooling
	NodeKindToolingReference
	// NodeKindEventOption - A set-event-option operation (`preventDefault`, `stopPropagation`)
	NodeKindEventOption
	// NodeKindAttributeBag - A set-attribute-bag operation (`@attributes`)
	NodeKindAttributeBag
	// NodeKindReconciliationKey - A set-reconciliation-key operation (`@key`)
	NodeKindReconciliationKey
	// NodeKindReferenceCapture - A capture-reference operation (`@ref`)
	NodeKindReferenceCapture
	// NodeKindRenderModeAssignment - A set-render-mode operation (`@rendermode`)
	NodeKindRenderModeAssignment
	// NodeKindFormNameAssignment - A set-form-name operation (`@formname`)
	NodeKindFormNameAssignment
	// NodeKindTypeInferenceCall - A component invocation dispatched through a type inference method
	NodeKindTypeInferenceCall
	// NodeKindCaptureParametersCall - Evaluates inference arguments once into named variables
	NodeKindCaptureParametersCall
)

var nodeKindNames = [...]string{
	NodeKindDocument:              "Document",
	NodeKindNamespaceImport:       "NamespaceImport",
	NodeKindTagCandidate:          "TagCandidate",
	NodeKindPlainAttribute:        "PlainAttribute",
	NodeKindDirectiveAttribute:    "DirectiveAttribute",
	NodeKindHTMLContent:           "HTMLContent",
	NodeKindExpression:            "Expression",
	NodeKindMarkupElement:         "MarkupElement",
	NodeKindMarkupAttribute:       "MarkupAttribute",
	NodeKindComponentInvocation:   "ComponentInvocation",
	NodeKindComponentParameter:    "ComponentParameter",
	NodeKindTypeArgument:          "TypeArgument",
	NodeKindChildContent:          "ChildContent",
	NodeKindToolingReference:      "ToolingReference",
	NodeKindEventOption:           "EventOption",
	NodeKindAttributeBag:          "AttributeBag",
	NodeKindReconciliationKey:     "ReconciliationKey",
	NodeKindReferenceCapture:      "ReferenceCapture",
	NodeKindRenderModeAssignment:  "RenderModeAssignment",
	NodeKindFormNameAssignment:    "FormNameAssignment",
	NodeKindTypeInferenceCall:     "TypeInferenceCall",
	NodeKindCaptureParametersCall: "CaptureParametersCall",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// TokenKind distinguishes literal markup from host-language code inside a value
type TokenKind int

const (
	// TokenKindHTML - Literal markup text
	TokenKindHTML TokenKind = iota
	// TokenKindCode - Host-language expression text
	TokenKindCode
)

// TagMode records how a tag was written
type TagMode int

const (
	// TagModeStartEnd - `<x></x>`
	TagModeStartEnd TagMode = iota
	// TagModeSelfClosing - `<x />`
	TagModeSelfClosing
	// TagModeStartOnly - `<x>` with no end tag (void elements)
	TagModeStartOnly
)

func (m TagMode) String() string {
	switch m {
	case TagModeSelfClosing:
		return "self-closing"
	case TagModeStartOnly:
		return "start-only"
	default:
		return "start-end"
	}
}

// InferenceArgumentKind describes what a type inference argument carries
type InferenceArgumentKind int

const (
	// InferenceArgumentKindParameter - A component parameter value
	InferenceArgumentKindParameter InferenceArgumentKind = iota
	// InferenceArgumentKindTypeArgument - A literal type argument, passed as a type
	InferenceArgumentKindTypeArgument
	// InferenceArgumentKindCascadingType - A type captured by an ancestor's capture call
	InferenceArgumentKindCascadingType
	// InferenceArgumentKindChildContent - A child-content fragment
	InferenceArgumentKindChildContent
	// InferenceArgumentKindKey - The reconciliation key
	InferenceArgumentKindKey
	// InferenceArgumentKindReference - The reference capture
	InferenceArgumentKindReference
	// InferenceArgumentKindSplat - The attribute bag
	InferenceArgumentKindSplat
	// InferenceArgumentKindRenderMode - The render mode
	InferenceArgumentKindRenderMode
)

var inferenceArgumentKindNames = [...]string{
	InferenceArgumentKindParameter:     "parameter",
	InferenceArgumentKindTypeArgument:  "type",
	InferenceArgumentKindCascadingType: "cascading",
	InferenceArgumentKindChildContent:  "child-content",
	InferenceArgumentKindKey:           "key",
	InferenceArgumentKindReference:     "ref",
	InferenceArgumentKindSplat:         "splat",
	InferenceArgumentKindRenderMode:    "rendermode",
}

func (k InferenceArgumentKind) String() string {
	if int(k) >= 0 && int(k) < len(inferenceArgumentKindNames) {
		return inferenceArgumentKindNames[k]
	}
	return "unknown"
}
