package descriptor

import (
	"strings"
)

// Kind distinguishes the families of descriptors the lowering stage understands
type Kind int

const (
	// KindComponent - A component (or a child-content slot of a component)
	KindComponent Kind = iota
	// KindBind - A two-way binding helper (`@bind`, `@bind-Value`, ...)
	KindBind
	// KindEvent - An event handler helper (`@onclick`, ...)
	KindEvent
	// KindRef - The `@ref` reference capture helper
	KindRef
	// KindKey - The `@key` reconciliation key helper
	KindKey
	// KindSplat - The `@attributes` attribute bag helper
	KindSplat
	// KindRenderMode - The `@rendermode` helper
	KindRenderMode
	// KindFormName - The `@formname` helper
	KindFormName
	// KindPlain - A helper with no lowering semantics of its own
	KindPlain
)

var kindNames = [...]string{
	KindComponent:  "component",
	KindBind:       "bind",
	KindEvent:      "event",
	KindRef:        "ref",
	KindKey:        "key",
	KindSplat:      "splat",
	KindRenderMode: "rendermode",
	KindFormName:   "formname",
	KindPlain:      "plain",
}

// String returns the lower-case kind name
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), true
		}
	}
	return KindPlain, false
}

// TypeParameter is a generic type parameter declared by a component
type TypeParameter struct {
	Name        string
	Constraints string
	// Cascading type parameters are made available to descendant components.
	Cascading bool
}

// BoundAttributeParameter is a `:name` modifier accepted by a directive attribute
type BoundAttributeParameter struct {
	Name         string
	TypeName     string
	PropertyName string
}

// BoundAttribute describes an attribute a descriptor can bind
type BoundAttribute struct {
	Name         string
	TypeName     string
	PropertyName string

	// IndexerNamePrefix marks a dictionary-with-prefix attribute (`prefix-*`).
	IndexerNamePrefix string
	IndexerTypeName   string

	IsTypeParameter             bool
	IsChildContent              bool
	IsParameterizedChildContent bool
	IsEventCallback             bool
	IsDelegate                  bool
	IsGenericTyped              bool
	EditorRequired              bool
	IsDirectiveAttribute        bool

	Parameters []*BoundAttributeParameter
}

// FindParameter returns the bound parameter with the given name
func (b *BoundAttribute) FindParameter(name string) *BoundAttributeParameter {
	for _, p := range b.Parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// MatchesName reports whether attributeName targets this attribute.
func (b *BoundAttribute) MatchesName(attributeName string, caseSensitive bool) bool {
	if equalName(b.Name, attributeName, caseSensitive) {
		return true
	}
	if b.IndexerNamePrefix != "" {
		if caseSensitive {
			return strings.HasPrefix(attributeName, b.IndexerNamePrefix) && len(attributeName) > len(b.IndexerNamePrefix)
		}
		return len(attributeName) > len(b.IndexerNamePrefix) &&
			strings.EqualFold(attributeName[:len(b.IndexerNamePrefix)], b.IndexerNamePrefix)
	}
	return false
}

// BindMetadata carries the attribute names a bind helper maps to
type BindMetadata struct {
	ValueAttribute      string
	ChangeAttribute     string
	ExpressionAttribute string
	Format              string
	InvariantCulture    bool
	// TypeAttribute is the `type` attribute value an element bind helper is specific to.
	TypeAttribute string
}

// Descriptor is an immutable description of a taggable construct
type Descriptor struct {
	Kind               Kind
	Name               string
	AssemblyName       string
	TypeName           string
	TypeNamespace      string
	TypeNameIdentifier string

	TagMatchingRules []*TagMatchingRule
	BoundAttributes  []*BoundAttribute
	TypeParameters   []*TypeParameter

	// FullyQualifiedNameMatch descriptors only match tags spelled with the full type name.
	FullyQualifiedNameMatch bool
	// IsFallback descriptors match attributes generically and lose to specific ones.
	IsFallback bool
	// IsChildContent descriptors describe a child-content slot of a parent component.
	IsChildContent bool
	// CaseSensitive controls attribute name comparisons.
	CaseSensitive bool

	Bind          *BindMetadata
	EventArgsType string
	// RenderMode is the fixed render mode declared by the component type, if any.
	RenderMode string
}

// DisplayName returns the name used in diagnostics
func (d *Descriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	if d.TypeName != "" {
		return d.TypeName
	}
	return d.Kind.String()
}

// IsComponent reports whether the descriptor is a component (not a child-content slot)
func (d *Descriptor) IsComponent() bool {
	return d.Kind == KindComponent && !d.IsChildContent
}

// IsChildContentSlot reports whether the descriptor is a child-content slot
func (d *Descriptor) IsChildContentSlot() bool {
	return d.Kind == KindComponent && d.IsChildContent
}

// IsGeneric reports whether the component declares type parameters
func (d *Descriptor) IsGeneric() bool {
	return len(d.TypeParameters) > 0
}

// IsDirectiveHelper reports whether the descriptor only matches directive attributes
func (d *Descriptor) IsDirectiveHelper() bool {
	switch d.Kind {
	case KindBind, KindEvent, KindRef, KindKey, KindSplat, KindRenderMode, KindFormName:
		return true
	}
	return false
}

// FindBoundAttribute finds the bound attribute targeted by attributeName
func (d *Descriptor) FindBoundAttribute(attributeName string) *BoundAttribute {
	for _, attr := range d.BoundAttributes {
		if equalName(attr.Name, attributeName, d.CaseSensitive) {
			return attr
		}
	}
	for _, attr := range d.BoundAttributes {
		if attr.IndexerNamePrefix != "" && attr.MatchesName(attributeName, d.CaseSensitive) {
			return attr
		}
	}
	return nil
}

// HasBoundAttribute reports whether attributeName is bound by this descriptor
func (d *Descriptor) HasBoundAttribute(attributeName string) bool {
	return d.FindBoundAttribute(attributeName) != nil
}

// FindTypeParameter returns the type parameter with the given name
func (d *Descriptor) FindTypeParameter(name string) *TypeParameter {
	for _, tp := range d.TypeParameters {
		if tp.Name == name {
			return tp
		}
	}
	return nil
}

// TypeParameterNames returns the declared type parameter names in order
func (d *Descriptor) TypeParameterNames() []string {
	names := make([]string, 0, len(d.TypeParameters))
	for _, tp := range d.TypeParameters {
		names = append(names, tp.Name)
	}
	return names
}

// ChildContentAttributes returns the bound attributes that accept child content
func (d *Descriptor) ChildContentAttributes() []*BoundAttribute {
	var result []*BoundAttribute
	for _, attr := range d.BoundAttributes {
		if attr.IsChildContent {
			result = append(result, attr)
		}
	}
	return result
}

// DefaultChildContent returns the "ChildContent" attribute when declared
func (d *Descriptor) DefaultChildContent() *BoundAttribute {
	for _, attr := range d.BoundAttributes {
		if attr.IsChildContent && attr.Name == ChildContentAttributeName {
			return attr
		}
	}
	return nil
}

// TagName returns the tag name of the first matching rule
func (d *Descriptor) TagName() string {
	if len(d.TagMatchingRules) == 0 {
		return ""
	}
	return d.TagMatchingRules[0].TagName
}

// ChildContentAttributeName is the conventional name of the default child content
const ChildContentAttributeName = "ChildContent"

// ChildContentParameterName is the default lambda parameter name for parameterized child content
const ChildContentParameterName = "context"

// ContextAttributeName names the attribute that renames the child-content parameter
const ContextAttributeName = "Context"

func equalName(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
