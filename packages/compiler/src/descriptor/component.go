package descriptor

import (
	"strings"

	"rzc-go/packages/compiler/src/util"
)

// ComponentDeclaration is the discovery-side description of one component type.
// ExpandComponent turns it into the descriptors the lowering stage consumes.
type ComponentDeclaration struct {
	TypeName       string
	AssemblyName   string
	Attributes     []*BoundAttribute
	TypeParameters []*TypeParameter
	RenderMode     string
}

// ExpandComponent produces, for one component type:
//   - the component descriptor matched by the short tag name,
//   - the same component matched by its fully qualified tag name,
//   - one child-content slot descriptor per child-content attribute,
//   - one bind descriptor per `X`/`XChanged` attribute pair.
func ExpandComponent(decl *ComponentDeclaration) []*Descriptor {
	namespace, identifier := splitTypeName(decl.TypeName)

	attributes := append([]*BoundAttribute(nil), decl.Attributes...)
	for _, tp := range decl.TypeParameters {
		attributes = append(attributes, &BoundAttribute{
			Name:            tp.Name,
			TypeName:        "System.Type",
			PropertyName:    tp.Name,
			IsTypeParameter: true,
		})
	}

	build := func(tagName string, fullyQualified bool) *Descriptor {
		return &Descriptor{
			Kind:                    KindComponent,
			Name:                    displayTypeName(decl.TypeName, decl.TypeParameters),
			AssemblyName:            decl.AssemblyName,
			TypeName:                decl.TypeName,
			TypeNamespace:           namespace,
			TypeNameIdentifier:      identifier,
			TagMatchingRules:        []*TagMatchingRule{{TagName: tagName, CaseSensitive: true}},
			BoundAttributes:         attributes,
			TypeParameters:          decl.TypeParameters,
			FullyQualifiedNameMatch: fullyQualified,
			CaseSensitive:           true,
			RenderMode:              decl.RenderMode,
		}
	}

	result := []*Descriptor{build(identifier, false), build(decl.TypeName, true)}

	for _, tag := range []struct {
		name           string
		fullyQualified bool
	}{{identifier, false}, {decl.TypeName, true}} {
		for _, attr := range decl.Attributes {
			if attr.IsChildContent {
				result = append(result, newChildContentSlot(decl, attr, tag.name, tag.fullyQualified))
			}
		}
		for _, attr := range decl.Attributes {
			if bind := newComponentBind(decl, attr, tag.name, tag.fullyQualified); bind != nil {
				result = append(result, bind)
			}
		}
	}
	return result
}

func newChildContentSlot(decl *ComponentDeclaration, attr *BoundAttribute, parentTag string, fullyQualified bool) *Descriptor {
	namespace, identifier := splitTypeName(decl.TypeName)
	bound := []*BoundAttribute{}
	if attr.IsParameterizedChildContent {
		bound = append(bound, &BoundAttribute{
			Name:         ContextAttributeName,
			TypeName:     "System.String",
			PropertyName: ContextAttributeName,
		})
	}
	return &Descriptor{
		Kind:               KindComponent,
		Name:               decl.TypeName + "." + attr.Name,
		AssemblyName:       decl.AssemblyName,
		TypeName:           decl.TypeName + "." + attr.Name,
		TypeNamespace:      namespace,
		TypeNameIdentifier: identifier,
		TagMatchingRules: []*TagMatchingRule{{
			TagName:       attr.Name,
			ParentTag:     parentTag,
			CaseSensitive: true,
		}},
		BoundAttributes:         bound,
		IsChildContent:          true,
		FullyQualifiedNameMatch: fullyQualified,
		CaseSensitive:           true,
	}
}

func newComponentBind(decl *ComponentDeclaration, attr *BoundAttribute, tagName string, fullyQualified bool) *Descriptor {
	if attr.IsChildContent || attr.IsTypeParameter || attr.IsEventCallback || attr.IsDelegate {
		return nil
	}
	var change, expression *BoundAttribute
	for _, candidate := range decl.Attributes {
		switch candidate.Name {
		case attr.Name + "Changed":
			if candidate.IsEventCallback || candidate.IsDelegate {
				change = candidate
			}
		case attr.Name + "Expression":
			expression = candidate
		}
	}
	if change == nil {
		return nil
	}
	namespace, identifier := splitTypeName(decl.TypeName)
	metadata := &BindMetadata{
		ValueAttribute:  attr.Name,
		ChangeAttribute: change.Name,
	}
	if expression != nil {
		metadata.ExpressionAttribute = expression.Name
	}
	return &Descriptor{
		Kind:               KindBind,
		Name:               decl.TypeName + ".Bind" + attr.Name,
		AssemblyName:       decl.AssemblyName,
		TypeName:           decl.TypeName,
		TypeNamespace:      namespace,
		TypeNameIdentifier: identifier,
		TagMatchingRules: []*TagMatchingRule{{
			TagName:       tagName,
			Attributes:    []*RequiredAttribute{{Name: BindPrefix + attr.Name, IsDirectiveAttribute: true}},
			CaseSensitive: true,
		}},
		BoundAttributes: []*BoundAttribute{{
			Name:                 BindPrefix + attr.Name,
			TypeName:             attr.TypeName,
			IsDirectiveAttribute: true,
			Parameters:           bindParameters(),
		}},
		FullyQualifiedNameMatch: fullyQualified,
		CaseSensitive:           true,
		Bind:                    metadata,
	}
}

func splitTypeName(typeName string) (string, string) {
	identifier := util.LastSegment(typeName)
	namespace := strings.TrimSuffix(strings.TrimSuffix(typeName, identifier), ".")
	return namespace, identifier
}

func displayTypeName(typeName string, typeParameters []*TypeParameter) string {
	if len(typeParameters) == 0 {
		return typeName
	}
	names := make([]string, 0, len(typeParameters))
	for _, tp := range typeParameters {
		names = append(names, tp.Name)
	}
	return typeName + "<" + strings.Join(names, ", ") + ">"
}
