package descriptor

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML shape of a descriptor catalog produced by discovery
type CatalogFile struct {
	NoBuiltins bool            `yaml:"noBuiltins"`
	Components []ComponentYAML `yaml:"components"`
	Helpers    []HelperYAML    `yaml:"helpers"`
}

type ComponentYAML struct {
	Type           string              `yaml:"type"`
	Assembly       string              `yaml:"assembly"`
	RenderMode     string              `yaml:"renderMode"`
	TypeParameters []TypeParameterYAML `yaml:"typeParameters"`
	Attributes     []AttributeYAML     `yaml:"attributes"`
}

type TypeParameterYAML struct {
	Name        string `yaml:"name"`
	Constraints string `yaml:"constraints"`
	Cascading   bool   `yaml:"cascading"`
}

type AttributeYAML struct {
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	IndexerPrefix  string   `yaml:"indexerPrefix"`
	ChildContent   bool     `yaml:"childContent"`
	Parameterized  bool     `yaml:"parameterized"`
	EventCallback  bool     `yaml:"eventCallback"`
	Delegate       bool     `yaml:"delegate"`
	GenericTyped   bool     `yaml:"genericTyped"`
	EditorRequired bool     `yaml:"editorRequired"`
	Parameters     []string `yaml:"parameters"`
}

type HelperYAML struct {
	Kind       string          `yaml:"kind"`
	Name       string          `yaml:"name"`
	Tag        string          `yaml:"tag"`
	Parent     string          `yaml:"parent"`
	Required   string          `yaml:"required"`
	Fallback   bool            `yaml:"fallback"`
	EventArgs  string          `yaml:"eventArgs"`
	Attributes []AttributeYAML `yaml:"attributes"`
	Bind       *BindYAML       `yaml:"bind"`
}

type BindYAML struct {
	Value            string `yaml:"value"`
	Change           string `yaml:"change"`
	Expression       string `yaml:"expression"`
	Format           string `yaml:"format"`
	InvariantCulture bool   `yaml:"invariantCulture"`
	Type             string `yaml:"type"`
}

// LoadCatalog reads and parses a YAML descriptor catalog
func LoadCatalog(path string) (*Catalog, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog builds a Catalog from YAML data
func ParseCatalog(data []byte) (*Catalog, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	descriptors, err := file.Descriptors()
	if err != nil {
		return nil, err
	}
	if file.NoBuiltins {
		return NewCatalog(descriptors), nil
	}
	return NewCatalogWithBuiltins(descriptors), nil
}

// Descriptors converts the file contents into descriptors, components first
func (f *CatalogFile) Descriptors() ([]*Descriptor, error) {
	var result []*Descriptor
	for i, c := range f.Components {
		if c.Type == "" {
			return nil, fmt.Errorf("component #%d has no type", i)
		}
		decl := &ComponentDeclaration{
			TypeName:     c.Type,
			AssemblyName: c.Assembly,
			RenderMode:   c.RenderMode,
		}
		for _, tp := range c.TypeParameters {
			decl.TypeParameters = append(decl.TypeParameters, &TypeParameter{
				Name:        tp.Name,
				Constraints: tp.Constraints,
				Cascading:   tp.Cascading,
			})
		}
		for _, a := range c.Attributes {
			decl.Attributes = append(decl.Attributes, a.toBoundAttribute())
		}
		result = append(result, ExpandComponent(decl)...)
	}

	for i, h := range f.Helpers {
		kind, ok := ParseKind(h.Kind)
		if !ok || kind == KindComponent {
			return nil, fmt.Errorf("helper #%d has invalid kind %q", i, h.Kind)
		}
		rule, err := NewTagMatchingRule(h.Tag, h.Parent, h.Required, false)
		if err != nil {
			return nil, fmt.Errorf("helper %q: %w", h.Name, err)
		}
		d := &Descriptor{
			Kind:               kind,
			Name:               h.Name,
			TypeName:           h.Name,
			TypeNameIdentifier: h.Name,
			TagMatchingRules:   []*TagMatchingRule{rule},
			IsFallback:         h.Fallback,
			EventArgsType:      h.EventArgs,
		}
		for _, a := range h.Attributes {
			attr := a.toBoundAttribute()
			attr.IsDirectiveAttribute = kind != KindPlain
			d.BoundAttributes = append(d.BoundAttributes, attr)
		}
		if h.Bind != nil {
			d.Bind = &BindMetadata{
				ValueAttribute:      h.Bind.Value,
				ChangeAttribute:     h.Bind.Change,
				ExpressionAttribute: h.Bind.Expression,
				Format:              h.Bind.Format,
				InvariantCulture:    h.Bind.InvariantCulture,
				TypeAttribute:       h.Bind.Type,
			}
		} else if kind == KindBind {
			d.Bind = &BindMetadata{}
		}
		result = append(result, d)
	}
	return result, nil
}

func (a AttributeYAML) toBoundAttribute() *BoundAttribute {
	attr := &BoundAttribute{
		Name:                        a.Name,
		TypeName:                    a.Type,
		PropertyName:                a.Name,
		IndexerNamePrefix:           a.IndexerPrefix,
		IsChildContent:              a.ChildContent,
		IsParameterizedChildContent: a.Parameterized,
		IsEventCallback:             a.EventCallback,
		IsDelegate:                  a.Delegate,
		IsGenericTyped:              a.GenericTyped,
		EditorRequired:              a.EditorRequired,
	}
	for _, p := range a.Parameters {
		attr.Parameters = append(attr.Parameters, &BoundAttributeParameter{Name: p, PropertyName: p})
	}
	return attr
}
