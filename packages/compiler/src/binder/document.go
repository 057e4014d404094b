package binder

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DocumentFile is the parsed form of one template document, as produced by the parsing
// collaborator. JSON documents are accepted as well since JSON is valid YAML.
//
//	filePath: Pages/Index.razor
//	namespace: App.Pages
//	nodes:
//	  - using: App.Components
//	  - tag: input
//	    mode: selfClosing
//	    attributes:
//	      - {name: "@bind", value: "Name"}
//	  - text: "Hello"
type DocumentFile struct {
	FilePath  string      `yaml:"filePath"`
	Namespace string      `yaml:"namespace"`
	Nodes     []*NodeYAML `yaml:"nodes"`
}

// NodeYAML is one body node. Exactly one of Using, Tag, Text or Expr is set.
type NodeYAML struct {
	Using      string           `yaml:"using"`
	Tag        string           `yaml:"tag"`
	Mode       string           `yaml:"mode"`
	Text       string           `yaml:"text"`
	Expr       string           `yaml:"expr"`
	Attributes []*AttributeYAML `yaml:"attributes"`
	Children   []*NodeYAML      `yaml:"children"`

	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

// AttributeYAML is one attribute occurrence. A missing value means the attribute is
// minimized; a value starting with '@' is a host-language expression.
type AttributeYAML struct {
	Name  string  `yaml:"name"`
	Value *string `yaml:"value"`

	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

// UnmarshalYAML records where the node was written
func (n *NodeYAML) UnmarshalYAML(value *yaml.Node) error {
	type plain NodeYAML
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.Line, n.Column = value.Line, value.Column
	return nil
}

// UnmarshalYAML records where the attribute was written
func (a *AttributeYAML) UnmarshalYAML(value *yaml.Node) error {
	type plain AttributeYAML
	if err := value.Decode((*plain)(a)); err != nil {
		return err
	}
	a.Line, a.Column = value.Line, value.Column
	return nil
}

// LoadDocument reads and parses a document file
func LoadDocument(path string) (*DocumentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	if doc.FilePath == "" {
		doc.FilePath = filepath.ToSlash(path)
	}
	return doc, nil
}

// ParseDocument parses YAML or JSON document data
func ParseDocument(data []byte) (*DocumentFile, error) {
	var doc DocumentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := validateNodes(doc.Nodes); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validateNodes(nodes []*NodeYAML) error {
	for _, n := range nodes {
		set := 0
		for _, s := range []string{n.Using, n.Tag, n.Text, n.Expr} {
			if s != "" {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("line %d: node must have exactly one of using, tag, text or expr", n.Line)
		}
		switch n.Mode {
		case "", "startEnd", "selfClosing", "startOnly":
		default:
			return fmt.Errorf("line %d: unknown tag mode %q", n.Line, n.Mode)
		}
		if n.Tag == "" && (len(n.Attributes) > 0 || len(n.Children) > 0) {
			return fmt.Errorf("line %d: only tags carry attributes and children", n.Line)
		}
		for _, a := range n.Attributes {
			if a.Name == "" {
				return fmt.Errorf("line %d: attribute without a name", a.Line)
			}
		}
		if err := validateNodes(n.Children); err != nil {
			return err
		}
	}
	return nil
}
