package ir

import (
	gojson "github.com/goccy/go-json"

	"rzc-go/packages/compiler/src/util"
)

// JSONNode is the serialized form of a node handed to out-of-process emitters
type JSONNode struct {
	Kind        string            `json:"kind"`
	Name        string            `json:"name,omitempty"`
	Value       string            `json:"value,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Diagnostics []JSONDiagnostic  `json:"diagnostics,omitempty"`
	Children    []*JSONNode       `json:"children,omitempty"`
}

// JSONDiagnostic is the serialized form of a diagnostic
type JSONDiagnostic struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// JSONDocument is the serialized form of a lowered document
type JSONDocument struct {
	FilePath             string           `json:"filePath"`
	Namespace            string           `json:"namespace,omitempty"`
	Children             []*JSONNode      `json:"children"`
	TypeInferenceMethods []*JSONMethod    `json:"typeInferenceMethods,omitempty"`
	Diagnostics          []JSONDiagnostic `json:"diagnostics,omitempty"`
}

// JSONMethod is the serialized form of a type inference method
type JSONMethod struct {
	Name           string   `json:"name"`
	Component      string   `json:"component"`
	TypeParameters []string `json:"typeParameters"`
	Parameters     []string `json:"parameters"`
	CaptureMethod  string   `json:"captureMethod,omitempty"`
}

// ToJSON converts a document into its serializable form
func ToJSON(doc *Document) *JSONDocument {
	result := &JSONDocument{
		FilePath:    doc.FilePath,
		Namespace:   doc.Namespace,
		Children:    []*JSONNode{},
		Diagnostics: toJSONDiagnostics(CollectDiagnostics(doc)),
	}
	for _, child := range doc.Children {
		result.Children = append(result.Children, toJSONNode(child))
	}
	for _, m := range doc.TypeInferenceMethods {
		jm := &JSONMethod{
			Name:          m.MethodName,
			Component:     m.ComponentType,
			CaptureMethod: m.CaptureMethodName,
		}
		for _, tp := range m.TypeParameters {
			jm.TypeParameters = append(jm.TypeParameters, tp.Name)
		}
		for _, p := range m.Parameters {
			jm.Parameters = append(jm.Parameters, p.TypeName+" "+p.Name)
		}
		result.TypeInferenceMethods = append(result.TypeInferenceMethods, jm)
	}
	return result
}

// MarshalDocuments serializes lowered documents as indented JSON
func MarshalDocuments(docs []*Document) ([]byte, error) {
	out := make([]*JSONDocument, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ToJSON(doc))
	}
	return gojson.MarshalIndent(out, "", "  ")
}

func toJSONNode(node Node) *JSONNode {
	row := humanizeNode(node, 0)
	result := &JSONNode{Kind: node.Kind().String()}
	if name, ok := row[1].(string); ok {
		result.Name = name
	}
	if len(row) > 3 {
		if value, ok := row[3].(string); ok {
			result.Value = value
		}
	}

	fields := map[string]string{}
	switch n := node.(type) {
	case *MarkupAttribute:
		if n.Updates != "" {
			fields["updates"] = n.Updates
		}
		if n.IsEventCallback {
			fields["eventCallback"] = "true"
		}
		result.Value = n.Value.AsCode()
	case *ComponentParameter:
		if n.TypeName != "" {
			fields["type"] = n.TypeName
		}
		result.Value = n.Value.AsCode()
	case *ReferenceCapture:
		fields["type"] = n.TypeName
		if n.IsComponentCapture {
			fields["component"] = "true"
		}
	case *ComponentInvocation:
		fields["tag"] = n.TagName
	case *TypeInferenceCall:
		for _, arg := range n.Arguments {
			if arg.VariableName != "" {
				fields[arg.Name] = arg.VariableName
			} else {
				fields[arg.Name] = arg.Value.AsCode()
			}
		}
	case *CaptureParametersCall:
		for _, v := range n.Variables {
			fields[v.Name] = v.Value.AsCode()
		}
	}
	if len(fields) > 0 {
		result.Fields = fields
	}
	result.Diagnostics = toJSONDiagnostics(node.Base().Diagnostics)
	for _, child := range node.Base().Children {
		result.Children = append(result.Children, toJSONNode(child))
	}
	return result
}

func toJSONDiagnostics(diagnostics []*util.Diagnostic) []JSONDiagnostic {
	var result []JSONDiagnostic
	for _, d := range diagnostics {
		jd := JSONDiagnostic{
			Code:     d.Code,
			Severity: d.Severity.String(),
			Message:  d.Message,
		}
		if d.Span != nil && d.Span.Start != nil {
			jd.Location = d.Span.Start.String()
		}
		result = append(result, jd)
	}
	return result
}
