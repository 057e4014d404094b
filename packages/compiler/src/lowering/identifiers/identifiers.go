package identifiers

import (
	"strings"
)

// Global is the prefix that makes a host-language type name unambiguous
const Global = "global::"

var (
	ComponentsNamespace = "Microsoft.AspNetCore.Components"
	CompilerServices    = ComponentsNamespace + ".CompilerServices"
)

// ExternalReference is a runtime member referenced by generated code
type ExternalReference struct {
	Name       string
	ModuleName string
}

// String returns the globally qualified name
func (r *ExternalReference) String() string {
	if r.ModuleName == "" {
		return Global + r.Name
	}
	return Global + r.ModuleName + "." + r.Name
}

// Runtime members
var (
	FormatValue                 = &ExternalReference{Name: "BindConverter.FormatValue", ModuleName: ComponentsNamespace}
	EventCallbackFactoryCreate  = &ExternalReference{Name: "EventCallback.Factory.Create", ModuleName: ComponentsNamespace}
	CreateBinder                = &ExternalReference{Name: "EventCallback.Factory.CreateBinder", ModuleName: ComponentsNamespace}
	TypeCheck                   = &ExternalReference{Name: "RuntimeHelpers.TypeCheck", ModuleName: CompilerServices}
	CreateInferredEventCallback = &ExternalReference{Name: "RuntimeHelpers.CreateInferredEventCallback", ModuleName: CompilerServices}
	CreateInferredBindSetter    = &ExternalReference{Name: "RuntimeHelpers.CreateInferredBindSetter", ModuleName: CompilerServices}
	InvokeSynchronousDelegate   = &ExternalReference{Name: "RuntimeHelpers.InvokeSynchronousDelegate", ModuleName: CompilerServices}
	InvokeAsynchronousDelegate  = &ExternalReference{Name: "RuntimeHelpers.InvokeAsynchronousDelegate", ModuleName: CompilerServices}
	InvariantCulture            = &ExternalReference{Name: "CultureInfo.InvariantCulture", ModuleName: "System.Globalization"}
)

// Runtime types
var (
	ElementReference  = &ExternalReference{Name: "ElementReference", ModuleName: ComponentsNamespace}
	EventArgs         = &ExternalReference{Name: "EventArgs", ModuleName: "System"}
	Object            = &ExternalReference{Name: "Object", ModuleName: "System"}
	Action            = &ExternalReference{Name: "Action", ModuleName: "System"}
	AttributeSequence = "global::System.Collections.Generic.IEnumerable<global::System.Collections.Generic.KeyValuePair<string, object>>"
)

// Names used in generated code
const (
	ValueParameter          = "__value"
	TypeInferenceArgPrefix  = "__typeInferenceArg_"
	CaptureParametersSuffix = "_CaptureParameters"
	SyntheticArgPrefix      = "__syntheticArg_"
	This                    = "this"
)

// Qualify prefixes a dotted type name with `global::`. Type parameters, keywords and names
// that are already qualified are returned unchanged.
func Qualify(typeName string) string {
	if typeName == "" || strings.HasPrefix(typeName, Global) || !strings.Contains(typeName, ".") {
		return typeName
	}
	return Global + typeName
}

// Generic returns `name<args>`
func Generic(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}

// TypeArgumentOf returns the text between the outermost angle brackets of a generic type
// name, or "" for non-generic names.
func TypeArgumentOf(typeName string) string {
	start := strings.Index(typeName, "<")
	end := strings.LastIndex(typeName, ">")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(typeName[start+1 : end])
}
