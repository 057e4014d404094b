package diagnostics

import (
	"fmt"
	"strings"

	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/util"
)

// Diagnostic codes reported by the lowering passes
const (
	CodeDuplicateDirectiveAttribute   = "RZ10001"
	CodeMultipleComponents            = "RZ10002"
	CodeEditorRequiredMissing         = "RZ10003"
	CodeUnknownMarkupElement          = "RZ10004"
	CodeChildContentSetTwice          = "RZ10005"
	CodeDirectiveEmptyValue           = "RZ10006"
	CodeUnsupportedLanguageVersion    = "RZ10007"
	CodeBindSetWithoutGet             = "RZ10008"
	CodeBindGetWithoutSet             = "RZ10009"
	CodeBindAfterWithSet              = "RZ10010"
	CodeBindGetSetWithBase            = "RZ10011"
	CodeBindUnresolvedNames           = "RZ10012"
	CodeDuplicateBind                 = "RZ10013"
	CodeDuplicateEventHandler         = "RZ10014"
	CodeRenderModeOnElement           = "RZ10015"
	CodeRenderModeConflict            = "RZ10016"
	CodeFormNameNotOnForm             = "RZ10017"
	CodeFormNameWithoutSubmit         = "RZ10018"
	CodeTypeInferenceUnderspecified   = "RZ10019"
	CodeDirectiveParameterUnknown     = "RZ10020"
	CodeChildContentParameterConflict = "RZ10021"
	CodeBindMissingBase               = "RZ10022"
)

// DuplicateDirectiveAttribute reports an attribute claimed by several helper descriptors
func DuplicateDirectiveAttribute(span *util.ParseSourceSpan, name string, descriptors []*descriptor.Descriptor) *util.Diagnostic {
	return util.NewDiagnostic(CodeDuplicateDirectiveAttribute, span, fmt.Sprintf(
		"The attribute '%s' is used by multiple directives: %s. Only one directive can own an attribute.",
		name, descriptorNames(descriptors)))
}

// MultipleComponents reports a tag that resolves to more than one component
func MultipleComponents(span *util.ParseSourceSpan, tagName string, descriptors []*descriptor.Descriptor) *util.Diagnostic {
	return util.NewDiagnostic(CodeMultipleComponents, span, fmt.Sprintf(
		"Multiple components use the tag '%s': %s.", tagName, descriptorNames(descriptors)))
}

// EditorRequiredMissing reports a required component parameter that is never set
func EditorRequiredMissing(span *util.ParseSourceSpan, component, parameter string) *util.Diagnostic {
	return util.NewWarning(CodeEditorRequiredMissing, span, fmt.Sprintf(
		"Component '%s' expects a value for the parameter '%s', but a value may not have been provided.",
		component, parameter))
}

// UnknownMarkupElement warns about a capitalized tag that matched no component
func UnknownMarkupElement(span *util.ParseSourceSpan, tagName string) *util.Diagnostic {
	return util.NewWarning(CodeUnknownMarkupElement, span, fmt.Sprintf(
		"Found markup element with unexpected name '%s'. If this is intended to be a component, add a namespace import for it.",
		tagName))
}

// ChildContentSetTwice reports child content given both as an attribute and as a body
func ChildContentSetTwice(span *util.ParseSourceSpan, component, attribute string) *util.Diagnostic {
	return util.NewDiagnostic(CodeChildContentSetTwice, span, fmt.Sprintf(
		"The child content property '%s' is set by both the attribute and the element contents of '%s'.",
		attribute, component))
}

// ChildContentParameterConflict reports a `Context` attribute on a component whose content takes no parameter
func ChildContentParameterConflict(span *util.ParseSourceSpan, component string) *util.Diagnostic {
	return util.NewDiagnostic(CodeChildContentParameterConflict, span, fmt.Sprintf(
		"The '%s' attribute of '%s' names a parameter, but none of its child content accepts one.",
		descriptor.ContextAttributeName, component))
}

// DirectiveEmptyValue reports a directive attribute with no content
func DirectiveEmptyValue(span *util.ParseSourceSpan, name string) *util.Diagnostic {
	return util.NewDiagnostic(CodeDirectiveEmptyValue, span, fmt.Sprintf(
		"The directive attribute '%s' requires a value.", name))
}

// UnsupportedLanguageVersion reports syntax that needs a newer language version
func UnsupportedLanguageVersion(span *util.ParseSourceSpan, feature, required, actual string) *util.Diagnostic {
	return util.NewDiagnostic(CodeUnsupportedLanguageVersion, span, fmt.Sprintf(
		"'%s' requires language version %s or later; the current version is %s.", feature, required, actual))
}

// BindSetWithoutGet reports `:set` used without `:get`
func BindSetWithoutGet(span *util.ParseSourceSpan, name string) *util.Diagnostic {
	return util.NewDiagnostic(CodeBindSetWithoutGet, span, fmt.Sprintf(
		"The attribute '%s:set' was used but no attribute '%s:get' was found.", name, name))
}

// BindGetWithoutSet reports `:get` used without `:set`
func BindGetWithoutSet(span *util.ParseSourceSpan, name string) *util.Diagnostic {
	return util.NewDiagnostic(CodeBindGetWithoutSet, span, fmt.Sprintf(
		"The attribute '%s:get' was used but no attribute '%s:set' was found.", name, name))
}

// BindAfterWithSet reports `:after` combined with `:set`
func BindAfterWithSet(span *util.ParseSourceSpan, name string) *util.Diagnostic {
	return util.NewDiagnostic(CodeBindAfterWithSet, span, fmt.Sprintf(
		"The attribute '%s:after' can not be used with '%s:set'. Invoke the code in '%s:after' inside the '%s:set' handler instead.",
		name, name, name, name))
}

// BindGetSetWithBase reports `:get`/`:set` combined with the unparameterized form
func BindGetSetWithBase(span *util.ParseSourceSpan, name string) *util.Diagnostic {
	return util.NewDiagnostic(CodeBindGetSetWithBase, span, fmt.Sprintf(
		"The attribute '%s' can not be used together with '%s:get' or '%s:set'.", name, name, name))
}

// BindUnresolvedNames reports a bind whose value or change attribute could not be determined
func BindUnresolvedNames(span *util.ParseSourceSpan, name string) *util.Diagnostic {
	return util.NewDiagnostic(CodeBindUnresolvedNames, span, fmt.Sprintf(
		"The attribute names could not be inferred from bind attribute '%s'. Bind attributes should be of the form 'bind' or 'bind-value' along with their corresponding optional parameters like 'bind-value:event', 'bind:format' etc.",
		name))
}

// DirectiveParameterUnknown reports a modifier the directive does not accept
func DirectiveParameterUnknown(span *util.ParseSourceSpan, name, parameter string) *util.Diagnostic {
	return util.NewDiagnostic(CodeDirectiveParameterUnknown, span, fmt.Sprintf(
		"The directive attribute '%s' does not accept the parameter '%s'.", name, parameter))
}

// BindMissingBase reports bind modifiers with no bind attribute to modify
func BindMissingBase(span *util.ParseSourceSpan, name string) *util.Diagnostic {
	return util.NewDiagnostic(CodeBindMissingBase, span, fmt.Sprintf(
		"Could not find the non-parameterized bind attribute that corresponds to the attribute '%s'.", name))
}

// DuplicateBind reports several bind entries writing the same value attribute
func DuplicateBind(span *util.ParseSourceSpan, attribute string) *util.Diagnostic {
	return util.NewDiagnostic(CodeDuplicateBind, span, fmt.Sprintf(
		"The attribute '%s' is bound more than once on the same element.", attribute))
}

// DuplicateEventHandler reports event handlers that target the same event
func DuplicateEventHandler(span *util.ParseSourceSpan, name string, descriptors []*descriptor.Descriptor) *util.Diagnostic {
	return util.NewDiagnostic(CodeDuplicateEventHandler, span, fmt.Sprintf(
		"The event handler '%s' is defined more than once: %s.", name, descriptorNames(descriptors)))
}

// RenderModeOnElement reports `@rendermode` on something other than a component
func RenderModeOnElement(span *util.ParseSourceSpan, tagName string) *util.Diagnostic {
	return util.NewDiagnostic(CodeRenderModeOnElement, span, fmt.Sprintf(
		"The attribute '%s' can only be applied to a component, but '%s' is an element.",
		descriptor.RenderModeAttributeName, tagName))
}

// RenderModeConflict reports `@rendermode` on a component that declares its own render mode
func RenderModeConflict(span *util.ParseSourceSpan, component, declared string) *util.Diagnostic {
	return util.NewDiagnostic(CodeRenderModeConflict, span, fmt.Sprintf(
		"The component '%s' declares the render mode '%s' and can not also be given one with '%s'.",
		component, declared, descriptor.RenderModeAttributeName))
}

// FormNameNotOnForm reports `@formname` outside a form element
func FormNameNotOnForm(span *util.ParseSourceSpan, tagName string) *util.Diagnostic {
	return util.NewDiagnostic(CodeFormNameNotOnForm, span, fmt.Sprintf(
		"The attribute '%s' can only be applied to 'form' elements, but was found on '%s'.",
		descriptor.FormNameAttributeName, tagName))
}

// FormNameWithoutSubmit warns about a named form with no submit handler
func FormNameWithoutSubmit(span *util.ParseSourceSpan) *util.Diagnostic {
	return util.NewWarning(CodeFormNameWithoutSubmit, span, fmt.Sprintf(
		"A form with '%s' should also define an '@onsubmit' handler.", descriptor.FormNameAttributeName))
}

// TypeInferenceUnderspecified reports generic type parameters that can not be inferred
func TypeInferenceUnderspecified(span *util.ParseSourceSpan, component string, missing []string) *util.Diagnostic {
	return util.NewDiagnostic(CodeTypeInferenceUnderspecified, span, fmt.Sprintf(
		"The type of component '%s' cannot be inferred based on the values provided. Consider specifying the type arguments directly using the following attributes: '%s'.",
		component, strings.Join(missing, "', '")))
}

func descriptorNames(descriptors []*descriptor.Descriptor) string {
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, "'"+d.DisplayName()+"'")
	}
	return strings.Join(names, ", ")
}
