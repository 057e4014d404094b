package descriptor

// Names of the built-in directive attributes
const (
	BindAttributeName       = "@bind"
	BindPrefix              = "@bind-"
	KeyAttributeName        = "@key"
	RefAttributeName        = "@ref"
	SplatAttributeName      = "@attributes"
	RenderModeAttributeName = "@rendermode"
	FormNameAttributeName   = "@formname"
	EventPrefix             = "@on"
)

// Names of the parameters accepted by bind and event directive attributes
const (
	BindParameterFormat     = "format"
	BindParameterEvent      = "event"
	BindParameterCulture    = "culture"
	BindParameterGet        = "get"
	BindParameterSet        = "set"
	BindParameterAfter      = "after"
	EventParameterPrevent   = "preventDefault"
	EventParameterStop      = "stopPropagation"
	BuiltinAssemblyName     = "Microsoft.AspNetCore.Components"
	componentsNamespace     = "Microsoft.AspNetCore.Components"
	componentsWebNamespace  = "Microsoft.AspNetCore.Components.Web"
	defaultEventArgsType    = "System.EventArgs"
	defaultChangeAttribute  = "onchange"
	defaultValueAttribute   = "value"
	invariantDateFormat     = "yyyy-MM-dd"
	invariantDateTimeFormat = "yyyy-MM-ddTHH:mm:ss"
	invariantMonthFormat    = "yyyy-MM"
	invariantTimeFormat     = "HH:mm:ss"
)

// builtins is built once at startup and shared read-only by every compilation.
var builtins = buildBuiltins()

// Builtins returns the always-present directive helper descriptors
func Builtins() []*Descriptor {
	result := make([]*Descriptor, len(builtins))
	copy(result, builtins)
	return result
}

func buildBuiltins() []*Descriptor {
	result := []*Descriptor{
		newFallbackBind(),
		newFallbackEvent(),
		newDirectiveHelper(KindKey, "Key", KeyAttributeName, "System.Object"),
		newDirectiveHelper(KindRef, "Ref", RefAttributeName, "System.Object"),
		newDirectiveHelper(KindSplat, "Attributes", SplatAttributeName,
			"System.Collections.Generic.IEnumerable<System.Collections.Generic.KeyValuePair<string, object>>"),
		newDirectiveHelper(KindRenderMode, "RenderMode", RenderModeAttributeName, componentsNamespace+".IComponentRenderMode"),
		newDirectiveHelper(KindFormName, "FormName", FormNameAttributeName, "System.String"),
	}

	result = append(result,
		newElementBind("input", "", defaultValueAttribute, defaultChangeAttribute, "", false),
		newElementBind("input", "checkbox", "checked", defaultChangeAttribute, "", false),
		newElementBind("input", "text", defaultValueAttribute, defaultChangeAttribute, "", false),
		newElementBind("input", "number", defaultValueAttribute, defaultChangeAttribute, "", true),
		newElementBind("input", "date", defaultValueAttribute, defaultChangeAttribute, invariantDateFormat, true),
		newElementBind("input", "datetime-local", defaultValueAttribute, defaultChangeAttribute, invariantDateTimeFormat, true),
		newElementBind("input", "month", defaultValueAttribute, defaultChangeAttribute, invariantMonthFormat, true),
		newElementBind("input", "time", defaultValueAttribute, defaultChangeAttribute, invariantTimeFormat, true),
		newElementBind("select", "", defaultValueAttribute, defaultChangeAttribute, "", false),
		newElementBind("textarea", "", defaultValueAttribute, defaultChangeAttribute, "", false),
	)

	for _, event := range builtinEvents {
		result = append(result, newEventHelper(event.name, event.argsType))
	}
	return result
}

var builtinEvents = []struct {
	name     string
	argsType string
}{
	{"onclick", componentsWebNamespace + ".MouseEventArgs"},
	{"ondblclick", componentsWebNamespace + ".MouseEventArgs"},
	{"onmousedown", componentsWebNamespace + ".MouseEventArgs"},
	{"onmouseup", componentsWebNamespace + ".MouseEventArgs"},
	{"onmouseover", componentsWebNamespace + ".MouseEventArgs"},
	{"onmouseout", componentsWebNamespace + ".MouseEventArgs"},
	{"onchange", componentsNamespace + ".ChangeEventArgs"},
	{"oninput", componentsNamespace + ".ChangeEventArgs"},
	{"onkeydown", componentsWebNamespace + ".KeyboardEventArgs"},
	{"onkeyup", componentsWebNamespace + ".KeyboardEventArgs"},
	{"onkeypress", componentsWebNamespace + ".KeyboardEventArgs"},
	{"onfocus", componentsWebNamespace + ".FocusEventArgs"},
	{"onblur", componentsWebNamespace + ".FocusEventArgs"},
	{"onsubmit", defaultEventArgsType},
	{"onreset", defaultEventArgsType},
}

func bindParameters() []*BoundAttributeParameter {
	return []*BoundAttributeParameter{
		{Name: BindParameterFormat, TypeName: "System.String", PropertyName: "Format"},
		{Name: BindParameterEvent, TypeName: "System.String", PropertyName: "Event"},
		{Name: BindParameterCulture, TypeName: "System.Globalization.CultureInfo", PropertyName: "Culture"},
		{Name: BindParameterGet, TypeName: "System.Object", PropertyName: "Get"},
		{Name: BindParameterSet, TypeName: "System.Delegate", PropertyName: "Set"},
		{Name: BindParameterAfter, TypeName: "System.Delegate", PropertyName: "After"},
	}
}

func eventParameters() []*BoundAttributeParameter {
	return []*BoundAttributeParameter{
		{Name: EventParameterPrevent, TypeName: "System.Boolean", PropertyName: "PreventDefault"},
		{Name: EventParameterStop, TypeName: "System.Boolean", PropertyName: "StopPropagation"},
	}
}

func newFallbackBind() *Descriptor {
	return &Descriptor{
		Kind:               KindBind,
		Name:               "Bind",
		AssemblyName:       BuiltinAssemblyName,
		TypeName:           componentsNamespace + ".Bind",
		TypeNamespace:      componentsNamespace,
		TypeNameIdentifier: "Bind",
		TagMatchingRules:   []*TagMatchingRule{mustRule(WildcardTagName, BindPrefix+"*")},
		BoundAttributes: []*BoundAttribute{{
			Name:                 BindPrefix + "...",
			TypeName:             "System.Collections.Generic.Dictionary<string, object>",
			IndexerNamePrefix:    BindPrefix,
			IndexerTypeName:      "System.Object",
			IsDirectiveAttribute: true,
			Parameters:           bindParameters(),
		}},
		IsFallback: true,
		Bind:       &BindMetadata{},
	}
}

func newFallbackEvent() *Descriptor {
	return &Descriptor{
		Kind:               KindEvent,
		Name:               "EventHandler",
		AssemblyName:       BuiltinAssemblyName,
		TypeName:           componentsWebNamespace + ".EventHandlers",
		TypeNamespace:      componentsWebNamespace,
		TypeNameIdentifier: "EventHandlers",
		TagMatchingRules:   []*TagMatchingRule{mustRule(WildcardTagName, EventPrefix+"*")},
		BoundAttributes: []*BoundAttribute{{
			Name:                 EventPrefix + "...",
			TypeName:             "System.Collections.Generic.Dictionary<string, object>",
			IndexerNamePrefix:    EventPrefix,
			IndexerTypeName:      componentsNamespace + ".EventCallback<" + defaultEventArgsType + ">",
			IsDirectiveAttribute: true,
			Parameters:           eventParameters(),
		}},
		IsFallback:    true,
		EventArgsType: defaultEventArgsType,
	}
}

func newDirectiveHelper(kind Kind, name, attributeName, typeName string) *Descriptor {
	return &Descriptor{
		Kind:               kind,
		Name:               name,
		AssemblyName:       BuiltinAssemblyName,
		TypeName:           componentsNamespace + "." + name,
		TypeNamespace:      componentsNamespace,
		TypeNameIdentifier: name,
		TagMatchingRules:   []*TagMatchingRule{mustRule(WildcardTagName, attributeName)},
		BoundAttributes: []*BoundAttribute{{
			Name:                 attributeName,
			TypeName:             typeName,
			IsDirectiveAttribute: true,
		}},
	}
}

func newElementBind(tagName, typeAttribute, valueAttribute, changeAttribute, format string, invariantCulture bool) *Descriptor {
	name := "Bind_" + tagName
	required := ""
	if typeAttribute != "" {
		name += "_" + typeAttribute
		required = "[type=" + typeAttribute + "], "
	}
	rules := []*TagMatchingRule{
		mustRule(tagName, required+BindAttributeName),
		mustRule(tagName, required+BindPrefix+valueAttribute),
	}
	return &Descriptor{
		Kind:               KindBind,
		Name:               name,
		AssemblyName:       BuiltinAssemblyName,
		TypeName:           componentsWebNamespace + ".BindAttributes",
		TypeNamespace:      componentsWebNamespace,
		TypeNameIdentifier: "BindAttributes",
		TagMatchingRules:   rules,
		BoundAttributes: []*BoundAttribute{
			{Name: BindAttributeName, TypeName: "System.Object", IsDirectiveAttribute: true, Parameters: bindParameters()},
			{Name: BindPrefix + valueAttribute, TypeName: "System.Object", IsDirectiveAttribute: true, Parameters: bindParameters()},
		},
		Bind: &BindMetadata{
			ValueAttribute:   valueAttribute,
			ChangeAttribute:  changeAttribute,
			Format:           format,
			InvariantCulture: invariantCulture,
			TypeAttribute:    typeAttribute,
		},
	}
}

func newEventHelper(eventName, argsType string) *Descriptor {
	attributeName := "@" + eventName
	return &Descriptor{
		Kind:               KindEvent,
		Name:               "EventHandler_" + eventName,
		AssemblyName:       BuiltinAssemblyName,
		TypeName:           componentsWebNamespace + ".EventHandlers",
		TypeNamespace:      componentsWebNamespace,
		TypeNameIdentifier: "EventHandlers",
		TagMatchingRules:   []*TagMatchingRule{mustRule(WildcardTagName, attributeName)},
		BoundAttributes: []*BoundAttribute{{
			Name:                 attributeName,
			TypeName:             componentsNamespace + ".EventCallback<" + argsType + ">",
			IsDirectiveAttribute: true,
			IsEventCallback:      true,
			Parameters:           eventParameters(),
		}},
		EventArgsType: argsType,
	}
}
