package phases

import (
	"strings"

	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/diagnostics"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/identifiers"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/util"
)

// ExpandEventHandlers wraps `@onX` directive expressions in an event callback and turns the
// `:preventDefault`/`:stopPropagation` modifiers into event options.
func ExpandEventHandlers(job *compilation.CompilationJob) {
	for _, ref := range loweredTags(job.Document) {
		expandEventHandlers(ref.Node)
	}
}

func expandEventHandlers(parent ir.Node) {
	directives := directivesOfKind(parent, descriptor.KindEvent)
	if len(directives) == 0 {
		return
	}

	// A component parameter written with the same name is the intended override.
	if invocation, ok := parent.(*ir.ComponentInvocation); ok {
		declared := map[string]bool{}
		for _, p := range invocation.Parameters() {
			declared[strings.ToLower(p.Name)] = true
		}
		var dropped []*ir.DirectiveAttribute
		var kept []*ir.DirectiveAttribute
		for _, d := range directives {
			if declared[strings.ToLower(eventName(d))] {
				dropped = append(dropped, d)
			} else {
				kept = append(kept, d)
			}
		}
		removeOccurrences(parent, dropped)
		directives = kept
	}

	handlers := map[string][]*ir.DirectiveAttribute{}
	var order []string
	for _, d := range directives {
		if d.IsParameterized() {
			continue
		}
		key := strings.ToLower(d.BaseName)
		if _, ok := handlers[key]; !ok {
			order = append(order, key)
		}
		handlers[key] = append(handlers[key], d)
	}
	for _, key := range order {
		group := handlers[key]
		if len(group) < 2 {
			continue
		}
		parent.Base().AddDiagnostic(diagnostics.DuplicateEventHandler(group[0].Span, group[0].BaseName, uniqueDescriptors(group)))
		removeOccurrences(parent, group)
	}

	for _, d := range ir.DirectiveAttributes(parent) {
		if d.Descriptor == nil || d.Descriptor.Kind != descriptor.KindEvent {
			continue
		}
		if node := lowerEventDirective(parent, d); node != nil {
			replaceOccurrences(parent, []*ir.DirectiveAttribute{d}, node)
		}
	}
}

// eventName returns the runtime event name of an occurrence: `@onclick:stopPropagation` is `onclick`
func eventName(d *ir.DirectiveAttribute) string {
	return util.TrimDirectivePrefix(d.BaseName)
}

func lowerEventDirective(parent ir.Node, d *ir.DirectiveAttribute) ir.Node {
	name := eventName(d)
	switch d.Parameter {
	case "":
	case descriptor.EventParameterPrevent, descriptor.EventParameterStop:
		value := d.Value.Clone()
		if d.Minimized || value.IsEmpty() {
			value = ir.CodeValue("true")
		}
		option := &ir.EventOption{EventName: name, Option: d.Parameter, Value: value}
		option.Span = d.Span
		return option
	default:
		parent.Base().AddDiagnostic(diagnostics.DirectiveParameterUnknown(d.Span, d.BaseName, d.Parameter))
		return nil
	}

	if d.Minimized || d.Value.IsEmpty() {
		parent.Base().AddDiagnostic(diagnostics.DirectiveEmptyValue(d.Span, d.Name))
		return nil
	}

	argsType := d.Descriptor.EventArgsType
	if argsType == "" {
		argsType = identifiers.EventArgs.ModuleName + "." + identifiers.EventArgs.Name
	}
	value := ir.CodeValue(call(
		identifiers.Generic(identifiers.EventCallbackFactoryCreate.String(), identifiers.Qualify(argsType)),
		identifiers.This, d.Value.AsCode()))

	if invocation, ok := parent.(*ir.ComponentInvocation); ok {
		param := newComponentParameter(invocation.Component, name, value)
		param.IsEventCallback = true
		param.Span = d.Span
		return param
	}
	attr := &ir.MarkupAttribute{Name: name, Value: value, IsEventCallback: true}
	attr.Span = d.Span
	return attr
}
