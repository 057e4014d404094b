package phases

import (
	"strings"

	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/diagnostics"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/identifiers"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/util"
)

// ExpandBindings rewrites two-way binding directives into a value/change pair.
//
// `<input @bind="Name" />` becomes
//
//	value="BindConverter.FormatValue(Name)"
//	onchange="EventCallback.Factory.CreateBinder(this, __value => Name = __value, Name)"
//
// and `<Editor @bind-Value="Name" />` becomes the `Value`, `ValueChanged` (and, when the
// component declares it, `ValueExpression`) parameters.
func ExpandBindings(job *compilation.CompilationJob) {
	for _, ref := range loweredTags(job.Document) {
		expandBindings(job, ref.Node)
	}
}

// bindEntry is every occurrence of one logical binding on one tag: the base attribute and
// its modifiers.
type bindEntry struct {
	name        string
	base        *ir.DirectiveAttribute
	get         *ir.DirectiveAttribute
	set         *ir.DirectiveAttribute
	after       *ir.DirectiveAttribute
	format      *ir.DirectiveAttribute
	event       *ir.DirectiveAttribute
	culture     *ir.DirectiveAttribute
	unknown     []*ir.DirectiveAttribute
	occurrences []*ir.DirectiveAttribute
}

func (e *bindEntry) primary() *ir.DirectiveAttribute {
	if e.base != nil {
		return e.base
	}
	if e.get != nil {
		return e.get
	}
	return e.occurrences[0]
}

// value returns the bound expression, from the base form or the getter
func (e *bindEntry) value() ir.Tokens {
	if e.base != nil {
		return e.base.Value
	}
	if e.get != nil {
		return e.get.Value
	}
	return nil
}

func (e *bindEntry) usesGetSetAfter() bool {
	return e.get != nil || e.set != nil || e.after != nil
}

// collectBindEntries groups the bind occurrences of parent by logical name, in order of
// first appearance.
func collectBindEntries(parent ir.Node) []*bindEntry {
	var entries []*bindEntry
	byName := map[string]*bindEntry{}
	for _, d := range directivesOfKind(parent, descriptor.KindBind) {
		entry, ok := byName[d.BaseName]
		if !ok {
			entry = &bindEntry{name: d.BaseName}
			byName[d.BaseName] = entry
			entries = append(entries, entry)
		}
		entry.occurrences = append(entry.occurrences, d)
		switch d.Parameter {
		case "":
			entry.base = d
		case descriptor.BindParameterGet:
			entry.get = d
		case descriptor.BindParameterSet:
			entry.set = d
		case descriptor.BindParameterAfter:
			entry.after = d
		case descriptor.BindParameterFormat:
			entry.format = d
		case descriptor.BindParameterEvent:
			entry.event = d
		case descriptor.BindParameterCulture:
			entry.culture = d
		default:
			entry.unknown = append(entry.unknown, d)
		}
	}
	return entries
}

func expandBindings(job *compilation.CompilationJob, parent ir.Node) {
	produced := map[string]bool{}
	for _, entry := range collectBindEntries(parent) {
		if !validateBindEntry(job.Config, parent, entry) {
			continue
		}
		names, ok := resolveBindNames(parent, entry)
		if !ok {
			parent.Base().AddDiagnostic(diagnostics.BindUnresolvedNames(entry.primary().Span, entry.name))
			continue
		}

		key := names.value
		if _, isComponent := parent.(*ir.ComponentInvocation); !isComponent {
			key = strings.ToLower(key)
		}
		if produced[key] {
			parent.Base().AddDiagnostic(diagnostics.DuplicateBind(entry.primary().Span, names.value))
			removeOccurrences(parent, entry.occurrences)
			continue
		}
		produced[key] = true

		var nodes []ir.Node
		if invocation, ok := parent.(*ir.ComponentInvocation); ok {
			nodes = lowerComponentBind(job.Config, invocation, entry, names)
		} else {
			nodes = lowerElementBind(entry, names)
		}
		replaceOccurrences(parent, entry.occurrences, nodes...)
	}
}

// validateBindEntry reports shape problems. It returns false when the entry must stay
// unexpanded; version and hook problems are reported but expansion continues.
func validateBindEntry(cfg *config.CompilerConfig, parent ir.Node, entry *bindEntry) bool {
	base := parent.Base()
	for _, d := range entry.unknown {
		base.AddDiagnostic(diagnostics.DirectiveParameterUnknown(d.Span, entry.name, d.Parameter))
	}

	switch {
	case entry.set != nil && entry.get == nil:
		base.AddDiagnostic(diagnostics.BindSetWithoutGet(entry.set.Span, entry.name))
		return false
	case entry.get != nil && entry.set == nil:
		base.AddDiagnostic(diagnostics.BindGetWithoutSet(entry.get.Span, entry.name))
		return false
	case entry.get != nil && entry.base != nil:
		base.AddDiagnostic(diagnostics.BindGetSetWithBase(entry.base.Span, entry.name))
		return false
	case entry.base == nil && entry.get == nil:
		first := entry.occurrences[0]
		base.AddDiagnostic(diagnostics.BindMissingBase(first.Span, first.Name))
		return false
	}

	primary := entry.primary()
	if primary.Minimized || entry.value().IsEmpty() {
		base.AddDiagnostic(diagnostics.DirectiveEmptyValue(primary.Span, primary.Name))
		return false
	}

	if entry.usesGetSetAfter() && !cfg.SupportsBindGetSet() {
		base.AddDiagnostic(diagnostics.UnsupportedLanguageVersion(
			primary.Span, entry.name+":get/:set/:after", config.Version7_0.String(), cfg.LanguageVersion.String()))
	}
	if entry.after != nil && entry.set != nil {
		base.AddDiagnostic(diagnostics.BindAfterWithSet(entry.after.Span, entry.name))
	}
	return true
}

type bindNames struct {
	value      string
	change     string
	expression string
	// changeExpression computes the change attribute name when `:event` is not a literal.
	changeExpression ir.Tokens
}

// resolveBindNames works out the value, change and expression attribute names. Names declared
// by the descriptor win over names derived from the attribute; `:event` overrides the change
// attribute.
func resolveBindNames(parent ir.Node, entry *bindEntry) (*bindNames, bool) {
	_, isComponent := parent.(*ir.ComponentInvocation)
	meta := entry.primary().Descriptor.Bind
	if meta == nil {
		meta = &descriptor.BindMetadata{}
	}

	literalValue := strings.TrimPrefix(strings.TrimPrefix(entry.name, descriptor.BindAttributeName), "-")
	literalChange := ""
	if !isComponent {
		// Legacy `@bind-value-onchange` spells the change attribute into the name.
		if i := strings.LastIndex(literalValue, "-"); i > 0 && strings.HasPrefix(literalValue[i+1:], "on") {
			literalValue, literalChange = literalValue[:i], literalValue[i+1:]
		}
	}

	names := &bindNames{value: meta.ValueAttribute}
	if names.value == "" {
		names.value = literalValue
	}
	if names.value == "" {
		return nil, false
	}

	switch {
	case entry.event != nil && entry.event.Value.IsLiteral():
		names.change = strings.TrimSpace(entry.event.Value.String())
		if names.change == "" {
			return nil, false
		}
	case entry.event != nil:
		names.changeExpression = entry.event.Value
	case literalChange != "":
		names.change = literalChange
	case meta.ChangeAttribute != "":
		names.change = meta.ChangeAttribute
	case isComponent:
		names.change = names.value + "Changed"
	default:
		names.change = "onchange"
	}

	if isComponent {
		names.expression = meta.ExpressionAttribute
		if names.expression == "" {
			names.expression = names.value + "Expression"
		}
	}
	return names, true
}

func lowerElementBind(entry *bindEntry, names *bindNames) []ir.Node {
	meta := entry.primary().Descriptor.Bind
	if meta == nil {
		meta = &descriptor.BindMetadata{}
	}
	value := entry.value().AsCode()

	var extra []string
	switch {
	case entry.format != nil:
		extra = append(extra, "format: "+entry.format.Value.AsCode())
	case meta.Format != "":
		extra = append(extra, "format: "+util.Quote(meta.Format))
	}
	switch {
	case entry.culture != nil:
		extra = append(extra, "culture: "+entry.culture.Value.AsCode())
	case meta.InvariantCulture:
		extra = append(extra, "culture: "+identifiers.InvariantCulture.String())
	}

	formatArgs := append([]string{value}, extra...)
	valueAttr := &ir.MarkupAttribute{
		Name:  names.value,
		Value: ir.CodeValue(call(identifiers.FormatValue.String(), formatArgs...)),
	}
	valueAttr.Span = entry.primary().Span

	binderArgs := append([]string{identifiers.This, elementSetter(entry, value), value}, extra...)
	changeAttr := &ir.MarkupAttribute{
		Name:            names.change,
		NameExpression:  names.changeExpression,
		Value:           ir.CodeValue(call(identifiers.CreateBinder.String(), binderArgs...)),
		Updates:         names.value,
		IsEventCallback: true,
	}
	changeAttr.Span = entry.primary().Span
	return []ir.Node{valueAttr, changeAttr}
}

// elementSetter builds the setter handed to the binder for each setter/hook combination
func elementSetter(entry *bindEntry, value string) string {
	switch {
	case entry.set != nil && entry.after != nil:
		return call(identifiers.CreateInferredBindSetter.String(),
			"callback: "+setterThenHook(entry.set.Value.AsCode(), entry.after.Value.AsCode(), true),
			"value: "+value)
	case entry.set != nil:
		return call(identifiers.CreateInferredBindSetter.String(),
			"callback: "+entry.set.Value.AsCode(),
			"value: "+value)
	case entry.after != nil:
		return call(identifiers.CreateInferredBindSetter.String(),
			"callback: "+assignThenHook(value, entry.after.Value.AsCode(), true),
			"value: "+value)
	}
	return assign(value)
}

func lowerComponentBind(cfg *config.CompilerConfig, invocation *ir.ComponentInvocation, entry *bindEntry, names *bindNames) []ir.Node {
	component := invocation.Component
	span := entry.primary().Span
	value := entry.value()

	valueParam := newComponentParameter(component, names.value, value.Clone())
	valueParam.Span = span
	nodes := []ir.Node{valueParam}

	if len(names.changeExpression) > 0 {
		change := &ir.MarkupAttribute{
			NameExpression:  names.changeExpression,
			Value:           ir.CodeValue(callbackSetter(entry, value.AsCode(), "")),
			Updates:         names.value,
			IsEventCallback: true,
		}
		change.Span = span
		nodes = append(nodes, change)
	} else {
		changeParam := newComponentParameter(component, names.change, nil)
		changeParam.Value = ir.CodeValue(componentSetter(entry, value.AsCode(), changeParam.Bound))
		changeParam.Span = span
		nodes = append(nodes, changeParam)
	}

	if component.HasBoundAttribute(names.expression) {
		expressionParam := newComponentParameter(component, names.expression, ir.CodeValue("() => "+value.AsCode()))
		expressionParam.Span = span
		nodes = append(nodes, expressionParam)
	}

	if cfg.ToolingReferences {
		for _, modifier := range []*ir.DirectiveAttribute{entry.set, entry.after, entry.event} {
			if modifier == nil || modifier.Value.IsLiteral() {
				continue
			}
			ref := &ir.ToolingReference{Purpose: modifier.Parameter, Value: modifier.Value.Clone()}
			ref.Span = modifier.Span
			nodes = append(nodes, ref)
		}
	}
	return nodes
}

func newComponentParameter(component *descriptor.Descriptor, name string, value ir.Tokens) *ir.ComponentParameter {
	param := &ir.ComponentParameter{Name: name, Value: value}
	if bound := component.FindBoundAttribute(name); bound != nil {
		param.Bound = bound
		param.TypeName = bound.TypeName
		param.IsEventCallback = bound.IsEventCallback
		param.IsDelegate = bound.IsDelegate
	}
	return param
}

// componentSetter builds the change value for a component parameter. Wrapped callbacks go
// through the callback factory; delegates (and undeclared parameters) get a plain closure.
func componentSetter(entry *bindEntry, value string, bound *descriptor.BoundAttribute) string {
	if bound != nil && bound.IsEventCallback {
		typeArgument := ""
		if !bound.IsGenericTyped {
			typeArgument = identifiers.TypeArgumentOf(bound.TypeName)
		}
		return callbackSetter(entry, value, typeArgument)
	}

	switch {
	case entry.set != nil && entry.after != nil:
		return setterThenHook(entry.set.Value.AsCode(), entry.after.Value.AsCode(), false)
	case entry.set != nil:
		return entry.set.Value.AsCode()
	case entry.after != nil:
		return assignThenHook(value, entry.after.Value.AsCode(), false)
	}
	return assign(value)
}

// callbackSetter builds an inferred event callback, wrapped in `Factory.Create<T>` when the
// callback's type argument is known.
func callbackSetter(entry *bindEntry, value, typeArgument string) string {
	var handler string
	switch {
	case entry.set != nil && entry.after != nil:
		handler = setterThenHook(entry.set.Value.AsCode(), entry.after.Value.AsCode(), true)
	case entry.set != nil:
		handler = entry.set.Value.AsCode()
	case entry.after != nil:
		handler = assignThenHook(value, entry.after.Value.AsCode(), true)
	default:
		handler = assign(value)
	}
	inferred := call(identifiers.CreateInferredEventCallback.String(), identifiers.This, handler, value)
	if typeArgument == "" {
		return inferred
	}
	return call(identifiers.Generic(identifiers.EventCallbackFactoryCreate.String(), identifiers.Qualify(typeArgument)),
		identifiers.This, inferred)
}

func assign(value string) string {
	return identifiers.ValueParameter + " => " + value + " = " + identifiers.ValueParameter
}

// assignThenHook assigns the value then runs the `:after` hook, awaiting it in the async form
func assignThenHook(value, hook string, async bool) string {
	return identifiers.ValueParameter + " => { " + value + " = " + identifiers.ValueParameter + "; " + invokeHook(hook, async) + " }"
}

// setterThenHook runs a custom setter then the `:after` hook
func setterThenHook(setter, hook string, async bool) string {
	return identifiers.ValueParameter + " => { " + call(setter, identifiers.ValueParameter) + "; " + invokeHook(hook, async) + " }"
}

func invokeHook(hook string, async bool) string {
	if async {
		return "return " + call(identifiers.InvokeAsynchronousDelegate.String(), "callback: "+hook) + ";"
	}
	return call(identifiers.InvokeSynchronousDelegate.String(), hook) + ";"
}

func call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, ", ") + ")"
}
