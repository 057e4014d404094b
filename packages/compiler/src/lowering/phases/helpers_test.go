package phases_test

import (
	"testing"

	"rzc-go/packages/compiler/src/binder"
	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/lowering/phases"
)

const (
	global   = "global::"
	runtime  = global + "Microsoft.AspNetCore.Components."
	helpers  = runtime + "CompilerServices.RuntimeHelpers."
	factory  = runtime + "EventCallback.Factory."
	testNs   = "Test.App"
	testPath = "Pages/Index.razor"
)

// everyPhase is the lowering order, for tests that need the whole pipeline
var everyPhase = []func(*compilation.CompilationJob){
	phases.ResolveDuplicateDirectives,
	phases.ClassifyElements,
	phases.ExpandBindings,
	phases.ExpandEventHandlers,
	phases.ExpandSplats,
	phases.ExpandKeys,
	phases.ExpandReferences,
	phases.ExpandRenderModes,
	phases.ExpandFormNames,
	phases.BuildGenericDispatch,
}

// lower annotates nodes against catalog and runs the given phases over the result
func lower(catalog *descriptor.Catalog, cfg *config.CompilerConfig, nodes []*binder.NodeYAML, fns ...func(*compilation.CompilationJob)) *compilation.CompilationJob {
	file := &binder.DocumentFile{FilePath: testPath, Namespace: testNs, Nodes: nodes}
	job := compilation.NewCompilationJob(binder.Annotate(file, catalog), catalog, cfg)
	for _, fn := range fns {
		fn(job)
	}
	return job
}

func catalogWith(decls ...*descriptor.ComponentDeclaration) *descriptor.Catalog {
	var descriptors []*descriptor.Descriptor
	for _, decl := range decls {
		descriptors = append(descriptors, descriptor.ExpandComponent(decl)...)
	}
	return descriptor.NewCatalogWithBuiltins(descriptors)
}

func nodes(n ...*binder.NodeYAML) []*binder.NodeYAML {
	return n
}

// tag builds a tag node. Items are attributes or child nodes.
func tag(name string, items ...interface{}) *binder.NodeYAML {
	n := &binder.NodeYAML{Tag: name}
	for _, item := range items {
		switch v := item.(type) {
		case *binder.AttributeYAML:
			n.Attributes = append(n.Attributes, v)
		case *binder.NodeYAML:
			n.Children = append(n.Children, v)
		}
	}
	return n
}

func attr(name, value string) *binder.AttributeYAML {
	return &binder.AttributeYAML{Name: name, Value: &value}
}

func minimized(name string) *binder.AttributeYAML {
	return &binder.AttributeYAML{Name: name}
}

func text(content string) *binder.NodeYAML {
	return &binder.NodeYAML{Text: content}
}

func expr(code string) *binder.NodeYAML {
	return &binder.NodeYAML{Expr: code}
}

func using(namespace string) *binder.NodeYAML {
	return &binder.NodeYAML{Using: namespace}
}

func latest() *config.CompilerConfig {
	return config.NewCompilerConfig()
}

func directiveDescriptors(node ir.Node) []*descriptor.Descriptor {
	var result []*descriptor.Descriptor
	for _, d := range ir.DirectiveAttributes(node) {
		result = append(result, d.Descriptor)
	}
	return result
}

// firstOfKind returns the first descendant of root with the given kind
func firstOfKind(t *testing.T, root ir.Node, kind ir.NodeKind) ir.Node {
	t.Helper()
	refs := ir.FindDescendantsOfKind(root, kind)
	if len(refs) == 0 {
		t.Fatalf("no %s in tree", kind)
	}
	return refs[0].Node
}
