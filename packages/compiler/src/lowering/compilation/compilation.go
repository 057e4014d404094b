package compilation

import (
	"fmt"

	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/util"
)

// CompilationJob is the lowering of one document tree. Exactly one phase mutates the
// document at a time; jobs share only read-only state (catalog, config).
type CompilationJob struct {
	Document *ir.Document
	Catalog  *descriptor.Catalog
	Config   *config.CompilerConfig

	nextTypeInferenceId int
}

// NewCompilationJob creates a new CompilationJob
func NewCompilationJob(doc *ir.Document, catalog *descriptor.Catalog, cfg *config.CompilerConfig) *CompilationJob {
	if doc == nil {
		panic("AssertionError: compilation job requires a document")
	}
	if cfg == nil {
		cfg = config.NewCompilerConfig()
	}
	if catalog == nil {
		catalog = descriptor.NewCatalogWithBuiltins(nil)
	}
	if doc.Namespace == "" {
		doc.Namespace = cfg.RootNamespace
	}
	return &CompilationJob{
		Document: doc,
		Catalog:  catalog,
		Config:   cfg,
	}
}

// AllocateTypeInferenceId generates a new id, unique in this job, for type inference
// methods and their captured variables.
func (j *CompilationJob) AllocateTypeInferenceId() int {
	id := j.nextTypeInferenceId
	j.nextTypeInferenceId++
	return id
}

// Diagnostics returns every diagnostic attached to the document so far
func (j *CompilationJob) Diagnostics() []*util.Diagnostic {
	return ir.CollectDiagnostics(j.Document)
}

// HasErrors reports whether any error diagnostic was attached to the document
func (j *CompilationJob) HasErrors() bool {
	for _, d := range j.Diagnostics() {
		if d.Severity == util.DiagnosticSeverityError {
			return true
		}
	}
	return false
}

// String identifies the job in logs
func (j *CompilationJob) String() string {
	return fmt.Sprintf("CompilationJob(%s)", j.Document.FilePath)
}
