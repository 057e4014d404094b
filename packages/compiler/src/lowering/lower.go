package lowering

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/lowering/compilation"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/lowering/phases"
	"rzc-go/packages/compiler/src/metrics"
)

// Phase represents a lowering phase
type Phase struct {
	Name string
	Fn   func(*compilation.CompilationJob)
}

// Each phase relies on what the previous ones established; the order is fixed.
var phasesList = []Phase{
	{"ResolveDuplicateDirectives", phases.ResolveDuplicateDirectives},
	{"ClassifyElements", phases.ClassifyElements},
	{"ExpandBindings", phases.ExpandBindings},
	{"ExpandEventHandlers", phases.ExpandEventHandlers},
	{"ExpandSplats", phases.ExpandSplats},
	{"ExpandKeys", phases.ExpandKeys},
	{"ExpandReferences", phases.ExpandReferences},
	{"ExpandRenderModes", phases.ExpandRenderModes},
	{"ExpandFormNames", phases.ExpandFormNames},
	{"BuildGenericDispatch", phases.BuildGenericDispatch},
}

// Phases returns the phase names in execution order
func Phases() []string {
	names := make([]string, len(phasesList))
	for i, p := range phasesList {
		names[i] = p.Name
	}
	return names
}

// Lowerer runs the lowering pipeline over documents that share a catalog and configuration
type Lowerer struct {
	Catalog *descriptor.Catalog
	Config  *config.CompilerConfig

	metrics *metrics.Recorder
	logger  *slog.Logger
}

// LowererOption configures a Lowerer
type LowererOption func(*Lowerer)

// WithMetrics records phase timings and diagnostics into r
func WithMetrics(r *metrics.Recorder) LowererOption {
	return func(l *Lowerer) {
		l.metrics = r
	}
}

// WithLogger sets the logger used for per-document records
func WithLogger(logger *slog.Logger) LowererOption {
	return func(l *Lowerer) {
		l.logger = logger
	}
}

// NewLowerer creates a new Lowerer
func NewLowerer(catalog *descriptor.Catalog, cfg *config.CompilerConfig, opts ...LowererOption) *Lowerer {
	if cfg == nil {
		cfg = config.NewCompilerConfig()
	}
	if catalog == nil {
		catalog = descriptor.NewCatalogWithBuiltins(nil)
	}
	l := &Lowerer{Catalog: catalog, Config: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Transform runs all lowering phases in order against a compilation job. Findings are
// attached to the tree as diagnostics; the only error is cancellation, checked between phases.
func (l *Lowerer) Transform(ctx context.Context, job *compilation.CompilationJob) error {
	for _, phase := range phasesList {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		phase.Fn(job)
		l.metrics.ObservePhase(phase.Name, time.Since(start))
	}

	diagnostics := job.Diagnostics()
	l.metrics.DocumentLowered(diagnostics)
	l.logger.Debug("document lowered",
		"document", job.Document.FilePath,
		"diagnostics", len(diagnostics),
		"inferenceMethods", len(job.Document.TypeInferenceMethods))
	return nil
}

// Lower creates a job for doc and transforms it
func (l *Lowerer) Lower(ctx context.Context, doc *ir.Document) (*compilation.CompilationJob, error) {
	job := compilation.NewCompilationJob(doc, l.Catalog, l.Config)
	if err := l.Transform(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// LowerAll lowers independent documents concurrently, at most Config.Workers at a time.
// Results are in the order of docs.
func (l *Lowerer) LowerAll(ctx context.Context, docs []*ir.Document) ([]*compilation.CompilationJob, error) {
	jobs := make([]*compilation.CompilationJob, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	workers := l.Config.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			job, err := l.Lower(ctx, doc)
			if err != nil {
				return err
			}
			jobs[i] = job
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Transform runs the pipeline on job with a default Lowerer
func Transform(ctx context.Context, job *compilation.CompilationJob) error {
	return NewLowerer(job.Catalog, job.Config).Transform(ctx, job)
}
