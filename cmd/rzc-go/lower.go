package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"rzc-go/packages/compiler/src/binder"
	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/descriptor"
	"rzc-go/packages/compiler/src/logger"
	"rzc-go/packages/compiler/src/lowering"
	"rzc-go/packages/compiler/src/lowering/ir"
	"rzc-go/packages/compiler/src/metrics"
)

type lowerOptions struct {
	catalogPath string
	configPath  string
	metricsPath string
	envFile     string
	documents   []string
}

func parseLowerOptions(args []string) (*lowerOptions, error) {
	opts := &lowerOptions{}
	fs := flag.NewFlagSet("lower", flag.ContinueOnError)
	fs.StringVar(&opts.catalogPath, "catalog", "", "descriptor catalog")
	fs.StringVar(&opts.configPath, "config", "", "project file")
	fs.StringVar(&opts.metricsPath, "metrics", "", "metrics output file")
	fs.StringVar(&opts.envFile, "env", ".env", "dotenv file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.documents = fs.Args()
	return opts, nil
}

// lower runs the pipeline over every document and writes the result to out. It reports
// whether any error diagnostic was produced.
func lower(opts *lowerOptions, out io.Writer) (bool, error) {
	var cfgOpts []config.CompilerConfigOption
	catalogPath := opts.catalogPath
	documents := opts.documents

	if opts.configPath != "" {
		project, err := config.LoadProjectConfig(opts.configPath)
		if err != nil {
			return false, err
		}
		cfgOpts = append(cfgOpts, project.Options()...)
		if catalogPath == "" {
			catalogPath = project.Catalog
		}
		if len(documents) == 0 {
			documents = project.Documents
		}
	}

	envOpts, err := config.FromEnv()
	if err != nil {
		return false, err
	}
	cfg := config.NewCompilerConfig(append(cfgOpts, envOpts...)...)

	if len(documents) == 0 {
		return false, errors.New("no documents to lower")
	}

	catalog := descriptor.NewCatalogWithBuiltins(nil)
	if catalogPath != "" {
		if catalog, err = descriptor.LoadCatalog(catalogPath); err != nil {
			return false, err
		}
	}

	docs := make([]*ir.Document, 0, len(documents))
	for _, path := range documents {
		file, err := binder.LoadDocument(path)
		if err != nil {
			return false, err
		}
		docs = append(docs, binder.Annotate(file, catalog))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder()
	l := lowering.NewLowerer(catalog, cfg, lowering.WithMetrics(recorder), lowering.WithLogger(logger.Log))
	logger.Log.Info("lowering documents", "count", len(docs), "languageVersion", cfg.LanguageVersion.String(), "workers", cfg.Workers)

	jobs, err := l.LowerAll(ctx, docs)
	if err != nil {
		return false, err
	}

	hasErrors := false
	for _, job := range jobs {
		if job.HasErrors() {
			hasErrors = true
		}
		for _, d := range job.Diagnostics() {
			logger.Log.Warn("diagnostic", "document", job.Document.FilePath, "code", d.Code, "severity", d.Severity.String(), "message", d.Message)
		}
	}

	data, err := ir.MarshalDocuments(docs)
	if err != nil {
		return false, fmt.Errorf("failed to encode output: %w", err)
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return false, err
	}

	if opts.metricsPath != "" {
		if err := recorder.WriteToFile(opts.metricsPath); err != nil {
			return false, fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return hasErrors, nil
}
