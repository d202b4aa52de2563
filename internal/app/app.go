package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"arxivdigest/internal/config"
	"arxivdigest/internal/infrastructure/cache"
	"arxivdigest/internal/infrastructure/llm"
	"arxivdigest/internal/infrastructure/parser"
	"arxivdigest/internal/infrastructure/render"
	"arxivdigest/internal/logging"
	"arxivdigest/internal/ports"
	"arxivdigest/internal/scanner"
	"arxivdigest/internal/usecase"
)

// Application wires configuration to the pipeline and owns the cache handle.
type Application struct {
	pipeline *usecase.Pipeline
	cleanup  func() error
}

// New builds a runnable application instance. The returned Close must be
// called after the run to release the on-disk cache, if one was opened.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var store ports.Cache
	cleanup := func() error { return nil }
	if cfg.Cache.Path != "" {
		bolt, err := cache.OpenBolt(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open cache %s: %w", cfg.Cache.Path, err)
		}
		store = bolt
		cleanup = bolt.Close
	} else {
		store = cache.NewMemory()
	}

	detail := parser.NewDetailClient(nil, store, baseLogger.With("component", "detail"))

	registry := scanner.NewRegistry()
	registry.Register(parser.NewArxivScanner(nil, detail, baseLogger.With("component", "scanner.arxiv")))

	// Without credentials the enricher stays nil and the pipeline uses the
	// local phrase/summary fallbacks without any network call.
	var enricher ports.Enricher
	if cfg.Enrichment.APIKey != "" {
		enricher = llm.NewClient(cfg.Enrichment, store, baseLogger.With("component", "llm"))
	}

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Registry:    registry,
		Sources:     cfg.Sources,
		Preferences: cfg.Preferences(),
		Enricher:    enricher,
		Renderer:    renderer,
		Logger:      baseLogger.With("component", "pipeline"),
		OutputPath:  cfg.Output.Path,
		ArchiveDir:  cfg.Output.ArchiveDir,
	})

	return &Application{pipeline: pipeline, cleanup: cleanup}, nil
}

// Run executes a single digest generation for the given day.
func (a *Application) Run(ctx context.Context, day time.Time) error {
	return a.pipeline.ProcessDay(ctx, day)
}

// Close releases resources held by the application.
func (a *Application) Close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}
