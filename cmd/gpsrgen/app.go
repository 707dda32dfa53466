package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/gpsrgen/config"
	"github.com/c360studio/gpsrgen/corpus"
	"github.com/c360studio/gpsrgen/generator"
	"github.com/c360studio/gpsrgen/sampler"
	"github.com/c360studio/gpsrgen/source"
	"github.com/c360studio/gpsrgen/vocabulary"
)

// Summary describes one finished generation run.
type Summary struct {
	SessionID  string
	Commands   int
	Attempts   int
	Elapsed    time.Duration
	OutputPath string
	Published  int
}

// App wires the document loader, parsers, generator, sampler and sinks.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	loader *source.Loader
	stdout io.Writer
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger, stdout io.Writer) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:    cfg,
		logger: logger,
		loader: source.NewLoader(cfg.Documents.BaseDir, logger),
		stdout: stdout,
	}
}

// LoadVocabulary reads and parses the reference documents. Missing documents
// and malformed category headings are fatal; empty lists only warn.
func (a *App) LoadVocabulary() (*vocabulary.Set, []*source.Document, error) {
	docs, err := a.loader.LoadAll(a.cfg.Documents.Paths())
	if err != nil {
		return nil, nil, err
	}

	vocab, warnings, err := vocabulary.Parse(source.Texts(docs))
	vocabulary.LogWarnings(a.logger, warnings)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("Vocabulary parsed", "sizes", vocab.Sizes())
	return vocab, docs, nil
}

// NewGenerator builds the command generator for vocab from the configured
// template catalog.
func (a *App) NewGenerator(vocab *vocabulary.Set) (sampler.Generator, error) {
	catalog, err := a.catalog()
	if err != nil {
		return nil, err
	}

	base, err := generator.New(vocab, catalog, a.cfg.Generation.Seed)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	if !a.cfg.Generation.Extended {
		return base, nil
	}
	ext, err := generator.Extend(base, catalog)
	if err != nil {
		return nil, fmt.Errorf("extend generator: %w", err)
	}
	return ext, nil
}

func (a *App) catalog() (*generator.Catalog, error) {
	path := a.cfg.Generation.TemplatesFile
	if path == "" {
		return generator.DefaultCatalog()
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.Documents.BaseDir, path)
	}
	return generator.LoadCatalog(path)
}

// Generate runs one full session: load, parse, sample until saturated, then
// write the corpus and any configured extra outputs.
func (a *App) Generate() (*Summary, error) {
	vocab, _, err := a.LoadVocabulary()
	if err != nil {
		return nil, err
	}

	gen, err := a.NewGenerator(vocab)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := sampler.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	s := sampler.New(gen, sampler.Options{
		MaxConsecutiveDuplicates: a.cfg.Generation.MaxConsecutiveDuplicates,
		ProgressInterval:         a.cfg.Generation.ProgressInterval,
		CategoryHint:             a.cfg.Generation.CategoryHint,
		Metrics:                  metrics,
	}, a.logger)
	result := s.Run()

	if err := corpus.WriteFile(a.cfg.Output.Path, result.Corpus); err != nil {
		return nil, err
	}

	summary := &Summary{
		SessionID:  result.Session.ID,
		Commands:   result.Corpus.Len(),
		Attempts:   result.Session.Attempts,
		Elapsed:    result.Elapsed,
		OutputPath: a.cfg.Output.Path,
	}

	if a.cfg.Output.MetricsFile != "" {
		if err := sampler.WriteTextfile(a.cfg.Output.MetricsFile, registry); err != nil {
			return nil, err
		}
	}

	if a.cfg.Output.NATSURL != "" {
		sent, err := corpus.PublishNATS(a.cfg.Output.NATSURL, a.cfg.Output.NATSSubject, result.Corpus)
		if err != nil {
			return nil, err
		}
		summary.Published = sent
		a.logger.Info("Published corpus", "subject", a.cfg.Output.NATSSubject, "messages", sent)
	}

	fmt.Fprintf(a.stdout, "Generated %d commands in %s\n", summary.Commands, summary.Elapsed)
	return summary, nil
}

// Inspect prints, for each document, where it was read from, its markdown
// outline and the vocabulary parsed from it. It never runs the sampler.
func (a *App) Inspect(w io.Writer) error {
	docs, err := a.loader.LoadAll(a.cfg.Documents.Paths())
	if err != nil {
		return err
	}

	vocab, warnings, err := vocabulary.Parse(source.Texts(docs))
	if err != nil {
		return err
	}

	for _, doc := range docs {
		outline := source.OutlineOf([]byte(doc.Content))
		fmt.Fprintf(w, "%s\n", doc.Kind)
		for _, p := range doc.Paths {
			fmt.Fprintf(w, "  file:     %s\n", p)
		}
		fmt.Fprintf(w, "  hash:     %s\n", doc.Hash[:12])
		fmt.Fprintf(w, "  tables:   %d (%d rows)\n", outline.Tables, outline.Rows)
		fmt.Fprintf(w, "  headings: %d\n", len(outline.Headings))
	}

	sizes := vocab.Sizes()
	fmt.Fprintln(w, "vocabulary")
	for _, key := range []string{"names", "locations", "placement_locations", "rooms", "objects", "categories"} {
		fmt.Fprintf(w, "  %-20s %d\n", key+":", sizes[key])
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}

// Watch generates once, then regenerates whenever a reference document's
// content changes, until ctx is cancelled. Failed regenerations are logged
// and the watch continues.
func (a *App) Watch(ctx context.Context) error {
	if _, err := a.Generate(); err != nil {
		return err
	}

	w, err := source.NewWatcher(a.cfg.Watch, a.loader.BaseDir(), a.logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()
	w.WithFilter(a.loader.Matcher(a.cfg.Documents.Paths()))

	if docs, err := a.loader.LoadAll(a.cfg.Documents.Paths()); err == nil {
		for _, d := range docs {
			w.Seed(d.Paths)
		}
	}

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for change := range w.Changes() {
		a.logger.Info("Reference documents changed, regenerating", "files", change.Paths)
		if _, err := a.Generate(); err != nil {
			a.logger.Error("Regeneration failed", "error", err)
		}
	}
	return nil
}
