package protoreg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/chainregistry/protoreg/config"
	"github.com/chainregistry/protoreg/corpus"
	"github.com/chainregistry/protoreg/export"
	"github.com/chainregistry/protoreg/probe"
	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/schema"
	"github.com/chainregistry/protoreg/violation"
)

// Runner orchestrates validation, probing, and export over one registry
// checkout. It is safe to reuse for multiple runs; each run builds its own
// state and discards it when done.
type Runner struct {
	root         string
	cfg          *config.Config
	logger       *slog.Logger
	tracer       trace.Tracer
	metrics      *otelMetrics
	prober       *probe.Prober
	probeWorkers int
}

// Result is the outcome of one validation run: the report plus the ordered
// list of corpus files it covered (for rendering per-file verdicts).
type Result struct {
	// Report carries every violation the run found.
	Report *violation.Report

	// Files are the corpus file names in sorted order, including
	// files that failed to parse. The canonical record and excluded
	// files are not part of the corpus and are not listed.
	Files []string
}

// NewRunner creates a runner for the registry rooted at root. Without
// WithConfig, protoreg.yaml is looked up in the root and defaults are used
// when absent.
func NewRunner(root string, opts ...Option) (*Runner, error) {
	rc := &runnerConfig{}
	for _, opt := range opts {
		opt(rc)
	}

	if rc.logger == nil {
		rc.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if rc.tracer == nil {
		rc.tracer = tracenoop.NewTracerProvider().Tracer("")
	}

	cfg := rc.cfg
	if cfg == nil {
		loaded, err := config.Load(root)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, config.ErrNotFound):
			// A root without protoreg.yaml is fine; defaults apply.
			cfg = config.Default()
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	metrics, err := newOTelMetrics(rc.meterProvider)
	if err != nil {
		return nil, err
	}

	return &Runner{
		root:         root,
		cfg:          cfg,
		logger:       rc.logger.With("component", "runner"),
		tracer:       rc.tracer,
		metrics:      metrics,
		prober:       rc.prober,
		probeWorkers: rc.probeWorkers,
	}, nil
}

// Config returns the effective configuration.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// Validate runs the structural and consistency checks over one network
// partition. With only set, just the named protocol is checked: schema plus
// canonical overlap, and a parse failure of that protocol's own file. The
// corpus-wide duplicate-label check needs the whole corpus and is skipped in
// that mode, as are problems in unrelated files.
//
// The returned error covers only run-level failures: a missing partition,
// categories file, or canonical file. Everything else is in the report.
func (r *Runner) Validate(ctx context.Context, network, only string) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "protoreg.Validate")
	defer span.End()
	start := time.Now()

	loaded, err := r.loadPartition(ctx, network)
	if err != nil {
		return nil, err
	}

	records := loaded.records
	failures := loaded.failures
	files := loaded.files
	if only != "" {
		records = filterProtocol(records, only)
		failures = filterFailures(failures, only)
		if len(records) == 0 && len(failures) == 0 {
			return nil, fmt.Errorf("%w: %s in %s", ErrProtocolNotFound, only, network)
		}
		files = nil
		for _, p := range records {
			files = append(files, p.File)
		}
		for _, f := range failures {
			files = append(files, f.File)
		}
		slices.Sort(files)
	}

	report := violation.NewReport(network)
	report.FilesChecked = len(files)
	for _, f := range failures {
		report.Add(violation.NewParseError(f.File, f.Err))
	}

	validator := schema.NewValidator(loaded.categories)
	for _, p := range records {
		report.Add(validator.Validate(p)...)
	}
	// The canonical record follows the schema too, minus category
	// membership: it tags itself however it likes.
	if only == "" {
		report.Add(schema.NewValidator(nil).Validate(loaded.canonical)...)
	}

	if only == "" {
		idx := corpus.BuildIndex(records)
		report.Add(corpus.CheckDuplicateLabels(idx)...)
	}
	report.Add(corpus.CheckCanonicalOverlap(records, loaded.canonicalSet)...)

	report.Finish()
	r.metrics.recordRun(ctx, network, report, time.Since(start))
	r.logger.Info("validation run complete",
		"run_id", report.ID,
		"network", network,
		"files", report.FilesChecked,
		"errors", report.Count(violation.SeverityError),
		"warnings", report.Count(violation.SeverityWarning),
	)

	return &Result{Report: report, Files: files}, nil
}

// Probe runs the opt-in network liveness pass over one partition. The
// structural report never depends on its outcome.
func (r *Runner) Probe(ctx context.Context, network, only string) (*probe.Summary, error) {
	ctx, span := r.tracer.Start(ctx, "protoreg.Probe")
	defer span.End()

	loaded, err := r.loadPartition(ctx, network)
	if err != nil {
		return nil, err
	}
	records := loaded.records
	if only != "" {
		records = filterProtocol(records, only)
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: %s in %s", ErrProtocolNotFound, only, network)
		}
	}

	prober := r.prober
	if prober == nil {
		prober, err = r.buildProber()
		if err != nil {
			return nil, err
		}
	}
	return prober.Run(ctx, records)
}

// Export flattens the partition's schema-valid records into rows and writes
// them in the given format. Records failing schema validation are left out;
// the number of exported rows is returned.
func (r *Runner) Export(ctx context.Context, network string, w io.Writer, format export.Format) (int, error) {
	ctx, span := r.tracer.Start(ctx, "protoreg.Export")
	defer span.End()

	loaded, err := r.loadPartition(ctx, network)
	if err != nil {
		return 0, err
	}

	validator := schema.NewValidator(loaded.categories)
	var valid []*record.Protocol
	for _, p := range loaded.records {
		if schemaOK(validator.Validate(p)) {
			valid = append(valid, p)
		} else {
			r.logger.Warn("record excluded from export", "file", p.File)
		}
	}

	rows, skipped := export.Rows(valid)
	for _, v := range skipped {
		r.logger.Warn("record not classifiable for export", "file", v.File, "category", v.Detail)
	}
	if err := export.Write(w, rows, format); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// partition is the loaded state of one network directory.
type partition struct {
	files        []string
	records      []*record.Protocol
	failures     []record.ParseFailure
	canonical    *record.Protocol
	canonicalSet *corpus.CanonicalSet
	categories   *schema.CategorySet
}

func (r *Runner) loadPartition(ctx context.Context, network string) (*partition, error) {
	_, span := r.tracer.Start(ctx, "protoreg.loadPartition")
	defer span.End()

	dir := filepath.Join(r.root, network)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPartitionNotFound, dir)
	}

	categories, err := schema.LoadCategories(filepath.Join(r.root, r.cfg.CategoriesFile))
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	all, failures, err := record.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPartitionNotFound, err)
	}

	p := &partition{categories: categories}
	for _, rec := range all {
		if rec.File == r.cfg.CanonicalFile {
			p.canonical = rec
			continue
		}
		if r.cfg.Skip(rec.File) {
			continue
		}
		p.records = append(p.records, rec)
		p.files = append(p.files, rec.File)
	}
	for _, f := range failures {
		if f.File == r.cfg.CanonicalFile {
			return nil, fmt.Errorf("%w: %v", ErrCanonicalNotFound, f.Err)
		}
		if r.cfg.Skip(f.File) {
			continue
		}
		p.failures = append(p.failures, f)
		p.files = append(p.files, f.File)
	}
	slices.Sort(p.files)
	if p.canonical == nil {
		return nil, fmt.Errorf("%w: %s", ErrCanonicalNotFound,
			filepath.Join(dir, r.cfg.CanonicalFile))
	}
	p.canonicalSet = corpus.NewCanonicalSet(p.canonical.Addresses)

	return p, nil
}

func (r *Runner) buildProber() (*probe.Prober, error) {
	workers := r.cfg.Probe.Workers
	if r.probeWorkers > 0 {
		workers = r.probeWorkers
	}
	opts := probe.Options{
		Links:        probe.NewLinkChecker(nil),
		Workers:      workers,
		RequestDelay: r.cfg.Probe.GetRequestDelay(),
		Logger:       r.logger,
	}

	apiKey := os.Getenv(r.cfg.Probe.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, r.cfg.Probe.APIKeyEnv)
	}
	opts.Contracts = probe.NewContractClient(r.cfg.Probe.APIBaseURL, apiKey,
		&http.Client{Timeout: probe.DefaultRequestTimeout})

	if r.cfg.Probe.CacheURL != "" {
		cache, err := probe.NewVerifyCache(probe.CacheOptions{
			URL: r.cfg.Probe.CacheURL,
			TTL: r.cfg.Probe.GetCacheTTL(),
		})
		if err != nil {
			// The cache is an optimization; a dead Redis never blocks probing.
			r.logger.Warn("verification cache disabled", "error", err)
		} else {
			opts.Cache = cache
		}
	}

	return probe.New(opts), nil
}

// filterProtocol narrows records to the one whose slug matches name
// (case-insensitive, extension ignored).
func filterProtocol(records []*record.Protocol, name string) []*record.Protocol {
	want := record.Slug(name)
	var out []*record.Protocol
	for _, p := range records {
		if p.Slug() == want {
			out = append(out, p)
		}
	}
	return out
}

// filterFailures narrows parse failures the same way: a failure belongs to
// the named protocol when its file slug matches.
func filterFailures(failures []record.ParseFailure, name string) []record.ParseFailure {
	want := record.Slug(name)
	var out []record.ParseFailure
	for _, f := range failures {
		if record.Slug(f.File) == want {
			out = append(out, f)
		}
	}
	return out
}

// schemaOK reports whether the violations contain no errors (warnings are
// acceptable for export).
func schemaOK(violations []violation.Violation) bool {
	for _, v := range violations {
		if v.Severity == violation.SeverityError {
			return false
		}
	}
	return true
}

