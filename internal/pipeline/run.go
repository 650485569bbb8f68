package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"campaignetl/internal/metrics"
	"campaignetl/internal/schema"
	"campaignetl/internal/storage"
	"campaignetl/internal/table"
)

// Runner executes one full pipeline run: load the staging table, clean,
// derive features, persist the clean and fact tables, and return the raw and
// fact tables to the caller for display.
//
// Runs are single-threaded and one-shot: no retries, no overlap with other
// runs (the caller guarantees at most one run in flight). Data-quality
// issues never fail a run; only structural failures (storage unavailable,
// unreadable table) abort it, leaving tables not yet reached untouched.
type Runner struct {
	repo    storage.Repository
	log     zerolog.Logger
	job     string
	cleaner Cleaner
	deriver Deriver
}

// NewRunner wires a Runner against the given repository. job labels metrics
// and log lines.
func NewRunner(repo storage.Repository, log zerolog.Logger, job string) *Runner {
	if job == "" {
		job = "campaign_pipeline"
	}
	return &Runner{repo: repo, log: log, job: job}
}

// Bootstrap creates the staging table when absent, so a pipeline can run
// before any upload has happened.
func (r *Runner) Bootstrap(ctx context.Context) error {
	if err := r.repo.EnsureTable(ctx, schema.StagingTableDef()); err != nil {
		return fmt.Errorf("bootstrap staging table: %w", err)
	}
	return nil
}

// Run executes the pipeline once and returns the raw staging table and the
// final fact table. There is no transaction across the clean and fact
// writes; a failure between them leaves the fact table stale relative to the
// clean table, which the full-replace model accepts.
func (r *Runner) Run(ctx context.Context) (raw, fact *table.Table, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(r.job, "run", err, time.Since(start)) }()

	raw, err = r.repo.LoadTable(ctx, schema.StagingTable)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", schema.StagingTable, err)
	}
	metrics.RecordRows(r.job, "loaded", int64(raw.Len()))

	clean, stats := r.cleaner.Clean(raw)
	for _, s := range stats.Steps {
		if s.Dropped > 0 {
			r.log.Info().Str("step", s.Step).Int("dropped", s.Dropped).Msg("cleaning dropped rows")
		}
		metrics.RecordRows(r.job, s.Step, int64(s.Dropped))
	}
	r.log.Info().
		Str("rows_in", humanize.Comma(int64(stats.Input))).
		Str("rows_out", humanize.Comma(int64(stats.Output))).
		Msg("cleaning complete")

	if err = r.repo.ReplaceTable(ctx, schema.TableDefFor(schema.CleanTable, clean.Columns), clean); err != nil {
		return nil, nil, fmt.Errorf("replace %s: %w", schema.CleanTable, err)
	}

	fact = r.deriver.Derive(clean)
	if err = r.repo.ReplaceTable(ctx, schema.TableDefFor(schema.FactTable, fact.Columns), fact); err != nil {
		return nil, nil, fmt.Errorf("replace %s: %w", schema.FactTable, err)
	}
	metrics.RecordRows(r.job, "derived", int64(fact.Len()))

	r.log.Info().
		Int("fact_rows", fact.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline complete")
	return raw, fact, nil
}
