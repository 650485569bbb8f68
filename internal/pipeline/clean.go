package pipeline

import (
	"campaignetl/internal/schema"
	"campaignetl/internal/table"
	"campaignetl/internal/transformer"
	"campaignetl/internal/transformer/builtin"
)

// Cleaner turns a raw campaign table into the canonical clean table. Every
// data-quality issue is resolved by dropping rows, never by erroring or
// imputing values, so malformed input degrades row count, not execution.
// An empty result is valid output.
type Cleaner struct{}

// StepCount reports how many rows one cleaning step removed.
type StepCount struct {
	Step    string
	Dropped int
}

// CleanStats summarizes a cleaning pass.
type CleanStats struct {
	Input  int
	Output int
	Steps  []StepCount
}

// Clean runs the cleaning chain over a copy of raw, in this order: exact
// duplicate removal, required-column enforcement, the impressions > 0 bound,
// negative-value removal, date parsing, date sort with canonical rendering,
// and, when an id column exists, keep-last de-duplication by id. The order
// matters: dedup by id runs after the date sort so "last" means latest in
// date order.
//
// Exact-duplicate detection compares raw values, before dates are
// canonicalized, so two rows identical except for the date rendering both
// survive a pass and only collapse on a re-clean. Without an id column Clean
// is therefore not a strict fixed point on that edge; with one, dedup by id
// collapses such rows on the first pass.
func (Cleaner) Clean(raw *table.Table) (*table.Table, CleanStats) {
	t := raw.Clone()

	steps := []transformer.Step{
		{Name: "drop_exact_duplicates", Transformer: builtin.DropExactDuplicates{Columns: t.Columns}},
		{Name: "require_columns", Transformer: builtin.Require{Fields: schema.RequiredColumns}},
		{Name: "impressions_positive", Transformer: builtin.MinExclusive{Field: schema.ColImpressions, Min: 0}},
		{Name: "drop_negative_values", Transformer: builtin.NonNegative{Fields: schema.NumericColumns}},
		{Name: "parse_dates", Transformer: builtin.ParseDate{Field: schema.ColDate, Layouts: schema.DateLayouts}},
		{Name: "sort_by_date", Transformer: builtin.SortByTime{Field: schema.ColDate, Layout: schema.DateLayout}},
	}
	if t.HasColumn(schema.ColID) {
		steps = append(steps, transformer.Step{
			Name:        "dedup_by_id",
			Transformer: builtin.DeDupKeepLast{Key: schema.ColID},
		})
	}

	stats := CleanStats{Input: t.Len(), Steps: make([]StepCount, 0, len(steps))}
	rows := t.Rows
	for _, s := range steps {
		before := len(rows)
		rows = s.Apply(rows)
		stats.Steps = append(stats.Steps, StepCount{Step: s.Name, Dropped: before - len(rows)})
	}

	out := table.New(t.Columns...)
	out.Rows = rows
	stats.Output = len(rows)
	return out, stats
}
