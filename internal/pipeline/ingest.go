package pipeline

import (
	"context"
	"fmt"
	"io"

	csvparser "campaignetl/internal/parser/csv"
	"campaignetl/internal/schema"
	"campaignetl/internal/transformer/builtin"
)

// IngestCSV parses an uploaded campaign CSV, coerces values onto the
// campaign schema's logical kinds, and replaces the staging table wholesale
// so it always holds the latest upload verbatim. Columns the schema does not
// know are kept as text; required columns missing from the upload are not an
// ingest error, cleaning will drop every row instead.
func (r *Runner) IngestCSV(ctx context.Context, src io.Reader, opt csvparser.Options) (int, error) {
	t, err := csvparser.Parse(src, opt)
	if err != nil {
		return 0, fmt.Errorf("parse upload: %w", err)
	}

	builtin.CoerceKinds{Kinds: schema.ColumnKinds()}.Apply(t.Rows)

	def := schema.TableDefFor(schema.StagingTable, t.Columns)
	if err := r.repo.ReplaceTable(ctx, def, t); err != nil {
		return 0, fmt.Errorf("replace %s: %w", schema.StagingTable, err)
	}

	r.log.Info().
		Int("rows", t.Len()).
		Int("columns", len(t.Columns)).
		Msg("upload ingested into staging")
	return t.Len(), nil
}
