package storage

import (
	"math"
	"time"

	"campaignetl/internal/ddl"
	"campaignetl/internal/table"
)

// BuildRows renders table rows into positional argument slices aligned to
// def's column order, ready for batched INSERT or COPY. Missing fields
// become NULL. Two value normalizations apply for driver portability:
// NaN floats persist as NULL (an undefined metric has no storable value),
// and time.Time values are rendered as date strings.
func BuildRows(def ddl.TableDef, t *table.Table) [][]any {
	cols := def.ColumnNames()
	rows := make([][]any, 0, t.Len())
	for _, rec := range t.Rows {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = normalizeValue(rec[c])
		}
		rows = append(rows, row)
	}
	return rows
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return t
	case float32:
		if math.IsNaN(float64(t)) {
			return nil
		}
		return t
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return v
	}
}
