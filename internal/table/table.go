// Package table provides the in-memory tabular container moved between
// pipeline stages: an ordered column list plus a slice of records. Bulk
// operations (filter, stable sort) work on the whole row set at once so that
// stages express table-wide transformations rather than ad-hoc loops.
package table

import (
	"sort"

	"campaignetl/pkg/records"
)

// Table is an ordered set of columns and the rows that populate them. Rows
// may omit optional columns; Columns is the authoritative column list for
// persistence and duplicate detection.
type Table struct {
	Columns []string
	Rows    []records.Record
}

// New returns an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is part of the table's column list.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to the column list if not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a row to the table.
func (t *Table) Append(r records.Record) {
	t.Rows = append(t.Rows, r)
}

// Filter returns a new table, sharing this table's column order, containing
// only the rows for which keep returns true. Rows are shared, not copied.
func (t *Table) Filter(keep func(records.Record) bool) *Table {
	out := New(t.Columns...)
	out.Rows = make([]records.Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// SortStable sorts rows in place using a stable sort, so rows that compare
// equal keep their relative order.
func (t *Table) SortStable(less func(a, b records.Record) bool) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return less(t.Rows[i], t.Rows[j])
	})
}

// Clone returns a deep copy of the table: the column list and every record
// are copied, so mutations of the clone never leak into the original.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([]records.Record, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}
