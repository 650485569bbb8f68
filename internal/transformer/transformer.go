// Package transformer defines the bulk transformation contract used by the
// cleaning pipeline. A Transformer consumes a whole batch of records and
// returns the surviving batch; filters drop rows, normalizers rewrite values
// in place, sorters reorder. No transformer ever adds rows.
package transformer

import "campaignetl/pkg/records"

// Transformer applies one bulk transformation to a batch of records.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer in order, feeding the output of one into the
// next. Nil entries are skipped.
func (c Chain) Apply(in []records.Record) []records.Record {
	if len(c) == 0 {
		return in
	}

	out := in
	for _, t := range c {
		if t == nil {
			continue
		}
		out = t.Apply(out)
	}
	return out
}

// Step names a transformer so callers can report per-step row counts.
type Step struct {
	Name string
	Transformer
}
