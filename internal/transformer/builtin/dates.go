package builtin

import (
	"sort"
	"time"

	"campaignetl/pkg/records"
)

// ParseDate parses Field against Layouts in order and stores the resulting
// time.Time back into the record. Records whose value fails every layout are
// dropped, matching the pipeline's drop-don't-error policy for bad data.
type ParseDate struct {
	Field   string
	Layouts []string
}

// Apply parses in place and filters out unparseable records.
func (p ParseDate) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, rec := range in {
		ts, ok := rec.Time(p.Field, p.Layouts...)
		if !ok {
			continue
		}
		rec[p.Field] = ts
		out = append(out, rec)
	}
	return out
}

// SortByTime stably sorts records ascending by a time.Time field previously
// produced by ParseDate, then re-renders the field as a string using Layout.
// Records holding a non-time value sort first and are left unrendered.
type SortByTime struct {
	Field  string
	Layout string
}

// Apply sorts in place and canonicalizes the field rendering.
func (s SortByTime) Apply(in []records.Record) []records.Record {
	at := func(r records.Record) (time.Time, bool) {
		t, ok := r[s.Field].(time.Time)
		return t, ok
	}
	sort.SliceStable(in, func(i, j int) bool {
		ti, iok := at(in[i])
		tj, jok := at(in[j])
		if !iok || !jok {
			return !iok && jok
		}
		return ti.Before(tj)
	})
	for _, rec := range in {
		if t, ok := at(rec); ok {
			rec[s.Field] = t.Format(s.Layout)
		}
	}
	return in
}
