package builtin

import "campaignetl/pkg/records"

// MinExclusive removes records whose Field value is not strictly greater
// than Min. A value that is present but not numeric cannot satisfy the bound
// and is dropped; a null value passes (required-ness is Require's job).
type MinExclusive struct {
	Field string
	Min   float64
}

// Apply filters the batch against the bound.
func (m MinExclusive) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, rec := range in {
		if rec.IsNull(m.Field) {
			out = append(out, rec)
			continue
		}
		v, ok := rec.Float(m.Field)
		if ok && v > m.Min {
			out = append(out, rec)
		}
	}
	return out
}

// NonNegative removes records carrying a negative value in any of the listed
// fields. Null values pass; fields absent from a record are skipped, so
// optional columns never cause drops just by being missing.
type NonNegative struct {
	Fields []string
}

// Apply filters the batch.
func (n NonNegative) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, rec := range in {
		ok := true
		for _, f := range n.Fields {
			if rec.IsNull(f) {
				continue
			}
			if v, numeric := rec.Float(f); numeric && v < 0 {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
