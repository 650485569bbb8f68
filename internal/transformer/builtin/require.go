package builtin

import "campaignetl/pkg/records"

// Require removes any record missing a value for one of the specified
// fields. Absent keys, nil values, and empty strings all count as missing.
type Require struct {
	Fields []string
}

// Apply returns a filtered slice containing only records that have all
// required fields present and non-empty.
func (r Require) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, rec := range in {
		ok := true
		for _, f := range r.Fields {
			if rec.IsNull(f) {
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
