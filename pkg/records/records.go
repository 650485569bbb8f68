// Package records defines the dynamic record type passed between pipeline
// stages. A Record maps canonical column names to values. A key that is
// absent and a key holding nil both mean "no data"; transformers must treat
// them the same way.
package records

import (
	"strconv"
	"time"
)

// Record is one row of a table, keyed by canonical column name.
type Record map[string]any

// Clone returns a shallow copy of r. Values are shared; stages that rewrite
// values must clone first so the caller's table stays untouched.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsNull reports whether name is absent, nil, or an empty string.
func (r Record) IsNull(name string) bool {
	v, ok := r[name]
	if !ok || v == nil {
		return true
	}
	s, isStr := v.(string)
	return isStr && s == ""
}

// Float returns the value of name as a float64. It coerces the integer and
// float widths produced by SQL drivers and encoding/json, and parses numeric
// strings. The second result is false when the field is null or not numeric.
func (r Record) Float(name string) (float64, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// String returns the value of name as a string, or "" when it is null or not
// a string.
func (r Record) String(name string) (string, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Time returns the value of name as a time.Time. It accepts time.Time values
// directly and parses strings against the given layouts in order.
func (r Record) Time(name string, layouts ...string) (time.Time, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range layouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}
