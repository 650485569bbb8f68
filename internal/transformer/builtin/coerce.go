package builtin

import (
	"math"
	"strconv"
	"strings"

	"campaignetl/pkg/records"
)

// CoerceKinds converts raw string values to their logical kind before they
// land in storage: "int" and "float" parse numerics, everything else stays a
// string. A numeric that fails to parse becomes nil: the value is stored as
// NULL and the cleaning stage decides the row's fate. Date fields stay
// strings; cleaning owns date parsing.
type CoerceKinds struct {
	Kinds map[string]string // field -> "int", "float", "text", "date"
}

// Apply coerces in place and never drops records.
func (c CoerceKinds) Apply(in []records.Record) []records.Record {
	if len(c.Kinds) == 0 {
		return in
	}
	for _, r := range in {
		for field, kind := range c.Kinds {
			v, ok := r[field]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			s = strings.TrimSpace(s)
			switch kind {
			case "int":
				r[field] = parseIntValue(s)
			case "float":
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					r[field] = f
				} else {
					r[field] = nil
				}
			}
		}
	}
	return in
}

// parseIntValue accepts plain integers and integral floats ("5", "5.0");
// anything else is nil. Spreadsheet exports often render integer columns
// with a decimal point.
func parseIntValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return int64(f)
	}
	return nil
}
