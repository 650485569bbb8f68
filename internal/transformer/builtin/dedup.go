// Package builtin contains the reusable transformers the cleaning pipeline
// is assembled from: duplicate removal, required-column enforcement, value
// bounds, and date parsing/normalization.
//
// DropExactDuplicates removes rows whose full contents are identical across
// the configured column order; DeDupKeepLast collapses rows sharing a key,
// keeping the occurrence latest in the current batch order. Both run
// in-memory on a single batch. Run DeDupKeepLast *after* date sorting so
// "last" means "latest in date order", not "latest uploaded".
package builtin

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"campaignetl/pkg/records"
)

// rowKey renders the values of fields in order into a stable string key.
// nil renders as a NUL byte so a missing value never collides with a real
// one; fields are joined with the unit separator.
func rowKey(r records.Record, fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		switch t := r[f].(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(t)
		default:
			b.WriteString(fmt.Sprint(t))
		}
	}
	return b.String()
}

// DropExactDuplicates removes rows that are identical in every configured
// column, keeping the first occurrence. Identity is decided on a 128-bit
// xxh3 hash of the rendered row key.
type DropExactDuplicates struct {
	// Columns fixes the column order the row key is built over. With no
	// columns configured the transformer is a no-op.
	Columns []string
}

// Apply returns the batch with later exact duplicates removed.
func (d DropExactDuplicates) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Columns) == 0 {
		return in
	}
	seen := make(map[xxh3.Uint128]struct{}, len(in))
	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		h := xxh3.HashString128(rowKey(r, d.Columns))
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, r)
	}
	return out
}

// DeDupKeepLast collapses rows sharing the same value in Key, keeping the
// occurrence that appears last in the batch. Surviving rows keep their
// relative order. Rows without the Key field at all pass through untouched;
// rows with a nil key value share one key and are collapsed like any other.
type DeDupKeepLast struct {
	Key string
}

// Apply executes the de-duplication.
func (d DeDupKeepLast) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || d.Key == "" {
		return in
	}

	// Last occurrence index per key.
	last := make(map[string]int, len(in))
	for i, r := range in {
		if _, ok := r[d.Key]; !ok {
			continue
		}
		last[rowKey(r, []string{d.Key})] = i
	}

	out := make([]records.Record, 0, len(last))
	for i, r := range in {
		if _, ok := r[d.Key]; !ok {
			out = append(out, r)
			continue
		}
		if last[rowKey(r, []string{d.Key})] == i {
			out = append(out, r)
		}
	}
	return out
}
