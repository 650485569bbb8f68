// Package csv parses an uploaded campaign CSV into a table. Columns are
// matched by header name, never by position; header text is normalized into
// lowercase ASCII identifiers so exports with decorated headers ("Campaign
// Name", "Impressions ") still land on the canonical schema columns. The
// parser is lenient about quoting and row width; data-quality enforcement
// belongs to the cleaning stage, not here.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"campaignetl/internal/table"
	"campaignetl/pkg/records"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

// Options configures the CSV parser. All fields are optional; sensible
// defaults apply when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// HeaderMap maps normalized header names onto canonical column names,
	// overriding the built-in normalization (e.g. {"spend": "mark_spent"}).
	HeaderMap map[string]string

	// Encoding names the source byte encoding ("windows-1250",
	// "windows-1252", "iso-8859-1"). Empty means UTF-8.
	Encoding string
}

// Parse reads the entire CSV from r and returns a table of string-valued
// records keyed by normalized column names. Rows wider than the header are
// truncated; narrower rows leave the trailing columns null.
func Parse(r io.Reader, opt Options) (*table.Table, error) {
	dec, err := decodeReader(r, opt.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(dec)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.FieldsPerRecord = -1 // allow variable fields per row
	cr.LazyQuotes = true    // tolerate unescaped quotes
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	cols := make([]string, len(header))
	for i, raw := range header {
		if i == 0 {
			raw = strings.TrimPrefix(raw, utf8BOM)
		}
		name := normalizeFieldName(raw)
		if mapped, ok := opt.HeaderMap[name]; ok && mapped != "" {
			name = mapped
		}
		cols[i] = name
	}

	t := table.New(cols...)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		rec := make(records.Record, len(cols))
		for i, name := range cols {
			if i >= len(row) {
				rec[name] = nil
				continue
			}
			v := row[i]
			if opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			if v == "" {
				rec[name] = nil
			} else {
				rec[name] = v
			}
		}
		t.Append(rec)
	}
	return t, nil
}
