package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campaignetl/pkg/records"
)

var campaignCols = []string{"id", "c_date", "campaign_name", "impressions"}

func row(id any, date, name string, impressions int) records.Record {
	return records.Record{
		"id":            id,
		"c_date":        date,
		"campaign_name": name,
		"impressions":   impressions,
	}
}

func TestDropExactDuplicatesKeepsFirst(t *testing.T) {
	in := []records.Record{
		row(1, "2024-01-01", "a", 10),
		row(1, "2024-01-01", "a", 10),
		row(2, "2024-01-01", "b", 20),
	}
	got := DropExactDuplicates{Columns: campaignCols}.Apply(in)

	assert.Len(t, got, 2)
	assert.Equal(t, in[0], got[0])
	assert.Equal(t, in[2], got[1])
}

func TestDropExactDuplicatesDistinguishesNilFromValue(t *testing.T) {
	in := []records.Record{
		row(nil, "2024-01-01", "a", 10),
		row(1, "2024-01-01", "a", 10),
	}
	got := DropExactDuplicates{Columns: campaignCols}.Apply(in)
	assert.Len(t, got, 2)
}

func TestDropExactDuplicatesNoColumnsIsNoop(t *testing.T) {
	in := []records.Record{row(1, "2024-01-01", "a", 10), row(1, "2024-01-01", "a", 10)}
	got := DropExactDuplicates{}.Apply(in)
	assert.Len(t, got, 2)
}

func TestDeDupKeepLast(t *testing.T) {
	in := []records.Record{
		row(1, "2024-01-01", "early", 10),
		row(2, "2024-01-02", "only", 20),
		row(1, "2024-01-03", "late", 30),
	}
	got := DeDupKeepLast{Key: "id"}.Apply(in)

	assert.Len(t, got, 2)
	assert.Equal(t, "only", got[0]["campaign_name"])
	assert.Equal(t, "late", got[1]["campaign_name"])
}

func TestDeDupKeepLastPassesThroughRowsWithoutKey(t *testing.T) {
	noID := records.Record{"c_date": "2024-01-01", "campaign_name": "no-id"}
	in := []records.Record{
		noID,
		row(1, "2024-01-02", "kept", 10),
	}
	got := DeDupKeepLast{Key: "id"}.Apply(in)

	assert.Len(t, got, 2)
	assert.Equal(t, noID, got[0])
}

func TestDeDupKeepLastCollapsesNilKeys(t *testing.T) {
	in := []records.Record{
		row(nil, "2024-01-01", "first-nil", 10),
		row(nil, "2024-01-02", "last-nil", 20),
	}
	got := DeDupKeepLast{Key: "id"}.Apply(in)

	assert.Len(t, got, 1)
	assert.Equal(t, "last-nil", got[0]["campaign_name"])
}
