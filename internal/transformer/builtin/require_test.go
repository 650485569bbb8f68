package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campaignetl/pkg/records"
)

func TestRequireDropsMissingNilAndEmpty(t *testing.T) {
	in := []records.Record{
		{"c_date": "2024-01-01", "revenue": 1.0},
		{"c_date": nil, "revenue": 1.0},
		{"c_date": "", "revenue": 1.0},
		{"revenue": 1.0},
	}
	got := Require{Fields: []string{"c_date", "revenue"}}.Apply(in)

	assert.Len(t, got, 1)
	assert.Equal(t, in[0], got[0])
}

func TestRequireZeroIsPresent(t *testing.T) {
	in := []records.Record{{"clicks": 0}}
	got := Require{Fields: []string{"clicks"}}.Apply(in)
	assert.Len(t, got, 1)
}

func TestRequireNoFieldsKeepsAll(t *testing.T) {
	in := []records.Record{{"a": nil}, {}}
	got := Require{}.Apply(in)
	assert.Len(t, got, 2)
}
