package csv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"
)

func TestParseNormalizesHeaders(t *testing.T) {
	in := "Campaign Name,Impressions ,Mark-Spent,c.date\nspring,100,1.5,2024-01-15\n"

	got, err := Parse(strings.NewReader(in), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"campaign_name", "impressions", "mark_spent", "c_date"}, got.Columns)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "spring", got.Rows[0]["campaign_name"])
	assert.Equal(t, "100", got.Rows[0]["impressions"])
}

func TestParseStripsAccentsFromHeaders(t *testing.T) {
	got, err := Parse(strings.NewReader("Kampagnenübersicht\nx\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"kampagnenubersicht"}, got.Columns)
}

func TestParseStripsBOM(t *testing.T) {
	got, err := Parse(strings.NewReader("\ufeffid,clicks\n1,2\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "clicks"}, got.Columns)
}

func TestParseHeaderMapOverride(t *testing.T) {
	got, err := Parse(strings.NewReader("Spend,Date\n9.5,2024-01-01\n"), Options{
		HeaderMap: map[string]string{"spend": "mark_spent", "date": "c_date"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"mark_spent", "c_date"}, got.Columns)
	assert.Equal(t, "9.5", got.Rows[0]["mark_spent"])
}

func TestParseShortAndWideRows(t *testing.T) {
	in := "a,b,c\n1,2\n1,2,3,4\n"

	got, err := Parse(strings.NewReader(in), Options{})
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	assert.Nil(t, got.Rows[0]["c"])
	assert.Equal(t, "3", got.Rows[1]["c"])
	assert.NotContains(t, got.Rows[1], "col")
}

func TestParseEmptyCellsAreNull(t *testing.T) {
	got, err := Parse(strings.NewReader("a,b\n,x\n"), Options{})
	require.NoError(t, err)
	assert.Nil(t, got.Rows[0]["a"])
	assert.Equal(t, "x", got.Rows[0]["b"])
}

func TestParseTrimSpace(t *testing.T) {
	got, err := Parse(strings.NewReader("a\nval  \n  \n"), Options{TrimSpace: true})
	require.NoError(t, err)
	assert.Equal(t, "val", got.Rows[0]["a"])
	assert.Nil(t, got.Rows[1]["a"])
}

func TestParseSemicolonDelimiter(t *testing.T) {
	got, err := Parse(strings.NewReader("a;b\n1;2\n"), Options{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Columns)
	assert.Equal(t, "2", got.Rows[0]["b"])
}

func TestParseWindows1252Encoding(t *testing.T) {
	enc, err := charmap.Windows1252.NewEncoder().String("catégorie\nbière\n")
	require.NoError(t, err)

	got, err := Parse(strings.NewReader(enc), Options{Encoding: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, []string{"categorie"}, got.Columns)
	assert.Equal(t, "bière", got.Rows[0]["categorie"])
}

func TestParseUnsupportedEncoding(t *testing.T) {
	_, err := Parse(strings.NewReader("a\n1\n"), Options{Encoding: "ebcdic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported encoding")
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""), Options{})
	require.Error(t, err)
}

func TestNormalizeFieldName(t *testing.T) {
	cases := map[string]string{
		"Campaign Name":  "campaign_name",
		"  IMPRESSIONS ": "impressions",
		"mark.spent":     "mark_spent",
		"c-date":         "c_date",
		"revenue ($)":    "revenue",
		"Überschrift":    "uberschrift",
		"a  b":           "a_b",
		"__x__":          "x",
		"%%%":            "col",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeFieldName(in), "input %q", in)
	}
}
