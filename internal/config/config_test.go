package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineDecode(t *testing.T) {
	src := `{
	  "job": "campaign_pipeline",
	  "ingest": {
	    "kind": "csv",
	    "options": {
	      "comma": ";",
	      "trim_space": true,
	      "encoding": "windows-1252",
	      "header_map": {"spend": "mark_spent"}
	    }
	  },
	  "storage": {"kind": "sqlite", "db": {"dsn": "file:test.db"}},
	  "metrics": {"backend": "pushgateway", "pushgateway_url": "http://pg:9091"}
	}`

	var p Pipeline
	require.NoError(t, json.Unmarshal([]byte(src), &p))

	assert.Equal(t, "campaign_pipeline", p.Job)
	assert.Equal(t, "csv", p.Ingest.Kind)
	assert.Equal(t, ';', p.Ingest.Options.Rune("comma", ','))
	assert.True(t, p.Ingest.Options.Bool("trim_space", false))
	assert.Equal(t, "windows-1252", p.Ingest.Options.String("encoding", ""))
	assert.Equal(t, map[string]string{"spend": "mark_spent"}, p.Ingest.Options.StringMap("header_map"))
	assert.Equal(t, "sqlite", p.Storage.Kind)
	assert.Equal(t, "file:test.db", p.Storage.DB.DSN)
	assert.Equal(t, "http://pg:9091", p.Metrics.PushgatewayURL)
}

func TestOptionsDefaults(t *testing.T) {
	var p Pipeline
	require.NoError(t, json.Unmarshal([]byte(`{"ingest":{"kind":"csv"}}`), &p))

	assert.Equal(t, ',', p.Ingest.Options.Rune("comma", ','))
	assert.False(t, p.Ingest.Options.Bool("trim_space", false))
	assert.Equal(t, "", p.Ingest.Options.String("encoding", ""))
	assert.Empty(t, p.Ingest.Options.StringMap("header_map"))
}

func TestOptionsNullDecodesToEmptyMap(t *testing.T) {
	var p Pipeline
	require.NoError(t, json.Unmarshal([]byte(`{"ingest":{"options":null}}`), &p))
	require.NotNil(t, p.Ingest.Options)
}

func TestOptionsIgnoresWrongTypes(t *testing.T) {
	o := Options{"comma": 5, "trim_space": "yes", "header_map": []any{"x"}}

	assert.Equal(t, ',', o.Rune("comma", ','))
	assert.True(t, o.Bool("trim_space", true))
	assert.Empty(t, o.StringMap("header_map"))
}

func validPipeline() Pipeline {
	return Pipeline{
		Job:     "campaign_pipeline",
		Ingest:  Ingest{Kind: "csv", Options: Options{}},
		Storage: Storage{Kind: "sqlite", DB: DBConfig{DSN: "file::memory:"}},
	}
}

func issuePaths(issues []Issue) []string {
	paths := make([]string, 0, len(issues))
	for _, i := range issues {
		paths = append(paths, i.Path)
	}
	return paths
}

func TestValidatePipelineClean(t *testing.T) {
	assert.Empty(t, ValidatePipeline(validPipeline()))
}

func TestValidatePipelineEmptyJobWarns(t *testing.T) {
	p := validPipeline()
	p.Job = " "

	issues := ValidatePipeline(p)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, "job", issues[0].Path)
}

func TestValidatePipelineStorageErrors(t *testing.T) {
	p := validPipeline()
	p.Storage.Kind = "oracle"
	p.Storage.DB.DSN = ""

	issues := ValidatePipeline(p)
	assert.Contains(t, issuePaths(issues), "storage.kind")
	assert.Contains(t, issuePaths(issues), "storage.db.dsn")
	for _, i := range issues {
		assert.Equal(t, SeverityError, i.Severity)
	}
}

func TestValidatePipelineUnknownIngestKind(t *testing.T) {
	p := validPipeline()
	p.Ingest.Kind = "parquet"

	issues := ValidatePipeline(p)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, "ingest.kind", issues[0].Path)
}

func TestValidatePipelineUnsupportedEncoding(t *testing.T) {
	p := validPipeline()
	p.Ingest.Options = Options{"encoding": "ebcdic"}

	issues := ValidatePipeline(p)
	require.Len(t, issues, 1)
	assert.Equal(t, "ingest.options.encoding", issues[0].Path)
}

func TestValidatePipelineMetricsWarnings(t *testing.T) {
	p := validPipeline()
	p.Metrics.Backend = "statsd"
	issues := ValidatePipeline(p)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)

	p.Metrics = Metrics{Backend: "pushgateway"}
	issues = ValidatePipeline(p)
	require.Len(t, issues, 1)
	assert.Equal(t, "metrics.pushgateway_url", issues[0].Path)
}

func TestIssueError(t *testing.T) {
	i := Issue{Severity: SeverityError, Path: "storage.kind", Message: "boom"}
	assert.Equal(t, "error at storage.kind: boom", i.Error())
}

func TestEnvApplyOverlaysNonEmpty(t *testing.T) {
	p := validPipeline()
	Env{DSN: "postgres://db/etl", MetricsBackend: "pushgateway"}.Apply(&p)

	assert.Equal(t, "sqlite", p.Storage.Kind)
	assert.Equal(t, "postgres://db/etl", p.Storage.DB.DSN)
	assert.Equal(t, "pushgateway", p.Metrics.Backend)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CAMPAIGNETL_STORAGE_KIND", "postgres")
	t.Setenv("CAMPAIGNETL_DB_DSN", "postgres://db/etl")
	t.Setenv("CAMPAIGNETL_LOG_LEVEL", "debug")

	e, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres", e.StorageKind)
	assert.Equal(t, "postgres://db/etl", e.DSN)
	assert.Equal(t, "debug", e.LogLevel)
}
