// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of
// issues (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline. Path is a
// dotted path into the config (e.g. "storage.kind"); Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

var knownStorageKinds = map[string]struct{}{
	"sqlite":   {},
	"postgres": {},
	"mysql":    {},
	"mssql":    {},
}

var knownEncodings = map[string]struct{}{
	"": {}, "utf8": {}, "utf-8": {},
	"windows-1250": {}, "cp1250": {},
	"windows-1252": {}, "cp1252": {},
	"iso-8859-1": {}, "latin1": {},
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; it returns a slice of Issue values, and callers
// decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics and logs will use the default job name",
		})
	}

	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateIngest(p.Ingest)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
	} else if _, ok := knownStorageKinds[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; expected sqlite, postgres, mysql, or mssql", s.Kind),
		})
	}

	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "storage.db.dsn must not be empty; the storage location is always injected, never assumed",
		})
	}

	return issues
}

func validateIngest(in Ingest) []Issue {
	var issues []Issue

	switch in.Kind {
	case "", "csv":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "ingest.kind",
			Message:  fmt.Sprintf("unknown ingest kind %q; only \"csv\" is supported", in.Kind),
		})
	}

	enc := strings.ToLower(strings.TrimSpace(in.Options.String("encoding", "")))
	if _, ok := knownEncodings[enc]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "ingest.options.encoding",
			Message:  fmt.Sprintf("unsupported encoding %q", enc),
		})
	}

	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch m.Backend {
	case "", "none", "pushgateway":
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		})
	}
	if m.Backend == "pushgateway" && strings.TrimSpace(m.PushgatewayURL) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.pushgateway_url",
			Message:  "pushgateway backend selected without a URL; the default http://localhost:9091 applies",
		})
	}

	return issues
}
