// Package config defines the canonical, JSON-serializable configuration
// model for the pipeline binary. Pipelines are loaded from small JSON files;
// a handful of settings can additionally be overridden from the environment
// (12-factor style) so deployments never hardcode storage locations.
//
// Design goals:
//
//  1. Stability: changes should be additive and backwards-compatible.
//  2. Clarity: Go field names mirror the JSON structure of pipeline files.
//  3. Explicitness: the storage DSN is always injected via config or
//     environment, never assumed, so tests can point each run at an
//     isolated in-memory or temp-path database.
package config

import "encoding/json"

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run for metrics and logs.
	Job string `json:"job"`

	// Ingest configures how an uploaded file is parsed into the staging
	// table. Only consulted when an upload is passed to the binary.
	Ingest Ingest `json:"ingest"`

	// Storage selects and configures where tables are persisted.
	Storage Storage `json:"storage"`

	// Metrics selects the metrics backend.
	Metrics Metrics `json:"metrics"`
}

// Ingest selects the upload parser.
type Ingest struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser. For CSV, typical
	// keys: comma (string), trim_space (bool), encoding (string),
	// header_map (object of string->string).
	Options Options `json:"options"`
}

// Storage selects the persistence backend.
type Storage struct {
	// Kind selects the backend: "sqlite", "postgres", "mysql", or "mssql".
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// DBConfig configures the selected backend.
type DBConfig struct {
	// DSN is the backend connection string (file path or URL form for
	// SQLite, pgx/mysql/sqlserver URL for the server backends).
	DSN string `json:"dsn"`
}

// Metrics configures the optional metrics backend.
type Metrics struct {
	// Backend is "pushgateway", "none", or empty (disabled).
	Backend string `json:"backend"`

	// PushgatewayURL is the base URL of the Prometheus Pushgateway.
	PushgatewayURL string `json:"pushgateway_url"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without a third-party configuration library. It performs only minimal type
// coercion and returns the provided default when a key is absent or of an
// unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def when the key
// is missing or empty. Useful for single-character settings such as a CSV
// delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// UnmarshalJSON decodes a missing or null options object into a non-nil,
// empty Options map, removing nil checks at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
