package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Env carries the environment overrides applied on top of the pipeline file.
// Only deployment-dependent values are overridable: where the data lives and
// how the run reports itself.
type Env struct {
	StorageKind    string `envconfig:"CAMPAIGNETL_STORAGE_KIND"`
	DSN            string `envconfig:"CAMPAIGNETL_DB_DSN"`
	LogLevel       string `envconfig:"CAMPAIGNETL_LOG_LEVEL" default:"info"`
	MetricsBackend string `envconfig:"CAMPAIGNETL_METRICS_BACKEND"`
	PushgatewayURL string `envconfig:"CAMPAIGNETL_PUSHGATEWAY_URL"`
}

// LoadEnv reads the overrides from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return Env{}, fmt.Errorf("parsing environment: %w", err)
	}
	return e, nil
}

// Apply overlays the non-empty overrides onto p.
func (e Env) Apply(p *Pipeline) {
	if e.StorageKind != "" {
		p.Storage.Kind = e.StorageKind
	}
	if e.DSN != "" {
		p.Storage.DB.DSN = e.DSN
	}
	if e.MetricsBackend != "" {
		p.Metrics.Backend = e.MetricsBackend
	}
	if e.PushgatewayURL != "" {
		p.Metrics.PushgatewayURL = e.PushgatewayURL
	}
}
