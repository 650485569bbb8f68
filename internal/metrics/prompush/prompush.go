// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package. A batch pipeline has no long-lived process to scrape, so
// metrics are pushed once per run instead of exposed on an HTTP endpoint.
// All Prometheus-specific dependencies live here; the rest of the project
// depends only on the metrics interface.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"campaignetl/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string
	jobName    string // Pushgateway "job" grouping key
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec // pipeline_step_total
	stepDuration *prometheus.SummaryVec // pipeline_step_duration_seconds
	rowCounter   *prometheus.CounterVec // pipeline_rows_total
}

// NewBackend constructs a Pushgateway backend. jobName becomes the
// Pushgateway job grouping; gatewayURL is the base URL of the gateway.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "campaign_pipeline"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_step_total",
			Help: "Total pipeline step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "pipeline_step_duration_seconds",
			Help:       "Duration of pipeline steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_rows_total",
			Help: "Row-level counts per kind (loaded, derived, per-step drops).",
		},
		[]string{"kind"},
	)

	if err := reg.Register(stepCounter); err != nil {
		return nil, fmt.Errorf("prompush: register step counter: %w", err)
	}
	if err := reg.Register(stepDuration); err != nil {
		return nil, fmt.Errorf("prompush: register step summary: %w", err)
	}
	if err := reg.Register(rowCounter); err != nil {
		return nil, fmt.Errorf("prompush: register row counter: %w", err)
	}

	return &Backend{
		gatewayURL:   gatewayURL,
		jobName:      jobName,
		reg:          reg,
		stepCounter:  stepCounter,
		stepDuration: stepDuration,
		rowCounter:   rowCounter,
	}, nil
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "pipeline_step_total":
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)
	case "pipeline_rows_total":
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)
	default:
		// unknown metric name: ignore
	}
}

// ObserveDuration implements metrics.Backend.
func (b *Backend) ObserveDuration(name string, seconds float64, labels metrics.Labels) {
	if name != "pipeline_step_duration_seconds" {
		return
	}
	b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(seconds)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
