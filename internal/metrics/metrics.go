// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline.
//
// It exposes a narrow Backend interface (counters plus duration
// observations) behind a global, pluggable backend defaulting to a no-op, so
// instrumentation is always safe to call even when no metrics system is
// configured. The design mirrors the storage factory: core code depends only
// on this package, concrete systems live in subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, seconds float64, labels Labels)
	// Flush pushes or flushes metrics if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels) {}

func (nopBackend) ObserveDuration(string, float64, Labels) {}

func (nopBackend) Flush() error { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordStep measures one pipeline step: a success/failure count plus its
// duration.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}
	backend.IncCounter("pipeline_step_total", 1, lbls)
	backend.ObserveDuration("pipeline_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given job and kind.
// Typical kinds mirror the cleaning summary: "loaded", "derived", and the
// per-step drop counters ("require_columns", "dedup_by_id", ...).
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("pipeline_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
