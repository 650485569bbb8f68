package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBackend struct {
	counters  []counterCall
	durations []durationCall
	flushed   int
}

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type durationCall struct {
	name    string
	seconds float64
	labels  Labels
}

func (r *recordingBackend) IncCounter(name string, delta float64, labels Labels) {
	r.counters = append(r.counters, counterCall{name, delta, labels})
}

func (r *recordingBackend) ObserveDuration(name string, seconds float64, labels Labels) {
	r.durations = append(r.durations, durationCall{name, seconds, labels})
}

func (r *recordingBackend) Flush() error {
	r.flushed++
	return nil
}

func withBackend(t *testing.T, b Backend) {
	t.Helper()
	prev := backend
	SetBackend(b)
	t.Cleanup(func() { backend = prev })
}

func TestRecordStepSuccess(t *testing.T) {
	rec := &recordingBackend{}
	withBackend(t, rec)

	RecordStep("job1", "run", nil, 1500*time.Millisecond)

	require.Len(t, rec.counters, 1)
	assert.Equal(t, "pipeline_step_total", rec.counters[0].name)
	assert.Equal(t, 1.0, rec.counters[0].delta)
	assert.Equal(t, Labels{"job": "job1", "step": "run", "status": "success"}, rec.counters[0].labels)

	require.Len(t, rec.durations, 1)
	assert.Equal(t, "pipeline_step_duration_seconds", rec.durations[0].name)
	assert.Equal(t, 1.5, rec.durations[0].seconds)
}

func TestRecordStepFailure(t *testing.T) {
	rec := &recordingBackend{}
	withBackend(t, rec)

	RecordStep("job1", "run", errors.New("boom"), time.Second)

	require.Len(t, rec.counters, 1)
	assert.Equal(t, "failure", rec.counters[0].labels["status"])
}

func TestRecordRows(t *testing.T) {
	rec := &recordingBackend{}
	withBackend(t, rec)

	RecordRows("job1", "loaded", 42)
	RecordRows("job1", "dedup_by_id", 0)
	RecordRows("job1", "loaded", -3)

	require.Len(t, rec.counters, 1)
	assert.Equal(t, "pipeline_rows_total", rec.counters[0].name)
	assert.Equal(t, 42.0, rec.counters[0].delta)
	assert.Equal(t, Labels{"job": "job1", "kind": "loaded"}, rec.counters[0].labels)
}

func TestSetBackendNilKeepsCurrent(t *testing.T) {
	rec := &recordingBackend{}
	withBackend(t, rec)

	SetBackend(nil)
	require.NoError(t, Flush())
	assert.Equal(t, 1, rec.flushed)
}

func TestNopBackendIsSafe(t *testing.T) {
	withBackend(t, nopBackend{})
	RecordStep("j", "s", nil, time.Second)
	RecordRows("j", "k", 1)
	assert.NoError(t, Flush())
}
