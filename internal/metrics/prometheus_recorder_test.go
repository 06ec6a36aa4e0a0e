package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("markdown", 150*time.Millisecond)
	pr.IncStageResult("markdown", ResultSuccess)
	pr.ObserveConversionDuration("gfm", 500*time.Millisecond)
	pr.IncConversionOutcome(OutcomeSuccess)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"docdoc_stage_duration_seconds",
		"docdoc_stage_results_total",
		"docdoc_conversion_duration_seconds",
		"docdoc_conversion_outcomes_total",
	} {
		require.True(t, names[want], "missing %s", want)
	}
}

func TestPrometheusRecorder_NilRegistry(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	require.NotNil(t, pr.Registry())
	pr.IncConversionOutcome(OutcomeFailed)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("load", time.Second)
	pr.IncStageResult("load", ResultFailed)
	pr.ObserveConversionDuration("commonmark", time.Second)
	pr.IncConversionOutcome(OutcomeCanceled)
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncStageResult("write", ResultSuccess)
	pr.IncConversionOutcome(OutcomeSuccess)

	path := filepath.Join(t.TempDir(), "docdoc.prom")
	require.NoError(t, WriteTextfile(path, pr.Registry()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `docdoc_stage_results_total{result="success",stage="write"} 1`)
	require.Contains(t, string(data), `docdoc_conversion_outcomes_total{outcome="success"} 1`)
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), prom.NewRegistry())
	require.Error(t, err)
}
