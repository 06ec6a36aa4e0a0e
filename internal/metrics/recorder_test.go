package metrics

import (
	"sync"
	"time"
)

// testRecorder counts calls; other packages have their own copy where needed.
type testRecorder struct {
	mu               sync.Mutex
	stageDurations   map[string]int
	stageResults     map[string]map[ResultLabel]int
	conversions      int
	conversionResult map[OutcomeLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations:   map[string]int{},
		stageResults:     map[string]map[ResultLabel]int{},
		conversionResult: map[OutcomeLabel]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stageDurations[stage]++
}

func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}

func (t *testRecorder) ObserveConversionDuration(string, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conversions++
}

func (t *testRecorder) IncConversionOutcome(outcome OutcomeLabel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conversionResult[outcome]++
}

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = newTestRecorder()
)
