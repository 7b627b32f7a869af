package logger

import (
	"maps"
	"sync"
	"time"
)

// timing aggregates the durations recorded under one name
type timing struct {
	count    int
	total    time.Duration
	min, max time.Duration
}

func (t *timing) add(d time.Duration) {
	if t.count == 0 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
	t.count++
	t.total += d
}

func (t timing) summary() map[string]interface{} {
	return map[string]interface{}{
		"count":   t.count,
		"total":   t.total.String(),
		"average": (t.total / time.Duration(t.count)).String(),
		"min":     t.min.String(),
		"max":     t.max.String(),
	}
}

// Metrics collects the counters, gauges and timings of one run
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string]*timing
}

var defaultMetrics = NewMetrics()

func NewMetrics() *Metrics {
	m := &Metrics{}
	m.Reset()
	return m
}

func (m *Metrics) IncrCounter(name string) {
	m.AddCounter(name, 1)
}

func (m *Metrics) AddCounter(name string, delta int64) {
	m.mu.Lock()
	m.counters[name] += delta
	m.mu.Unlock()
}

func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	m.gauges[name] = value
	m.mu.Unlock()
}

func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.timings[name]
	if !ok {
		t = &timing{}
		m.timings[name] = t
	}
	t.add(d)
}

// GetSnapshot copies the current values under the keys "counters",
// "gauges" and "timings". Each timing is summarised as count, total,
// average, min and max.
func (m *Metrics) GetSnapshot() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	timings := make(map[string]map[string]interface{}, len(m.timings))
	for name, t := range m.timings {
		timings[name] = t.summary()
	}

	return map[string]interface{}{
		"counters": maps.Clone(m.counters),
		"gauges":   maps.Clone(m.gauges),
		"timings":  timings,
	}
}

// Reset drops everything recorded so far
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = map[string]int64{}
	m.gauges = map[string]float64{}
	m.timings = map[string]*timing{}
}

// The functions below record on the run-wide tracker

func IncrCounter(name string) { defaultMetrics.IncrCounter(name) }
func AddCounter(name string, delta int64) { defaultMetrics.AddCounter(name, delta) }
func SetGauge(name string, value float64) { defaultMetrics.SetGauge(name, value) }
func RecordTiming(name string, d time.Duration) { defaultMetrics.RecordTiming(name, d) }
func GetMetricsSnapshot() map[string]interface{} { return defaultMetrics.GetSnapshot() }
func ResetMetrics() { defaultMetrics.Reset() }
