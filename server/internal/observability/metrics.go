package observability

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics aggregates chat turns for the process lifetime. It is transport
// bookkeeping only; the decision pipeline never reads it.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	byIntent map[string]int64
	bySource map[string]int64

	// Last maxDurations latencies, oldest first.
	durations    []time.Duration
	maxDurations int
}

// NewMetrics creates a new metrics collector.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000 // Default to keeping last 1000 durations
	}
	return &Metrics{
		byIntent:     make(map[string]int64),
		bySource:     make(map[string]int64),
		durations:    make([]time.Duration, 0, maxDurations),
		maxDurations: maxDurations,
	}
}

// RecordTurn records one processed chat turn.
func (m *Metrics) RecordTurn(intent, source string, duration time.Duration) {
	m.requestTotal.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byIntent[intent]++
	m.bySource[source]++
	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
}

// RecordFailure records a rejected request.
func (m *Metrics) RecordFailure() {
	m.requestTotal.Add(1)
	m.requestFailed.Add(1)
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)

	m.mu.Lock()
	m.byIntent = make(map[string]int64)
	m.bySource = make(map[string]int64)
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.mu.Unlock()
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal  int64            `json:"total_requests"`
	RequestFailed int64            `json:"failed_requests"`
	SuccessRate   float64          `json:"success_rate"`
	AvgLatencyMs  int64            `json:"avg_latency_ms"`
	P95LatencyMs  int64            `json:"p95_latency_ms"`
	ByIntent      map[string]int64 `json:"by_intent"`
	BySource      map[string]int64 `json:"by_source"`
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	byIntent := make(map[string]int64, len(m.byIntent))
	for k, v := range m.byIntent {
		byIntent[k] = v
	}
	bySource := make(map[string]int64, len(m.bySource))
	for k, v := range m.bySource {
		bySource[k] = v
	}
	durations := slices.Clone(m.durations)
	m.mu.Unlock()

	s := &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		ByIntent:      byIntent,
		BySource:      bySource,
	}
	s.SuccessRate = successRate(s.RequestTotal, s.RequestFailed)

	if len(durations) > 0 {
		var total time.Duration
		for _, d := range durations {
			total += d
		}
		s.AvgLatencyMs = (total / time.Duration(len(durations))).Milliseconds()
		slices.Sort(durations)
		s.P95LatencyMs = durations[(len(durations)*95+99)/100-1].Milliseconds()
	}
	return s
}

// successRate returns the success rate as a percentage (0-100).
func successRate(total, failed int64) float64 {
	if total == 0 {
		return 100.0
	}
	return float64(total-failed) / float64(total) * 100.0
}
