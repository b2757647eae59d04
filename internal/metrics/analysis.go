package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// maxBracket sizes the per-bracket counters; index 0 is unused.
const maxBracket = 5

// AnalysisMetrics tracks deck analysis throughput and latency.
type AnalysisMetrics struct {
	FetchLatency    *Histogram
	ResolveLatency  *Histogram
	EndToEndLatency *Histogram

	Analyses        atomic.Uint64
	Failures        atomic.Uint64
	InputErrors     atomic.Uint64
	BatchesIssued   atomic.Uint64
	BatchesFailed   atomic.Uint64
	DegradedReports atomic.Uint64

	brackets [maxBracket + 1]atomic.Uint64

	startTime time.Time
	mu        sync.RWMutex
}

// NewAnalysisMetrics creates a new metrics collector.
func NewAnalysisMetrics() *AnalysisMetrics {
	return &AnalysisMetrics{
		FetchLatency:    NewHistogram(defaultMaxSamples),
		ResolveLatency:  NewHistogram(defaultMaxSamples),
		EndToEndLatency: NewHistogram(defaultMaxSamples),
		startTime:       time.Now(),
	}
}

// RecordFetch records how long the deck host took.
func (m *AnalysisMetrics) RecordFetch(d time.Duration) {
	m.FetchLatency.Record(d)
}

// RecordResolve records one metadata resolution run.
func (m *AnalysisMetrics) RecordResolve(d time.Duration, batches, failed int) {
	m.ResolveLatency.Record(d)
	m.BatchesIssued.Add(uint64(batches))
	m.BatchesFailed.Add(uint64(failed))
	if failed > 0 {
		m.DegradedReports.Add(1)
	}
}

// RecordSuccess records a completed analysis and its bracket.
func (m *AnalysisMetrics) RecordSuccess(d time.Duration, bracket int) {
	m.EndToEndLatency.Record(d)
	m.Analyses.Add(1)
	if bracket >= 1 && bracket <= maxBracket {
		m.brackets[bracket].Add(1)
	}
}

// RecordFailure records a failed analysis. Input errors are counted apart
// from upstream failures.
func (m *AnalysisMetrics) RecordFailure(inputError bool) {
	m.Failures.Add(1)
	if inputError {
		m.InputErrors.Add(1)
	}
}

// AnalysisStats is a point-in-time snapshot of AnalysisMetrics.
type AnalysisStats struct {
	FetchLatency    LatencyStats `json:"fetch_latency"`
	ResolveLatency  LatencyStats `json:"resolve_latency"`
	EndToEndLatency LatencyStats `json:"end_to_end_latency"`

	Analyses        uint64         `json:"analyses"`
	Failures        uint64         `json:"failures"`
	InputErrors     uint64         `json:"input_errors"`
	BatchesIssued   uint64         `json:"batches_issued"`
	BatchesFailed   uint64         `json:"batches_failed"`
	DegradedReports uint64         `json:"degraded_reports"`
	BatchErrorRate  float64        `json:"batch_error_rate"` // percentage
	Brackets        map[int]uint64 `json:"brackets"`

	Uptime string `json:"uptime"`
}

// GetStats returns a snapshot of the current statistics.
func (m *AnalysisMetrics) GetStats() *AnalysisStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	issued := m.BatchesIssued.Load()
	failed := m.BatchesFailed.Load()

	errorRate := 0.0
	if issued > 0 {
		errorRate = float64(failed) / float64(issued) * 100
	}

	brackets := make(map[int]uint64, maxBracket)
	for level := 1; level <= maxBracket; level++ {
		brackets[level] = m.brackets[level].Load()
	}

	return &AnalysisStats{
		FetchLatency:    m.FetchLatency.Snapshot(),
		ResolveLatency:  m.ResolveLatency.Snapshot(),
		EndToEndLatency: m.EndToEndLatency.Snapshot(),
		Analyses:        m.Analyses.Load(),
		Failures:        m.Failures.Load(),
		InputErrors:     m.InputErrors.Load(),
		BatchesIssued:   issued,
		BatchesFailed:   failed,
		DegradedReports: m.DegradedReports.Load(),
		BatchErrorRate:  errorRate,
		Brackets:        brackets,
		Uptime:          time.Since(m.startTime).Round(time.Second).String(),
	}
}

// Reset clears all metrics.
func (m *AnalysisMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchLatency.Reset()
	m.ResolveLatency.Reset()
	m.EndToEndLatency.Reset()

	m.Analyses.Store(0)
	m.Failures.Store(0)
	m.InputErrors.Store(0)
	m.BatchesIssued.Store(0)
	m.BatchesFailed.Store(0)
	m.DegradedReports.Store(0)
	for i := range m.brackets {
		m.brackets[i].Store(0)
	}

	m.startTime = time.Now()
}
