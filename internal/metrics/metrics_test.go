package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestHistogram_Snapshot(t *testing.T) {
	h := NewHistogram(100)
	for i := 1; i <= 5; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	s := h.Snapshot()
	if s.Count != 5 {
		t.Errorf("Count = %d, want 5", s.Count)
	}
	if s.Mean != 3 {
		t.Errorf("Mean = %v, want 3", s.Mean)
	}
	if s.P50 != 3 {
		t.Errorf("P50 = %v, want 3", s.P50)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Min/Max = %v/%v, want 1/5", s.Min, s.Max)
	}
	if got := h.Percentile(75); got != 4 {
		t.Errorf("Percentile(75) = %v, want 4", got)
	}
}

func TestHistogram_Empty(t *testing.T) {
	h := NewHistogram(0)
	if s := h.Snapshot(); s != (LatencyStats{}) {
		t.Errorf("empty snapshot = %+v", s)
	}
	if h.Percentile(99) != 0 {
		t.Error("empty percentile should be 0")
	}
}

func TestHistogram_Trims(t *testing.T) {
	h := NewHistogram(10)
	for i := 0; i < 11; i++ {
		h.Record(time.Millisecond)
	}
	if h.Count() != 9 {
		t.Errorf("Count = %d, want 9 after dropping the oldest fifth", h.Count())
	}
}

func TestAnalysisMetrics(t *testing.T) {
	m := NewAnalysisMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.RecordFetch(10 * time.Millisecond)
			m.RecordResolve(20*time.Millisecond, 2, i%2)
			m.RecordSuccess(50*time.Millisecond, 3)
		}(i)
	}
	wg.Wait()
	m.RecordFailure(true)
	m.RecordFailure(false)
	m.RecordSuccess(time.Millisecond, 9) // out of range, not bucketed

	s := m.GetStats()
	if s.Analyses != 11 {
		t.Errorf("Analyses = %d, want 11", s.Analyses)
	}
	if s.Failures != 2 || s.InputErrors != 1 {
		t.Errorf("Failures/InputErrors = %d/%d, want 2/1", s.Failures, s.InputErrors)
	}
	if s.BatchesIssued != 20 || s.BatchesFailed != 5 {
		t.Errorf("batches = %d issued / %d failed, want 20/5", s.BatchesIssued, s.BatchesFailed)
	}
	if s.DegradedReports != 5 {
		t.Errorf("DegradedReports = %d, want 5", s.DegradedReports)
	}
	if s.BatchErrorRate != 25 {
		t.Errorf("BatchErrorRate = %v, want 25", s.BatchErrorRate)
	}
	if s.Brackets[3] != 10 || s.Brackets[1] != 0 {
		t.Errorf("Brackets = %v", s.Brackets)
	}
	if s.FetchLatency.Count != 10 {
		t.Errorf("FetchLatency.Count = %d", s.FetchLatency.Count)
	}

	m.Reset()
	if s := m.GetStats(); s.Analyses != 0 || s.EndToEndLatency.Count != 0 || s.Brackets[3] != 0 {
		t.Errorf("Reset did not clear: %+v", s)
	}
}
