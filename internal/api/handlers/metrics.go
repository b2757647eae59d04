package handlers

import (
	"net/http"

	"github.com/ramonehamilton/edh-power/internal/api/response"
	"github.com/ramonehamilton/edh-power/internal/metrics"
)

// StatsSource exposes aggregated analysis metrics.
type StatsSource interface {
	GetStats() *metrics.AnalysisStats
}

// MetricsHandler serves pipeline metrics.
type MetricsHandler struct {
	source StatsSource
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(source StatsSource) *MetricsHandler {
	return &MetricsHandler{source: source}
}

// GetMetrics returns latency, throughput and bracket distribution.
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.source.GetStats())
}
