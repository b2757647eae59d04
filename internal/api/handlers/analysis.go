package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ramonehamilton/edh-power/internal/api/response"
	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
)

// DeckAnalyzer runs the power analysis for a deck URL.
type DeckAnalyzer interface {
	Analyze(ctx context.Context, deckURL string) (*analysis.DeckAnalysis, error)
}

// AnalysisHandler handles deck analysis requests.
type AnalysisHandler struct {
	analyzer DeckAnalyzer
	logger   *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzer DeckAnalyzer, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{analyzer: analyzer, logger: logger}
}

// AnalyzeRequest is the body accepted by POST /analyze.
type AnalyzeRequest struct {
	URL    string `json:"url"`
	Format string `json:"format,omitempty"`
}

// GetAnalysis analyzes the deck named by the url query parameter.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.respond(w, r, q.Get("url"), q.Get("format"))
}

// PostAnalysis analyzes the deck named in a JSON body.
func (h *AnalysisHandler) PostAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	h.respond(w, r, req.URL, req.Format)
}

func (h *AnalysisHandler) respond(w http.ResponseWriter, r *http.Request, deckURL, format string) {
	deckURL = strings.TrimSpace(deckURL)
	if deckURL == "" {
		response.BadRequest(w, errors.New("deck url is required"))
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), deckURL)
	if err != nil {
		switch {
		case analysis.IsInputError(err):
			response.BadRequest(w, err)
		case analysis.IsUpstreamError(err):
			response.BadGateway(w, err)
		default:
			h.logger.Error("analysis failed", zap.String("url", deckURL), zap.Error(err))
			response.InternalError(w, err)
		}
		return
	}

	if strings.EqualFold(format, "text") {
		response.Text(w, http.StatusOK, analysis.Format(*result))
		return
	}
	response.Success(w, result)
}
