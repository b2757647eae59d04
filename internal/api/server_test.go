package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
	"github.com/ramonehamilton/edh-power/internal/metrics"
)

type fakeAnalyzer struct{}

func (fakeAnalyzer) Analyze(_ context.Context, _ string) (*analysis.DeckAnalysis, error) {
	return &analysis.DeckAnalysis{BracketLevel: taxonomy.BracketCore, BracketName: "Core", CombinedScore: 2}, nil
}

func newTestServer() *Server {
	return NewServer(nil, Dependencies{Analyzer: fakeAnalyzer{}, Stats: metrics.NewAnalysisMetrics()}, nil)
}

func TestNewServer(t *testing.T) {
	cfg := DefaultConfig()
	server := NewServer(cfg, Dependencies{}, nil)

	if server == nil {
		t.Fatal("NewServer returned nil")
	}
	if server.Port() != cfg.Port {
		t.Errorf("Expected port %d, got %d", cfg.Port, server.Port())
	}
}

func TestNewServer_NilConfig(t *testing.T) {
	server := NewServer(nil, Dependencies{}, nil)

	if server.Port() != 3000 {
		t.Errorf("Expected default port 3000, got %d", server.Port())
	}
	if server.requestTimeout != 60*time.Second {
		t.Errorf("Expected default timeout 60s, got %v", server.requestTimeout)
	}
}

func TestServer_Routes(t *testing.T) {
	server := newTestServer()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"health", http.MethodGet, "/health", http.StatusOK, "healthy"},
		{"analyze", http.MethodGet, "/api/v1/analyze?url=https://moxfield.com/decks/x", http.StatusOK, `"bracketLevel":2`},
		{"analyze text", http.MethodGet, "/api/v1/analyze?url=https://moxfield.com/decks/x&format=text", http.StatusOK, "Bracket: 2 - Core"},
		{"analyze missing url", http.MethodGet, "/api/v1/analyze", http.StatusBadRequest, "deck url is required"},
		{"metrics", http.MethodGet, "/api/v1/metrics", http.StatusOK, "batch_error_rate"},
		{"users without storage", http.MethodGet, "/api/v1/users/1", http.StatusServiceUnavailable, "storage"},
		{"system status", http.MethodGet, "/api/v1/system/status", http.StatusOK, `"storage":false`},
		{"unknown", http.MethodGet, "/api/v1/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("Expected body to contain %q, got %s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestServer_JSONContentType(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"url":"x"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("Expected status %d, got %d", http.StatusUnsupportedMediaType, w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"url":"https://moxfield.com/decks/x"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestServer_CORS(t *testing.T) {
	server := newTestServer()

	tests := []struct {
		origin     string
		wantHeader string
	}{
		{"http://localhost:4200", "http://localhost:4200"},
		{"https://app.omenpro.com", "https://app.omenpro.com"},
		{"https://evil.example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Expected Access-Control-Allow-Origin %q, got %q", tt.wantHeader, got)
			}
		})
	}

	// No Origin header at all.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected request without origin to pass, got %d", w.Code)
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	server := newTestServer()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- server.Serve(l) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + l.Addr().String() + "/health")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("Server did not respond: %v", err)
	}
	var body map[string]map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	_ = resp.Body.Close()
	if body["data"]["status"] != "healthy" {
		t.Errorf("Expected healthy, got %v", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Serve returned %v after shutdown", err)
	}
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	if err := newTestServer().Shutdown(context.Background()); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}
