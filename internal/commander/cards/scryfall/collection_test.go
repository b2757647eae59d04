package scryfall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return NewClient(WithBaseURL(url), WithRateLimit(0))
}

func TestNewClient(t *testing.T) {
	client := NewClient()

	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
	if client.rateLimiter == nil {
		t.Error("rateLimiter is nil")
	}
	if client.userAgent == "" {
		t.Error("userAgent is empty")
	}
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}

	custom := NewClient(WithBaseURL("http://localhost:9999/"), WithUserAgent("test-agent"))
	if custom.BaseURL() != "http://localhost:9999" {
		t.Errorf("trailing slash should be trimmed, got %q", custom.BaseURL())
	}
	if custom.userAgent != "test-agent" {
		t.Errorf("userAgent = %q", custom.userAgent)
	}
}

func TestClient_FetchCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if r.URL.Path != "/cards/collection" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		var req CollectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		for _, id := range req.Identifiers {
			if id.Name == "" {
				t.Error("Expected name-based identifiers")
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"not_found": [{"name": "Nonexistent Card"}],
			"data": [
				{"id": "id1", "name": "Sol Ring", "cmc": 1, "type_line": "Artifact",
				 "oracle_text": "{T}: Add {C}{C}.", "color_identity": [], "produced_mana": ["C"],
				 "legalities": {"commander": "legal"}},
				{"id": "id2", "name": "Counterspell", "cmc": 2, "type_line": "Instant",
				 "oracle_text": "Counter target spell.", "mana_cost": "{U}{U}", "colors": ["U"], "color_identity": ["U"]}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	found, notFound, err := client.FetchCollection(context.Background(), []string{"Sol Ring", "Counterspell", "Nonexistent Card"})
	if err != nil {
		t.Fatalf("FetchCollection() error = %v", err)
	}

	if len(found) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(found))
	}
	if found[0].ProducedMana[0] != "C" {
		t.Errorf("produced_mana not decoded: %v", found[0].ProducedMana)
	}
	if found[0].Legalities["commander"] != "legal" {
		t.Errorf("legalities not decoded: %v", found[0].Legalities)
	}
	if len(notFound) != 1 || notFound[0] != "Nonexistent Card" {
		t.Errorf("notFound = %v", notFound)
	}
}

func TestClient_FetchCollection_EmptyInput(t *testing.T) {
	client := NewClient()

	found, notFound, err := client.FetchCollection(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error for empty input, got: %v", err)
	}
	if len(found) != 0 || len(notFound) != 0 {
		t.Errorf("Expected empty results, got %d/%d", len(found), len(notFound))
	}
}

func TestClient_FetchCollection_OversizedBatch(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	names := make([]string, MaxBatchSize+1)
	for i := range names {
		names[i] = "Card"
	}

	_, _, err := newTestClient(server.URL).FetchCollection(context.Background(), names)
	if err == nil {
		t.Fatal("Expected error for oversized batch")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("oversized batch must not reach the server")
	}
}

func TestClient_FetchCollection_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		check     func(error) bool
		checkName string
	}{
		{
			name:      "rate limited",
			status:    http.StatusTooManyRequests,
			body:      `{"object":"error","code":"rate_limit","status":429,"details":"slow down"}`,
			check:     IsRateLimited,
			checkName: "IsRateLimited",
		},
		{
			name:      "not found",
			status:    http.StatusNotFound,
			body:      `{}`,
			check:     IsNotFound,
			checkName: "IsNotFound",
		},
		{
			name:   "plain server error",
			status: http.StatusInternalServerError,
			body:   `oops`,
			check: func(err error) bool {
				return strings.Contains(err.Error(), "status 500")
			},
			checkName: "status in message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, _, err := newTestClient(server.URL).FetchCollection(context.Background(), []string{"Sol Ring"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("%s(%v) = false", tt.checkName, err)
			}
		})
	}
}

func TestClient_FetchCollection_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{invalid json}`))
	}))
	defer server.Close()

	if _, _, err := newTestClient(server.URL).FetchCollection(context.Background(), []string{"Sol Ring"}); err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
}

func TestClient_RateLimiting(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRateLimit(50*time.Millisecond))

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, _, err := client.FetchCollection(context.Background(), []string{"Sol Ring"}); err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
	}
	elapsed := time.Since(start)

	if atomic.LoadInt32(&requestCount) != 3 {
		t.Errorf("Expected 3 requests, got %d", requestCount)
	}

	// 2 gaps of 50ms between 3 requests
	if minDuration := 100 * time.Millisecond; elapsed < minDuration {
		t.Errorf("Rate limiting not working: completed 3 requests in %v (expected >= %v)", elapsed, minDuration)
	}
}

func TestClient_FetchBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"id":"abc","name":"Delver of Secrets // Insectile Aberration","type_line":"Creature — Human Wizard // Creature — Human Insect","cmc":1,
			 "card_faces":[
				{"name":"Delver of Secrets","mana_cost":"{U}","type_line":"Creature — Human Wizard","oracle_text":"At the beginning of your upkeep, look at the top card of your library.","colors":["U"]},
				{"name":"Insectile Aberration","type_line":"Creature — Human Insect","oracle_text":"Flying","colors":["U"]}
			 ]}
		]}`))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).FetchBatch(context.Background(), []string{"Delver of Secrets // Insectile Aberration"})
	if err != nil {
		t.Fatalf("FetchBatch() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("FetchBatch() returned %d cards", len(got))
	}

	card := got[0]
	if !strings.Contains(card.OracleText, "upkeep") || !strings.Contains(card.OracleText, "Flying") {
		t.Errorf("face text not joined: %q", card.OracleText)
	}
	if card.ManaCost != "{U}" {
		t.Errorf("ManaCost = %q, want {U}", card.ManaCost)
	}
	if len(card.Colors) != 1 || card.Colors[0] != "U" {
		t.Errorf("Colors = %v, want [U]", card.Colors)
	}
	if card.IsCommander {
		t.Error("database cards never carry the commander flag")
	}
}

func TestMaxBatchSize(t *testing.T) {
	if MaxBatchSize != 75 {
		t.Errorf("Expected MaxBatchSize to be 75, got %d", MaxBatchSize)
	}
}
