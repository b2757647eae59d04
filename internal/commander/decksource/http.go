package decksource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "edh-power/1.0"
	maxErrorBody     = 512
)

// httpSource holds the transport settings shared by the site clients.
type httpSource struct {
	site       Site
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a site client.
type Option func(*httpSource)

// WithBaseURL overrides the site's API root.
func WithBaseURL(u string) Option {
	return func(s *httpSource) {
		if u != "" {
			s.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *httpSource) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(s *httpSource) {
		if d > 0 {
			s.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *httpSource) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

func newHTTPSource(site Site, baseURL string, opts []Option) httpSource {
	s := httpSource{
		site:    site,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// getJSON performs one GET and decodes the body into v. Every failure is
// reported as a *FetchError.
func (s *httpSource) getJSON(ctx context.Context, deckID, url string, v interface{}) error {
	fail := func(status int, err error) error {
		return &FetchError{Site: s.site, DeckID: deckID, StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail(0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fail(resp.StatusCode, fmt.Errorf("%s: %s", http.StatusText(resp.StatusCode), strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to decode deck: %w", err))
	}
	return nil
}
