package scryfall

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Scryfall API.
	DefaultBaseURL = "https://api.scryfall.com"

	rateLimitDelay   = 100 * time.Millisecond // 100ms between requests (10 req/sec)
	requestTimeout   = 30 * time.Second
	defaultUserAgent = "edh-power/1.0"
)

// Client represents a Scryfall API client with rate limiting.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit sets the minimum spacing between requests. Zero disables
// client-side limiting.
func WithRateLimit(every time.Duration) Option {
	return func(c *Client) {
		if every <= 0 {
			c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.rateLimiter = rate.NewLimiter(rate.Every(every), 1)
	}
}

// NewClient creates a new Scryfall API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// Rate limiter: 1 request per 100ms = 10 req/sec
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
