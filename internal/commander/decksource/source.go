// Package decksource fetches Commander deck lists from deck-building sites
// and normalizes them into commanders plus a main card pool.
package decksource

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
)

// Site identifies a supported deck-hosting site.
type Site string

const (
	SiteMoxfield  Site = "moxfield"
	SiteArchidekt Site = "archidekt"
	SiteUnknown   Site = "unknown"
)

var (
	// ErrUnsupportedSite is returned for URLs that no registered source handles.
	ErrUnsupportedSite = errors.New("unsupported deck site")

	// ErrDeckIDNotFound is returned when the URL is on a known site but the
	// deck identifier cannot be extracted from it.
	ErrDeckIDNotFound = errors.New("could not extract deck ID from URL")
)

var (
	hostPatterns = []struct {
		host string
		site Site
	}{
		{"moxfield.com", SiteMoxfield},
		{"archidekt.com", SiteArchidekt},
	}

	deckIDPatterns = map[Site]*regexp.Regexp{
		SiteMoxfield:  regexp.MustCompile(`moxfield\.com/decks/([a-zA-Z0-9_-]+)`),
		SiteArchidekt: regexp.MustCompile(`archidekt\.com/decks/([0-9]+)`),
	}
)

// DetectSite classifies a deck URL by hostname.
func DetectSite(deckURL string) Site {
	for _, p := range hostPatterns {
		if strings.Contains(deckURL, p.host) {
			return p.site
		}
	}
	return SiteUnknown
}

// ExtractDeckID pulls the site-specific deck identifier out of a URL.
// ok is false when the URL does not carry one.
func ExtractDeckID(deckURL string, site Site) (string, bool) {
	pattern, known := deckIDPatterns[site]
	if !known {
		return "", false
	}
	m := pattern.FindStringSubmatch(deckURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Deck is a fetched deck list. Cards holds one entry per physical copy.
type Deck struct {
	Site       Site
	ID         string
	Name       string
	Commanders []cards.Card
	Cards      []cards.Card
}

// CommanderNames returns the commanders' names in listed order.
func (d *Deck) CommanderNames() []string {
	return cards.Names(d.Commanders)
}

// FetchError is a terminal failure talking to a deck host.
type FetchError struct {
	Site       Site
	DeckID     string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch deck %s from %s: HTTP %d: %v", e.DeckID, e.Site, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch deck %s from %s: %v", e.DeckID, e.Site, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves a deck from one site by identifier.
type Fetcher interface {
	Site() Site
	FetchDeck(ctx context.Context, deckID string) (*Deck, error)
}

// Registry dispatches deck URLs to the fetcher for their site.
type Registry struct {
	fetchers map[Site]Fetcher
}

// NewRegistry creates a registry from the given fetchers. A later fetcher for
// the same site replaces an earlier one.
func NewRegistry(fetchers ...Fetcher) *Registry {
	r := &Registry{fetchers: make(map[Site]Fetcher, len(fetchers))}
	for _, f := range fetchers {
		r.fetchers[f.Site()] = f
	}
	return r
}

// Sites lists the sites the registry can fetch from.
func (r *Registry) Sites() []Site {
	var sites []Site
	for _, p := range hostPatterns {
		if _, ok := r.fetchers[p.site]; ok {
			sites = append(sites, p.site)
		}
	}
	return sites
}

// Fetch resolves a deck URL to its site, extracts the deck ID and fetches the
// deck. Input problems return ErrUnsupportedSite or ErrDeckIDNotFound; host
// failures return a *FetchError.
func (r *Registry) Fetch(ctx context.Context, deckURL string) (*Deck, error) {
	site := DetectSite(deckURL)
	fetcher, ok := r.fetchers[site]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSite, deckURL)
	}

	deckID, ok := ExtractDeckID(deckURL, site)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDeckIDNotFound, deckURL)
	}

	deck, err := fetcher.FetchDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// IsInputError reports whether err was caused by the deck URL itself rather
// than by an upstream failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnsupportedSite) || errors.Is(err, ErrDeckIDNotFound)
}
