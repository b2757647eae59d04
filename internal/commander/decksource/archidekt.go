package decksource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
)

// DefaultArchidektBaseURL is the Archidekt API root.
const DefaultArchidektBaseURL = "https://archidekt.com/api"

const (
	archidektCommander  = "Commander"
	archidektSideboard  = "Sideboard"
	archidektMaybeboard = "Maybeboard"
)

// ArchidektClient fetches decks from Archidekt.
type ArchidektClient struct {
	httpSource
}

// NewArchidektClient creates a new Archidekt API client.
func NewArchidektClient(opts ...Option) *ArchidektClient {
	return &ArchidektClient{httpSource: newHTTPSource(SiteArchidekt, DefaultArchidektBaseURL, opts)}
}

// ArchidektDeck represents a deck from Archidekt.
type ArchidektDeck struct {
	ID         int                  `json:"id"`
	Name       string               `json:"name"`
	DeckFormat int                  `json:"deckFormat"`
	Categories []*ArchidektCategory `json:"categories"`
	Cards      []*ArchidektDeckCard `json:"cards"`
}

// ArchidektCategory represents a deck category (e.g., "Commander", "Lands").
type ArchidektCategory struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	IsPremier      bool   `json:"isPremier"`
	IncludedInDeck bool   `json:"includedInDeck"`
}

// ArchidektDeckCard represents a card in an Archidekt deck.
type ArchidektDeckCard struct {
	ID         int            `json:"id"`
	Categories []string       `json:"categories"`
	Quantity   int            `json:"quantity"`
	Card       *ArchidektCard `json:"card"`
}

// ArchidektCard represents card metadata from Archidekt.
type ArchidektCard struct {
	ID            int                  `json:"id"`
	UID           string               `json:"uid"`
	ColorIdentity []string             `json:"colorIdentity"`
	OracleCard    *ArchidektOracleCard `json:"oracleCard"`
}

// ArchidektOracleCard represents the oracle (canonical) card data. Archidekt
// has served rules text and type line under two spellings over time, so both
// are decoded.
type ArchidektOracleCard struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	CMC           float64           `json:"cmc"`
	ColorIdentity []string          `json:"colorIdentity"`
	Colors        []string          `json:"colors"`
	ManaCost      string            `json:"manaCost"`
	OracleText    string            `json:"oracleText"`
	Text          string            `json:"text"`
	TypeLine      string            `json:"typeLine"`
	Type          string            `json:"type"`
	Keywords      []string          `json:"keywords"`
	Legalities    map[string]string `json:"legalities"`
}

// Site implements Fetcher.
func (c *ArchidektClient) Site() Site { return SiteArchidekt }

// GetDeck fetches the raw deck document.
func (c *ArchidektClient) GetDeck(ctx context.Context, deckID string) (*ArchidektDeck, error) {
	u := fmt.Sprintf("%s/decks/%s/", c.baseURL, url.PathEscape(deckID))

	var deck ArchidektDeck
	if err := c.getJSON(ctx, deckID, u, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// FetchDeck implements Fetcher.
func (c *ArchidektClient) FetchDeck(ctx context.Context, deckID string) (*Deck, error) {
	raw, err := c.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	deck := raw.ToDeck()
	deck.ID = deckID
	return deck, nil
}

// ToDeck normalizes the document. Cards in the Commander category become
// commanders (one instance each). Sideboard, Maybeboard and any category the
// deck marks as not included are dropped; the rest expand by quantity.
func (d *ArchidektDeck) ToDeck() *Deck {
	deck := &Deck{Site: SiteArchidekt, ID: fmt.Sprint(d.ID), Name: d.Name}

	excluded := map[string]bool{archidektSideboard: true, archidektMaybeboard: true}
	for _, cat := range d.Categories {
		if cat != nil && !cat.IncludedInDeck && cat.Name != archidektCommander {
			excluded[cat.Name] = true
		}
	}

	for _, entry := range d.Cards {
		if entry == nil || entry.Card == nil || entry.Card.OracleCard == nil {
			continue
		}
		card := entry.Card.toCard()

		switch {
		case containsString(entry.Categories, archidektCommander):
			card.IsCommander = true
			deck.Commanders = append(deck.Commanders, card)
		case anyExcluded(entry.Categories, excluded):
			continue
		default:
			deck.Cards = append(deck.Cards, cards.Repeat(card, entry.Quantity)...)
		}
	}

	return deck
}

func (c *ArchidektCard) toCard() cards.Card {
	oc := c.OracleCard
	identity := c.ColorIdentity
	if len(identity) == 0 {
		identity = oc.ColorIdentity
	}
	return cards.Card{
		ID:            c.UID,
		Name:          oc.Name,
		TypeLine:      firstNonEmpty(oc.TypeLine, oc.Type),
		OracleText:    firstNonEmpty(oc.OracleText, oc.Text),
		ManaCost:      oc.ManaCost,
		CMC:           oc.CMC,
		Colors:        colorLetters(oc.Colors),
		ColorIdentity: colorLetters(identity),
		Keywords:      oc.Keywords,
		Legalities:    oc.Legalities,
	}
}

// archidektColors maps Archidekt's color names to mana letters.
var archidektColors = map[string]string{
	"white":     "W",
	"blue":      "U",
	"black":     "B",
	"red":       "R",
	"green":     "G",
	"colorless": "C",
}

// colorLetters converts color names to WUBRG letters. Values that are
// already letters pass through unchanged.
func colorLetters(colors []string) []string {
	if colors == nil {
		return nil
	}
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		if letter, ok := archidektColors[strings.ToLower(strings.TrimSpace(c))]; ok {
			out = append(out, letter)
			continue
		}
		out = append(out, strings.ToUpper(c))
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func anyExcluded(categories []string, excluded map[string]bool) bool {
	for _, c := range categories {
		if excluded[c] {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
