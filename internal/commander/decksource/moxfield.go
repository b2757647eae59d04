package decksource

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
)

// DefaultMoxfieldBaseURL is the Moxfield public API root.
const DefaultMoxfieldBaseURL = "https://api.moxfield.com"

// MoxfieldClient fetches decks from Moxfield.
type MoxfieldClient struct {
	httpSource
}

// NewMoxfieldClient creates a new Moxfield API client.
func NewMoxfieldClient(opts ...Option) *MoxfieldClient {
	return &MoxfieldClient{httpSource: newHTTPSource(SiteMoxfield, DefaultMoxfieldBaseURL, opts)}
}

// MoxfieldDeck is the subset of the v2 deck document the analyzer reads.
type MoxfieldDeck struct {
	ID         string                   `json:"publicId"`
	Name       string                   `json:"name"`
	Format     string                   `json:"format"`
	Commanders map[string]MoxfieldEntry `json:"commanders"`
	Mainboard  map[string]MoxfieldEntry `json:"mainboard"`
}

// MoxfieldEntry is one board slot: a card and how many copies are in it.
type MoxfieldEntry struct {
	Quantity int          `json:"quantity"`
	Card     MoxfieldCard `json:"card"`
}

// MoxfieldCard is Moxfield's embedded card object, which mirrors Scryfall's
// field names.
type MoxfieldCard struct {
	ScryfallID    string            `json:"scryfall_id"`
	Name          string            `json:"name"`
	TypeLine      string            `json:"type_line"`
	OracleText    string            `json:"oracle_text"`
	ManaCost      string            `json:"mana_cost"`
	CMC           float64           `json:"cmc"`
	Colors        []string          `json:"colors"`
	ColorIdentity []string          `json:"color_identity"`
	Keywords      []string          `json:"keywords"`
	ProducedMana  []string          `json:"produced_mana"`
	Legalities    map[string]string `json:"legalities"`
}

// Site implements Fetcher.
func (c *MoxfieldClient) Site() Site { return SiteMoxfield }

// GetDeck fetches the raw deck document.
func (c *MoxfieldClient) GetDeck(ctx context.Context, deckID string) (*MoxfieldDeck, error) {
	u := fmt.Sprintf("%s/v2/decks/all/%s", c.baseURL, url.PathEscape(deckID))

	var deck MoxfieldDeck
	if err := c.getJSON(ctx, deckID, u, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// FetchDeck implements Fetcher.
func (c *MoxfieldClient) FetchDeck(ctx context.Context, deckID string) (*Deck, error) {
	raw, err := c.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	deck := raw.ToDeck()
	deck.ID = deckID
	return deck, nil
}

// ToDeck normalizes the document. Mainboard entries that share a name with a
// commander are skipped, and quantities expand into repeated cards. Map keys
// are visited in sorted order so the output is stable.
func (d *MoxfieldDeck) ToDeck() *Deck {
	deck := &Deck{Site: SiteMoxfield, ID: d.ID, Name: d.Name}

	commanderNames := make(map[string]bool, len(d.Commanders))
	for _, key := range sortedKeys(d.Commanders) {
		card := d.Commanders[key].Card.toCard(key)
		card.IsCommander = true
		commanderNames[card.Name] = true
		deck.Commanders = append(deck.Commanders, card)
	}

	for _, key := range sortedKeys(d.Mainboard) {
		entry := d.Mainboard[key]
		if commanderNames[entry.Card.Name] {
			continue
		}
		deck.Cards = append(deck.Cards, cards.Repeat(entry.Card.toCard(key), entry.Quantity)...)
	}

	return deck
}

func (c MoxfieldCard) toCard(fallbackID string) cards.Card {
	id := c.ScryfallID
	if id == "" {
		id = fallbackID
	}
	return cards.Card{
		ID:            id,
		Name:          c.Name,
		TypeLine:      c.TypeLine,
		OracleText:    c.OracleText,
		ManaCost:      c.ManaCost,
		CMC:           c.CMC,
		Colors:        c.Colors,
		ColorIdentity: c.ColorIdentity,
		Keywords:      c.Keywords,
		ProducedMana:  c.ProducedMana,
		Legalities:    c.Legalities,
	}
}

func sortedKeys(m map[string]MoxfieldEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
