package scryfall

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
)

// Card represents a Magic card from Scryfall. Only the fields the deck
// analyzer reads are decoded.
type Card struct {
	ID       string `json:"id"`
	OracleID string `json:"oracle_id"`

	Name          string   `json:"name"`
	Layout        string   `json:"layout"`
	ManaCost      string   `json:"mana_cost,omitempty"`
	CMC           float64  `json:"cmc"`
	TypeLine      string   `json:"type_line"`
	OracleText    string   `json:"oracle_text,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	ColorIdentity []string `json:"color_identity"`
	Keywords      []string `json:"keywords,omitempty"`
	ProducedMana  []string `json:"produced_mana,omitempty"`

	// Card faces (for DFCs, MDFCs, split cards)
	CardFaces []CardFace `json:"card_faces,omitempty"`

	Legalities map[string]string `json:"legalities"`
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name       string   `json:"name"`
	ManaCost   string   `json:"mana_cost,omitempty"`
	TypeLine   string   `json:"type_line"`
	OracleText string   `json:"oracle_text,omitempty"`
	Colors     []string `json:"colors,omitempty"`
}

// ToCard converts a Scryfall card into the analyzer's card shape.
// Multi-faced cards without top-level rules text get the faces' text joined
// with "//", matching how Scryfall prints them.
func (c Card) ToCard() cards.Card {
	out := cards.Card{
		ID:            c.ID,
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

	if len(c.CardFaces) > 0 {
		if out.OracleText == "" {
			out.OracleText = joinFaces(c.CardFaces, func(f CardFace) string { return f.OracleText })
		}
		if out.ManaCost == "" {
			out.ManaCost = joinFaces(c.CardFaces, func(f CardFace) string { return f.ManaCost })
		}
		if len(out.Colors) == 0 {
			out.Colors = c.CardFaces[0].Colors
		}
	}

	return out
}

func joinFaces(faces []CardFace, field func(CardFace) string) string {
	parts := make([]string, 0, len(faces))
	for _, f := range faces {
		if v := field(f); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n//\n")
}

// ToCards converts a slice of Scryfall cards.
func ToCards(in []Card) []cards.Card {
	out := make([]cards.Card, len(in))
	for i, c := range in {
		out[i] = c.ToCard()
	}
	return out
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Object   string   `json:"object"`
	Code     string   `json:"code"`
	Status   int      `json:"status"`
	Details  string   `json:"details"`
	Type     string   `json:"type,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError represents a 404 error from the API.
type NotFoundError struct {
	URL string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound returns true if the error is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRateLimited reports whether the API answered 429.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 429
}
