// Package cards defines the deck-source-agnostic card shape and the
// heuristics that tag each card with functional categories.
package cards

import "strings"

// Card is the common card shape every deck source and the card database map
// into. A deck is a multiset: N copies of a card are N separate Card values.
type Card struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	TypeLine      string            `json:"type_line"`
	OracleText    string            `json:"oracle_text,omitempty"`
	ManaCost      string            `json:"mana_cost,omitempty"`
	CMC           float64           `json:"cmc"`
	Colors        []string          `json:"colors,omitempty"`
	ColorIdentity []string          `json:"color_identity"`
	Keywords      []string          `json:"keywords,omitempty"`
	ProducedMana  []string          `json:"produced_mana,omitempty"`
	Legalities    map[string]string `json:"legalities,omitempty"`
	IsCommander   bool              `json:"is_commander,omitempty"`
	Score         *float64          `json:"score,omitempty"`
}

// IsLand reports whether the type line contains "land" anywhere, which also
// covers "Artifact Land" and "Land Creature".
func (c Card) IsLand() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "land")
}

// HasOracleText reports whether rules text is present.
func (c Card) HasOracleText() bool {
	return c.OracleText != ""
}

// Repeat returns n copies of c. Slices and maps are shared between copies;
// they are treated as read-only once a card is built.
func Repeat(c Card, n int) []Card {
	if n <= 0 {
		return nil
	}
	out := make([]Card, n)
	for i := range out {
		out[i] = c
	}
	return out
}

// Names returns the name of every card in order, duplicates included.
func Names(cs []Card) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

// UniqueNames returns each distinct name once, in first-seen order.
func UniqueNames(groups ...[]Card) []string {
	seen := make(map[string]bool)
	var names []string
	for _, group := range groups {
		for _, c := range group {
			if c.Name == "" || seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}
	return names
}

// Categorized is a card paired with the category tags derived from it.
type Categorized struct {
	Card
	Categories Tags `json:"categories"`
}

// Has reports whether the card carries the category.
func (c Categorized) Has(cat Category) bool {
	return c.Categories.Has(cat)
}
