// Package models holds the persisted player survey records.
package models

import "time"

// User is a player who submitted a deck and a self-assessment.
type User struct {
	ID               int64     `json:"id"`
	PlayerName       string    `json:"playerName"`
	PasswordHash     *string   `json:"-"` // Nullable
	PlayerExperience int       `json:"playerExperience"`
	OverallScore     float64   `json:"overallScore"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`

	// Loaded by the service, not stored on the users row.
	Decks  []*Deck `json:"decks,omitempty"`
	Answer *Answer `json:"answer,omitempty"`
}

// Deck is a deck a user submitted for rating.
type Deck struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	DeckImport       bool      `json:"deckImport"`
	DeckURL          string    `json:"deckUrl"`
	DeckName         *string   `json:"deckName,omitempty"` // Nullable
	Commander        string    `json:"commander"`
	PartnerCommander string    `json:"partnerCommander"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Answer is a user's self-assessment, one score per question.
type Answer struct {
	ID               int64 `json:"id"`
	UserID           int64 `json:"userId"`
	TheList          int   `json:"theList"`
	Manabase         int   `json:"manabase"`
	Strategy         int   `json:"strategy"`
	WinCondition     int   `json:"winCondition"`
	Speed            int   `json:"speed"`
	Consistency      int   `json:"consistency"`
	BuildPhilosophy  int   `json:"buildPhilosophy"`
	PlayerGoal       int   `json:"playerGoal"`
	CommanderStaples int   `json:"commanderStaples"`
	WinArchetype     int   `json:"winArchetype"`
	Active           bool  `json:"active"`
}

// Scores returns the answers in question order.
func (a *Answer) Scores() []int {
	return []int{
		a.TheList, a.Manabase, a.Strategy, a.WinCondition, a.Speed,
		a.Consistency, a.BuildPhilosophy, a.PlayerGoal, a.CommanderStaples, a.WinArchetype,
	}
}
