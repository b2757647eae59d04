// Package analysis runs the deck analysis pipeline and merges the salt score
// and the bracket cascade into one report.
package analysis

import (
	"github.com/ramonehamilton/edh-power/internal/commander/stats"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

// CategoryScores are 0-10 display scores, one per functional category.
type CategoryScores struct {
	Interaction  float64 `json:"interaction" yaml:"interaction"`
	Counterspell float64 `json:"counterspell" yaml:"counterspell"`
	Removal      float64 `json:"removal" yaml:"removal"`
	Stax         float64 `json:"stax" yaml:"stax"`
	Taxes        float64 `json:"taxes" yaml:"taxes"`
	Graveyard    float64 `json:"graveyard" yaml:"graveyard"`
	Recursion    float64 `json:"recursion" yaml:"recursion"`
	Combo        float64 `json:"combo" yaml:"combo"`
	Tutor        float64 `json:"tutor" yaml:"tutor"`
	Draw         float64 `json:"draw" yaml:"draw"`
	Ramp         float64 `json:"ramp" yaml:"ramp"`
	FastMana     float64 `json:"fast_mana" yaml:"fast_mana"`
}

// MetadataSummary describes the card database lookups made for a deck.
type MetadataSummary struct {
	Skipped       bool  `json:"skipped" yaml:"skipped"`
	Requested     int   `json:"requested" yaml:"requested"`
	Resolved      int   `json:"resolved" yaml:"resolved"`
	Batches       int   `json:"batches" yaml:"batches"`
	FailedBatches []int `json:"failedBatches,omitempty" yaml:"failedBatches,omitempty"`
}

// DeckAnalysis is the final report for one deck.
type DeckAnalysis struct {
	BracketLevel      taxonomy.Bracket `json:"bracketLevel" yaml:"bracketLevel"`
	BracketName       string           `json:"bracketName" yaml:"bracketName"`
	CombinedScore     float64          `json:"combinedScore" yaml:"combinedScore"` // always the bracket level
	OriginalSaltScore float64          `json:"originalSaltScore" yaml:"originalSaltScore"`
	CategoryScores    CategoryScores   `json:"categoryScores" yaml:"categoryScores"`
	ManabaseScore     float64          `json:"manabaseScore" yaml:"manabaseScore"`
	GameChangersCount int              `json:"gameChangersCount" yaml:"gameChangersCount"`
	GameChangersList  []string         `json:"gameChangersList" yaml:"gameChangersList"`
	HasMassLandDenial bool             `json:"hasMassLandDenial" yaml:"hasMassLandDenial"`
	HasExtraTurns     bool             `json:"hasExtraTurns" yaml:"hasExtraTurns"`
	HasTwoCardCombos  bool             `json:"hasTwoCardCombos" yaml:"hasTwoCardCombos"`
	TutorCount        int              `json:"tutorCount" yaml:"tutorCount"`
	ComboCount        int              `json:"comboCount" yaml:"comboCount"`
	ConsistencyScore  float64          `json:"consistencyScore" yaml:"consistencyScore"`
	InteractionScore  float64          `json:"interactionScore" yaml:"interactionScore"`
	EfficiencyScore   float64          `json:"efficiencyScore" yaml:"efficiencyScore"`
	Details           string           `json:"details" yaml:"details"`
	Suggestions       []string         `json:"suggestions" yaml:"suggestions"`

	SaltBracketLevel taxonomy.Bracket     `json:"saltBracketLevel" yaml:"saltBracketLevel"`
	BracketReason    string               `json:"bracketReason" yaml:"bracketReason"`
	Commanders       []string             `json:"commanders" yaml:"commanders"`
	ComboPairs       []taxonomy.ComboPair `json:"comboPairs" yaml:"comboPairs"`
	Stats            stats.DeckStats      `json:"stats" yaml:"-"`

	RunID    string           `json:"runId,omitempty" yaml:"runId,omitempty"`
	Site     string           `json:"site,omitempty" yaml:"site,omitempty"`
	DeckID   string           `json:"deckId,omitempty" yaml:"deckId,omitempty"`
	DeckName string           `json:"deckName,omitempty" yaml:"deckName,omitempty"`
	Metadata *MetadataSummary `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
