package export

import (
	"strings"

	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
)

// SummaryRow is one line of a batch analysis export.
type SummaryRow struct {
	URL           string   `csv:"url" json:"url" yaml:"url"`
	DeckName      string   `csv:"deck_name" json:"deckName" yaml:"deckName"`
	Commanders    []string `csv:"commanders" json:"commanders" yaml:"commanders"`
	Bracket       int      `csv:"bracket" json:"bracket" yaml:"bracket"`
	BracketName   string   `csv:"bracket_name" json:"bracketName" yaml:"bracketName"`
	SaltScore     float64  `csv:"salt_score" json:"saltScore" yaml:"saltScore"`
	SaltBracket   int      `csv:"salt_bracket" json:"saltBracket" yaml:"saltBracket"`
	GameChangers  int      `csv:"game_changers" json:"gameChangers" yaml:"gameChangers"`
	Tutors        int      `csv:"tutors" json:"tutors" yaml:"tutors"`
	Combos        int      `csv:"combos" json:"combos" yaml:"combos"`
	Interaction   float64  `csv:"interaction" json:"interaction" yaml:"interaction"`
	Consistency   float64  `csv:"consistency" json:"consistency" yaml:"consistency"`
	Efficiency    float64  `csv:"efficiency" json:"efficiency" yaml:"efficiency"`
	Manabase      float64  `csv:"manabase" json:"manabase" yaml:"manabase"`
	FailedBatches int      `csv:"failed_batches" json:"failedBatches" yaml:"failedBatches"`
	Error         string   `csv:"error" json:"error,omitempty" yaml:"error,omitempty"`
}

// NewSummaryRow flattens an analysis. A nil result with a non-nil err
// produces an error row.
func NewSummaryRow(deckURL string, a *analysis.DeckAnalysis, err error) SummaryRow {
	row := SummaryRow{URL: deckURL}
	if err != nil {
		row.Error = strings.TrimSpace(err.Error())
	}
	if a == nil {
		return row
	}

	row.DeckName = a.DeckName
	row.Commanders = a.Commanders
	row.Bracket = int(a.BracketLevel)
	row.BracketName = a.BracketName
	row.SaltScore = a.OriginalSaltScore
	row.SaltBracket = int(a.SaltBracketLevel)
	row.GameChangers = a.GameChangersCount
	row.Tutors = a.TutorCount
	row.Combos = a.ComboCount
	row.Interaction = a.InteractionScore
	row.Consistency = a.ConsistencyScore
	row.Efficiency = a.EfficiencyScore
	row.Manabase = a.ManabaseScore
	if a.Metadata != nil {
		row.FailedBatches = len(a.Metadata.FailedBatches)
	}
	return row
}
