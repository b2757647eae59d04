package scoring

import (
	"fmt"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
	"github.com/ramonehamilton/edh-power/internal/commander/stats"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

// Cascade thresholds.
const (
	optimizedGameChangers = 3 // more than this leaves bracket 3
	optimizedTutors       = 5
	cedhGameChangers      = 7
	cedhTutors            = 8
	upgradedWarnAbove     = 2
	coreTutorWarnAbove    = 2
)

// BracketResult is the cascade's verdict.
type BracketResult struct {
	Level       taxonomy.Bracket `json:"bracketLevel"`
	Name        string           `json:"bracketName"`
	Reason      string           `json:"reason"`
	Suggestions []string         `json:"suggestions"`
}

// ClassifyBracket evaluates the bracket rules from most to least restrictive.
// A tier-1 competitive commander is bracket 5 regardless of the deck's other
// contents; otherwise game changers, mass land denial and tutor density
// decide between 4 and 5, then 3, 2 and 1 follow.
func ClassifyBracket(commanders []cards.Card, s stats.DeckStats, tax *taxonomy.Taxonomy) BracketResult {
	if tax == nil {
		tax = taxonomy.Default()
	}

	gc := s.GameChangerCount
	hasMLD := s.MassLandDenialCount > 0
	hasExtraTurns := s.ExtraTurnsCount > 0
	hasCombos := s.HasCombos()

	result := BracketResult{Suggestions: []string{}}

	cedhCommander := ""
	for _, cmd := range commanders {
		if tax.CommanderTier(cmd.Name) == 1 {
			cedhCommander = cmd.Name
			break
		}
	}

	switch {
	case cedhCommander != "":
		result.Level = taxonomy.BracketCEDH
		result.Reason = fmt.Sprintf("Commander (%s) is a Tier 1 cEDH commander", cedhCommander)

	case gc > optimizedGameChangers || hasMLD || s.TutorCount >= optimizedTutors:
		result.Level = taxonomy.BracketOptimized
		switch {
		case hasMLD:
			result.Reason = "Deck contains mass land denial cards"
		case gc > optimizedGameChangers:
			result.Reason = fmt.Sprintf("Deck contains %d Game Changers (max 3 for Bracket 3)", gc)
		default:
			result.Reason = fmt.Sprintf("Deck contains %d tutors (high tutor density)", s.TutorCount)
		}

		if gc >= cedhGameChangers || s.TutorCount >= cedhTutors || (hasCombos && hasExtraTurns) {
			result.Level = taxonomy.BracketCEDH
			result.Reason = "Deck has high density of competitive elements (tutors, combos, Game Changers)"
		}

	case gc > 0 || hasCombos:
		result.Level = taxonomy.BracketUpgraded
		if gc > 0 {
			result.Reason = fmt.Sprintf("Deck contains %d Game Changers", gc)
		} else {
			result.Reason = "Deck contains potential two-card combos"
		}
		if gc > upgradedWarnAbove {
			result.Suggestions = append(result.Suggestions,
				fmt.Sprintf("To stay in Bracket 3, reduce Game Changers from %d to maximum 3", gc))
		}

	case hasExtraTurns || s.TutorCount > 0:
		result.Level = taxonomy.BracketCore
		if hasExtraTurns {
			result.Reason = "Deck contains extra turn cards"
		} else {
			result.Reason = fmt.Sprintf("Deck contains %d tutors", s.TutorCount)
		}
		if s.TutorCount > coreTutorWarnAbove {
			result.Suggestions = append(result.Suggestions,
				"Consider reducing tutor count to maintain Bracket 2 experience")
		}

	default:
		result.Level = taxonomy.BracketExhibition
		result.Reason = "Deck has no Game Changers, infinite combos, extra turns, or tutors"
	}

	result.Name = result.Level.Name()
	return result
}
