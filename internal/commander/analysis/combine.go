package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
	"github.com/ramonehamilton/edh-power/internal/commander/scoring"
	"github.com/ramonehamilton/edh-power/internal/commander/stats"
)

// Display score baselines: the count at which a category reaches 10.
const (
	counterspellBaseline = 6
	removalBaseline      = 12
	staxBaseline         = 5
	taxesBaseline        = 5
	graveyardBaseline    = 3
	recursionBaseline    = 6
	tutorBaseline        = 5
	drawBaseline         = 10
	rampBaseline         = 10
	fastManaBaseline     = 5

	comboPairWeight = 3
	maxDisplayScore = 10
)

func displayScore(count, baseline int) float64 {
	return math.Min(float64(count)/float64(baseline)*10, maxDisplayScore)
}

// ScoreCategories computes the display scores from the deck statistics.
// Interaction is the salt interaction sub-score clamped to 10, not a separate
// count. The other eleven are derived from the stats alone.
func ScoreCategories(s stats.DeckStats, salt scoring.SaltBreakdown) CategoryScores {
	return CategoryScores{
		Interaction:  math.Min(salt.Interaction, maxDisplayScore),
		Counterspell: displayScore(s.Count(cards.CategoryCounterspell), counterspellBaseline),
		Removal:      displayScore(s.Count(cards.CategoryRemoval), removalBaseline),
		Stax:         displayScore(s.Count(cards.CategoryStax), staxBaseline),
		Taxes:        displayScore(s.Count(cards.CategoryTaxes), taxesBaseline),
		Graveyard:    displayScore(s.Count(cards.CategoryGraveyard), graveyardBaseline),
		Recursion:    displayScore(s.Count(cards.CategoryRecursion), recursionBaseline),
		Combo:        math.Min(float64(len(s.ComboPairs)*comboPairWeight), maxDisplayScore),
		Tutor:        displayScore(s.TutorCount, tutorBaseline),
		Draw:         displayScore(s.DrawCount, drawBaseline),
		Ramp:         displayScore(s.RampCount, rampBaseline),
		FastMana:     displayScore(s.FastManaCount, fastManaBaseline),
	}
}

// Combine builds the report from the deck statistics and both assessments.
// The bracket cascade decides the level; the salt score is carried alongside.
func Combine(commanders []cards.Card, s stats.DeckStats, a scoring.Assessment) DeckAnalysis {
	names := cards.Names(commanders)
	gameChangers := append([]string{}, s.GameChangers...)
	suggestions := append([]string{}, a.Bracket.Suggestions...)

	return DeckAnalysis{
		BracketLevel:      a.Bracket.Level,
		BracketName:       a.Bracket.Name,
		CombinedScore:     float64(a.Bracket.Level),
		OriginalSaltScore: a.Salt.Score,
		CategoryScores:    ScoreCategories(s, a.Salt),
		ManabaseScore:     a.Salt.Manabase,
		GameChangersCount: len(gameChangers),
		GameChangersList:  gameChangers,
		HasMassLandDenial: s.MassLandDenialCount > 0,
		HasExtraTurns:     s.ExtraTurnsCount > 0,
		HasTwoCardCombos:  s.HasCombos(),
		TutorCount:        s.TutorCount,
		ComboCount:        len(s.ComboPairs),
		ConsistencyScore:  a.Salt.Consistency,
		InteractionScore:  a.Salt.Interaction,
		EfficiencyScore:   a.Salt.Efficiency,
		Details:           details(names, s, a),
		Suggestions:       suggestions,
		SaltBracketLevel:  a.SaltBracket,
		BracketReason:     a.Bracket.Reason,
		Commanders:        names,
		ComboPairs:        s.ComboPairs,
		Stats:             s,
	}
}

func details(commanders []string, s stats.DeckStats, a scoring.Assessment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Commander(s): %s\n\n", strings.Join(commanders, ", "))

	fmt.Fprintf(&b, "Original Salt Score: %.2f/10.99\n", a.Salt.Score)
	fmt.Fprintf(&b, "Commander Bracket: %d - %s\n", a.Bracket.Level, a.Bracket.Name)
	fmt.Fprintf(&b, "Bracket Reason: %s\n\n", a.Bracket.Reason)

	b.WriteString("Deck Statistics:\n")
	fmt.Fprintf(&b, "Total Cards: %d\n", s.CardCount)
	fmt.Fprintf(&b, "Lands: %d (%.1f%%)\n", s.LandCount, s.LandPercentage)
	fmt.Fprintf(&b, "Average CMC: %.2f\n", s.AverageCMC)
	fmt.Fprintf(&b, "Color Identity: %s\n\n", strings.Join(s.ColorIdentity, ""))

	b.WriteString("Key Categories:\n")
	fmt.Fprintf(&b, "Interaction: %d cards\n", s.InteractionCount)
	fmt.Fprintf(&b, "Tutors: %d cards\n", s.TutorCount)
	fmt.Fprintf(&b, "Card Draw: %d cards\n", s.DrawCount)
	fmt.Fprintf(&b, "Ramp: %d cards\n", s.RampCount)
	fmt.Fprintf(&b, "Fast Mana: %d cards\n", s.FastManaCount)

	if s.HasCombos() {
		fmt.Fprintf(&b, "\nPotential Infinite Combos: %d\n", len(s.ComboPairs))
		for i, pair := range s.ComboPairs {
			fmt.Fprintf(&b, "- Combo %d: %s + %s\n", i+1, pair[0], pair[1])
		}
	}

	if len(s.GameChangers) > 0 {
		fmt.Fprintf(&b, "\nGame Changers (%d):\n", len(s.GameChangers))
		for _, name := range s.GameChangers {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	return b.String()
}

// Format renders an analysis as a plain text report.
func Format(a DeckAnalysis) string {
	var b strings.Builder

	b.WriteString("==== COMMANDER POWER LEVEL ANALYSIS ====\n\n")
	fmt.Fprintf(&b, "Bracket: %d - %s\n", a.BracketLevel, a.BracketName)
	fmt.Fprintf(&b, "Power Score: %.1f/5.0 (Salt Score: %.2f/10.99)\n\n", a.CombinedScore, a.OriginalSaltScore)

	b.WriteString(a.Details)

	if len(a.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for i, s := range a.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}

	return b.String()
}
