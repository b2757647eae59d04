// Package scoring computes the two power assessments of a deck: the
// continuous salt score and the discrete bracket.
package scoring

import (
	"math"
	"strings"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
	"github.com/ramonehamilton/edh-power/internal/commander/stats"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

// Interaction baselines: the count at which a sub-category is fully credited.
const (
	baselineCounterspells = 8
	baselineRemoval       = 12
	baselineStax          = 5
	baselineTaxes         = 5
	baselineGraveyardHate = 3
)

const defaultIdealLands = 35

// SaltBreakdown is the salt score with the sub-scores it was built from.
type SaltBreakdown struct {
	Interaction float64 `json:"interactionScore"`
	Consistency float64 `json:"consistencyScore"`
	Efficiency  float64 `json:"efficiencyScore"`
	Manabase    float64 `json:"manabaseScore"`
	Raw         float64 `json:"rawScore"`
	Tier        int     `json:"commanderTier"`
	Ceiling     float64 `json:"tierCeiling"`
	Score       float64 `json:"saltScore"`
}

// ratioScore credits count against baseline, saturating at the salt ceiling.
func ratioScore(count, baseline int) float64 {
	return math.Min(float64(count)/float64(baseline), 1) * taxonomy.MaxSaltScore
}

// InteractionScore averages the five interaction sub-categories.
func InteractionScore(s stats.DeckStats) float64 {
	return (ratioScore(s.Count(cards.CategoryCounterspell), baselineCounterspells) +
		ratioScore(s.Count(cards.CategoryRemoval), baselineRemoval) +
		ratioScore(s.Count(cards.CategoryStax), baselineStax) +
		ratioScore(s.Count(cards.CategoryTaxes), baselineTaxes) +
		ratioScore(s.Count(cards.CategoryGraveyard), baselineGraveyardHate)) / 5
}

// ConsistencyScore blends combo, tutor and draw sub-scores 40/40/20.
func ConsistencyScore(commanders []cards.Card, main []cards.Categorized, s stats.DeckStats) float64 {
	combo := comboSubscore(commanders, main, s.ComboPairs)

	tutor := 0.0
	if s.TutorCount > 0 {
		tutor = 3 + math.Min(float64(s.TutorCount), 7)
	}

	draw := 0.0
	if s.DrawCount > 0 {
		draw = 2 + math.Min(float64(s.DrawCount)*0.5, 6)
	}

	return (combo*0.4 + tutor*0.4 + draw*0.2) * taxonomy.MaxSaltScore / 10
}

func comboSubscore(commanders []cards.Card, main []cards.Categorized, pairs []taxonomy.ComboPair) float64 {
	if len(pairs) == 0 {
		return 0
	}

	score := 5 + math.Min(float64(len(pairs)*2), 5)

	if tutorFindsComboPiece(commanders, main, pairs) {
		score += 3
	}

	for _, cmd := range commanders {
		if pairsContain(pairs, cmd.Name) {
			score += 3
			break
		}
	}

	return score
}

var tutorableTypes = []string{"Creature", "Artifact", "Enchantment"}

// tutorFindsComboPiece reports whether any tutor's text plausibly reaches a
// piece of a completed combo, judged by card type words.
func tutorFindsComboPiece(commanders []cards.Card, main []cards.Categorized, pairs []taxonomy.ComboPair) bool {
	byName := make(map[string]cards.Card, len(commanders)+len(main))
	for _, c := range commanders {
		byName[c.Name] = c
	}
	for _, c := range main {
		if _, ok := byName[c.Name]; !ok {
			byName[c.Name] = c.Card
		}
	}

	for _, tutor := range main {
		if !tutor.Has(cards.CategoryTutor) {
			continue
		}
		text := strings.ToLower(tutor.OracleText)

		for _, pair := range pairs {
			for _, name := range pair {
				piece, ok := byName[name]
				if !ok {
					continue
				}
				if strings.Contains(text, "search your library for a card") {
					return true
				}
				for _, typ := range tutorableTypes {
					if strings.Contains(piece.TypeLine, typ) && strings.Contains(text, strings.ToLower(typ)) {
						return true
					}
				}
			}
		}
	}
	return false
}

func pairsContain(pairs []taxonomy.ComboPair, name string) bool {
	for _, p := range pairs {
		if p.Contains(name) {
			return true
		}
	}
	return false
}

// avgCMCScore steps down as the curve rises.
func avgCMCScore(avg float64) float64 {
	switch {
	case avg <= 2:
		return 10
	case avg <= 2.5:
		return 8
	case avg <= 3:
		return 6
	case avg <= 3.5:
		return 4
	case avg <= 4:
		return 2
	default:
		return 1
	}
}

// EfficiencyScore weighs the curve and fast mana equally.
func EfficiencyScore(s stats.DeckStats) float64 {
	fastMana := math.Min(float64(s.FastManaCount), 10)
	return (avgCMCScore(s.AverageCMC)*0.5 + fastMana*0.5) * taxonomy.MaxSaltScore / 10
}

// IdealLandCount is the target land count for a curve, lowered by ramp.
func IdealLandCount(avgCMC float64, ramp int) int {
	base := defaultIdealLands
	switch {
	case avgCMC < 2:
		base = 30
	case avgCMC < 2.5:
		base = 33
	case avgCMC > 4:
		base = 39
	case avgCMC > 3.5:
		base = 37
	}
	adjust := math.Min(float64(ramp)*0.5, 6)
	return int(math.Round(float64(base) - adjust))
}

func landQuantityScore(s stats.DeckStats) float64 {
	ratio := float64(s.LandCount) / float64(IdealLandCount(s.AverageCMC, s.RampCount))
	switch {
	case ratio >= 0.9 && ratio <= 1.1:
		return 10
	case ratio >= 0.8 && ratio <= 1.2:
		return 8
	case ratio >= 0.7 && ratio <= 1.3:
		return 6
	default:
		return 4
	}
}

// fixingMultiplier scales multi-color fixing lands into pip coverage.
var fixingMultiplier = map[int]float64{2: 1.5, 3: 1.0, 4: 0.8, 5: 0.7}

func pipCoverageScore(s stats.DeckStats) float64 {
	if s.ColorCount() <= 1 {
		return 10
	}
	mult, ok := fixingMultiplier[s.ColorCount()]
	if !ok {
		return 10
	}
	return math.Min(10, float64(s.ManaFixingCount)*mult)
}

// ManabaseScore blends land quantity with pip coverage. Mono-color decks
// weigh quantity 0.8; multi-color decks split evenly.
func ManabaseScore(s stats.DeckStats) float64 {
	lands := landQuantityScore(s)
	pips := pipCoverageScore(s)
	if s.ColorCount() <= 1 {
		return lands*0.8 + pips*0.2
	}
	return lands*0.5 + pips*0.5
}

// Salt computes the salt score: the mean of interaction, consistency and
// efficiency, scaled by manabase/10 and capped at the commander tier ceiling.
func Salt(commanders []cards.Card, main []cards.Categorized, s stats.DeckStats, tax *taxonomy.Taxonomy) SaltBreakdown {
	if tax == nil {
		tax = taxonomy.Default()
	}

	b := SaltBreakdown{
		Interaction: InteractionScore(s),
		Consistency: ConsistencyScore(commanders, main, s),
		Efficiency:  EfficiencyScore(s),
		Manabase:    ManabaseScore(s),
	}
	b.Raw = (b.Interaction + b.Consistency + b.Efficiency) / 3 * (b.Manabase / 10)
	b.Tier = tax.TierFor(cards.Names(commanders))
	b.Ceiling = tax.TierCeiling(b.Tier)
	b.Score = math.Min(b.Raw, b.Ceiling)
	return b
}

// SaltToBracket maps a salt score onto the bracket scale. The result is
// advisory; the rule cascade decides the reported bracket.
func SaltToBracket(score float64) taxonomy.Bracket {
	switch {
	case score >= 9.5:
		return taxonomy.BracketCEDH
	case score >= 8:
		return taxonomy.BracketOptimized
	case score >= 6:
		return taxonomy.BracketUpgraded
	case score >= 4:
		return taxonomy.BracketCore
	default:
		return taxonomy.BracketExhibition
	}
}
