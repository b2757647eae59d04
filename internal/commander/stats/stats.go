// Package stats aggregates deck-wide counts and ratios from categorized cards.
package stats

import (
	"regexp"
	"strings"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

// ManaColors are the color keys tracked by the distributions, in display order.
var ManaColors = []string{"W", "U", "B", "R", "G", "C"}

// MaxCurveBucket is the last mana curve bucket; it holds everything at or above it.
const MaxCurveBucket = 7

var manaSymbol = regexp.MustCompile(`\{([^}]+)\}`)

// DeckStats are derived once from a categorized deck and not modified after.
type DeckStats struct {
	CardCount      int     `json:"cardCount"`
	LandCount      int     `json:"landCount"`
	AverageCMC     float64 `json:"averageCmc"`
	LandPercentage float64 `json:"landPercentage"`

	ColorIdentity          []string       `json:"colorIdentity"`
	ColorDistribution      map[string]int `json:"colorDistribution"`
	ManaSymbolDistribution map[string]int `json:"manaSymbolDistribution"`
	ManaCurve              map[int]int    `json:"manaCurve"`

	FastManaCount       int `json:"fastManaCount"`
	TutorCount          int `json:"tutorCount"`
	DrawCount           int `json:"drawCount"`
	InteractionCount    int `json:"interactionCount"`
	StaxCount           int `json:"staxCount"`
	MassLandDenialCount int `json:"massLandDenialCount"`
	ExtraTurnsCount     int `json:"extraTurnsCount"`
	RampCount           int `json:"rampsCount"`
	TwoCardComboCount   int `json:"twoCardComboCount"` // combo-piece instances
	ManaProducers       int `json:"manaProducers"`
	ManaFixingCount     int `json:"manaFixingCount"`
	GameChangerCount    int `json:"gameChangerCount"`

	CategoryCounts map[cards.Category]int `json:"categoryCounts"`
	GameChangers   []string               `json:"gameChangers"`
	ComboPairs     []taxonomy.ComboPair   `json:"comboPairs"`
}

// Count returns how many card instances carry the category.
func (s DeckStats) Count(c cards.Category) int {
	return s.CategoryCounts[c]
}

// HasCombos reports whether any known two-card pair is fully present.
func (s DeckStats) HasCombos() bool {
	return len(s.ComboPairs) > 0
}

// ColorCount is the number of colors in the commanders' identity.
func (s DeckStats) ColorCount() int {
	return len(s.ColorIdentity)
}

// Compute aggregates the main card pool. Commanders contribute only their
// color identity and their names to combo detection; every count is over
// main-pool instances, duplicates included.
func Compute(commanders []cards.Card, main []cards.Categorized, tax *taxonomy.Taxonomy) DeckStats {
	if tax == nil {
		tax = taxonomy.Default()
	}

	s := DeckStats{
		CardCount:              len(main),
		ColorIdentity:          colorIdentity(commanders),
		ColorDistribution:      zeroColors(),
		ManaSymbolDistribution: zeroColors(),
		ManaCurve:              make(map[int]int, MaxCurveBucket+1),
		CategoryCounts:         make(map[cards.Category]int, len(cards.AllCategories)),
		GameChangers:           []string{},
	}
	for i := 0; i <= MaxCurveBucket; i++ {
		s.ManaCurve[i] = 0
	}
	for _, c := range cards.AllCategories {
		s.CategoryCounts[c] = 0
	}

	var cmcSum float64
	nonLand := 0

	for _, c := range main {
		if c.IsLand() {
			s.LandCount++
			if len(c.ProducedMana) > 1 {
				s.ManaFixingCount++
			}
		} else {
			cmcSum += c.CMC
			nonLand++
			s.ManaCurve[curveBucket(c.CMC)]++
		}

		for _, cat := range c.Categories {
			s.CategoryCounts[cat]++
		}
		if c.Has(cards.CategoryGameChanger) {
			s.GameChangers = append(s.GameChangers, c.Name)
		}

		for _, color := range c.Colors {
			if _, tracked := s.ColorDistribution[color]; tracked {
				s.ColorDistribution[color]++
			}
		}
		for _, m := range manaSymbol.FindAllStringSubmatch(c.ManaCost, -1) {
			if _, tracked := s.ManaSymbolDistribution[m[1]]; tracked {
				s.ManaSymbolDistribution[m[1]]++
			}
		}
	}

	if nonLand > 0 {
		s.AverageCMC = cmcSum / float64(nonLand)
	}
	if s.CardCount > 0 {
		s.LandPercentage = float64(s.LandCount) / float64(s.CardCount) * 100
	}

	s.FastManaCount = s.CategoryCounts[cards.CategoryFastMana]
	s.TutorCount = s.CategoryCounts[cards.CategoryTutor]
	s.DrawCount = s.CategoryCounts[cards.CategoryDraw]
	s.InteractionCount = s.CategoryCounts[cards.CategoryInteraction]
	s.StaxCount = s.CategoryCounts[cards.CategoryStax]
	s.MassLandDenialCount = s.CategoryCounts[cards.CategoryMassLandDenial]
	s.ExtraTurnsCount = s.CategoryCounts[cards.CategoryExtraTurn]
	s.RampCount = s.CategoryCounts[cards.CategoryRamp]
	s.TwoCardComboCount = s.CategoryCounts[cards.CategoryCombo]
	s.ManaProducers = s.RampCount
	s.GameChangerCount = len(s.GameChangers)

	s.ComboPairs = tax.CompletedCombos(cards.UniqueNames(commanders, cards.Uncategorize(main)))
	if s.ComboPairs == nil {
		s.ComboPairs = []taxonomy.ComboPair{}
	}

	return s
}

func zeroColors() map[string]int {
	m := make(map[string]int, len(ManaColors))
	for _, c := range ManaColors {
		m[c] = 0
	}
	return m
}

// colorIdentity unions the commanders' identities in WUBRG order.
func colorIdentity(commanders []cards.Card) []string {
	present := make(map[string]bool)
	for _, cmd := range commanders {
		for _, c := range cmd.ColorIdentity {
			present[strings.ToUpper(c)] = true
		}
	}

	identity := make([]string, 0, len(present))
	for _, c := range ManaColors {
		if present[c] {
			identity = append(identity, c)
			delete(present, c)
		}
	}
	// anything outside WUBRGC keeps a stable position at the end
	for _, cmd := range commanders {
		for _, c := range cmd.ColorIdentity {
			if u := strings.ToUpper(c); present[u] {
				identity = append(identity, u)
				delete(present, u)
			}
		}
	}
	return identity
}

func curveBucket(cmc float64) int {
	b := int(cmc)
	if b < 0 {
		return 0
	}
	if b > MaxCurveBucket {
		return MaxCurveBucket
	}
	return b
}
