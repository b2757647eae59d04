package analysis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
	"github.com/ramonehamilton/edh-power/internal/commander/scoring"
	"github.com/ramonehamilton/edh-power/internal/commander/stats"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

func sampleDeck() ([]cards.Card, []cards.Categorized) {
	commanders := []cards.Card{
		{Name: "Someone, the Tester", TypeLine: "Legendary Creature", IsCommander: true, ColorIdentity: []string{"G", "U"}},
	}
	main := append(
		cards.Repeat(cards.Card{Name: "Island", TypeLine: "Basic Land — Island"}, 2),
		cards.Card{Name: "Isochron Scepter", TypeLine: "Artifact", CMC: 2, ManaCost: "{2}"},
		cards.Card{Name: "Dramatic Reversal", TypeLine: "Instant", CMC: 2, ManaCost: "{1}{U}", Colors: []string{"U"}},
		cards.Card{Name: "Rhystic Study", TypeLine: "Enchantment", CMC: 3, ManaCost: "{2}{U}", Colors: []string{"U"}},
	)
	return commanders, cards.NewCategorizer(nil).CategorizeAll(main)
}

func sampleAssessment() scoring.Assessment {
	return scoring.Assessment{
		Salt: scoring.SaltBreakdown{
			Interaction: 12,
			Consistency: 4.25,
			Efficiency:  7.5,
			Manabase:    8,
			Score:       6.5,
		},
		Bracket: scoring.BracketResult{
			Level:       taxonomy.BracketUpgraded,
			Name:        "Upgraded",
			Reason:      "Deck contains 1 Game Changers",
			Suggestions: []string{"Consider fewer tutors", "Second suggestion"},
		},
		SaltBracket: taxonomy.BracketUpgraded,
	}
}

func TestCombine(t *testing.T) {
	commanders, main := sampleDeck()
	s := stats.Compute(commanders, main, nil)
	a := Combine(commanders, s, sampleAssessment())

	assert.Equal(t, taxonomy.BracketUpgraded, a.BracketLevel)
	assert.Equal(t, "Upgraded", a.BracketName)
	assert.Equal(t, 3.0, a.CombinedScore)
	assert.Equal(t, 6.5, a.OriginalSaltScore)
	assert.Equal(t, 8.0, a.ManabaseScore)
	assert.Equal(t, []string{"Rhystic Study"}, a.GameChangersList)
	assert.Equal(t, 1, a.GameChangersCount)
	assert.True(t, a.HasTwoCardCombos)
	assert.Equal(t, 1, a.ComboCount)
	assert.False(t, a.HasMassLandDenial)
	assert.False(t, a.HasExtraTurns)
	assert.Equal(t, []string{"Someone, the Tester"}, a.Commanders)
	assert.Equal(t, taxonomy.BracketUpgraded, a.SaltBracketLevel)
	assert.Equal(t, []string{"Consider fewer tutors", "Second suggestion"}, a.Suggestions)

	want := CategoryScores{
		Interaction: 10, // clamped from 12
		Combo:       3,
		Ramp:        2,
	}
	if diff := cmp.Diff(want, a.CategoryScores); diff != "" {
		t.Errorf("CategoryScores mismatch (-want +got):\n%s", diff)
	}

	wantDetails := "Commander(s): Someone, the Tester\n\n" +
		"Original Salt Score: 6.50/10.99\n" +
		"Commander Bracket: 3 - Upgraded\n" +
		"Bracket Reason: Deck contains 1 Game Changers\n\n" +
		"Deck Statistics:\n" +
		"Total Cards: 5\n" +
		"Lands: 2 (40.0%)\n" +
		"Average CMC: 2.33\n" +
		"Color Identity: UG\n\n" +
		"Key Categories:\n" +
		"Interaction: 0 cards\n" +
		"Tutors: 0 cards\n" +
		"Card Draw: 0 cards\n" +
		"Ramp: 2 cards\n" +
		"Fast Mana: 0 cards\n" +
		"\nPotential Infinite Combos: 1\n" +
		"- Combo 1: Isochron Scepter + Dramatic Reversal\n" +
		"\nGame Changers (1):\n" +
		"- Rhystic Study\n"
	if diff := cmp.Diff(wantDetails, a.Details); diff != "" {
		t.Errorf("Details mismatch (-want +got):\n%s", diff)
	}
}

func TestCombine_SuggestionsAreCopied(t *testing.T) {
	commanders, main := sampleDeck()
	assessment := sampleAssessment()
	a := Combine(commanders, stats.Compute(commanders, main, nil), assessment)

	a.Suggestions[0] = "changed"
	assert.Equal(t, "Consider fewer tutors", assessment.Bracket.Suggestions[0])
}

func TestScoreCategories_Clamped(t *testing.T) {
	s := stats.DeckStats{
		CategoryCounts: map[cards.Category]int{
			cards.CategoryCounterspell: 3,
			cards.CategoryRemoval:      30,
			cards.CategoryGraveyard:    1,
		},
		TutorCount:    10,
		DrawCount:     5,
		FastManaCount: 1,
		ComboPairs:    make([]taxonomy.ComboPair, 5),
	}

	got := ScoreCategories(s, scoring.SaltBreakdown{Interaction: 4})
	assert.Equal(t, 4.0, got.Interaction)
	assert.Equal(t, 5.0, got.Counterspell)
	assert.Equal(t, 10.0, got.Removal)
	assert.InDelta(t, 3.333, got.Graveyard, 0.001)
	assert.Equal(t, 10.0, got.Tutor)
	assert.Equal(t, 5.0, got.Draw)
	assert.Equal(t, 2.0, got.FastMana)
	assert.Equal(t, 10.0, got.Combo)
}

func TestFormat(t *testing.T) {
	a := DeckAnalysis{
		BracketLevel:      taxonomy.BracketOptimized,
		BracketName:       "Optimized",
		CombinedScore:     4,
		OriginalSaltScore: 8.123,
		Details:           "DETAILS\n",
		Suggestions:       []string{"First", "Second"},
	}

	want := "==== COMMANDER POWER LEVEL ANALYSIS ====\n\n" +
		"Bracket: 4 - Optimized\n" +
		"Power Score: 4.0/5.0 (Salt Score: 8.12/10.99)\n\n" +
		"DETAILS\n" +
		"\nSuggestions:\n" +
		"1. First\n" +
		"2. Second\n"
	assert.Equal(t, want, Format(a))

	a.Suggestions = nil
	assert.False(t, strings.Contains(Format(a), "Suggestions:"))
}
