package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
	"github.com/ramonehamilton/edh-power/internal/commander/decksource"
)

// benchDeck builds a 99 card deck with a realistic mix of lands and spells.
func benchDeck() *decksource.Deck {
	deck := &decksource.Deck{
		Site:       decksource.SiteMoxfield,
		ID:         "bench",
		Commanders: []cards.Card{{Name: "Bench Commander", IsCommander: true, ColorIdentity: []string{"U", "G"}}},
	}
	deck.Cards = append(deck.Cards, cards.Repeat(cards.Card{Name: "Forest", TypeLine: "Basic Land — Forest", OracleText: "({T}: Add {G}.)", ProducedMana: []string{"G"}}, 18)...)
	deck.Cards = append(deck.Cards, cards.Repeat(cards.Card{Name: "Island", TypeLine: "Basic Land — Island", OracleText: "({T}: Add {U}.)", ProducedMana: []string{"U"}}, 18)...)
	for i := 0; i < 63; i++ {
		deck.Cards = append(deck.Cards, cards.Card{
			Name:       fmt.Sprintf("Spell %d", i),
			TypeLine:   "Instant",
			ManaCost:   "{1}{U}",
			CMC:        2,
			Colors:     []string{"U"},
			OracleText: "Counter target spell. Draw a card.",
		})
	}
	return deck
}

func BenchmarkAnalyzeDeck(b *testing.B) {
	analyzer := New(nil, nil)
	deck := benchDeck()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := analyzer.AnalyzeDeck(ctx, deck); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	result, err := New(nil, nil).AnalyzeDeck(context.Background(), benchDeck())
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Format(*result)
	}
}
