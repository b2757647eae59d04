package scoring

import (
	"github.com/ramonehamilton/edh-power/internal/commander/cards"
	"github.com/ramonehamilton/edh-power/internal/commander/stats"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

// Assessment holds both scoring systems' results for one deck.
type Assessment struct {
	Salt        SaltBreakdown
	Bracket     BracketResult
	SaltBracket taxonomy.Bracket // advisory, never overrides Bracket
}

// Engine runs both assessments against one taxonomy.
type Engine struct {
	tax *taxonomy.Taxonomy
}

// NewEngine creates an Engine. A nil taxonomy uses taxonomy.Default().
func NewEngine(tax *taxonomy.Taxonomy) *Engine {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Engine{tax: tax}
}

// Assess computes the salt score and the bracket independently.
func (e *Engine) Assess(commanders []cards.Card, main []cards.Categorized, s stats.DeckStats) Assessment {
	salt := Salt(commanders, main, s, e.tax)
	return Assessment{
		Salt:        salt,
		Bracket:     ClassifyBracket(commanders, s, e.tax),
		SaltBracket: SaltToBracket(salt.Score),
	}
}
