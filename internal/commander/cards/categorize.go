package cards

import (
	"regexp"

	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

// textRule tags a card when every pattern matches its oracle text.
type textRule struct {
	patterns []*regexp.Regexp
	tags     []Category
}

func (r textRule) matches(text string) bool {
	for _, p := range r.patterns {
		if !p.MatchString(text) {
			return false
		}
	}
	return true
}

var (
	counterPattern    = regexp.MustCompile(`(?i)counter.*spell|counter.*activated|counter.*triggered`)
	removalVerb       = regexp.MustCompile(`(?i)destroy|exile|return.*to.*hand|return.*to.*library`)
	removalScope      = regexp.MustCompile(`(?i)target|each|all`)
	staxPattern       = regexp.MustCompile(`(?i)can't|players can't|additional cost|costs? (more|X more)`)
	taxPattern        = regexp.MustCompile(`(?i)pay (X|\d+) more|costs? (X|\d+) more`)
	tutorPattern      = regexp.MustCompile(`(?i)search your library`)
	drawPattern       = regexp.MustCompile(`(?i)draw`)
	graveyardPattern  = regexp.MustCompile(`(?i)graveyard`)
	graveHatePattern  = regexp.MustCompile(`(?i)exile|remove`)
	recursionPattern  = regexp.MustCompile(`(?i)return.*from.*graveyard|from.*graveyard.*to`)
	manaAbility       = regexp.MustCompile(`(?i)add (one|two|three|\w) mana|adds? (\{[WUBRGC]\})`)
	coloredManaSymbol = regexp.MustCompile(`(?i)add (\{[WUBRGC]\})`)
)

// textRules are evaluated independently; every rule that matches contributes
// its tags.
var textRules = []textRule{
	{patterns: []*regexp.Regexp{counterPattern}, tags: []Category{CategoryCounterspell, CategoryInteraction}},
	{patterns: []*regexp.Regexp{removalVerb, removalScope}, tags: []Category{CategoryRemoval, CategoryInteraction}},
	{patterns: []*regexp.Regexp{staxPattern}, tags: []Category{CategoryStax, CategoryInteraction}},
	{patterns: []*regexp.Regexp{taxPattern}, tags: []Category{CategoryTaxes, CategoryInteraction}},
	{patterns: []*regexp.Regexp{tutorPattern}, tags: []Category{CategoryTutor}},
	{patterns: []*regexp.Regexp{drawPattern}, tags: []Category{CategoryDraw}},
	{patterns: []*regexp.Regexp{graveyardPattern, graveHatePattern}, tags: []Category{CategoryGraveyard, CategoryInteraction}},
	{patterns: []*regexp.Regexp{recursionPattern}, tags: []Category{CategoryRecursion}},
}

// nameRule tags a card when the taxonomy lists its name.
type nameRule struct {
	listed func(*taxonomy.Taxonomy, string) bool
	tag    Category
}

var nameRules = []nameRule{
	{(*taxonomy.Taxonomy).IsComboPiece, CategoryCombo},
	{(*taxonomy.Taxonomy).IsMassLandDenial, CategoryMassLandDenial},
	{(*taxonomy.Taxonomy).IsExtraTurn, CategoryExtraTurn},
	{(*taxonomy.Taxonomy).IsGameChanger, CategoryGameChanger},
	{(*taxonomy.Taxonomy).IsFastMana, CategoryFastMana},
	{(*taxonomy.Taxonomy).IsTutor, CategoryTutor},
}

// Categorizer tags cards using oracle-text heuristics and taxonomy lists.
// It holds no mutable state and is safe for concurrent use.
type Categorizer struct {
	tax *taxonomy.Taxonomy
}

// NewCategorizer creates a Categorizer. A nil taxonomy uses taxonomy.Default().
func NewCategorizer(tax *taxonomy.Taxonomy) *Categorizer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Categorizer{tax: tax}
}

// Categorize returns the category tags for one card. The result depends only
// on the card's name, type line, oracle text and mana value.
func (c *Categorizer) Categorize(card Card) Tags {
	text := card.OracleText
	isLand := card.IsLand()

	var found []Category
	for _, rule := range textRules {
		if rule.matches(text) {
			found = append(found, rule.tags...)
		}
	}

	if isLand || manaAbility.MatchString(text) {
		found = append(found, CategoryRamp)
	}

	if !isLand && card.CMC <= 2 && coloredManaSymbol.MatchString(text) {
		found = append(found, CategoryFastMana)
	}

	for _, rule := range nameRules {
		if rule.listed(c.tax, card.Name) {
			found = append(found, rule.tag)
		}
	}

	return NewTags(found...)
}

// CategorizeAll maps raw cards to categorized cards, preserving order and
// multiplicity. The input slice is not modified.
func (c *Categorizer) CategorizeAll(cs []Card) []Categorized {
	out := make([]Categorized, len(cs))
	for i, card := range cs {
		out[i] = Categorized{Card: card, Categories: c.Categorize(card)}
	}
	return out
}

// Uncategorize strips tags, returning the raw cards.
func Uncategorize(cs []Categorized) []Card {
	out := make([]Card, len(cs))
	for i, c := range cs {
		out[i] = c.Card
	}
	return out
}
