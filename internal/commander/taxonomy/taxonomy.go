// Package taxonomy holds the curated card lists, commander tiers and bracket
// definitions that the categorizer and scoring engine look names up against.
//
// The tables are parsed once from an embedded YAML document at package
// initialization and are read-only afterwards.
package taxonomy

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// MaxSaltScore is the ceiling of the salt scale.
const MaxSaltScore = 10.999

// UnrankedTier is returned for commanders missing from the competitive table.
const UnrankedTier = 0

// ComboPair is a known two-card infinite or game-winning combination.
type ComboPair [2]string

// Contains reports whether name is one of the two pieces.
func (p ComboPair) Contains(name string) bool {
	return p[0] == name || p[1] == name
}

// Taxonomy is the immutable set of lookup tables.
type Taxonomy struct {
	gameChangers   map[string]struct{}
	massLandDenial map[string]struct{}
	extraTurns     map[string]struct{}
	tutors         map[string]struct{}
	fastMana       map[string]struct{}
	comboPieces    map[string]struct{}
	combos         []ComboPair
	tierCeilings   map[int]float64
	commanderTiers map[string]int
}

type document struct {
	GameChangers          []string        `yaml:"game_changers"`
	MassLandDenial        []string        `yaml:"mass_land_denial"`
	ExtraTurns            []string        `yaml:"extra_turns"`
	Tutors                []string        `yaml:"tutors"`
	FastMana              []string        `yaml:"fast_mana"`
	TwoCardCombos         [][]string      `yaml:"two_card_combos"`
	CommanderTiers        map[int]float64 `yaml:"commander_tiers"`
	CompetitiveCommanders map[string]int  `yaml:"competitive_commanders"`
}

var defaultTaxonomy *Taxonomy

func init() {
	t, err := Parse(taxonomyYAML)
	if err != nil {
		panic(fmt.Sprintf("taxonomy: embedded data is invalid: %v", err))
	}
	defaultTaxonomy = t
}

// Default returns the taxonomy built from the embedded data.
func Default() *Taxonomy {
	return defaultTaxonomy
}

// Parse builds a Taxonomy from a YAML document.
func Parse(data []byte) (*Taxonomy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	t := &Taxonomy{
		gameChangers:   toSet(doc.GameChangers),
		massLandDenial: toSet(doc.MassLandDenial),
		extraTurns:     toSet(doc.ExtraTurns),
		tutors:         toSet(doc.Tutors),
		fastMana:       toSet(doc.FastMana),
		comboPieces:    make(map[string]struct{}),
		tierCeilings:   make(map[int]float64, len(doc.CommanderTiers)),
		commanderTiers: make(map[string]int, len(doc.CompetitiveCommanders)),
	}

	for i, pair := range doc.TwoCardCombos {
		if len(pair) != 2 {
			return nil, fmt.Errorf("two_card_combos[%d]: expected 2 cards, got %d", i, len(pair))
		}
		t.combos = append(t.combos, ComboPair{pair[0], pair[1]})
		t.comboPieces[pair[0]] = struct{}{}
		t.comboPieces[pair[1]] = struct{}{}
	}

	for tier, ceiling := range doc.CommanderTiers {
		if ceiling <= 0 || ceiling > MaxSaltScore {
			return nil, fmt.Errorf("commander_tiers[%d]: ceiling %.3f out of range", tier, ceiling)
		}
		t.tierCeilings[tier] = ceiling
	}

	for name, tier := range doc.CompetitiveCommanders {
		if _, ok := t.tierCeilings[tier]; !ok {
			return nil, fmt.Errorf("competitive_commanders[%q]: unknown tier %d", name, tier)
		}
		t.commanderTiers[name] = tier
	}

	return t, nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}

// IsGameChanger reports whether the card is on the Game Changers list.
func (t *Taxonomy) IsGameChanger(name string) bool { return has(t.gameChangers, name) }

// IsMassLandDenial reports whether the card is a mass land denial effect.
func (t *Taxonomy) IsMassLandDenial(name string) bool { return has(t.massLandDenial, name) }

// IsExtraTurn reports whether the card grants extra turns.
func (t *Taxonomy) IsExtraTurn(name string) bool { return has(t.extraTurns, name) }

// IsTutor reports whether the card is a listed tutor.
func (t *Taxonomy) IsTutor(name string) bool { return has(t.tutors, name) }

// IsFastMana reports whether the card is listed fast mana.
func (t *Taxonomy) IsFastMana(name string) bool { return has(t.fastMana, name) }

// IsComboPiece reports whether the card is half of any known two-card combo.
func (t *Taxonomy) IsComboPiece(name string) bool { return has(t.comboPieces, name) }

// Combos returns the known two-card combos in table order.
func (t *Taxonomy) Combos() []ComboPair {
	out := make([]ComboPair, len(t.combos))
	copy(out, t.combos)
	return out
}

// CompletedCombos returns every known pair whose both pieces appear in names,
// in table order.
func (t *Taxonomy) CompletedCombos(names []string) []ComboPair {
	present := toSet(names)
	var pairs []ComboPair
	for _, pair := range t.combos {
		if has(present, pair[0]) && has(present, pair[1]) {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// CommanderTier returns the competitiveness tier of a single commander, or
// UnrankedTier if it is not listed.
func (t *Taxonomy) CommanderTier(name string) int {
	if tier, ok := t.commanderTiers[name]; ok {
		return tier
	}
	return UnrankedTier
}

// TierFor returns the tier of the first listed commander among names.
func (t *Taxonomy) TierFor(names []string) int {
	for _, name := range names {
		if tier := t.CommanderTier(name); tier != UnrankedTier {
			return tier
		}
	}
	return UnrankedTier
}

// TierCeiling returns the maximum salt score allowed for a tier. Unranked
// commanders get the full scale.
func (t *Taxonomy) TierCeiling(tier int) float64 {
	if ceiling, ok := t.tierCeilings[tier]; ok {
		return ceiling
	}
	return MaxSaltScore
}

// Tiers returns the configured tiers in ascending order.
func (t *Taxonomy) Tiers() []int {
	tiers := make([]int, 0, len(t.tierCeilings))
	for tier := range t.tierCeilings {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)
	return tiers
}
