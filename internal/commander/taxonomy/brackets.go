package taxonomy

import "math"

// Bracket is the official 1-5 Commander power classification.
type Bracket int

const (
	BracketExhibition Bracket = 1
	BracketCore       Bracket = 2
	BracketUpgraded   Bracket = 3
	BracketOptimized  Bracket = 4
	BracketCEDH       Bracket = 5
)

// ComboPolicy describes whether two-card combos fit a bracket.
type ComboPolicy string

const (
	CombosDisallowed ComboPolicy = "no"
	CombosLateGame   ComboPolicy = "late-game"
	CombosAllowed    ComboPolicy = "yes"
)

// TutorPolicy describes the tutor density a bracket expects.
type TutorPolicy string

const (
	TutorsSparse    TutorPolicy = "sparse"
	TutorsUnlimited TutorPolicy = "unlimited"
)

// Restrictions is the deck-building policy of one bracket.
type Restrictions struct {
	MassLandDenial  bool
	ExtraTurns      bool
	TwoCardCombos   ComboPolicy
	MaxGameChangers int // math.MaxInt when unrestricted
	Tutors          TutorPolicy
}

// BracketInfo is the static description of one bracket.
type BracketInfo struct {
	Level        Bracket
	Name         string
	Description  string
	Restrictions Restrictions
}

var brackets = map[Bracket]BracketInfo{
	BracketExhibition: {
		Level:       BracketExhibition,
		Name:        "Exhibition",
		Description: "Ultra-casual Commander deck focused on themes rather than winning",
		Restrictions: Restrictions{
			TwoCardCombos: CombosDisallowed,
			Tutors:        TutorsSparse,
		},
	},
	BracketCore: {
		Level:       BracketCore,
		Name:        "Core",
		Description: "Power level of average preconstructed deck",
		Restrictions: Restrictions{
			TwoCardCombos: CombosDisallowed,
			Tutors:        TutorsSparse,
		},
	},
	BracketUpgraded: {
		Level:       BracketUpgraded,
		Name:        "Upgraded",
		Description: "Stronger than preconstructed decks but not fully optimized",
		Restrictions: Restrictions{
			TwoCardCombos:   CombosLateGame,
			MaxGameChangers: 3,
			Tutors:          TutorsSparse,
		},
	},
	BracketOptimized: {
		Level:       BracketOptimized,
		Name:        "Optimized",
		Description: "High power Commander with no restrictions",
		Restrictions: Restrictions{
			MassLandDenial:  true,
			ExtraTurns:      true,
			TwoCardCombos:   CombosAllowed,
			MaxGameChangers: math.MaxInt,
			Tutors:          TutorsUnlimited,
		},
	},
	BracketCEDH: {
		Level:       BracketCEDH,
		Name:        "cEDH",
		Description: "High power with a competitive and metagame-focused mindset",
		Restrictions: Restrictions{
			MassLandDenial:  true,
			ExtraTurns:      true,
			TwoCardCombos:   CombosAllowed,
			MaxGameChangers: math.MaxInt,
			Tutors:          TutorsUnlimited,
		},
	},
}

// Info returns the definition of a bracket. Unknown levels report ok=false.
func (b Bracket) Info() (BracketInfo, bool) {
	info, ok := brackets[b]
	return info, ok
}

// Name returns the bracket's display name.
func (b Bracket) Name() string {
	if info, ok := brackets[b]; ok {
		return info.Name
	}
	return "Unknown"
}

// Valid reports whether b is one of the five brackets.
func (b Bracket) Valid() bool {
	return b >= BracketExhibition && b <= BracketCEDH
}

// Brackets returns all bracket definitions in ascending order.
func Brackets() []BracketInfo {
	out := make([]BracketInfo, 0, len(brackets))
	for level := BracketExhibition; level <= BracketCEDH; level++ {
		out = append(out, brackets[level])
	}
	return out
}
