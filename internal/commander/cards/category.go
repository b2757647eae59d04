package cards

import "sort"

// Category is a functional tag a card can carry.
type Category string

const (
	CategoryCounterspell   Category = "counterspell"
	CategoryRemoval        Category = "removal"
	CategoryStax           Category = "stax"
	CategoryTaxes          Category = "taxes"
	CategoryTutor          Category = "tutor"
	CategoryDraw           Category = "draw"
	CategoryRamp           Category = "ramp"
	CategoryFastMana       Category = "fast_mana"
	CategoryGraveyard      Category = "graveyard"
	CategoryRecursion      Category = "recursion"
	CategoryCombo          Category = "combo"
	CategoryMassLandDenial Category = "mass_land_denial"
	CategoryExtraTurn      Category = "extra_turn"
	CategoryGameChanger    Category = "game_changer"
	CategoryInteraction    Category = "interaction"
)

// AllCategories lists every category in canonical order.
var AllCategories = []Category{
	CategoryCounterspell,
	CategoryRemoval,
	CategoryStax,
	CategoryTaxes,
	CategoryTutor,
	CategoryDraw,
	CategoryRamp,
	CategoryFastMana,
	CategoryGraveyard,
	CategoryRecursion,
	CategoryCombo,
	CategoryMassLandDenial,
	CategoryExtraTurn,
	CategoryGameChanger,
	CategoryInteraction,
}

var categoryOrder = func() map[Category]int {
	order := make(map[Category]int, len(AllCategories))
	for i, c := range AllCategories {
		order[c] = i
	}
	return order
}()

// Tags is a duplicate-free set of categories kept in canonical order, so two
// tag sets built from the same input compare equal element by element.
type Tags []Category

// NewTags builds a Tags set, dropping duplicates and unknown categories.
func NewTags(cs ...Category) Tags {
	seen := make(map[Category]bool, len(cs))
	tags := make(Tags, 0, len(cs))
	for _, c := range cs {
		if _, known := categoryOrder[c]; !known || seen[c] {
			continue
		}
		seen[c] = true
		tags = append(tags, c)
	}
	sort.Slice(tags, func(i, j int) bool {
		return categoryOrder[tags[i]] < categoryOrder[tags[j]]
	})
	return tags
}

// Has reports whether the set contains c.
func (t Tags) Has(c Category) bool {
	for _, tag := range t {
		if tag == c {
			return true
		}
	}
	return false
}

// Strings returns the tags as plain strings.
func (t Tags) Strings() []string {
	out := make([]string, len(t))
	for i, c := range t {
		out[i] = string(c)
	}
	return out
}
