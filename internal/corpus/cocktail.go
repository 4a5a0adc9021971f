// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package corpus

import (
	"fmt"
	"strings"
)

// AlcoholFlag is the ternary alcohol classification of a cocktail.
type AlcoholFlag int

const (
	// Alcoholic cocktails always contain alcohol.
	Alcoholic AlcoholFlag = iota + 1
	// NonAlcoholic cocktails never contain alcohol.
	NonAlcoholic
	// OptionalAlcohol cocktails can be made either way.
	OptionalAlcohol
)

// String returns the canonical wire name of the flag.
func (f AlcoholFlag) String() string {
	switch f {
	case Alcoholic:
		return "alcoholic"
	case NonAlcoholic:
		return "non_alcoholic"
	case OptionalAlcohol:
		return "optional"
	default:
		return "unknown"
	}
}

// ParseAlcoholFlag accepts the spellings found in the Kaggle-derived data
// ("Alcoholic", "Non alcoholic", "Optional alcohol") and the canonical names.
func ParseAlcoholFlag(s string) (AlcoholFlag, error) {
	switch NormalizeText(s) {
	case "alcoholic":
		return Alcoholic, nil
	case "non alcoholic", "nonalcoholic", "non alcoholic drink":
		return NonAlcoholic, nil
	case "optional alcohol", "optional":
		return OptionalAlcohol, nil
	default:
		return 0, fmt.Errorf("%w: unknown alcohol flag %q", ErrInvalidRecord, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f AlcoholFlag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *AlcoholFlag) UnmarshalText(b []byte) error {
	parsed, err := ParseAlcoholFlag(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Ingredient is one line of a cocktail recipe.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// Cocktail is an immutable corpus record. ID is the case-insensitive
// identity (NormalizeKey of Name).
type Cocktail struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Ingredients  []Ingredient `json:"ingredients"`
	Alcoholic    AlcoholFlag  `json:"alcoholic"`
	Instructions string       `json:"instructions"`
	Category     string       `json:"category,omitempty"`
	Glass        string       `json:"glass,omitempty"`

	// stems holds each ingredient's stemmed tokens, filled at corpus load.
	stems [][]string
}

// IngredientNames returns ingredient names in recipe order.
func (c *Cocktail) IngredientNames() []string {
	names := make([]string, len(c.Ingredients))
	for i, ing := range c.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// CanonicalText is the text an embedding is computed from:
// name, then ingredients joined by ", ", then instructions.
func (c *Cocktail) CanonicalText() string {
	return c.Name + " " + strings.Join(c.IngredientNames(), ", ") + " " + c.Instructions
}

// HasIngredient reports whether any ingredient matches q.
func (c *Cocktail) HasIngredient(q IngredientQuery) bool {
	if q.empty() {
		return false
	}
	for _, stems := range c.ingredientStems() {
		if q.matches(stems) {
			return true
		}
	}
	return false
}

func (c *Cocktail) ingredientStems() [][]string {
	if c.stems != nil {
		return c.stems
	}
	stems := make([][]string, len(c.Ingredients))
	for i, ing := range c.Ingredients {
		stems[i] = StemTokens(Tokens(ing.Name))
	}
	return stems
}

// IngredientQuery is a prepared ingredient search term.
type IngredientQuery struct {
	raw   string
	stems []string
}

// NewIngredientQuery prepares q for matching against cocktail ingredients.
// A query matches an ingredient when the normalized names are equal or the
// query's stemmed tokens appear as a contiguous run inside the
// ingredient's stemmed tokens ("lemon" matches "Lemon juice", "limes"
// matches "lime").
func NewIngredientQuery(q string) IngredientQuery {
	return IngredientQuery{
		raw:   NormalizeText(q),
		stems: StemTokens(Tokens(q)),
	}
}

// String returns the normalized query text.
func (q IngredientQuery) String() string {
	return q.raw
}

func (q IngredientQuery) empty() bool {
	return len(q.stems) == 0
}

func (q IngredientQuery) matches(ingredient []string) bool {
	n := len(q.stems)
	for start := 0; start+n <= len(ingredient); start++ {
		ok := true
		for j := 0; j < n; j++ {
			if ingredient[start+j] != q.stems[j] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
