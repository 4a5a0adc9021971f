// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package corpus

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// record mirrors one entry of processed_drinks.json. Either
// combined_ingredients (with measures) or a plain ingredients list is accepted.
type record struct {
	Name                string               `json:"name"`
	Alcoholic           string               `json:"alcoholic"`
	Category            string               `json:"category"`
	GlassType           string               `json:"glassType"`
	Glass               string               `json:"glass"`
	Instructions        string               `json:"instructions"`
	CombinedIngredients []combinedIngredient `json:"combined_ingredients"`
	Ingredients         []string             `json:"ingredients"`
}

type combinedIngredient struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure"`
}

func (r *record) toCocktail() (Cocktail, error) {
	flag, err := ParseAlcoholFlag(r.Alcoholic)
	if err != nil {
		return Cocktail{}, err
	}

	glass := r.GlassType
	if glass == "" {
		glass = r.Glass
	}

	c := Cocktail{
		Name:         r.Name,
		Alcoholic:    flag,
		Instructions: r.Instructions,
		Category:     r.Category,
		Glass:        glass,
	}

	if len(r.CombinedIngredients) > 0 {
		for _, ci := range r.CombinedIngredients {
			c.Ingredients = append(c.Ingredients, Ingredient{Name: ci.Ingredient, Measure: ci.Measure})
		}
	} else {
		for _, name := range r.Ingredients {
			c.Ingredients = append(c.Ingredients, Ingredient{Name: name})
		}
	}

	return c, nil
}

// Skipped describes a record the loader left out of the corpus.
type Skipped struct {
	Index  int
	Name   string
	Reason string
}

// blankReason reports why a record is an unfilled row. Cleaning fills
// missing columns with "", so such rows carry no name or no alcohol flag.
func (r *record) blankReason() string {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return "empty name"
	case strings.TrimSpace(r.Alcoholic) == "":
		return "empty alcohol flag"
	default:
		return ""
	}
}

// Decode reads a JSON array of cocktail records in file order. Records with
// an empty name or alcohol flag are skipped and reported; any other invalid
// record fails the whole decode.
func Decode(r io.Reader) ([]Cocktail, []Skipped, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("decode corpus: %w", err)
	}

	cocktails := make([]Cocktail, 0, len(records))
	var skipped []Skipped
	for i := range records {
		if reason := records[i].blankReason(); reason != "" {
			skipped = append(skipped, Skipped{Index: i, Name: records[i].Name, Reason: reason})
			continue
		}
		c, err := records[i].toCocktail()
		if err != nil {
			return nil, nil, fmt.Errorf("record %d (%q): %w", i, records[i].Name, err)
		}
		cocktails = append(cocktails, c)
	}
	return cocktails, skipped, nil
}

// Load decodes records from r and builds a Corpus.
func Load(r io.Reader) (*Corpus, []Skipped, error) {
	cocktails, skipped, err := Decode(r)
	if err != nil {
		return nil, nil, err
	}
	c, err := New(cocktails)
	if err != nil {
		return nil, nil, err
	}
	return c, skipped, nil
}

// LoadFile builds a Corpus from a processed_drinks.json file.
func LoadFile(path string) (*Corpus, []Skipped, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, skipped, err := Load(f)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus %s: %w", path, err)
	}
	return c, skipped, nil
}
