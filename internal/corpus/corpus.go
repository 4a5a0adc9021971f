// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package corpus holds the immutable cocktail dataset: records in insertion
// order, a case-insensitive identity lookup, the ingredient vocabulary used
// by the intent classifier, and ingredient matching.
//
// A Corpus is read-only after New returns and may be shared by any number of
// goroutines without locking. A reload builds a new Corpus.
package corpus

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/barkeep/internal/cache"
)

var (
	// ErrNotFound is returned when a cocktail identity is absent.
	ErrNotFound = errors.New("cocktail not found")

	// ErrInvalidRecord is returned for records that cannot enter the corpus.
	ErrInvalidRecord = errors.New("invalid cocktail record")

	// ErrDuplicate is returned when two records share an identity.
	ErrDuplicate = errors.New("duplicate cocktail")
)

// Corpus is the immutable, ordered set of cocktails.
type Corpus struct {
	cocktails  []*Cocktail
	byID       map[string]int
	vocabulary []string
	names      *cache.Trie
}

// New builds a corpus from cocktails in the given order. Identities are
// derived from names; empty names, missing flags and duplicates are errors.
func New(cocktails []Cocktail) (*Corpus, error) {
	c := &Corpus{
		cocktails: make([]*Cocktail, 0, len(cocktails)),
		byID:      make(map[string]int, len(cocktails)),
		names:     cache.NewTrie(10),
	}

	vocab := make(map[string]struct{})

	for i := range cocktails {
		src := cocktails[i]

		id := NormalizeKey(src.Name)
		if id == "" {
			return nil, fmt.Errorf("%w: record %d has an empty name", ErrInvalidRecord, i)
		}
		if src.Alcoholic == 0 {
			return nil, fmt.Errorf("%w: %q has no alcohol flag", ErrInvalidRecord, src.Name)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, src.Name)
		}

		cocktail := &Cocktail{
			ID:           id,
			Name:         strings.TrimSpace(src.Name),
			Alcoholic:    src.Alcoholic,
			Instructions: strings.TrimSpace(src.Instructions),
			Category:     strings.TrimSpace(src.Category),
			Glass:        strings.TrimSpace(src.Glass),
		}

		for _, ing := range src.Ingredients {
			name := strings.TrimSpace(ing.Name)
			if name == "" {
				continue
			}
			cocktail.Ingredients = append(cocktail.Ingredients, Ingredient{
				Name:    name,
				Measure: strings.TrimSpace(ing.Measure),
			})
			vocab[NormalizeKey(name)] = struct{}{}
		}
		cocktail.stems = cocktail.ingredientStems()

		c.byID[id] = len(c.cocktails)
		c.cocktails = append(c.cocktails, cocktail)
		c.names.InsertWithData(cocktail.Name, id)
	}

	c.vocabulary = make([]string, 0, len(vocab))
	for v := range vocab {
		c.vocabulary = append(c.vocabulary, v)
	}
	sort.Strings(c.vocabulary)

	return c, nil
}

// Len returns the number of cocktails.
func (c *Corpus) Len() int {
	return len(c.cocktails)
}

// At returns the cocktail at insertion ordinal i.
func (c *Corpus) At(i int) *Cocktail {
	return c.cocktails[i]
}

// All returns the cocktails in insertion order. The slice is a copy; the
// cocktails are shared and must not be modified.
func (c *Corpus) All() []*Cocktail {
	out := make([]*Cocktail, len(c.cocktails))
	copy(out, c.cocktails)
	return out
}

// Get looks a cocktail up by name, case-insensitively.
func (c *Corpus) Get(name string) (*Cocktail, error) {
	i, ok := c.Ordinal(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return c.cocktails[i], nil
}

// Ordinal returns the insertion position of the named cocktail.
func (c *Corpus) Ordinal(name string) (int, bool) {
	i, ok := c.byID[NormalizeKey(name)]
	return i, ok
}

// IDs returns identities in insertion order.
func (c *Corpus) IDs() []string {
	ids := make([]string, len(c.cocktails))
	for i, ct := range c.cocktails {
		ids[i] = ct.ID
	}
	return ids
}

// Vocabulary returns the distinct normalized ingredient names, sorted.
func (c *Corpus) Vocabulary() []string {
	out := make([]string, len(c.vocabulary))
	copy(out, c.vocabulary)
	return out
}

// Filter returns the cocktails satisfying keep, in insertion order.
func (c *Corpus) Filter(keep func(*Cocktail) bool) []*Cocktail {
	var out []*Cocktail
	for _, ct := range c.cocktails {
		if keep(ct) {
			out = append(out, ct)
		}
	}
	return out
}

// WithIngredient returns cocktails containing an ingredient matching q.
func (c *Corpus) WithIngredient(q IngredientQuery) []*Cocktail {
	return c.Filter(func(ct *Cocktail) bool { return ct.HasIngredient(q) })
}

// SuggestNames returns up to limit display names starting with prefix,
// alphabetically.
func (c *Corpus) SuggestNames(prefix string, limit int) []string {
	results := c.names.AutocompleteWithLimit(strings.TrimSpace(prefix), limit)
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Value
	}
	return out
}

// SortByName orders cocktails alphabetically by case-folded display name,
// falling back to identity for stability.
func SortByName(cocktails []*Cocktail) {
	sort.SliceStable(cocktails, func(i, j int) bool {
		a, b := strings.ToLower(cocktails[i].Name), strings.ToLower(cocktails[j].Name)
		if a != b {
			return a < b
		}
		return cocktails[i].ID < cocktails[j].ID
	})
}
