// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/intent"
)

// ResolveCocktail finds a cocktail by case-insensitive name, falling back to
// the closest name whose normalized Levenshtein similarity reaches the
// configured threshold. It returns corpus.ErrNotFound otherwise.
func (e *Engine) ResolveCocktail(name string) (*corpus.Cocktail, error) {
	c, ok := resolve(e.current.Load().corpus, name, e.config.FuzzyThreshold)
	if !ok {
		return nil, fmt.Errorf("%w: %q", corpus.ErrNotFound, name)
	}
	return c, nil
}

func resolve(c *corpus.Corpus, name string, threshold float64) (*corpus.Cocktail, bool) {
	if ct, err := c.Get(name); err == nil {
		return ct, true
	}
	key := corpus.NormalizeKey(name)
	if key == "" {
		return nil, false
	}

	best, bestScore := -1, 0.0
	for i := 0; i < c.Len(); i++ {
		// Strictly greater keeps the earliest cocktail on ties.
		if r := nameSimilarity(key, c.At(i).ID); r >= threshold && r > bestScore {
			best, bestScore = i, r
		}
	}
	if best < 0 {
		return nil, false
	}
	return c.At(best), true
}

// nameSimilarity is 1 - distance/longer length, over runes.
func nameSimilarity(a, b string) float64 {
	longer := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longer {
		longer = n
	}
	if longer == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longer)
}

func (e *Engine) similarTo(s *state, in intent.RecommendSimilarTo) (QueryResult, error) {
	limit, qe := e.limit(in.Limit)
	if qe != nil {
		return qe, nil
	}
	if strings.TrimSpace(in.CocktailName) == "" {
		return invalidArgument("A cocktail name is required."), nil
	}

	source, ok := resolve(s.corpus, in.CocktailName, e.config.FuzzyThreshold)
	if !ok {
		return notFound(in.CocktailName), nil
	}

	vec, err := s.index.EmbeddingOf(source.ID)
	if err != nil {
		return internalConsistency(), fmt.Errorf("%w: embedding of %q: %w", ErrInternalConsistency, source.ID, err)
	}
	neighbors, err := s.index.Nearest(vec, limit, source.ID)
	if err != nil {
		return internalConsistency(), fmt.Errorf("%w: neighbors of %q: %w", ErrInternalConsistency, source.ID, err)
	}

	items := make([]Item, 0, len(neighbors))
	for _, n := range neighbors {
		ct, err := s.corpus.Get(n.ID)
		if err != nil {
			return internalConsistency(), fmt.Errorf("%w: indexed %q: %w", ErrInternalConsistency, n.ID, err)
		}
		items = append(items, newItem(ct, n.Similarity))
	}
	return &CocktailList{Items: items, Intent: in, Source: source.Name}, nil
}
