// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package engine

import (
	"strings"

	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/intent"
)

func (e *Engine) searchByIngredient(s *state, in intent.SearchByIngredient) (QueryResult, error) {
	limit, qe := e.limit(in.Limit)
	if qe != nil {
		return qe, nil
	}
	if strings.TrimSpace(in.Ingredient) == "" {
		return invalidArgument("An ingredient is required."), nil
	}

	q := corpus.NewIngredientQuery(in.Ingredient)
	matches := s.corpus.Filter(func(c *corpus.Cocktail) bool {
		if in.Alcohol != nil && !alcoholMatches(c.Alcoholic, in.Alcohol.WantAlcoholic) {
			return false
		}
		return c.HasIngredient(q)
	})
	return alphabetical(matches, limit, in), nil
}

func (e *Engine) filterByAlcohol(s *state, in intent.FilterByAlcoholContent) (QueryResult, error) {
	limit, qe := e.limit(in.Limit)
	if qe != nil {
		return qe, nil
	}
	matches := s.corpus.Filter(func(c *corpus.Cocktail) bool {
		return alcoholMatches(c.Alcoholic, in.WantAlcoholic)
	})
	return alphabetical(matches, limit, in), nil
}

// alcoholMatches partitions the ternary flag: optional-alcohol cocktails
// count as alcoholic, never as non-alcoholic.
func alcoholMatches(flag corpus.AlcoholFlag, wantAlcoholic bool) bool {
	if wantAlcoholic {
		return flag == corpus.Alcoholic || flag == corpus.OptionalAlcohol
	}
	return flag == corpus.NonAlcoholic
}

func alphabetical(matches []*corpus.Cocktail, limit int, in intent.Intent) *CocktailList {
	corpus.SortByName(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	items := make([]Item, len(matches))
	for i, c := range matches {
		items[i] = newItem(c, 0)
	}
	return &CocktailList{Items: items, Intent: in}
}
