// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/intent"
	"github.com/tomtom215/barkeep/internal/preference"
)

func (e *Engine) profile(ctx context.Context, userID string) (preference.Profile, QueryResult, error) {
	p, err := e.prefs.Get(ctx, userID)
	switch {
	case errors.Is(err, preference.ErrInvalidUserID):
		return p, invalidArgument(err.Error()), nil
	case err != nil:
		return p, internalConsistency(), fmt.Errorf("%w: load profile: %w", ErrInternalConsistency, err)
	}
	return p, nil, nil
}

func (e *Engine) statePreference(ctx context.Context, s *state, userID string, in intent.StatePreference) (QueryResult, error) {
	if in.IsEmpty() {
		return unclassified(), nil
	}

	p, changed, err := e.prefs.Apply(ctx, userID, preference.Delta{
		LikedIngredients:    in.LikedIngredients,
		LikedCocktails:      in.LikedCocktails,
		DislikedIngredients: in.DislikedIngredients,
		DislikedCocktails:   in.DislikedCocktails,
		Unrecognized:        in.Unrecognized,
	})
	switch {
	case errors.Is(err, preference.ErrInvalidUserID):
		return invalidArgument(err.Error()), nil
	case err != nil:
		return internalConsistency(), fmt.Errorf("%w: merge profile: %w", ErrInternalConsistency, err)
	}

	conf := confirmation(s.corpus, p)
	conf.Changed = changed
	return conf, nil
}

func (e *Engine) showPreferences(ctx context.Context, s *state, userID string) (QueryResult, error) {
	p, failed, err := e.profile(ctx, userID)
	if failed != nil {
		return failed, err
	}
	conf := confirmation(s.corpus, p)
	conf.Show = true
	return conf, nil
}

func confirmation(c *corpus.Corpus, p preference.Profile) *PreferenceConfirmation {
	return &PreferenceConfirmation{
		RecognizedLikes:     orEmpty(p.LikedIngredients),
		LikedCocktails:      displayNames(c, p.LikedCocktails),
		DislikedIngredients: p.DislikedIngredients,
		DislikedCocktails:   displayNames(c, p.DislikedCocktails),
		Unrecognized:        orEmpty(p.UnrecognizedLikes),
	}
}

// displayNames maps identities to display names; identities no longer in
// the corpus are reported as stored.
func displayNames(c *corpus.Corpus, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if ct, err := c.Get(id); err == nil {
			out = append(out, ct.Name)
		} else {
			out = append(out, id)
		}
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

type scored struct {
	cocktail *corpus.Cocktail
	ordinal  int
	score    float64
}

func (e *Engine) fromPreferences(ctx context.Context, s *state, userID string, in intent.RecommendFromPreferences) (QueryResult, error) {
	limit, qe := e.limit(in.Limit)
	if qe != nil {
		return qe, nil
	}

	p, failed, err := e.profile(ctx, userID)
	if failed != nil {
		return failed, err
	}
	if !p.HasLikes() {
		return noPreferences(msgNoPreferences), nil
	}

	liked := ingredientQueries(p.LikedIngredients)
	raw := ingredientQueries(p.UnrecognizedLikes)
	disliked := ingredientQueries(p.DislikedIngredients)

	seeds := seedSet(s.corpus, p, liked, raw)
	if len(seeds) == 0 {
		return noPreferences(msgNothingMatches), nil
	}

	centroid, err := s.index.Centroid(seeds...)
	if err != nil {
		return internalConsistency(), fmt.Errorf("%w: centroid of %d seeds: %w", ErrInternalConsistency, len(seeds), err)
	}

	candidates, err := e.candidates(s, centroid, liked)
	if err != nil {
		return internalConsistency(), err
	}

	exclude := make(map[string]bool, len(p.DislikedCocktails)+len(p.LikedCocktails))
	for _, id := range p.DislikedCocktails {
		exclude[id] = true
	}
	if e.config.ExcludeLikedCocktails {
		for _, id := range p.LikedCocktails {
			exclude[id] = true
		}
	}

	ranked := make([]scored, 0, len(candidates))
	for _, ord := range candidates {
		ct := s.corpus.At(ord)
		if exclude[ct.ID] {
			continue
		}
		sim, err := s.index.Similarity(centroid, ct.ID)
		if err != nil {
			return internalConsistency(), fmt.Errorf("%w: similarity of %q: %w", ErrInternalConsistency, ct.ID, err)
		}
		ranked = append(ranked, scored{
			cocktail: ct,
			ordinal:  ord,
			score:    sim + e.adjustment(ct, liked, raw, disliked),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].ordinal < ranked[j].ordinal
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	items := make([]Item, len(ranked))
	for i, r := range ranked {
		items[i] = newItem(r.cocktail, r.score)
	}
	return &CocktailList{Items: items, Intent: in}, nil
}

// seedSet picks the cocktails whose centroid represents the user: liked
// cocktails, else cocktails with a liked ingredient, else cocktails matching
// an unrecognized like.
func seedSet(c *corpus.Corpus, p preference.Profile, liked, raw []corpus.IngredientQuery) []string {
	var seeds []string
	for _, id := range p.LikedCocktails {
		if ct, err := c.Get(id); err == nil {
			seeds = append(seeds, ct.ID)
		}
	}
	if len(seeds) > 0 {
		return seeds
	}

	for _, qs := range [][]corpus.IngredientQuery{liked, raw} {
		for _, ct := range c.Filter(func(ct *corpus.Cocktail) bool { return matchesAny(ct, qs) }) {
			seeds = append(seeds, ct.ID)
		}
		if len(seeds) > 0 {
			return seeds
		}
	}
	return nil
}

// candidates returns corpus ordinals: the nearest pool around the centroid
// (the whole corpus when the pool is 0) plus every cocktail containing a
// liked ingredient.
func (e *Engine) candidates(s *state, centroid []float32, liked []corpus.IngredientQuery) ([]int, error) {
	n := s.corpus.Len()
	pool := e.config.CandidatePool
	if pool <= 0 || pool >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	neighbors, err := s.index.Nearest(centroid, pool)
	if err != nil {
		return nil, fmt.Errorf("%w: candidate pool: %w", ErrInternalConsistency, err)
	}

	seen := make(map[int]bool, pool)
	out := make([]int, 0, pool)
	add := func(ord int) {
		if !seen[ord] {
			seen[ord] = true
			out = append(out, ord)
		}
	}
	for _, nb := range neighbors {
		ord, ok := s.corpus.Ordinal(nb.ID)
		if !ok {
			return nil, fmt.Errorf("%w: indexed %q is not in the corpus", ErrInternalConsistency, nb.ID)
		}
		add(ord)
	}
	for i := 0; i < n; i++ {
		if matchesAny(s.corpus.At(i), liked) {
			add(i)
		}
	}
	return out, nil
}

// adjustment is the preference bias added to a candidate's similarity.
func (e *Engine) adjustment(ct *corpus.Cocktail, liked, raw, disliked []corpus.IngredientQuery) float64 {
	var adj float64
	switch {
	case matchesAny(ct, liked):
		adj += e.config.IngredientBonus
	case matchesAny(ct, raw):
		adj += e.config.IngredientBonus * e.config.RawTokenWeight
	}
	if matchesAny(ct, disliked) {
		adj -= e.config.DislikePenalty
	}
	return adj
}

func ingredientQueries(names []string) []corpus.IngredientQuery {
	out := make([]corpus.IngredientQuery, 0, len(names))
	for _, n := range names {
		out = append(out, corpus.NewIngredientQuery(n))
	}
	return out
}

func matchesAny(ct *corpus.Cocktail, qs []corpus.IngredientQuery) bool {
	for _, q := range qs {
		if ct.HasIngredient(q) {
			return true
		}
	}
	return false
}
