// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package engine

import (
	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/intent"
)

// ResultKind names a QueryResult variant on the wire.
type ResultKind string

const (
	ResultCocktailList           ResultKind = "cocktail_list"
	ResultPreferenceConfirmation ResultKind = "preference_confirmation"
	ResultError                  ResultKind = "error"
)

// QueryResult is one of *CocktailList, *PreferenceConfirmation or
// *QueryError.
type QueryResult interface {
	ResultKind() ResultKind
}

// Item is one cocktail in a result list. Score is set for similarity and
// preference results only.
type Item struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Ingredients []string           `json:"ingredients"`
	Alcoholic   corpus.AlcoholFlag `json:"alcoholic"`
	Score       float64            `json:"score,omitempty"`
}

// CocktailList answers search, filter and recommendation intents. Source is
// the resolved display name for similarity queries.
type CocktailList struct {
	Items  []Item        `json:"items"`
	Intent intent.Intent `json:"intent"`
	Source string        `json:"source,omitempty"`
}

// ResultKind implements QueryResult.
func (*CocktailList) ResultKind() ResultKind { return ResultCocktailList }

// Names returns item display names in order.
func (l *CocktailList) Names() []string {
	names := make([]string, len(l.Items))
	for i, it := range l.Items {
		names[i] = it.Name
	}
	return names
}

func (l *CocktailList) clone() *CocktailList {
	out := *l
	out.Items = make([]Item, len(l.Items))
	copy(out.Items, l.Items)
	return &out
}

// PreferenceConfirmation reports a user's profile after a preference
// statement, or as-is for a ShowPreferences query. Cocktails are display
// names.
type PreferenceConfirmation struct {
	RecognizedLikes     []string `json:"recognized_likes"`
	LikedCocktails      []string `json:"liked_cocktails"`
	DislikedIngredients []string `json:"disliked_ingredients,omitempty"`
	DislikedCocktails   []string `json:"disliked_cocktails,omitempty"`
	Unrecognized        []string `json:"unrecognized"`

	// Changed is false when the statement added nothing new.
	Changed bool `json:"changed"`
	// Show marks a read-only report.
	Show bool `json:"show,omitempty"`
}

// ResultKind implements QueryResult.
func (*PreferenceConfirmation) ResultKind() ResultKind { return ResultPreferenceConfirmation }

func newItem(c *corpus.Cocktail, score float64) Item {
	return Item{
		ID:          c.ID,
		Name:        c.Name,
		Ingredients: c.IngredientNames(),
		Alcoholic:   c.Alcoholic,
		Score:       score,
	}
}
