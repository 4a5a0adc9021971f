// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package intent turns free-text cocktail queries into typed intents.
//
// Classification is an ordered chain of independent rules over normalized,
// stemmed text; the first rule that matches wins. Ingredient and cocktail
// names are recognized with Aho-Corasick automata built from the corpus, so
// a Classifier is tied to one corpus and rebuilt when the corpus changes.
package intent

// Kind names an intent variant.
type Kind string

const (
	KindSearchByIngredient       Kind = "search_by_ingredient"
	KindFilterByAlcoholContent   Kind = "filter_by_alcohol_content"
	KindRecommendSimilarTo       Kind = "recommend_similar_to"
	KindRecommendFromPreferences Kind = "recommend_from_preferences"
	KindStatePreference          Kind = "state_preference"
	KindShowPreferences          Kind = "show_preferences"
	KindUnknown                  Kind = "unknown"
)

// Intent is the structured form of one query.
type Intent interface {
	Kind() Kind
}

// AlcoholPreference constrains results by alcohol content.
type AlcoholPreference struct {
	WantAlcoholic bool `json:"want_alcoholic"`
}

// SearchByIngredient asks for cocktails containing an ingredient.
type SearchByIngredient struct {
	Ingredient string             `json:"ingredient"`
	Limit      int                `json:"limit"`
	Alcohol    *AlcoholPreference `json:"alcohol,omitempty"`
}

// FilterByAlcoholContent asks for alcoholic or non-alcoholic cocktails.
type FilterByAlcoholContent struct {
	WantAlcoholic bool `json:"want_alcoholic"`
	Limit         int  `json:"limit"`
}

// RecommendSimilarTo asks for cocktails near a named cocktail.
type RecommendSimilarTo struct {
	CocktailName string `json:"cocktail_name"`
	Limit        int    `json:"limit"`
}

// RecommendFromPreferences asks for recommendations from the user's profile.
type RecommendFromPreferences struct {
	Limit int `json:"limit"`
}

// StatePreference records likes and dislikes. Cocktails are corpus
// identities; ingredients are normalized vocabulary names.
type StatePreference struct {
	LikedIngredients    []string `json:"liked_ingredients,omitempty"`
	LikedCocktails      []string `json:"liked_cocktails,omitempty"`
	DislikedIngredients []string `json:"disliked_ingredients,omitempty"`
	DislikedCocktails   []string `json:"disliked_cocktails,omitempty"`
	Unrecognized        []string `json:"unrecognized,omitempty"`
}

// IsEmpty reports whether no slot was filled.
func (s StatePreference) IsEmpty() bool {
	return len(s.LikedIngredients) == 0 && len(s.LikedCocktails) == 0 &&
		len(s.DislikedIngredients) == 0 && len(s.DislikedCocktails) == 0 &&
		len(s.Unrecognized) == 0
}

// ShowPreferences asks what the user's profile holds.
type ShowPreferences struct{}

// Unknown is produced when no rule fires.
type Unknown struct{}

func (SearchByIngredient) Kind() Kind       { return KindSearchByIngredient }
func (FilterByAlcoholContent) Kind() Kind   { return KindFilterByAlcoholContent }
func (RecommendSimilarTo) Kind() Kind       { return KindRecommendSimilarTo }
func (RecommendFromPreferences) Kind() Kind { return KindRecommendFromPreferences }
func (StatePreference) Kind() Kind          { return KindStatePreference }
func (ShowPreferences) Kind() Kind          { return KindShowPreferences }
func (Unknown) Kind() Kind                  { return KindUnknown }
