// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"github.com/tomtom215/barkeep/internal/engine"
)

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
	Query  string `json:"query" validate:"required,notblank,max=1000"`
}

// QueryResponse is the data of a successful query.
type QueryResponse struct {
	Kind   engine.ResultKind  `json:"kind"`
	Result engine.QueryResult `json:"result"`
	Reply  string             `json:"reply"`
}

// QueryErrorDetails accompanies a failed query in the error envelope.
type QueryErrorDetails struct {
	Kind  engine.ErrorKind `json:"kind"`
	Reply string           `json:"reply"`
}

// PreferencesRequest is the body of POST /api/v1/preferences/{userID}.
type PreferencesRequest struct {
	FavoriteIngredients []string `json:"favorite_ingredients" validate:"max=100,dive,notblank,max=100"`
	FavoriteCocktails   []string `json:"favorite_cocktails" validate:"max=100,dive,notblank,max=200"`
}

// PreferencesResponse is the data of the preference endpoints.
type PreferencesResponse struct {
	UserID      string                         `json:"user_id"`
	Preferences *engine.PreferenceConfirmation `json:"preferences"`
	Unresolved  []string                       `json:"unresolved_cocktails,omitempty"`
	Reply       string                         `json:"reply"`
}

// CocktailResponse is the data of GET /api/v1/cocktails/{name}.
type CocktailResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Alcoholic    string   `json:"alcoholic"`
	Category     string   `json:"category,omitempty"`
	Glass        string   `json:"glass,omitempty"`
	Instructions string   `json:"instructions"`
	Ingredients  []string `json:"ingredients"`
	Measures     []string `json:"measures"`
	Exact        bool     `json:"exact"`
}

// SuggestResponse is the data of GET /api/v1/cocktails.
type SuggestResponse struct {
	Prefix string   `json:"prefix"`
	Names  []string `json:"names"`
}
