// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/barkeep/internal/corpus"
)

const (
	defaultSuggestLimit = 10
	maxSuggestLimit     = 50
)

// Cocktail returns one cocktail, resolved exactly or by fuzzy name match.
//
// GET /api/v1/cocktails/{name}
func (h *Handler) Cocktail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ct, err := h.engine.ResolveCocktail(name)
	if errors.Is(err, corpus.ErrNotFound) {
		NewResponseWriter(w, r).NotFound("No cocktail called " + strconv.Quote(name))
		return
	}
	if err != nil {
		NewResponseWriter(w, r).InternalError(err)
		return
	}

	resp := CocktailResponse{
		ID:           ct.ID,
		Name:         ct.Name,
		Alcoholic:    ct.Alcoholic.String(),
		Category:     ct.Category,
		Glass:        ct.Glass,
		Instructions: ct.Instructions,
		Ingredients:  make([]string, len(ct.Ingredients)),
		Measures:     make([]string, len(ct.Ingredients)),
		Exact:        ct.ID == corpus.NormalizeKey(name),
	}
	for i, ing := range ct.Ingredients {
		resp.Ingredients[i] = ing.Name
		resp.Measures[i] = ing.Measure
	}
	WriteSuccess(w, r, resp)
}

// SuggestCocktails completes a cocktail name prefix.
//
// GET /api/v1/cocktails?prefix=mar&limit=10
func (h *Handler) SuggestCocktails(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		NewResponseWriter(w, r).BadRequest("prefix is required")
		return
	}

	limit := defaultSuggestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSuggestLimit {
			NewResponseWriter(w, r).BadRequest("limit must be between 1 and " + strconv.Itoa(maxSuggestLimit))
			return
		}
		limit = n
	}

	names := h.engine.Corpus().SuggestNames(prefix, limit)
	if names == nil {
		names = []string{}
	}
	WriteSuccess(w, r, SuggestResponse{Prefix: prefix, Names: names})
}
