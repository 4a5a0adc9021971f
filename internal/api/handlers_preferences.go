// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/intent"
	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/preference"
)

// userIDParam reads and validates the {userID} URL parameter, writing a 400
// when it is unusable.
func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userID")
	if err := preference.ValidateUserID(userID); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrCodeInvalidArgument, err.Error())
		return "", false
	}
	return userID, true
}

// GetPreferences returns a user's profile.
//
// GET /api/v1/preferences/{userID}
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	ctx := logging.ContextWithUserID(r.Context(), userID)
	result, err := h.engine.Execute(ctx, userID, intent.ShowPreferences{})
	h.writePreferences(w, r.WithContext(ctx), userID, nil, result, err)
}

// MergePreferences unions favourite ingredients and cocktails into a
// profile. Cocktail names go through the exact-then-fuzzy lookup; names that
// match nothing are kept as unrecognized likes and reported back.
//
// POST /api/v1/preferences/{userID}
func (h *Handler) MergePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req PreferencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stmt := intent.StatePreference{LikedIngredients: req.FavoriteIngredients}
	var unresolved []string
	for _, name := range req.FavoriteCocktails {
		ct, err := h.engine.ResolveCocktail(name)
		if err != nil {
			unresolved = append(unresolved, name)
			continue
		}
		stmt.LikedCocktails = append(stmt.LikedCocktails, ct.ID)
	}
	stmt.Unrecognized = unresolved

	ctx := logging.ContextWithUserID(r.Context(), userID)
	if stmt.IsEmpty() {
		// Nothing to merge; answer with the current profile.
		result, err := h.engine.Execute(ctx, userID, intent.ShowPreferences{})
		h.writePreferences(w, r.WithContext(ctx), userID, unresolved, result, err)
		return
	}

	result, err := h.engine.Execute(ctx, userID, stmt)
	h.writePreferences(w, r.WithContext(ctx), userID, unresolved, result, err)
}

// DeletePreferences forgets a user.
//
// DELETE /api/v1/preferences/{userID}
func (h *Handler) DeletePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.engine.Preferences().Delete(r.Context(), userID); err != nil {
		if errors.Is(err, preference.ErrInvalidUserID) {
			WriteError(w, r, http.StatusBadRequest, ErrCodeInvalidArgument, err.Error())
			return
		}
		NewResponseWriter(w, r).InternalError(err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", userID).Msg("Preferences deleted")
	NewResponseWriter(w, r).NoContent()
}

func (h *Handler) writePreferences(w http.ResponseWriter, r *http.Request, userID string, unresolved []string, result engine.QueryResult, err error) {
	conf, ok := result.(*engine.PreferenceConfirmation)
	if !ok || err != nil {
		h.writeResult(w, r, result, err)
		return
	}

	text, ferr := h.formatter.Format(conf)
	if ferr != nil {
		NewResponseWriter(w, r).InternalError(ferr)
		return
	}

	WriteSuccess(w, r, PreferencesResponse{
		UserID:      userID,
		Preferences: conf,
		Unresolved:  unresolved,
		Reply:       text,
	})
}
