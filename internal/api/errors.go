// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"net/http"

	"github.com/tomtom215/barkeep/internal/engine"
)

// queryErrorStatus maps a query error kind to its HTTP status and error code.
func queryErrorStatus(kind engine.ErrorKind) (int, string) {
	switch kind {
	case engine.KindUnclassifiedQuery:
		return http.StatusBadRequest, ErrCodeUnclassifiedQuery
	case engine.KindInvalidArgument:
		return http.StatusBadRequest, ErrCodeInvalidArgument
	case engine.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case engine.KindNoPreferences:
		return http.StatusConflict, ErrCodeNoPreferences
	default:
		return http.StatusInternalServerError, ErrCodeInternalConsistency
	}
}
