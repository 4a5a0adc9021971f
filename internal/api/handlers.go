// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/reply"
	"github.com/tomtom215/barkeep/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_query.go: free-text queries
//   - handlers_preferences.go: profile read, merge and delete
//   - handlers_cocktails.go: cocktail detail and name suggestions
//   - handlers_health.go: health and probes
type Handler struct {
	engine    *engine.Engine
	formatter reply.Formatter
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler around a ready engine.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(eng *engine.Engine, formatter reply.Formatter, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:    eng,
		formatter: formatter,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}

// decodeJSON reads a size-limited JSON body into dst and validates it. It
// writes the error response itself and reports whether the handler may
// continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)

	// The limit is checked on the raw read; the JSON decoder wraps reader
	// errors and hides *http.MaxBytesError.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large")
			return false
		}
		rw.BadRequest("Failed to read request body")
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON body: " + err.Error())
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
