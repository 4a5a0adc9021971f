// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"net/http"

	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/logging"
)

// Query answers a free-text query for a user.
//
// POST /api/v1/query {"user_id": "...", "query": "..."}
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := logging.ContextWithUserID(r.Context(), req.UserID)
	result, err := h.engine.Handle(ctx, req.UserID, req.Query)
	h.writeResult(w, r.WithContext(ctx), result, err)
}

// writeResult renders an engine result. Successful results use the data
// envelope; query errors use the error envelope with the mapped status. An
// internal consistency error arrives as both a result and err.
func (h *Handler) writeResult(w http.ResponseWriter, r *http.Request, result engine.QueryResult, err error) {
	rw := NewResponseWriter(w, r)

	if err != nil {
		logger := logging.FromContext(r.Context(), h.logger)
		logger.Error().Err(err).Msg("Query hit an internal consistency error")
	}
	if result == nil {
		rw.InternalError(err)
		return
	}

	text, ferr := h.formatter.Format(result)
	if ferr != nil {
		rw.InternalError(ferr)
		return
	}

	if qe, ok := engine.AsQueryError(result); ok {
		status, code := queryErrorStatus(qe.Kind)
		rw.ErrorWithDetails(status, code, qe.Message, QueryErrorDetails{Kind: qe.Kind, Reply: text})
		return
	}

	rw.Success(QueryResponse{
		Kind:   result.ResultKind(),
		Result: result,
		Reply:  text,
	})
}
