// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/barkeep/internal/engine"
)

// HealthResponse is the data of GET /api/v1/health.
type HealthResponse struct {
	Status            string       `json:"status"`
	Uptime            string       `json:"uptime"`
	PreferenceBackend string       `json:"preference_backend"`
	Engine            engine.Stats `json:"engine"`
}

// Health reports corpus size, index generation and engine counters.
//
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, HealthResponse{
		Status:            "healthy",
		Uptime:            time.Since(h.startTime).Round(time.Second).String(),
		PreferenceBackend: h.engine.Preferences().Backend(),
		Engine:            h.engine.Stats(),
	})
}

// HealthLive is the liveness probe; it only proves the process serves HTTP.
//
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]string{"status": "alive"})
}

// HealthReady reports ready once a non-empty corpus and index are active.
//
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	if stats.Cocktails == 0 || stats.IndexSize != stats.Cocktails {
		NewResponseWriter(w, r).ServiceUnavailable("Corpus or index not ready")
		return
	}
	WriteSuccess(w, r, map[string]interface{}{
		"status":     "ready",
		"generation": stats.Generation,
	})
}
