// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/barkeep/internal/logging"
)

type capturedIDs struct {
	requestID     string
	correlationID string
}

func captureHandler(got *capturedIDs) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.requestID = logging.RequestIDFromContext(r.Context())
		got.correlationID = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	var got capturedIDs
	handler := RequestID(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Fatalf("response %s is not a UUID: %v", RequestIDHeader, err)
	}
	if got.requestID != responseID {
		t.Errorf("context request ID = %q, header = %q", got.requestID, responseID)
	}
	if len(got.correlationID) != 8 {
		t.Errorf("correlation ID = %q, want 8 characters", got.correlationID)
	}
}

func TestRequestID_PreservesUpstreamID(t *testing.T) {
	var got capturedIDs
	handler := RequestID(captureHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "proxy-1234")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got.requestID != "proxy-1234" {
		t.Errorf("context request ID = %q, want proxy-1234", got.requestID)
	}
	if rec.Header().Get(RequestIDHeader) != "proxy-1234" {
		t.Errorf("header = %q, want proxy-1234", rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestID_RejectsUnsafeUpstreamID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"whitespace", "abc def"},
		{"control", "abc\x01"},
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got capturedIDs
			handler := RequestID(captureHandler(&got))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.id)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got.requestID == tt.id {
				t.Errorf("unsafe ID %q was accepted", tt.id)
			}
			if _, err := uuid.Parse(got.requestID); err != nil {
				t.Errorf("replacement ID %q is not a UUID", got.requestID)
			}
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	seen := make(map[string]bool)
	var got capturedIDs
	handler := RequestID(captureHandler(&got))

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if seen[got.requestID] {
			t.Fatalf("duplicate request ID %q", got.requestID)
		}
		seen[got.requestID] = true
	}
}
