// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package embedding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc, dim int) *OpenAIEmbedder {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	e, err := NewOpenAIEmbedder(OpenAIConfig{
		BaseURL:            srv.URL + "/v1/",
		APIKey:             "sk-test",
		Model:              "test-model",
		Dimension:          dim,
		Timeout:            5 * time.Second,
		BreakerMaxFailures: 2,
		BreakerTimeout:     time.Minute,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewOpenAIEmbedder: %v", err)
	}
	return e
}

func TestOpenAIEmbedder_Success(t *testing.T) {
	t.Parallel()

	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}

		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || req.Input != "gin" {
			t.Errorf("request = %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}, 3)

	vec, err := e.Embed(context.Background(), "gin")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 || vec[2] != 0.3 {
		t.Errorf("vec = %v", vec)
	}
}

func TestOpenAIEmbedder_DimensionMismatch(t *testing.T) {
	t.Parallel()

	e := newTestEmbedder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2]}]}`))
	}, 3)

	if _, err := e.Embed(context.Background(), "gin"); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestOpenAIEmbedder_BreakerOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	e := newTestEmbedder(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"model loading"}}`))
	}, 3)

	for i := 0; i < 2; i++ {
		_, err := e.Embed(context.Background(), "gin")
		if err == nil {
			t.Fatalf("call %d: expected error", i)
		}
		if errors.Is(err, gobreaker.ErrOpenState) {
			t.Fatalf("call %d: breaker opened too early", i)
		}
	}

	if _, err := e.Embed(context.Background(), "gin"); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("third call error = %v, want ErrOpenState", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server calls = %d, want 2 (open circuit must not reach the server)", got)
	}
}

func TestOpenAIEmbedder_EmptyInput(t *testing.T) {
	t.Parallel()

	e := newTestEmbedder(t, func(http.ResponseWriter, *http.Request) {
		t.Error("server must not be called for empty input")
	}, 3)

	if _, err := e.Embed(context.Background(), "   "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("error = %v, want ErrEmptyText", err)
	}
}

func TestNewOpenAIEmbedder_Validation(t *testing.T) {
	t.Parallel()

	tests := []OpenAIConfig{
		{Model: "m", Dimension: 3},
		{BaseURL: "http://x", Dimension: 3},
		{BaseURL: "http://x", Model: "m"},
	}
	for i, cfg := range tests {
		if _, err := NewOpenAIEmbedder(cfg, zerolog.Nop()); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
