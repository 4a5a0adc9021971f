// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package embedding turns text into fixed-dimension vectors.
//
// Embedders are only called while building the vector index; queries never
// embed text. Two providers exist: a deterministic local feature-hashing
// embedder (the default, no network) and a client for any OpenAI-compatible
// /embeddings endpoint guarded by a circuit breaker.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/config"
)

var (
	// ErrDimensionMismatch is returned when a provider yields a vector of the
	// wrong length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyText is returned when the input has no embeddable content.
	ErrEmptyText = errors.New("empty embedding input")
)

// Embedder maps text to a vector of length Dim.
type Embedder interface {
	// ModelID names the model; it scopes persisted embeddings so vectors
	// from different models are never mixed.
	ModelID() string
	Dim() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// New builds the embedder selected by cfg.Provider.
func New(cfg config.EmbeddingConfig, logger zerolog.Logger) (Embedder, error) {
	switch cfg.Provider {
	case "", "hashing":
		return NewHashingEmbedder(cfg.Dimension), nil
	case "openai":
		return NewOpenAIEmbedder(OpenAIConfig{
			BaseURL:            cfg.BaseURL,
			APIKey:             cfg.APIKey,
			Model:              cfg.Model,
			Dimension:          cfg.Dimension,
			Timeout:            cfg.Timeout,
			BreakerMaxFailures: cfg.BreakerMaxFailures,
			BreakerTimeout:     cfg.BreakerTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// Normalize scales v to unit L2 length in place. A zero vector is left as is.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
