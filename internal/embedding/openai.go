// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package embedding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/barkeep/internal/metrics"
)

const openAIProvider = "openai"

// OpenAIConfig configures an OpenAIEmbedder.
type OpenAIConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
	Timeout   time.Duration

	// BreakerMaxFailures consecutive failures open the circuit.
	BreakerMaxFailures uint32
	// BreakerTimeout is how long the circuit stays open before a probe.
	BreakerTimeout time.Duration

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// OpenAIEmbedder calls POST {BaseURL}/embeddings on any server speaking the
// OpenAI embeddings API (OpenAI, Ollama, llama.cpp, vLLM).
type OpenAIEmbedder struct {
	cfg    OpenAIConfig
	client *http.Client
	cb     *gobreaker.CircuitBreaker[[]float32]
	name   string
	logger zerolog.Logger
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOpenAIEmbedder validates cfg and returns a breaker-guarded client.
func NewOpenAIEmbedder(cfg OpenAIConfig, logger zerolog.Logger) (*OpenAIEmbedder, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("openai embedder: base URL is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai embedder: model is required")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("openai embedder: dimension must be positive, got %d", cfg.Dimension)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	e := &OpenAIEmbedder{
		cfg:    cfg,
		client: client,
		name:   "embedding-" + openAIProvider,
		logger: logger.With().Str("component", "embedding").Str("provider", openAIProvider).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(e.name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(e.name).Set(0)

	e.cb = gobreaker.NewCircuitBreaker[[]float32](gobreaker.Settings{
		Name:        e.name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("embedding circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return e, nil
}

// ModelID implements Embedder.
func (e *OpenAIEmbedder) ModelID() string {
	return e.cfg.Model
}

// Dim implements Embedder.
func (e *OpenAIEmbedder) Dim() int {
	return e.cfg.Dimension
}

// Embed implements Embedder. Calls fail fast with gobreaker.ErrOpenState
// while the circuit is open.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	vec, err := e.cb.Execute(func() ([]float32, error) {
		return e.request(ctx, text)
	})
	metrics.RecordEmbeddingRequest(openAIProvider, err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(e.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(e.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(e.name).Set(float64(e.cb.Counts().ConsecutiveFailures))
		}
		return nil, fmt.Errorf("embed via %s: %w", e.cfg.BaseURL, err)
	}

	metrics.CircuitBreakerRequests.WithLabelValues(e.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(e.name).Set(0)
	return vec, nil
}

func (e *OpenAIEmbedder) request(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.cfg.Model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("embeddings endpoint returned %d: %s", resp.StatusCode, msg)
	}

	if len(parsed.Data) == 0 {
		return nil, errors.New("embeddings endpoint returned no data")
	}

	vec := parsed.Data[0].Embedding
	if len(vec) != e.cfg.Dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), e.cfg.Dimension)
	}
	return vec, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
