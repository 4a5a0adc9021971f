// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package config loads Barkeep's layered configuration (defaults, YAML file,
// environment variables) with Koanf v2 and validates it.
//
// Environment variables are mapped explicitly (see envTransformFunc); unknown
// variables are ignored so the process environment cannot pollute the config.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Corpus    CorpusConfig    `koanf:"corpus"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Index     IndexConfig     `koanf:"index"`
	Storage   StorageConfig   `koanf:"storage"`
	Engine    EngineConfig    `koanf:"engine"`
}

// ServerConfig holds HTTP transport settings.
//
// Environment Variables:
//   - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
//   - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//   - CORS_ORIGINS (comma-separated)
type ServerConfig struct {
	// Host is the listen address.
	// Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port.
	// Default: 8085
	Port int `koanf:"port"`

	// Timeout bounds request read and write time.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitReqs is the per-IP request budget for each window.
	// Default: 120
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window.
	// Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns per-IP limiting off.
	// Default: false
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// CORSOrigins lists allowed origins.
	// Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// CorpusConfig locates the cocktail dataset.
type CorpusConfig struct {
	// Path is the processed_drinks.json file.
	// Default: data/processed_drinks.json
	Path string `koanf:"path"`

	// Watch rebuilds the corpus and index when the file changes.
	// Default: false
	Watch bool `koanf:"watch"`

	// ReloadDebounce coalesces bursts of file events.
	// Default: 2s
	ReloadDebounce time.Duration `koanf:"reload_debounce"`
}

// EmbeddingConfig selects the embedding provider used at index build time.
//
// Environment Variables:
//   - EMBEDDING_PROVIDER: hashing or openai
//   - EMBEDDING_MODEL, EMBEDDING_DIMENSION
//   - EMBEDDING_BASE_URL, EMBEDDING_API_KEY, EMBEDDING_TIMEOUT
type EmbeddingConfig struct {
	// Provider is "hashing" (local, deterministic) or "openai" (any
	// OpenAI-compatible /embeddings endpoint).
	// Default: hashing
	Provider string `koanf:"provider"`

	// Model is the remote model name, also part of snapshot keys.
	// Default: all-MiniLM-L6-v2
	Model string `koanf:"model"`

	// Dimension is the vector size D.
	// Default: 384
	Dimension int `koanf:"dimension"`

	// BaseURL of the OpenAI-compatible API.
	// Default: http://127.0.0.1:11434/v1
	BaseURL string `koanf:"base_url"`

	// APIKey for the remote API (optional for local servers).
	APIKey string `koanf:"api_key"`

	// Timeout per embedding request.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// BreakerMaxFailures trips the circuit breaker after this many
	// consecutive failures.
	// Default: 5
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures"`

	// BreakerTimeout is how long the breaker stays open.
	// Default: 30s
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// IndexConfig controls the vector index.
type IndexConfig struct {
	// Backend is "exact" or "hnsw".
	// Default: exact
	Backend string `koanf:"backend"`

	// Metric is "cosine" or "l2".
	// Default: cosine
	Metric string `koanf:"metric"`

	// HNSWM is the HNSW max neighbors per node.
	// Default: 16
	HNSWM int `koanf:"hnsw_m"`

	// HNSWEfSearch is the HNSW search breadth.
	// Default: 64
	HNSWEfSearch int `koanf:"hnsw_ef_search"`

	// Snapshot caches embeddings in storage so rebuilds skip the embedder.
	// Default: true
	Snapshot bool `koanf:"snapshot"`
}

// StorageConfig holds BadgerDB settings for preferences and snapshots.
type StorageConfig struct {
	// Path is the Badger directory.
	// Default: data/barkeep.badger
	Path string `koanf:"path"`

	// InMemory keeps everything in RAM (nothing survives restart).
	// Default: false
	InMemory bool `koanf:"in_memory"`

	// SyncWrites makes every commit durable before returning.
	// Default: true
	SyncWrites bool `koanf:"sync_writes"`

	// GCInterval is how often value-log GC runs. Zero disables it.
	// Default: 10m
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EngineConfig tunes query resolution and ranking.
type EngineConfig struct {
	// DefaultLimit applies when a query names no count.
	// Default: 5
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps any requested count.
	// Default: 50
	MaxLimit int `koanf:"max_limit"`

	// IngredientBonus is added to a cocktail's score when it contains a
	// liked ingredient.
	// Default: 0.25
	IngredientBonus float64 `koanf:"ingredient_bonus"`

	// RawTokenWeight scales the bonus for unrecognized liked tokens.
	// Default: 0.5
	RawTokenWeight float64 `koanf:"raw_token_weight"`

	// DislikePenalty is subtracted when a cocktail contains a disliked ingredient.
	// Default: 0.25
	DislikePenalty float64 `koanf:"dislike_penalty"`

	// FuzzyThreshold is the minimum name similarity (0-1) for fuzzy
	// cocktail name resolution.
	// Default: 0.8
	FuzzyThreshold float64 `koanf:"fuzzy_threshold"`

	// CandidatePool bounds vector candidates for preference ranking
	// (0 = whole corpus).
	// Default: 0
	CandidatePool int `koanf:"candidate_pool"`

	// ExcludeLikedCocktails drops cocktails the user already likes from
	// preference recommendations.
	// Default: true
	ExcludeLikedCocktails bool `koanf:"exclude_liked_cocktails"`

	// CacheEnabled turns on the result cache.
	// Default: true
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL is the result cache entry lifetime.
	// Default: 5m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheMaxEntries bounds the result cache.
	// Default: 1024
	CacheMaxEntries int `koanf:"cache_max_entries"`
}
