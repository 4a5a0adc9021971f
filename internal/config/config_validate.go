// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateCorpus(); err != nil {
		return err
	}

	if err := c.validateEmbedding(); err != nil {
		return err
	}

	if err := c.validateIndex(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	return c.validateEngine()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !c.Server.RateLimitDisabled && (c.Server.RateLimitReqs < 1 || c.Server.RateLimitWindow <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateCorpus() error {
	if strings.TrimSpace(c.Corpus.Path) == "" {
		return fmt.Errorf("CORPUS_PATH is required")
	}
	if c.Corpus.Watch && c.Corpus.ReloadDebounce <= 0 {
		return fmt.Errorf("CORPUS_RELOAD_DEBOUNCE must be positive when CORPUS_WATCH=true")
	}
	return nil
}

func (c *Config) validateEmbedding() error {
	if c.Embedding.Dimension < 1 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.Embedding.Dimension)
	}

	switch c.Embedding.Provider {
	case "hashing":
		return nil
	case "openai":
		if c.Embedding.Model == "" {
			return fmt.Errorf("EMBEDDING_MODEL is required when EMBEDDING_PROVIDER=openai")
		}
		u, err := url.Parse(c.Embedding.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("EMBEDDING_BASE_URL must be an http(s) URL, got %q", c.Embedding.BaseURL)
		}
		if c.Embedding.Timeout <= 0 {
			return fmt.Errorf("EMBEDDING_TIMEOUT must be positive")
		}
		return nil
	default:
		return fmt.Errorf("EMBEDDING_PROVIDER must be one of: hashing, openai")
	}
}

func (c *Config) validateIndex() error {
	switch c.Index.Backend {
	case "exact":
	case "hnsw":
		if c.Index.HNSWM < 2 {
			return fmt.Errorf("INDEX_HNSW_M must be at least 2, got %d", c.Index.HNSWM)
		}
		if c.Index.HNSWEfSearch < 1 {
			return fmt.Errorf("INDEX_HNSW_EF_SEARCH must be positive, got %d", c.Index.HNSWEfSearch)
		}
	default:
		return fmt.Errorf("INDEX_BACKEND must be one of: exact, hnsw")
	}

	if c.Index.Metric != "cosine" && c.Index.Metric != "l2" {
		return fmt.Errorf("INDEX_METRIC must be one of: cosine, l2")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if !c.Storage.InMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	if c.Storage.GCInterval < 0 {
		return fmt.Errorf("BADGER_GC_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateEngine() error {
	e := c.Engine
	if e.DefaultLimit < 1 {
		return fmt.Errorf("engine.default_limit must be positive, got %d", e.DefaultLimit)
	}
	if e.MaxLimit < e.DefaultLimit {
		return fmt.Errorf("engine.max_limit (%d) must be >= engine.default_limit (%d)", e.MaxLimit, e.DefaultLimit)
	}
	if e.IngredientBonus < 0 || e.DislikePenalty < 0 {
		return fmt.Errorf("engine.ingredient_bonus and engine.dislike_penalty must be non-negative")
	}
	if e.RawTokenWeight < 0 || e.RawTokenWeight > 1 {
		return fmt.Errorf("engine.raw_token_weight must be in [0,1], got %v", e.RawTokenWeight)
	}
	if e.FuzzyThreshold <= 0 || e.FuzzyThreshold > 1 {
		return fmt.Errorf("engine.fuzzy_threshold must be in (0,1], got %v", e.FuzzyThreshold)
	}
	if e.CandidatePool < 0 {
		return fmt.Errorf("engine.candidate_pool must be non-negative, got %d", e.CandidatePool)
	}
	if e.CacheEnabled && (e.CacheTTL <= 0 || e.CacheMaxEntries < 1) {
		return fmt.Errorf("engine.cache_ttl and engine.cache_max_entries must be positive when the cache is enabled")
	}
	return nil
}
