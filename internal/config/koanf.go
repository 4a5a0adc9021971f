// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/barkeep/config.yaml",
	"/etc/barkeep/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8085,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Corpus: CorpusConfig{
			Path:           "data/processed_drinks.json",
			Watch:          false,
			ReloadDebounce: 2 * time.Second,
		},
		Embedding: EmbeddingConfig{
			Provider:           "hashing",
			Model:              "all-MiniLM-L6-v2",
			Dimension:          384,
			BaseURL:            "http://127.0.0.1:11434/v1",
			Timeout:            30 * time.Second,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Index: IndexConfig{
			Backend:      "exact",
			Metric:       "cosine",
			HNSWM:        16,
			HNSWEfSearch: 64,
			Snapshot:     true,
		},
		Storage: StorageConfig{
			Path:       "data/barkeep.badger",
			InMemory:   false,
			SyncWrites: true,
			GCInterval: 10 * time.Minute,
		},
		Engine: EngineConfig{
			DefaultLimit:          5,
			MaxLimit:              50,
			IngredientBonus:       0.25,
			RawTokenWeight:        0.5,
			DislikePenalty:        0.25,
			FuzzyThreshold:        0.8,
			CandidatePool:         0,
			ExcludeLikedCocktails: true,
			CacheEnabled:          true,
			CacheTTL:              5 * time.Minute,
			CacheMaxEntries:       1024,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	return Load("")
}

// Load is LoadWithKoanf with an explicit config file path. An empty path
// falls back to the CONFIG_PATH / DefaultConfigPaths search; an explicit
// path that does not exist is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"rate_limit_requests":   "server.rate_limit_reqs",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",
	"cors_origins":          "server.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Corpus
	"corpus_path":            "corpus.path",
	"corpus_watch":           "corpus.watch",
	"corpus_reload_debounce": "corpus.reload_debounce",

	// Embedding
	"embedding_provider":             "embedding.provider",
	"embedding_model":                "embedding.model",
	"embedding_dimension":            "embedding.dimension",
	"embedding_base_url":             "embedding.base_url",
	"embedding_api_key":              "embedding.api_key",
	"embedding_timeout":              "embedding.timeout",
	"embedding_breaker_max_failures": "embedding.breaker_max_failures",
	"embedding_breaker_timeout":      "embedding.breaker_timeout",

	// Index
	"index_backend":        "index.backend",
	"index_metric":         "index.metric",
	"index_hnsw_m":         "index.hnsw_m",
	"index_hnsw_ef_search": "index.hnsw_ef_search",
	"index_snapshot":       "index.snapshot",

	// Storage
	"badger_path":        "storage.path",
	"badger_in_memory":   "storage.in_memory",
	"badger_sync_writes": "storage.sync_writes",
	"badger_gc_interval": "storage.gc_interval",

	// Engine
	"engine_default_limit":           "engine.default_limit",
	"engine_max_limit":               "engine.max_limit",
	"engine_ingredient_bonus":        "engine.ingredient_bonus",
	"engine_raw_token_weight":        "engine.raw_token_weight",
	"engine_dislike_penalty":         "engine.dislike_penalty",
	"engine_fuzzy_threshold":         "engine.fuzzy_threshold",
	"engine_candidate_pool":          "engine.candidate_pool",
	"engine_exclude_liked_cocktails": "engine.exclude_liked_cocktails",
	"engine_cache_enabled":           "engine.cache_enabled",
	"engine_cache_ttl":               "engine.cache_ttl",
	"engine_cache_max_entries":       "engine.cache_max_entries",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CORPUS_PATH -> corpus.path
//   - ENGINE_INGREDIENT_BONUS -> engine.ingredient_bonus
//
// Unmapped keys return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
