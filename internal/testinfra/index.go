// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package testinfra

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/embedding"
	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/preference"
	"github.com/tomtom215/barkeep/internal/storage"
	"github.com/tomtom215/barkeep/internal/vectorindex"
)

// Index embeds c with the hashing embedder into an exact cosine index.
func Index(tb testing.TB, c *corpus.Corpus) *vectorindex.Index {
	tb.Helper()
	idx, _, err := vectorindex.Build(context.Background(), c,
		embedding.NewHashingEmbedder(embedding.DefaultDimension),
		vectorindex.Options{Metric: vectorindex.Cosine, Logger: zerolog.Nop()})
	if err != nil {
		tb.Fatalf("build fixture index: %v", err)
	}
	return idx
}

// Storage opens an in-memory Badger store closed at test cleanup.
func Storage(tb testing.TB) *storage.Store {
	tb.Helper()
	st, err := storage.OpenInMemory(zerolog.Nop())
	if err != nil {
		tb.Fatalf("open in-memory storage: %v", err)
	}
	tb.Cleanup(func() { _ = st.Close() })
	return st
}

// Preferences returns a preference store over in-memory Badger.
func Preferences(tb testing.TB) *preference.Store {
	tb.Helper()
	return preference.NewStore(preference.NewBadgerBackend(Storage(tb)), zerolog.Nop())
}

// EngineConfig returns the default engine settings.
func EngineConfig() config.EngineConfig {
	return config.EngineConfig{
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
		CacheMaxEntries:       128,
	}
}

// Engine builds an engine over the fixture corpus, hashing index and
// in-memory preference store.
func Engine(tb testing.TB) *engine.Engine {
	tb.Helper()
	c := Corpus(tb)
	e, err := engine.New(EngineConfig(), c, Index(tb, c), Preferences(tb), zerolog.Nop())
	if err != nil {
		tb.Fatalf("build fixture engine: %v", err)
	}
	return e
}
