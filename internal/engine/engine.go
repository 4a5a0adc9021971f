// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package engine answers cocktail queries: it classifies free text, resolves
// the intent against the corpus, the embedding index and the preference
// store, and returns a typed QueryResult.
//
// The corpus, index and classifier are published together as one immutable
// state through an atomic holder, so a reload never mixes versions within a
// request. The preference store is the only mutable shared state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/cache"
	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/intent"
	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/metrics"
	"github.com/tomtom215/barkeep/internal/preference"
	"github.com/tomtom215/barkeep/internal/vectorindex"
)

// Request states, as recorded in logs and metrics.
const (
	StateReceived   = "received"
	StateClassified = "classified"
	StateResolved   = "resolved"
	StateAnswered   = "answered"
	StateFailed     = "failed"
)

// state is one consistent view of the data the engine reads.
type state struct {
	corpus     *corpus.Corpus
	index      *vectorindex.Index
	classifier *intent.Classifier
	generation uint64
}

// Stats is a point-in-time summary for health reporting.
type Stats struct {
	Requests     int64  `json:"requests"`
	Failures     int64  `json:"failures"`
	CacheHits    int64  `json:"cache_hits"`
	CacheMisses  int64  `json:"cache_misses"`
	CacheEntries int    `json:"cache_entries"`
	Cocktails    int    `json:"cocktails"`
	IndexSize    int    `json:"index_size"`
	Generation   uint64 `json:"generation"`
	Model        string `json:"model"`
	Backend      string `json:"backend"`
}

// Engine answers queries. It is safe for concurrent use.
type Engine struct {
	config config.EngineConfig
	logger zerolog.Logger

	current *vectorindex.Holder[state]
	swapMu  sync.Mutex

	prefs *preference.Store
	cache *cache.LRUCache[*CocktailList]

	requestCount atomic.Int64
	failureCount atomic.Int64
}

// New creates an engine over c and idx. The index must cover exactly the
// corpus identities.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg config.EngineConfig, c *corpus.Corpus, idx *vectorindex.Index, prefs *preference.Store, logger zerolog.Logger) (*Engine, error) {
	if cfg.DefaultLimit < 1 || cfg.MaxLimit < cfg.DefaultLimit {
		return nil, fmt.Errorf("invalid engine limits: default %d, max %d", cfg.DefaultLimit, cfg.MaxLimit)
	}
	if prefs == nil {
		return nil, errors.New("preference store is required")
	}

	s, err := newState(c, idx, cfg.DefaultLimit, 1)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "engine").Logger(),
		current: vectorindex.NewHolder(s),
		prefs:   prefs,
	}
	if cfg.CacheEnabled {
		e.cache = cache.NewLRUCache[*CocktailList](cfg.CacheMaxEntries, cfg.CacheTTL)
	}
	metrics.RecordIndexSwap(s.generation)
	return e, nil
}

func newState(c *corpus.Corpus, idx *vectorindex.Index, defaultLimit int, generation uint64) (*state, error) {
	if c == nil || idx == nil {
		return nil, fmt.Errorf("%w: corpus and index are required", ErrInternalConsistency)
	}
	if idx.Len() != c.Len() {
		return nil, fmt.Errorf("%w: index holds %d entries for %d cocktails", ErrInternalConsistency, idx.Len(), c.Len())
	}
	for _, id := range c.IDs() {
		if !idx.Contains(id) {
			return nil, fmt.Errorf("%w: cocktail %q has no embedding", ErrInternalConsistency, id)
		}
	}
	return &state{
		corpus:     c,
		index:      idx,
		classifier: intent.NewClassifier(c, defaultLimit),
		generation: generation,
	}, nil
}

// Swap publishes a new corpus and index. In-flight requests finish against
// the state they started with; cached results from older generations are
// never served again.
func (e *Engine) Swap(c *corpus.Corpus, idx *vectorindex.Index) (uint64, error) {
	e.swapMu.Lock()
	defer e.swapMu.Unlock()

	next, err := newState(c, idx, e.config.DefaultLimit, e.current.Generation()+1)
	if err != nil {
		return 0, err
	}
	e.current.Swap(next)
	if e.cache != nil {
		e.cache.Clear()
	}
	metrics.RecordIndexSwap(next.generation)

	e.logger.Info().
		Uint64("generation", next.generation).
		Int("cocktails", c.Len()).
		Msg("engine state swapped")
	return next.generation, nil
}

// Corpus returns the active corpus.
func (e *Engine) Corpus() *corpus.Corpus {
	return e.current.Load().corpus
}

// Index returns the active index.
func (e *Engine) Index() *vectorindex.Index {
	return e.current.Load().index
}

// Generation returns the active state generation.
func (e *Engine) Generation() uint64 {
	return e.current.Load().generation
}

// Preferences returns the preference store.
func (e *Engine) Preferences() *preference.Store {
	return e.prefs
}

// Stats reports counters and the active state.
func (e *Engine) Stats() Stats {
	s := e.current.Load()
	stats := Stats{
		Requests:   e.requestCount.Load(),
		Failures:   e.failureCount.Load(),
		Cocktails:  s.corpus.Len(),
		IndexSize:  s.index.Len(),
		Generation: s.generation,
		Model:      s.index.ModelID(),
		Backend:    s.index.Backend(),
	}
	if e.cache != nil {
		stats.CacheHits, stats.CacheMisses, stats.CacheEntries = e.cache.Stats()
	}
	return stats
}

// Classify runs the classifier of the active state.
func (e *Engine) Classify(text string) (intent.Intent, string) {
	return e.current.Load().classifier.ClassifyWithRule(text)
}

// Handle classifies text and executes the resulting intent for userID.
// Query failures are reported as a *QueryError result; the returned error is
// non-nil only when ErrInternalConsistency was hit.
func (e *Engine) Handle(ctx context.Context, userID, text string) (QueryResult, error) {
	s := e.current.Load()
	logger := logging.FromContext(ctx, e.logger)
	logger.Trace().Str("user_id", userID).Str("state", StateReceived).Int("length", len(text)).Msg("query received")

	in, rule := s.classifier.ClassifyWithRule(text)
	metrics.RecordIntent(string(in.Kind()), rule)

	logger.Debug().
		Str("user_id", userID).
		Str("state", StateClassified).
		Str("intent", string(in.Kind())).
		Str("rule", rule).
		Msg("query classified")

	return e.execute(ctx, s, userID, in)
}

// Execute runs an already classified intent.
func (e *Engine) Execute(ctx context.Context, userID string, in intent.Intent) (QueryResult, error) {
	return e.execute(ctx, e.current.Load(), userID, in)
}

func (e *Engine) execute(ctx context.Context, s *state, userID string, in intent.Intent) (QueryResult, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if in == nil {
		in = intent.Unknown{}
	}
	kind := string(in.Kind())
	logger := logging.FromContext(ctx, e.logger).With().
		Str("user_id", userID).
		Str("intent", kind).
		Uint64("generation", s.generation).
		Logger()

	result, err := e.resolve(ctx, s, userID, in)

	finalState := StateAnswered
	if qe, failed := AsQueryError(result); failed {
		finalState = StateFailed
		e.failureCount.Add(1)
		if err != nil {
			logger.Error().Err(err).Str("state", finalState).Msg("query failed on an internal inconsistency")
		} else {
			logger.Debug().Str("state", finalState).Str("error_kind", string(qe.Kind)).Msg("query failed")
		}
	} else {
		logger.Trace().Str("state", StateResolved).Msg("intent resolved")
		logger.Debug().Str("state", finalState).Dur("duration", time.Since(start)).Msg("query answered")
	}
	metrics.RecordQuery(kind, finalState, time.Since(start))

	return result, err
}

// resolve dispatches an intent. Internal inconsistencies come back as both
// a *QueryError result and a wrapped ErrInternalConsistency.
func (e *Engine) resolve(ctx context.Context, s *state, userID string, in intent.Intent) (QueryResult, error) {
	switch v := in.(type) {
	case intent.SearchByIngredient:
		return e.cached(s, v, func() (QueryResult, error) { return e.searchByIngredient(s, v) })
	case intent.FilterByAlcoholContent:
		return e.cached(s, v, func() (QueryResult, error) { return e.filterByAlcohol(s, v) })
	case intent.RecommendSimilarTo:
		return e.cached(s, v, func() (QueryResult, error) { return e.similarTo(s, v) })
	case intent.RecommendFromPreferences:
		return e.fromPreferences(ctx, s, userID, v)
	case intent.StatePreference:
		return e.statePreference(ctx, s, userID, v)
	case intent.ShowPreferences:
		return e.showPreferences(ctx, s, userID)
	default:
		return unclassified(), nil
	}
}

// cached serves user-independent intents from the LRU keyed by generation.
func (e *Engine) cached(s *state, in intent.Intent, compute func() (QueryResult, error)) (QueryResult, error) {
	if e.cache == nil {
		return compute()
	}

	key := cacheKey(s.generation, in)
	if hit, ok := e.cache.Get(key); ok {
		metrics.RecordCacheLookup("query", true)
		return hit.clone(), nil
	}
	metrics.RecordCacheLookup("query", false)

	result, err := compute()
	if list, ok := result.(*CocktailList); ok && err == nil {
		e.cache.Add(key, list.clone())
	}
	return result, err
}

func cacheKey(generation uint64, in intent.Intent) string {
	switch v := in.(type) {
	case intent.SearchByIngredient:
		alcohol := "any"
		if v.Alcohol != nil {
			alcohol = fmt.Sprintf("%t", v.Alcohol.WantAlcoholic)
		}
		return fmt.Sprintf("%d|%s|%s|%d|%s", generation, v.Kind(), corpus.NormalizeText(v.Ingredient), v.Limit, alcohol)
	case intent.FilterByAlcoholContent:
		return fmt.Sprintf("%d|%s|%t|%d", generation, v.Kind(), v.WantAlcoholic, v.Limit)
	case intent.RecommendSimilarTo:
		return fmt.Sprintf("%d|%s|%s|%d", generation, v.Kind(), corpus.NormalizeKey(v.CocktailName), v.Limit)
	default:
		return fmt.Sprintf("%d|%s", generation, in.Kind())
	}
}

// limit validates a requested count and clamps it to the configured maximum.
func (e *Engine) limit(n int) (int, *QueryError) {
	if n <= 0 {
		return 0, invalidArgument(fmt.Sprintf(msgInvalidLimitFmt, n))
	}
	if n > e.config.MaxLimit {
		return e.config.MaxLimit, nil
	}
	return n, nil
}
