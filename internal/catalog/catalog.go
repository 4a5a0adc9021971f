// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package catalog loads the cocktail corpus and builds its embedding index
// from configuration. The server uses it at startup and on every corpus
// reload; the CLI uses it to precompute embedding snapshots.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/embedding"
	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/metrics"
	"github.com/tomtom215/barkeep/internal/vectorindex"
)

// Builder turns the corpus file into a corpus and a matching index.
type Builder struct {
	path     string
	embedder embedding.Embedder
	opts     vectorindex.Options
	logger   zerolog.Logger
}

// NewBuilder prepares a builder. snapshot may be nil to always embed.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBuilder(corpusPath string, idx config.IndexConfig, e embedding.Embedder, snapshot *vectorindex.SnapshotStore, logger zerolog.Logger) (*Builder, error) {
	metric, err := vectorindex.ParseMetric(idx.Metric)
	if err != nil {
		return nil, err
	}
	logger = logger.With().Str("component", "catalog").Logger()

	opts := vectorindex.Options{
		Metric:  metric,
		Backend: idx.Backend,
		HNSW: vectorindex.HNSWConfig{
			M:        idx.HNSWM,
			EfSearch: idx.HNSWEfSearch,
		},
		Logger: logger,
	}
	if idx.Snapshot {
		opts.Snapshot = snapshot
	}

	return &Builder{path: corpusPath, embedder: e, opts: opts, logger: logger}, nil
}

// Path returns the corpus file the builder reads.
func (b *Builder) Path() string {
	return b.path
}

// ModelID returns the embedder's model name.
func (b *Builder) ModelID() string {
	return b.embedder.ModelID()
}

// Build loads the corpus file and indexes it.
func (b *Builder) Build(ctx context.Context) (*corpus.Corpus, *vectorindex.Index, vectorindex.BuildStats, error) {
	c, skipped, err := corpus.LoadFile(b.path)
	if err != nil {
		return nil, nil, vectorindex.BuildStats{}, err
	}
	for _, s := range skipped {
		b.logger.Warn().Int("record", s.Index).Str("name", s.Name).Str("reason", s.Reason).Msg("corpus record skipped")
	}
	b.logger.Info().
		Str("path", b.path).
		Int("cocktails", c.Len()).
		Int("skipped", len(skipped)).
		Int("ingredients", len(c.Vocabulary())).
		Msg("corpus loaded")

	idx, stats, err := vectorindex.Build(ctx, c, b.embedder, b.opts)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("build index: %w", err)
	}
	return c, idx, stats, nil
}

// Reloader rebuilds the corpus and index and swaps them into an engine.
type Reloader struct {
	builder *Builder
	engine  *engine.Engine
	logger  zerolog.Logger
}

// NewReloader creates a reloader for eng.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewReloader(b *Builder, eng *engine.Engine, logger zerolog.Logger) *Reloader {
	return &Reloader{
		builder: b,
		engine:  eng,
		logger:  logger.With().Str("component", "reloader").Logger(),
	}
}

// Reload rebuilds and swaps. On any failure the engine keeps serving the
// previous corpus and index.
func (r *Reloader) Reload(ctx context.Context) error {
	err := r.reload(ctx)
	metrics.RecordCorpusReload(err)
	return err
}

func (r *Reloader) reload(ctx context.Context) error {
	c, idx, stats, err := r.builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("reload corpus: %w", err)
	}

	generation, err := r.engine.Swap(c, idx)
	if err != nil {
		return fmt.Errorf("swap corpus: %w", err)
	}

	r.logger.Info().
		Uint64("generation", generation).
		Int("cocktails", c.Len()).
		Int("computed", stats.Computed).
		Int("reused", stats.Reused).
		Msg("corpus reloaded")
	return nil
}
