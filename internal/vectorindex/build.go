// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package vectorindex

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/embedding"
	"github.com/tomtom215/barkeep/internal/metrics"
)

// Options configures Build.
type Options struct {
	Metric Metric

	// Backend is "exact" (default) or "hnsw".
	Backend string
	HNSW    HNSWConfig

	// Snapshot, if set, is consulted before embedding and updated after.
	Snapshot *SnapshotStore

	Logger zerolog.Logger
}

// BuildStats reports where embeddings came from.
type BuildStats struct {
	Computed int
	Reused   int
	Duration time.Duration
}

// Build embeds every cocktail's canonical text and indexes the result in
// corpus order. It is the only place embeddings are produced.
func Build(ctx context.Context, c *corpus.Corpus, e embedding.Embedder, opts Options) (*Index, BuildStats, error) {
	start := time.Now()
	idx, stats, err := build(ctx, c, e, opts)
	stats.Duration = time.Since(start)
	metrics.RecordIndexBuild(stats.Duration, c.Len(), err)
	if err != nil {
		return nil, stats, err
	}

	opts.Logger.Info().
		Int("entries", idx.Len()).
		Int("computed", stats.Computed).
		Int("reused", stats.Reused).
		Str("model", e.ModelID()).
		Str("backend", idx.Backend()).
		Str("metric", idx.Metric().String()).
		Dur("duration", stats.Duration).
		Msg("embedding index built")
	return idx, stats, nil
}

func build(ctx context.Context, c *corpus.Corpus, e embedding.Embedder, opts Options) (*Index, BuildStats, error) {
	var stats BuildStats

	if opts.Backend != "" && opts.Backend != "exact" && opts.Backend != "hnsw" {
		return nil, stats, fmt.Errorf("%w: unknown index backend %q", ErrInvalidArgument, opts.Backend)
	}

	model := e.ModelID()
	ids := c.IDs()
	vectors := make([][]float32, len(ids))
	fresh := make(map[string][]float32)
	hashes := make(map[string]string)

	for i, ct := range c.All() {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		text := ct.CanonicalText()
		hash := TextHash(text)

		if opts.Snapshot != nil {
			vec, ok, err := opts.Snapshot.Lookup(model, ct.ID, hash)
			if err != nil {
				opts.Logger.Warn().Err(err).Str("cocktail", ct.ID).Msg("ignoring unreadable embedding snapshot")
			} else if ok && len(vec) == e.Dim() {
				vectors[i] = vec
				stats.Reused++
				continue
			}
		}

		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, stats, fmt.Errorf("embed %q: %w", ct.Name, err)
		}
		if len(vec) != e.Dim() {
			return nil, stats, fmt.Errorf("embed %q: %w: got %d, want %d", ct.Name, embedding.ErrDimensionMismatch, len(vec), e.Dim())
		}
		vectors[i] = vec
		fresh[ct.ID] = vec
		hashes[ct.ID] = hash
		stats.Computed++
	}

	metrics.RecordEmbeddings("computed", stats.Computed)
	metrics.RecordEmbeddings("snapshot", stats.Reused)

	if opts.Snapshot != nil {
		if err := opts.Snapshot.PutAll(model, fresh, hashes); err != nil {
			return nil, stats, err
		}
	}

	idx, err := New(ids, vectors, opts.Metric, model)
	if err != nil {
		return nil, stats, err
	}
	if opts.Backend == "hnsw" {
		idx.approx = newHNSWCandidates(opts.HNSW, opts.Metric, idx.vectors)
		idx.backend = "hnsw"
	}
	return idx, stats, nil
}
