// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package vectorindex provides exact k-nearest-neighbour search over cocktail
// embeddings, with an optional HNSW graph as a candidate generator.
//
// An Index is immutable once built and safe for concurrent readers. Rebuilds
// produce a new Index that is published through a Holder.
package vectorindex

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFound is returned when an identity has no entry.
	ErrNotFound = errors.New("vector not found")

	// ErrInvalidArgument is returned for bad k, dimension or metric input.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Neighbor is one search hit. Ordinal is the corpus insertion position.
type Neighbor struct {
	ID         string
	Ordinal    int
	Distance   float64
	Similarity float64
}

// candidateSource narrows the set of ordinals to rescore. nil means all.
type candidateSource interface {
	candidates(q []float32, k int) []int
}

// Index maps identities to vectors.
type Index struct {
	ids      []string
	ordinals map[string]int
	vectors  [][]float32
	dim      int
	metric   Metric
	model    string
	backend  string
	approx   candidateSource
}

// New builds an exact index over ids and vectors, which must be parallel and
// in corpus insertion order. Vectors are copied (and normalized under Cosine).
func New(ids []string, vectors [][]float32, metric Metric, model string) (*Index, error) {
	if len(ids) != len(vectors) {
		return nil, fmt.Errorf("%w: %d ids but %d vectors", ErrInvalidArgument, len(ids), len(vectors))
	}

	idx := &Index{
		ids:      make([]string, len(ids)),
		ordinals: make(map[string]int, len(ids)),
		vectors:  make([][]float32, len(vectors)),
		metric:   metric,
		model:    model,
		backend:  "exact",
	}
	copy(idx.ids, ids)

	for i, v := range vectors {
		if i == 0 {
			idx.dim = len(v)
		}
		if len(v) == 0 || len(v) != idx.dim {
			return nil, fmt.Errorf("%w: vector %q has dimension %d, want %d", ErrInvalidArgument, ids[i], len(v), idx.dim)
		}
		if _, dup := idx.ordinals[ids[i]]; dup {
			return nil, fmt.Errorf("%w: duplicate identity %q", ErrInvalidArgument, ids[i])
		}
		idx.ordinals[ids[i]] = i

		cp := make([]float32, len(v))
		copy(cp, v)
		if metric == Cosine {
			n := l2norm(cp)
			if n == 0 {
				return nil, fmt.Errorf("%w: zero vector for %q under cosine", ErrInvalidArgument, ids[i])
			}
			for j := range cp {
				cp[j] = float32(float64(cp[j]) / n)
			}
		}
		idx.vectors[i] = cp
	}

	return idx, nil
}

// Len returns the number of entries.
func (idx *Index) Len() int { return len(idx.ids) }

// Dim returns the vector dimension (0 for an empty index).
func (idx *Index) Dim() int { return idx.dim }

// Metric returns the distance metric.
func (idx *Index) Metric() Metric { return idx.metric }

// ModelID returns the embedding model the vectors came from.
func (idx *Index) ModelID() string { return idx.model }

// Backend returns "exact" or "hnsw".
func (idx *Index) Backend() string { return idx.backend }

// IDs returns identities in insertion order.
func (idx *Index) IDs() []string {
	out := make([]string, len(idx.ids))
	copy(out, idx.ids)
	return out
}

// Contains reports whether id has an entry.
func (idx *Index) Contains(id string) bool {
	_, ok := idx.ordinals[id]
	return ok
}

// EmbeddingOf returns a copy of id's stored vector.
func (idx *Index) EmbeddingOf(id string) ([]float32, error) {
	i, ok := idx.ordinals[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	out := make([]float32, idx.dim)
	copy(out, idx.vectors[i])
	return out, nil
}

// Similarity scores a single entry against vec.
func (idx *Index) Similarity(vec []float32, id string) (float64, error) {
	i, ok := idx.ordinals[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	qNorm, err := idx.checkQuery(vec)
	if err != nil {
		return 0, err
	}
	return idx.metric.Similarity(idx.metric.distance(vec, qNorm, idx.vectors[i])), nil
}

// Centroid averages the vectors of ids. Unknown ids are an error.
func (idx *Index) Centroid(ids ...string) ([]float32, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: centroid of no vectors", ErrInvalidArgument)
	}
	sum := make([]float64, idx.dim)
	for _, id := range ids {
		i, ok := idx.ordinals[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		for j, x := range idx.vectors[i] {
			sum[j] += float64(x)
		}
	}
	out := make([]float32, idx.dim)
	for j := range sum {
		out[j] = float32(sum[j] / float64(len(ids)))
	}
	return out, nil
}

// Nearest returns up to k entries closest to vec, ascending by distance with
// ties broken by insertion order. Excluded identities are skipped. k is
// clamped to Len.
func (idx *Index) Nearest(vec []float32, k int, exclude ...string) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidArgument, k)
	}
	qNorm, err := idx.checkQuery(vec)
	if err != nil {
		return nil, err
	}
	if k > len(idx.ids) {
		k = len(idx.ids)
	}

	skip := make(map[int]struct{}, len(exclude))
	for _, id := range exclude {
		if i, ok := idx.ordinals[id]; ok {
			skip[i] = struct{}{}
		}
	}

	var pool []int
	if idx.approx != nil {
		pool = idx.approx.candidates(vec, k+len(skip))
		// A short pool means unreachable nodes; fall back to the exact scan.
		if pool != nil && len(pool) < min(k+len(skip), len(idx.ids)) {
			pool = nil
		}
	}

	hits := make([]Neighbor, 0, len(idx.ids))
	score := func(i int) {
		if _, excluded := skip[i]; excluded {
			return
		}
		d := idx.metric.distance(vec, qNorm, idx.vectors[i])
		hits = append(hits, Neighbor{
			ID:         idx.ids[i],
			Ordinal:    i,
			Distance:   d,
			Similarity: idx.metric.Similarity(d),
		})
	}
	if pool != nil {
		for _, i := range pool {
			score(i)
		}
	} else {
		for i := range idx.vectors {
			score(i)
		}
	}

	sortNeighbors(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (idx *Index) checkQuery(vec []float32) (float64, error) {
	if len(vec) != idx.dim || idx.dim == 0 {
		return 0, fmt.Errorf("%w: query dimension %d, index dimension %d", ErrInvalidArgument, len(vec), idx.dim)
	}
	n := l2norm(vec)
	if idx.metric == Cosine && n == 0 {
		return 0, fmt.Errorf("%w: zero query vector under cosine", ErrInvalidArgument)
	}
	return n, nil
}

func sortNeighbors(hits []Neighbor) {
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Ordinal < hits[b].Ordinal
	})
}
