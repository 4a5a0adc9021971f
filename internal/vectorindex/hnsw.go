// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package vectorindex

import (
	"math/rand"

	"github.com/coder/hnsw"
)

// HNSWConfig holds graph parameters for the hnsw backend.
type HNSWConfig struct {
	// M is the maximum number of neighbors per node. Default: 16.
	M int

	// EfSearch is the number of candidates considered during search. Default: 64.
	EfSearch int

	// Ml is the level generation factor. Default: 0.25.
	Ml float64

	// Seed fixes level generation so identical corpora produce identical graphs.
	Seed int64
}

func (c HNSWConfig) withDefaults() HNSWConfig {
	if c.M == 0 {
		c.M = 16
	}
	if c.EfSearch == 0 {
		c.EfSearch = 64
	}
	if c.Ml == 0 {
		c.Ml = 0.25
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// hnswCandidates finds approximate neighbours in a Hierarchical Navigable
// Small World graph keyed by insertion ordinal. The index rescores what it
// returns with the exact metric, so only recall depends on the graph.
type hnswCandidates struct {
	graph    *hnsw.Graph[int]
	efSearch int
}

func newHNSWCandidates(cfg HNSWConfig, metric Metric, vectors [][]float32) *hnswCandidates {
	cfg = cfg.withDefaults()

	g := hnsw.NewGraph[int]()
	g.M = cfg.M
	g.EfSearch = cfg.EfSearch
	g.Ml = cfg.Ml
	g.Rng = rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // graph level sampling, not security
	if metric == L2 {
		g.Distance = hnsw.EuclideanDistance
	} else {
		g.Distance = hnsw.CosineDistance
	}

	nodes := make([]hnsw.Node[int], len(vectors))
	for i, v := range vectors {
		nodes[i] = hnsw.MakeNode(i, v)
	}
	if len(nodes) > 0 {
		g.Add(nodes...)
	}

	return &hnswCandidates{graph: g, efSearch: cfg.EfSearch}
}

// candidates over-fetches so that exact rescoring can restore tie order
// among near-equal hits. A nil result means the search would cover the
// whole graph and the caller should scan every entry; the graph does not
// guarantee that every node is reachable from the entry point.
func (h *hnswCandidates) candidates(q []float32, k int) []int {
	want := k * 2
	if want < h.efSearch {
		want = h.efSearch
	}
	if want >= h.graph.Len() {
		return nil
	}

	nodes := h.graph.Search(q, want)
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.Key
	}
	return out
}
