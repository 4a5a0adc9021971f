// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package embedding

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/barkeep/internal/corpus"
)

// DefaultDimension matches all-MiniLM-L6-v2 so snapshots from either
// provider have the same shape.
const DefaultDimension = 384

const (
	unigramWeight = 1.0
	bigramWeight  = 0.5
	trigramWeight = 0.25
)

// HashingEmbedder is a deterministic bag-of-features embedder. Each
// stemmed word, adjacent word pair and character trigram is hashed with
// xxhash into one of Dim buckets with a hash-derived sign, and the result is
// L2-normalized. Texts sharing ingredients and vocabulary land close together
// under cosine distance.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder returns an embedder with the given dimension, or
// DefaultDimension if dim is not positive.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingEmbedder{dim: dim}
}

// ModelID implements Embedder.
func (h *HashingEmbedder) ModelID() string {
	return fmt.Sprintf("hashing-v1-%d", h.dim)
}

// Dim implements Embedder.
func (h *HashingEmbedder) Dim() int {
	return h.dim
}

// Embed implements Embedder. It never blocks; ctx is honored only for
// cancellation before work starts.
func (h *HashingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stems := corpus.StemTokens(corpus.Tokens(text))
	if len(stems) == 0 {
		return nil, ErrEmptyText
	}

	vec := make([]float32, h.dim)
	for i, s := range stems {
		h.add(vec, "w:"+s, unigramWeight)
		if i > 0 {
			h.add(vec, "b:"+stems[i-1]+" "+s, bigramWeight)
		}
		padded := "#" + s + "#"
		for j := 0; j+3 <= len(padded); j++ {
			h.add(vec, "c:"+padded[j:j+3], trigramWeight)
		}
	}

	Normalize(vec)
	return vec, nil
}

func (h *HashingEmbedder) add(vec []float32, feature string, weight float32) {
	sum := xxhash.Sum64String(feature)
	bucket := sum % uint64(h.dim)
	if sum>>63 == 1 {
		weight = -weight
	}
	vec[bucket] += weight
}
