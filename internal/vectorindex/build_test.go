// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package vectorindex_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/embedding"
	"github.com/tomtom215/barkeep/internal/storage"
	"github.com/tomtom215/barkeep/internal/testinfra"
	"github.com/tomtom215/barkeep/internal/vectorindex"
)

// countingEmbedder wraps the hashing embedder and counts calls.
type countingEmbedder struct {
	*embedding.HashingEmbedder
	calls atomic.Int32
	fail  bool
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, errors.New("embedder unavailable")
	}
	return c.HashingEmbedder.Embed(ctx, text)
}

func newCounting() *countingEmbedder {
	return &countingEmbedder{HashingEmbedder: embedding.NewHashingEmbedder(embedding.DefaultDimension)}
}

func openSnapshot(t *testing.T) *vectorindex.SnapshotStore {
	t.Helper()
	st, err := storage.OpenInMemory(zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return vectorindex.NewSnapshotStore(st)
}

func assertSameEmbeddings(t *testing.T, a, b *vectorindex.Index) {
	t.Helper()
	if a.Len() != b.Len() {
		t.Fatalf("Len %d != %d", a.Len(), b.Len())
	}
	for _, id := range a.IDs() {
		va, errA := a.EmbeddingOf(id)
		vb, errB := b.EmbeddingOf(id)
		if errA != nil || errB != nil {
			t.Fatalf("EmbeddingOf(%q): %v / %v", id, errA, errB)
		}
		for i := range va {
			if va[i] != vb[i] {
				t.Fatalf("%q component %d: %v != %v", id, i, va[i], vb[i])
			}
		}
	}
}

func TestBuild_CoversCorpusInOrder(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)
	idx, stats, err := vectorindex.Build(context.Background(), c, newCounting(), vectorindex.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if idx.Len() != c.Len() {
		t.Fatalf("index Len = %d, corpus Len = %d", idx.Len(), c.Len())
	}
	for i, id := range idx.IDs() {
		if id != c.At(i).ID {
			t.Errorf("ordinal %d: index %q, corpus %q", i, id, c.At(i).ID)
		}
	}
	if stats.Computed != c.Len() || stats.Reused != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)
	opts := vectorindex.Options{Logger: zerolog.Nop()}

	a, _, err := vectorindex.Build(context.Background(), c, newCounting(), opts)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	b, _, err := vectorindex.Build(context.Background(), testinfra.Corpus(t), newCounting(), opts)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	assertSameEmbeddings(t, a, b)
}

func TestBuild_SnapshotReuse(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)
	snap := openSnapshot(t)
	opts := vectorindex.Options{Snapshot: snap, Logger: zerolog.Nop()}

	first := newCounting()
	a, _, err := vectorindex.Build(context.Background(), c, first, opts)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if n, _ := snap.Count(context.Background(), first.ModelID()); n != c.Len() {
		t.Errorf("snapshot entries = %d, want %d", n, c.Len())
	}

	// A second build must not touch the embedder at all.
	offline := newCounting()
	offline.fail = true
	b, stats, err := vectorindex.Build(context.Background(), c, offline, opts)
	if err != nil {
		t.Fatalf("rebuild from snapshot: %v", err)
	}
	if offline.calls.Load() != 0 || stats.Reused != c.Len() {
		t.Errorf("embedder calls = %d, stats = %+v", offline.calls.Load(), stats)
	}
	assertSameEmbeddings(t, a, b)
}

func TestBuild_SnapshotInvalidatedByTextChange(t *testing.T) {
	t.Parallel()

	snap := openSnapshot(t)
	opts := vectorindex.Options{Snapshot: snap, Logger: zerolog.Nop()}

	records := testinfra.Cocktails(t)
	c1, err := corpus.New(records)
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	if _, _, err := vectorindex.Build(context.Background(), c1, newCounting(), opts); err != nil {
		t.Fatalf("Build: %v", err)
	}

	records[0].Instructions = "Blend with ice."
	c2, err := corpus.New(records)
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	emb := newCounting()
	_, stats, err := vectorindex.Build(context.Background(), c2, emb, opts)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if stats.Computed != 1 || emb.calls.Load() != 1 {
		t.Errorf("recomputed %d (calls %d), want exactly the edited cocktail", stats.Computed, emb.calls.Load())
	}
}

func TestBuild_EmbedderFailure(t *testing.T) {
	t.Parallel()

	emb := newCounting()
	emb.fail = true
	if _, _, err := vectorindex.Build(context.Background(), testinfra.Corpus(t), emb, vectorindex.Options{Logger: zerolog.Nop()}); err == nil {
		t.Fatal("expected build error")
	}
	if _, _, err := vectorindex.Build(context.Background(), testinfra.Corpus(t), newCounting(), vectorindex.Options{Backend: "faiss"}); !errors.Is(err, vectorindex.ErrInvalidArgument) {
		t.Errorf("unknown backend error = %v", err)
	}
}

func TestHNSWBackendMatchesExact(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)
	exact, _, err := vectorindex.Build(context.Background(), c, newCounting(), vectorindex.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("exact Build: %v", err)
	}
	approx, _, err := vectorindex.Build(context.Background(), c, newCounting(), vectorindex.Options{
		Backend: "hnsw",
		HNSW:    vectorindex.HNSWConfig{M: 8, EfSearch: 64},
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("hnsw Build: %v", err)
	}
	if approx.Backend() != "hnsw" {
		t.Fatalf("Backend = %q", approx.Backend())
	}

	for _, id := range exact.IDs() {
		q, _ := exact.EmbeddingOf(id)
		want, err := exact.Nearest(q, 5, id)
		if err != nil {
			t.Fatalf("exact Nearest: %v", err)
		}
		got, err := approx.Nearest(q, 5, id)
		if err != nil {
			t.Fatalf("hnsw Nearest: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("%s: hnsw returned %d, exact %d", id, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID {
				t.Errorf("%s rank %d: hnsw %q, exact %q", id, i, got[i].ID, want[i].ID)
			}
			if got[i].ID == id {
				t.Errorf("%s: source echoed", id)
			}
		}
	}
}

func TestHNSWBackendClampsToCorpus(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)
	exact, _, err := vectorindex.Build(context.Background(), c, newCounting(), vectorindex.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("exact Build: %v", err)
	}
	approx, _, err := vectorindex.Build(context.Background(), c, newCounting(), vectorindex.Options{
		Backend: "hnsw",
		HNSW:    vectorindex.HNSWConfig{M: 8, EfSearch: 64},
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("hnsw Build: %v", err)
	}

	source := "hot creamy bush"
	q, err := exact.EmbeddingOf(source)
	if err != nil {
		t.Fatalf("EmbeddingOf: %v", err)
	}
	want, err := exact.Nearest(q, c.Len(), source)
	if err != nil {
		t.Fatalf("exact Nearest: %v", err)
	}
	got, err := approx.Nearest(q, c.Len(), source)
	if err != nil {
		t.Fatalf("hnsw Nearest: %v", err)
	}
	if len(got) != c.Len()-1 {
		t.Fatalf("hnsw returned %d neighbours, want %d", len(got), c.Len()-1)
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("rank %d: hnsw %q (d=%f), exact %q (d=%f)", i, got[i].ID, got[i].Distance, want[i].ID, want[i].Distance)
		}
	}
}

func TestHNSWBackendGraphSearch(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)
	approx, _, err := vectorindex.Build(context.Background(), c, newCounting(), vectorindex.Options{
		Backend: "hnsw",
		HNSW:    vectorindex.HNSWConfig{M: 4, EfSearch: 4},
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("hnsw Build: %v", err)
	}

	for _, id := range approx.IDs() {
		q, _ := approx.EmbeddingOf(id)
		got, err := approx.Nearest(q, 2, id)
		if err != nil {
			t.Fatalf("Nearest: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("%s: got %d neighbours, want 2", id, len(got))
		}
		if got[0].ID == id || got[1].ID == id {
			t.Errorf("%s: source echoed", id)
		}
		if got[0].Distance > got[1].Distance {
			t.Errorf("%s: neighbours out of order: %+v", id, got)
		}
	}
}

func TestSimilarNeighboursShareIngredients(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)
	idx, _, err := vectorindex.Build(context.Background(), c, newCounting(), vectorindex.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	q, _ := idx.EmbeddingOf("hot creamy bush")
	hits, err := idx.Nearest(q, 1, "hot creamy bush")
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if hits[0].ID != "irish coffee" {
		t.Errorf("nearest to Hot Creamy Bush = %q, want irish coffee", hits[0].ID)
	}
}
