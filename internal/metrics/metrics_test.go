// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/query", "200"))

	RecordAPIRequest("POST", "/api/v1/query", "200", 3*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/query", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active requests = %v, want %v", got, start)
	}
}

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(QueriesTotal.WithLabelValues("search_by_ingredient", "answered"))
	RecordQuery("search_by_ingredient", "answered", time.Millisecond)
	if got := testutil.ToFloat64(QueriesTotal.WithLabelValues("search_by_ingredient", "answered")); got-before != 1 {
		t.Errorf("queries delta = %v, want 1", got-before)
	}
}

func TestRecordIndexBuild(t *testing.T) {
	failures := testutil.ToFloat64(IndexBuilds.WithLabelValues("failure"))

	RecordIndexBuild(10*time.Millisecond, 24, nil)
	RecordIndexBuild(time.Millisecond, 0, errors.New("embedder down"))
	RecordIndexSwap(3)

	if got := testutil.ToFloat64(IndexSize); got != 24 {
		t.Errorf("index size = %v, want 24 (failed build must not reset it)", got)
	}
	if got := testutil.ToFloat64(IndexGeneration); got != 3 {
		t.Errorf("index generation = %v, want 3", got)
	}
	if got := testutil.ToFloat64(IndexBuilds.WithLabelValues("failure")) - failures; got != 1 {
		t.Errorf("failed builds delta = %v, want 1", got)
	}
}

func TestRecordIntentAndEmbeddingRequest(t *testing.T) {
	before := testutil.ToFloat64(IntentsTotal.WithLabelValues("unknown", "none"))
	RecordIntent("unknown", "none")
	if got := testutil.ToFloat64(IntentsTotal.WithLabelValues("unknown", "none")) - before; got != 1 {
		t.Errorf("intents delta = %v, want 1", got)
	}

	fail := testutil.ToFloat64(EmbeddingRequests.WithLabelValues("openai", "failure"))
	RecordEmbeddingRequest("openai", errors.New("503"))
	if got := testutil.ToFloat64(EmbeddingRequests.WithLabelValues("openai", "failure")) - fail; got != 1 {
		t.Errorf("embedding failures delta = %v, want 1", got)
	}
}

func TestRecordEmbeddings_SkipsZero(t *testing.T) {
	before := testutil.ToFloat64(EmbeddingsComputed.WithLabelValues("snapshot"))
	RecordEmbeddings("snapshot", 0)
	RecordEmbeddings("snapshot", 4)
	if got := testutil.ToFloat64(EmbeddingsComputed.WithLabelValues("snapshot")); got-before != 4 {
		t.Errorf("snapshot embeddings delta = %v, want 4", got-before)
	}
}

func TestRecordPreferenceMerge(t *testing.T) {
	tests := []struct {
		changed bool
		err     error
		label   string
	}{
		{true, nil, "changed"},
		{false, nil, "unchanged"},
		{true, errors.New("disk full"), "error"},
	}
	for _, tt := range tests {
		before := testutil.ToFloat64(PreferenceMerges.WithLabelValues(tt.label))
		RecordPreferenceMerge(tt.changed, tt.err)
		if got := testutil.ToFloat64(PreferenceMerges.WithLabelValues(tt.label)); got-before != 1 {
			t.Errorf("%s delta = %v, want 1", tt.label, got-before)
		}
	}
}

func TestRecordCorpusReloadAndCache(t *testing.T) {
	before := testutil.ToFloat64(CorpusReloads.WithLabelValues("failure"))
	RecordCorpusReload(errors.New("bad json"))
	if got := testutil.ToFloat64(CorpusReloads.WithLabelValues("failure")); got-before != 1 {
		t.Errorf("reload failure delta = %v, want 1", got-before)
	}

	hits := testutil.ToFloat64(CacheHits.WithLabelValues("query"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("query"))
	RecordCacheLookup("query", true)
	RecordCacheLookup("query", false)
	RecordCacheLookup("query", false)
	if got := testutil.ToFloat64(CacheHits.WithLabelValues("query")) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("query")) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}
