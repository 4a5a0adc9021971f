// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/barkeep/internal/storage"
)

const snapshotPrefix = "emb:"

// snapshotRecord is the value stored under emb:<model>:<identity>.
type snapshotRecord struct {
	TextHash string    `json:"text_hash"`
	Vector   []float32 `json:"vector"`
}

// SnapshotStore persists computed embeddings so a rebuild over unchanged
// canonical text never calls the embedder again.
type SnapshotStore struct {
	store *storage.Store
}

// NewSnapshotStore wraps store.
func NewSnapshotStore(store *storage.Store) *SnapshotStore {
	return &SnapshotStore{store: store}
}

func snapshotKey(model, id string) string {
	return snapshotPrefix + model + ":" + id
}

// TextHash fingerprints canonical text.
func TextHash(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// Lookup returns the stored vector for (model, id) if its text hash matches.
func (s *SnapshotStore) Lookup(model, id, textHash string) ([]float32, bool, error) {
	raw, err := s.store.Get(snapshotKey(model, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot %s: %w", id, err)
	}

	var rec snapshotRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	if rec.TextHash != textHash {
		return nil, false, nil
	}
	return rec.Vector, true, nil
}

// PutAll writes vectors for model keyed by identity, each with its text hash.
func (s *SnapshotStore) PutAll(model string, vectors map[string][]float32, hashes map[string]string) error {
	if len(vectors) == 0 {
		return nil
	}
	puts := make(map[string][]byte, len(vectors))
	for id, vec := range vectors {
		data, err := json.Marshal(snapshotRecord{TextHash: hashes[id], Vector: vec})
		if err != nil {
			return fmt.Errorf("encode snapshot %s: %w", id, err)
		}
		puts[model+":"+id] = data
	}
	if err := s.store.WriteBatch(snapshotPrefix, puts); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Count returns how many snapshot entries exist for model.
func (s *SnapshotStore) Count(ctx context.Context, model string) (int, error) {
	n := 0
	err := s.store.Scan(ctx, snapshotPrefix+model+":", func(string, []byte) error {
		n++
		return nil
	})
	return n, err
}
