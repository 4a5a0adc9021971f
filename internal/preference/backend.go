// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package preference

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/barkeep/internal/storage"
)

// Backend persists profiles. Implementations must be safe for concurrent
// use; the Store serializes writers per user.
type Backend interface {
	// Get returns the stored profile and whether it exists.
	Get(ctx context.Context, userID string) (Profile, bool, error)
	Put(ctx context.Context, p Profile) error
	// Delete is idempotent.
	Delete(ctx context.Context, userID string) error
	// List returns all profiles ordered by user ID.
	List(ctx context.Context) ([]Profile, error)
	// Name identifies the backend in logs and health output.
	Name() string
}

// Key prefix for BadgerDB storage
const profileKeyPrefix = "pref:"

// BadgerBackend stores one JSON record per user under pref:<userID>.
type BadgerBackend struct {
	store *storage.Store
}

// NewBadgerBackend creates a BadgerDB-backed profile backend.
func NewBadgerBackend(store *storage.Store) *BadgerBackend {
	return &BadgerBackend{store: store}
}

// Name implements Backend.
func (b *BadgerBackend) Name() string { return "badger" }

// Get implements Backend.
func (b *BadgerBackend) Get(_ context.Context, userID string) (Profile, bool, error) {
	raw, err := b.store.Get(profileKeyPrefix + userID)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false, fmt.Errorf("unmarshal profile %q: %w", userID, err)
	}
	return p, true, nil
}

// Put implements Backend.
func (b *BadgerBackend) Put(_ context.Context, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := b.store.Set(profileKeyPrefix+p.UserID, data); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// Delete implements Backend.
func (b *BadgerBackend) Delete(_ context.Context, userID string) error {
	if err := b.store.Delete(profileKeyPrefix + userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// List implements Backend. Badger iterates in key order, which is user ID
// order.
func (b *BadgerBackend) List(ctx context.Context) ([]Profile, error) {
	var out []Profile
	err := b.store.Scan(ctx, profileKeyPrefix, func(key string, val []byte) error {
		var p Profile
		if err := json.Unmarshal(val, &p); err != nil {
			return fmt.Errorf("unmarshal profile %q: %w", key, err)
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

// MemoryBackend keeps profiles in a map. Used by tests and ephemeral CLI runs.
type MemoryBackend struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{profiles: make(map[string]Profile)}
}

// Name implements Backend.
func (m *MemoryBackend) Name() string { return "memory" }

// Get implements Backend.
func (m *MemoryBackend) Get(_ context.Context, userID string) (Profile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	return p.Clone(), ok, nil
}

// Put implements Backend.
func (m *MemoryBackend) Put(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p.Clone()
	return nil
}

// Delete implements Backend.
func (m *MemoryBackend) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, userID)
	return nil
}

// List implements Backend.
func (m *MemoryBackend) List(_ context.Context) ([]Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
