// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package preference keeps per-user taste profiles.
//
// Writes for one user are serialized by a reference-counted keyed mutex;
// different users never contend. Every merge that changes a profile is
// persisted before Merge returns. Nothing in this package deletes a profile
// except an explicit Delete.
package preference

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/metrics"
)

// exportVersion tags the Save format.
const exportVersion = 1

type export struct {
	Version  int       `json:"version"`
	Profiles []Profile `json:"profiles"`
}

// Store is the preference store.
type Store struct {
	backend Backend
	locks   *keyedMutex
	now     func() time.Time
	logger  zerolog.Logger
}

// NewStore creates a store over backend.
func NewStore(backend Backend, logger zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		locks:   newKeyedMutex(),
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger.With().Str("component", "preference").Str("backend", backend.Name()).Logger(),
	}
}

// Backend returns the name of the storage backend.
func (s *Store) Backend() string {
	return s.backend.Name()
}

// Get returns userID's profile. Unknown users get an empty profile.
func (s *Store) Get(ctx context.Context, userID string) (Profile, error) {
	if err := ValidateUserID(userID); err != nil {
		return Profile{}, err
	}
	p, ok, err := s.backend.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		return Profile{UserID: userID}, nil
	}
	return p, nil
}

// Merge unions d into userID's profile and persists it if anything changed.
// Repeating a merge is a no-op.
func (s *Store) Merge(ctx context.Context, userID string, d Delta) (Profile, error) {
	p, _, err := s.Apply(ctx, userID, d)
	return p, err
}

// Apply is Merge that also reports whether the profile changed.
func (s *Store) Apply(ctx context.Context, userID string, d Delta) (Profile, bool, error) {
	if err := ValidateUserID(userID); err != nil {
		return Profile{}, false, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	p, ok, err := s.backend.Get(ctx, userID)
	if err != nil {
		metrics.RecordPreferenceMerge(false, err)
		return Profile{}, false, err
	}
	if !ok {
		p = Profile{UserID: userID}
	}

	if !p.apply(d) {
		metrics.RecordPreferenceMerge(false, nil)
		return p, false, nil
	}

	p.UpdatedAt = s.now()
	if err := s.backend.Put(ctx, p); err != nil {
		metrics.RecordPreferenceMerge(true, err)
		return Profile{}, false, fmt.Errorf("persist profile %q: %w", userID, err)
	}
	metrics.RecordPreferenceMerge(true, nil)

	s.logger.Debug().
		Str("user_id", userID).
		Int("liked_ingredients", len(p.LikedIngredients)).
		Int("liked_cocktails", len(p.LikedCocktails)).
		Int("unrecognized", len(p.UnrecognizedLikes)).
		Msg("preferences updated")
	return p, true, nil
}

// Delete forgets userID.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.backend.Delete(ctx, userID)
}

// List returns all stored profiles ordered by user ID.
func (s *Store) List(ctx context.Context) ([]Profile, error) {
	return s.backend.List(ctx)
}

// Save writes every profile to w as JSON.
func (s *Store) Save(ctx context.Context, w io.Writer) error {
	profiles, err := s.backend.List(ctx)
	if err != nil {
		return err
	}
	if profiles == nil {
		profiles = []Profile{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export{Version: exportVersion, Profiles: profiles}); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return nil
}

// Load reads profiles written by Save and stores each one as-is, replacing
// any existing profile for the same user. It returns the number loaded.
func (s *Store) Load(ctx context.Context, r io.Reader) (int, error) {
	var in export
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("decode profiles: %w", err)
	}
	if in.Version != exportVersion {
		return 0, fmt.Errorf("unsupported profile export version %d", in.Version)
	}

	for i, p := range in.Profiles {
		if err := ValidateUserID(p.UserID); err != nil {
			return i, fmt.Errorf("profile %d: %w", i, err)
		}
		unlock := s.locks.Lock(p.UserID)
		err := s.backend.Put(ctx, p)
		unlock()
		if err != nil {
			return i, fmt.Errorf("store profile %q: %w", p.UserID, err)
		}
	}

	s.logger.Info().Int("profiles", len(in.Profiles)).Msg("preferences imported")
	return len(in.Profiles), nil
}
