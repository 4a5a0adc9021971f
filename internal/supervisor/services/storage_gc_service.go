// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is implemented by *storage.Store.
type GarbageCollector interface {
	RunGC(discardRatio float64) error
}

// DefaultDiscardRatio is the value-log discard ratio Badger recommends.
const DefaultDiscardRatio = 0.5

// StorageGCService runs Badger value-log GC on a fixed interval.
type StorageGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStorageGCService creates the service. A non-positive interval
// becomes 10m.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStorageGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *StorageGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StorageGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "storage-gc").Logger(),
		name:     "storage-gc",
	}
}

// Serve implements suture.Service.
func (s *StorageGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("storage GC scheduled")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunGC(DefaultDiscardRatio); err != nil {
				s.logger.Warn().Err(err).Msg("value log GC failed")
			}
		}
	}
}

func (s *StorageGCService) String() string {
	return s.name
}
