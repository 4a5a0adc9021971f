// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package storage owns the BadgerDB instance shared by the preference store
// and the embedding snapshot. Consumers namespace their keys with a prefix
// ("pref:", "emb:") and never close the DB themselves.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/config"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("storage closed")

// Store wraps a *badger.DB with prefix helpers and GC.
type Store struct {
	db       *badger.DB
	inMemory bool
	logger   zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the database described by cfg.
func Open(cfg config.StorageConfig, logger zerolog.Logger) (*Store, error) {
	logger = logger.With().Str("component", "storage").Logger()

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	opts.Logger = newBadgerLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("storage opened")

	return &Store{db: db, inMemory: cfg.InMemory, logger: logger}, nil
}

// OpenInMemory opens a throwaway in-memory store (tests, ephemeral CLI runs).
func OpenInMemory(logger zerolog.Logger) (*Store, error) {
	return Open(config.StorageConfig{InMemory: true}, logger)
}

// DB returns the underlying database. Callers must not close it.
func (s *Store) DB() *badger.DB {
	return s.db
}

// InMemory reports whether the store is non-durable.
func (s *Store) InMemory() bool {
	return s.inMemory
}

// Get returns a copy of the value stored at key, or badger.ErrKeyNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

// Set writes key in its own transaction.
func (s *Store) Set(key string, value []byte) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Delete removes key. A missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Scan calls fn for every key with prefix, in key order. The key passed to
// fn has the prefix stripped; value is only valid during the call.
func (s *Store) Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error {
	if err := s.check(); err != nil {
		return err
	}

	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			key := string(item.Key()[len(p):])
			if err := item.Value(func(val []byte) error {
				return fn(key, val)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteBatch applies puts under prefix in as few transactions as Badger allows.
func (s *Store) WriteBatch(prefix string, puts map[string][]byte) error {
	if err := s.check(); err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for k, v := range puts {
		if err := wb.Set([]byte(prefix+k), v); err != nil {
			return fmt.Errorf("batch set %s%s: %w", prefix, k, err)
		}
	}
	return wb.Flush()
}

// RunGC runs value-log garbage collection until Badger reports nothing to
// reclaim. It is a no-op for in-memory stores.
func (s *Store) RunGC(discardRatio float64) error {
	if err := s.check(); err != nil {
		return err
	}
	if s.inMemory {
		return nil
	}

	runs := 0
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			break
		}
		if err != nil {
			return fmt.Errorf("value log GC: %w", err)
		}
		runs++
	}
	if runs > 0 {
		s.logger.Debug().Int("rewrites", runs).Msg("value log GC completed")
	}
	return nil
}

// Size returns the LSM and value-log sizes in bytes.
func (s *Store) Size() (lsm, vlog int64) {
	return s.db.Size()
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	s.logger.Info().Msg("storage closed")
	return nil
}

func (s *Store) check() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}
