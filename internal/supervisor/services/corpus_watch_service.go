// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Reloader rebuilds the corpus and index and swaps them in.
type Reloader interface {
	Reload(ctx context.Context) error
}

// CorpusWatchService reloads the corpus whenever its file changes.
//
// The watch is placed on the parent directory so editors and deploy tools
// that write a temp file and rename it over the corpus are seen as a Create
// on the corpus name. Bursts of events are collapsed: the reload runs once
// the file has been quiet for the debounce interval.
type CorpusWatchService struct {
	reloader Reloader
	path     string
	debounce time.Duration
	logger   zerolog.Logger
	name     string

	ready     chan struct{}
	readyOnce sync.Once
}

// NewCorpusWatchService watches path. A non-positive debounce becomes 2s.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCorpusWatchService(reloader Reloader, path string, debounce time.Duration, logger zerolog.Logger) (*CorpusWatchService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus path: %w", err)
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &CorpusWatchService{
		reloader: reloader,
		path:     abs,
		debounce: debounce,
		logger:   logger.With().Str("service", "corpus-watcher").Str("path", abs).Logger(),
		name:     "corpus-watcher",
		ready:    make(chan struct{}),
	}, nil
}

// Ready is closed once the first watch is in place.
func (s *CorpusWatchService) Ready() <-chan struct{} {
	return s.ready
}

// Serve implements suture.Service.
func (s *CorpusWatchService) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}
	s.readyOnce.Do(func() { close(s.ready) })
	s.logger.Info().Dur("debounce", s.debounce).Msg("watching corpus file")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if !s.relevant(ev) {
				continue
			}
			s.logger.Debug().Str("op", ev.Op.String()).Msg("corpus file changed")
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			s.logger.Warn().Err(err).Msg("corpus watcher error")

		case <-fire:
			fire = nil
			s.reload(ctx)
		}
	}
}

func (s *CorpusWatchService) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != s.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// reload logs failures instead of returning them; the engine keeps its
// previous corpus.
func (s *CorpusWatchService) reload(ctx context.Context) {
	start := time.Now()
	if err := s.reloader.Reload(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("corpus reload failed, keeping previous corpus")
		return
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("corpus reload applied")
}

// String implements fmt.Stringer for suture's logs.
func (s *CorpusWatchService) String() string {
	return s.name
}
