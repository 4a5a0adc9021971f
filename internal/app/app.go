// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package app assembles barkeep's components from configuration. Both the
// server and the CLI start through Open so they see the same corpus, index
// and preference store.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/catalog"
	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/embedding"
	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/preference"
	"github.com/tomtom215/barkeep/internal/reply"
	"github.com/tomtom215/barkeep/internal/storage"
	"github.com/tomtom215/barkeep/internal/vectorindex"
)

// App holds the wired components. Close releases the Badger store.
type App struct {
	Config    *config.Config
	Store     *storage.Store
	Snapshots *vectorindex.SnapshotStore
	Builder   *catalog.Builder
	Engine    *engine.Engine
	Formatter reply.Formatter
	Logger    zerolog.Logger
}

// OpenStore opens Badger and the pieces that need nothing else: the snapshot
// store and the catalog builder. Commands that do not answer queries stop
// here.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenStore(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	store, err := storage.Open(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	embedder, err := embedding.New(cfg.Embedding, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	snapshots := vectorindex.NewSnapshotStore(store)
	builder, err := catalog.NewBuilder(cfg.Corpus.Path, cfg.Index, embedder, snapshots, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Store:     store,
		Snapshots: snapshots,
		Builder:   builder,
		Logger:    logger,
	}, nil
}

// Open builds everything: storage, corpus, index, preference store, engine
// and reply formatter.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := a.start(ctx); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	return a, nil
}

func (a *App) start(ctx context.Context) error {
	c, idx, stats, err := a.Builder.Build(ctx)
	if err != nil {
		return err
	}
	a.Logger.Info().
		Int("cocktails", c.Len()).
		Str("model", idx.ModelID()).
		Str("backend", a.Config.Index.Backend).
		Int("computed", stats.Computed).
		Int("reused", stats.Reused).
		Dur("duration", stats.Duration).
		Msg("index ready")

	prefs := preference.NewStore(preference.NewBadgerBackend(a.Store), a.Logger)

	eng, err := engine.New(a.Config.Engine, c, idx, prefs, a.Logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	formatter, err := reply.NewTemplateFormatter()
	if err != nil {
		return fmt.Errorf("create formatter: %w", err)
	}

	a.Engine = eng
	a.Formatter = formatter
	return nil
}

// Preferences returns a preference store over the app's Badger instance,
// whether or not the engine was built.
func (a *App) Preferences() *preference.Store {
	if a.Engine != nil {
		return a.Engine.Preferences()
	}
	return preference.NewStore(preference.NewBadgerBackend(a.Store), a.Logger)
}

// Reloader returns a corpus reloader bound to the engine.
func (a *App) Reloader() *catalog.Reloader {
	return catalog.NewReloader(a.Builder, a.Engine, a.Logger)
}

// Close releases storage.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
