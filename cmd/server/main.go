// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/barkeep/internal/api"
	"github.com/tomtom215/barkeep/internal/app"
	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/supervisor"
	"github.com/tomtom215/barkeep/internal/supervisor/services"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	logging.Info().
		Str("corpus", cfg.Corpus.Path).
		Str("embedding_provider", cfg.Embedding.Provider).
		Str("index_backend", cfg.Index.Backend).
		Str("storage", cfg.Storage.Path).
		Bool("storage_in_memory", cfg.Storage.InMemory).
		Msg("Starting barkeep")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.Open(ctx, cfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer func() {
		if err := a.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.Logger()), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Corpus.Watch {
		watcher, err := services.NewCorpusWatchService(a.Reloader(), cfg.Corpus.Path, cfg.Corpus.ReloadDebounce, logging.Logger())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create corpus watcher")
		}
		tree.AddDataService(watcher)
	} else {
		logging.Info().Msg("Corpus hot reload disabled (CORPUS_WATCH=false)")
	}

	if !cfg.Storage.InMemory && cfg.Storage.GCInterval > 0 {
		tree.AddDataService(services.NewStorageGCService(a.Store, cfg.Storage.GCInterval, logging.Logger()))
	}

	if cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(a.Engine, a.Formatter, logging.WithComponent("api"))
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(cfg.Server)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("barkeep stopped")
}
