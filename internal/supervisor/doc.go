// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package supervisor runs the barkeep server's long-lived goroutines under a
suture v4 supervisor tree.

	barkeep (root)
	├── data-layer
	│   ├── corpus-watcher   (services.CorpusWatchService, CORPUS_WATCH=true)
	│   └── storage-gc       (services.StorageGCService, on-disk Badger only)
	└── api-layer
	    └── http-server      (services.HTTPServerService)

Failed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog using the slog adapter in internal/logging, so they
end up in the same zerolog stream as everything else.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.Logger()), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
