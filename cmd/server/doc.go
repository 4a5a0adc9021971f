// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Command server runs the barkeep HTTP API.
//
// Startup order:
//
//  1. Configuration: defaults, then config.yaml, then environment (koanf)
//  2. Logging: zerolog, JSON or console
//  3. Storage: BadgerDB for preferences and embedding snapshots
//  4. Catalog: corpus file, embedder, index (reusing snapshots)
//  5. Engine: preference store, classifier, reply formatter
//  6. Supervisor tree: HTTP server, corpus watcher (CORPUS_WATCH=true),
//     storage GC
//
// SIGINT and SIGTERM cancel the tree. The HTTP server drains for
// HTTP_SHUTDOWN_TIMEOUT before Badger is closed.
//
// Example:
//
//	export CORPUS_PATH=data/processed_drinks.json
//	export CORPUS_WATCH=true
//	export BADGER_PATH=/var/lib/barkeep
//	./server
//
//	curl -s localhost:8085/api/v1/query \
//	  -d '{"user_id":"alice","query":"What are some cocktails with lemon?"}'
package main
