// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package services adapts barkeep's long-running components to suture's
Serve(ctx) error model.

  - HTTPServerService: ListenAndServe in a goroutine, Shutdown with a
    timeout when the supervisor cancels.
  - CorpusWatchService: fsnotify watch on the corpus directory with
    debounced reloads through a Reloader (catalog.Reloader in production).
  - StorageGCService: periodic Badger value-log GC.

Every service implements fmt.Stringer so supervisor events name it.
Services return ctx.Err() on cancellation; any other error makes suture
restart them with backoff.
*/
package services
