// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package cache provides in-memory data structures used on the query path.

# Overview

  - AhoCorasick: exact multi-pattern matcher for spotting vocabulary terms
    (ingredients, cocktail names) in normalized query text. LongestWordMatches
    returns whole-word, non-overlapping spans.
  - LRUCache: generic LRU with lazy TTL expiration, used by the query engine
    for user-independent results.
  - Trie: prefix tree for cocktail name suggestions.

# Thread Safety

All types are safe for concurrent use. AhoCorasick and Trie are built once
and then read; LRUCache serializes access with a mutex.
*/
package cache
