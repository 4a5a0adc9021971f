// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package cache

import (
	"sort"
	"strings"
	"sync"
)

// TrieNode represents a node in the Trie.
type TrieNode struct {
	children map[rune]*TrieNode
	isEnd    bool   // Marks end of a complete key
	value    string // Original (display) value stored at this node
	data     any    // Optional associated data
}

// Trie implements a thread-safe prefix tree for autocomplete.
// Lookups are O(m) where m is the length of the query string.
//
// Barkeep keeps one per corpus for cocktail name suggestions.
type Trie struct {
	mu             sync.RWMutex
	root           *TrieNode
	maxSuggestions int
}

// TrieResult represents a match from the Trie with associated data.
type TrieResult struct {
	Value string // The stored display value
	Data  any    // Associated data (may be nil)
}

// NewTrie creates a case-insensitive Trie. maxSuggestions bounds
// autocomplete when the caller passes no limit (10 if <= 0).
func NewTrie(maxSuggestions int) *Trie {
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &Trie{
		root:           newTrieNode(),
		maxSuggestions: maxSuggestions,
	}
}

func newTrieNode() *TrieNode {
	return &TrieNode{
		children: make(map[rune]*TrieNode),
	}
}

func (t *Trie) normalizeKey(key string) string {
	return strings.ToLower(key)
}

// InsertWithData adds a string to the Trie with associated data.
// Returns true if this is a new insertion, false if it already existed
// (in which case value and data are replaced).
func (t *Trie) InsertWithData(value string, data any) bool {
	if value == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range t.normalizeKey(value) {
		if node.children[ch] == nil {
			node.children[ch] = newTrieNode()
		}
		node = node.children[ch]
	}

	isNew := !node.isEnd
	node.isEnd = true
	node.value = value
	node.data = data
	return isNew
}

// AutocompleteWithLimit returns stored values starting with prefix,
// sorted alphabetically and limited to n results (maxSuggestions if n <= 0).
func (t *Trie) AutocompleteWithLimit(prefix string, limit int) []TrieResult {
	if limit <= 0 {
		limit = t.maxSuggestions
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.walk(t.normalizeKey(prefix))
	if node == nil {
		return nil
	}

	var results []TrieResult
	t.collect(node, &results)

	sort.Slice(results, func(i, j int) bool {
		return t.normalizeKey(results[i].Value) < t.normalizeKey(results[j].Value)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (t *Trie) walk(key string) *TrieNode {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func (t *Trie) collect(node *TrieNode, results *[]TrieResult) {
	if node.isEnd {
		*results = append(*results, TrieResult{Value: node.value, Data: node.data})
	}
	for _, child := range node.children {
		t.collect(child, results)
	}
}
