// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package cache

import (
	"sort"
	"sync"
	"unicode/utf8"
)

// AhoCorasick implements the Aho-Corasick string matching algorithm.
// It finds all occurrences of multiple patterns in a text in O(n + m + z)
// time, where:
//   - n = length of text
//   - m = total length of all patterns
//   - z = number of matches
//
// Barkeep uses it to spot vocabulary terms (ingredient names, cocktail
// names) inside normalized query text without scanning each term separately.
//
// Example:
//
//	ac := NewAhoCorasick()
//	ac.AddPattern("lemon juice", "ingredient")
//	ac.AddPattern("lemon", "ingredient")
//	ac.Build()
//
//	matches := ac.LongestWordMatches("5 cocktails with lemon juice")
//	// matches contains Match{Pattern: "lemon juice", Position: 17, End: 28}
type AhoCorasick struct {
	mu       sync.RWMutex
	root     *acNode
	patterns []Pattern
	built    bool
}

// acNode represents a node in the Aho-Corasick automaton.
type acNode struct {
	children map[rune]*acNode
	failure  *acNode // Failure link for when match fails
	output   []int   // Indices of patterns that end at this node
	depth    int     // Depth from root
}

// Pattern represents a search pattern with associated data.
type Pattern struct {
	Text string // The pattern text
	Data any    // Optional associated data (e.g., canonical identity)
}

// Match represents a pattern match in the text.
type Match struct {
	Pattern  string // The matched pattern
	Data     any    // Associated data from the pattern
	Position int    // Start byte offset in the text
	End      int    // End byte offset (exclusive)
}

// Len returns the byte length of the match.
func (m Match) Len() int {
	return m.End - m.Position
}

// NewAhoCorasick creates a new Aho-Corasick automaton. Matching is exact;
// callers normalize patterns and text the same way beforehand.
func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{root: newACNode(0)}
}

// newACNode creates a new automaton node.
func newACNode(depth int) *acNode {
	return &acNode{
		children: make(map[rune]*acNode),
		output:   make([]int, 0),
		depth:    depth,
	}
}

// AddPattern adds a pattern to the automaton.
// Must be called before Build().
func (ac *AhoCorasick) AddPattern(pattern string, data any) {
	if pattern == "" {
		return
	}

	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.built = false
	ac.patterns = append(ac.patterns, Pattern{Text: pattern, Data: data})
}

// Build constructs the automaton. Must be called after adding patterns
// and before searching.
func (ac *AhoCorasick) Build() {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if ac.built {
		return
	}

	ac.root = newACNode(0)

	for i, p := range ac.patterns {
		ac.insertPattern(i, p.Text)
	}

	ac.buildFailureLinks()

	ac.built = true
}

// insertPattern inserts a pattern into the trie.
func (ac *AhoCorasick) insertPattern(index int, pattern string) {
	node := ac.root

	for _, ch := range pattern {
		if node.children[ch] == nil {
			node.children[ch] = newACNode(node.depth + 1)
		}
		node = node.children[ch]
	}

	node.output = append(node.output, index)
}

// buildFailureLinks builds failure links using BFS.
func (ac *AhoCorasick) buildFailureLinks() {
	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			// Follow failure links to find longest proper suffix
			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = ac.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// search finds all pattern matches in the text, overlapping ones included.
// Matches are reported in order of their end offset.
func (ac *AhoCorasick) search(text string) []Match {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if !ac.built || len(ac.patterns) == 0 {
		return nil
	}

	var matches []Match
	node := ac.root

	for i, ch := range text {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}

		if node == nil {
			node = ac.root
			continue
		}

		node = node.children[ch]
		end := i + utf8.RuneLen(ch)

		for _, patternIdx := range node.output {
			pattern := ac.patterns[patternIdx]
			matches = append(matches, Match{
				Pattern:  pattern.Text,
				Data:     pattern.Data,
				Position: end - len(pattern.Text),
				End:      end,
			})
		}
	}

	return matches
}

// searchWords returns only the matches that start and end on word
// boundaries, so "gin" does not match inside "ginger".
func (ac *AhoCorasick) searchWords(text string) []Match {
	all := ac.search(text)
	out := all[:0]
	for _, m := range all {
		if isWordBoundary(text, m.Position, m.End) {
			out = append(out, m)
		}
	}
	return out
}

// LongestWordMatches returns word-aligned, non-overlapping matches chosen
// leftmost-longest. The result is ordered by position.
func (ac *AhoCorasick) LongestWordMatches(text string) []Match {
	matches := ac.searchWords(text)
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Position != matches[j].Position {
			return matches[i].Position < matches[j].Position
		}
		return matches[i].Len() > matches[j].Len()
	})

	// Longest overall wins when spans overlap; earlier start breaks ties.
	byLength := make([]Match, len(matches))
	copy(byLength, matches)
	sort.SliceStable(byLength, func(i, j int) bool {
		return byLength[i].Len() > byLength[j].Len()
	})

	var chosen []Match
	for _, m := range byLength {
		overlaps := false
		for _, c := range chosen {
			if m.Position < c.End && c.Position < m.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			chosen = append(chosen, m)
		}
	}

	sort.Slice(chosen, func(i, j int) bool {
		return chosen[i].Position < chosen[j].Position
	})
	return chosen
}

func isWordBoundary(text string, start, end int) bool {
	if start < 0 || end > len(text) || start >= end {
		return false
	}
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r != ' ' && r != '\t' && r != '\n' && r != utf8.RuneError
}
