// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package cache

import (
	"sync"
	"testing"
)

func TestAhoCorasick_BasicOperations(t *testing.T) {
	t.Parallel()

	ac := NewAhoCorasick()
	ac.AddPattern("he", nil)
	ac.AddPattern("she", nil)
	ac.AddPattern("his", nil)
	ac.AddPattern("hers", nil)
	ac.Build()

	matches := ac.search("ushers")

	// "she" at 1, "he" at 2, "hers" at 2
	want := map[string]int{"she": 1, "he": 2, "hers": 2}
	if len(matches) != len(want) {
		t.Fatalf("search(ushers) = %d matches, want %d", len(matches), len(want))
	}
	for _, m := range matches {
		pos, ok := want[m.Pattern]
		if !ok {
			t.Errorf("unexpected match %q", m.Pattern)
			continue
		}
		if m.Position != pos {
			t.Errorf("%q position = %d, want %d", m.Pattern, m.Position, pos)
		}
		if m.End-m.Position != len(m.Pattern) {
			t.Errorf("%q span = [%d,%d), want length %d", m.Pattern, m.Position, m.End, len(m.Pattern))
		}
	}
}

func TestAhoCorasick_ExactMatching(t *testing.T) {
	t.Parallel()

	ac := NewAhoCorasick()
	ac.AddPattern("campari", nil)
	ac.Build()

	if got := len(ac.search("a dash of campari")); got != 1 {
		t.Errorf("search(normalized text) = %d matches, want 1", got)
	}
	if got := len(ac.search("a dash of Campari")); got != 0 {
		t.Errorf("search(unnormalized text) = %d matches, want 0", got)
	}
}

func TestAhoCorasick_WordBoundaries(t *testing.T) {
	t.Parallel()

	ac := NewAhoCorasick()
	ac.AddPattern("gin", "gin")
	ac.Build()

	if got := ac.searchWords("ginger ale"); len(got) != 0 {
		t.Errorf("searchWords(ginger ale) = %v, want no matches", got)
	}
	if got := ac.searchWords("sloe gin fizz"); len(got) != 1 {
		t.Errorf("searchWords(sloe gin fizz) = %d matches, want 1", len(got))
	}
	if got := ac.searchWords("gin"); len(got) != 1 {
		t.Errorf("searchWords(gin) = %d matches, want 1", len(got))
	}
}

func TestAhoCorasick_LongestWordMatches(t *testing.T) {
	t.Parallel()

	ac := NewAhoCorasick()
	ac.AddPattern("lemon", "lemon")
	ac.AddPattern("lemon juice", "lemon juice")
	ac.AddPattern("juice", "juice")
	ac.AddPattern("gin", "gin")
	ac.Build()

	matches := ac.LongestWordMatches("gin with lemon juice")
	if len(matches) != 2 {
		t.Fatalf("LongestWordMatches = %v, want 2 matches", matches)
	}
	if matches[0].Pattern != "gin" {
		t.Errorf("first match = %q, want gin", matches[0].Pattern)
	}
	if matches[1].Pattern != "lemon juice" {
		t.Errorf("second match = %q, want lemon juice", matches[1].Pattern)
	}
}

func TestAhoCorasick_NotBuilt(t *testing.T) {
	t.Parallel()

	ac := NewAhoCorasick()
	ac.AddPattern("rum", "rum")

	if got := ac.search("rum"); len(got) != 0 {
		t.Errorf("unbuilt automaton matched: %v", got)
	}

	ac.Build()
	if got := ac.search("rum"); len(got) != 1 || got[0].Data != "rum" {
		t.Errorf("built automaton search = %v, want one rum match", got)
	}

	ac.AddPattern("light rum", "light rum")
	if got := ac.search("light rum"); len(got) != 0 {
		t.Errorf("adding a pattern should require a rebuild, got %v", got)
	}
	ac.Build()
	if got := ac.LongestWordMatches("light rum"); len(got) != 1 || got[0].Pattern != "light rum" {
		t.Errorf("LongestWordMatches after rebuild = %v", got)
	}
}

func TestAhoCorasick_ConcurrentSearch(t *testing.T) {
	t.Parallel()

	ac := NewAhoCorasick()
	for _, p := range []string{"vodka", "rum", "tequila"} {
		ac.AddPattern(p, nil)
	}
	ac.Build()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := len(ac.searchWords("vodka rum tequila")); got != 3 {
				t.Errorf("concurrent searchWords = %d, want 3", got)
			}
		}()
	}
	wg.Wait()
}
