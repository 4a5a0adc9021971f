// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestLRUCache_BasicOperations(t *testing.T) {
	cache := NewLRUCache[int](3, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, found := cache.Get(key)
		if !found {
			t.Errorf("expected to find key %q", key)
			continue
		}
		if got != want {
			t.Errorf("Get(%q) = %d, want %d", key, got, want)
		}
	}

	if _, _, size := cache.Stats(); size != 3 {
		t.Errorf("expected size 3, got %d", size)
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache[string](3, time.Minute)

	cache.Add("a", "a")
	cache.Add("b", "b")
	cache.Add("c", "c")

	// 'a' becomes most recently used, so 'b' is next to go
	cache.Get("a")
	cache.Add("d", "d")

	if _, found := cache.Get("b"); found {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := cache.Get(key); !found {
			t.Errorf("expected %q to be present", key)
		}
	}
}

func TestLRUCache_TTLExpiration(t *testing.T) {
	cache := NewLRUCache[int](10, 50*time.Millisecond)

	cache.Add("a", 1)
	if _, found := cache.Get("a"); !found {
		t.Fatal("expected to find key 'a' immediately")
	}

	time.Sleep(60 * time.Millisecond)

	if _, found := cache.Get("a"); found {
		t.Error("expected 'a' to be expired")
	}
}

func TestLRUCache_UpdateAndClear(t *testing.T) {
	cache := NewLRUCache[int](2, time.Minute)

	cache.Add("a", 1)
	cache.Add("a", 2)
	if got, _ := cache.Get("a"); got != 2 {
		t.Errorf("Get(a) = %d after update, want 2", got)
	}
	if _, _, size := cache.Stats(); size != 1 {
		t.Errorf("size = %d, want 1", size)
	}

	cache.Add("b", 3)
	cache.Clear()
	if _, found := cache.Get("a"); found {
		t.Error("Clear should drop every entry")
	}
	hits, misses, size := cache.Stats()
	if size != 0 {
		t.Errorf("size after Clear = %d, want 0", size)
	}
	if hits != 1 || misses != 1 {
		t.Errorf("Clear reset the counts: hits=%d misses=%d, want 1/1", hits, misses)
	}
}

func TestLRUCache_Stats(t *testing.T) {
	cache := NewLRUCache[int](2, time.Minute)
	cache.Add("a", 1)
	cache.Get("a")
	cache.Get("missing")

	hits, misses, size := cache.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats = (%d, %d, %d), want (1, 1, 1)", hits, misses, size)
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	cache := NewLRUCache[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa(g*1000 + i)
				cache.Add(key, i)
				cache.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if _, _, size := cache.Stats(); size > 100 {
		t.Errorf("size = %d, exceeds capacity 100", size)
	}
}
