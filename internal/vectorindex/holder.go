// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package vectorindex

import "sync/atomic"

// Holder publishes an immutable value, typically an *Index or a bundle that
// contains one, so readers always see one complete version. Every Swap bumps
// the generation.
type Holder[T any] struct {
	current    atomic.Pointer[T]
	generation atomic.Uint64
}

// NewHolder returns a Holder publishing initial as generation 1.
func NewHolder[T any](initial *T) *Holder[T] {
	h := &Holder[T]{}
	h.Swap(initial)
	return h
}

// Load returns the current value.
func (h *Holder[T]) Load() *T {
	return h.current.Load()
}

// Swap publishes next and returns the value it replaced.
func (h *Holder[T]) Swap(next *T) (old *T) {
	old = h.current.Swap(next)
	h.generation.Add(1)
	return old
}

// Generation counts swaps, starting at 1 for the initial value.
func (h *Holder[T]) Generation() uint64 {
	return h.generation.Load()
}
