// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package recent implements a bounded history of recently-seen items.
package recent

import "github.com/creachadair/mds/mapset"

// DefaultCapacity is the capacity used by New when none is specified.
const DefaultCapacity = 5

// A History records the most recent items added to it, up to a fixed
// capacity. Adding an item to a full history discards the oldest item.
// A zero History is not ready for use; call New.
type History[T comparable] struct {
	buf  []T // ring buffer, len(buf) == capacity
	head int // offset of the most recent item
	n    int // number of items stored
}

// New constructs an empty History with the given capacity. If capacity <= 0,
// DefaultCapacity is used.
func New[T comparable](capacity int) *History[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History[T]{buf: make([]T, capacity), head: -1}
}

// Cap reports the capacity of h.
func (h *History[T]) Cap() int { return len(h.buf) }

// Len reports the number of items currently stored in h.
func (h *History[T]) Len() int { return h.n }

// Add records v as the most recent item in h.
func (h *History[T]) Add(v T) {
	h.head = (h.head + 1) % len(h.buf)
	h.buf[h.head] = v
	if h.n < len(h.buf) {
		h.n++
	}
}

// Clear discards all the items in h.
func (h *History[T]) Clear() {
	var zero T
	for i := range h.buf {
		h.buf[i] = zero
	}
	h.head, h.n = -1, 0
}

// at returns the item i positions back from the most recent (0 is newest).
// Precondition: 0 <= i < h.n.
func (h *History[T]) at(i int) T {
	return h.buf[(h.head-i+len(h.buf))%len(h.buf)]
}

// Items returns a copy of the items in h, newest first.
func (h *History[T]) Items() []T {
	out := make([]T, h.n)
	for i := range out {
		out[i] = h.at(i)
	}
	return out
}

// MostRecent returns the most recent item in h. It reports false if h is
// empty.
func (h *History[T]) MostRecent() (T, bool) { return h.NthMostRecent(1) }

// NthMostRecent returns the nth most recent item in h, where 1 denotes the
// most recent. It reports false if n is out of range.
func (h *History[T]) NthMostRecent(n int) (T, bool) {
	if n < 1 || n > h.n {
		var zero T
		return zero, false
	}
	return h.at(n - 1), true
}

// NthMostRecentNotIn returns the nth most recent item in h that is not a
// member of exclude, where 1 denotes the most recent. It reports false if
// fewer than n such items are stored. It panics if n < 1.
func (h *History[T]) NthMostRecentNotIn(n int, exclude mapset.Set[T]) (T, bool) {
	if n < 1 {
		panic("recent: rank must be positive")
	}
	for i := 0; i < h.n; i++ {
		v := h.at(i)
		if exclude.Has(v) {
			continue
		}
		if n--; n == 0 {
			return v, true
		}
	}
	var zero T
	return zero, false
}
