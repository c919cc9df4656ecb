// Package snapshot holds the latest published value of each metric family.
package snapshot

import "sync/atomic"

// Store is a single-writer, multi-reader slot. Publish swaps in a whole new
// value; Load returns whichever complete value was last published and never
// blocks. Values must not be mutated after Publish.
type Store[T any] struct {
	v atomic.Pointer[T]
}

// NewStore returns a store holding initial.
func NewStore[T any](initial T) *Store[T] {
	s := &Store[T]{}
	s.Publish(initial)
	return s
}

// Publish replaces the visible value.
func (s *Store[T]) Publish(v T) { s.v.Store(&v) }

// Load returns the current value. Two calls may return different values.
func (s *Store[T]) Load() T {
	if p := s.v.Load(); p != nil {
		return *p
	}
	var zero T
	return zero
}
