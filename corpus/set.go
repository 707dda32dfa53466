// Package corpus holds the deduplicated command corpus and writes it out.
package corpus

import "iter"

// Set is a collection of unique command strings. Elements are kept in
// insertion order, but consumers must not depend on any order.
type Set struct {
	index map[string]struct{}
	items []string
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]struct{})}
}

// Add inserts cmd and reports whether it was new.
func (s *Set) Add(cmd string) bool {
	if _, ok := s.index[cmd]; ok {
		return false
	}
	s.index[cmd] = struct{}{}
	s.items = append(s.items, cmd)
	return true
}

// Contains reports whether cmd is in the set.
func (s *Set) Contains(cmd string) bool {
	_, ok := s.index[cmd]
	return ok
}

// Len returns the number of unique commands.
func (s *Set) Len() int {
	return len(s.items)
}

// All iterates over the commands.
func (s *Set) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, cmd := range s.items {
			if !yield(cmd) {
				return
			}
		}
	}
}
