// Package collection holds the generic paginated collection store shared by the
// phase, participation and notification engines. Each engine owns its own instance.
package collection

import "sync"

// Page is a snapshot of a paginated collection.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Store holds (items, total) plus a busy flag.
// All mutations are synchronous and atomic with respect to readers; readers get copies.
// It is safe for concurrent use by multiple goroutines.
type Store[T any] struct {
	mu    sync.RWMutex
	items []T
	total int
	busy  bool
	id    func(T) string
}

// New creates an empty store; id extracts the identity used for upsert/remove.
func New[T any](id func(T) string) *Store[T] {
	return &Store[T]{id: id, items: []T{}}
}

// Replace swaps the whole collection. Duplicate ids keep their first occurrence
// and a negative total is clamped to the item count.
func (s *Store[T]) Replace(items []T, total int) {
	seen := make(map[string]struct{}, len(items))
	next := make([]T, 0, len(items))
	for _, it := range items {
		k := s.id(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		next = append(next, it)
	}
	if total < len(next) {
		total = len(next)
	}

	s.mu.Lock()
	s.items = next
	s.total = total
	s.mu.Unlock()
}

// Reset empties the collection.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	s.items = []T{}
	s.total = 0
	s.mu.Unlock()
}

// Upsert inserts item at the head when its id is absent, otherwise replaces it in place.
// Total only grows on insert. It reports whether an insert happened.
func (s *Store[T]) Upsert(item T) bool {
	k := s.id(item)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == k {
			next := make([]T, len(s.items))
			copy(next, s.items)
			next[i] = item
			s.items = next
			return false
		}
	}
	next := make([]T, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)
	s.items = next
	s.total++
	return true
}

// Append inserts item at the tail when absent, otherwise replaces it in place.
func (s *Store[T]) Append(item T) bool {
	k := s.id(item)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == k {
			next := make([]T, len(s.items))
			copy(next, s.items)
			next[i] = item
			s.items = next
			return false
		}
	}
	next := make([]T, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, item)
	s.items = next
	s.total++
	return true
}

// Update applies fn to the item with the given id. It reports whether the id was found.
func (s *Store[T]) Update(id string, fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			next := make([]T, len(s.items))
			copy(next, s.items)
			next[i] = fn(s.items[i])
			s.items = next
			return true
		}
	}
	return false
}

// Remove filters out the item with the given id and decrements total, floored at zero.
// It reports whether an item was removed.
func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, 0, len(s.items))
	removed := false
	for _, it := range s.items {
		if !removed && s.id(it) == id {
			removed = true
			continue
		}
		next = append(next, it)
	}
	s.items = next
	if s.total > 0 {
		s.total--
	}
	return removed
}

// Find returns the item with the given id.
func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if s.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Items returns a copy of the current items.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Total returns the server-side total count.
func (s *Store[T]) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Snapshot returns items and total read under a single lock.
func (s *Store[T]) Snapshot() Page[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return Page[T]{Items: out, Total: s.total}
}

// SetBusy flips the busy flag.
func (s *Store[T]) SetBusy(busy bool) {
	s.mu.Lock()
	s.busy = busy
	s.mu.Unlock()
}

// Busy reports whether an operation is in flight.
func (s *Store[T]) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}
