// Package kv provides the memo tables the grid viewport hands to the renderer.
//
// A Store is append-only between resets: an entry is written once, on first
// use, and read verbatim afterwards. Reset throws the whole table away.
package kv

import "sync"

// Store is a generic memo table keyed by K.
type Store[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates an empty store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Has reports whether key has been populated.
func (s *Store[K, V]) Has(key K) bool {
	_, ok := s.Get(key)
	return ok
}

// Memo returns the value stored at key, calling build to populate it on a
// miss. An existing entry is never rebuilt or replaced.
func (s *Store[K, V]) Memo(key K, build func() V) V {
	if v, ok := s.Get(key); ok {
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[key]; ok {
		return v
	}
	v := build()
	s.data[key] = v
	return v
}

// Put stores value at key unless the key is already populated. It reports
// whether the value was written.
func (s *Store[K, V]) Put(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false
	}
	s.data[key] = value
	return true
}

// Reset discards every entry.
func (s *Store[K, V]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
}

// Len returns the number of populated entries.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
