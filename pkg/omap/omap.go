// Package omap provides an order-preserving map addressable by key or by
// position. Insertion order is the iteration order.
package omap

import (
	"fmt"
	"iter"
)

// Pair is a single key/value entry.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an ordered map. Key and position lookups are O(1); structural edits
// (Insert, Delete, Move) are O(n) in the number of entries shifted.
type Map[K comparable, V any] struct {
	keys  []K
	vals  map[K]V
	index map[K]int
}

// New creates a map from pairs, in order. Later duplicates replace the value
// of the first occurrence without changing its position.
func New[K comparable, V any](pairs ...Pair[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		keys:  make([]K, 0, len(pairs)),
		vals:  make(map[K]V, len(pairs)),
		index: make(map[K]int, len(pairs)),
	}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Get returns the value stored at key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.vals[key]
	return ok
}

// At returns the entry at position ix.
func (m *Map[K, V]) At(ix int) (K, V) {
	m.checkIndex(ix, len(m.keys))
	k := m.keys[ix]
	return k, m.vals[k]
}

// Key returns the key at position ix.
func (m *Map[K, V]) Key(ix int) K {
	m.checkIndex(ix, len(m.keys))
	return m.keys[ix]
}

// Index returns the position of key.
func (m *Map[K, V]) Index(key K) (int, bool) {
	ix, ok := m.index[key]
	return ix, ok
}

// Keys returns a copy of the keys in order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in order.
func (m *Map[K, V]) Values() []V {
	out := make([]V, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.vals[k]
	}
	return out
}

// All iterates entries in order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Set replaces the value at key in place, or appends a new entry.
func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.vals[key]; !ok {
		m.index[key] = len(m.keys)
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Insert adds a new entry at position ix, shifting later entries right.
// Inserting a key that already exists panics.
func (m *Map[K, V]) Insert(ix int, key K, value V) {
	m.checkIndex(ix, len(m.keys)+1)
	if _, ok := m.vals[key]; ok {
		panic(fmt.Sprintf("omap: duplicate key %v", key))
	}
	var zero K
	m.keys = append(m.keys, zero)
	copy(m.keys[ix+1:], m.keys[ix:])
	m.keys[ix] = key
	m.vals[key] = value
	m.reindex(ix)
}

// Delete removes the entry at position ix and returns it.
func (m *Map[K, V]) Delete(ix int) (K, V) {
	m.checkIndex(ix, len(m.keys))
	k := m.keys[ix]
	v := m.vals[k]
	m.keys = append(m.keys[:ix], m.keys[ix+1:]...)
	delete(m.vals, k)
	delete(m.index, k)
	m.reindex(ix)
	return k, v
}

// Move relocates the entry at position from so that it ends up at position to.
func (m *Map[K, V]) Move(from, to int) {
	m.checkIndex(from, len(m.keys))
	m.checkIndex(to, len(m.keys))
	if from == to {
		return
	}
	k := m.keys[from]
	if from < to {
		copy(m.keys[from:to], m.keys[from+1:to+1])
	} else {
		copy(m.keys[to+1:from+1], m.keys[to:from])
	}
	m.keys[to] = k
	m.reindex(min(from, to))
}

// Clone returns an independent copy. Values are copied shallowly.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{
		keys:  m.Keys(),
		vals:  make(map[K]V, len(m.vals)),
		index: make(map[K]int, len(m.index)),
	}
	for k, v := range m.vals {
		c.vals[k] = v
	}
	for k, ix := range m.index {
		c.index[k] = ix
	}
	return c
}

func (m *Map[K, V]) reindex(from int) {
	for i := from; i < len(m.keys); i++ {
		m.index[m.keys[i]] = i
	}
}

func (m *Map[K, V]) checkIndex(ix, n int) {
	if ix < 0 || ix >= n {
		panic(fmt.Sprintf("omap: index %d out of range [0,%d)", ix, n))
	}
}
