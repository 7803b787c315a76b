// Package pins keeps a contiguous pinned prefix of a column order consistent
// under pinning, reordering, insertion and deletion.
//
// Pin membership is a function of position: the first PinCount entries are
// pinned. Every mutation adjusts PinCount so that membership keeps matching
// what the caller asked for.
package pins

import (
	"fmt"

	"github.com/colonyops/vgrid/internal/core/geom"
	"github.com/colonyops/vgrid/pkg/omap"
)

// Model layers a pin count over an ordered column sequence. Index arguments
// must be in range; out-of-range indexes panic.
type Model[K comparable, V any] struct {
	order    *omap.Map[K, V]
	pinCount int
}

// New wraps order with pinCount leading pinned entries.
func New[K comparable, V any](order *omap.Map[K, V], pinCount int) *Model[K, V] {
	m := &Model[K, V]{order: order, pinCount: pinCount}
	m.check()
	return m
}

// Order returns the underlying column sequence.
func (m *Model[K, V]) Order() *omap.Map[K, V] {
	return m.order
}

// Len returns the number of columns.
func (m *Model[K, V]) Len() int {
	return m.order.Len()
}

// PinCount returns the length of the pinned prefix.
func (m *Model[K, V]) PinCount() int {
	return m.pinCount
}

// IsPinned reports whether position ix is inside the pinned prefix.
func (m *Model[K, V]) IsPinned(ix int) bool {
	return ix < m.pinCount
}

// AddPin moves the column at ix to the end of the pinned prefix and grows
// the prefix. Pinned columns are left alone.
func (m *Model[K, V]) AddPin(ix int) {
	m.checkIndex(ix)
	if m.IsPinned(ix) {
		return
	}
	m.order.Move(ix, m.pinCount)
	m.pinCount++
}

// RemovePin moves the column at ix to the pinned boundary and shrinks the
// prefix so it lands as the first unpinned column. Unpinned columns are left
// alone.
func (m *Model[K, V]) RemovePin(ix int) {
	m.checkIndex(ix)
	if !m.IsPinned(ix) {
		return
	}
	m.order.Move(ix, m.pinCount-1)
	m.pinCount--
}

// TogglePin pins or unpins the column at ix.
func (m *Model[K, V]) TogglePin(ix int) {
	if m.IsPinned(ix) {
		m.RemovePin(ix)
		return
	}
	m.AddPin(ix)
}

// MoveTo relocates the column at ix to position target. Moving an unpinned
// column into the prefix pins it; moving a pinned column out unpins it.
func (m *Model[K, V]) MoveTo(target, ix int) {
	m.checkIndex(ix)
	m.checkIndex(target)
	wasPinned := m.IsPinned(ix)
	m.order.Move(ix, target)
	switch {
	case !wasPinned && target < m.pinCount:
		m.pinCount++
	case wasPinned && target >= m.pinCount:
		m.pinCount--
	}
	m.check()
}

// InsertAt inserts a column at position ix. Inserting inside the pinned
// prefix grows it.
func (m *Model[K, V]) InsertAt(ix int, key K, value V) {
	m.order.Insert(ix, key, value)
	if ix < m.pinCount {
		m.pinCount++
	}
}

// DeleteAt removes the column at position ix. Deleting a pinned column
// shrinks the prefix.
func (m *Model[K, V]) DeleteAt(ix int) (K, V) {
	m.checkIndex(ix)
	if m.IsPinned(ix) {
		m.pinCount--
	}
	return m.order.Delete(ix)
}

// ResetPins unpins every column without reordering.
func (m *Model[K, V]) ResetPins() {
	m.pinCount = 0
}

// SetPins moves the columns at ixs, in that order, to the front and pins
// exactly those columns. Indexes refer to positions before the call.
func (m *Model[K, V]) SetPins(ixs ...int) {
	keys := make([]K, len(ixs))
	for i, ix := range ixs {
		m.checkIndex(ix)
		keys[i] = m.order.Key(ix)
	}
	for target, k := range keys {
		from, _ := m.order.Index(k)
		m.order.Move(from, target)
	}
	m.pinCount = len(keys)
	m.check()
}

// PinnedRange returns the transform selecting the pinned columns, or an empty
// range when nothing is pinned.
func (m *Model[K, V]) PinnedRange() geom.Transform {
	if m.pinCount == 0 {
		return geom.EmptyRange
	}
	return geom.ColumnRange(0, m.pinCount-1)
}

func (m *Model[K, V]) checkIndex(ix int) {
	if ix < 0 || ix >= m.order.Len() {
		panic(fmt.Sprintf("pins: index %d out of range [0,%d)", ix, m.order.Len()))
	}
}

func (m *Model[K, V]) check() {
	if m.pinCount < 0 || m.pinCount > m.order.Len() {
		panic(fmt.Sprintf("pins: pin count %d out of range [0,%d]", m.pinCount, m.order.Len()))
	}
}
