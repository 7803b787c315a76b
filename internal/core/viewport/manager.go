// Package viewport implements the virtualization side of the grid: per-axis
// cell size and position lookup, rescaling of very large extents, visible
// index windows, and scroll-to-cell with sticky overlay compensation.
package viewport

import (
	"fmt"
	"math"
	"sort"
)

// Extent is the position and size of one cell along an axis.
type Extent struct {
	Offset float64
	Size   float64
}

// End returns the offset just past the cell.
func (e Extent) End() float64 {
	return e.Offset + e.Size
}

// SizeFunc returns the size of the cell at ix.
type SizeFunc func(ix int) float64

// Fixed returns a SizeFunc that reports the same size for every cell.
func Fixed(size float64) SizeFunc {
	return func(int) float64 { return size }
}

// Manager memoizes cumulative cell offsets along one axis.
type Manager struct {
	count   int
	size    SizeFunc
	extents []Extent
}

// NewManager creates a manager for count cells sized by size.
func NewManager(count int, size SizeFunc) *Manager {
	return &Manager{count: count, size: size}
}

// Configure replaces the cell count and size function and drops every
// memoized offset.
func (m *Manager) Configure(count int, size SizeFunc) {
	m.count = count
	m.size = size
	m.extents = nil
}

// Invalidate drops memoized offsets from ix onwards, e.g. after a column
// was resized.
func (m *Manager) Invalidate(ix int) {
	if ix < len(m.extents) {
		m.extents = m.extents[:max(0, ix)]
	}
}

// Count returns the number of cells.
func (m *Manager) Count() int {
	return m.count
}

// SizeAndPositionOf returns the extent of the cell at ix.
func (m *Manager) SizeAndPositionOf(ix int) Extent {
	if ix < 0 || ix >= m.count {
		panic(fmt.Sprintf("viewport: cell %d out of range [0,%d)", ix, m.count))
	}
	m.measure(ix)
	return m.extents[ix]
}

// OffsetOf returns the offset at which cell ix starts. Indexes past the last
// cell report the total size, so the offset of "the cell after the pinned
// prefix" is defined even when every cell is pinned.
func (m *Manager) OffsetOf(ix int) float64 {
	if ix <= 0 {
		return 0
	}
	if ix >= m.count {
		return m.TotalSize()
	}
	return m.SizeAndPositionOf(ix).Offset
}

// TotalSize returns the summed size of all cells.
func (m *Manager) TotalSize() float64 {
	if m.count == 0 {
		return 0
	}
	return m.SizeAndPositionOf(m.count - 1).End()
}

// VisibleRange returns the inclusive index range of cells intersecting
// [offset, offset+containerSize). ok is false when the axis has no cells.
func (m *Manager) VisibleRange(containerSize, offset float64) (start, stop int, ok bool) {
	if m.count == 0 || m.TotalSize() == 0 {
		return 0, 0, false
	}
	maxOffset := offset + containerSize
	start = m.nearestCell(offset)
	e := m.SizeAndPositionOf(start)
	end := e.End()
	stop = start
	for end < maxOffset && stop < m.count-1 {
		stop++
		end += m.SizeAndPositionOf(stop).Size
	}
	return start, stop, true
}

// UpdatedOffsetForIndex returns the scroll offset that brings target into
// view while moving as little as possible from currentOffset.
func (m *Manager) UpdatedOffsetForIndex(containerSize, currentOffset float64, target int) float64 {
	if m.count == 0 {
		return 0
	}
	target = max(0, min(m.count-1, target))
	e := m.SizeAndPositionOf(target)
	maxOffset := e.Offset
	minOffset := maxOffset - containerSize + e.Size
	ideal := math.Max(minOffset, math.Min(maxOffset, currentOffset))
	return math.Max(0, math.Min(m.TotalSize()-containerSize, ideal))
}

func (m *Manager) nearestCell(offset float64) int {
	offset = math.Max(0, offset)
	m.measure(m.count - 1)
	ix := sort.Search(m.count, func(i int) bool {
		return m.extents[i].End() > offset
	})
	return min(ix, m.count-1)
}

func (m *Manager) measure(ix int) {
	for i := len(m.extents); i <= ix; i++ {
		var offset float64
		if i > 0 {
			offset = m.extents[i-1].End()
		}
		m.extents = append(m.extents, Extent{Offset: offset, Size: m.size(i)})
	}
}
