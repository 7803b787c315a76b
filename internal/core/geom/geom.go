// Package geom models rectangular index ranges over the (column, row) plane.
//
// Every other package addresses cells through these types. Ranges are
// inclusive on both ends; a BBox whose Min equals its Max is a single cell.
package geom

import (
	"fmt"
	"math"
)

// Unbounded coordinates used by MaxBound and by jump-to-edge deltas.
const (
	NegInf = math.MinInt
	PosInf = math.MaxInt
)

// Point addresses a single cell. X is the column index, Y the row index.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d. An unbounded delta component stays unbounded
// and overflow saturates, so the result can be clamped afterwards.
func (p Point) Add(d Point) Point {
	return Point{X: satAdd(p.X, d.X), Y: satAdd(p.Y, d.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// BBox is an inclusive rectangle of cells.
type BBox struct {
	Min Point
	Max Point
}

var (
	// Empty matches nothing. Its bounds are inverted on both axes, so
	// overriding one axis (RowRange, ColumnRange) keeps the result empty.
	Empty = BBox{Min: Point{X: PosInf, Y: PosInf}, Max: Point{X: NegInf, Y: NegInf}}

	// MaxBound matches everything.
	MaxBound = BBox{Min: Point{X: NegInf, Y: NegInf}, Max: Point{X: PosInf, Y: PosInf}}
)

// Box builds an inclusive range from two corners given in min/max order.
func Box(minX, minY, maxX, maxY int) BBox {
	return BBox{Min: Point{X: minX, Y: minY}, Max: Point{X: maxX, Y: maxY}}
}

// PointBox returns the single-cell range at p.
func PointBox(p Point) BBox {
	return BBox{Min: p, Max: p}
}

// Span returns the normalized rectangle with corners a and b, regardless of
// which corner comes first.
func Span(a, b Point) BBox {
	return BBox{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// Window is the visible index window reported by the viewport. Stop indices
// are inclusive.
type Window struct {
	ColumnStart int
	ColumnStop  int
	RowStart    int
	RowStop     int
}

// FromViewport converts a visible window into a BBox.
func FromViewport(w Window) BBox {
	return Box(w.ColumnStart, w.RowStart, w.ColumnStop, w.RowStop)
}

// IsEmpty reports whether b matches no cell.
func IsEmpty(b BBox) bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Contains reports whether b fully contains a. Empty ranges contain nothing
// and are contained by nothing.
func Contains(a, b BBox) bool {
	if IsEmpty(a) || IsEmpty(b) {
		return false
	}
	return b.Min.X <= a.Min.X && b.Max.X >= a.Max.X &&
		b.Min.Y <= a.Min.Y && b.Max.Y >= a.Max.Y
}

// ContainsPoint reports whether p lies inside b.
func (b BBox) ContainsPoint(p Point) bool {
	return Contains(PointBox(p), b)
}

// Intersect returns the overlap of a and b, or Empty.
func Intersect(a, b BBox) BBox {
	r := BBox{
		Min: Point{X: max(a.Min.X, b.Min.X), Y: max(a.Min.Y, b.Min.Y)},
		Max: Point{X: min(a.Max.X, b.Max.X), Y: min(a.Max.Y, b.Max.Y)},
	}
	if IsEmpty(r) {
		return Empty
	}
	return r
}

// Columns returns the number of columns spanned by b.
func (b BBox) Columns() int {
	if IsEmpty(b) {
		return 0
	}
	return b.Max.X - b.Min.X + 1
}

// Rows returns the number of rows spanned by b.
func (b BBox) Rows() int {
	if IsEmpty(b) {
		return 0
	}
	return b.Max.Y - b.Min.Y + 1
}

func (b BBox) String() string {
	if IsEmpty(b) {
		return "[empty]"
	}
	return fmt.Sprintf("[%s %s]", b.Min, b.Max)
}

// Clamp moves p into bound using half-open semantics: Min is inclusive and
// Max is exclusive on both axes.
func Clamp(p Point, bound BBox) Point {
	return Point{
		X: clampAxis(p.X, bound.Min.X, bound.Max.X),
		Y: clampAxis(p.Y, bound.Min.Y, bound.Max.Y),
	}
}

func clampAxis(v, lo, hi int) int {
	if hi != PosInf {
		hi--
	}
	return max(lo, min(hi, v))
}

// satAdd adds with NegInf/PosInf operands absorbing and saturates on overflow.
func satAdd(a, b int) int {
	switch {
	case b == PosInf || b == NegInf:
		return b
	case a == PosInf || a == NegInf:
		return a
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
