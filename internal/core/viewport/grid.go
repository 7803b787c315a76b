package viewport

import (
	"math"

	"github.com/colonyops/vgrid/internal/core/geom"
)

// Grid is a two-axis scroll container. Scroll offsets are safe offsets (see
// ScalingManager).
type Grid struct {
	Columns *ScalingManager
	Rows    *ScalingManager

	Width    float64 // container width
	Height   float64 // container height
	Overscan int     // extra cells rendered past each visible edge

	scrollLeft float64
	scrollTop  float64
}

// NewGrid creates a grid over the given axes.
func NewGrid(columns, rows *ScalingManager) *Grid {
	return &Grid{Columns: columns, Rows: rows}
}

// SetSize updates the container size and re-clamps the scroll position.
func (g *Grid) SetSize(width, height float64) {
	g.Width = width
	g.Height = height
	g.ScrollToPosition(g.scrollLeft, g.scrollTop)
}

// Scroll returns the current safe scroll offsets.
func (g *Grid) Scroll() (left, top float64) {
	return g.scrollLeft, g.scrollTop
}

// ScrollToPosition sets the scroll offsets, clamped to the scrollable range.
func (g *Grid) ScrollToPosition(left, top float64) {
	g.scrollLeft = clamp(left, 0, g.Columns.MaxSafeOffset(g.Width))
	g.scrollTop = clamp(top, 0, g.Rows.MaxSafeOffset(g.Height))
}

// ScrollBy moves the scroll offsets by a delta.
func (g *Grid) ScrollBy(dx, dy float64) {
	g.ScrollToPosition(g.scrollLeft+dx, g.scrollTop+dy)
}

// HorizontalOffsetAdjustment returns the column axis offset adjustment for
// the current scroll position.
func (g *Grid) HorizontalOffsetAdjustment() float64 {
	return g.Columns.OffsetAdjustment(g.Width, g.scrollLeft)
}

// VerticalOffsetAdjustment returns the row axis offset adjustment for the
// current scroll position.
func (g *Grid) VerticalOffsetAdjustment() float64 {
	return g.Rows.OffsetAdjustment(g.Height, g.scrollTop)
}

// Visible returns the cells intersecting the container, without overscan.
func (g *Grid) Visible() (geom.Window, bool) {
	c0, c1, okc := g.Columns.VisibleRange(g.Width, g.scrollLeft)
	r0, r1, okr := g.Rows.VisibleRange(g.Height, g.scrollTop)
	if !okc || !okr {
		return geom.Window{}, false
	}
	return geom.Window{ColumnStart: c0, ColumnStop: c1, RowStart: r0, RowStop: r1}, true
}

// Window returns the cells to render: the visible cells widened by Overscan
// on each side, clamped to the grid.
func (g *Grid) Window() (geom.Window, bool) {
	w, ok := g.Visible()
	if !ok {
		return w, false
	}
	w.ColumnStart = max(0, w.ColumnStart-g.Overscan)
	w.ColumnStop = min(g.Columns.Count()-1, w.ColumnStop+g.Overscan)
	w.RowStart = max(0, w.RowStart-g.Overscan)
	w.RowStop = min(g.Rows.Count()-1, w.RowStop+g.Overscan)
	return w, true
}

// OffsetForCell returns the safe scroll offsets that bring p into view while
// moving as little as possible.
func (g *Grid) OffsetForCell(p geom.Point) (left, top float64) {
	left = g.Columns.UpdatedOffsetForIndex(g.Width, g.scrollLeft, p.X)
	top = g.Rows.UpdatedOffsetForIndex(g.Height, g.scrollTop, p.Y)
	return left, top
}

// ScrollToCell scrolls p into view. sticky is the first cell not covered by
// a sticky overlay on each axis (pin count, header row count); when the
// target would end up underneath an overlay, the scroll offset is reduced so
// the cell's visible edge aligns with the overlay edge instead.
func (g *Grid) ScrollToCell(p, sticky geom.Point) {
	left, top := g.OffsetForCell(p)

	stickyLeft := g.Columns.OffsetOf(sticky.X)
	stickyTop := g.Rows.OffsetOf(sticky.Y)

	if stickyTop != 0 {
		top -= adjustmentDelta(
			g.Rows.OffsetOf(p.Y),
			stickyTop,
			g.scrollTop,
			g.VerticalOffsetAdjustment(),
			g.Rows.DensityScale(),
		)
	}
	if stickyLeft != 0 {
		left -= adjustmentDelta(
			g.Columns.OffsetOf(p.X),
			stickyLeft,
			g.scrollLeft,
			g.HorizontalOffsetAdjustment(),
			g.Columns.DensityScale(),
		)
	}

	g.ScrollToPosition(left, top)
}

// adjustmentDelta is how far the target cell is covered by the sticky
// overlay, bounded to [0, stickyOffset].
func adjustmentDelta(targetOffset, stickyOffset, gridScroll, offsetAdjustment, densityScale float64) float64 {
	covered := stickyOffset - ((targetOffset - gridScroll) + offsetAdjustment)
	return math.Min(stickyOffset, math.Max(0, covered)*densityScale)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
