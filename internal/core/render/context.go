// Package render composes the node list for one viewport repaint out of an
// ordered list of range rules.
//
// Each rule claims the cells of its range that no earlier rule claimed, so
// every visible coordinate is rendered at most once. Rules either pass their
// cells through or wrap them, e.g. in a sticky overlay.
package render

import (
	"strconv"

	"github.com/colonyops/vgrid/internal/core/geom"
	"github.com/colonyops/vgrid/internal/core/viewport"
	"github.com/colonyops/vgrid/pkg/kv"
)

// Style is the absolute placement of a cell inside the scrolled content.
type Style struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// CellProps is what a CellRenderer receives for one coordinate.
type CellProps struct {
	Point       geom.Point
	Key         string
	Style       Style
	IsVisible   bool
	IsScrolling bool
}

// CellRenderer renders one coordinate. Returning false renders nothing.
type CellRenderer[N any] func(CellProps) (N, bool)

// Axis is the position and size lookup of one viewport axis.
type Axis interface {
	SizeAndPositionOf(ix int) viewport.Extent
}

// Caches are the memo tables owned by the viewport. Within one repaint
// entries are only ever added; the viewport resets them between repaints.
type Caches[N any] struct {
	Styles   *kv.Store[string, Style]
	Cells    *kv.Store[string, N]
	Overlays *kv.Store[string, Overlay]
}

// NewCaches creates empty caches.
func NewCaches[N any]() *Caches[N] {
	return &Caches[N]{
		Styles:   kv.New[string, Style](),
		Cells:    kv.New[string, N](),
		Overlays: kv.New[string, Overlay](),
	}
}

// Reset discards every cached style, cell and overlay.
func (c *Caches[N]) Reset() {
	c.Styles.Reset()
	c.Cells.Reset()
	c.Overlays.Reset()
}

// Context is the per-repaint input supplied by the viewport.
type Context[N any] struct {
	Window  geom.Window // cells to render, including overscan
	Visible geom.Window // cells intersecting the container

	Columns Axis
	Rows    Axis

	HorizontalOffsetAdjustment float64
	VerticalOffsetAdjustment   float64
	HorizontalScale            float64
	VerticalScale              float64

	IsScrolling bool

	Caches       *Caches[N]
	CellRenderer CellRenderer[N]
}

// CellKey is the cache key of a coordinate.
func CellKey(p geom.Point) string {
	return strconv.Itoa(p.Y) + "-" + strconv.Itoa(p.X)
}

func (c *Context[N]) isVisible(p geom.Point) bool {
	return p.X >= c.Visible.ColumnStart && p.X <= c.Visible.ColumnStop &&
		p.Y >= c.Visible.RowStart && p.Y <= c.Visible.RowStop
}

func (c *Context[N]) style(key string, p geom.Point) Style {
	return c.Caches.Styles.Memo(key, func() Style {
		row := c.Rows.SizeAndPositionOf(p.Y)
		col := c.Columns.SizeAndPositionOf(p.X)
		return Style{
			Left:   col.Offset + c.HorizontalOffsetAdjustment,
			Top:    row.Offset + c.VerticalOffsetAdjustment,
			Width:  col.Size,
			Height: row.Size,
		}
	})
}

// cell renders p through the cell cache. Empty results are not cached.
func (c *Context[N]) cell(key string, p geom.Point) (N, bool) {
	if n, ok := c.Caches.Cells.Get(key); ok {
		return n, true
	}
	n, ok := c.CellRenderer(CellProps{
		Point:       p,
		Key:         key,
		Style:       c.style(key, p),
		IsVisible:   c.isVisible(p),
		IsScrolling: c.IsScrolling,
	})
	if ok {
		c.Caches.Cells.Put(key, n)
	}
	return n, ok
}
