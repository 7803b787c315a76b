package columns

import (
	"fmt"
	"slices"

	"github.com/colonyops/vgrid/internal/core/pins"
	"github.com/colonyops/vgrid/pkg/omap"
)

// Layout is the display order of column instances with a pinned prefix.
type Layout struct {
	*pins.Model[string, Display]

	schema       *Schema
	defaultWidth int
}

// LayoutOptions select and arrange the initial columns.
type LayoutOptions struct {
	Columns      []string       // column ids to show; empty shows every schema column
	Pins         []string       // column ids to pin, in order
	Widths       map[string]int // width overrides by column id
	DefaultWidth int            // width of columns that declare none
}

// NewLayout builds the initial layout over schema.
func NewLayout(schema *Schema, opts LayoutOptions) (*Layout, error) {
	ids := opts.Columns
	if len(ids) == 0 {
		ids = schema.IDs()
	}

	l := &Layout{schema: schema, defaultWidth: max(opts.DefaultWidth, 1)}

	order := omap.New[string, Display]()
	for _, id := range ids {
		c, ok := schema.Column(id)
		if !ok {
			return nil, fmt.Errorf("layout: unknown column %q", id)
		}
		d := NewDisplay(c)
		if w, ok := opts.Widths[id]; ok {
			d.Width = w
		}
		order.Set(d.Key, d)
	}
	l.Model = pins.New(order, 0)

	pinned := make([]int, 0, len(opts.Pins))
	for _, id := range opts.Pins {
		ix, ok := l.IndexOf(id)
		if !ok {
			return nil, fmt.Errorf("layout: pinned column %q is not displayed", id)
		}
		if !slices.Contains(pinned, ix) {
			pinned = append(pinned, ix)
		}
	}
	l.SetPins(pinned...)

	return l, nil
}

// Schema returns the layout's schema.
func (l *Layout) Schema() *Schema {
	return l.schema
}

// At returns the instance at ix and its semantic column.
func (l *Layout) At(ix int) (Display, Column) {
	_, d := l.Order().At(ix)
	c, _ := l.schema.Column(d.ID)
	return d, c
}

// IndexOf returns the position of the first instance of column id.
func (l *Layout) IndexOf(id string) (int, bool) {
	for ix, d := range l.Order().Values() {
		if d.ID == id {
			return ix, true
		}
	}
	return 0, false
}

// Width returns the width of the instance at ix.
func (l *Layout) Width(ix int) int {
	d, _ := l.At(ix)
	if d.Width > 0 {
		return d.Width
	}
	return l.defaultWidth
}

// SetWidth resizes the instance at ix.
func (l *Layout) SetWidth(ix, width int) {
	key, d := l.Order().At(ix)
	d.Width = max(width, 1)
	l.Order().Set(key, d)
}

// Duplicate inserts a second instance of the column at ix right after it and
// returns it. A duplicate of a pinned column is pinned too.
func (l *Layout) Duplicate(ix int) Display {
	src, c := l.At(ix)
	d := NewDisplay(c)
	d.Width = src.Width
	l.InsertAt(ix+1, d.Key, d)
	if l.IsPinned(ix) && !l.IsPinned(ix+1) {
		l.AddPin(ix + 1)
	}
	return d
}

// Remove deletes the instance at ix.
func (l *Layout) Remove(ix int) Display {
	_, d := l.DeleteAt(ix)
	return d
}
