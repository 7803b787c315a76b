package render

import (
	"fmt"

	"github.com/colonyops/vgrid/internal/core/geom"
)

// RangeContext is handed to a RangeDecorator together with the nodes its
// rule produced.
type RangeContext[N any] struct {
	*Context[N]
	BBox geom.BBox
}

// RangeDecorator post-processes the nodes produced for one rule's range.
type RangeDecorator[N any] func(nodes []N, rc RangeContext[N]) []N

// RangeRule claims the cells of Transform(baseline) for Decorate.
type RangeRule[N any] struct {
	Transform geom.Transform
	Decorate  RangeDecorator[N]
}

// Rule builds a RangeRule. A nil decorator passes nodes through.
func Rule[N any](t geom.Transform, d RangeDecorator[N]) RangeRule[N] {
	return RangeRule[N]{Transform: t, Decorate: d}
}

// Passthrough returns its nodes unchanged.
func Passthrough[N any](nodes []N, _ RangeContext[N]) []N {
	return nodes
}

// Rules is an ordered rendering policy. Earlier rules claim cells first.
type Rules[N any] []RangeRule[N]

// Render produces the node list for one repaint. The baseline is the
// context's render window; at least one rule must cover all of it, otherwise
// Render panics.
func (rs Rules[N]) Render(ctx *Context[N]) []N {
	base := geom.FromViewport(ctx.Window)
	if geom.IsEmpty(base) {
		return nil
	}

	boxes := make([]geom.BBox, len(rs))
	covered := false
	for i, r := range rs {
		boxes[i] = r.Transform(base)
		if geom.Contains(base, boxes[i]) {
			covered = true
		}
	}
	if !covered {
		panic(fmt.Sprintf("render: no rule covers baseline %s", base))
	}

	rendered := make(map[string]struct{}, base.Columns()*base.Rows())
	var nodes []N

	for i, r := range rs {
		bbox := boxes[i]
		if geom.IsEmpty(bbox) {
			continue
		}
		if unbounded(bbox) {
			bbox = geom.Intersect(bbox, base)
		}
		cells := renderRange(ctx, bbox, rendered)
		if len(cells) == 0 {
			continue
		}
		if r.Decorate != nil {
			cells = r.Decorate(cells, RangeContext[N]{Context: ctx, BBox: bbox})
		}
		nodes = append(nodes, cells...)
	}

	return nodes
}

func renderRange[N any](ctx *Context[N], bbox geom.BBox, rendered map[string]struct{}) []N {
	var cells []N
	for y := bbox.Min.Y; y <= bbox.Max.Y; y++ {
		for x := bbox.Min.X; x <= bbox.Max.X; x++ {
			p := geom.Pt(x, y)
			key := CellKey(p)
			if _, ok := rendered[key]; ok {
				continue
			}
			rendered[key] = struct{}{}
			if n, ok := ctx.cell(key, p); ok {
				cells = append(cells, n)
			}
		}
	}
	return cells
}

// unbounded reports whether b reaches an infinite edge, e.g. FullRange.
func unbounded(b geom.BBox) bool {
	return b.Min.X == geom.NegInf || b.Min.Y == geom.NegInf ||
		b.Max.X == geom.PosInf || b.Max.Y == geom.PosInf
}
