package render

import "github.com/colonyops/vgrid/internal/core/geom"

// CellRule pairs a range with the renderer used for cells inside it.
type CellRule[N any] struct {
	Transform geom.Transform
	Render    CellRenderer[N]
}

// Cell builds a CellRule.
func Cell[N any](t geom.Transform, r CellRenderer[N]) CellRule[N] {
	return CellRule[N]{Transform: t, Render: r}
}

// CellRules combines per-cell rules into one CellRenderer. Ranges are
// resolved once against MaxBound; a coordinate is rendered by the first rule
// whose range contains it and by nothing if no rule does.
func CellRules[N any](rules ...CellRule[N]) CellRenderer[N] {
	boxes := make([]geom.BBox, len(rules))
	for i, r := range rules {
		boxes[i] = r.Transform(geom.MaxBound)
	}
	return func(p CellProps) (N, bool) {
		for i, b := range boxes {
			if b.ContainsPoint(p.Point) {
				return rules[i].Render(p)
			}
		}
		var zero N
		return zero, false
	}
}
