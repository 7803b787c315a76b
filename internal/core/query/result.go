package query

import "github.com/colonyops/vgrid/internal/core/types"

// Group is the bucket of rows sharing the same values in the grouping
// columns. Key is derived from a content hash of those values.
type Group struct {
	Key      string
	Columns  []string
	Values   []types.Value
	Entries  []types.Row
	Expanded bool
}

// Aggregate summarizes column id over the group's entries.
func (g *Group) Aggregate(id string, k types.Kind) types.Value {
	values := make([]types.Value, len(g.Entries))
	for i, r := range g.Entries {
		values[i] = r.Get(id, k)
	}
	return types.Aggregate(k, values)
}

// Value returns the group's value for grouping column id.
func (g *Group) Value(id string) (types.Value, bool) {
	for i, c := range g.Columns {
		if c == id {
			return g.Values[i], true
		}
	}
	return types.Value{}, false
}

// DisplayRow is one line of the flattened result: either a data row or a
// group header.
type DisplayRow struct {
	row   types.Row
	group *Group
}

// Data wraps a data row.
func Data(r types.Row) DisplayRow { return DisplayRow{row: r} }

// Header wraps a group header.
func Header(g *Group) DisplayRow { return DisplayRow{group: g} }

func (d DisplayRow) IsHeader() bool { return d.group != nil }

// Row returns the data row, if d is one.
func (d DisplayRow) Row() (types.Row, bool) { return d.row, d.group == nil }

// Group returns the group, if d is a header.
func (d DisplayRow) Group() (*Group, bool) { return d.group, d.group != nil }

// Result is the output of one pipeline run.
type Result struct {
	Rows   []types.Row // filtered and sorted
	Groups []*Group    // empty when the query has no grouping columns

	display []DisplayRow
}

// Display flattens the result. Without groups it is the rows; otherwise each
// group header is followed by its entries when expanded.
func (r *Result) Display() []DisplayRow {
	if r.display != nil {
		return r.display
	}

	if len(r.Groups) == 0 {
		r.display = make([]DisplayRow, len(r.Rows))
		for i, row := range r.Rows {
			r.display[i] = Data(row)
		}
		return r.display
	}

	r.display = make([]DisplayRow, 0, len(r.Groups))
	for _, g := range r.Groups {
		r.display = append(r.display, Header(g))
		if g.Expanded {
			for _, row := range g.Entries {
				r.display = append(r.display, Data(row))
			}
		}
	}
	return r.display
}

// Len is the number of display rows.
func (r *Result) Len() int {
	return len(r.Display())
}

// Group looks up a group by key.
func (r *Result) Group(key string) (*Group, bool) {
	for _, g := range r.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return nil, false
}

// SetExpanded sets a group's expansion. Reports whether the group exists.
func (r *Result) SetExpanded(key string, expanded bool) bool {
	g, ok := r.Group(key)
	if !ok {
		return false
	}
	if g.Expanded != expanded {
		g.Expanded = expanded
		r.display = nil
	}
	return true
}

// Toggle flips a group's expansion.
func (r *Result) Toggle(key string) bool {
	g, ok := r.Group(key)
	if !ok {
		return false
	}
	return r.SetExpanded(key, !g.Expanded)
}
