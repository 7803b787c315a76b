// Package query describes what the grid displays (ordering, grouping and
// filters) and runs the filter, sort and group pipeline over rows.
package query

import (
	"errors"
	"maps"
	"slices"

	"github.com/colonyops/vgrid/internal/core/types"
)

// ErrUnknownColumn is returned when a query references a column the schema
// does not define.
var ErrUnknownColumn = errors.New("unknown column")

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort orders by one column.
type Sort struct {
	Column string
	Order  Order
}

// Sorting is a column's place in the ordering.
type Sorting struct {
	Priority int
	Order    Order
}

// Query is the serializable description of what is displayed. It is a value
// type: the With methods return updated copies and never modify the receiver.
type Query struct {
	OrderBy []Sort
	GroupBy []string
	Filters map[string]types.Filter
}

// Sorting returns where id appears in the ordering.
func (q Query) Sorting(id string) (Sorting, bool) {
	ix := slices.IndexFunc(q.OrderBy, func(s Sort) bool { return s.Column == id })
	if ix < 0 {
		return Sorting{}, false
	}
	return Sorting{Priority: ix, Order: q.OrderBy[ix].Order}, true
}

// WithSorting removes id from the ordering and, when s is not nil,
// re-inserts it at s.Priority. Priorities past the end append.
func (q Query) WithSorting(id string, s *Sorting) Query {
	orderBy := slices.DeleteFunc(slices.Clone(q.OrderBy), func(s Sort) bool { return s.Column == id })
	if s != nil {
		ix := min(max(s.Priority, 0), len(orderBy))
		orderBy = slices.Insert(orderBy, ix, Sort{Column: id, Order: s.Order})
	}
	q.OrderBy = orderBy
	return q
}

// CycleSort steps id through unsorted, ascending and descending. A new sort
// key is appended with the lowest priority.
func (q Query) CycleSort(id string) Query {
	cur, ok := q.Sorting(id)
	switch {
	case !ok:
		return q.WithSorting(id, &Sorting{Priority: len(q.OrderBy), Order: Asc})
	case cur.Order == Asc:
		return q.WithSorting(id, &Sorting{Priority: cur.Priority, Order: Desc})
	}
	return q.WithSorting(id, nil)
}

// IsGrouped reports whether id is a grouping column.
func (q Query) IsGrouped(id string) bool {
	return slices.Contains(q.GroupBy, id)
}

// WithGrouped adds id to the end of the grouping columns, or removes it.
func (q Query) WithGrouped(id string, grouped bool) Query {
	switch {
	case grouped && !q.IsGrouped(id):
		q.GroupBy = append(slices.Clone(q.GroupBy), id)
	case !grouped:
		q.GroupBy = slices.DeleteFunc(slices.Clone(q.GroupBy), func(g string) bool { return g == id })
	}
	return q
}

// Filter returns the filter on id.
func (q Query) Filter(id string) (types.Filter, bool) {
	f, ok := q.Filters[id]
	return f, ok
}

// WithFilter sets the filter on id. A nil filter removes it.
func (q Query) WithFilter(id string, f types.Filter) Query {
	filters := maps.Clone(q.Filters)
	if filters == nil {
		filters = map[string]types.Filter{}
	}
	if f == nil {
		delete(filters, id)
	} else {
		filters[id] = f
	}
	q.Filters = filters
	return q
}

// Columns lists every column id the query references.
func (q Query) Columns() []string {
	var ids []string
	for _, s := range q.OrderBy {
		ids = append(ids, s.Column)
	}
	ids = append(ids, q.GroupBy...)
	return append(ids, slices.Sorted(maps.Keys(q.Filters))...)
}
