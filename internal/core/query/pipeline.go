package query

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/colonyops/vgrid/internal/core/types"
)

// Pipeline runs queries over rows of one schema.
type Pipeline struct {
	Kinds KindOf
}

// Run filters, sorts and groups rows. The input slice is not modified. Every
// run builds fresh groups, all collapsed.
func (p Pipeline) Run(rows []types.Row, q Query) (*Result, error) {
	for _, id := range q.Columns() {
		if _, ok := p.Kinds(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, id)
		}
	}

	out := p.filter(rows, q.Filters)
	p.sort(out, q.OrderBy)

	return &Result{
		Rows:   out,
		Groups: p.group(out, q.GroupBy),
	}, nil
}

func (p Pipeline) kind(id string) types.Kind {
	k, _ := p.Kinds(id)
	return k
}

func (p Pipeline) filter(rows []types.Row, filters map[string]types.Filter) []types.Row {
	if len(filters) == 0 {
		return slices.Clone(rows)
	}
	out := make([]types.Row, 0, len(rows))
	for _, r := range rows {
		keep := true
		for id, f := range filters {
			if !f.Match(r.Get(id, p.kind(id))) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

func (p Pipeline) sort(rows []types.Row, orderBy []Sort) {
	if len(orderBy) == 0 {
		return
	}
	kinds := make([]types.Kind, len(orderBy))
	for i, s := range orderBy {
		kinds[i] = p.kind(s.Column)
	}
	slices.SortStableFunc(rows, func(a, b types.Row) int {
		for i, s := range orderBy {
			c := types.Compare(a.Get(s.Column, kinds[i]), b.Get(s.Column, kinds[i]))
			if c == 0 {
				continue
			}
			if s.Order == Desc {
				return -c
			}
			return c
		}
		return 0
	})
}

// group partitions rows by the values of ids, in order of first appearance.
func (p Pipeline) group(rows []types.Row, ids []string) []*Group {
	if len(ids) == 0 {
		return nil
	}

	kinds := make([]types.Kind, len(ids))
	for i, id := range ids {
		kinds[i] = p.kind(id)
	}

	var (
		groups []*Group
		byHash = map[uint64][]*Group{}
		values = make([]types.Value, len(ids))
	)
	for _, r := range rows {
		for i, id := range ids {
			values[i] = r.Get(id, kinds[i])
		}
		h := hashValues(values)

		var match *Group
		for _, g := range byHash[h] {
			if sameValues(g.Values, values) {
				match = g
				break
			}
		}
		if match == nil {
			match = &Group{
				Key:     fmt.Sprintf("group-%016x", h),
				Columns: ids,
				Values:  slices.Clone(values),
			}
			byHash[h] = append(byHash[h], match)
			groups = append(groups, match)
		}
		match.Entries = append(match.Entries, r)
	}

	// Colliding tuples share a hash; suffix the later keys so keys stay unique.
	for _, gs := range byHash {
		for i, g := range gs[1:] {
			g.Key = fmt.Sprintf("%s-%d", g.Key, i+1)
		}
	}
	return groups
}

func hashValues(values []types.Value) uint64 {
	d := xxhash.New()
	for _, v := range values {
		_, _ = d.WriteString(string(v.Kind()))
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(v.String())
		_, _ = d.Write([]byte{0x1f})
	}
	return d.Sum64()
}

func sameValues(a, b []types.Value) bool {
	return slices.EqualFunc(a, b, func(x, y types.Value) bool {
		return x.Kind() == y.Kind() && x.String() == y.String()
	})
}
