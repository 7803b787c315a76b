package query

import (
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/vgrid/internal/core/types"
)

// KindOf resolves a column id to its kind.
type KindOf func(id string) (types.Kind, bool)

// SortSpec is the serialized form of a Sort.
type SortSpec struct {
	Column string `yaml:"column"`
	Order  Order  `yaml:"order"`
}

// Spec is the serialized form of a Query, as written in config presets.
type Spec struct {
	OrderBy []SortSpec                  `yaml:"order_by,omitempty"`
	GroupBy []string                    `yaml:"group_by,omitempty"`
	Filters map[string]types.FilterSpec `yaml:"filters,omitempty"`
}

// Build resolves the spec against a schema. Every problem is reported as a
// criterio field error.
func (s Spec) Build(kinds KindOf) (Query, error) {
	var (
		q    Query
		errs criterio.FieldErrorsBuilder
	)

	for i, o := range s.OrderBy {
		field := fmt.Sprintf("order_by[%d]", i)
		if _, ok := kinds(o.Column); !ok {
			errs = errs.Append(field+".column", fmt.Errorf("%w: %q", ErrUnknownColumn, o.Column))
			continue
		}
		order := o.Order
		switch order {
		case "":
			order = Asc
		case Asc, Desc:
		default:
			errs = errs.Append(field+".order", fmt.Errorf("must be asc or desc, got %q", o.Order))
			continue
		}
		q = q.WithSorting(o.Column, &Sorting{Priority: len(q.OrderBy), Order: order})
	}

	for i, id := range s.GroupBy {
		if _, ok := kinds(id); !ok {
			errs = errs.Append(fmt.Sprintf("group_by[%d]", i), fmt.Errorf("%w: %q", ErrUnknownColumn, id))
			continue
		}
		q = q.WithGrouped(id, true)
	}

	for id, fs := range s.Filters {
		field := fmt.Sprintf("filters[%q]", id)
		kind, ok := kinds(id)
		if !ok {
			errs = errs.Append(field, fmt.Errorf("%w: %q", ErrUnknownColumn, id))
			continue
		}
		f, err := types.BuildFilter(kind, fs)
		if err != nil {
			errs = errs.Append(field, err)
			continue
		}
		q = q.WithFilter(id, f)
	}

	if err := errs.ToError(); err != nil {
		return Query{}, err
	}
	return q, nil
}
