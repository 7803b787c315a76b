// Package columns holds the semantic column schema and the display layout:
// the ordered, pinnable list of column instances shown by the grid.
package columns

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/colonyops/vgrid/internal/core/types"
	"github.com/colonyops/vgrid/pkg/omap"
)

// Column is a semantic column.
type Column struct {
	ID     string              `yaml:"id"`
	Kind   types.Kind          `yaml:"kind"`
	Label  string              `yaml:"label,omitempty"`
	Width  int                 `yaml:"width,omitempty"`
	Format types.FormatOptions `yaml:"format,omitempty"`
}

// Title is the header text.
func (c Column) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Schema is the ordered set of semantic columns, keyed by id.
type Schema struct {
	cols *omap.Map[string, Column]
}

// NewSchema builds a schema. Ids must be unique and kinds known.
func NewSchema(cols ...Column) (*Schema, error) {
	m := omap.New[string, Column]()
	for _, c := range cols {
		if c.ID == "" {
			return nil, fmt.Errorf("column without id")
		}
		if m.Has(c.ID) {
			return nil, fmt.Errorf("duplicate column %q", c.ID)
		}
		if _, ok := types.Lookup(c.Kind); !ok {
			return nil, fmt.Errorf("column %q: unknown kind %q", c.ID, c.Kind)
		}
		m.Set(c.ID, c)
	}
	return &Schema{cols: m}, nil
}

func (s *Schema) Len() int { return s.cols.Len() }

// Column looks up a column by id.
func (s *Schema) Column(id string) (Column, bool) {
	return s.cols.Get(id)
}

// Kind resolves a column id to its kind. It satisfies query.KindOf.
func (s *Schema) Kind(id string) (types.Kind, bool) {
	c, ok := s.cols.Get(id)
	return c.Kind, ok
}

// Columns returns the columns in schema order.
func (s *Schema) Columns() []Column {
	return s.cols.Values()
}

// IDs returns the column ids in schema order.
func (s *Schema) IDs() []string {
	return s.cols.Keys()
}

// Display is one rendered instance of a semantic column. The same column may
// be shown more than once; UI state is keyed by Key, never by ID.
type Display struct {
	Key   string
	ID    string
	Width int
}

// NewDisplay creates an instance of c with a fresh key.
func NewDisplay(c Column) Display {
	return Display{Key: uuid.NewString(), ID: c.ID, Width: c.Width}
}
