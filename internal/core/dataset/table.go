package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/types"
)

// table is decoded input before kinds are resolved: column ids in order of
// first appearance and raw scalar values per row.
type table struct {
	ids  []string
	seen map[string]bool
	rows []map[string]any
}

func newTable() *table {
	return &table{seen: map[string]bool{}}
}

func (t *table) addColumn(id string) {
	if !t.seen[id] {
		t.seen[id] = true
		t.ids = append(t.ids, id)
	}
}

func readCSV(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	t := newTable()
	for _, h := range header {
		if t.seen[h] {
			return nil, fmt.Errorf("duplicate CSV header %q", h)
		}
		t.addColumn(h)
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		row := make(map[string]any, len(header))
		for i, v := range rec {
			if i < len(header) && v != "" {
				row[header[i]] = v
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// readDocument decodes a JSON or YAML sequence of mappings. JSON is read
// through the YAML decoder so that key order is preserved.
func readDocument(r io.Reader) (*table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return newTable(), nil
		}
		return nil, fmt.Errorf("decode document: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("document must be a list of records")
	}

	t := newTable()
	for i, rec := range root.Content {
		if rec.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("record %d: not a mapping", i)
		}
		row := make(map[string]any, len(rec.Content)/2)
		for j := 0; j+1 < len(rec.Content); j += 2 {
			key, val := rec.Content[j].Value, rec.Content[j+1]
			t.addColumn(key)

			var v any
			if err := val.Decode(&v); err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", i, key, err)
			}
			if v != nil {
				row[key] = v
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// build resolves kinds and converts raw values into typed rows.
func (t *table) build(declared []columns.Column) (*Dataset, error) {
	byID := make(map[string]columns.Column, len(declared))
	for _, c := range declared {
		byID[c.ID] = c
	}

	cols := make([]columns.Column, 0, len(t.ids))
	for _, id := range t.ids {
		c, ok := byID[id]
		if !ok || c.Kind == "" {
			c.ID = id
			c.Kind = t.infer(id)
		}
		cols = append(cols, c)
	}

	schema, err := columns.NewSchema(cols...)
	if err != nil {
		return nil, err
	}

	rows := make([]types.Row, len(t.rows))
	for i, raw := range t.rows {
		row := make(types.Row, len(raw))
		for _, c := range cols {
			v, ok := raw[c.ID]
			if !ok {
				continue
			}
			tv, err := types.Coerce(c.Kind, v)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, c.ID, err)
			}
			row[c.ID] = tv
		}
		rows[i] = row
	}

	return &Dataset{Schema: schema, Rows: rows}, nil
}

func (t *table) infer(id string) types.Kind {
	samples := make([]any, 0, len(t.rows))
	for _, r := range t.rows {
		if v, ok := r[id]; ok {
			samples = append(samples, v)
		}
	}
	return Infer(samples)
}
