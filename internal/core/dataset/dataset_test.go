package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/types"
)

const peopleCSV = `name,age,active,score,joined
alice,30,true,12.5%,2024-01-02
bob,,false,50%,2023-06-30
carol,41,TRUE,,2022-12-31
`

func kinds(ds *Dataset) map[string]types.Kind {
	out := map[string]types.Kind{}
	for _, c := range ds.Schema.Columns() {
		out[c.ID] = c.Kind
	}
	return out
}

func TestRead_CSV(t *testing.T) {
	ds, err := Read(strings.NewReader(peopleCSV), CSV, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "active", "score", "joined"}, ds.Schema.IDs())
	assert.Equal(t, map[string]types.Kind{
		"name":   types.String,
		"age":    types.Number,
		"active": types.Boolean,
		"score":  types.Percent,
		"joined": types.Date,
	}, kinds(ds))

	require.Len(t, ds.Rows, 3)
	assert.True(t, ds.Rows[1].Get("age", types.Number).IsNull(), "empty cell is null")
	assert.Equal(t, "12.5%", types.Format(ds.Rows[0].Get("score", types.Percent), types.FormatOptions{}))
	b, ok := ds.Rows[2].Get("active", types.Boolean).Bool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestRead_JSONKeepsKeyOrder(t *testing.T) {
	in := `[
  {"zeta": "a", "alpha": 1, "flag": true},
  {"zeta": "b", "alpha": 2.5, "flag": null, "extra": "x"}
]`
	ds, err := Read(strings.NewReader(in), JSON, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "flag", "extra"}, ds.Schema.IDs())
	assert.Equal(t, types.Number, kinds(ds)["alpha"])
	assert.Equal(t, types.Boolean, kinds(ds)["flag"])
	assert.True(t, ds.Rows[1].Get("flag", types.Boolean).IsNull())
	assert.True(t, ds.Rows[0].Get("extra", types.String).IsNull())
}

func TestRead_YAMLWithDeclaredColumns(t *testing.T) {
	in := `
- code: "007"
  when: 2024-03-09
- code: "042"
  when: 2024-03-10
`
	declared := []columns.Column{{ID: "code", Kind: types.String, Label: "Code", Width: 6}}
	ds, err := Read(strings.NewReader(in), YAML, declared)
	require.NoError(t, err)

	c, ok := ds.Schema.Column("code")
	require.True(t, ok)
	assert.Equal(t, types.String, c.Kind, "declared kind wins over inference")
	assert.Equal(t, "Code", c.Label)
	assert.Equal(t, types.Date, kinds(ds)["when"])

	s, _ := ds.Rows[0].Get("code", types.String).Str()
	assert.Equal(t, "007", s)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     string
	}{
		{name: "empty csv", format: CSV, in: ""},
		{name: "duplicate header", format: CSV, in: "a,a\n1,2\n"},
		{name: "not a list", format: YAML, in: "a: 1\n"},
		{name: "record not a mapping", format: JSON, in: "[1, 2]"},
		{name: "unknown format", format: "xml", in: "<a/>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), tt.format, nil)
			require.Error(t, err)
		})
	}
}

func TestRead_DeclaredKindMismatch(t *testing.T) {
	declared := []columns.Column{{ID: "n", Kind: types.Number}}
	_, err := Read(strings.NewReader("n\nabc\n"), CSV, declared)
	require.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "a.csv", want: CSV},
		{path: "dir/b.JSON", want: JSON},
		{path: "c.yml", want: YAML},
		{path: "d.yaml", want: YAML},
		{path: "e.xlsx", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte(peopleCSV), 0o644))

	ds, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, path, ds.Source)
	assert.Len(t, ds.Rows, 3)

	_, err = Load("-", Options{})
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: score
  kind: percent
  format:
    precision: 2
- id: joined
  kind: date
  format:
    date_format: DD/MM/YYYY
`), 0o644))

	cols, err := LoadColumns(path)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, types.Percent, cols[0].Kind)
	assert.Equal(t, 2, cols[0].Format.Precision)
	assert.Equal(t, types.DateDayFirst, cols[1].Format.DateFormat)
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name    string
		samples []any
		want    types.Kind
	}{
		{name: "no samples", samples: nil, want: types.String},
		{name: "only nulls", samples: []any{nil, nil}, want: types.String},
		{name: "bool words", samples: []any{"true", "False"}, want: types.Boolean},
		{name: "zero one is number", samples: []any{"0", "1"}, want: types.Number},
		{name: "decoded numbers", samples: []any{1, 2.5}, want: types.Number},
		{name: "percent", samples: []any{"5%", "12.5 %"}, want: types.Percent},
		{name: "dates", samples: []any{"2024-01-01", time.Now()}, want: types.Date},
		{name: "mixed", samples: []any{"1", "x"}, want: types.String},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.samples))
		})
	}
}

func TestGenerate(t *testing.T) {
	ds := Generate(GenerateOptions{Rows: 200, PerKind: 2, Seed: 7})

	assert.Equal(t, 10, ds.Schema.Len())
	assert.Len(t, ds.Rows, 200)
	assert.Equal(t, "generated", ds.Source)

	nulls := 0
	for _, row := range ds.Rows {
		for _, c := range ds.Schema.Columns() {
			v := row.Get(c.ID, c.Kind)
			if v.IsNull() {
				nulls++
			}
		}
	}
	assert.Positive(t, nulls)
	assert.Less(t, nulls, 200*10/2)

	again := Generate(GenerateOptions{Rows: 200, PerKind: 2, Seed: 7})
	assert.Equal(t, ds.Rows[17]["string_1"].String(), again.Rows[17]["string_1"].String(), "deterministic per seed")
}
