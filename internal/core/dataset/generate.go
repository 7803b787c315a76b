package dataset

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/types"
)

var words = []string{
	"alpha", "amber", "birch", "cedar", "delta", "ember", "fjord", "gale",
	"harbor", "indigo", "juniper", "kestrel", "lumen", "maple", "nimbus",
	"onyx", "pebble", "quartz", "raven", "sable", "tundra", "umber",
	"vale", "willow", "xenon", "yarrow", "zephyr",
}

var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// GenerateOptions shape a generated dataset.
type GenerateOptions struct {
	Rows    int
	PerKind int    // columns generated for each kind
	Seed    uint64 // same seed, same data
	Width   int    // column width; 0 leaves it to the layout
}

// Generate builds an arbitrary dataset with PerKind columns of every kind.
// Roughly one value in eight is null.
func Generate(opts GenerateOptions) *Dataset {
	perKind := max(opts.PerKind, 1)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	cols := make([]columns.Column, 0, perKind*len(types.Kinds))
	for _, k := range types.Kinds {
		for i := range perKind {
			id := fmt.Sprintf("%s_%d", k, i)
			cols = append(cols, columns.Column{ID: id, Kind: k, Label: id, Width: opts.Width})
		}
	}

	schema, err := columns.NewSchema(cols...)
	if err != nil {
		// Ids are unique and kinds come from the registry.
		panic(fmt.Sprintf("dataset: generated schema: %v", err))
	}

	rows := make([]types.Row, max(opts.Rows, 0))
	for i := range rows {
		row := make(types.Row, len(cols))
		for _, c := range cols {
			row[c.ID] = arbitrary(rng, c.Kind)
		}
		rows[i] = row
	}

	return &Dataset{Source: "generated", Schema: schema, Rows: rows}
}

func arbitrary(rng *rand.Rand, k types.Kind) types.Value {
	if rng.IntN(8) == 0 {
		return types.Null(k)
	}
	switch k {
	case types.String:
		return types.StringValue(words[rng.IntN(len(words))])
	case types.Number:
		return types.NumberValue(float64(rng.IntN(2_000_000)-1_000_000) / 100)
	case types.Percent:
		return types.PercentValue(decimal.New(int64(rng.IntN(10_001)), -4))
	case types.Boolean:
		return types.BoolValue(rng.IntN(2) == 1)
	case types.Date:
		return types.DateValue(epoch.AddDate(0, 0, rng.IntN(3650)))
	}
	return types.Null(k)
}
