package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/config"
	"github.com/colonyops/vgrid/internal/core/query"
	"github.com/colonyops/vgrid/internal/core/styles"
	"github.com/colonyops/vgrid/internal/core/types"
	"github.com/colonyops/vgrid/pkg/iojson"
)

type QueryCmd struct {
	flags  *Flags
	source sourceFlags

	// flags
	jsonOutput bool
	collapse   bool
	limit      int
}

// NewQueryCmd creates a new query command
func NewQueryCmd(flags *Flags) *QueryCmd {
	return &QueryCmd{flags: flags}
}

// Register adds the query command to the application
func (cmd *QueryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "query",
		Usage:     "Run a preset over a dataset and print the result",
		UsageText: "vgrid query [options] [file]",
		Description: `Applies the preset's filters, sort order and grouping and prints the displayed
columns as a table. Group headers show each group's values and the aggregate
of every other column.

Use --json for machine-readable output.`,
		Flags: append(cmd.source.flags(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "collapse",
				Usage:       "print group headers only",
				Destination: &cmd.collapse,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "print at most N data rows (0 = all)",
				Destination: &cmd.limit,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *QueryCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	ctx, ds, preset, err := cmd.source.resolve(ctx, c, cfg)
	if err != nil {
		return err
	}

	res, err := runPreset(ctx, cfg, preset, ds.Schema, ds.Rows)
	if err != nil {
		return err
	}
	if !cmd.collapse {
		for _, g := range res.result.Groups {
			res.result.SetExpanded(g.Key, true)
		}
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, res.json(cmd.limit))
	}

	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	_, err = fmt.Fprintln(out, res.table(width, cmd.limit))
	return err
}

// queryResult is a pipeline result with the layout it is shown through.
type queryResult struct {
	layout *columns.Layout
	query  query.Query
	result *query.Result
}

func runPreset(ctx context.Context, cfg *config.Config, preset config.Preset, schema *columns.Schema, rows []types.Row) (*queryResult, error) {
	layout, err := columns.NewLayout(schema, preset.LayoutOptions(cfg.Layout.CellWidth))
	if err != nil {
		return nil, err
	}
	q, err := preset.Query(schema)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := query.Pipeline{Kinds: schema.Kind}.Run(rows, q)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	log.Debug().Ctx(ctx).
		Int("rows_in", len(rows)).
		Int("rows_out", len(result.Rows)).
		Int("groups", len(result.Groups)).
		Dur("took", time.Since(start)).
		Msg("pipeline run")

	return &queryResult{layout: layout, query: q, result: result}, nil
}

// columns returns the displayed semantic columns in layout order.
func (r *queryResult) columns() []columns.Column {
	cols := make([]columns.Column, r.layout.Len())
	for ix := range cols {
		_, cols[ix] = r.layout.At(ix)
	}
	return cols
}

func (r *queryResult) table(width, limit int) string {
	cols := r.columns()

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Title()
		if s, ok := r.query.Sorting(col.ID); ok {
			marker := styles.IconSortAsc
			if s.Order == query.Desc {
				marker = styles.IconSortDesc
			}
			headers[i] += " " + marker
		}
	}

	var (
		rows   [][]string
		groups = map[int]bool{}
		data   int
	)
	for _, d := range r.result.Display() {
		if g, ok := d.Group(); ok {
			groups[len(rows)] = true
			rows = append(rows, groupCells(g, cols))
			continue
		}
		if limit > 0 && data >= limit {
			continue
		}
		data++
		row, _ := d.Row()
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = types.Format(row.Get(col.ID, col.Kind), col.Format)
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = styles.TableHeaderStyle
			case groups[row]:
				s = styles.TableGroupStyle
			default:
				s = styles.TableCellStyle
			}
			if col < len(cols) && alignRight(cols[col].Kind) && row != table.HeaderRow {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	if width > 0 {
		t = t.Width(width)
	}

	summary := fmt.Sprintf("%d rows shown, %d matched", data, len(r.result.Rows))
	if n := len(r.result.Groups); n > 0 {
		summary += fmt.Sprintf(", %d groups", n)
	}
	return t.Render() + "\n" + styles.DividerStyle.Render(summary)
}

// groupCells renders a group header: its own values in the grouping columns,
// the aggregate elsewhere.
func groupCells(g *query.Group, cols []columns.Column) []string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		if v, ok := g.Value(col.ID); ok {
			cells[i] = types.Format(v, col.Format)
		} else {
			cells[i] = types.Format(g.Aggregate(col.ID, col.Kind), col.Format)
		}
	}
	if len(cells) > 0 {
		cells[0] = fmt.Sprintf("%s %s (%d)", styles.IconGrouped, cells[0], len(g.Entries))
	}
	return cells
}

func alignRight(k types.Kind) bool {
	return k == types.Number || k == types.Percent
}

type groupJSON struct {
	Values     map[string]any   `json:"values"`
	Count      int              `json:"count"`
	Aggregates map[string]any   `json:"aggregates"`
	Rows       []map[string]any `json:"rows,omitempty"`
}

type queryJSON struct {
	Columns []string         `json:"columns"`
	Matched int              `json:"matched"`
	Rows    []map[string]any `json:"rows,omitempty"`
	Groups  []groupJSON      `json:"groups,omitempty"`
}

func (r *queryResult) json(limit int) queryJSON {
	cols := r.columns()
	out := queryJSON{Matched: len(r.result.Rows)}
	for _, col := range cols {
		out.Columns = append(out.Columns, col.ID)
	}

	encode := func(rows []types.Row) []map[string]any {
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}
		enc := make([]map[string]any, len(rows))
		for i, row := range rows {
			m := make(map[string]any, len(cols))
			for _, col := range cols {
				m[col.ID] = row.Get(col.ID, col.Kind).Any()
			}
			enc[i] = m
		}
		return enc
	}

	if len(r.result.Groups) == 0 {
		out.Rows = encode(r.result.Rows)
		return out
	}

	for _, g := range r.result.Groups {
		gj := groupJSON{
			Values:     map[string]any{},
			Count:      len(g.Entries),
			Aggregates: map[string]any{},
		}
		for i, id := range g.Columns {
			gj.Values[id] = g.Values[i].Any()
		}
		for _, col := range cols {
			if _, ok := g.Value(col.ID); !ok {
				gj.Aggregates[col.ID] = g.Aggregate(col.ID, col.Kind).Any()
			}
		}
		if g.Expanded {
			gj.Rows = encode(g.Entries)
		}
		out.Groups = append(out.Groups, gj)
	}
	return out
}
