package tui

import (
	"fmt"
	"strconv"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/geom"
	"github.com/colonyops/vgrid/internal/core/query"
	"github.com/colonyops/vgrid/internal/core/render"
	"github.com/colonyops/vgrid/internal/core/styles"
	"github.com/colonyops/vgrid/internal/core/types"
)

// rules is the range rule list for one repaint. Earlier rules claim their
// cells first: the corner, then the header row, then the pinned columns,
// then everything else.
func (m Model) rules() render.Rules[node] {
	pinned := m.layout.PinnedRange()
	return render.Rules[node]{
		render.Rule(geom.Compose(pinned, geom.Row(0)), render.Sticky(render.StickyOptions{Key: "corner", Top: true, Left: true}, wrapOverlay)),
		render.Rule(geom.Row(0), render.Sticky(render.StickyOptions{Key: "header", Top: true}, wrapOverlay)),
		render.Rule(pinned, render.Sticky(render.StickyOptions{Key: "pinned", Left: true}, wrapOverlay)),
		render.Rule(geom.Identity, render.Passthrough[node]),
	}
}

// cellRenderer dispatches header and body cells.
func (m Model) cellRenderer() render.CellRenderer[node] {
	return render.CellRules(
		render.Cell(geom.Row(0), m.headerCell),
		render.Cell(geom.Identity, m.bodyCell),
	)
}

func (m Model) headerCell(p render.CellProps) (node, bool) {
	if p.Point.X >= m.layout.Len() {
		return node{}, false
	}
	_, col := m.layout.At(p.Point.X)

	title := col.Title()
	style := styles.HeaderStyle
	if s, ok := m.query.Sorting(col.ID); ok {
		style = styles.HeaderSortedStyle
		marker := styles.IconSortAsc
		if s.Order == query.Desc {
			marker = styles.IconSortDesc
		}
		if len(m.query.OrderBy) > 1 {
			marker += strconv.Itoa(s.Priority + 1)
		}
		title += " " + marker
	}
	if m.query.IsGrouped(col.ID) {
		title += " " + styles.IconGrouped
	}
	if m.layout.IsPinned(p.Point.X) {
		style = style.Background(styles.ColorSurface)
	}
	if f, ok := m.sel.Focus(); ok && f.X == p.Point.X {
		style = style.Underline(true)
	}

	return m.block(p, style.Render(fit(title, int(p.Style.Width), lipgloss.Left))), true
}

func (m Model) bodyCell(p render.CellProps) (node, bool) {
	display := m.result.Display()
	ix := p.Point.Y - 1
	if ix < 0 || ix >= len(display) || p.Point.X >= m.layout.Len() {
		return node{}, false
	}
	_, col := m.layout.At(p.Point.X)
	w := int(p.Style.Width)

	var (
		text  string
		style lipgloss.Style
		align = alignFor(col.Kind)
	)

	if g, ok := display[ix].Group(); ok {
		text, style = m.groupCell(p, g, col)
		if p.Point.X == 0 {
			align = lipgloss.Left
		}
	} else {
		row, _ := display[ix].Row()
		v := row.Get(col.ID, col.Kind)
		text = types.Format(v, col.Format)
		style = styles.CellStyle
		if v.IsNull() {
			style = styles.NullCellStyle
		}
	}

	switch {
	case m.sel.IsFocused(p.Point):
		style = styles.FocusedCellStyle
	case m.sel.IsSelected(p.Point):
		style = style.Background(styles.ColorSelection)
	case m.layout.IsPinned(p.Point.X):
		style = style.Background(styles.ColorSurface)
	case ix%2 == 1 && !display[ix].IsHeader():
		style = style.Background(styles.ColorStripe)
	}

	return m.block(p, style.Render(fit(text, w, align))), true
}

// groupCell renders a group header: the group's own values in grouping
// columns and the aggregate elsewhere. Aggregates are skipped while
// scrolling.
func (m Model) groupCell(p render.CellProps, g *query.Group, col columns.Column) (string, lipgloss.Style) {
	var text string
	switch v, ok := g.Value(col.ID); {
	case ok:
		text = types.Format(v, col.Format)
	case p.IsScrolling:
		text = styles.IconEllipsis
	default:
		text = types.Format(g.Aggregate(col.ID, col.Kind), col.Format)
	}

	if p.Point.X == 0 {
		icon := styles.IconCollapsed
		if g.Expanded {
			icon = styles.IconExpanded
		}
		text = fmt.Sprintf("%s %s (%d)", icon, text, len(g.Entries))
	}

	return text, styles.GroupHeaderStyle.Foreground(styles.ColorForString(g.Key))
}

// block pads a rendered line to the cell's height.
func (m Model) block(p render.CellProps, line string) node {
	h := max(int(p.Style.Height), 1)
	lines := make([]string, h)
	lines[0] = line
	for i := 1; i < h; i++ {
		lines[i] = strings.Repeat(" ", int(p.Style.Width))
	}
	return node{point: p.Point, style: p.Style, content: strings.Join(lines, "\n")}
}

// fit truncates s to width-1 cells and pads it to width, leaving a one cell
// gutter on the right.
func fit(s string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	inner := width - 1
	s = ansi.Truncate(s, inner, styles.IconEllipsis)
	gap := strings.Repeat(" ", max(inner-ansi.StringWidth(s), 0))
	if align == lipgloss.Right {
		return gap + s + " "
	}
	return s + gap + " "
}

func alignFor(k types.Kind) lipgloss.Position {
	switch k {
	case types.Number, types.Percent:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}
