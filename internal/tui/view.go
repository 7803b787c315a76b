package tui

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/colonyops/vgrid/internal/core/query"
	"github.com/colonyops/vgrid/internal/core/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// render draws the grid, the status bar and the help line.
func (m Model) render() string {
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	helpView := m.help.View(m.keys)
	gridHeight := max(height-1-lineCount(helpView), 1)

	body := blank(width, gridHeight)
	m.frame.hits = nil
	if ctx, ok := m.renderContext(); ok {
		left, top := m.grid.Scroll()
		c := &compositor{
			width:      width,
			height:     gridHeight,
			scrollLeft: left,
			scrollTop:  top,
		}
		body = c.compose(m.rules().Render(ctx))
		m.frame.hits = c.hits
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar(width), helpView)
}

func (m Model) statusBar(width int) string {
	parts := []string{
		styles.StatusKeyStyle.Render(m.source),
		styles.StatusValueStyle.Render(fmt.Sprintf("%s/%s rows",
			humanize.Comma(int64(len(m.result.Rows))), humanize.Comma(int64(len(m.rows))))),
	}
	if n := len(m.result.Groups); n > 0 {
		parts = append(parts, styles.StatusValueStyle.Render(fmt.Sprintf("%s %s groups", styles.IconGrouped, humanize.Comma(int64(n)))))
	}
	if s := sortSummary(m.query); s != "" {
		parts = append(parts, styles.StatusValueStyle.Render(s))
	}
	if f := m.focusLabel(); f != "" {
		parts = append(parts, styles.StatusKeyStyle.Render(f))
	}

	switch {
	case m.err != nil:
		parts = append(parts, styles.StatusErrorStyle.Render(m.err.Error()))
	case m.status != "":
		parts = append(parts, styles.StatusValueStyle.Render(m.status))
	}

	return styles.StatusBarStyle.Width(width).MaxWidth(width).Render(strings.Join(parts, " "))
}

func sortSummary(q query.Query) string {
	if len(q.OrderBy) == 0 {
		return ""
	}
	keys := make([]string, len(q.OrderBy))
	for i, s := range q.OrderBy {
		icon := styles.IconSortAsc
		if s.Order == query.Desc {
			icon = styles.IconSortDesc
		}
		keys[i] = s.Column + " " + icon
	}
	return "sort: " + strings.Join(keys, ", ")
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
