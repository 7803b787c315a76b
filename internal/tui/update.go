package tui

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/vgrid/internal/core/geom"
	"github.com/colonyops/vgrid/internal/core/query"
	"github.com/colonyops/vgrid/internal/core/selection"
)

const (
	wheelRows   = 3
	minColWidth = 3
	widthStep   = 2
)

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.status, m.err = "", nil

	if ev, ok := arrow(msg); ok {
		if m.ensureFocus() {
			return m, nil
		}
		if m.sel.Key(ev) {
			m.caches.Reset()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Clear):
		m.sel.Clear()
		m.caches.Reset()
	case key.Matches(msg, m.keys.PageUp):
		m.page(-1, msg.Key().Mod&tea.ModShift != 0)
	case key.Matches(msg, m.keys.PageDown):
		m.page(1, msg.Key().Mod&tea.ModShift != 0)
	case key.Matches(msg, m.keys.Pin):
		m.withFocus(m.togglePin)
	case key.Matches(msg, m.keys.MoveLeft):
		m.withFocus(func(p geom.Point) { m.moveColumn(p, -1) })
	case key.Matches(msg, m.keys.MoveRight):
		m.withFocus(func(p geom.Point) { m.moveColumn(p, 1) })
	case key.Matches(msg, m.keys.Sort):
		m.withFocus(m.cycleSort)
	case key.Matches(msg, m.keys.Group):
		m.withFocus(m.toggleGrouping)
	case key.Matches(msg, m.keys.ToggleGroup):
		m.withFocus(m.toggleGroup)
	case key.Matches(msg, m.keys.Duplicate):
		m.withFocus(m.duplicateColumn)
	case key.Matches(msg, m.keys.Delete):
		m.withFocus(m.removeColumn)
	case key.Matches(msg, m.keys.Widen):
		m.withFocus(func(p geom.Point) { m.resizeColumn(p.X, widthStep) })
	case key.Matches(msg, m.keys.Narrow):
		m.withFocus(func(p geom.Point) { m.resizeColumn(p.X, -widthStep) })
	}
	return m, nil
}

// ensureFocus focuses the first body cell when nothing is focused yet, so
// arrow keys have somewhere to start. Reports whether it moved focus.
func (m *Model) ensureFocus() bool {
	if _, ok := m.sel.Focus(); ok {
		return false
	}
	b := m.bound()
	if geom.IsEmpty(b) || b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y {
		return false
	}
	m.refocus(b.Min)
	m.caches.Reset()
	return true
}

func (m *Model) withFocus(fn func(geom.Point)) {
	p, ok := m.sel.Focus()
	if !ok {
		m.status = "no cell focused"
		return
	}
	fn(p)
	m.caches.Reset()
}

func (m *Model) page(dir int, extend bool) {
	vis, ok := m.grid.Visible()
	if !ok {
		return
	}
	rows := max(vis.RowStop-vis.RowStart, 1)
	if _, focused := m.sel.Focus(); !focused {
		m.grid.ScrollBy(0, float64(dir*rows*m.cfg.Layout.CellHeight))
		m.caches.Reset()
		return
	}
	m.sel.MoveBy(geom.Pt(0, dir*rows), extend)
	m.caches.Reset()
}

func (m *Model) togglePin(p geom.Point) {
	d, _ := m.layout.At(p.X)
	m.layout.TogglePin(p.X)
	m.reshapeColumns()

	ix, _ := m.layout.Order().Index(d.Key)
	m.log.Debug().Ctx(m.ctx).
		Str("column", d.ID).
		Bool("pinned", m.layout.IsPinned(ix)).
		Int("pin_count", m.layout.PinCount()).
		Msg("pin changed")
	m.refocus(geom.Pt(ix, p.Y))
}

func (m *Model) moveColumn(p geom.Point, delta int) {
	target := p.X + delta
	if target < 0 || target >= m.layout.Len() {
		return
	}
	m.layout.MoveTo(target, p.X)
	m.reshapeColumns()
	m.refocus(geom.Pt(target, p.Y))
}

func (m *Model) duplicateColumn(p geom.Point) {
	m.layout.Duplicate(p.X)
	m.reshapeColumns()
	m.refocus(geom.Pt(p.X+1, p.Y))
}

func (m *Model) removeColumn(p geom.Point) {
	if m.layout.Len() <= 1 {
		m.status = "cannot remove the last column"
		return
	}
	m.layout.Remove(p.X)
	m.reshapeColumns()
	m.refocus(geom.Pt(min(p.X, m.layout.Len()-1), p.Y))
}

func (m *Model) resizeColumn(ix, delta int) {
	m.layout.SetWidth(ix, max(m.layout.Width(ix)+delta, minColWidth))
	m.columnAxis.Invalidate(ix)
	left, top := m.grid.Scroll()
	m.grid.ScrollToPosition(left, top)
	m.caches.Reset()
}

func (m *Model) cycleSort(p geom.Point) {
	_, col := m.layout.At(p.X)
	m.applyQuery(m.query.CycleSort(col.ID), p)
}

func (m *Model) toggleGrouping(p geom.Point) {
	_, col := m.layout.At(p.X)
	m.applyQuery(m.query.WithGrouped(col.ID, !m.query.IsGrouped(col.ID)), geom.Pt(p.X, 1))
}

func (m *Model) applyQuery(q query.Query, focus geom.Point) {
	prev := m.query
	m.query = q
	if err := m.rerun(); err != nil {
		m.query = prev
		m.err = err
		return
	}
	m.refocus(focus)
}

// toggleGroup expands or collapses the group whose header is focused.
func (m *Model) toggleGroup(p geom.Point) {
	display := m.result.Display()
	ix := p.Y - 1
	if ix < 0 || ix >= len(display) {
		return
	}
	g, ok := display[ix].Group()
	if !ok {
		m.status = "not a group header"
		return
	}
	m.result.Toggle(g.Key)
	m.reshapeRows()
	m.refocus(p)
}

func (m Model) handleMouseDown(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	p, ok := m.frame.at(mouse.X, mouse.Y)
	if !ok {
		return m, nil
	}
	if p.Y == 0 {
		if p.X < m.layout.Len() {
			m.cycleSortColumn(p.X)
		}
		return m, nil
	}

	if m.sel.CellEvents(p).Down(mouse.Mod&tea.ModShift != 0) {
		m.caches.Reset()
	}
	return m, nil
}

func (m *Model) cycleSortColumn(x int) {
	focus, ok := m.sel.Focus()
	if !ok {
		focus = geom.Pt(x, 1)
	}
	_, col := m.layout.At(x)
	m.applyQuery(m.query.CycleSort(col.ID), focus)
	m.caches.Reset()
}

func (m Model) handleMouseMove(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if m.sel.State() != selection.Dragging {
		return m, nil
	}
	p, ok := m.frame.at(mouse.X, mouse.Y)
	if !ok {
		return m, nil
	}
	if m.sel.CellEvents(p).Enter(m.now()) {
		m.caches.Reset()
	}
	return m, m.scheduleFlush()
}

func (m Model) handleMouseUp() (tea.Model, tea.Cmd) {
	if m.sel.PointerUp(m.now()) {
		m.caches.Reset()
	}
	return m, nil
}

// scheduleFlush arranges for a held pointer move to be applied once the
// throttle window closes.
func (m *Model) scheduleFlush() tea.Cmd {
	if !m.sel.Pending() || m.flushScheduled {
		return nil
	}
	m.flushScheduled = true
	return tea.Tick(m.sel.Throttle(), func(time.Time) tea.Msg {
		return flushMsg{}
	})
}

func (m Model) handleFlush() (tea.Model, tea.Cmd) {
	m.flushScheduled = false
	if m.sel.Flush(m.now()) {
		m.caches.Reset()
	}
	return m, m.scheduleFlush()
}

func (m Model) handleWheel(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	dx, dy := 0.0, 0.0
	step := float64(wheelRows * m.cfg.Layout.CellHeight)
	switch mouse.Button {
	case tea.MouseWheelUp:
		dy = -step
	case tea.MouseWheelDown:
		dy = step
	case tea.MouseWheelLeft:
		dx = -float64(m.cfg.Layout.CellWidth)
	case tea.MouseWheelRight:
		dx = float64(m.cfg.Layout.CellWidth)
	default:
		return m, nil
	}
	if mouse.Mod&tea.ModShift != 0 {
		dx, dy = dy, dx
	}

	m.grid.ScrollBy(dx, dy)
	m.scrolling = true
	m.scrollSeq++
	m.caches.Reset()

	seq := m.scrollSeq
	return m, tea.Tick(scrollSettle, func(time.Time) tea.Msg {
		return scrollSettledMsg{seq: seq}
	})
}

func (m Model) focusLabel() string {
	f, ok := m.sel.Focus()
	if !ok {
		return ""
	}
	_, col := m.layout.At(f.X)
	label := fmt.Sprintf("%s R%d", col.Title(), f.Y)
	if b, ok := m.sel.Selection(); ok && (b.Columns() > 1 || b.Rows() > 1) {
		label += fmt.Sprintf(" [%d×%d]", b.Columns(), b.Rows())
	}
	return label
}
