package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/vgrid/internal/core/config"
	"github.com/colonyops/vgrid/internal/core/dataset"
	"github.com/colonyops/vgrid/internal/core/geom"
	"github.com/colonyops/vgrid/internal/core/query"
	"github.com/colonyops/vgrid/internal/core/types"
	"github.com/colonyops/vgrid/pkg/tuitest"
)

const peopleCSV = `name,city,score
alice,paris,3
bob,berlin,1
carol,paris,2
`

// clock is a manual time source for pointer throttling.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newModel(t *testing.T, ds *dataset.Dataset, preset config.Preset, c *clock) Model {
	t.Helper()

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	opts := Options{Dataset: ds, Preset: preset}
	if c != nil {
		opts.Now = c.now
	}

	m, err := New(context.Background(), cfg, opts)
	require.NoError(t, err)
	return send(t, m, tuitest.WindowSize(80, 24))
}

func people(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(strings.NewReader(peopleCSV), dataset.CSV, nil)
	require.NoError(t, err)
	return ds
}

func wide(rows int) *dataset.Dataset {
	return dataset.Generate(dataset.GenerateOptions{Rows: rows, PerKind: 3, Seed: 7})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func screen(m Model) []string {
	return strings.Split(tuitest.StripANSI(m.render()), "\n")
}

func focus(t *testing.T, m Model) geom.Point {
	t.Helper()
	p, ok := m.sel.Focus()
	require.True(t, ok, "expected a focused cell")
	return p
}

func name(t *testing.T, row types.Row) string {
	t.Helper()
	s, ok := row.Get("name", types.String).Str()
	require.True(t, ok)
	return s
}

func TestModel_RendersHeaderAndRows(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	lines := screen(m)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[0], "city")
	assert.Contains(t, lines[0], "score")
	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[2], "berlin")

	out := strings.Join(lines, "\n")
	assert.Contains(t, out, "3/3 rows")
}

func TestModel_ArrowKeysMoveFocus(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	_, ok := m.sel.Focus()
	assert.False(t, ok)

	m = send(t, m, tuitest.KeyDown())
	assert.Equal(t, geom.Pt(0, 1), focus(t, m), "first arrow focuses the first body cell")

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyRight())
	assert.Equal(t, geom.Pt(1, 2), focus(t, m))

	m = send(t, m, tuitest.KeyUp(), tuitest.KeyUp(), tuitest.KeyUp())
	assert.Equal(t, geom.Pt(1, 1), focus(t, m), "focus never reaches the header")
}

func TestModel_ShiftArrowExtendsSelection(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	m = send(t, m,
		tuitest.KeyDown(),
		tuitest.KeyWithMod(tea.KeyDown, tea.ModShift),
		tuitest.KeyWithMod(tea.KeyRight, tea.ModShift),
	)

	b, ok := m.sel.Selection()
	require.True(t, ok)
	assert.Equal(t, geom.Box(0, 1, 1, 2), b)
	assert.Contains(t, m.focusLabel(), "[2×2]")

	m = send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
	_, ok = m.sel.Focus()
	assert.False(t, ok)
}

func TestModel_ReshapeCollapsesSelection(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	m = send(t, m,
		tuitest.KeyDown(),
		tuitest.KeyWithMod(tea.KeyDown, tea.ModShift),
		tuitest.KeyWithMod(tea.KeyRight, tea.ModShift),
	)
	b, _ := m.sel.Selection()
	require.Equal(t, geom.Box(0, 1, 1, 2), b)

	m = send(t, m, tuitest.KeyPress('s'))

	b, ok := m.sel.Selection()
	require.True(t, ok)
	assert.Equal(t, geom.PointBox(geom.Pt(1, 2)), b, "only the focused cell survives a rerun")
	assert.NotContains(t, m.focusLabel(), "×")
}

func TestModel_PinMovesColumnToFront(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyRight(), tuitest.KeyRight(), tuitest.KeyPress('p'))

	assert.Equal(t, 1, m.layout.PinCount())
	_, col := m.layout.At(0)
	assert.Equal(t, "score", col.ID)
	assert.Equal(t, geom.Pt(0, 1), focus(t, m), "focus follows the pinned column")

	m = send(t, m, tuitest.KeyPress('p'))
	assert.Equal(t, 0, m.layout.PinCount())
}

func TestModel_SortCycles(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyRight(), tuitest.KeyRight(), tuitest.KeyPress('s'))
	require.Len(t, m.result.Rows, 3)
	assert.Equal(t, "bob", name(t, m.result.Rows[0]))
	assert.Contains(t, screen(m)[0], "▲")

	m = send(t, m, tuitest.KeyPress('s'))
	assert.Equal(t, "alice", name(t, m.result.Rows[0]))
	assert.Contains(t, screen(m)[0], "▼")

	m = send(t, m, tuitest.KeyPress('s'))
	assert.Empty(t, m.query.OrderBy)
}

func TestModel_GroupAndExpand(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyRight(), tuitest.KeyPress('g'))
	require.Len(t, m.result.Groups, 2)
	assert.Equal(t, 2, m.result.Len(), "groups start collapsed")
	assert.Equal(t, geom.Pt(1, 1), focus(t, m))

	m = send(t, m, tuitest.KeyEnter())
	assert.Greater(t, m.result.Len(), 2)

	m = send(t, m, tuitest.KeyEnter())
	assert.Equal(t, 2, m.result.Len())

	m = send(t, m, tuitest.KeyPress('g'))
	assert.Empty(t, m.result.Groups)
	assert.Equal(t, 3, m.result.Len())
}

func TestModel_DuplicateAndRemoveColumns(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyPress('d'))
	require.Equal(t, 4, m.layout.Len())
	_, a := m.layout.At(0)
	_, b := m.layout.At(1)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, geom.Pt(1, 1), focus(t, m))

	m = send(t, m, tuitest.KeyPress('x'), tuitest.KeyPress('x'), tuitest.KeyPress('x'))
	assert.Equal(t, 1, m.layout.Len())

	m = send(t, m, tuitest.KeyPress('x'))
	assert.Equal(t, 1, m.layout.Len())
	assert.Equal(t, "cannot remove the last column", m.status)
}

func TestModel_ResizeColumn(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)
	before := m.layout.Width(0)

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyPress('+'))
	assert.Equal(t, before+widthStep, m.layout.Width(0))

	for range 20 {
		m = send(t, m, tuitest.KeyPress('-'))
	}
	assert.Equal(t, minColWidth, m.layout.Width(0))
}

func TestModel_HeaderStaysOnTopAfterPaging(t *testing.T) {
	ds := wide(500)
	m := newModel(t, ds, config.Preset{}, nil)
	_, first := m.layout.At(0)

	m = send(t, m, tuitest.KeyDown())
	for range 5 {
		m = send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyPgDown}))
	}

	_, top := m.grid.Scroll()
	assert.Positive(t, top)
	assert.Greater(t, focus(t, m).Y, 20)
	assert.Contains(t, screen(m)[0], first.Title())
}

func TestModel_PinnedColumnStaysVisible(t *testing.T) {
	m := newModel(t, wide(50), config.Preset{}, nil)
	_, first := m.layout.At(0)

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyPress('p'))
	require.Equal(t, 1, m.layout.PinCount())

	for range 10 {
		m = send(t, m, tuitest.KeyRight())
	}
	left, _ := m.grid.Scroll()
	assert.Positive(t, left)
	assert.Equal(t, 10, focus(t, m).X)

	lines := screen(m)
	assert.True(t, strings.HasPrefix(lines[0], first.Title()), "header line: %q", lines[0])
}

func TestModel_MouseDragSelects(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	m := newModel(t, people(t), config.Preset{}, c)
	w := m.layout.Width(0)

	_ = m.render()
	m = send(t, m, tuitest.MouseClick(w+1, 2, 0))
	assert.Equal(t, geom.Pt(1, 2), focus(t, m))

	c.advance(time.Second)
	m = send(t, m, tuitest.MouseDrag(2*w+1, 3))
	c.advance(time.Second)
	m = send(t, m, tuitest.MouseRelease(2*w+1, 3))

	b, ok := m.sel.Selection()
	require.True(t, ok)
	assert.Equal(t, geom.Box(1, 2, 2, 3), b)
	assert.Equal(t, geom.Pt(1, 2), focus(t, m), "dragging keeps the focus at the origin")
}

func TestModel_ShiftClickExtends(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, &clock{t: time.Unix(0, 0)})
	w := m.layout.Width(0)

	_ = m.render()
	m = send(t, m, tuitest.MouseClick(1, 1, 0), tuitest.MouseRelease(1, 1))
	m = send(t, m, tuitest.MouseClick(2*w+1, 3, tea.ModShift), tuitest.MouseRelease(2*w+1, 3))

	b, ok := m.sel.Selection()
	require.True(t, ok)
	assert.Equal(t, geom.Box(0, 1, 2, 3), b)
}

func TestModel_HeaderClickSorts(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	_ = m.render()
	m = send(t, m, tuitest.MouseClick(1, 0, 0))

	s, ok := m.query.Sorting("name")
	require.True(t, ok)
	assert.Equal(t, 0, s.Priority)
	assert.Equal(t, "alice", name(t, m.result.Rows[0]))
}

func TestModel_WheelScrolls(t *testing.T) {
	m := newModel(t, wide(500), config.Preset{}, nil)

	next, cmd := m.Update(tuitest.MouseWheel(5, 5, tea.MouseWheelDown, 0))
	m = next.(Model)
	require.NotNil(t, cmd)

	_, top := m.grid.Scroll()
	assert.InDelta(t, float64(wheelRows*m.cfg.Layout.CellHeight), top, 0.001)
	assert.True(t, m.scrolling)

	m = send(t, m, scrollSettledMsg{seq: m.scrollSeq - 1})
	assert.True(t, m.scrolling, "stale settle messages are ignored")

	m = send(t, m, scrollSettledMsg{seq: m.scrollSeq})
	assert.False(t, m.scrolling)
}

func TestModel_PresetApplied(t *testing.T) {
	preset := config.Preset{Pins: []string{"city"}}
	preset.OrderBy = []query.SortSpec{{Column: "score", Order: query.Desc}}

	m := newModel(t, people(t), preset, nil)

	_, col := m.layout.At(0)
	assert.Equal(t, "city", col.ID)
	assert.Equal(t, 1, m.layout.PinCount())
	assert.Equal(t, "alice", name(t, m.result.Rows[0]))
	assert.Contains(t, strings.Join(screen(m), "\n"), "sort: score ▼")
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)

	next, cmd := m.Update(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
}

func TestModel_ToggleHelpShrinksGrid(t *testing.T) {
	m := newModel(t, people(t), config.Preset{}, nil)
	before := m.grid.Height

	m = send(t, m, tuitest.KeyPress('?'))
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.grid.Height, before)
}
