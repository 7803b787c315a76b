// Package tui is the interactive grid: a bubbletea model that virtualizes a
// dataset, renders it through the range rules and composes the result onto
// the terminal.
package tui

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/config"
	"github.com/colonyops/vgrid/internal/core/dataset"
	"github.com/colonyops/vgrid/internal/core/geom"
	"github.com/colonyops/vgrid/internal/core/logging"
	"github.com/colonyops/vgrid/internal/core/query"
	"github.com/colonyops/vgrid/internal/core/render"
	"github.com/colonyops/vgrid/internal/core/selection"
	"github.com/colonyops/vgrid/internal/core/types"
	"github.com/colonyops/vgrid/internal/core/viewport"
)

// scrollSettle is how long after the last wheel event the grid counts as
// still scrolling.
const scrollSettle = 150 * time.Millisecond

// Options configure a Model.
type Options struct {
	Dataset *dataset.Dataset
	Preset  config.Preset

	// Now is the clock used for pointer throttling. Defaults to time.Now.
	Now func() time.Time
}

// Model is the grid's bubbletea model.
type Model struct {
	ctx  context.Context
	log  *zerolog.Logger
	cfg  *config.Config
	keys KeyMap
	help help.Model
	now  func() time.Time

	source   string
	rows     []types.Row
	layout   *columns.Layout
	query    query.Query
	pipeline query.Pipeline
	result   *query.Result

	columnAxis *viewport.Manager
	rowAxis    *viewport.Manager
	grid       *viewport.Grid
	sel        *selection.Machine
	caches     *render.Caches[node]
	frame      *frame

	width, height int

	scrolling      bool
	scrollSeq      int
	flushScheduled bool

	status   string
	err      error
	quitting bool
}

type flushMsg struct{}

type scrollSettledMsg struct{ seq int }

// New builds the grid over a dataset.
func New(ctx context.Context, cfg *config.Config, opts Options) (Model, error) {
	ds := opts.Dataset
	if ds == nil {
		return Model{}, fmt.Errorf("tui: no dataset")
	}

	layout, err := columns.NewLayout(ds.Schema, opts.Preset.LayoutOptions(cfg.Layout.CellWidth))
	if err != nil {
		return Model{}, err
	}
	q, err := opts.Preset.Query(ds.Schema)
	if err != nil {
		return Model{}, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:      ctx,
		log:      logging.Component("tui"),
		cfg:      cfg,
		keys:     NewKeyMap(cfg.Keys),
		help:     help.New(),
		now:      now,
		source:   ds.Source,
		rows:     ds.Rows,
		layout:   layout,
		query:    q,
		pipeline: query.Pipeline{Kinds: ds.Schema.Kind},
		caches:   render.NewCaches[node](),
		frame:    &frame{},
	}

	m.columnAxis = viewport.NewManager(layout.Len(), m.columnWidth)
	m.rowAxis = viewport.NewManager(1, m.rowHeight)
	maxScroll := float64(cfg.Layout.MaxScrollSize)
	m.grid = viewport.NewGrid(
		viewport.NewScalingManager(m.columnAxis, maxScroll),
		viewport.NewScalingManager(m.rowAxis, maxScroll),
	)
	m.grid.Overscan = cfg.Layout.Overscan

	m.sel = selection.New(geom.Empty, cfg.Selection.Throttle)
	m.sel.OnFocus = m.scrollTo

	if err := m.rerun(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseClickMsg:
		return m.handleMouseDown(msg.Mouse())
	case tea.MouseMotionMsg:
		return m.handleMouseMove(msg.Mouse())
	case tea.MouseReleaseMsg:
		return m.handleMouseUp()
	case tea.MouseWheelMsg:
		return m.handleWheel(msg.Mouse())
	case flushMsg:
		return m.handleFlush()
	case scrollSettledMsg:
		if msg.seq == m.scrollSeq && m.scrolling {
			m.scrolling = false
			m.caches.Reset()
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.SetWidth(msg.Width)
	m.resize()
	return m, nil
}

// resize fits the grid container between the top of the screen and the
// status and help lines.
func (m *Model) resize() {
	chrome := 1 + lineCount(m.help.View(m.keys))
	m.grid.SetSize(float64(m.width), float64(max(m.height-chrome, 1)))
	m.caches.Reset()
}

// rerun executes the query and rebuilds everything that depends on the row
// set. Group expansion does not survive a rerun.
func (m *Model) rerun() error {
	start := time.Now()
	result, err := m.pipeline.Run(m.rows, m.query)
	if err != nil {
		return err
	}
	m.result = result

	m.log.Debug().Ctx(m.ctx).
		Int("rows_in", len(m.rows)).
		Int("rows_out", len(result.Rows)).
		Int("groups", len(result.Groups)).
		Dur("took", time.Since(start)).
		Msg("pipeline run")

	m.reshapeRows()
	return nil
}

// reshapeRows re-measures the row axis after the display rows changed.
func (m *Model) reshapeRows() {
	m.rowAxis.Configure(m.result.Len()+1, m.rowHeight)
	m.sel.SetBound(m.bound())
	left, top := m.grid.Scroll()
	m.grid.ScrollToPosition(left, top)
	m.caches.Reset()
}

// reshapeColumns re-measures the column axis after the layout changed.
func (m *Model) reshapeColumns() {
	m.columnAxis.Configure(m.layout.Len(), m.columnWidth)
	m.sel.SetBound(m.bound())
	left, top := m.grid.Scroll()
	m.grid.ScrollToPosition(left, top)
	m.caches.Reset()
}

// bound is the selectable range: every column, every display row, never the
// header. Max is exclusive.
func (m Model) bound() geom.BBox {
	return geom.Box(0, 1, m.layout.Len(), m.result.Len()+1)
}

func (m Model) columnWidth(ix int) float64 {
	return float64(m.layout.Width(ix))
}

func (m Model) rowHeight(ix int) float64 {
	if ix == 0 {
		return float64(m.cfg.Layout.HeaderHeight)
	}
	return float64(m.cfg.Layout.CellHeight)
}

// scrollTo brings p into view below the header and right of the pinned
// columns. Focusing a pinned column never scrolls horizontally.
func (m Model) scrollTo(p geom.Point) {
	left, _ := m.grid.Scroll()
	m.grid.ScrollToCell(p, geom.Pt(m.layout.PinCount(), 1))
	if m.layout.IsPinned(p.X) {
		_, top := m.grid.Scroll()
		m.grid.ScrollToPosition(left, top)
	}

	newLeft, newTop := m.grid.Scroll()
	m.log.Debug().Ctx(m.ctx).
		Stringer("cell", p).
		Float64("left", newLeft).
		Float64("top", newTop).
		Msg("scroll to cell")
	m.caches.Reset()
}

// refocus moves focus and pivot to p without a drag.
func (m *Model) refocus(p geom.Point) {
	now := m.now()
	if m.sel.PointerDown(geom.Clamp(p, m.bound()), false) {
		m.sel.PointerUp(now)
		if f, ok := m.sel.Focus(); ok {
			m.scrollTo(f)
		}
	}
}

// renderContext assembles the renderer input for the current scroll state.
func (m Model) renderContext() (*render.Context[node], bool) {
	win, ok := m.grid.Window()
	if !ok {
		return nil, false
	}
	vis, _ := m.grid.Visible()
	return &render.Context[node]{
		Window:                     win,
		Visible:                    vis,
		Columns:                    m.grid.Columns,
		Rows:                       m.grid.Rows,
		HorizontalOffsetAdjustment: m.grid.HorizontalOffsetAdjustment(),
		VerticalOffsetAdjustment:   m.grid.VerticalOffsetAdjustment(),
		HorizontalScale:            m.grid.Columns.DensityScale(),
		VerticalScale:              m.grid.Rows.DensityScale(),
		IsScrolling:                m.scrolling,
		Caches:                     m.caches,
		CellRenderer:               m.cellRenderer(),
	}, true
}
