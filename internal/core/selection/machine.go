// Package selection implements rectangular cell selection driven by pointer
// drags and keyboard navigation.
package selection

import (
	"time"

	"github.com/colonyops/vgrid/internal/core/geom"
)

// DefaultThrottle is the pointer-move coalescing window.
const DefaultThrottle = 30 * time.Millisecond

// State is the machine's mode.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Machine tracks focus, pivot and drag state. It is not safe for concurrent
// use; all events arrive on the UI goroutine.
type Machine struct {
	bound    geom.BBox
	focus    geom.Point
	pivot    geom.Point
	hasFocus bool
	state    State

	throttle time.Duration
	lastMove time.Time
	pending  *geom.Point

	// OnFocus is called with the new focus whenever focus changes while not
	// dragging. The viewport uses it to scroll the focused cell into view.
	OnFocus func(geom.Point)
}

// New creates an idle machine over bound. A non-positive throttle disables
// pointer-move coalescing.
func New(bound geom.BBox, throttle time.Duration) *Machine {
	return &Machine{bound: bound, throttle: throttle}
}

// Bound returns the selectable range. Min is inclusive, Max exclusive.
func (m *Machine) Bound() geom.BBox {
	return m.bound
}

// State returns the current mode.
func (m *Machine) State() State {
	return m.state
}

// Focus returns the active corner.
func (m *Machine) Focus() (geom.Point, bool) {
	return m.focus, m.hasFocus
}

// Pivot returns the anchor corner.
func (m *Machine) Pivot() (geom.Point, bool) {
	return m.pivot, m.hasFocus
}

// Selection returns the normalized selected rectangle.
func (m *Machine) Selection() (geom.BBox, bool) {
	if !m.hasFocus {
		return geom.Empty, false
	}
	return geom.Span(m.focus, m.pivot), true
}

// IsSelected reports whether c lies inside the selection.
func (m *Machine) IsSelected(c geom.Point) bool {
	sel, ok := m.Selection()
	return ok && sel.ContainsPoint(c)
}

// IsFocused reports whether c is the focus.
func (m *Machine) IsFocused(c geom.Point) bool {
	return m.hasFocus && m.focus == c
}

// SetBound replaces the selectable range. Any change resets the machine to
// an idle state without focus.
func (m *Machine) SetBound(b geom.BBox) {
	if b == m.bound {
		return
	}
	m.bound = b
	m.Clear()
}

// Clear drops focus, pivot and any drag in progress.
func (m *Machine) Clear() {
	m.hasFocus = false
	m.focus, m.pivot = geom.Point{}, geom.Point{}
	m.state = Idle
	m.pending = nil
}

// PointerDown starts a drag at c. With extend set and an existing focus,
// focus is kept and only the pivot moves.
func (m *Machine) PointerDown(c geom.Point, extend bool) bool {
	if !m.inBound(c) {
		return false
	}
	if !extend || !m.hasFocus {
		m.focus = c
		m.hasFocus = true
	}
	m.pivot = c
	m.state = Dragging
	m.pending = nil
	return true
}

// PointerMove moves the pivot to c while dragging. Moves arriving within the
// throttle window of the last applied move are held; only the latest held
// move survives and is applied by Flush or PointerUp. Reports whether the
// selection changed.
func (m *Machine) PointerMove(c geom.Point, now time.Time) bool {
	if m.state != Dragging || !m.inBound(c) {
		return false
	}
	if m.throttle > 0 && !m.lastMove.IsZero() && now.Sub(m.lastMove) < m.throttle {
		m.pending = &c
		return false
	}
	m.pending = nil
	m.lastMove = now
	return m.setPivot(c)
}

// Pending reports whether a throttled move is waiting to be applied.
func (m *Machine) Pending() bool {
	return m.pending != nil
}

// Throttle returns the pointer-move coalescing window.
func (m *Machine) Throttle() time.Duration {
	return m.throttle
}

// Flush applies the held move once the throttle window has elapsed.
func (m *Machine) Flush(now time.Time) bool {
	if m.pending == nil || m.state != Dragging {
		return false
	}
	if now.Sub(m.lastMove) < m.throttle {
		return false
	}
	c := *m.pending
	m.pending = nil
	m.lastMove = now
	return m.setPivot(c)
}

// PointerUp ends the drag, applying any held move first.
func (m *Machine) PointerUp(now time.Time) bool {
	if m.state != Dragging {
		return false
	}
	changed := false
	if m.pending != nil {
		changed = m.setPivot(*m.pending)
		m.pending = nil
	}
	m.lastMove = now
	m.state = Idle
	return changed
}

// MoveBy translates the focus by delta, clamped into the bound. With extend
// set the pivot stays put; otherwise the selection collapses onto the new
// focus. Does nothing without a focus.
func (m *Machine) MoveBy(delta geom.Point, extend bool) bool {
	if !m.hasFocus {
		return false
	}
	next := geom.Clamp(m.focus.Add(delta), m.bound)
	prevFocus, prevPivot := m.focus, m.pivot
	m.focus = next
	if !extend {
		m.pivot = next
	}
	if m.focus != prevFocus {
		m.notify()
	}
	return m.focus != prevFocus || m.pivot != prevPivot
}

func (m *Machine) setPivot(c geom.Point) bool {
	if c == m.pivot {
		return false
	}
	m.pivot = c
	return true
}

func (m *Machine) notify() {
	if m.state != Dragging && m.OnFocus != nil {
		m.OnFocus(m.focus)
	}
}

func (m *Machine) inBound(c geom.Point) bool {
	return within(c.X, m.bound.Min.X, m.bound.Max.X) && within(c.Y, m.bound.Min.Y, m.bound.Max.Y)
}

func within(v, lo, hi int) bool {
	return v >= lo && (hi == geom.PosInf || v < hi)
}
