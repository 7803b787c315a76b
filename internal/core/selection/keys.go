package selection

import (
	"runtime"
	"time"

	"github.com/colonyops/vgrid/internal/core/geom"
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether all of mods are held.
func (m Modifiers) Has(mods Modifiers) bool {
	return m&mods == mods
}

// Direction is an arrow key.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// KeyEvent is an arrow keypress with the modifiers held at the time.
type KeyEvent struct {
	Direction Direction
	Mods      Modifiers
}

var goos = runtime.GOOS

// PrimaryModifier is the host's jump modifier: command on macOS and control
// everywhere else.
func PrimaryModifier() Modifiers {
	if goos == "darwin" {
		return ModSuper
	}
	return ModCtrl
}

// Key applies an arrow keypress. The primary modifier jumps to the edge of
// the bound and shift extends the selection.
func (m *Machine) Key(ev KeyEvent) bool {
	step := 1
	if ev.Mods.Has(PrimaryModifier()) {
		step = geom.PosInf
	}

	var d geom.Point
	switch ev.Direction {
	case Up:
		d.Y = -step
	case Down:
		d.Y = step
	case Left:
		d.X = -step
	case Right:
		d.X = step
	default:
		return false
	}
	return m.MoveBy(d, ev.Mods.Has(ModShift))
}

// CellEvents are the pointer handlers bound to one cell.
type CellEvents struct {
	Down  func(extend bool) bool
	Enter func(now time.Time) bool
	Up    func(now time.Time) bool
}

// CellEvents returns the pointer handlers for c.
func (m *Machine) CellEvents(c geom.Point) CellEvents {
	return CellEvents{
		Down:  func(extend bool) bool { return m.PointerDown(c, extend) },
		Enter: func(now time.Time) bool { return m.PointerMove(c, now) },
		Up:    m.PointerUp,
	}
}
