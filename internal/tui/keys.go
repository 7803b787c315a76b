package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/vgrid/internal/core/config"
	"github.com/colonyops/vgrid/internal/core/selection"
)

// KeyMap holds the grid's key bindings. Arrow navigation is matched by key
// code so modifiers can be read off the event; its bindings exist for help.
type KeyMap struct {
	Navigate key.Binding
	Extend   key.Binding
	Jump     key.Binding

	PageUp      key.Binding
	PageDown    key.Binding
	Pin         key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	Sort        key.Binding
	Group       key.Binding
	ToggleGroup key.Binding
	Duplicate   key.Binding
	Delete      key.Binding
	Widen       key.Binding
	Narrow      key.Binding
	Clear       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// NewKeyMap builds bindings from the configured action → keys table.
func NewKeyMap(keys map[string][]string) KeyMap {
	bind := func(action, desc string) key.Binding {
		ks := keys[action]
		if len(ks) == 0 {
			return key.NewBinding(key.WithDisabled())
		}
		return key.NewBinding(key.WithKeys(ks...), key.WithHelp(strings.Join(ks, "/"), desc))
	}

	jump := "ctrl"
	if selection.PrimaryModifier() == selection.ModSuper {
		jump = "super"
	}

	return KeyMap{
		Navigate: key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↓↑→", "move")),
		Extend:   key.NewBinding(key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"), key.WithHelp("shift+←↓↑→", "extend")),
		Jump:     key.NewBinding(key.WithKeys(jump+"+up", jump+"+down", jump+"+left", jump+"+right"), key.WithHelp(jump+"+←↓↑→", "jump to edge")),

		PageUp:      bind(config.ActionPageUp, "page up"),
		PageDown:    bind(config.ActionPageDown, "page down"),
		Pin:         bind(config.ActionPin, "pin"),
		MoveLeft:    bind(config.ActionMoveLeft, "move column left"),
		MoveRight:   bind(config.ActionMoveRight, "move column right"),
		Sort:        bind(config.ActionSort, "sort"),
		Group:       bind(config.ActionGroup, "group by"),
		ToggleGroup: bind(config.ActionToggleGroup, "expand group"),
		Duplicate:   bind(config.ActionDuplicate, "duplicate column"),
		Delete:      bind(config.ActionDelete, "remove column"),
		Widen:       bind(config.ActionWiden, "widen"),
		Narrow:      bind(config.ActionNarrow, "narrow"),
		Clear:       bind(config.ActionClear, "clear selection"),
		Help:        bind(config.ActionHelp, "help"),
		Quit:        bind(config.ActionQuit, "quit"),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Pin, k.Sort, k.Group, k.ToggleGroup, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Extend, k.Jump, k.PageUp, k.PageDown},
		{k.Pin, k.MoveLeft, k.MoveRight, k.Duplicate, k.Delete},
		{k.Sort, k.Group, k.ToggleGroup, k.Widen, k.Narrow},
		{k.Clear, k.Help, k.Quit},
	}
}

// arrow maps an arrow keypress to a selection key event.
func arrow(msg tea.KeyPressMsg) (selection.KeyEvent, bool) {
	k := msg.Key()

	var ev selection.KeyEvent
	switch k.Code {
	case tea.KeyUp:
		ev.Direction = selection.Up
	case tea.KeyDown:
		ev.Direction = selection.Down
	case tea.KeyLeft:
		ev.Direction = selection.Left
	case tea.KeyRight:
		ev.Direction = selection.Right
	default:
		return ev, false
	}

	ev.Mods = modifiers(k.Mod)
	return ev, true
}

func modifiers(mod tea.KeyMod) selection.Modifiers {
	var m selection.Modifiers
	if mod&tea.ModShift != 0 {
		m |= selection.ModShift
	}
	if mod&tea.ModCtrl != 0 {
		m |= selection.ModCtrl
	}
	if mod&tea.ModAlt != 0 {
		m |= selection.ModAlt
	}
	if mod&tea.ModSuper != 0 {
		m |= selection.ModSuper
	}
	return m
}
