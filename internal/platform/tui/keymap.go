package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boko-runner/internal/core"
)

// GameKeyMap defines the key bindings of the game screen.
type GameKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Home    key.Binding
	Exit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Pause, k.Home}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump},
		{k.Pause, k.Restart, k.Home, k.Exit},
	}
}

// DefaultGameKeyMap returns the default game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space/↑", "jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Home: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "home"),
		),
		Exit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// MapKey translates a key message to a game action for the given phase.
// The same key means different things while running and while paused:
// q pauses nothing, it leaves to the menu.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, paused bool) core.Action {
	switch {
	case key.Matches(msg, km.keys.Exit), key.Matches(msg, km.keys.Home):
		return core.ActionQuit
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart
	}

	if paused {
		if key.Matches(msg, km.keys.Pause) || msg.String() == "enter" {
			return core.ActionResume
		}
		return core.ActionNone
	}

	switch {
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight
	case key.Matches(msg, km.keys.Jump):
		return core.ActionJump
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// releaseTracker synthesizes the key-up a terminal never reports. A held
// direction counts as released once no directional key arrived for
// `after` ticks; key repeat keeps it alive in between.
type releaseTracker struct {
	after int
	idle  int
	held  bool
}

func newReleaseTracker(after int) releaseTracker {
	if after <= 0 {
		after = 1
	}
	return releaseTracker{after: after}
}

// observe inspects the frame about to be stepped and adds ActionRelease
// when the held direction timed out.
func (r *releaseTracker) observe(frame *core.InputFrame) {
	if frame.Direction() != 0 {
		r.held = true
		r.idle = 0
		return
	}
	if !r.held {
		return
	}
	r.idle++
	if r.idle >= r.after {
		frame.Set(core.ActionRelease)
		r.held = false
		r.idle = 0
	}
}

func (r *releaseTracker) reset() {
	r.idle = 0
	r.held = false
}
