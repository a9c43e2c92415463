package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ":
		return core.ActionFire, false
	case "x":
		return core.ActionSecondary, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapAnswerKey handles keys while a game takes typed answers. Digits and
// a leading minus edit the buffer, backspace deletes, and enter submits.
// handled is false for keys that should fall through to MapKey.
func (km *KeyMapper) MapAnswerKey(msg tea.KeyMsg, buf string) (next string, submit, handled bool) {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(buf) > 0 {
			buf = buf[:len(buf)-1]
		}
		return buf, false, true
	case tea.KeyEnter:
		return "", buf != "", true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return buf, false, false
		}
		r := msg.Runes[0]
		switch {
		case r >= '0' && r <= '9':
			if len(buf) < 8 {
				buf += string(r)
			}
			return buf, false, true
		case r == '-' && buf == "":
			return "-", false, true
		}
	}
	return buf, false, false
}

// Dispatch forwards a gameplay action to the session. Actions that are
// not gameplay (quit, back, restart) are left to the caller and reported
// as unhandled.
func Dispatch(s *engine.Session, a core.Action) bool {
	if d, ok := a.Direction(); ok {
		s.OnDirectional(d)
		return true
	}
	switch a {
	case core.ActionFire:
		s.OnAction()
	case core.ActionSecondary:
		s.OnSecondary()
	case core.ActionPause:
		s.TogglePause()
	default:
		return false
	}
	return true
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
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
