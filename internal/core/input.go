package core

// Action is a semantic input, decoupled from the physical key that produced it.
// Hosts map keys (or websocket messages) to actions and the session decides
// what each one means for the running game.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionUp               // W, Up arrow (jump, thrust)
	ActionDown             // S, Down arrow (crouch)
	ActionFire             // Space - primary action (attack, shoot, jump)
	ActionSecondary        // X - secondary action (missile, pass)
	ActionConfirm          // Enter
	ActionBack             // Escape, B
	ActionRestart          // R
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionFire:      "Fire",
	ActionSecondary: "Secondary",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Direction is a discrete movement intent.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// Direction returns the movement direction carried by a, if any.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	}
	return DirNone, false
}

// ParseDirection converts a wire name ("left", "right", "up", "down").
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	}
	return DirNone, false
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}
