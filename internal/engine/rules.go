package engine

import "github.com/vovakirdan/minigames/internal/core"

// Rules is the per-game strategy plugged into a Session.
type Rules interface {
	ID() string
	Title() string

	// Setup builds the player, stores, spawners, tracker and collision
	// shape. An error leaves the session idle.
	Setup(w *World) error

	// Update runs game logic for one frame, before entities move.
	Update(w *World, dt float64)

	// Hit handles one player contact. Set e.Gone to consume the entity.
	Hit(w *World, e *Entity, c Contact)
}

// The interfaces below are optional hooks a Rules value may implement.

// DirectionalInput receives accepted direction inputs.
type DirectionalInput interface {
	Directional(w *World, d core.Direction)
}

// ActionInput receives the primary action (jump, fire, attack).
type ActionInput interface {
	Action(w *World)
}

// SecondaryInput receives the secondary action (missile, pass).
type SecondaryInput interface {
	Secondary(w *World)
}

// PositionalInput receives pointer positions in world units.
type PositionalInput interface {
	Positional(w *World, x, y float64)
}

// TextInput receives typed answers.
type TextInput interface {
	Text(w *World, s string)
}

// Debounced sets the minimum spacing in ms between accepted left/right
// inputs.
type Debounced interface {
	DebounceMs() float64
}

// Exiter is told about entities pruned out of bounds.
type Exiter interface {
	Exited(w *World, e *Entity)
}

// Resolver handles entity-versus-entity contacts after movement, such as
// projectiles against enemies.
type Resolver interface {
	Resolve(w *World)
}

// LevelUpper reacts to a new peak level. It is called once for every level
// gained, in order, even when one frame crosses several thresholds.
type LevelUpper interface {
	LevelUp(w *World, level int)
}

// Mortal games play a death animation of DeathMs before ending.
type Mortal interface {
	DeathMs() float64
}

// StatusReporter adds game-specific HUD lines to snapshots.
type StatusReporter interface {
	Status(w *World) []string
}

// Timed games run against the clock unless the host asks otherwise.
type Timed interface {
	DefaultTimeLimit() int
}

// DefaultOptions returns the start options a game asks for when the host
// sets no time limit.
func DefaultOptions(r Rules) Options {
	if t, ok := r.(Timed); ok {
		return Options{TimeLimit: t.DefaultTimeLimit()}
	}
	return Options{}
}
