// Package engine is the shared real-time loop behind every game: a clock,
// ordered entity stores, spawn scheduling, player collision tests, score and
// level tracking, and a visual effect queue. Games plug in through Rules.
package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/core"
)

// Kind discriminates the entity variants.
type Kind int

const (
	KindObstacle Kind = iota
	KindItem
	KindProjectile
	KindEnemy
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindItem:
		return "item"
	case KindProjectile:
		return "projectile"
	case KindEnemy:
		return "enemy"
	case KindParticle:
		return "particle"
	}
	return "unknown"
}

// Harm says how a contact with the player is filtered.
type Harm int

const (
	// HarmNone marks beneficial entities. They always register.
	HarmNone Harm = iota
	// HarmDamaging entities are suppressed while the player is invulnerable
	// or shielded.
	HarmDamaging
	// HarmHazard entities (bombs) ignore post-hit invulnerability and are
	// only stopped by an active shield.
	HarmHazard
)

// Entity is one transient object in a store, or the player.
// Pos is the top-left corner in world units.
type Entity struct {
	ID   uint64
	Kind Kind
	Tag  string // what it is: "bird", "star", "bomb", ...

	Pos  mgl64.Vec2
	Vel  mgl64.Vec2
	Size mgl64.Vec2

	Radius    float64 // circle shape; 0 means half the width
	Value     float64 // score payload
	Damage    float64
	HP        int
	SpeedMult float64
	Lane      int
	Harm      Harm
	Color     core.Color

	// Gone marks an entity consumed this frame. The store drops it on the
	// next prune without running the exit callback.
	Gone bool
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.Box{X: e.Pos.X(), Y: e.Pos.Y(), W: e.Size.X(), H: e.Size.Y()}
}

// Center returns the midpoint of the bounding box.
func (e *Entity) Center() mgl64.Vec2 {
	return e.Pos.Add(e.Size.Mul(0.5))
}

// SetCenter moves the entity so its midpoint is c.
func (e *Entity) SetCenter(c mgl64.Vec2) {
	e.Pos = c.Sub(e.Size.Mul(0.5))
}

// R returns the collision radius.
func (e *Entity) R() float64 {
	if e.Radius > 0 {
		return e.Radius
	}
	return e.Size.X() / 2
}
