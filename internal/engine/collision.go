package engine

import "math"

// Collider is a collision shape strategy between the player and an entity.
type Collider interface {
	Overlap(player, e *Entity) bool
}

// ColliderFunc adapts a function to Collider.
type ColliderFunc func(player, e *Entity) bool

// Overlap calls f.
func (f ColliderFunc) Overlap(player, e *Entity) bool { return f(player, e) }

// LaneCollider matches entities in the player's lane: centers closer than
// Threshold on X, and vertical extents overlapping after Margin is taken off
// both boxes.
type LaneCollider struct {
	Threshold float64
	Margin    float64
}

// Overlap implements Collider.
func (c LaneCollider) Overlap(p, e *Entity) bool {
	if math.Abs(e.Center().X()-p.Center().X()) >= c.Threshold {
		return false
	}
	pb, eb := p.Box(), e.Box()
	return eb.Y+c.Margin < pb.Bottom()-c.Margin && eb.Bottom()-c.Margin > pb.Y+c.Margin
}

// BoxCollider is an AABB test after shrinking both boxes by Margin.
type BoxCollider struct {
	Margin float64
}

// Overlap implements Collider.
func (c BoxCollider) Overlap(p, e *Entity) bool {
	return p.Box().Shrink(c.Margin).Intersects(e.Box().Shrink(c.Margin))
}

// ColumnCollider only looks at horizontal distance between centers.
type ColumnCollider struct {
	Threshold float64
}

// Overlap implements Collider.
func (c ColumnCollider) Overlap(p, e *Entity) bool {
	return math.Abs(e.Center().X()-p.Center().X()) < c.Threshold
}

// CircleCollider compares center distance against the summed radii.
type CircleCollider struct{}

// Overlap implements Collider.
func (CircleCollider) Overlap(p, e *Entity) bool {
	return p.Center().Sub(e.Center()).Len() < p.R()+e.R()
}

// Window is a deadline in game milliseconds.
type Window struct {
	until float64
}

// Grant extends the window to at least now+ms.
func (w *Window) Grant(now, ms float64) {
	w.until = max(w.until, now+ms)
}

// Active reports whether now is before the deadline.
func (w *Window) Active(now float64) bool {
	return now < w.until
}

// Remaining returns the milliseconds left at now.
func (w *Window) Remaining(now float64) float64 {
	return max(0, w.until-now)
}

// Clear closes the window.
func (w *Window) Clear() { w.until = 0 }

// Contact is the outcome of resolving one player/entity pair.
type Contact int

const (
	ContactNone Contact = iota
	// ContactHit is a damaging or hazardous hit.
	ContactHit
	// ContactCollect is a beneficial pickup.
	ContactCollect
	// ContactAbsorbed is a hit stopped by the shield.
	ContactAbsorbed
)

// CollisionEngine resolves player contacts with a fixed precedence:
// beneficial entities always register; an active shield absorbs damaging
// entities and hazards; post-hit invulnerability suppresses damaging entities
// but never hazards.
type CollisionEngine struct {
	Shape Collider

	// Invulnerable is the post-hit grace window.
	Invulnerable Window
	// Shield is the power-up window.
	Shield Window

	// SuppressAll makes invulnerability hide beneficial pickups as well.
	SuppressAll bool
}

// Resolve classifies the contact between p and e at game time now.
func (c *CollisionEngine) Resolve(now float64, p, e *Entity) Contact {
	if e.Gone || c.Shape == nil || !c.Shape.Overlap(p, e) {
		return ContactNone
	}

	switch e.Harm {
	case HarmHazard:
		if c.Shield.Active(now) {
			return ContactAbsorbed
		}
		return ContactHit
	case HarmDamaging:
		if c.Shield.Active(now) {
			return ContactAbsorbed
		}
		if c.Invulnerable.Active(now) {
			return ContactNone
		}
		return ContactHit
	default:
		if c.SuppressAll && c.Invulnerable.Active(now) {
			return ContactNone
		}
		return ContactCollect
	}
}

// Test reports whether e hits or is collected by p at now.
func (c *CollisionEngine) Test(now float64, p, e *Entity) bool {
	switch c.Resolve(now, p, e) {
	case ContactHit, ContactCollect:
		return true
	}
	return false
}
