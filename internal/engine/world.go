package engine

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/core"
)

// Default playfield size in world units.
const (
	DefaultWidth  = 400
	DefaultHeight = 400
)

// World is the mutable state of one session, handed to Rules every frame.
// Only the session's frame goroutine touches it.
type World struct {
	Width, Height float64

	Player    *Entity
	Collision *CollisionEngine
	Score     *Tracker
	Effects   *EffectQueue
	Notify    Notifier
	Rand      *rand.Rand
	Log       *log.Logger

	fx     *rand.Rand
	stores []*Store
	spawns []*spawnRule

	now   float64
	dt    float64
	frame uint64

	died  bool
	ended bool
}

func newWorld(w, h float64, seed int64, n Notifier, logger *log.Logger) *World {
	return &World{
		Width:     w,
		Height:    h,
		Collision: &CollisionEngine{},
		Score:     NewTracker(0, nil),
		Effects:   &EffectQueue{},
		Notify:    n,
		Rand:      rand.New(rand.NewSource(seed)),
		Log:       logger,
		fx:        rand.New(rand.NewSource(seed ^ 0x5eed)),
	}
}

// NewStore registers a store. Stores are advanced, collided, pruned and
// drawn in registration order. collides selects player collision tests.
func (w *World) NewStore(name string, mode StepMode, collides bool) *Store {
	s := NewStore(name, mode)
	s.collides = collides
	s.exit = OutOfBounds(w.Width, w.Height, DefaultPruneMargin)
	w.stores = append(w.stores, s)
	return s
}

// Stores returns the registered stores in order.
func (w *World) Stores() []*Store { return w.stores }

// Store returns the store named name, or nil.
func (w *World) Store(name string) *Store {
	for _, s := range w.stores {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Spawn registers a spawner that adds build's entity to store whenever more
// than interval() milliseconds have passed since its last firing.
func (w *World) Spawn(store *Store, interval func() float64, build func(*World) *Entity) *Spawner {
	r := &spawnRule{store: store, interval: interval, build: build}
	r.spawner.Reset(w.now)
	w.spawns = append(w.spawns, r)
	return &r.spawner
}

// Now returns game time in milliseconds since start, pauses excluded.
func (w *World) Now() float64 { return w.now }

// Dt returns the current frame's delta in seconds.
func (w *World) Dt() float64 { return w.dt }

// Frame returns the frame counter.
func (w *World) Frame() uint64 { return w.frame }

// Award changes the score by delta and floats a label at (x, y).
func (w *World) Award(delta, x, y float64) {
	w.Score.ApplyDelta(delta)
	switch {
	case delta >= 1:
		w.Effects.FloatText(x, y, fmt.Sprintf("+%d", int(delta)), core.ColorBrightYellow)
	case delta <= -1:
		w.Effects.FloatText(x, y, fmt.Sprintf("%d", int(delta)), core.ColorBrightRed)
	}
}

// Penalize is the standard damaging hit: lose amount, become invulnerable
// for graceMs, explode at the player.
func (w *World) Penalize(amount, graceMs float64) {
	c := mgl64.Vec2{w.Width / 2, w.Height / 2}
	if w.Player != nil {
		c = w.Player.Center()
	}
	w.Award(-amount, c.X(), c.Y())
	if graceMs > 0 {
		w.Collision.Invulnerable.Grant(w.now, graceMs)
	}
	w.Effects.Explosion(c.X(), c.Y(), 20)
	w.Burst(c.X(), c.Y(), 8, 30, core.ColorOrange)
	w.Notify.Notify(CueExplosion)
}

// Burst scatters n particles from (x, y). Particles draw from their own
// RNG so visuals never shift gameplay randomness.
func (w *World) Burst(x, y float64, n, life int, c core.Color) {
	w.Effects.Burst(w.fx, x, y, n, life, c)
}

// Die requests the fatal transition. Games with a death animation go to
// Dying, the rest end at once.
func (w *World) Die() { w.died = true }

// End requests a normal finish.
func (w *World) End() { w.ended = true }

// ClampPlayer keeps the player inside the field.
func (w *World) ClampPlayer() {
	if w.Player == nil {
		return
	}
	p := w.Player
	p.Pos = mgl64.Vec2{
		core.Clamp(p.Pos.X(), 0, max(0, w.Width-p.Size.X())),
		core.Clamp(p.Pos.Y(), 0, max(0, w.Height-p.Size.Y())),
	}
}
