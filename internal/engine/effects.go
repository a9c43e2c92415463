package engine

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/core"
)

// Effect is a short-lived visual: a particle, an explosion or floating text.
// It moves by Vel once per frame.
type Effect struct {
	Pos     mgl64.Vec2
	Vel     mgl64.Vec2
	Life    int
	MaxLife int
	Glyph   rune
	Text    string
	Color   core.Color
}

// EffectQueue holds effects. Nothing in gameplay reads it.
type EffectQueue struct {
	items []Effect
}

// Push adds an effect. Effects with no life are dropped.
func (q *EffectQueue) Push(e Effect) {
	if e.Life <= 0 {
		return
	}
	if e.MaxLife == 0 {
		e.MaxLife = e.Life
	}
	q.items = append(q.items, e)
}

// Advance moves every effect, takes one frame of life and removes the
// expired ones.
func (q *EffectQueue) Advance() {
	kept := q.items[:0]
	for _, e := range q.items {
		e.Pos = e.Pos.Add(e.Vel)
		e.Life--
		if e.Life > 0 {
			kept = append(kept, e)
		}
	}
	q.items = kept
}

// Len returns the number of live effects.
func (q *EffectQueue) Len() int { return len(q.items) }

// Clear drops every effect.
func (q *EffectQueue) Clear() { q.items = q.items[:0] }

// Snapshot copies the live effects.
func (q *EffectQueue) Snapshot() []Effect {
	out := make([]Effect, len(q.items))
	copy(out, q.items)
	return out
}

// Burst pushes n particles scattering from (x, y).
func (q *EffectQueue) Burst(rng *rand.Rand, x, y float64, n, life int, color core.Color) {
	for i := 0; i < n; i++ {
		q.Push(Effect{
			Pos:   mgl64.Vec2{x, y},
			Vel:   mgl64.Vec2{(rng.Float64() - 0.5) * 4, (rng.Float64() - 0.5) * 4},
			Life:  life,
			Glyph: '·',
			Color: color,
		})
	}
}

// FloatText pushes a label drifting up from (x, y).
func (q *EffectQueue) FloatText(x, y float64, text string, color core.Color) {
	q.Push(Effect{
		Pos:   mgl64.Vec2{x, y},
		Vel:   mgl64.Vec2{0, -2},
		Life:  40,
		Text:  text,
		Color: color,
	})
}

// Explosion pushes a stationary blast marker.
func (q *EffectQueue) Explosion(x, y float64, life int) {
	q.Push(Effect{
		Pos:   mgl64.Vec2{x, y},
		Life:  life,
		Glyph: '✸',
		Color: core.ColorOrange,
	})
}
