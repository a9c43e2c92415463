package defense

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
)

// aiTurret aims at the nearest enemy and fires on its own cadence.
type aiTurret struct {
	body     *engine.Entity
	angle    float64
	lastFire float64
	interval float64
}

// addTurret stacks turrets along the base line, spreading them further
// apart the more levels have passed.
func (g *Game) addTurret(w *engine.World, level int) {
	spacing := 320 / float64(max(1, level-1))
	y := 40 + math.Mod(float64(len(g.ai))*spacing, 320)

	body := &engine.Entity{
		Kind:  engine.KindParticle,
		Tag:   "ai-turret",
		Size:  mgl64.Vec2{g.cfg.Turret.W * 0.75, g.cfg.Turret.H * 0.75},
		Color: core.ColorBlue,
	}
	body.SetCenter(mgl64.Vec2{g.cfg.Turret.X, y})
	g.turrets.Add(body)

	g.ai = append(g.ai, &aiTurret{
		body:     body,
		lastFire: w.Now(),
		interval: max(g.cfg.AIStepMs, g.cfg.AIBaseMs-float64(level)*g.cfg.AIStepMs),
	})
}

func (t *aiTurret) update(g *Game, w *engine.World) {
	at := t.body.Center()
	var target *engine.Entity
	best := math.Inf(1)
	g.enemies.Each(func(e *engine.Entity) {
		if d := e.Center().Sub(at).Len(); d < best {
			best, target = d, e
		}
	})
	if target == nil {
		return
	}
	d := target.Center().Sub(at)
	t.angle = math.Atan2(d.Y(), d.X())
	if w.Now()-t.lastFire > t.interval {
		g.fire(w, at, t.angle, false).Color = core.ColorCyan
		t.lastFire = w.Now()
	}
}
