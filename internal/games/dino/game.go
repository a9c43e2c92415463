// Package dino implements a Chrome Dino-style endless runner game.
// The player jumps over pipes and ducks under bullets while the world
// speeds up. One hit ends the run.
package dino

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/games/kit"
	"github.com/vovakirdan/minigames/internal/registry"
)

// ID is the registry id.
const ID = "dino"

// Terminals never report key release, so a crouch lasts this long after
// the last Down press.
const crouchHoldMs = 150

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Dino Runner"}, func(rc core.RuntimeConfig) (engine.Rules, error) {
		return New(rc)
	})
}

// Game implements the Dino Runner rules.
type Game struct {
	cfg   config.DinoConfig
	sched *schedule

	groundY  float64
	vy       float64 // Vertical velocity, units per frame
	jumping  bool
	crouch   kit.Hold
	distance float64 // Distance not yet converted to points
	speed    float64
	crashed  string // Tag of the obstacle that ended the run
	now      float64

	obstacles *engine.Store
	clouds    *engine.Store
}

// New loads the configuration and applies the difficulty preset.
func New(rc core.RuntimeConfig) (*Game, error) {
	cfg, err := config.LoadDino(rc.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := kit.Preset(rc)
	if err != nil {
		return nil, err
	}
	cfg.Speed = cfg.Speed.WithPreset(preset)
	return NewWithConfig(cfg)
}

// NewWithConfig creates the game from an explicit configuration.
func NewWithConfig(cfg config.DinoConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{cfg: cfg}
	sched, err := newSchedule(&g.cfg)
	if err != nil {
		return nil, err
	}
	g.sched = sched
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Dino Runner" }

// DeathMs is the length of the crash animation.
func (g *Game) DeathMs() float64 { return g.cfg.DeathMs }

// Setup puts the runner on the ground and schedules the first obstacle.
func (g *Game) Setup(w *engine.World) error {
	w.Player = kit.Player("dino", g.cfg.Player)
	g.groundY = g.cfg.Player.Y
	g.vy = 0
	g.jumping = false
	g.crouch = kit.Hold{Window: crouchHoldMs}
	g.distance = 0
	g.speed = g.cfg.Speed.At(0)
	g.crashed = ""
	g.sched.reset()

	// Points come from distance only.
	w.Score = engine.NewTracker(0, engine.FixedCurve{Speed: 1})
	w.Collision.Shape = engine.ColliderFunc(g.collides)

	g.clouds = w.NewStore("clouds", engine.PerSecond, false)
	g.obstacles = w.NewStore("obstacles", engine.PerSecond, true)
	g.obstacles.SetExit(func(e *engine.Entity) bool {
		return e.Pos.X()+e.Size.X() < 0
	})
	w.Spawn(g.obstacles, g.sched.interval, func(w *engine.World) *engine.Entity {
		return g.sched.build(w, g.speed)
	})
	return nil
}

// collides is an AABB test with both boxes shrunk by the padding. A
// crouching runner only has the lower half of its box.
func (g *Game) collides(p, e *engine.Entity) bool {
	pad := g.cfg.Padding
	pb := p.Box()
	if g.crouching() {
		pb.Y += pb.H / 2
		pb.H /= 2
	}
	eb := e.Box()
	return pb.X+pad < eb.Right()-pad &&
		pb.Right()-pad > eb.X+pad &&
		pb.Y+pad < eb.Bottom()-pad &&
		pb.Bottom()-pad > eb.Y+pad
}

func (g *Game) crouching() bool { return g.crouch.Held(g.now) }

// Update speeds the world up, moves the runner and counts distance.
func (g *Game) Update(w *engine.World, dt float64) {
	g.now = w.Now()
	g.speed = g.cfg.Speed.At(w.Now() / 1000)

	p := w.Player
	p.Pos[1] += g.vy
	gravity := g.cfg.Physics.Gravity
	if g.jumping && g.crouching() {
		gravity *= g.cfg.Physics.FastFall
	}
	g.vy += gravity
	if p.Pos.Y() >= g.groundY {
		p.Pos[1] = g.groundY
		g.vy = 0
		g.jumping = false
	}

	g.distance += g.speed * dt
	for g.distance >= g.cfg.PixelsPerPoint {
		g.distance -= g.cfg.PixelsPerPoint
		w.Score.ApplyDelta(1)
	}

	kit.Rescale(g.obstacles, mgl64.Vec2{-1, 0}, g.speed)

	if w.Rand.Float64() < 0.01 {
		g.clouds.Add(&engine.Entity{
			Kind:  engine.KindParticle,
			Tag:   "cloud",
			Pos:   mgl64.Vec2{w.Width, 50 + w.Rand.Float64()*150},
			Size:  mgl64.Vec2{50, 20},
			Color: core.ColorWhite,
		})
	}
	kit.Rescale(g.clouds, mgl64.Vec2{-1, 0}, g.speed/2)
}

func (g *Game) jump(w *engine.World) {
	if g.jumping {
		return
	}
	g.vy = g.cfg.Physics.JumpImpulse
	g.jumping = true
	w.Notify.Notify(engine.CueUpgrade)
}

// Action jumps.
func (g *Game) Action(w *engine.World) { g.jump(w) }

// Positional jumps; a click anywhere is a jump.
func (g *Game) Positional(w *engine.World, _, _ float64) { g.jump(w) }

// Directional jumps on Up and crouches on Down.
func (g *Game) Directional(w *engine.World, d core.Direction) {
	switch d {
	case core.DirUp:
		g.jump(w)
	case core.DirDown:
		g.crouch.Press(w.Now())
	}
}

// Hit ends the run on any obstacle.
func (g *Game) Hit(w *engine.World, e *engine.Entity, _ engine.Contact) {
	g.crashed = e.Tag
	w.Notify.Notify(engine.CueExplosion)
	c := w.Player.Center()
	w.Burst(c.X(), c.Y(), 10, 40, core.ColorRed)
	w.Die()
}

// Status shows the run speed.
func (g *Game) Status(w *engine.World) []string {
	lines := []string{fmt.Sprintf("Speed %.0f", g.speed)}
	if g.crashed != "" {
		lines = append(lines, "Hit a "+g.crashed)
	}
	return lines
}

// Jumping reports whether the runner is airborne.
func (g *Game) Jumping() bool { return g.jumping }

// Crouching reports whether the crouch is held.
func (g *Game) Crouching() bool { return g.crouching() }
