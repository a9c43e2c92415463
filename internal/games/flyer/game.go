// Package flyer implements the side-scrolling flyer: hold to puff up and
// float, let go to sink. Obstacles cost points, items give them.
// The run never ends on its own.
package flyer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/games/kit"
	"github.com/vovakirdan/minigames/internal/registry"
)

// ID is the registry id.
const ID = "flyer"

const cloudCount = 4

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Dream Flyer"}, func(rc core.RuntimeConfig) (engine.Rules, error) {
		return New(rc)
	})
}

// Game implements the Dream Flyer rules.
type Game struct {
	cfg        config.FlyerConfig
	obstacleTb *kit.LevelTable
	itemTb     *kit.LevelTable

	vy     float64 // Vertical velocity, units per frame
	thrust kit.Hold

	clouds    *engine.Store
	obstacles *engine.Store
	items     *engine.Store
}

// New loads the configuration and applies the difficulty preset.
func New(rc core.RuntimeConfig) (*Game, error) {
	cfg, err := config.LoadFlyer(rc.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := kit.Preset(rc)
	if err != nil {
		return nil, err
	}
	cfg.Progression = cfg.Progression.WithPreset(preset)
	return NewWithConfig(cfg)
}

// NewWithConfig creates the game from an explicit configuration.
func NewWithConfig(cfg config.FlyerConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	obstacles, err := kit.NewLevelTable(cfg.Obstacles)
	if err != nil {
		return nil, err
	}
	items, err := kit.NewLevelTable(cfg.Items)
	if err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, obstacleTb: obstacles, itemTb: items}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Dream Flyer" }

// Setup puts the flyer on the ground and starts both spawners.
func (g *Game) Setup(w *engine.World) error {
	w.Player = kit.Player("flyer", g.cfg.Player)
	g.vy = 0
	g.thrust = kit.Hold{Window: g.cfg.HoldMs}

	w.Score = g.cfg.Progression.NewTracker()
	w.Collision.Shape = engine.BoxCollider{Margin: g.cfg.Margin}

	g.clouds = w.NewStore("clouds", engine.PerFrame, false)
	g.clouds.SetExit(nil)
	for i := 0; i < cloudCount; i++ {
		size := 30 + w.Rand.Float64()*40
		g.clouds.Add(&engine.Entity{
			Kind:  engine.KindParticle,
			Tag:   "cloud",
			Pos:   mgl64.Vec2{w.Rand.Float64() * w.Width, 30 + w.Rand.Float64()*100},
			Size:  mgl64.Vec2{size, size / 2},
			Vel:   mgl64.Vec2{-(0.3 + w.Rand.Float64()*0.5), 0},
			Color: core.ColorWhite,
		})
	}

	g.obstacles = w.NewStore("obstacles", engine.PerFrame, true)
	g.obstacles.SetExit(func(e *engine.Entity) bool {
		return e.Pos.X()+e.Size.X() < -20
	})
	g.items = w.NewStore("items", engine.PerFrame, true)
	g.items.SetExit(func(e *engine.Entity) bool {
		return e.Pos.X() < -30
	})

	w.Spawn(g.obstacles, func() float64 { return w.Score.Difficulty().IntervalMs }, func(w *engine.World) *engine.Entity {
		return g.spawn(w, g.obstacleTb)
	})
	w.Spawn(g.items, func() float64 { return g.cfg.ItemEveryMs }, func(w *engine.World) *engine.Entity {
		return g.spawn(w, g.itemTb)
	})
	return nil
}

func (g *Game) spawn(w *engine.World, t *kit.LevelTable) *engine.Entity {
	e := kit.FromEntry(t.Draw(w.Score.Peak(), w.Rand), w.Rand)
	e.Pos = mgl64.Vec2{w.Width + 20, e.Pos.Y()}
	e.Vel = mgl64.Vec2{-w.Score.Difficulty().Speed * e.SpeedMult, 0}
	return e
}

// Flying reports whether thrust is held.
func (g *Game) Flying(now float64) bool { return g.thrust.Held(now) }

// Update applies thrust or gravity and scrolls the world.
func (g *Game) Update(w *engine.World, dt float64) {
	p := w.Player
	if g.thrust.Held(w.Now()) {
		g.vy = max(g.vy-g.cfg.Thrust, -g.cfg.MaxRise)
		if w.Frame()%4 == 0 {
			w.Burst(p.Center().X(), p.Pos.Y()+p.Size.Y(), 1, 15, core.ColorWhite)
		}
	} else {
		g.vy += g.cfg.Gravity
		if g.cfg.MaxFall > 0 {
			g.vy = min(g.vy, g.cfg.MaxFall)
		}
	}
	p.Pos[1] += g.vy
	if p.Pos.Y() >= g.cfg.GroundY {
		p.Pos[1] = g.cfg.GroundY
		g.vy = 0
	}
	if p.Pos.Y() < g.cfg.CeilingY {
		p.Pos[1] = g.cfg.CeilingY
		g.vy = 0
	}

	speed := w.Score.Difficulty().Speed
	kit.Rescale(g.obstacles, mgl64.Vec2{-1, 0}, speed)
	kit.Rescale(g.items, mgl64.Vec2{-1, 0}, speed)

	g.clouds.Each(func(c *engine.Entity) {
		if c.Pos.X() < -c.Size.X() {
			c.Pos = mgl64.Vec2{w.Width + c.Size.X(), 30 + w.Rand.Float64()*100}
		}
	})

	w.Score.ApplyDelta(g.cfg.TimeBonus)
}

// Action puffs up.
func (g *Game) Action(w *engine.World) { g.thrust.Press(w.Now()) }

// Positional puffs up; pointer presses act like the action key.
func (g *Game) Positional(w *engine.World, _, _ float64) { g.thrust.Press(w.Now()) }

// Directional puffs up on Up and drops the thrust on Down.
func (g *Game) Directional(w *engine.World, d core.Direction) {
	switch d {
	case core.DirUp:
		g.thrust.Press(w.Now())
	case core.DirDown:
		g.thrust.Release()
	}
}

// Hit applies an obstacle or an item.
func (g *Game) Hit(w *engine.World, e *engine.Entity, c engine.Contact) {
	e.Gone = true
	if c == engine.ContactHit {
		w.Penalize(g.cfg.HitPenalty, g.cfg.InvulnerableMs)
		return
	}
	w.Award(e.Value, e.Pos.X(), e.Pos.Y()-15)
	w.Notify.Notify(kit.PickupCue(e.Value))
}

// Exited rewards every obstacle left behind.
func (g *Game) Exited(w *engine.World, e *engine.Entity) {
	if e.Harm != engine.HarmNone {
		w.Score.ApplyDelta(g.cfg.PassBonus)
	}
}
