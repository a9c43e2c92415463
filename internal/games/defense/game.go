// Package defense implements the turret defense game: enemies march in
// from the right, the turret shoots them down before they cross the base
// line. Every level adds an automatic turret, points earn missiles.
package defense

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/games/kit"
	"github.com/vovakirdan/minigames/internal/registry"
)

// ID is the registry id.
const ID = "defense"

// aimStep is how far one Up/Down press turns the turret, in radians.
const aimStep = math.Pi / 24

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Base Defense"}, func(rc core.RuntimeConfig) (engine.Rules, error) {
		return New(rc)
	})
}

// Game implements the Base Defense rules.
type Game struct {
	cfg   config.DefenseConfig
	table *engine.WeightedTable[config.SpawnEntry]

	hp          float64
	angle       float64 // Turret heading, 0 points right
	missiles    int
	missileMark float64 // Score at which the last missile was earned
	ai          []*aiTurret

	enemies *engine.Store
	shots   *engine.Store
	turrets *engine.Store
}

// New loads the configuration and applies the difficulty preset.
func New(rc core.RuntimeConfig) (*Game, error) {
	cfg, err := config.LoadDefense(rc.ConfigPath)
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
func NewWithConfig(cfg config.DefenseConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := config.Table(cfg.Enemies, 1)
	if err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, table: table}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Base Defense" }

// Setup places the turret at the base and starts the enemy waves.
func (g *Game) Setup(w *engine.World) error {
	g.hp = g.cfg.BaseHP
	g.angle = 0
	g.missiles = 0
	g.missileMark = 0
	g.ai = nil

	p := kit.Player("turret", g.cfg.Turret)
	p.SetCenter(mgl64.Vec2{g.cfg.Turret.X, g.cfg.Turret.Y})
	w.Player = p
	w.Score = g.cfg.Progression.NewTracker()

	g.turrets = w.NewStore("turrets", engine.PerSecond, false)
	g.turrets.SetExit(nil)

	g.enemies = w.NewStore("enemies", engine.PerSecond, false)
	g.enemies.SetExit(func(e *engine.Entity) bool {
		return e.Center().X() < g.cfg.BaseX
	})

	g.shots = w.NewStore("shots", engine.PerSecond, false)
	g.shots.SetExit(func(e *engine.Entity) bool {
		c := e.Center()
		return c.X() < 0 || c.X() > w.Width || c.Y() < 0 || c.Y() > w.Height
	})

	w.Spawn(g.enemies, func() float64 { return w.Score.Difficulty().IntervalMs }, g.spawn)
	return nil
}

func (g *Game) spawn(w *engine.World) *engine.Entity {
	row := g.table.Draw(w.Rand)
	e := kit.FromEntry(row, w.Rand)
	e.Kind = engine.KindEnemy
	boost := 1 + float64(w.Score.Peak()-1)*g.cfg.SpeedBoost
	e.Vel = mgl64.Vec2{-e.SpeedMult * boost, 0}
	e.SetCenter(mgl64.Vec2{w.Width + e.Size.X(), 30 + w.Rand.Float64()*(w.Height-60)})
	return e
}

// Update hands out missiles and runs the automatic turrets.
func (g *Game) Update(w *engine.World, dt float64) {
	if g.cfg.MissileEvery > 0 && w.Score.Score() >= g.missileMark+g.cfg.MissileEvery {
		g.missiles++
		g.missileMark += g.cfg.MissileEvery
		w.Notify.Notify(engine.CueUpgrade)
	}
	for _, t := range g.ai {
		t.update(g, w)
	}
}

func (g *Game) fire(w *engine.World, from mgl64.Vec2, angle float64, missile bool) *engine.Entity {
	dir := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
	e := &engine.Entity{Kind: engine.KindProjectile, Tag: "shot", Color: core.ColorYellow}
	speed, size, muzzle := g.cfg.ProjectileSpeed, g.cfg.ProjectileSize, 20.0
	if missile {
		e.Tag, e.Color = "missile", core.ColorOrange
		speed, size, muzzle = g.cfg.MissileSpeed, g.cfg.MissileSize, 30
	}
	e.Size = mgl64.Vec2{size, size}
	e.Vel = dir.Mul(speed)
	e.SetCenter(from.Add(dir.Mul(muzzle)))
	w.Notify.Notify(engine.CueShoot)
	return g.shots.Add(e)
}

// Action fires the turret.
func (g *Game) Action(w *engine.World) {
	g.fire(w, w.Player.Center(), g.angle, false)
}

// Secondary launches a missile if one is in stock.
func (g *Game) Secondary(w *engine.World) {
	if g.missiles <= 0 {
		return
	}
	g.missiles--
	g.fire(w, w.Player.Center(), g.angle, true)
}

// Positional aims the turret at the pointer.
func (g *Game) Positional(w *engine.World, x, y float64) {
	c := w.Player.Center()
	g.angle = math.Atan2(y-c.Y(), x-c.X())
}

// Directional turns the turret up or down.
func (g *Game) Directional(w *engine.World, d core.Direction) {
	switch d {
	case core.DirUp, core.DirLeft:
		g.angle -= aimStep
	case core.DirDown, core.DirRight:
		g.angle += aimStep
	}
	g.angle = core.Clamp(g.angle, -math.Pi/2, math.Pi/2)
}

// Resolve lets shots hit enemies. A shot is spent on the first enemy it
// touches; missiles burst instead of hitting one target.
func (g *Game) Resolve(w *engine.World) {
	g.enemies.Each(func(e *engine.Entity) {
		ec := e.Center()
		for _, s := range g.shots.All() {
			if s.Gone || e.Gone {
				continue
			}
			sc := s.Center()
			if sc.Sub(ec).Len() >= e.R()+s.R() {
				continue
			}
			s.Gone = true
			if s.Tag == "missile" {
				g.explode(w, sc)
			} else {
				e.HP--
				g.kill(w, e)
			}
			return
		}
	})
}

func (g *Game) explode(w *engine.World, at mgl64.Vec2) {
	w.Notify.Notify(engine.CueExplosion)
	w.Effects.Explosion(at.X(), at.Y(), 25)
	g.enemies.Each(func(e *engine.Entity) {
		if e.Center().Sub(at).Len() < g.cfg.MissileRadius {
			e.HP -= g.cfg.MissileDamage
			g.kill(w, e)
		}
	})
}

// kill scores an enemy that ran out of hit points.
func (g *Game) kill(w *engine.World, e *engine.Entity) {
	if e.Gone || e.HP > 0 {
		return
	}
	e.Gone = true
	c := e.Center()
	w.Award(e.Value, c.X(), c.Y())
	w.Burst(c.X(), c.Y(), 6, 20, core.ColorOrange)
	w.Notify.Notify(engine.CueExplosion)
}

// Exited damages the base for every enemy that got through.
func (g *Game) Exited(w *engine.World, e *engine.Entity) {
	g.hp = max(0, g.hp-e.Damage)
	w.Notify.Notify(engine.CueExplosion)
	w.Effects.Explosion(g.cfg.BaseX, e.Center().Y(), 15)
	if g.hp <= 0 {
		w.Die()
	}
}

// LevelUp adds an automatic turret.
func (g *Game) LevelUp(w *engine.World, level int) {
	g.addTurret(w, level)
}

// Hit is never called: nothing collides with the turret.
func (g *Game) Hit(*engine.World, *engine.Entity, engine.Contact) {}

// Status shows the base and the arsenal.
func (g *Game) Status(w *engine.World) []string {
	return []string{
		fmt.Sprintf("Base %.0f/%.0f", g.hp, g.cfg.BaseHP),
		fmt.Sprintf("Missiles %d", g.missiles),
		fmt.Sprintf("Turrets %d", len(g.ai)),
	}
}

// HP returns the base hit points.
func (g *Game) HP() float64 { return g.hp }

// Angle returns the turret heading in radians.
func (g *Game) Angle() float64 { return g.angle }

// Missiles returns the missiles in stock.
func (g *Game) Missiles() int { return g.missiles }

// Turrets returns the number of automatic turrets.
func (g *Game) Turrets() int { return len(g.ai) }
