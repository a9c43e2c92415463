// Package maze implements the arena survival game: walk around an open
// square while enemies come in from the edges and bounce off the walls.
// One touch ends the run. Guns give ammo, stars clear the neighbourhood.
package maze

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
const ID = "maze"

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Arena Escape"}, func(rc core.RuntimeConfig) (engine.Rules, error) {
		return New(rc)
	})
}

// Game implements the Arena Escape rules.
type Game struct {
	cfg    config.MazeConfig
	itemTb *kit.LevelTable

	held   map[core.Direction]*kit.Hold
	facing core.Direction
	ammo   int

	enemies *engine.Store
	bullets *engine.Store
	items   *engine.Store
}

// New loads the configuration and applies the difficulty preset.
func New(rc core.RuntimeConfig) (*Game, error) {
	cfg, err := config.LoadMaze(rc.ConfigPath)
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
func NewWithConfig(cfg config.MazeConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	items, err := kit.NewLevelTable(cfg.Items)
	if err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, itemTb: items}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Arena Escape" }

// Setup puts the player in the middle with one enemy already on its way.
func (g *Game) Setup(w *engine.World) error {
	w.Player = kit.Player("runner", g.cfg.Player)
	g.facing = core.DirRight
	g.ammo = 0
	g.held = make(map[core.Direction]*kit.Hold, 4)
	for _, d := range []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight} {
		g.held[d] = &kit.Hold{Window: g.cfg.HoldMs}
	}

	w.Score = g.cfg.Progression.NewTracker()
	w.Collision.Shape = engine.BoxCollider{}

	g.enemies = w.NewStore("enemies", engine.PerFrame, true)
	g.enemies.SetExit(nil)
	g.items = w.NewStore("items", engine.PerFrame, true)
	g.items.SetExit(nil)
	g.bullets = w.NewStore("bullets", engine.PerFrame, false)
	g.bullets.SetExit(func(e *engine.Entity) bool {
		return e.Pos.X() < -10 || e.Pos.X() > w.Width+10
	})

	g.enemies.Add(g.enemy(w))
	w.Spawn(g.enemies, func() float64 { return w.Score.Difficulty().IntervalMs }, g.enemy)
	w.Spawn(g.items, func() float64 { return g.cfg.ItemEveryMs }, func(w *engine.World) *engine.Entity {
		e := kit.FromEntry(g.itemTb.Draw(w.Score.Peak(), w.Rand), w.Rand)
		e.Pos = mgl64.Vec2{
			30 + w.Rand.Float64()*(w.Width-60),
			30 + w.Rand.Float64()*(w.Height-60),
		}
		return e
	})
	return nil
}

// enemy enters from a random edge, heading roughly at the player. Later
// levels send faster ones.
func (g *Game) enemy(w *engine.World) *engine.Entity {
	var at mgl64.Vec2
	switch w.Rand.Intn(4) {
	case 0:
		at = mgl64.Vec2{w.Rand.Float64() * w.Width, -20}
	case 1:
		at = mgl64.Vec2{w.Width + 20, w.Rand.Float64() * w.Height}
	case 2:
		at = mgl64.Vec2{w.Rand.Float64() * w.Width, w.Height + 20}
	default:
		at = mgl64.Vec2{-20, w.Rand.Float64() * w.Height}
	}
	to := w.Player.Pos.Sub(at)
	angle := math.Atan2(to.Y(), to.X()) + (w.Rand.Float64()-0.5)*2*g.cfg.AimJitter
	speed := g.cfg.EnemySpeed + w.Rand.Float64()*g.cfg.EnemyJitter + float64(w.Score.Peak())*g.cfg.EnemyPerLevel

	return &engine.Entity{
		Kind:  engine.KindEnemy,
		Tag:   "goomba",
		Harm:  engine.HarmDamaging,
		Pos:   at,
		Size:  mgl64.Vec2{g.cfg.Enemy.W, g.cfg.Enemy.H},
		Vel:   mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(speed),
		Color: core.ColorOrange,
	}
}

// Update walks the player, bounces enemies off the walls and pays for
// staying alive.
func (g *Game) Update(w *engine.World, dt float64) {
	p := w.Player
	now := w.Now()
	var step mgl64.Vec2
	if g.held[core.DirUp].Held(now) {
		step[1] -= g.cfg.Speed
	}
	if g.held[core.DirDown].Held(now) {
		step[1] += g.cfg.Speed
	}
	if g.held[core.DirLeft].Held(now) {
		step[0] -= g.cfg.Speed
	}
	if g.held[core.DirRight].Held(now) {
		step[0] += g.cfg.Speed
	}
	p.Pos = p.Pos.Add(step)
	w.ClampPlayer()

	g.enemies.Each(func(e *engine.Entity) {
		// Only reflect when heading out, so fresh spawns walk in.
		if e.Pos.X() < 0 && e.Vel.X() < 0 || e.Pos.X()+e.Size.X() > w.Width && e.Vel.X() > 0 {
			e.Vel[0] = -e.Vel.X()
		}
		if e.Pos.Y() < 0 && e.Vel.Y() < 0 || e.Pos.Y()+e.Size.Y() > w.Height && e.Vel.Y() > 0 {
			e.Vel[1] = -e.Vel.Y()
		}
		e.Pos = mgl64.Vec2{
			core.Clamp(e.Pos.X(), 0, w.Width-e.Size.X()),
			core.Clamp(e.Pos.Y(), 0, w.Height-e.Size.Y()),
		}
	})

	w.Score.ApplyDelta(g.cfg.SurvivalBonus)
}

// Directional holds a direction. Opposite directions cancel each other so
// a reversal does not wait for the old hold to run out.
func (g *Game) Directional(w *engine.World, d core.Direction) {
	h, ok := g.held[d]
	if !ok {
		return
	}
	h.Press(w.Now())
	switch d {
	case core.DirLeft:
		g.held[core.DirRight].Release()
		g.facing = d
	case core.DirRight:
		g.held[core.DirLeft].Release()
		g.facing = d
	case core.DirUp:
		g.held[core.DirDown].Release()
	case core.DirDown:
		g.held[core.DirUp].Release()
	}
}

// Action fires one bullet the way the player faces.
func (g *Game) Action(w *engine.World) {
	if g.ammo <= 0 {
		return
	}
	g.ammo--
	p := w.Player
	x, vx := p.Pos.X()+p.Size.X(), g.cfg.BulletSpeed
	if g.facing == core.DirLeft {
		x, vx = p.Pos.X(), -vx
	}
	g.bullets.Add(&engine.Entity{
		Kind:  engine.KindProjectile,
		Tag:   "bullet",
		Pos:   mgl64.Vec2{x, p.Center().Y() - g.cfg.Bullet.H/2},
		Size:  mgl64.Vec2{g.cfg.Bullet.W, g.cfg.Bullet.H},
		Vel:   mgl64.Vec2{vx, 0},
		Color: core.ColorBrightYellow,
	})
	w.Notify.Notify(engine.CueLaser)
}

// Resolve lets bullets take out enemies, one each.
func (g *Game) Resolve(w *engine.World) {
	g.bullets.Each(func(b *engine.Entity) {
		g.enemies.Each(func(e *engine.Entity) {
			if b.Gone || !b.Box().Intersects(e.Box()) {
				return
			}
			b.Gone, e.Gone = true, true
			w.Award(g.cfg.KillBonus, e.Pos.X(), e.Pos.Y())
			w.Burst(e.Pos.X(), e.Pos.Y(), 8, 20, core.ColorOrange)
			w.Notify.Notify(engine.CueExplosion)
		})
	})
}

// Hit ends the run on an enemy and applies pickups.
func (g *Game) Hit(w *engine.World, e *engine.Entity, c engine.Contact) {
	if c == engine.ContactHit {
		at := w.Player.Center()
		w.Effects.Explosion(at.X(), at.Y(), 20)
		w.Notify.Notify(engine.CueExplosion)
		w.Die()
		return
	}
	e.Gone = true
	switch e.Tag {
	case "gun":
		g.ammo = min(g.cfg.AmmoMax, g.ammo+g.cfg.AmmoPerGun)
		w.Notify.Notify(engine.CueUpgrade)
	case "star":
		w.Award(e.Value, e.Pos.X(), e.Pos.Y())
		w.Notify.Notify(engine.CueBonus)
		g.enemies.Each(func(en *engine.Entity) {
			if en.Pos.Sub(e.Pos).Len() < g.cfg.StarRadius {
				en.Gone = true
				w.Burst(en.Pos.X(), en.Pos.Y(), 8, 20, core.ColorBrightYellow)
			}
		})
	default:
		w.Award(e.Value, e.Pos.X(), e.Pos.Y())
		w.Notify.Notify(kit.PickupCue(e.Value))
	}
}

// Status shows the ammo while the gun is loaded.
func (g *Game) Status(w *engine.World) []string {
	lines := []string{fmt.Sprintf("Enemies %d", g.enemies.Len())}
	if g.ammo > 0 {
		lines = append(lines, fmt.Sprintf("Ammo %d", g.ammo))
	}
	return lines
}

// Ammo returns the bullets left.
func (g *Game) Ammo() int { return g.ammo }

// Facing returns the horizontal direction the player looks.
func (g *Game) Facing() core.Direction { return g.facing }
