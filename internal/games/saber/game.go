// Package saber implements the beam saber runner: enemies walk in from the
// right and the pilot cuts them down with a short-range swing. Consecutive
// kills build a combo; enemies that slip past cost points.
package saber

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
const ID = "saber"

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Beam Saber"}, func(rc core.RuntimeConfig) (engine.Rules, error) {
		return New(rc)
	})
}

// Game implements the Beam Saber rules.
type Game struct {
	cfg     config.SaberConfig
	enemyTb *kit.LevelTable
	itemTb  *kit.LevelTable

	attack    int // Frames left in the current swing
	combo     int
	bestCombo int

	enemies *engine.Store
	items   *engine.Store
}

// New loads the configuration and applies the difficulty preset.
func New(rc core.RuntimeConfig) (*Game, error) {
	cfg, err := config.LoadSaber(rc.ConfigPath)
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
func NewWithConfig(cfg config.SaberConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enemies, err := kit.NewLevelTable(cfg.Enemies)
	if err != nil {
		return nil, err
	}
	items, err := kit.NewLevelTable(cfg.Items)
	if err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, enemyTb: enemies, itemTb: items}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Beam Saber" }

// Setup places the pilot and starts the enemy and item spawners.
func (g *Game) Setup(w *engine.World) error {
	w.Player = kit.Player("pilot", g.cfg.Player)
	g.attack = 0
	g.combo = 0
	g.bestCombo = 0

	w.Score = g.cfg.Progression.NewTracker()
	w.Collision.Shape = engine.ColliderFunc(g.touches)

	g.enemies = w.NewStore("enemies", engine.PerFrame, true)
	g.enemies.SetExit(func(e *engine.Entity) bool {
		return e.Pos.X()+e.Size.X() < -20
	})
	g.items = w.NewStore("items", engine.PerFrame, true)
	g.items.SetExit(func(e *engine.Entity) bool {
		return e.Pos.X() < -30
	})

	w.Spawn(g.enemies, func() float64 { return w.Score.Difficulty().IntervalMs }, func(w *engine.World) *engine.Entity {
		e := kit.FromEntry(g.enemyTb.Draw(w.Score.Peak(), w.Rand), w.Rand)
		e.Kind = engine.KindEnemy
		e.Pos = mgl64.Vec2{w.Width + 20 + w.Rand.Float64()*60, e.Pos.Y()}
		e.Vel = mgl64.Vec2{-w.Score.Difficulty().Speed * e.SpeedMult, 0}
		return e
	})
	w.Spawn(g.items, func() float64 { return g.cfg.ItemEveryMs }, func(w *engine.World) *engine.Entity {
		e := kit.FromEntry(g.itemTb.Draw(w.Score.Peak(), w.Rand), w.Rand)
		e.Pos = mgl64.Vec2{w.Width + 20, e.Pos.Y()}
		e.Vel = mgl64.Vec2{-w.Score.Difficulty().Speed, 0}
		return e
	})
	return nil
}

// touches is the pilot's contact shape. Items only need to line up
// horizontally. Enemies walk into the pilot only while no swing is active,
// with a little extra reach in front and above.
func (g *Game) touches(p, e *engine.Entity) bool {
	pb, eb := p.Box(), e.Box()
	if e.Harm == engine.HarmNone {
		return eb.X < pb.Right()+g.cfg.ItemReach && eb.Right() > pb.X
	}
	if g.attack > 0 {
		return false
	}
	return eb.X < pb.Right()+5 &&
		eb.Right() > pb.X &&
		eb.Bottom() > pb.Y-20 &&
		eb.Y < pb.Bottom()
}

// Update counts down the swing and scrolls the world.
func (g *Game) Update(w *engine.World, dt float64) {
	if g.attack > 0 {
		g.attack--
	}
	speed := w.Score.Difficulty().Speed
	kit.Rescale(g.enemies, mgl64.Vec2{-1, 0}, speed)
	kit.Rescale(g.items, mgl64.Vec2{-1, 0}, speed)
	w.Score.ApplyDelta(g.cfg.TimeBonus)
}

// Action swings the saber. Everything inside the attack box is cut at
// once; an empty swing breaks the combo.
func (g *Game) Action(w *engine.World) {
	if g.attack > 0 {
		return
	}
	g.attack = g.cfg.AttackFrames
	w.Notify.Notify(engine.CueShoot)

	p := w.Player.Box()
	reach := core.Box{
		X: p.Right() + g.cfg.AttackBox.X,
		Y: p.Y + g.cfg.AttackBox.Y,
		W: g.cfg.AttackBox.W,
		H: g.cfg.AttackBox.H,
	}
	w.Effects.Push(engine.Effect{
		Pos:   mgl64.Vec2{reach.X, p.Y},
		Life:  g.cfg.SlashFrames,
		Glyph: ')',
		Color: core.ColorBrightCyan,
	})

	hit := false
	g.enemies.Each(func(e *engine.Entity) {
		if !reach.Intersects(e.Box()) {
			return
		}
		hit = true
		g.combo++
		g.bestCombo = max(g.bestCombo, g.combo)
		points := e.Value + min(float64(g.combo)*g.cfg.ComboStep, g.cfg.ComboMax)
		e.Gone = true
		c := e.Center()
		w.Award(points, e.Pos.X(), e.Pos.Y()-20)
		color := core.ColorBrightGreen
		if e.Tag == "boss" {
			color = core.ColorBrightRed
		}
		w.Burst(c.X(), c.Y(), 12, 25, color)
		w.Notify.Notify(engine.CueExplosion)
	})
	if !hit {
		g.combo = 0
	}
}

// Hit applies an enemy walking into the pilot, or an item pickup.
func (g *Game) Hit(w *engine.World, e *engine.Entity, c engine.Contact) {
	e.Gone = true
	if c == engine.ContactHit {
		g.combo = 0
		w.Penalize(g.cfg.ContactPenalty, g.cfg.InvulnerableMs)
		return
	}
	w.Award(e.Value, e.Pos.X(), e.Pos.Y()-20)
	w.Notify.Notify(kit.PickupCue(e.Value))
}

// Exited charges for every enemy that got past.
func (g *Game) Exited(w *engine.World, e *engine.Entity) {
	if e.Harm == engine.HarmNone {
		return
	}
	g.combo = 0
	w.Award(-g.cfg.EscapePenalty, 10, e.Center().Y())
}

// Status shows the combo counters.
func (g *Game) Status(w *engine.World) []string {
	return []string{
		fmt.Sprintf("Combo %d", g.combo),
		fmt.Sprintf("Best combo %d", g.bestCombo),
	}
}

// Combo returns the current kill streak.
func (g *Game) Combo() int { return g.combo }

// Attacking reports whether a swing is in progress.
func (g *Game) Attacking() bool { return g.attack > 0 }
