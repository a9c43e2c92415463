// Package fruitcatch implements the skewer catching game: move a spear
// between three lanes and stack falling fruit on it. Five stacked pieces
// are eaten for a bonus, bombs blow the stack away.
package fruitcatch

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
const ID = "fruitcatch"

// Item tags with special effects.
const (
	TagGun    = "gun"
	TagShield = "shield"
	TagBomb   = "bomb"
)

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Fruit Catch"}, func(rc core.RuntimeConfig) (engine.Rules, error) {
		return New(rc)
	})
}

// Game implements the Fruit Catch rules.
type Game struct {
	cfg   config.FruitCatchConfig
	lanes kit.Lanes
	table *kit.LevelTable

	lane     int
	gun      engine.Window // Auto-fire power-up
	lastShot float64

	items   *engine.Store
	bullets *engine.Store
	skewer  *engine.Store // Caught pieces riding the spear, bottom first
}

// New loads the configuration and applies the difficulty preset.
func New(rc core.RuntimeConfig) (*Game, error) {
	cfg, err := config.LoadFruitCatch(rc.ConfigPath)
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
func NewWithConfig(cfg config.FruitCatchConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := kit.NewLevelTable(cfg.Spawns)
	if err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, lanes: kit.Lanes(cfg.Lanes), table: table}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Fruit Catch" }

// DebounceMs spaces lane changes.
func (g *Game) DebounceMs() float64 { return g.cfg.DebounceMs }

// DefaultTimeLimit is the round length in seconds.
func (g *Game) DefaultTimeLimit() int { return g.cfg.TimeLimit }

// Setup centers the basket and registers the stores.
func (g *Game) Setup(w *engine.World) error {
	g.lane = g.lanes.Middle()
	g.gun.Clear()
	g.lastShot = 0

	p := kit.Player("basket", g.cfg.Basket)
	p.SetCenter(mgl64.Vec2{g.lanes[g.lane], g.cfg.Basket.Y + g.cfg.Basket.H/2})
	w.Player = p

	w.Score = g.cfg.Progression.NewTracker()
	w.Collision.Shape = engine.ColliderFunc(g.catches)

	g.skewer = w.NewStore("skewer", engine.PerFrame, false)
	g.skewer.SetExit(nil)
	g.bullets = w.NewStore("bullets", engine.PerFrame, false)
	g.items = w.NewStore("items", engine.PerFrame, true)
	w.Spawn(g.items, func() float64 { return w.Score.Difficulty().IntervalMs }, g.spawn)
	return nil
}

// catches reports whether an item reaches the spear tip: its bottom is within
// CatchAbove of the basket top, it has not fallen past the basket and it is
// horizontally close to the spear.
func (g *Game) catches(p, e *engine.Entity) bool {
	pb, eb := p.Box(), e.Box()
	return eb.Bottom() >= pb.Y-g.cfg.CatchAbove &&
		eb.Y < pb.Bottom() &&
		math.Abs(e.Center().X()-p.Center().X()) < g.cfg.CatchHalfWidth
}

func (g *Game) spawn(w *engine.World) *engine.Entity {
	row := g.table.Draw(w.Score.Peak(), w.Rand)
	e := kit.FromEntry(row, w.Rand)
	e.Lane = w.Rand.Intn(len(g.lanes))
	e.Pos = mgl64.Vec2{g.lanes[e.Lane] - row.W/2, 0}
	e.Vel = mgl64.Vec2{0, w.Score.Difficulty().Speed * e.SpeedMult}
	return e
}

// Update fires the gun, keeps fall speeds current and pulls the stack
// along with the basket.
func (g *Game) Update(w *engine.World, dt float64) {
	kit.Rescale(g.items, mgl64.Vec2{0, 1}, w.Score.Difficulty().Speed)

	p := w.Player
	if g.gun.Active(w.Now()) {
		if w.Now()-g.lastShot > g.cfg.FireEveryMs {
			b := &engine.Entity{
				Kind:  engine.KindProjectile,
				Tag:   "bullet",
				Size:  mgl64.Vec2{g.cfg.Bullet.W, g.cfg.Bullet.H},
				Vel:   mgl64.Vec2{0, -g.cfg.BulletSpeed},
				Color: core.ColorOrange,
			}
			b.Pos = mgl64.Vec2{p.Center().X() - b.Size.X()/2, p.Pos.Y()}
			g.bullets.Add(b)
			g.lastShot = w.Now()
			w.Notify.Notify(engine.CueShoot)
		}
	} else if g.bullets.Len() > 0 {
		g.bullets.Clear()
	}

	cx := p.Center().X()
	for i, e := range g.skewer.All() {
		target := mgl64.Vec2{cx - e.Size.X()/2, p.Pos.Y() - 40 - float64(i)*25}
		e.Pos = e.Pos.Add(target.Sub(e.Pos).Mul(0.5))
	}
}

// Resolve lets bullets destroy falling items.
func (g *Game) Resolve(w *engine.World) {
	g.bullets.Each(func(b *engine.Entity) {
		bb := b.Box()
		g.items.Each(func(e *engine.Entity) {
			if b.Gone || !bb.Intersects(e.Box()) {
				return
			}
			e.Gone, b.Gone = true, true
			c := e.Center()
			if e.Tag == TagBomb {
				w.Award(g.cfg.BulletBombBonus, c.X(), c.Y())
			} else {
				w.Award(g.cfg.BulletFruitBonus, c.X(), c.Y())
			}
			w.Effects.Explosion(c.X(), c.Y(), 10)
		})
	})
}

// Directional switches lanes.
func (g *Game) Directional(w *engine.World, d core.Direction) {
	g.moveTo(w, g.lanes.Step(g.lane, d))
}

// Positional snaps the basket to the lane under the pointer.
func (g *Game) Positional(w *engine.World, x, _ float64) {
	g.moveTo(w, g.lanes.Nearest(x))
}

func (g *Game) moveTo(w *engine.World, lane int) {
	g.lane = lane
	p := w.Player
	p.SetCenter(mgl64.Vec2{g.lanes[lane], p.Center().Y()})
}

// Hit handles one caught item.
func (g *Game) Hit(w *engine.World, e *engine.Entity, c engine.Contact) {
	e.Gone = true

	if c == engine.ContactHit {
		// Bomb: no grace period, the stack is lost.
		w.Penalize(g.cfg.BombPenalty, 0)
		g.skewer.Clear()
		return
	}

	switch e.Tag {
	case TagGun:
		g.gun.Grant(w.Now(), g.cfg.GunMs)
		w.Notify.Notify(engine.CueInvincible)
		return
	case TagShield:
		w.Collision.Shield.Grant(w.Now(), g.cfg.ShieldMs)
		w.Notify.Notify(engine.CueInvincible)
		return
	}

	w.Award(e.Value, e.Pos.X(), e.Pos.Y())
	w.Notify.Notify(kit.PickupCue(e.Value))

	piece := *e
	piece.Gone = false
	piece.Vel = mgl64.Vec2{}
	g.skewer.Add(&piece)
	if g.skewer.Len() >= g.cfg.StackSize {
		p := w.Player.Center()
		w.Award(g.cfg.StackBonus, p.X(), p.Y()-60)
		g.skewer.Clear()
		w.Notify.Notify(engine.CueEat)
	}
}

// Status reports the active power-ups and the stack height.
func (g *Game) Status(w *engine.World) []string {
	lines := []string{fmt.Sprintf("Stack %d/%d", g.skewer.Len(), g.cfg.StackSize)}
	if g.gun.Active(w.Now()) {
		lines = append(lines, fmt.Sprintf("MACHINE GUN %.0fs", math.Ceil(g.gun.Remaining(w.Now())/1000)))
	}
	if w.Collision.Shield.Active(w.Now()) {
		lines = append(lines, fmt.Sprintf("SHIELD ON %.0fs", math.Ceil(w.Collision.Shield.Remaining(w.Now())/1000)))
	}
	return lines
}

// Lane returns the basket's lane index.
func (g *Game) Lane() int { return g.lane }

// Stack returns the number of pieces on the spear.
func (g *Game) Stack() int { return g.skewer.Len() }
