// Package birdstrike implements a three-lane dodging game: steer a plane
// between lanes to avoid falling birds and collect items.
// There is no game over; hits cost points.
package birdstrike

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/games/kit"
	"github.com/vovakirdan/minigames/internal/registry"
)

// ID is the registry id.
const ID = "birdstrike"

const cloudCount = 5

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Bird Strike"}, func(rc core.RuntimeConfig) (engine.Rules, error) {
		return New(rc)
	})
}

// Game implements the Bird Strike rules.
type Game struct {
	cfg   config.BirdStrikeConfig
	lanes kit.Lanes
	table *kit.LevelTable

	lane    int     // Current lane index
	targetX float64 // Left edge the plane eases toward

	obstacles *engine.Store
	clouds    *engine.Store
}

// New loads the configuration and applies the difficulty preset.
func New(rc core.RuntimeConfig) (*Game, error) {
	cfg, err := config.LoadBirdStrike(rc.ConfigPath)
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
func NewWithConfig(cfg config.BirdStrikeConfig) (*Game, error) {
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
func (g *Game) Title() string { return "Bird Strike" }

// DebounceMs spaces lane changes.
func (g *Game) DebounceMs() float64 { return g.cfg.DebounceMs }

// Setup places the plane in the middle lane.
func (g *Game) Setup(w *engine.World) error {
	g.lane = g.lanes.Middle()
	p := kit.Player("plane", g.cfg.Player)
	p.Pos = mgl64.Vec2{g.laneX(g.lane), g.cfg.Player.Y}
	g.targetX = p.Pos.X()
	w.Player = p

	w.Score = g.cfg.Progression.NewTracker()
	w.Collision.Shape = engine.LaneCollider{Threshold: g.cfg.LaneThreshold, Margin: g.cfg.Margin}
	// A blinking plane collects nothing either.
	w.Collision.SuppressAll = true

	g.clouds = w.NewStore("clouds", engine.PerFrame, false)
	g.clouds.SetExit(nil)
	for i := 0; i < cloudCount; i++ {
		g.clouds.Add(g.cloud(w, w.Rand.Float64()*w.Height))
	}

	g.obstacles = w.NewStore("obstacles", engine.PerFrame, true)
	w.Spawn(g.obstacles, func() float64 { return w.Score.Difficulty().IntervalMs }, g.spawn)
	return nil
}

func (g *Game) laneX(i int) float64 {
	return g.lanes[i] - g.cfg.Player.W/2
}

func (g *Game) cloud(w *engine.World, y float64) *engine.Entity {
	size := 30 + w.Rand.Float64()*40
	return &engine.Entity{
		Kind:  engine.KindParticle,
		Tag:   "cloud",
		Pos:   mgl64.Vec2{w.Rand.Float64() * w.Width, y},
		Size:  mgl64.Vec2{size, size / 2},
		Vel:   mgl64.Vec2{0, 0.5 + w.Rand.Float64()},
		Color: core.ColorWhite,
	}
}

func (g *Game) spawn(w *engine.World) *engine.Entity {
	row := g.table.Draw(w.Score.Peak(), w.Rand)
	e := kit.FromEntry(row, w.Rand)
	e.Lane = w.Rand.Intn(len(g.lanes))
	e.Pos = mgl64.Vec2{g.lanes[e.Lane] - row.W/2, -row.H}
	e.Vel = mgl64.Vec2{0, w.Score.Difficulty().Speed * e.SpeedMult}
	return e
}

// Update eases the plane toward its lane and scrolls the sky.
func (g *Game) Update(w *engine.World, dt float64) {
	p := w.Player
	p.Pos[0] += (g.targetX - p.Pos.X()) * g.cfg.Ease

	kit.Rescale(g.obstacles, mgl64.Vec2{0, 1}, w.Score.Difficulty().Speed)

	g.clouds.Each(func(c *engine.Entity) {
		if c.Pos.Y() > w.Height+50 {
			c.Pos = mgl64.Vec2{w.Rand.Float64() * w.Width, -50}
		}
	})

	w.Score.ApplyDelta(g.cfg.TimeBonus)
}

// Directional switches lanes.
func (g *Game) Directional(w *engine.World, d core.Direction) {
	g.moveTo(g.lanes.Step(g.lane, d))
}

// Positional snaps to the lane under the pointer.
func (g *Game) Positional(w *engine.World, x, _ float64) {
	g.moveTo(g.lanes.Nearest(x))
}

func (g *Game) moveTo(lane int) {
	g.lane = lane
	g.targetX = g.laneX(lane)
}

// Hit applies a bird strike or an item pickup.
func (g *Game) Hit(w *engine.World, e *engine.Entity, c engine.Contact) {
	e.Gone = true
	if c == engine.ContactHit {
		w.Penalize(g.cfg.HitPenalty, g.cfg.InvulnerableMs)
		return
	}
	w.Award(e.Value, e.Pos.X(), e.Pos.Y())
	w.Notify.Notify(kit.PickupCue(e.Value))
}

// Exited rewards every bird that fell past the plane.
func (g *Game) Exited(w *engine.World, e *engine.Entity) {
	if e.Harm != engine.HarmNone {
		w.Score.ApplyDelta(g.cfg.DodgeBonus)
	}
}

// Lane returns the current lane index.
func (g *Game) Lane() int { return g.lane }
