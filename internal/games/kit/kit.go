// Package kit holds the helpers the game rules share: building entities
// from spawn table rows, level-filtered tables, lanes and held inputs.
package kit

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
)

// Preset parses the runtime difficulty.
func Preset(rc core.RuntimeConfig) (config.DifficultyPreset, error) {
	return config.ParsePreset(rc.Difficulty)
}

// FromEntry builds an entity from a spawn table row. The speed multiplier
// is drawn from the row's range and Y gets the row's jitter. X is left at 0.
func FromEntry(row config.SpawnEntry, rng *rand.Rand) *engine.Entity {
	e := &engine.Entity{
		Kind:      KindOf(row),
		Tag:       row.Tag,
		Size:      mgl64.Vec2{row.W, row.H},
		Value:     row.Value,
		Damage:    row.Damage,
		HP:        row.HP,
		Harm:      row.HarmKind(),
		SpeedMult: row.SpeedMin,
	}
	if row.SpeedMax > row.SpeedMin {
		e.SpeedMult += rng.Float64() * (row.SpeedMax - row.SpeedMin)
	}
	y := row.Y
	if row.YJitter > 0 {
		y += rng.Float64() * row.YJitter
	}
	e.Pos = mgl64.Vec2{0, y}
	return e
}

// KindOf classifies a row: harmful rows are obstacles, the rest items.
func KindOf(row config.SpawnEntry) engine.Kind {
	if row.HarmKind() != engine.HarmNone {
		return engine.KindObstacle
	}
	return engine.KindItem
}

// Player builds the player entity from a configured box.
func Player(tag string, b config.Box) *engine.Entity {
	return &engine.Entity{
		Tag:  tag,
		Pos:  mgl64.Vec2{b.X, b.Y},
		Size: mgl64.Vec2{b.W, b.H},
	}
}

// Rescale sets every entity's velocity to dir * speed * SpeedMult, so
// entities already on screen follow difficulty changes.
func Rescale(s *engine.Store, dir mgl64.Vec2, speed float64) {
	s.Each(func(e *engine.Entity) {
		m := e.SpeedMult
		if m == 0 {
			m = 1
		}
		e.Vel = dir.Mul(speed * m)
	})
}

// PickupCue is the sound of collecting an item worth value points.
func PickupCue(value float64) engine.Cue {
	switch {
	case value >= 1000:
		return engine.CueChicken
	case value >= 300:
		return engine.CueBonus
	}
	return engine.CueCatch
}

// LevelTable caches the spawn table for the current level and rebuilds it
// when rows unlock.
type LevelTable struct {
	rows  []config.SpawnEntry
	level int
	table *engine.WeightedTable[config.SpawnEntry]
}

// NewLevelTable builds the level 1 table.
func NewLevelTable(rows []config.SpawnEntry) (*LevelTable, error) {
	t, err := config.Table(rows, 1)
	if err != nil {
		return nil, err
	}
	return &LevelTable{rows: rows, level: 1, table: t}, nil
}

// At returns the table for level. If no row is available at that level the
// previous table is kept.
func (t *LevelTable) At(level int) *engine.WeightedTable[config.SpawnEntry] {
	if level != t.level {
		if next, err := config.Table(t.rows, level); err == nil {
			t.table = next
		}
		t.level = level
	}
	return t.table
}

// Draw picks a row for level.
func (t *LevelTable) Draw(level int, rng *rand.Rand) config.SpawnEntry {
	return t.At(level).Draw(rng)
}

// Lanes is a set of lane centers, left to right.
type Lanes []float64

// Nearest returns the index of the lane closest to x.
func (l Lanes) Nearest(x float64) int {
	best, dist := 0, math.Inf(1)
	for i, c := range l {
		if d := math.Abs(c - x); d < dist {
			best, dist = i, d
		}
	}
	return best
}

// Step moves lane i one step left or right, staying inside the lanes.
func (l Lanes) Step(i int, d core.Direction) int {
	switch d {
	case core.DirLeft:
		i--
	case core.DirRight:
		i++
	}
	return core.Clamp(i, 0, len(l)-1)
}

// Middle returns the center lane index.
func (l Lanes) Middle() int { return len(l) / 2 }

// Hold tracks a key that terminals only report as repeated presses: it
// counts as held for a window after each press.
type Hold struct {
	Window float64
	until  engine.Window
}

// Press records a key event at now.
func (h *Hold) Press(now float64) {
	h.until.Clear()
	h.until.Grant(now, h.Window)
}

// Held reports whether the key is still considered down at now.
func (h *Hold) Held(now float64) bool { return h.until.Active(now) }

// Release drops the hold at once.
func (h *Hold) Release() { h.until.Clear() }
