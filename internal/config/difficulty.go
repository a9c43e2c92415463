package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/minigames/internal/engine"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
}

// WithPreset scales the level threshold: easy levels up slower, hard faster,
// fixed never.
func (p Progression) WithPreset(preset DifficultyPreset) Progression {
	switch preset {
	case DifficultyEasy:
		p.LevelThreshold *= 1.5
	case DifficultyHard:
		p.LevelThreshold *= 0.6
	case DifficultyFixed:
		p.LevelThreshold = 0
	}
	return p
}

// NewTracker builds the score tracker for this progression.
func (p Progression) NewTracker() *engine.Tracker {
	return engine.NewTracker(p.LevelThreshold, p.Curve)
}

// TierForPreset maps a preset to a quiz tier.
func TierForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 3
	}
	return 2
}

// Ramp is a value that grows linearly with play time.
type Ramp struct {
	Base float64 `yaml:"base"`
	Rate float64 `yaml:"rate"` // per second
	Max  float64 `yaml:"max"`  // 0 means unbounded
}

// At returns the value after seconds of play.
func (r Ramp) At(seconds float64) float64 {
	v := r.Base + r.Rate*math.Max(0, seconds)
	if r.Max > 0 {
		v = math.Min(r.Max, v)
	}
	return v
}

// Table builds the weighted table of entries available at level.
func Table(entries []SpawnEntry, level int) (*engine.WeightedTable[SpawnEntry], error) {
	var ws []engine.Weighted[SpawnEntry]
	for _, e := range entries {
		if e.FromLevel > level {
			continue
		}
		ws = append(ws, engine.Weighted[SpawnEntry]{Weight: e.Weight, Value: e})
	}
	return engine.NewWeightedTable(ws...)
}

// WithPreset scales the growth rate the same way WithPreset scales level
// thresholds: easy grows slower, hard faster, fixed not at all.
func (r Ramp) WithPreset(preset DifficultyPreset) Ramp {
	switch preset {
	case DifficultyEasy:
		r.Rate *= 0.6
	case DifficultyHard:
		r.Rate *= 1.5
	case DifficultyFixed:
		r.Rate = 0
	}
	return r
}
