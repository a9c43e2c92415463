package engine

import "math"

// Difficulty holds the level-derived tuning of a game.
type Difficulty struct {
	Speed      float64
	IntervalMs float64
}

// DifficultyCurve maps a level to difficulty. Implementations must be
// non-decreasing in Speed and non-increasing in IntervalMs.
type DifficultyCurve interface {
	At(level int) Difficulty
}

// LinearCurve is the common curve: level 1 plays at the baseline
// (SpeedMin, IntervalMax); from level 2 on, speed is SpeedBase+L*SpeedRate
// and interval IntervalBase-L*IntervalStep, each clamped to its range.
type LinearCurve struct {
	SpeedBase float64 `yaml:"speed_base"`
	SpeedRate float64 `yaml:"speed_rate"`
	SpeedMin  float64 `yaml:"speed_min"`
	SpeedMax  float64 `yaml:"speed_max"`

	IntervalBase float64 `yaml:"interval_base"`
	IntervalStep float64 `yaml:"interval_step"`
	IntervalMin  float64 `yaml:"interval_min"`
	IntervalMax  float64 `yaml:"interval_max"`
}

// At implements DifficultyCurve.
func (c LinearCurve) At(level int) Difficulty {
	if level <= 1 {
		return Difficulty{Speed: c.SpeedMin, IntervalMs: c.IntervalMax}
	}
	l := float64(level)
	speed := c.SpeedBase + l*c.SpeedRate
	interval := c.IntervalBase - l*c.IntervalStep
	return Difficulty{
		Speed:      math.Min(c.SpeedMax, math.Max(c.SpeedMin, speed)),
		IntervalMs: math.Max(c.IntervalMin, math.Min(c.IntervalMax, interval)),
	}
}

// FixedCurve never changes.
type FixedCurve Difficulty

// At implements DifficultyCurve.
func (c FixedCurve) At(int) Difficulty { return Difficulty(c) }

// Tracker accumulates score and derives level and difficulty.
//
// Score never drops below zero. Level is always floor(score/threshold)+1, so
// it can step back after a penalty. Peak is the level sessions report: it
// never decreases, and difficulty follows it.
type Tracker struct {
	score     float64
	threshold float64
	curve     DifficultyCurve
	peak      int
	diff      Difficulty
}

// NewTracker creates a tracker. A threshold <= 0 pins the level at 1.
func NewTracker(threshold float64, curve DifficultyCurve) *Tracker {
	if curve == nil {
		curve = FixedCurve{}
	}
	return &Tracker{
		threshold: threshold,
		curve:     curve,
		peak:      1,
		diff:      curve.At(1),
	}
}

// ApplyDelta adds d, flooring at zero, and returns the new score.
func (t *Tracker) ApplyDelta(d float64) float64 {
	t.score = math.Max(0, t.score+d)
	return t.score
}

// Score returns the exact score.
func (t *Tracker) Score() float64 { return t.score }

// Points returns the score truncated for display and persistence.
func (t *Tracker) Points() int { return int(math.Floor(t.score)) }

// Level returns floor(score/threshold)+1.
func (t *Tracker) Level() int {
	if t.threshold <= 0 {
		return 1
	}
	return int(math.Floor(t.score/t.threshold)) + 1
}

// Peak returns the highest level whose level-up has fired.
func (t *Tracker) Peak() int { return t.peak }

// CheckLevelUp recomputes difficulty when the level passes its previous
// peak. It returns true at most once per new level.
func (t *Tracker) CheckLevelUp() bool {
	l := t.Level()
	if l <= t.peak {
		return false
	}
	t.peak = l
	t.diff = t.curve.At(l)
	return true
}

// Pin sets the peak for games that choose their level rather than earn it.
func (t *Tracker) Pin(level int) {
	t.peak = max(1, level)
	t.diff = t.curve.At(t.peak)
}

// Difficulty returns the parameters for the peak level.
func (t *Tracker) Difficulty() Difficulty { return t.diff }
