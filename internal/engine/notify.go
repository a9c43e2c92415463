package engine

import "sync"

// Cue names a sound or feedback event.
type Cue int

const (
	CueCatch Cue = iota
	CueExplosion
	CueBonus
	CueGameOver
	CueInvincible
	CueShoot
	CueEat
	CueChicken
	CueLevelUp
	CueUpgrade
	CueLaser
)

var cueNames = [...]string{
	CueCatch:      "catch",
	CueExplosion:  "explosion",
	CueBonus:      "bonus",
	CueGameOver:   "gameOver",
	CueInvincible: "invincible",
	CueShoot:      "shoot",
	CueEat:        "eat",
	CueChicken:    "chicken",
	CueLevelUp:    "levelUp",
	CueUpgrade:    "upgrade",
	CueLaser:      "laser",
}

func (c Cue) String() string {
	if int(c) >= 0 && int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// Cues lists every cue.
func Cues() []Cue {
	out := make([]Cue, len(cueNames))
	for i := range cueNames {
		out[i] = Cue(i)
	}
	return out
}

// Notifier receives feedback cues. Implementations must not block the frame.
type Notifier interface {
	Notify(c Cue)
}

// NopNotifier discards cues.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Cue) {}

// Recorder remembers cues in order.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

// Notify implements Notifier.
func (r *Recorder) Notify(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Count returns how often c was recorded.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}
