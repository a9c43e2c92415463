// Package enginetest drives engine sessions frame by frame in tests.
package enginetest

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/engine"
)

// FrameDuration is one 60fps frame.
const FrameDuration = 16 * time.Millisecond

// Harness owns a started session on a manual clock.
type Harness struct {
	t       testing.TB
	Session *engine.Session
	Clock   *engine.ManualTime
	Cues    *engine.Recorder
	Best    *MemoryBest
}

// Start creates and starts a session for rules with seed 1, discarding logs.
func Start(t testing.TB, rules engine.Rules, opts engine.Options) *Harness {
	t.Helper()
	h := &Harness{
		t:     t,
		Clock: engine.NewManualTime(time.Unix(1000, 0)),
		Cues:  &engine.Recorder{},
		Best:  NewMemoryBest(),
	}
	s, err := engine.NewSession(engine.Config{
		Rules:    rules,
		Time:     h.Clock,
		Notifier: h.Cues,
		Best:     h.Best,
		Logger:   log.New(io.Discard),
		Seed:     1,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Start(opts); err != nil {
		t.Fatalf("Start: %v", err)
	}
	h.Session = s
	// Prime the clock so the next frame has a real delta.
	s.Tick()
	return h
}

// Step runs n frames and reports whether the session still wants frames.
func (h *Harness) Step(n int) bool {
	alive := true
	for i := 0; i < n && alive; i++ {
		h.Clock.Advance(FrameDuration)
		alive = h.Session.Tick()
	}
	return alive
}

// StepUntil runs frames until cond holds or limit frames have passed. It
// returns whether cond was met.
func (h *Harness) StepUntil(limit int, cond func(engine.Snapshot) bool) bool {
	for i := 0; i < limit; i++ {
		if cond(h.Session.Snapshot()) {
			return true
		}
		if !h.Step(1) {
			return cond(h.Session.Snapshot())
		}
	}
	return cond(h.Session.Snapshot())
}

// Snapshot returns the session snapshot.
func (h *Harness) Snapshot() engine.Snapshot {
	return h.Session.Snapshot()
}

// Count returns how many times c was notified.
func (h *Harness) Count(c engine.Cue) int {
	return h.Cues.Count(c)
}

// MemoryBest is an in-memory engine.BestScores.
type MemoryBest struct {
	scores map[string]int
}

// NewMemoryBest creates an empty store.
func NewMemoryBest() *MemoryBest {
	return &MemoryBest{scores: make(map[string]int)}
}

// Best implements engine.BestScores.
func (m *MemoryBest) Best(game string) (int, error) {
	return m.scores[game], nil
}

// RecordBest implements engine.BestScores.
func (m *MemoryBest) RecordBest(game string, score int) (bool, error) {
	if score <= m.scores[game] {
		return false, nil
	}
	m.scores[game] = score
	return true, nil
}
