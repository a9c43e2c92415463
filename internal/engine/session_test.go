package engine

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/core"
)

const frame = 16 * time.Millisecond

// testRules is a minimal lane game: a player at the bottom, one obstacle
// store, +10 for every obstacle that leaves the field.
type testRules struct {
	setupErr   error
	debounce   float64
	spawnEvery float64
	clearFX    bool
	seed       []*Entity

	obstacles *Store
	hits      []float64
	dirs      []core.Direction
	points    []mgl64.Vec2
}

func (r *testRules) ID() string    { return "test" }
func (r *testRules) Title() string { return "Test" }

func (r *testRules) Setup(w *World) error {
	if r.setupErr != nil {
		return r.setupErr
	}
	w.Player = &Entity{Pos: mgl64.Vec2{180, 330}, Size: mgl64.Vec2{40, 40}}
	w.Collision.Shape = BoxCollider{}
	w.Score = NewTracker(500, birdCurve)
	r.obstacles = w.NewStore("obstacles", PerFrame, true)
	for _, e := range r.seed {
		r.obstacles.Add(e)
	}
	if r.spawnEvery > 0 {
		lanes := []float64{50, 180, 310}
		w.Spawn(r.obstacles, func() float64 { return r.spawnEvery }, func(w *World) *Entity {
			return &Entity{
				Kind: KindObstacle,
				Harm: HarmDamaging,
				Pos:  mgl64.Vec2{lanes[w.Rand.Intn(len(lanes))], -40},
				Vel:  mgl64.Vec2{0, 4},
				Size: mgl64.Vec2{35, 35},
			}
		})
	}
	return nil
}

func (r *testRules) Update(w *World, dt float64) {
	if r.clearFX {
		w.Effects.Clear()
	}
}

func (r *testRules) Hit(w *World, e *Entity, c Contact) {
	r.hits = append(r.hits, w.Now())
	w.Penalize(200, 1500)
	if e.Tag != "wall" {
		e.Gone = true
	}
}

func (r *testRules) Exited(w *World, e *Entity) {
	w.Award(10, e.Center().X(), w.Height)
}

func (r *testRules) DebounceMs() float64 { return r.debounce }

func (r *testRules) Directional(w *World, d core.Direction) {
	r.dirs = append(r.dirs, d)
}

func (r *testRules) Positional(w *World, x, y float64) {
	r.points = append(r.points, mgl64.Vec2{x, y})
}

// mortalRules dies on the first hit and plays a one second animation.
type mortalRules struct {
	testRules
}

func (r *mortalRules) Hit(w *World, e *Entity, c Contact) {
	w.Die()
}

func (r *mortalRules) DeathMs() float64 { return 1000 }

// instantRules dies on the first hit without animation.
type instantRules struct {
	testRules
}

func (r *instantRules) Hit(w *World, e *Entity, c Contact) {
	w.Die()
}

type fakeBest struct {
	stored   int
	recorded []int
}

func (f *fakeBest) Best(string) (int, error) { return f.stored, nil }

func (f *fakeBest) RecordBest(_ string, score int) (bool, error) {
	f.recorded = append(f.recorded, score)
	if score > f.stored {
		f.stored = score
		return true, nil
	}
	return false, nil
}

func newTestSession(t *testing.T, r Rules, cfg Config) (*Session, *ManualTime) {
	t.Helper()
	clock := NewManualTime(time.Unix(1000, 0))
	cfg.Rules = r
	cfg.Time = clock
	cfg.Logger = log.New(io.Discard)
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s, clock
}

func step(s *Session, clock *ManualTime, n int) bool {
	alive := true
	for i := 0; i < n; i++ {
		clock.Advance(frame)
		alive = s.Tick()
	}
	return alive
}

func TestSessionStopIsIdempotent(t *testing.T) {
	s, clock := newTestSession(t, &testRules{}, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}

	ends := 0
	sub := s.SetGameEndCallback(func(score, level int) { ends++ })
	scoreSub := s.SetScoreChangeCallback(func(int, int) {})

	step(s, clock, 5)
	s.Stop()
	s.Stop()

	if ends != 1 {
		t.Errorf("onGameEnd fired %d times, expected 1", ends)
	}
	if sub.Active() || scoreSub.Active() {
		t.Error("all subscriptions should be cancelled when the session ends")
	}
	if s.State() != StateEnded {
		t.Errorf("State() = %v, expected ended", s.State())
	}
	if step(s, clock, 1) {
		t.Error("a frame after Stop must report the session as finished")
	}
}

func TestSessionStartFailureStaysIdle(t *testing.T) {
	boom := errors.New("model unavailable")
	s, _ := newTestSession(t, &testRules{setupErr: boom}, Config{})

	err := s.Start(Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("Start() error = %v, expected wrapped %v", err, boom)
	}
	if s.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", s.State())
	}
}

func TestSessionStartTwice(t *testing.T) {
	s, _ := newTestSession(t, &testRules{}, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(Options{}); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second Start() error = %v, expected ErrSessionActive", err)
	}
}

func TestNewSessionWithoutRules(t *testing.T) {
	if _, err := NewSession(Config{}); !errors.Is(err, ErrNoRules) {
		t.Errorf("NewSession() error = %v, expected ErrNoRules", err)
	}
}

func TestSessionTimeLimit(t *testing.T) {
	s, clock := newTestSession(t, &testRules{}, Config{})
	if err := s.Start(Options{TimeLimit: 1}); err != nil {
		t.Fatal(err)
	}

	var final []int
	s.SetGameEndCallback(func(score, level int) { final = append(final, score, level) })

	step(s, clock, 30)
	if snap := s.Snapshot(); !snap.Timed || snap.TimeLeft <= 0 || snap.TimeLeft >= 1 {
		t.Errorf("mid-game TimeLeft = %v (timed=%v)", snap.TimeLeft, snap.Timed)
	}

	step(s, clock, 40)
	if s.State() != StateEnded {
		t.Fatalf("State() = %v after the limit, expected ended", s.State())
	}
	if len(final) != 2 || final[1] != 1 {
		t.Errorf("onGameEnd args = %v, expected one call at level 1", final)
	}
}

func TestSessionExitBonus(t *testing.T) {
	r := &testRules{seed: []*Entity{{Pos: mgl64.Vec2{20, 440}, Vel: mgl64.Vec2{0, 2}, Size: mgl64.Vec2{35, 35}}}}
	s, clock := newTestSession(t, r, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}

	type change struct{ score, level int }
	var changes []change
	s.SetScoreChangeCallback(func(score, level int) { changes = append(changes, change{score, level}) })

	step(s, clock, 20)

	if len(changes) != 1 || changes[0] != (change{10, 1}) {
		t.Errorf("score changes = %v, expected exactly [{10 1}]", changes)
	}
	if r.obstacles.Len() != 0 {
		t.Error("exited obstacle should be pruned")
	}
}

func TestSessionInvulnerabilityAfterHit(t *testing.T) {
	wall := &Entity{Tag: "wall", Harm: HarmDamaging, Pos: mgl64.Vec2{185, 330}, Size: mgl64.Vec2{30, 30}}
	r := &testRules{seed: []*Entity{wall}}
	s, clock := newTestSession(t, r, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}

	step(s, clock, 120)

	if len(r.hits) != 2 {
		t.Fatalf("hits at %v, expected exactly 2", r.hits)
	}
	if r.hits[1]-r.hits[0] < 1500 {
		t.Errorf("second hit %vms after the first, inside the invulnerability window", r.hits[1]-r.hits[0])
	}
}

func TestSessionDyingThenEnded(t *testing.T) {
	rec := &Recorder{}
	r := &mortalRules{testRules{seed: []*Entity{{Harm: HarmDamaging, Pos: mgl64.Vec2{185, 330}, Size: mgl64.Vec2{30, 30}}}}}
	s, clock := newTestSession(t, r, Config{Notifier: rec})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}
	ends := 0
	s.SetGameEndCallback(func(int, int) { ends++ })

	step(s, clock, 1)
	if s.State() != StateDying {
		t.Fatalf("State() = %v, expected dying", s.State())
	}
	if rec.Count(CueGameOver) != 1 {
		t.Error("dying should cue game over")
	}

	s.OnDirectional(core.DirLeft)
	step(s, clock, 30)
	if s.State() != StateDying || ends != 0 {
		t.Fatal("death animation should still be running")
	}
	if len(r.dirs) != 0 {
		t.Error("input must be ignored while dying")
	}

	step(s, clock, 60)
	if s.State() != StateEnded || ends != 1 {
		t.Errorf("State() = %v, ends = %d after the animation", s.State(), ends)
	}
}

func TestSessionInstantDeath(t *testing.T) {
	r := &instantRules{testRules{seed: []*Entity{{Harm: HarmDamaging, Pos: mgl64.Vec2{185, 330}, Size: mgl64.Vec2{30, 30}}}}}
	s, clock := newTestSession(t, r, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}

	if step(s, clock, 1) {
		t.Error("frame with a fatal hit should finish the session")
	}
	if s.State() != StateEnded {
		t.Errorf("State() = %v, expected ended", s.State())
	}
}

func TestSessionDirectionalDebounce(t *testing.T) {
	r := &testRules{debounce: 200}
	s, clock := newTestSession(t, r, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}

	s.OnDirectional(core.DirLeft)
	s.OnDirectional(core.DirRight)
	s.OnDirectional(core.DirLeft)
	s.OnDirectional(core.DirNone)
	step(s, clock, 1)

	step(s, clock, 5)
	s.OnDirectional(core.DirRight)
	step(s, clock, 1)

	step(s, clock, 10)
	s.OnDirectional(core.DirRight)
	s.OnDirectional(core.DirUp)
	step(s, clock, 1)

	want := []core.Direction{core.DirLeft, core.DirRight, core.DirUp}
	if len(r.dirs) != len(want) {
		t.Fatalf("accepted %v, expected %v", r.dirs, want)
	}
	for i := range want {
		if r.dirs[i] != want[i] {
			t.Errorf("accepted[%d] = %v, expected %v", i, r.dirs[i], want[i])
		}
	}
}

func TestSessionPositionalInput(t *testing.T) {
	r := &testRules{}
	s, clock := newTestSession(t, r, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}

	s.OnPositional(math.NaN(), 10)
	s.OnPositional(10, math.Inf(1))
	s.OnPositional(999, -5)
	step(s, clock, 1)

	if len(r.points) != 1 || r.points[0] != (mgl64.Vec2{400, 0}) {
		t.Errorf("positional inputs = %v, expected one clamped point", r.points)
	}
}

func TestSessionBestScore(t *testing.T) {
	tests := []struct {
		name     string
		stored   int
		recorded int
	}{
		{"new best", 5, 1},
		{"below best", 50, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			best := &fakeBest{stored: tc.stored}
			r := &testRules{seed: []*Entity{{Pos: mgl64.Vec2{20, 449}, Vel: mgl64.Vec2{0, 2}, Size: mgl64.Vec2{35, 35}}}}
			s, clock := newTestSession(t, r, Config{Best: best})
			if s.Snapshot().Best != tc.stored {
				t.Errorf("initial Best = %d, expected %d", s.Snapshot().Best, tc.stored)
			}
			if err := s.Start(Options{}); err != nil {
				t.Fatal(err)
			}
			step(s, clock, 5)
			s.Stop()

			if len(best.recorded) != tc.recorded {
				t.Errorf("RecordBest calls = %v, expected %d", best.recorded, tc.recorded)
			}
		})
	}
}

func TestSessionPause(t *testing.T) {
	s, clock := newTestSession(t, &testRules{}, Config{})
	if err := s.Start(Options{TimeLimit: 10}); err != nil {
		t.Fatal(err)
	}
	step(s, clock, 10)
	before := s.Snapshot().TimeLeft

	s.TogglePause()
	step(s, clock, 100)
	if got := s.Snapshot(); got.TimeLeft != before || !got.Paused {
		t.Errorf("paused TimeLeft = %v (paused=%v), expected %v", got.TimeLeft, got.Paused, before)
	}

	s.TogglePause()
	step(s, clock, 10)
	if s.Snapshot().TimeLeft >= before {
		t.Error("time should run again after resume")
	}
}

func TestSessionEffectsDoNotChangeOutcome(t *testing.T) {
	run := func(clearFX bool) (int, int) {
		r := &testRules{spawnEvery: 300, clearFX: clearFX}
		s, clock := newTestSession(t, r, Config{Seed: 99})
		if err := s.Start(Options{}); err != nil {
			t.Fatal(err)
		}
		step(s, clock, 2000)
		snap := s.Snapshot()
		return snap.Score, len(r.hits)
	}

	score, hits := run(false)
	scoreNoFX, hitsNoFX := run(true)
	if hits == 0 {
		t.Fatal("scenario should produce hits")
	}
	if score != scoreNoFX || hits != hitsNoFX {
		t.Errorf("with effects: score %d hits %d; without: score %d hits %d", score, hits, scoreNoFX, hitsNoFX)
	}
}

type recordingRenderer struct {
	snaps []Snapshot
}

func (r *recordingRenderer) Draw(dst Surface, snap Snapshot) {
	r.snaps = append(r.snaps, snap)
}

func TestSessionDrawAfterEndUsesFinalSnapshot(t *testing.T) {
	rend := &recordingRenderer{}
	s, clock := newTestSession(t, &testRules{}, Config{Renderer: rend})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}
	step(s, clock, 3)
	s.Stop()
	step(s, clock, 3)

	scr := core.NewScreen(10, 10)
	s.Draw(scr)
	s.Draw(scr)

	if len(rend.snaps) != 2 {
		t.Fatalf("Draw calls = %d, expected 2", len(rend.snaps))
	}
	if rend.snaps[0].State != StateEnded || rend.snaps[0].Frame != rend.snaps[1].Frame {
		t.Error("drawing after the end should reuse the frozen final snapshot")
	}
}

func TestHostLaunchTearsDownPrevious(t *testing.T) {
	var h Host
	clock := NewManualTime(time.Unix(0, 0))
	cfg := Config{Rules: &testRules{}, Time: clock, Logger: log.New(io.Discard)}

	first, err := h.Launch(cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	ends := 0
	sub := first.SetGameEndCallback(func(int, int) { ends++ })

	cfg.Rules = &testRules{}
	second, err := h.Launch(cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if first.State() != StateEnded || ends != 1 || sub.Active() {
		t.Error("launching a new session must stop the previous one first")
	}
	if h.Current() != second || second.State() != StateActive {
		t.Error("host should own the new active session")
	}

	cfg.Rules = &testRules{setupErr: errors.New("boom")}
	if _, err := h.Launch(cfg, Options{}); err == nil {
		t.Fatal("expected launch error")
	}
	if second.State() != StateEnded || h.Current() != nil {
		t.Error("a failed launch still tears down the previous session")
	}
}

// jumpRules awards a lump sum on the first frame and takes back part of it
// on the second.
type jumpRules struct {
	testRules
	lump, fine float64
	frames     int
	levelUps   []int
}

func (r *jumpRules) Update(w *World, dt float64) {
	r.frames++
	switch r.frames {
	case 1:
		w.Award(r.lump, 0, 0)
	case 2:
		if r.fine > 0 {
			w.Penalize(r.fine, 0)
		}
	}
}

func (r *jumpRules) LevelUp(w *World, level int) {
	r.levelUps = append(r.levelUps, level)
}

func TestSessionLevelUpForEveryLevelGained(t *testing.T) {
	r := &jumpRules{lump: 1600}
	s, clock := newTestSession(t, r, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}
	step(s, clock, 3)

	want := []int{2, 3, 4}
	if len(r.levelUps) != len(want) {
		t.Fatalf("LevelUp calls = %v, expected %v", r.levelUps, want)
	}
	for i := range want {
		if r.levelUps[i] != want[i] {
			t.Fatalf("LevelUp calls = %v, expected %v", r.levelUps, want)
		}
	}
}

func TestSessionReportedLevelNeverDrops(t *testing.T) {
	r := &jumpRules{lump: 1600, fine: 1000}
	s, clock := newTestSession(t, r, Config{})
	if err := s.Start(Options{}); err != nil {
		t.Fatal(err)
	}
	var levels []int
	s.SetScoreChangeCallback(func(_, level int) { levels = append(levels, level) })
	endLevel := 0
	s.SetGameEndCallback(func(_, level int) { endLevel = level })

	step(s, clock, 3)
	snap := s.Snapshot()
	if snap.Score != 600 || snap.Level != 4 {
		t.Errorf("score/level = %d/%d after the penalty, expected 600/4", snap.Score, snap.Level)
	}
	for i, l := range levels {
		if i > 0 && l < levels[i-1] {
			t.Fatalf("score callback levels went down: %v", levels)
		}
	}

	s.Stop()
	if endLevel != 4 {
		t.Errorf("end level = %d, expected the peak 4", endLevel)
	}
}
