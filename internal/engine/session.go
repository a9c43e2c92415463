package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/core"
)

var (
	// ErrNoRules is returned by NewSession without a Rules value.
	ErrNoRules = errors.New("engine: no rules")
	// ErrSessionActive is returned when Start is called twice.
	ErrSessionActive = errors.New("engine: session already started")
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateActive
	StateDying
	StateEnding
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateDying:
		return "dying"
	case StateEnding:
		return "ending"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// Options are the per-start settings.
type Options struct {
	// TimeLimit in seconds; 0 plays until death or Stop.
	TimeLimit int
}

// BestScores persists the best score per game.
type BestScores interface {
	Best(game string) (int, error)
	// RecordBest stores score only if it beats the stored value.
	RecordBest(game string, score int) (bool, error)
}

// Surface is an opaque drawing target owned by the host.
type Surface interface {
	Width() int
	Height() int
	SetCell(x, y int, r rune, c core.Color)
}

// Renderer draws snapshots onto surfaces.
type Renderer interface {
	Draw(dst Surface, snap Snapshot)
}

// Config wires a session's collaborators.
type Config struct {
	Rules    Rules
	Time     TimeProvider
	Notifier Notifier
	Renderer Renderer
	Best     BestScores
	Logger   *log.Logger
	Seed     int64

	Width, Height float64
}

type inputKind int

const (
	inputDirectional inputKind = iota
	inputAction
	inputSecondary
	inputPositional
	inputText
)

type input struct {
	kind inputKind
	dir  core.Direction
	x, y float64
	text string
}

// Session runs one play-through of a game, from Start to Ended.
//
// Input calls may come from any goroutine; they are queued and applied at
// the start of the next frame. Frame, Stop and Draw serialize on one mutex.
// Callbacks run after the mutex is released.
type Session struct {
	mu sync.Mutex

	cfg   Config
	rules Rules
	log   *log.Logger

	state     State
	world     *World
	clock     *Clock
	startedAt time.Time
	elapsed   float64
	limitMs   float64
	paused    bool

	queue   []input
	lastDir float64
	dirSeen bool

	dyingUntil float64
	best       int
	lastPoints int
	lastLevel  int
	final      *Snapshot

	onScore listeners
	onEnd   listeners
	events  []func()
}

// NewSession creates an idle session and reads the stored best score.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Rules == nil {
		return nil, ErrNoRules
	}
	if cfg.Time == nil {
		cfg.Time = SystemTime{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		cfg:   cfg,
		rules: cfg.Rules,
		log:   logger.With("game", cfg.Rules.ID()),
	}

	if cfg.Best != nil {
		best, err := cfg.Best.Best(cfg.Rules.ID())
		if err != nil {
			s.log.Warn("could not read best score", "err", err)
		} else {
			s.best = best
		}
	}
	return s, nil
}

// ID returns the game id.
func (s *Session) ID() string { return s.rules.ID() }

// Title returns the game title.
func (s *Session) Title() string { return s.rules.Title() }

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetScoreChangeCallback registers fn for score or level changes. Only
// whole-point changes are reported.
func (s *Session) SetScoreChangeCallback(fn ResultFunc) *Subscription {
	return s.onScore.add(fn)
}

// SetGameEndCallback registers fn for the single end notification.
func (s *Session) SetGameEndCallback(fn ResultFunc) *Subscription {
	return s.onEnd.add(fn)
}

// Start builds the world and enters Active. A setup failure is returned and
// the session stays Idle.
func (s *Session) Start(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return ErrSessionActive
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := newWorld(s.cfg.Width, s.cfg.Height, seed, s.cfg.Notifier, s.log)
	if err := s.rules.Setup(w); err != nil {
		return fmt.Errorf("engine: setup %s: %w", s.rules.ID(), err)
	}

	s.world = w
	s.clock = NewClock()
	s.startedAt = s.cfg.Time.Now()
	s.limitMs = float64(max(0, opts.TimeLimit)) * 1000
	s.lastLevel = w.Score.Peak()
	s.lastPoints = w.Score.Points()
	s.state = StateActive

	s.log.Debug("session started", "time_limit", opts.TimeLimit, "seed", seed)
	return nil
}

// Stop ends the session. It is idempotent: only the first call of a started
// session produces the end notification.
func (s *Session) Stop() {
	s.mu.Lock()
	switch s.state {
	case StateEnded:
		s.mu.Unlock()
		return
	case StateIdle:
		s.state = StateEnded
		s.mu.Unlock()
		s.onScore.cancelAll()
		s.onEnd.cancelAll()
		return
	}
	s.finalize("stopped")
	events := s.takeEvents()
	s.mu.Unlock()

	runEvents(events)
}

// TogglePause pauses or resumes an active session.
func (s *Session) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return
	}
	s.paused = !s.paused
	s.clock.Rebase()
}

// OnDirectional queues a direction input.
func (s *Session) OnDirectional(d core.Direction) {
	if d == core.DirNone {
		return
	}
	s.enqueue(input{kind: inputDirectional, dir: d})
}

// OnAction queues the primary action.
func (s *Session) OnAction() {
	s.enqueue(input{kind: inputAction})
}

// OnSecondary queues the secondary action.
func (s *Session) OnSecondary() {
	s.enqueue(input{kind: inputSecondary})
}

// OnPositional queues a pointer position in world units. Non-finite
// coordinates are ignored and the rest are clamped to the field.
func (s *Session) OnPositional(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	x = core.Clamp(x, 0, s.cfg.Width)
	y = core.Clamp(y, 0, s.cfg.Height)
	s.enqueue(input{kind: inputPositional, x: x, y: y})
}

// OnText queues a typed answer.
func (s *Session) OnText(text string) {
	s.enqueue(input{kind: inputText, text: text})
}

func (s *Session) enqueue(in input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive || s.paused {
		return
	}
	s.queue = append(s.queue, in)
}

// Tick runs a frame at the configured time provider's current time.
func (s *Session) Tick() bool {
	return s.Frame(s.cfg.Time.Now())
}

// Frame runs one frame at wall time now. It returns false once the session
// needs no more frames.
func (s *Session) Frame(now time.Time) bool {
	s.mu.Lock()
	alive := s.frame(now)
	events := s.takeEvents()
	s.mu.Unlock()

	runEvents(events)
	return alive
}

func (s *Session) frame(now time.Time) bool {
	if s.state == StateIdle || s.state == StateEnded {
		return false
	}

	ts := float64(now.Sub(s.startedAt).Microseconds()) / 1000
	dt, ok := s.clock.Tick(ts)
	if !ok {
		return false
	}
	if s.paused {
		s.clock.Rebase()
		return true
	}

	w := s.world
	s.elapsed += dt * 1000
	w.now = s.elapsed
	w.dt = dt
	w.frame++

	switch s.state {
	case StateEnding:
		s.finalize("finished")
		return false
	case StateDying:
		w.Effects.Advance()
		if s.elapsed >= s.dyingUntil {
			s.finalize("died")
			return false
		}
		return true
	}

	s.drainInputs()
	for _, r := range w.spawns {
		if r.spawner.Due(w.now, r.interval()) {
			if e := r.build(w); e != nil {
				r.store.Add(e)
			}
		}
	}

	s.rules.Update(w, dt)
	for _, st := range w.stores {
		st.Advance(dt)
	}
	s.collide()
	if r, ok := s.rules.(Resolver); ok {
		r.Resolve(w)
	}
	s.prune()
	w.Effects.Advance()

	prev := w.Score.Peak()
	if w.Score.CheckLevelUp() {
		level := w.Score.Peak()
		w.Notify.Notify(CueLevelUp)
		if lu, ok := s.rules.(LevelUpper); ok {
			for l := prev + 1; l <= level; l++ {
				lu.LevelUp(w, l)
			}
		}
		s.log.Debug("level up", "level", level, "speed", w.Score.Difficulty().Speed,
			"interval", w.Score.Difficulty().IntervalMs)
	}
	s.publishScore()

	switch {
	case w.died:
		m, ok := s.rules.(Mortal)
		if !ok || m.DeathMs() <= 0 {
			s.finalize("died")
			return false
		}
		s.state = StateDying
		s.dyingUntil = s.elapsed + m.DeathMs()
		w.Notify.Notify(CueGameOver)
	case w.ended:
		s.state = StateEnding
	case s.limitMs > 0 && s.elapsed >= s.limitMs:
		s.state = StateEnding
	}
	return true
}

func (s *Session) drainInputs() {
	w := s.world
	queue := s.queue
	s.queue = nil

	for _, in := range queue {
		switch in.kind {
		case inputDirectional:
			h, ok := s.rules.(DirectionalInput)
			if !ok {
				continue
			}
			if db, ok := s.rules.(Debounced); ok && (in.dir == core.DirLeft || in.dir == core.DirRight) {
				if s.dirSeen && w.now-s.lastDir < db.DebounceMs() {
					continue
				}
				s.dirSeen = true
				s.lastDir = w.now
			}
			h.Directional(w, in.dir)
		case inputAction:
			if h, ok := s.rules.(ActionInput); ok {
				h.Action(w)
			}
		case inputSecondary:
			if h, ok := s.rules.(SecondaryInput); ok {
				h.Secondary(w)
			}
		case inputPositional:
			if h, ok := s.rules.(PositionalInput); ok {
				h.Positional(w, in.x, in.y)
			}
		case inputText:
			if h, ok := s.rules.(TextInput); ok {
				h.Text(w, in.text)
			}
		}
	}
}

// collide tests the player against every collidable entity in store order.
// Each contact is resolved on its own.
func (s *Session) collide() {
	w := s.world
	if w.Player == nil {
		return
	}
	for _, st := range w.stores {
		if !st.collides {
			continue
		}
		for _, e := range st.items {
			c := w.Collision.Resolve(w.now, w.Player, e)
			switch c {
			case ContactNone:
			case ContactAbsorbed:
				e.Gone = true
				w.Burst(e.Center().X(), e.Center().Y(), 4, 15, core.ColorCyan)
			default:
				s.rules.Hit(w, e, c)
			}
		}
	}
}

func (s *Session) prune() {
	w := s.world
	exiter, _ := s.rules.(Exiter)
	for _, st := range w.stores {
		exit := st.exit
		st.Prune(func(e *Entity) bool {
			return e.Gone || (exit != nil && exit(e))
		}, func(e *Entity) {
			if !e.Gone && exiter != nil {
				exiter.Exited(w, e)
			}
		})
	}
}

func (s *Session) publishScore() {
	points, level := s.world.Score.Points(), s.world.Score.Peak()
	if points == s.lastPoints && level == s.lastLevel {
		return
	}
	s.lastPoints, s.lastLevel = points, level
	fns := s.onScore.funcs()
	s.events = append(s.events, func() {
		for _, fn := range fns {
			fn(points, level)
		}
	})
}

// finalize moves to Ended and queues the end notification, the best-score
// write and listener teardown. Caller holds mu.
func (s *Session) finalize(reason string) {
	if s.state == StateEnded {
		return
	}
	s.state = StateEnded
	s.clock.Stop()
	s.queue = nil

	snap := s.snapshotLocked()
	s.final = &snap

	score, level := s.world.Score.Points(), s.world.Score.Peak()
	endFns := s.onEnd.funcs()
	best := s.cfg.Best
	id := s.rules.ID()
	prevBest := s.best
	logger := s.log

	s.log.Debug("session ended", "reason", reason, "score", score, "level", level)

	s.events = append(s.events, func() {
		for _, fn := range endFns {
			fn(score, level)
		}
		s.onScore.cancelAll()
		s.onEnd.cancelAll()

		if best != nil && score > prevBest {
			if _, err := best.RecordBest(id, score); err != nil {
				logger.Warn("could not record best score", "err", err)
			}
		}
	})
	if score > s.best {
		s.best = score
	}
}

func (s *Session) takeEvents() []func() {
	ev := s.events
	s.events = nil
	return ev
}

func runEvents(events []func()) {
	for _, ev := range events {
		ev()
	}
}

// Snapshot returns the current render state. After the session ends it
// returns the state frozen at the end.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	if s.final != nil {
		return *s.final
	}

	snap := Snapshot{
		Game:   s.rules.ID(),
		Title:  s.rules.Title(),
		State:  s.state,
		Paused: s.paused,
		Best:   s.best,
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		Level:  1,
	}
	w := s.world
	if w == nil {
		return snap
	}

	snap.Frame = w.frame
	snap.Score = w.Score.Points()
	snap.Level = w.Score.Peak()
	snap.Best = max(s.best, snap.Score)
	if s.limitMs > 0 {
		snap.Timed = true
		snap.TimeLeft = max(0, (s.limitMs-s.elapsed)/1000)
	}
	if w.Player != nil {
		p := *w.Player
		snap.Player = &p
	}
	snap.Invulnerable = w.Collision.Invulnerable.Active(w.now)
	snap.Shielded = w.Collision.Shield.Active(w.now)
	for _, st := range w.stores {
		snap.Entities = append(snap.Entities, st.Snapshot()...)
	}
	snap.Effects = w.Effects.Snapshot()
	if sr, ok := s.rules.(StatusReporter); ok {
		snap.Status = sr.Status(w)
	}
	return snap
}

// Draw renders the current snapshot through the configured renderer. The
// session never keeps dst.
func (s *Session) Draw(dst Surface) {
	if s.cfg.Renderer == nil || dst == nil {
		return
	}
	s.cfg.Renderer.Draw(dst, s.Snapshot())
}

// Snapshot is an immutable copy of what a renderer needs.
type Snapshot struct {
	Game  string
	Title string
	State State
	Frame uint64

	Score    int
	Level    int
	Best     int
	Timed    bool
	TimeLeft float64
	Paused   bool

	Width, Height float64

	Player       *Entity
	Invulnerable bool
	Shielded     bool
	Entities     []Entity
	Effects      []Effect
	Status       []string
}

// PlayerCenter returns the player's midpoint, or the field center.
func (s Snapshot) PlayerCenter() mgl64.Vec2 {
	if s.Player == nil {
		return mgl64.Vec2{s.Width / 2, s.Height / 2}
	}
	return s.Player.Center()
}
