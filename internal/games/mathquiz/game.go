// Package mathquiz implements the timed arithmetic quiz. Answers arrive as
// text; after each answer or pass the explanation stays up for a moment
// before the next problem.
package mathquiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/games/kit"
	"github.com/vovakirdan/minigames/internal/registry"
)

// ID is the registry id.
const ID = "mathquiz"

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Math Quiz"}, func(rc core.RuntimeConfig) (engine.Rules, error) {
		return New(rc)
	})
}

// Game implements the Math Quiz rules.
type Game struct {
	cfg config.MathQuizConfig

	problem  Problem
	feedback string
	pause    engine.Window
	waiting  bool
	answered int
	correct  int
}

// New loads the configuration. An explicit difficulty picks the tier.
func New(rc core.RuntimeConfig) (*Game, error) {
	cfg, err := config.LoadMathQuiz(rc.ConfigPath)
	if err != nil {
		return nil, err
	}
	if rc.Difficulty != "" {
		preset, err := kit.Preset(rc)
		if err != nil {
			return nil, err
		}
		cfg.Tier = config.TierForPreset(preset)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates the game from an explicit configuration.
func NewWithConfig(cfg config.MathQuizConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{cfg: cfg}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Math Quiz" }

// DefaultTimeLimit makes the quiz a timed round.
func (g *Game) DefaultTimeLimit() int { return g.cfg.TimeLimit }

// Setup draws the first problem. The quiz has no player and no entities;
// the level is the tier.
func (g *Game) Setup(w *engine.World) error {
	w.Player = nil
	w.Score = engine.NewTracker(0, nil)
	w.Score.Pin(g.cfg.Tier)
	g.answered, g.correct = 0, 0
	g.next(w)
	return nil
}

func (g *Game) next(w *engine.World) {
	g.problem = Generate(g.cfg.Tier, w.Rand)
	g.feedback = ""
	g.waiting = false
	g.pause.Clear()
}

// Update moves on once the explanation has been shown long enough.
func (g *Game) Update(w *engine.World, dt float64) {
	if g.waiting && !g.pause.Active(w.Now()) {
		g.next(w)
	}
}

// Hit is never called; the quiz has nothing to collide with.
func (g *Game) Hit(*engine.World, *engine.Entity, engine.Contact) {}

// Text checks a typed answer. Anything that is not an integer is ignored,
// as is input while the explanation is up.
func (g *Game) Text(w *engine.World, s string) {
	if g.waiting {
		return
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return
	}
	g.answered++
	if v == g.problem.Answer {
		g.correct++
		w.Award(g.cfg.Correct, w.Width/2, w.Height/2)
		w.Notify.Notify(engine.CueCatch)
		g.explain(w, "Correct!")
		return
	}
	w.Award(-g.cfg.Wrong, w.Width/2, w.Height/2)
	w.Notify.Notify(engine.CueExplosion)
	g.explain(w, fmt.Sprintf("Wrong. The answer is %d", g.problem.Answer))
}

// Secondary passes on the current problem.
func (g *Game) Secondary(w *engine.World) {
	if g.waiting {
		return
	}
	w.Award(-g.cfg.Pass, w.Width/2, w.Height/2)
	w.Notify.Notify(engine.CueExplosion)
	g.explain(w, fmt.Sprintf("Passed. The answer is %d", g.problem.Answer))
}

func (g *Game) explain(w *engine.World, title string) {
	g.feedback = title
	g.waiting = true
	g.pause.Grant(w.Now(), g.cfg.PauseMs)
}

// Status carries the question and, between questions, the explanation.
func (g *Game) Status(w *engine.World) []string {
	lines := []string{
		fmt.Sprintf("Tier %d", g.cfg.Tier),
		fmt.Sprintf("Correct %d/%d", g.correct, g.answered),
		g.problem.Display,
	}
	if g.waiting {
		lines = append(lines, g.feedback, "("+g.problem.Explanation+")")
	}
	return lines
}

// Problem returns the problem on screen.
func (g *Game) Problem() Problem { return g.problem }

// Waiting reports whether the explanation is showing.
func (g *Game) Waiting() bool { return g.waiting }
