package dino

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/engine/enginetest"
)

func newGame(t *testing.T) (*Game, *enginetest.Harness) {
	t.Helper()
	g, err := NewWithConfig(config.DefaultDinoConfig())
	if err != nil {
		t.Fatal(err)
	}
	return g, enginetest.Start(t, g, engine.Options{})
}

func obstacle(tag string, x, y, w, h float64) *engine.Entity {
	return &engine.Entity{
		Kind: engine.KindObstacle, Tag: tag, Harm: engine.HarmDamaging,
		Pos: mgl64.Vec2{x, y}, Size: mgl64.Vec2{w, h}, SpeedMult: 1,
	}
}

func TestJumpAndLand(t *testing.T) {
	g, h := newGame(t)

	h.Session.OnAction()
	h.Session.OnAction()
	h.Step(1)
	if !g.Jumping() {
		t.Fatal("not jumping after action")
	}
	if h.Count(engine.CueUpgrade) != 1 {
		t.Errorf("jump cues = %d, want 1 (no double jump)", h.Count(engine.CueUpgrade))
	}
	h.Step(10)
	if y := h.Snapshot().Player.Pos.Y(); y >= 350 {
		t.Errorf("runner at y=%v mid-jump", y)
	}

	h.Step(50)
	if g.Jumping() {
		t.Error("runner never landed")
	}
	if y := h.Snapshot().Player.Pos.Y(); y != 350 {
		t.Errorf("landed at y=%v, want 350", y)
	}
}

func TestCrouchFastFalls(t *testing.T) {
	airtime := func(crouch bool) int {
		g, h := newGame(t)
		h.Session.OnDirectional(core.DirUp)
		h.Step(1)
		for i := 1; i < 200; i++ {
			if crouch {
				h.Session.OnDirectional(core.DirDown)
			}
			h.Step(1)
			if !g.Jumping() {
				return i
			}
		}
		t.Fatal("never landed")
		return 0
	}
	plain, fast := airtime(false), airtime(true)
	if fast >= plain {
		t.Errorf("crouched airtime %d frames, plain %d", fast, plain)
	}
}

func TestDistanceScoring(t *testing.T) {
	_, h := newGame(t)
	// 62 frames at 250 units/s is about 248 units: six 40-unit steps.
	h.Step(62)
	if got := h.Snapshot().Score; got != 6 {
		t.Errorf("score = %d, want 6", got)
	}
}

func TestFirstObstacleAfterDelay(t *testing.T) {
	g, h := newGame(t)
	h.Step(90)
	if g.obstacles.Len() != 0 {
		t.Fatalf("obstacle spawned before 1500ms")
	}
	h.Step(5)
	if g.obstacles.Len() != 1 {
		t.Fatalf("obstacles = %d after 1500ms", g.obstacles.Len())
	}
	e := g.obstacles.All()[0]
	if e.Tag != "pipe" && e.Tag != "bullet" {
		t.Errorf("unexpected obstacle %q", e.Tag)
	}
	if e.Pos.X() < 380 || e.Vel.X() >= 0 {
		t.Errorf("obstacle at x=%v vel=%v", e.Pos.X(), e.Vel)
	}
}

func TestBulletHitsStandingRunner(t *testing.T) {
	g, h := newGame(t)
	g.obstacles.Add(obstacle("bullet", 40, 320, 65, 45))
	h.Step(1)
	if h.Session.State() != engine.StateDying {
		t.Fatalf("state = %v, want dying", h.Session.State())
	}
	if h.Count(engine.CueExplosion) != 1 || h.Count(engine.CueGameOver) != 1 {
		t.Errorf("cues: explosion %d, game over %d", h.Count(engine.CueExplosion), h.Count(engine.CueGameOver))
	}

	h.Step(70)
	if h.Session.State() != engine.StateEnded {
		t.Errorf("state = %v after death animation", h.Session.State())
	}
}

func TestCrouchDucksBullet(t *testing.T) {
	g, h := newGame(t)
	h.Session.OnDirectional(core.DirDown)
	h.Step(1)
	if !g.Crouching() {
		t.Fatal("not crouching")
	}
	g.obstacles.Add(obstacle("bullet", 40, 320, 65, 45))
	h.Step(1)
	if h.Session.State() != engine.StateActive {
		t.Errorf("state = %v, crouch should clear the bullet", h.Session.State())
	}
}

func TestPaddingForgivesGrazes(t *testing.T) {
	g, h := newGame(t)
	// Overlaps the runner's box by 4 units, inside the padding.
	g.obstacles.Add(obstacle("pipe", 86, 340, 40, 50))
	h.Step(1)
	if h.Session.State() != engine.StateActive {
		t.Errorf("state = %v after a graze", h.Session.State())
	}
}
