package fruitcatch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/engine/enginetest"
)

func newGame(t *testing.T, cfg config.FruitCatchConfig) (*Game, *enginetest.Harness) {
	t.Helper()
	g, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g, enginetest.Start(t, g, engine.Options{})
}

// drop puts an item just above the spear tip of the middle lane.
func drop(g *Game, tag string, value float64, harm engine.Harm) {
	g.items.Add(&engine.Entity{
		Kind: engine.KindItem, Tag: tag, Value: value, Harm: harm,
		Pos: mgl64.Vec2{180, 300}, Size: mgl64.Vec2{40, 40}, SpeedMult: 1,
	})
}

func TestCatchStacksFruit(t *testing.T) {
	g, h := newGame(t, config.DefaultFruitCatchConfig())

	drop(g, "apple", 100, engine.HarmNone)
	h.Step(1)
	if g.Stack() != 1 {
		t.Fatalf("stack = %d, want 1", g.Stack())
	}
	if got := h.Snapshot().Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
	if h.Count(engine.CueCatch) != 1 {
		t.Errorf("catch cues = %d", h.Count(engine.CueCatch))
	}
}

func TestFiveStackedAreEaten(t *testing.T) {
	g, h := newGame(t, config.DefaultFruitCatchConfig())
	for i := 0; i < 5; i++ {
		drop(g, "apple", 100, engine.HarmNone)
		h.Step(1)
	}
	if g.Stack() != 0 {
		t.Errorf("stack = %d, want 0 after eating", g.Stack())
	}
	if got := h.Snapshot().Score; got != 1000 {
		t.Errorf("score = %d, want 1000", got)
	}
	if h.Count(engine.CueEat) != 1 {
		t.Errorf("eat cues = %d", h.Count(engine.CueEat))
	}
}

func TestBombClearsStack(t *testing.T) {
	g, h := newGame(t, config.DefaultFruitCatchConfig())
	drop(g, "apple", 100, engine.HarmNone)
	h.Step(1)
	drop(g, "banana", 200, engine.HarmNone)
	h.Step(1)

	drop(g, TagBomb, 0, engine.HarmHazard)
	h.Step(1)
	if g.Stack() != 0 {
		t.Errorf("stack = %d after bomb", g.Stack())
	}
	if got := h.Snapshot().Score; got != 50 {
		t.Errorf("score = %d, want 300-250", got)
	}
	if h.Count(engine.CueExplosion) != 1 {
		t.Errorf("explosions = %d", h.Count(engine.CueExplosion))
	}
	if h.Snapshot().Invulnerable {
		t.Error("bombs grant no grace period")
	}
}

func TestShieldAbsorbsBomb(t *testing.T) {
	g, h := newGame(t, config.DefaultFruitCatchConfig())
	drop(g, "apple", 100, engine.HarmNone)
	h.Step(1)
	drop(g, TagShield, 0, engine.HarmNone)
	h.Step(1)
	if !h.Snapshot().Shielded {
		t.Fatal("shield not active")
	}

	drop(g, TagBomb, 0, engine.HarmHazard)
	h.Step(1)
	if got := h.Snapshot().Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
	if g.Stack() != 1 {
		t.Errorf("stack = %d, want 1", g.Stack())
	}
	if h.Count(engine.CueExplosion) != 0 {
		t.Errorf("explosions = %d", h.Count(engine.CueExplosion))
	}
	if g.items.Len() != 0 {
		t.Error("absorbed bomb not removed")
	}
}

func TestGunShootsBombs(t *testing.T) {
	g, h := newGame(t, config.DefaultFruitCatchConfig())
	drop(g, TagGun, 0, engine.HarmNone)
	h.Step(1)

	g.items.Add(&engine.Entity{
		Kind: engine.KindItem, Tag: TagBomb, Harm: engine.HarmHazard,
		Pos: mgl64.Vec2{180, 100}, Size: mgl64.Vec2{40, 40}, SpeedMult: 1,
	})
	h.Step(40)

	if h.Count(engine.CueShoot) < 2 {
		t.Errorf("shots = %d", h.Count(engine.CueShoot))
	}
	if got := h.Snapshot().Score; got != 50 {
		t.Errorf("score = %d, want 50 for a shot bomb", got)
	}
	if g.items.Len() != 0 {
		t.Error("bomb survived the gun")
	}
}

func TestPositionalSnapsToLane(t *testing.T) {
	g, h := newGame(t, config.DefaultFruitCatchConfig())
	h.Session.OnPositional(390, 0)
	h.Step(1)
	if g.Lane() != 2 {
		t.Fatalf("lane = %d, want 2", g.Lane())
	}
	if got := h.Snapshot().PlayerCenter().X(); got != 333 {
		t.Errorf("basket center = %v, want 333", got)
	}
}

func TestNoBombsOrGrapesAtLevelOne(t *testing.T) {
	cfg := config.DefaultFruitCatchConfig()
	cfg.Progression.LevelThreshold = 0
	g, h := newGame(t, cfg)

	for i := 0; i < 30000/16; i++ {
		h.Step(1)
		for _, e := range g.items.All() {
			if e.Tag == TagBomb || e.Tag == "grape" {
				t.Fatalf("%s spawned at level 1", e.Tag)
			}
		}
	}
}

func TestRoundIsTimed(t *testing.T) {
	g, err := NewWithConfig(config.DefaultFruitCatchConfig())
	if err != nil {
		t.Fatal(err)
	}
	h := enginetest.Start(t, g, engine.DefaultOptions(g))
	if snap := h.Snapshot(); !snap.Timed || snap.TimeLeft != 60 {
		t.Fatalf("Timed = %v, TimeLeft = %v", snap.Timed, snap.TimeLeft)
	}

	ended := false
	h.Session.SetGameEndCallback(func(int, int) { ended = true })
	h.Step(61000 / 16)
	if !ended || h.Session.State() != engine.StateEnded {
		t.Errorf("round still running: state %v", h.Session.State())
	}
}
