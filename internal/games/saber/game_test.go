package saber

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/engine/enginetest"
)

func newGame(t *testing.T) (*Game, *enginetest.Harness) {
	t.Helper()
	g, err := NewWithConfig(config.DefaultSaberConfig())
	if err != nil {
		t.Fatal(err)
	}
	return g, enginetest.Start(t, g, engine.Options{})
}

func walker(g *Game, tag string, x, value float64) *engine.Entity {
	return g.enemies.Add(&engine.Entity{
		Kind: engine.KindEnemy, Tag: tag, Harm: engine.HarmDamaging,
		Pos: mgl64.Vec2{x, 250}, Size: mgl64.Vec2{45, 75}, Value: value, SpeedMult: 1,
	})
}

func TestSwingCutsEverythingInReach(t *testing.T) {
	g, h := newGame(t)
	a := walker(g, "zaku", 150, 100)
	b := walker(g, "zaku", 190, 100)
	far := walker(g, "zaku", 300, 100)

	h.Session.OnAction()
	h.Step(1)
	if !a.Gone || !b.Gone || far.Gone {
		t.Fatalf("gone = %v %v %v", a.Gone, b.Gone, far.Gone)
	}
	if g.Combo() != 2 {
		t.Errorf("combo = %d, want 2", g.Combo())
	}
	// 100+10 then 100+20.
	if got := h.Snapshot().Score; got != 230 {
		t.Errorf("score = %d, want 230", got)
	}
	if h.Count(engine.CueShoot) != 1 || h.Count(engine.CueExplosion) != 2 {
		t.Errorf("shoot = %d, explosion = %d", h.Count(engine.CueShoot), h.Count(engine.CueExplosion))
	}
}

func TestSwingCooldown(t *testing.T) {
	g, h := newGame(t)
	h.Session.OnAction()
	h.Step(1)
	if !g.Attacking() {
		t.Fatal("not attacking after action")
	}
	h.Session.OnAction()
	h.Step(1)
	if h.Count(engine.CueShoot) != 1 {
		t.Errorf("swung %d times during cooldown", h.Count(engine.CueShoot))
	}
	h.Step(14)
	if g.Attacking() {
		t.Error("swing outlasted its frames")
	}
}

func TestEmptySwingBreaksCombo(t *testing.T) {
	g, h := newGame(t)
	walker(g, "zaku", 150, 100)
	h.Session.OnAction()
	h.Step(20)
	if g.Combo() != 1 {
		t.Fatalf("combo = %d", g.Combo())
	}
	h.Session.OnAction()
	h.Step(1)
	if g.Combo() != 0 {
		t.Errorf("combo = %d after a miss", g.Combo())
	}
}

func TestComboBonusIsCapped(t *testing.T) {
	g, h := newGame(t)
	g.combo = 30
	walker(g, "zaku", 150, 100)
	h.Session.OnAction()
	h.Step(1)
	if got := h.Snapshot().Score; got != 300 {
		t.Errorf("score = %d, want 100+200", got)
	}
}

func TestWalkingIntoPilotCosts(t *testing.T) {
	g, h := newGame(t)
	walker(g, "boss", 150, 500)
	h.Session.OnAction()
	h.Step(20)

	e := walker(g, "zaku", 140, 100)
	h.Step(2)
	if !e.Gone {
		t.Fatal("no contact")
	}
	snap := h.Snapshot()
	if !snap.Invulnerable {
		t.Error("contact did not grant invulnerability")
	}
	// 510 from the kill, -150 for the contact, plus the running time bonus.
	if snap.Score < 360 || snap.Score > 362 {
		t.Errorf("score = %d", snap.Score)
	}
	if g.Combo() != 0 {
		t.Errorf("combo = %d after contact", g.Combo())
	}
}

func TestNoContactWhileSwinging(t *testing.T) {
	g, h := newGame(t)
	h.Session.OnAction()
	h.Step(1)
	e := walker(g, "zaku", 100, 100)
	h.Step(2)
	if e.Gone {
		t.Error("enemy touched the pilot mid-swing")
	}
	if h.Count(engine.CueExplosion) != 0 {
		t.Errorf("explosions = %d", h.Count(engine.CueExplosion))
	}
}

func TestEscapeCosts(t *testing.T) {
	g, h := newGame(t)
	walker(g, "boss", 150, 500)
	h.Session.OnAction()
	h.Step(20)
	before := h.Snapshot().Score

	walker(g, "zaku", -60, 100)
	h.Step(2)
	if g.enemies.Len() != 0 {
		t.Fatalf("enemies = %d", g.enemies.Len())
	}
	if got := before - h.Snapshot().Score; got != 200 {
		t.Errorf("lost %d, want 200", got)
	}
}

func TestItemsOnlyNeedToLineUp(t *testing.T) {
	g, h := newGame(t)
	star := g.items.Add(&engine.Entity{
		Kind: engine.KindItem, Tag: "chicken", Value: 1000,
		Pos: mgl64.Vec2{142, 20}, Size: mgl64.Vec2{25, 25}, SpeedMult: 1,
	})
	h.Step(2)
	if !star.Gone {
		t.Fatal("item above the pilot was not collected")
	}
	if got := h.Snapshot().Score; got != 1000 {
		t.Errorf("score = %d", got)
	}
	if h.Count(engine.CueChicken) != 1 {
		t.Errorf("chicken cues = %d", h.Count(engine.CueChicken))
	}
}

func TestEnemiesSpawnOffscreen(t *testing.T) {
	g, h := newGame(t)
	h.Step(1850 / 16)
	if g.enemies.Len() != 1 {
		t.Fatalf("enemies = %d", g.enemies.Len())
	}
	e := g.enemies.All()[0]
	if e.Pos.X() < 400 || e.Kind != engine.KindEnemy {
		t.Errorf("enemy = %+v", e)
	}
}
