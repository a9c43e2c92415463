package defense

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/engine/enginetest"
)

func newGame(t *testing.T) (*Game, *enginetest.Harness) {
	t.Helper()
	g, err := NewWithConfig(config.DefaultDefenseConfig())
	if err != nil {
		t.Fatal(err)
	}
	return g, enginetest.Start(t, g, engine.Options{})
}

// enemy adds a motionless enemy centered at (x, y).
func enemy(g *Game, x, y, size float64, hp int, value, damage float64) *engine.Entity {
	e := &engine.Entity{
		Kind: engine.KindEnemy, Tag: "soldier", Harm: engine.HarmDamaging,
		Size: mgl64.Vec2{size, size}, HP: hp, Value: value, Damage: damage,
	}
	e.SetCenter(mgl64.Vec2{x, y})
	return g.enemies.Add(e)
}

func TestPointerAimsTurret(t *testing.T) {
	g, h := newGame(t)
	h.Session.OnPositional(150, 300)
	h.Step(1)
	if got := g.Angle(); math.Abs(got-math.Pi/4) > 1e-9 {
		t.Errorf("angle = %v, want pi/4", got)
	}

	for i := 0; i < 40; i++ {
		h.Session.OnDirectional(core.DirDown)
		h.Step(1)
	}
	if got := g.Angle(); got != math.Pi/2 {
		t.Errorf("angle = %v, want clamped to pi/2", got)
	}
}

func TestShotKillsSoldier(t *testing.T) {
	g, h := newGame(t)
	e := enemy(g, 200, 200, 20, 1, 10, 10)

	h.Session.OnAction()
	h.Step(1)
	if h.Count(engine.CueShoot) != 1 || g.shots.Len() != 1 {
		t.Fatalf("shots = %d, cues = %d", g.shots.Len(), h.Count(engine.CueShoot))
	}
	if v := g.shots.All()[0].Vel.Len(); math.Abs(v-400) > 1e-9 {
		t.Errorf("shot speed = %v", v)
	}

	h.Step(30)
	if !e.Gone {
		t.Fatal("soldier survived")
	}
	if got := h.Snapshot().Score; got != 10 {
		t.Errorf("score = %d, want 10", got)
	}
	if g.shots.Len() != 0 {
		t.Error("shot not spent")
	}
}

func TestTankNeedsThreeHits(t *testing.T) {
	g, h := newGame(t)
	tank := enemy(g, 250, 200, 40, 3, 50, 20)

	for i := 0; i < 2; i++ {
		h.Session.OnAction()
		h.Step(40)
	}
	if tank.Gone || tank.HP != 1 {
		t.Fatalf("tank hp = %d after two hits", tank.HP)
	}
	h.Session.OnAction()
	h.Step(40)
	if !tank.Gone {
		t.Fatal("tank survived three hits")
	}
	if got := h.Snapshot().Score; got != 50 {
		t.Errorf("score = %d, want 50", got)
	}
}

func TestMissileSplash(t *testing.T) {
	g, h := newGame(t)

	h.Session.OnSecondary()
	h.Step(1)
	if g.shots.Len() != 0 {
		t.Fatal("missile fired without stock")
	}

	g.missiles = 1
	enemy(g, 200, 200, 20, 1, 10, 10)
	enemy(g, 200, 250, 40, 3, 50, 20)
	enemy(g, 230, 170, 20, 1, 10, 10)
	far := enemy(g, 380, 40, 20, 1, 10, 10)

	h.Session.OnSecondary()
	h.Step(20)
	if g.Missiles() != 0 {
		t.Errorf("missiles = %d", g.Missiles())
	}
	if g.enemies.Len() != 1 || g.enemies.All()[0] != far {
		t.Errorf("survivors = %d, want only the far soldier", g.enemies.Len())
	}
	if got := h.Snapshot().Score; got != 70 {
		t.Errorf("score = %d, want 70", got)
	}
}

func TestMissileEarnedByScore(t *testing.T) {
	g, h := newGame(t)
	enemy(g, 120, 200, 20, 1, 400, 10)
	h.Session.OnAction()
	h.Step(20)
	if got := h.Snapshot().Score; got != 400 {
		t.Fatalf("score = %d", got)
	}
	if g.Missiles() != 1 {
		t.Errorf("missiles = %d, want 1", g.Missiles())
	}
	if h.Count(engine.CueUpgrade) != 1 {
		t.Errorf("upgrade cues = %d", h.Count(engine.CueUpgrade))
	}
}

func TestBaseTakesDamageAndFalls(t *testing.T) {
	g, h := newGame(t)
	e := enemy(g, 55, 300, 20, 1, 10, 10)
	e.Vel = mgl64.Vec2{-80, 0}
	h.Step(10)
	if g.HP() != 90 {
		t.Fatalf("hp = %v, want 90", g.HP())
	}
	if h.Count(engine.CueExplosion) != 1 {
		t.Errorf("explosions = %d", h.Count(engine.CueExplosion))
	}

	g.hp = 10
	e = enemy(g, 55, 100, 20, 1, 10, 10)
	e.Vel = mgl64.Vec2{-80, 0}
	h.Step(10)
	if h.Session.State() != engine.StateEnded {
		t.Errorf("state = %v, want ended at 0 hp", h.Session.State())
	}
	if g.HP() != 0 {
		t.Errorf("hp = %v", g.HP())
	}
}

func TestLevelUpAddsTurretThatFires(t *testing.T) {
	g, h := newGame(t)
	enemy(g, 120, 200, 20, 1, 150, 10)
	h.Session.OnAction()
	h.Step(20)
	if h.Snapshot().Level != 2 {
		t.Fatalf("level = %d", h.Snapshot().Level)
	}
	if g.Turrets() != 1 || g.turrets.Len() != 1 {
		t.Fatalf("turrets = %d", g.Turrets())
	}
	if y := g.turrets.All()[0].Center().Y(); y != 40 {
		t.Errorf("turret y = %v, want 40", y)
	}

	target := enemy(g, 300, 40, 20, 1, 10, 10)
	shots := h.Count(engine.CueShoot)
	// Level 2 turrets fire every 1400ms.
	h.Step(1500 / 16)
	if h.Count(engine.CueShoot) <= shots {
		t.Fatal("turret never fired")
	}
	h.Step(60)
	if !target.Gone {
		t.Error("turret shot missed a motionless target")
	}
}

func TestMissileAcrossSeveralLevelsAddsEveryTurret(t *testing.T) {
	g, h := newGame(t)
	for _, dy := range []float64{-6, -2, 2, 6} {
		enemy(g, 200, 200+dy, 20, 1, 100, 10)
	}
	g.missiles = 1
	h.Session.OnSecondary()
	h.Step(30)

	snap := h.Snapshot()
	if snap.Score != 400 || snap.Level != 3 {
		t.Fatalf("score/level = %d/%d, want 400/3", snap.Score, snap.Level)
	}
	if g.Turrets() != 2 || g.turrets.Len() != 2 {
		t.Errorf("turrets = %d, want one per level gained", g.Turrets())
	}
	if h.Count(engine.CueLevelUp) != 1 {
		t.Errorf("level-up cues = %d", h.Count(engine.CueLevelUp))
	}
}

func TestEnemiesSpawnOffscreen(t *testing.T) {
	g, h := newGame(t)
	h.Step(1900 / 16)
	if g.enemies.Len() != 1 {
		t.Fatalf("enemies = %d after the first interval", g.enemies.Len())
	}
	e := g.enemies.All()[0]
	if e.Center().X() < 400 {
		t.Errorf("enemy spawned on screen at x=%v", e.Center().X())
	}
	if y := e.Center().Y(); y < 30 || y > 370 {
		t.Errorf("enemy y = %v", y)
	}
	if e.Vel.X() >= 0 {
		t.Errorf("enemy vel = %v", e.Vel)
	}
}
