package render

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
)

func entity(tag string, kind engine.Kind, x, y, size float64) engine.Entity {
	return engine.Entity{Tag: tag, Kind: kind, Pos: mgl64.Vec2{x, y}, Size: mgl64.Vec2{size, size}}
}

func baseSnapshot() engine.Snapshot {
	player := entity("plane", engine.KindObstacle, 0, 0, 40)
	return engine.Snapshot{
		Title:  "Bird Strike",
		State:  engine.StateActive,
		Width:  400,
		Height: 400,
		Level:  1,
		Player: &player,
	}
}

func TestGlyphFor(t *testing.T) {
	r := New()
	tests := []struct {
		name string
		e    engine.Entity
		want Glyph
	}{
		{"known tag", entity("bird", engine.KindObstacle, 0, 0, 1), Glyph{'v', core.ColorWhite}},
		{"unknown tag falls back to kind", entity("ufo", engine.KindEnemy, 0, 0, 1), Glyph{'X', core.ColorRed}},
		{"entity color wins", engine.Entity{Tag: "shot", Color: core.ColorCyan}, Glyph{'•', core.ColorCyan}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.GlyphFor(tt.e); got != tt.want {
				t.Errorf("GlyphFor = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDrawScalesToSurface(t *testing.T) {
	scr := core.NewScreen(40, 22)
	snap := baseSnapshot()
	snap.Entities = []engine.Entity{entity("bird", engine.KindObstacle, 200, 200, 40)}

	New().Draw(scr, snap)

	// 40 columns and 20 field rows for 400 units: 10 units per column,
	// 20 per row, field starting below the two HUD rows.
	if got := scr.GetCell(0, 2); got.Rune != 'A' {
		t.Errorf("player cell = %q", got.Rune)
	}
	if got := scr.GetCell(3, 3); got.Rune != 'A' {
		t.Errorf("player far corner = %q", got.Rune)
	}
	if got := scr.GetCell(4, 2); got.Rune == 'A' {
		t.Error("player drawn wider than its box")
	}
	if got := scr.GetCell(20, 12); got.Rune != 'v' || got.Color != core.ColorWhite {
		t.Errorf("bird cell = %+v", got)
	}
}

func TestHUD(t *testing.T) {
	scr := core.NewScreen(60, 20)
	snap := baseSnapshot()
	snap.Score = 42
	snap.Best = 99
	snap.Timed = true
	snap.TimeLeft = 9.2
	New().Draw(scr, snap)

	row := scr.Row(0)
	for _, want := range []string{"Bird Strike", "Score: 42", "Time 10", "Lv 1", "Best 99"} {
		if !strings.Contains(row, want) {
			t.Errorf("HUD %q missing %q", row, want)
		}
	}
	if scr.Get(0, 1) != BorderHoriz {
		t.Error("no separator under the HUD")
	}
}

func TestInvulnerablePlayerBlinks(t *testing.T) {
	scr := core.NewScreen(40, 22)
	snap := baseSnapshot()
	snap.Invulnerable = true

	snap.Frame = 0
	New().Draw(scr, snap)
	if scr.Get(0, 2) == 'A' {
		t.Error("player drawn during the off phase")
	}
	snap.Frame = 4
	New().Draw(scr, snap)
	if scr.Get(0, 2) != 'A' {
		t.Error("player hidden during the on phase")
	}
}

func TestEffects(t *testing.T) {
	scr := core.NewScreen(40, 22)
	snap := baseSnapshot()
	snap.Effects = []engine.Effect{
		{Pos: mgl64.Vec2{200, 300}, Text: "+100", Color: core.ColorBrightYellow},
		{Pos: mgl64.Vec2{100, 100}, Glyph: '·', Color: core.ColorOrange},
	}
	New().Draw(scr, snap)
	if got := scr.Row(17)[20:24]; got != "+100" {
		t.Errorf("float text = %q", got)
	}
	if got := scr.GetCell(10, 7); got.Rune != '·' || got.Color != core.ColorOrange {
		t.Errorf("particle = %+v", got)
	}
}

func TestOverlay(t *testing.T) {
	scr := core.NewScreen(40, 22)
	snap := baseSnapshot()
	snap.State = engine.StateEnded
	snap.Score = 120
	New().Draw(scr, snap)
	if !strings.Contains(scr.Row(10), "GAME OVER") {
		t.Errorf("row 10 = %q", scr.Row(10))
	}
	if !strings.Contains(scr.Row(12), "Score: 120") {
		t.Errorf("row 12 = %q", scr.Row(12))
	}

	snap.State = engine.StateActive
	snap.Paused = true
	New().Draw(scr, snap)
	if !strings.Contains(scr.Row(11), "PAUSED") {
		t.Errorf("row 11 = %q", scr.Row(11))
	}
}

func TestStatusWithoutPlayerIsCentered(t *testing.T) {
	scr := core.NewScreen(40, 22)
	snap := baseSnapshot()
	snap.Player = nil
	snap.Status = []string{"Tier 2", "3 + 4 = ?"}
	New().Draw(scr, snap)
	if got := strings.TrimSpace(scr.Row(11)); got != "Tier 2" {
		t.Errorf("row 11 = %q", got)
	}
	if got := strings.TrimSpace(scr.Row(12)); got != "3 + 4 = ?" {
		t.Errorf("row 12 = %q", got)
	}
}

func TestTooSmall(t *testing.T) {
	scr := core.NewScreen(12, 5)
	New().Draw(scr, baseSnapshot())
	if !strings.Contains(scr.String(), "Need 20x8") {
		t.Errorf("screen = %q", scr.String())
	}
}

func TestCellToWorld(t *testing.T) {
	tests := []struct {
		col, row int
		x, y     float64
		ok       bool
	}{
		{0, 2, 5, 10, true},
		{39, 21, 395, 390, true},
		{20, 12, 205, 210, true},
		{5, 1, 0, 0, false},
		{40, 5, 0, 0, false},
		{-1, 5, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := CellToWorld(40, 22, tt.col, tt.row, 400, 400)
		if ok != tt.ok || x != tt.x || y != tt.y {
			t.Errorf("CellToWorld(%d, %d) = (%v, %v, %v), want (%v, %v, %v)", tt.col, tt.row, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}
}
