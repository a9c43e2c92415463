// Package render draws engine snapshots onto character surfaces. The field
// is scaled from world units to cells; each entity becomes a block of its
// tag's glyph.
package render

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
)

// Minimum surface size for drawing the field.
const (
	MinWidth  = 20
	MinHeight = 8
)

// hudRows is the number of rows above the field.
const hudRows = 2

// Border characters.
const (
	BorderHoriz = '─'
)

// Glyph is how one entity tag looks.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// DefaultGlyphs covers every tag the bundled games spawn.
var DefaultGlyphs = map[string]Glyph{
	// birdstrike
	"plane":   {'A', core.ColorBrightWhite},
	"bird":    {'v', core.ColorWhite},
	"bigbird": {'W', core.ColorBrightWhite},
	"star":    {'*', core.ColorBrightYellow},
	"diamond": {'◆', core.ColorBrightCyan},
	"chicken": {'C', core.ColorOrange},

	// fruitcatch
	"basket": {'U', core.ColorYellow},
	"apple":  {'o', core.ColorBrightRed},
	"banana": {')', core.ColorBrightYellow},
	"grape":  {'%', core.ColorMagenta},
	"bomb":   {'B', core.ColorGray},
	"gun":    {'G', core.ColorGray},
	"shield": {'S', core.ColorBrightCyan},

	// dino
	"dino":   {'D', core.ColorGreen},
	"pipe":   {'|', core.ColorBrightGreen},
	"bullet": {'=', core.ColorWhite},
	"cloud":  {'~', core.ColorGray},

	// defense
	"turret":    {'T', core.ColorBrightBlue},
	"ai-turret": {'t', core.ColorBlue},
	"soldier":   {'s', core.ColorRed},
	"tank":      {'H', core.ColorBrightRed},
	"shot":      {'•', core.ColorYellow},
	"missile":   {'!', core.ColorOrange},

	// flyer
	"flyer":  {'O', core.ColorBrightMagenta},
	"ground": {'▲', core.ColorGreen},
	"air":    {'v', core.ColorGray},
	"wall":   {'█', core.ColorGray},
	"waddle": {'w', core.ColorYellow},
	"cake":   {'c', core.ColorBrightMagenta},

	// saber
	"pilot": {'P', core.ColorBrightWhite},
	"zaku":  {'Z', core.ColorGreen},
	"boss":  {'M', core.ColorBrightRed},

	// maze
	"runner": {'@', core.ColorBrightRed},
	"goomba": {'g', core.ColorOrange},
	"coin":   {'$', core.ColorBrightYellow},
}

// kindGlyphs is the fallback for tags missing from the table.
var kindGlyphs = map[engine.Kind]Glyph{
	engine.KindObstacle:   {'#', core.ColorWhite},
	engine.KindItem:       {'*', core.ColorYellow},
	engine.KindProjectile: {'•', core.ColorWhite},
	engine.KindEnemy:      {'X', core.ColorRed},
	engine.KindParticle:   {'.', core.ColorGray},
}

// Renderer implements engine.Renderer for character surfaces.
type Renderer struct {
	// Glyphs maps entity tags to their look. Nil uses DefaultGlyphs.
	Glyphs map[string]Glyph
}

// New returns a renderer using DefaultGlyphs.
func New() *Renderer {
	return &Renderer{Glyphs: DefaultGlyphs}
}

// GlyphFor returns the glyph of e. Unknown tags fall back to the entity
// kind, and an explicit entity color wins over the table.
func (r *Renderer) GlyphFor(e engine.Entity) Glyph {
	glyphs := r.Glyphs
	if glyphs == nil {
		glyphs = DefaultGlyphs
	}
	g, ok := glyphs[e.Tag]
	if !ok {
		g, ok = kindGlyphs[e.Kind]
		if !ok {
			g = Glyph{'?', core.ColorDefault}
		}
	}
	if e.Color != core.ColorDefault {
		g.Color = e.Color
	}
	return g
}

// Draw renders snap onto dst. Nothing is kept between calls.
func (r *Renderer) Draw(dst engine.Surface, snap engine.Snapshot) {
	blank(dst)

	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		centered(dst, dst.Height()/2-1, "Window too small", core.ColorDefault)
		centered(dst, dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight), core.ColorGray)
		return
	}

	v := newViewport(dst, snap)
	r.renderHUD(dst, snap)
	r.renderEntities(dst, v, snap)
	r.renderPlayer(dst, v, snap)
	r.renderEffects(dst, v, snap)
	r.renderStatus(dst, snap)
	r.renderOverlay(dst, snap)
}

// viewport maps world units onto the field rows of a surface.
type viewport struct {
	sx, sy float64
	top    int
	w, h   int
}

func newViewport(dst engine.Surface, snap engine.Snapshot) viewport {
	w, h := dst.Width(), dst.Height()-hudRows
	ww, wh := snap.Width, snap.Height
	if ww <= 0 {
		ww = engine.DefaultWidth
	}
	if wh <= 0 {
		wh = engine.DefaultHeight
	}
	return viewport{sx: float64(w) / ww, sy: float64(h) / wh, top: hudRows, w: w, h: h}
}

// cell converts a world point to a surface cell.
func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor(x * v.sx)), v.top + int(math.Floor(y*v.sy))
}

// block converts a world box to a cell rectangle at least one cell in size.
func (v viewport) block(b core.Box) core.Rect {
	x0, y0 := v.cell(b.X, b.Y)
	x1, y1 := v.cell(b.Right(), b.Bottom())
	return core.Rect{X: x0, Y: y0, W: max(1, x1-x0), H: max(1, y1-y0)}
}

// CellToWorld maps a surface cell to the world point at its middle, for
// hosts that turn mouse clicks into positional input. ok is false for
// cells outside the field.
func CellToWorld(surfaceW, surfaceH, col, row int, worldW, worldH float64) (x, y float64, ok bool) {
	h := surfaceH - hudRows
	if surfaceW <= 0 || h <= 0 || col < 0 || col >= surfaceW || row < hudRows || row >= surfaceH {
		return 0, 0, false
	}
	x = (float64(col) + 0.5) * worldW / float64(surfaceW)
	y = (float64(row-hudRows) + 0.5) * worldH / float64(h)
	return x, y, true
}

// inField reports whether (x, y) lies below the HUD.
func (v viewport) inField(x, y int) bool {
	return x >= 0 && x < v.w && y >= v.top && y < v.top+v.h
}

func (v viewport) fill(dst engine.Surface, r core.Rect, g Glyph) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if v.inField(x, y) {
				dst.SetCell(x, y, g.Rune, g.Color)
			}
		}
	}
}

// renderHUD draws the title, score, level, best and time left.
func (r *Renderer) renderHUD(dst engine.Surface, snap engine.Snapshot) {
	left := fmt.Sprintf("%s  Score: %d", snap.Title, snap.Score)
	text(dst, 1, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf("Lv %d  Best %d", snap.Level, snap.Best)
	if snap.Timed {
		right = fmt.Sprintf("Time %d  %s", int(math.Ceil(snap.TimeLeft)), right)
	}
	text(dst, dst.Width()-utf8.RuneCountInString(right)-1, 0, right, core.ColorYellow)

	for x := range dst.Width() {
		dst.SetCell(x, 1, BorderHoriz, core.ColorGray)
	}
}

func (r *Renderer) renderEntities(dst engine.Surface, v viewport, snap engine.Snapshot) {
	for _, e := range snap.Entities {
		if e.Gone {
			continue
		}
		v.fill(dst, v.block(e.Box()), r.GlyphFor(e))
	}
}

// renderPlayer draws the player on top of the entities. The player blinks
// while invulnerable and turns cyan behind a shield.
func (r *Renderer) renderPlayer(dst engine.Surface, v viewport, snap engine.Snapshot) {
	if snap.Player == nil {
		return
	}
	if snap.Invulnerable && snap.Frame%8 < 4 {
		return
	}
	g := r.GlyphFor(*snap.Player)
	if snap.Shielded {
		g.Color = core.ColorBrightCyan
	}
	v.fill(dst, v.block(snap.Player.Box()), g)
}

func (r *Renderer) renderEffects(dst engine.Surface, v viewport, snap engine.Snapshot) {
	for _, fx := range snap.Effects {
		x, y := v.cell(fx.Pos.X(), fx.Pos.Y())
		if fx.Text != "" {
			i := 0
			for _, ch := range fx.Text {
				if v.inField(x+i, y) {
					dst.SetCell(x+i, y, ch, fx.Color)
				}
				i++
			}
			continue
		}
		if fx.Glyph != 0 && v.inField(x, y) {
			dst.SetCell(x, y, fx.Glyph, fx.Color)
		}
	}
}

// renderStatus prints the game's own lines. Games without a player (the
// quiz) get them centered in the field.
func (r *Renderer) renderStatus(dst engine.Surface, snap engine.Snapshot) {
	if snap.Player == nil {
		top := hudRows + (dst.Height()-hudRows-len(snap.Status))/2
		for i, line := range snap.Status {
			centered(dst, top+i, line, core.ColorBrightWhite)
		}
		return
	}
	for i, line := range snap.Status {
		text(dst, 1, hudRows+i, line, core.ColorGray)
	}
}

// renderOverlay draws pause and game over messages.
func (r *Renderer) renderOverlay(dst engine.Surface, snap engine.Snapshot) {
	mid := dst.Height() / 2
	switch {
	case snap.Paused:
		centered(dst, mid, "PAUSED", core.ColorBrightYellow)
	case snap.State == engine.StateDying || snap.State == engine.StateEnded:
		centered(dst, mid-1, "GAME OVER", core.ColorBrightRed)
		centered(dst, mid+1, fmt.Sprintf("Score: %d  Level: %d", snap.Score, snap.Level), core.ColorBrightWhite)
	}
}

func blank(dst engine.Surface) {
	for y := range dst.Height() {
		for x := range dst.Width() {
			dst.SetCell(x, y, ' ', core.ColorDefault)
		}
	}
}

func text(dst engine.Surface, x, y int, s string, c core.Color) {
	i := 0
	for _, ch := range s {
		dst.SetCell(x+i, y, ch, c)
		i++
	}
}

func centered(dst engine.Surface, y int, s string, c core.Color) {
	text(dst, (dst.Width()-utf8.RuneCountInString(s))/2, y, s, c)
}
