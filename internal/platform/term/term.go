// Package term hosts arcade sessions directly on a tcell screen, as an
// alternative to the Bubble Tea frontend.
package term

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/platform"
	"github.com/vovakirdan/minigames/internal/render"
)

var colors = map[core.Color]tcell.Color{
	core.ColorRed:           tcell.ColorMaroon,
	core.ColorGreen:         tcell.ColorGreen,
	core.ColorYellow:        tcell.ColorOlive,
	core.ColorBlue:          tcell.ColorNavy,
	core.ColorMagenta:       tcell.ColorPurple,
	core.ColorCyan:          tcell.ColorTeal,
	core.ColorWhite:         tcell.ColorSilver,
	core.ColorBrightRed:     tcell.ColorRed,
	core.ColorBrightGreen:   tcell.ColorLime,
	core.ColorBrightYellow:  tcell.ColorYellow,
	core.ColorBrightBlue:    tcell.ColorBlue,
	core.ColorBrightMagenta: tcell.ColorFuchsia,
	core.ColorBrightCyan:    tcell.ColorAqua,
	core.ColorBrightWhite:   tcell.ColorWhite,
	core.ColorOrange:        tcell.ColorOrange,
	core.ColorGray:          tcell.ColorGray,
}

// surface adapts a tcell screen to engine.Surface.
type surface struct {
	screen tcell.Screen
}

func (s surface) Width() int {
	w, _ := s.screen.Size()
	return w
}

func (s surface) Height() int {
	_, h := s.screen.Size()
	return h
}

func (s surface) SetCell(x, y int, r rune, c core.Color) {
	style := tcell.StyleDefault
	if tc, ok := colors[c]; ok {
		style = style.Foreground(tc)
	}
	s.screen.SetContent(x, y, r, nil, style)
}

// Runner drives one game's sessions on a screen. Events and frames are
// separate calls so tests can feed a simulation screen.
type Runner struct {
	screen tcell.Screen
	host   *engine.Host
	gameID string
	config core.RuntimeConfig
	deps   platform.Deps
	log    *log.Logger

	session *engine.Session
	rules   engine.Rules
	answer  []rune
}

// NewRunner starts the first session of gameID on screen.
func NewRunner(screen tcell.Screen, gameID string, cfg core.RuntimeConfig, deps platform.Deps) (*Runner, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	r := &Runner{
		screen: screen,
		host:   &engine.Host{},
		gameID: gameID,
		config: cfg,
		deps:   deps,
		log:    deps.Logger.WithPrefix("term"),
	}
	if err := r.launch(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Runner) launch() error {
	s, rules, err := platform.Launch(r.host, r.gameID, r.config, r.deps)
	if err != nil {
		return err
	}
	r.session, r.rules = s, rules
	r.answer = r.answer[:0]
	return nil
}

// Session returns the running session.
func (r *Runner) Session() *engine.Session { return r.session }

// Stop ends the running session.
func (r *Runner) Stop() { r.host.Stop() }

// Frame advances the session to now and redraws the screen.
func (r *Runner) Frame(now time.Time) {
	r.session.Frame(now)
	r.screen.Clear()
	r.session.Draw(surface{r.screen})

	w, h := r.screen.Size()
	hint := ""
	switch {
	case r.session.State() == engine.StateEnded:
		hint = "R: Restart  Q: Quit"
	case platform.TakesText(r.rules):
		hint = "Answer: " + string(r.answer) + "_"
	}
	if hint != "" {
		x := (w - len([]rune(hint))) / 2
		for i, ch := range hint {
			r.screen.SetContent(x+i, h-1, ch, nil, tcell.StyleDefault.Foreground(tcell.ColorYellow))
		}
	}
	r.screen.Show()
}

// HandleEvent applies one terminal event and reports whether the user
// asked to quit.
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ev)
	case *tcell.EventMouse:
		r.handleMouse(ev)
	case *tcell.EventResize:
		r.screen.Sync()
	}
	return false
}

func (r *Runner) handleKey(ev *tcell.EventKey) bool {
	if platform.TakesText(r.rules) && r.session.State() == engine.StateActive && r.editAnswer(ev) {
		return false
	}

	action := actionFor(ev)
	switch action {
	case core.ActionQuit:
		r.host.Stop()
		return true
	case core.ActionRestart:
		if r.session.State() == engine.StateEnded {
			if r.config.Seed != 0 {
				r.config.Seed++
			}
			if err := r.launch(); err != nil {
				r.log.Error("restart failed", "game", r.gameID, "err", err)
			}
		}
		return false
	}

	if d, ok := action.Direction(); ok {
		r.session.OnDirectional(d)
		return false
	}
	switch action {
	case core.ActionFire:
		r.session.OnAction()
	case core.ActionSecondary:
		r.session.OnSecondary()
	case core.ActionPause:
		r.session.TogglePause()
	}
	return false
}

// editAnswer handles digit entry for games that take typed answers.
func (r *Runner) editAnswer(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(r.answer) > 0 {
			r.answer = r.answer[:len(r.answer)-1]
		}
		return true
	case tcell.KeyEnter:
		if len(r.answer) > 0 {
			r.session.OnText(string(r.answer))
			r.answer = r.answer[:0]
		}
		return true
	case tcell.KeyRune:
		ch := ev.Rune()
		if (ch >= '0' && ch <= '9' && len(r.answer) < 8) || (ch == '-' && len(r.answer) == 0) {
			r.answer = append(r.answer, ch)
			return true
		}
	}
	return false
}

func (r *Runner) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 || !platform.TakesPointer(r.rules) {
		return
	}
	col, row := ev.Position()
	w, h := r.screen.Size()
	if x, y, ok := render.CellToWorld(w, h, col, row, engine.DefaultWidth, engine.DefaultHeight); ok {
		r.session.OnPositional(x, y)
	}
}

func actionFor(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyEnter:
		return core.ActionConfirm
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			return core.ActionLeft
		case 'd':
			return core.ActionRight
		case 'w':
			return core.ActionUp
		case 's':
			return core.ActionDown
		case ' ':
			return core.ActionFire
		case 'x':
			return core.ActionSecondary
		case 'p':
			return core.ActionPause
		case 'r':
			return core.ActionRestart
		case 'q':
			return core.ActionQuit
		}
	}
	return core.ActionNone
}

// poll forwards screen events until the screen is finalized or done closes.
func poll(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run plays gameID on the real terminal until the user quits or ctx ends.
func Run(ctx context.Context, gameID string, cfg core.RuntimeConfig, deps platform.Deps) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	r, err := NewRunner(screen, gameID, cfg, deps)
	if err != nil {
		return err
	}
	defer r.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go poll(screen, events, done)

	fps := cfg.TickRate
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if r.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			r.Frame(now)
		}
	}
}
