package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/platform"
	"github.com/vovakirdan/minigames/internal/render"
)

// GameModel hosts one game's sessions inside Bubble Tea: ticks drive
// frames, keys become session inputs, and R starts a fresh session.
type GameModel struct {
	gameID  string
	host    *engine.Host
	session *engine.Session
	rules   engine.Rules
	screen  *core.Screen
	deps    platform.Deps
	config  core.RuntimeConfig
	keys    *KeyMapper
	painter *Painter

	answer     string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the model and starts the first session.
func NewGameModel(gameID string, cfg core.RuntimeConfig, deps platform.Deps) (GameModel, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	m := GameModel{
		gameID:  gameID,
		host:    &engine.Host{},
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		deps:    deps,
		config:  cfg,
		keys:    NewKeyMapper(),
		painter: defaultPainter,
	}
	if err := m.launch(); err != nil {
		return GameModel{}, err
	}
	return m, nil
}

func (m *GameModel) launch() error {
	s, rules, err := platform.Launch(m.host, m.gameID, m.config, m.deps)
	if err != nil {
		return err
	}
	m.session, m.rules = s, rules
	m.answer = ""
	return nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		// The world is in logical units, so a resize only changes the
		// surface; the session keeps running.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.session.Frame(time.Time(msg))
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if platform.TakesText(m.rules) && m.session.State() == engine.StateActive {
		next, submit, handled := m.keys.MapAnswerKey(msg, m.answer)
		if handled {
			if submit {
				m.session.OnText(m.answer)
			}
			m.answer = next
			return m, nil
		}
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.host.Stop()
		return m, tea.Quit
	}

	ended := m.session.State() == engine.StateEnded
	switch action {
	case core.ActionRestart:
		if ended {
			if m.config.Seed != 0 {
				m.config.Seed++
			}
			if err := m.launch(); err != nil {
				m.deps.Logger.Error("restart failed", "game", m.gameID, "err", err)
			}
		}
		return m, nil
	case core.ActionBack:
		if ended || m.session.Snapshot().Paused {
			m.host.Stop()
			m.backToMenu = true
		}
		return m, nil
	}

	Dispatch(m.session, action)
	return m, nil
}

// handleMouse turns clicks and drags into positional input for games
// that aim or steer with a pointer.
func (m GameModel) handleMouse(msg tea.MouseMsg) {
	if !platform.TakesPointer(m.rules) {
		return
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return
	}
	x, y, ok := render.CellToWorld(m.screen.Width(), m.screen.Height(), msg.X, msg.Y, engine.DefaultWidth, engine.DefaultHeight)
	if ok {
		m.session.OnPositional(x, y)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.session.Draw(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.gameID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.session.Draw(m.screen)
	bottom := m.screen.Height() - 1
	switch {
	case m.session.State() == engine.StateEnded:
		m.screen.DrawTextCentered(bottom, "R: Restart  B: Menu  Q: Quit", core.ColorGray)
	case platform.TakesText(m.rules):
		m.screen.DrawTextCentered(bottom, fmt.Sprintf("Answer: %s_   Enter: Submit  X: Pass", m.answer), core.ColorBrightYellow)
	}
	return m.painter.Paint(m.screen)
}

// WithPainter returns the model drawing through p.
func (m GameModel) WithPainter(p *Painter) GameModel {
	if p != nil {
		m.painter = p
	}
	return m
}

// Session returns the running session.
func (m GameModel) Session() *engine.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits.
func Run(gameID string, cfg core.RuntimeConfig, deps platform.Deps) error {
	model, err := NewGameModel(gameID, cfg, deps)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	model.host.Stop()
	return err
}
