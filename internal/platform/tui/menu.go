package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// PlayMode is one choice on the options page.
type PlayMode struct {
	Label     string
	TimeLimit int // same meaning as core.RuntimeConfig.TimeLimit
}

// PlayModes are the time limit choices offered before a game starts.
var PlayModes = []PlayMode{
	{"Game default", 0},
	{"Endless", -1},
	{"Timed 60s", 60},
	{"Timed 120s", 120},
}

type menuPage int

const (
	pageGames menuPage = iota
	pageOptions
)

// Option rows on the options page.
const (
	optionMode = iota
	optionDifficulty
	optionCount
)

// MenuModel is the Bubble Tea model for the game picker and its options
// page.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	page      menuPage
	optCursor int
	mode      int
	preset    int

	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user starts a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The store may be nil; with one,
// each entry shows its best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.Best(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	m := MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		preset:    1, // normal
	}
	for i, p := range config.Presets() {
		if string(p) == cfg.Difficulty {
			m.preset = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.page == pageOptions {
			return m.handleOptionsKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for game list navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			m.page = pageOptions
			m.optCursor = 0
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// handleOptionsKey processes input on the options page.
func (m MenuModel) handleOptionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	presets := config.Presets()

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionBack:
		m.page = pageGames

	case MenuActionUp:
		m.optCursor = (m.optCursor + optionCount - 1) % optionCount

	case MenuActionDown:
		m.optCursor = (m.optCursor + 1) % optionCount

	case MenuActionLeft:
		if m.optCursor == optionMode {
			m.mode = (m.mode + len(PlayModes) - 1) % len(PlayModes)
		} else {
			m.preset = (m.preset + len(presets) - 1) % len(presets)
		}

	case MenuActionRight:
		if m.optCursor == optionMode {
			m.mode = (m.mode + 1) % len(PlayModes)
		} else {
			m.preset = (m.preset + 1) % len(presets)
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		m.selected = &selected
		m.config.TimeLimit = PlayModes[m.mode].TimeLimit
		m.config.Difficulty = string(presets[m.preset])
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("  A R C A D E  ", m.width)))
	b.WriteString("\n\n")

	if m.page == pageOptions {
		m.viewOptions(&b)
		return b.String()
	}

	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-16s", cursor, item.Title)
		if item.Best > 0 {
			line += fmt.Sprintf(" best %d", item.Best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(menuHintStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewOptions(b *strings.Builder) {
	b.WriteString(centerText(m.items[m.cursor].Title, m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Mode:       < %s >", PlayModes[m.mode].Label),
		fmt.Sprintf("Difficulty: < %s >", config.Presets()[m.preset]),
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.optCursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Option  |  Left/Right: Change  |  Enter: Play  |  Esc: Back"
	b.WriteString(menuHintStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config with the chosen mode and difficulty.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
