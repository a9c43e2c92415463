package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Clear key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		Next:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev")),
		Clear: key.NewBinding(key.WithKeys("x"), key.WithHelp("x x", "clear game")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows an overview of every game followed by one page of
// history per game. Tab cycles through the pages.
type ScoreboardModel struct {
	games []registry.GameInfo
	page  int // 0 is the overview, i+1 is games[i]
	store *storage.Store

	scores []storage.ScoreEntry
	stats  *storage.GameStats
	best   int
	err    error

	confirmClear bool

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. The store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func (m *ScoreboardModel) game() (registry.GameInfo, bool) {
	if m.page == 0 || m.page > len(m.games) {
		return registry.GameInfo{}, false
	}
	return m.games[m.page-1], true
}

// load refreshes the table for the current page.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.best, m.err = nil, nil, 0, nil
	m.confirmClear = false

	g, perGame := m.game()
	if !perGame {
		m.table = m.newTable([]table.Column{
			{Title: "Game", Width: 16},
			{Title: "Best", Width: 8},
			{Title: "Played", Width: 8},
			{Title: "Average", Width: 8},
			{Title: "Last played", Width: 14},
		})
		m.table.SetRows(m.overviewRows())
		return
	}

	dateWidth := min(max(m.width-30, 12), 20)
	m.table = m.newTable([]table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: dateWidth},
	})
	if m.store == nil {
		return
	}
	if m.scores, m.err = m.store.TopScores(g.ID, maxScores); m.err != nil {
		return
	}
	m.stats, _ = m.store.GetGameStats(g.ID)
	m.best, _ = m.store.Best(g.ID)

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{"#" + strconv.Itoa(i+1), strconv.Itoa(s.Score), s.CreatedAt.Format("Jan 02 15:04")}
	}
	m.table.SetRows(rows)
}

func (m *ScoreboardModel) overviewRows() []table.Row {
	if m.store == nil {
		return nil
	}
	all, err := m.store.GetAllGamesStats()
	if err != nil {
		m.err = err
		return nil
	}
	var rows []table.Row
	for _, g := range m.games {
		s, ok := all[g.ID]
		if !ok {
			continue
		}
		best, _ := m.store.Best(g.ID)
		rows = append(rows, table.Row{
			g.Title,
			strconv.Itoa(max(best, s.HighScore)),
			strconv.Itoa(s.GamesCount),
			fmt.Sprintf("%.0f", s.AvgScore),
			s.LastPlayed.Format("Jan 02 15:04"),
		})
	}
	return rows
}

func (m *ScoreboardModel) newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	pages := len(m.games) + 1

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.page = (m.page + 1) % pages
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.page = (m.page + pages - 1) % pages
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			g, ok := m.game()
			if !ok || m.store == nil {
				return m, nil
			}
			if !m.confirmClear {
				m.confirmClear = true
				return m, nil
			}
			if err := m.store.ClearScores(g.ID); err != nil {
				m.err = err
				return m, nil
			}
			m.load()
			return m, nil
		}
		m.confirmClear = false

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	boardWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n\n")
	}

	body := m.table.View()
	switch {
	case m.err != nil:
		body = boardWarnStyle.Render("Could not read scores: " + m.err.Error())
	case len(m.table.Rows()) == 0:
		body = boardMutedStyle.Render("No scores recorded yet.")
	}
	b.WriteString(centerText(boardFrameStyle.Render(body), m.width))
	b.WriteString("\n")

	if m.confirmClear {
		g, _ := m.game()
		b.WriteString(boardWarnStyle.Render(centerText("Press x again to delete every score of "+g.Title, m.width)))
		b.WriteString("\n")
	}
	b.WriteString(menuHintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the page names, or only the current one when they do not
// fit the width.
func (m ScoreboardModel) tabs() string {
	names := make([]string, 0, len(m.games)+1)
	names = append(names, "All")
	for _, g := range m.games {
		names = append(names, g.Title)
	}

	parts := make([]string, len(names))
	for i, n := range names {
		if i == m.page {
			parts[i] = boardActiveTab.Render(n)
		} else {
			parts[i] = boardTabStyle.Render(n)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(line) > m.width-4 {
		return "< " + names[m.page] + " >"
	}
	return line
}

// statsLine summarizes the selected game's history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("Best %d  |  Played %d  |  Average %.0f", m.best, m.stats.GamesCount, m.stats.AvgScore)
	if !m.stats.LastPlayed.IsZero() {
		line += "  |  Last " + m.stats.LastPlayed.Format("Jan 02 15:04")
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
