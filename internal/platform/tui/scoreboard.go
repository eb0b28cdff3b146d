package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

// Boards gives the leaderboard screen access to the scores. The caller
// saves the profile once the screen is closed.
type Boards interface {
	Leaderboard(d profile.Difficulty) *profile.Leaderboard
	ClearLeaderboard()
}

// ScoreboardKeyMap defines the key bindings for the leaderboard.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Clear key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "easy"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→", "hard"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x x", "clear"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the leaderboard of each difficulty.
type ScoreboardModel struct {
	boards   Boards
	lang     profile.Language
	diff     profile.Difficulty
	scores   []int
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	arming   bool // first x pressed
	status   string
	quitting bool
	back     bool
}

// NewScoreboardModel creates the leaderboard screen, opened on the
// current difficulty.
func NewScoreboardModel(boards Boards, settings profile.Settings, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: boards,
		lang:   settings.Language,
		diff:   settings.Difficulty,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if !m.diff.Valid() {
		m.diff = profile.Hard
	}
	m.table = m.createTable()
	m.loadScores()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(profile.MaxScores, max(m.height-8, 3))),
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

func (m *ScoreboardModel) loadScores() {
	m.scores = nil
	if m.boards != nil {
		m.scores = m.boards.Leaderboard(m.diff).Ranked()
	}

	rows := make([]table.Row, len(m.scores))
	for i, sc := range m.scores {
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), fmt.Sprintf("%d", sc)}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the leaderboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the leaderboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !key.Matches(msg, m.keys.Clear) {
			m.arming = false
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Left):
			m.diff = profile.Easy
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Right):
			m.diff = profile.Hard
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			return m.clear()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadScores()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// clear wipes every leaderboard on the second consecutive x.
func (m ScoreboardModel) clear() (tea.Model, tea.Cmd) {
	if m.boards == nil {
		return m, nil
	}
	if !m.arming {
		m.arming = true
		m.status = dimStyle.Render("Press x again to clear every leaderboard")
		return m, nil
	}
	m.arming = false
	m.boards.ClearLeaderboard()
	m.loadScores()
	m.status = okStyle.Render(tr(m.lang, txtClearScores) + " ✓")
	return m, nil
}

// View renders the leaderboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(tr(m.lang, txtLeaderboard))), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	var content string
	if len(m.scores) == 0 {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render(tr(m.lang, txtNoScores))
	} else {
		content = m.table.View()
	}
	b.WriteString(centerBlock(panelStyle.Render(content), m.width))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, 0, len(profile.Difficulties))
	for _, d := range profile.Difficulties {
		label := difficultyLabel(m.lang, d)
		if d == m.diff {
			tabs = append(tabs, cursorStyle.Padding(0, 1).Render(label))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// RunScoreboard runs the leaderboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(boards Boards, settings profile.Settings, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(boards, settings, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
