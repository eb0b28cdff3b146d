package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

var statLabels = map[string]string{
	profile.StatTotalDistance:   "Total distance",
	profile.StatTotalEnemies:    "Enemies destroyed",
	profile.StatTotalCoins:      "Coins collected",
	profile.StatTotalGames:      "Games played",
	profile.StatPerGameDistance: "Last game distance",
	profile.StatPerGameEnemies:  "Last game enemies",
	profile.StatPerGameCoins:    "Last game coins",
}

// StatsModel shows the lifetime statistics and, when the store keeps one,
// the history of recent runs.
type StatsModel struct {
	stats     profile.Stats
	lang      profile.Language
	runs      table.Model
	hasRuns   bool
	width     int
	keyMapper *KeyMapper
	quitting  bool
	back      bool
}

// NewStatsModel creates the statistics screen. runs may be nil.
func NewStatsModel(stats profile.Stats, lang profile.Language, runs []profile.GameRecord, width int) StatsModel {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Mode", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Dist", Width: 7},
		{Title: "Coins", Width: 6},
		{Title: "Time", Width: 7},
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.PlayedAt.Local().Format("Jan 02 15:04"),
			r.Difficulty.String(),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Distance),
			fmt.Sprintf("%d", r.Coins),
			r.Duration.Round(time.Second).String(),
		}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(max(len(rows), 1), 10)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)

	return StatsModel{
		stats:     stats,
		lang:      lang,
		runs:      t,
		hasRuns:   len(runs) > 0,
		width:     width,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the statistics model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect:
			m.back = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.runs, cmd = m.runs.Update(msg)
	return m, cmd
}

// View renders the statistics screen.
func (m StatsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var body strings.Builder
	values := m.stats.Map()
	for i, k := range profile.StatKeys {
		if i > 0 {
			body.WriteString("\n")
		}
		fmt.Fprintf(&body, "%-22s %10d", statLabels[k], values[k])
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(tr(m.lang, txtStatistics))), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(panelStyle.Render(body.String()), m.width))
	b.WriteString("\n")
	if m.hasRuns {
		b.WriteString(centerText(dimStyle.Render("Recent runs"), m.width))
		b.WriteString("\n")
		b.WriteString(centerBlock(panelStyle.Render(m.runs.View()), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(dimStyle.Render("esc/enter: back  |  q: quit"), m.width))
	return b.String()
}

// RunStats runs the statistics screen. It returns true to go back to the
// menu.
func RunStats(stats profile.Stats, lang profile.Language, runs []profile.GameRecord, width int) (goBack bool, err error) {
	p := tea.NewProgram(NewStatsModel(stats, lang, runs, width), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(StatsModel)
	if !ok {
		return false, nil
	}
	return m.back, nil
}
