package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boko-runner/internal/core"
	"github.com/vovakirdan/boko-runner/internal/profile"
)

// Screen identifies a destination of the main menu.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenGame
	ScreenShop
	ScreenLeaderboard
	ScreenSettings
	ScreenStatistics
)

// MenuItem is one entry of the main menu.
type MenuItem struct {
	Screen Screen
	Label  string // translation key
}

var mainMenuItems = []MenuItem{
	{ScreenGame, txtPlay},
	{ScreenShop, txtShop},
	{ScreenLeaderboard, txtLeaderboard},
	{ScreenSettings, txtSettings},
	{ScreenStatistics, txtStatistics},
	{ScreenNone, txtQuit},
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	settings  profile.Settings
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  Screen
}

// NewMenuModel creates a new menu model.
func NewMenuModel(settings profile.Settings, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     mainMenuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		settings:  settings,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
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

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
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
		m.selected = m.items[m.cursor].Screen
		if m.selected == ScreenNone {
			m.quitting = true
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.selected != ScreenNone {
		return ""
	}

	lang := m.settings.Language
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B O K O   R U N N E R"), m.width))
	b.WriteString("\n\n")

	info := fmt.Sprintf("%s: %s  |  %s: %d",
		tr(lang, txtDifficulty), difficultyLabel(lang, m.settings.Difficulty),
		tr(lang, txtWallet), m.settings.Wallet)
	b.WriteString(centerText(dimStyle.Render(info), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		label := "  " + tr(lang, item.Label) + "  "
		if i == m.cursor {
			label = cursorStyle.Render(label)
		}
		b.WriteString(centerText(label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("↑/↓: navigate  |  enter: select  |  q: quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen destination, ScreenNone when quitting.
func (m MenuModel) Selected() Screen {
	return m.selected
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Screen Screen
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the main menu and returns the selection.
func RunMenu(settings profile.Settings, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(settings, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Quit: true}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return MenuResult{
		Screen: m.Selected(),
		Config: m.Config(),
		Quit:   m.Selected() == ScreenNone,
	}, nil
}
