package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

// SettingsEditor is the part of the profile the settings screen changes.
type SettingsEditor interface {
	Settings() profile.Settings
	SetLanguage(l profile.Language) error
	SetDifficulty(d profile.Difficulty) error
	SetSkin(s profile.Skin) error
	ToggleMenuMusic() bool
	ToggleGameMusic() bool
	ClearLeaderboard()
	ClearAppData()
}

type settingRow int

const (
	rowLanguage settingRow = iota
	rowDifficulty
	rowSkin
	rowMenuMusic
	rowGameMusic
	rowClearScores
	rowClearData
	rowCount
)

// SettingsModel edits the preferences. Left and right cycle a value,
// enter toggles or runs an action. Destructive actions need a second
// enter.
type SettingsModel struct {
	editor    SettingsEditor
	cursor    settingRow
	width     int
	keyMapper *KeyMapper
	armed     settingRow // row waiting for its confirmation, or rowCount
	status    string
	changed   bool
	quitting  bool
	back      bool
}

// NewSettingsModel creates the settings screen.
func NewSettingsModel(editor SettingsEditor, width int) SettingsModel {
	return SettingsModel{
		editor:    editor,
		width:     width,
		keyMapper: NewKeyMapper(),
		armed:     rowCount,
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action != MenuActionSelect {
		m.armed = rowCount
	}

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < rowCount-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.cycle(-1)
	case MenuActionRight:
		m.cycle(+1)
	case MenuActionSelect:
		m.activate()
	}
	return m, nil
}

// cycle moves the value of the current row by step.
func (m *SettingsModel) cycle(step int) {
	s := m.editor.Settings()
	m.status = ""

	switch m.cursor {
	case rowLanguage:
		i := indexOf(profile.Languages, s.Language)
		m.apply(m.editor.SetLanguage(profile.Languages[wrap(i+step, len(profile.Languages))]))
	case rowDifficulty:
		next := profile.Easy
		if s.Difficulty == profile.Easy {
			next = profile.Hard
		}
		m.apply(m.editor.SetDifficulty(next))
	case rowSkin:
		m.cycleSkin(s.Skin, step)
	case rowMenuMusic:
		m.editor.ToggleMenuMusic()
		m.changed = true
	case rowGameMusic:
		m.editor.ToggleGameMusic()
		m.changed = true
	}
}

// cycleSkin selects the next unlocked skin, skipping locked ones.
func (m *SettingsModel) cycleSkin(current profile.Skin, step int) {
	i := indexOf(profile.Skins, current)
	for range profile.Skins {
		i = wrap(i+step, len(profile.Skins))
		err := m.editor.SetSkin(profile.Skins[i])
		if errors.Is(err, profile.ErrSkinLocked) {
			continue
		}
		m.apply(err)
		return
	}
}

func (m *SettingsModel) activate() {
	switch m.cursor {
	case rowClearScores, rowClearData:
		if m.armed != m.cursor {
			m.armed = m.cursor
			m.status = dimStyle.Render("Press enter again to confirm")
			return
		}
		m.armed = rowCount
		if m.cursor == rowClearScores {
			m.editor.ClearLeaderboard()
		} else {
			m.editor.ClearAppData()
		}
		m.changed = true
		m.status = okStyle.Render("Done")
	default:
		m.cycle(+1)
	}
}

func (m *SettingsModel) apply(err error) {
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.changed = true
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	s := m.editor.Settings()
	lang := s.Language
	rows := []struct{ label, value string }{
		{tr(lang, txtLanguage), string(s.Language)},
		{tr(lang, txtDifficulty), difficultyLabel(lang, s.Difficulty)},
		{tr(lang, txtSkin), string(s.Skin)},
		{tr(lang, txtMenuMusic), onOff(lang, s.MenuMusic)},
		{tr(lang, txtGameMusic), onOff(lang, s.GameMusic)},
		{tr(lang, txtClearScores), ""},
		{tr(lang, txtClearData), ""},
	}

	var body strings.Builder
	for i, r := range rows {
		line := fmt.Sprintf("%-28s", r.label)
		if r.value != "" {
			line += fmt.Sprintf("< %s >", r.value)
		}
		if settingRow(i) == m.cursor {
			line = cursorStyle.Render(line)
		}
		body.WriteString(line)
		body.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(tr(lang, txtSettings))), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(panelStyle.Render(strings.TrimRight(body.String(), "\n")), m.width))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(dimStyle.Render("↑/↓: select  |  ←/→: change  |  enter: toggle  |  esc: back"), m.width))
	return b.String()
}

// Changed reports whether any setting was modified.
func (m SettingsModel) Changed() bool {
	return m.changed
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// RunSettings runs the settings screen. It returns true to go back to the
// menu.
func RunSettings(editor SettingsEditor, width int) (goBack bool, err error) {
	p := tea.NewProgram(NewSettingsModel(editor, width), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(SettingsModel)
	if !ok {
		return false, nil
	}
	return m.back, nil
}
