package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

// Shop is the part of the profile the shop screen works on.
type Shop interface {
	Wallet() int
	Activated(id profile.ItemID) bool
	Buy(id profile.ItemID) error
}

// ShopKeyMap defines the key bindings of the shop.
type ShopKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Buy  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Buy}, {k.Back, k.Quit}}
}

// DefaultShopKeyMap returns the default shop bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy"),
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

// ShopModel lists the catalogue and buys items with the wallet.
type ShopModel struct {
	shop     Shop
	lang     profile.Language
	table    table.Model
	help     help.Model
	keys     ShopKeyMap
	width    int
	status   string
	bought   bool // something was bought
	quitting bool
	back     bool
}

// NewShopModel creates the shop screen.
func NewShopModel(shop Shop, lang profile.Language, width, height int) ShopModel {
	columns := []table.Column{
		{Title: "Item", Width: 16},
		{Title: "Price", Width: 7},
		{Title: "", Width: 10},
		{Title: "Effect", Width: 36},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(len(profile.Catalogue)+1),
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

	m := ShopModel{
		shop:  shop,
		lang:  lang,
		table: t,
		help:  help.New(),
		keys:  DefaultShopKeyMap(),
		width: width,
	}
	m.refresh()
	return m
}

func (m *ShopModel) refresh() {
	rows := make([]table.Row, len(profile.Catalogue))
	for i, item := range profile.Catalogue {
		state := ""
		if m.shop.Activated(item.ID) {
			state = tr(m.lang, txtBought)
		}
		rows[i] = table.Row{item.Name, fmt.Sprintf("%d", item.Price), state, item.Description}
	}
	m.table.SetRows(rows)
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Buy):
			m.buy(profile.Catalogue[m.table.Cursor()])
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ShopModel) buy(item profile.Item) {
	err := m.shop.Buy(item.ID)
	switch {
	case err == nil:
		m.bought = true
		m.status = okStyle.Render(fmt.Sprintf("%s: %s", item.Name, tr(m.lang, txtBought)))
		m.refresh()
	case errors.Is(err, profile.ErrInsufficientFunds):
		m.status = errorStyle.Render(fmt.Sprintf("%s costs %d, wallet holds %d", item.Name, item.Price, m.shop.Wallet()))
	case errors.Is(err, profile.ErrAlreadyOwned):
		m.status = dimStyle.Render(item.Name + " is already yours")
	default:
		m.status = errorStyle.Render(err.Error())
	}
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(tr(m.lang, txtShop))), m.width))
	b.WriteString("\n\n")
	wallet := fmt.Sprintf("%s: %d", tr(m.lang, txtWallet), m.shop.Wallet())
	b.WriteString(centerText(wallet, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(panelStyle.Render(m.table.View()), m.width))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Bought reports whether anything was bought during the visit.
func (m ShopModel) Bought() bool {
	return m.bought
}

// RunShop runs the shop screen. It returns true to go back to the menu.
func RunShop(shop Shop, lang profile.Language, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewShopModel(shop, lang, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ShopModel)
	if !ok {
		return false, nil
	}
	return m.back, nil
}
