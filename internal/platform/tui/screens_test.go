package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boko-runner/internal/core"
	"github.com/vovakirdan/boko-runner/internal/profile"
)

type memStore struct{ data profile.Data }

func (s *memStore) Load(context.Context) (profile.Data, error) { return s.data, nil }

func (s *memStore) Save(_ context.Context, d profile.Data) error {
	s.data = d
	return nil
}

func newTestProfile(t *testing.T, wallet int) *profile.Profile {
	t.Helper()
	d := profile.DefaultData()
	d.Settings.Wallet = wallet
	p, err := profile.Open(context.Background(), profile.Options{Store: &memStore{data: d}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return p
}

func press[M tea.Model](t *testing.T, m M, keys ...string) M {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(M)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestMenuSelect(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	m := NewMenuModel(profile.DefaultSettings(), cfg)

	m = press(t, m, "down", "down", "enter")
	if m.Selected() != ScreenLeaderboard {
		t.Errorf("Selected = %v, want leaderboard", m.Selected())
	}

	m = NewMenuModel(profile.DefaultSettings(), cfg)
	m = press(t, m, "up", "enter")
	if m.Selected() != ScreenGame {
		t.Errorf("Selected = %v, want game", m.Selected())
	}

	m = NewMenuModel(profile.DefaultSettings(), cfg)
	for range mainMenuItems {
		m = press(t, m, "down")
	}
	m = press(t, m, "enter")
	if m.Selected() != ScreenNone || !m.quitting {
		t.Error("last entry should quit")
	}
}

func TestMenuTranslated(t *testing.T) {
	s := profile.DefaultSettings()
	s.Language = profile.French
	m := NewMenuModel(s, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	view := m.View()
	for _, want := range []string{"Jouer", "Boutique", "Difficile"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestShopBuy(t *testing.T) {
	p := newTestProfile(t, 150)
	m := NewShopModel(p, profile.English, 100, 30)

	// Doubler is first and too expensive
	m = press(t, m, "enter")
	if p.Activated(profile.ItemDoubler) {
		t.Fatal("doubler bought without funds")
	}
	if !strings.Contains(m.status, "costs 1000") {
		t.Errorf("status = %q", m.status)
	}

	// Shield+ costs 100
	m = press(t, m, "down", "enter")
	if !p.Activated(profile.ItemShieldPlus) {
		t.Fatal("shield+ not bought")
	}
	if p.Wallet() != 50 {
		t.Errorf("wallet = %d, want 50", p.Wallet())
	}
	if !m.Bought() {
		t.Error("Bought() = false")
	}

	m = press(t, m, "enter")
	if p.Wallet() != 50 {
		t.Error("second purchase charged the wallet")
	}
	if !strings.Contains(m.status, "already") {
		t.Errorf("status = %q", m.status)
	}
}

func TestSettingsCycle(t *testing.T) {
	p := newTestProfile(t, 0)
	m := NewSettingsModel(p, 80)

	m = press(t, m, "right")
	if got := p.Settings().Language; got != profile.French {
		t.Errorf("language = %v, want fr", got)
	}
	m = press(t, m, "left", "left")
	if got := p.Settings().Language; got != profile.Spanish {
		t.Errorf("language = %v, want es", got)
	}

	m = press(t, m, "down", "enter")
	if got := p.Settings().Difficulty; got != profile.Easy {
		t.Errorf("difficulty = %v, want easy", got)
	}

	// Locked skins are skipped
	m = press(t, m, "down", "right")
	if got := p.Settings().Skin; got != profile.SkinDefault {
		t.Errorf("skin = %v, want default while nothing is bought", got)
	}

	m = press(t, m, "down", "enter", "down", "enter")
	s := p.Settings()
	if !s.MenuMusic || s.GameMusic {
		t.Errorf("music flags = %v/%v, want true/false", s.MenuMusic, s.GameMusic)
	}
	if !m.Changed() {
		t.Error("Changed() = false")
	}
}

func TestSettingsSkinUnlocked(t *testing.T) {
	p := newTestProfile(t, 100)
	if err := p.Buy(profile.ItemPokeballSkin); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	m := NewSettingsModel(p, 80)

	m = press(t, m, "down", "down", "right")
	if got := p.Settings().Skin; got != profile.SkinPokeball {
		t.Errorf("skin = %v, want pokeball", got)
	}
	press(t, m, "right")
	if got := p.Settings().Skin; got != profile.SkinDefault {
		t.Errorf("skin = %v, want default after wrapping", got)
	}
}

func TestSettingsClearNeedsConfirmation(t *testing.T) {
	p := newTestProfile(t, 500)
	p.AddScore(profile.Hard, 42)
	m := NewSettingsModel(p, 80)

	for i := 0; i < int(rowClearData); i++ {
		m = press(t, m, "down")
	}
	m = press(t, m, "enter")
	if p.Wallet() != 500 {
		t.Fatal("data cleared without confirmation")
	}
	m = press(t, m, "up", "down", "enter")
	if p.Wallet() != 500 {
		t.Fatal("moving away should disarm the confirmation")
	}
	press(t, m, "enter")
	if p.Wallet() != 0 || !p.Leaderboard(profile.Hard).Empty() {
		t.Error("data not cleared")
	}
}

func TestScoreboardTabsAndClear(t *testing.T) {
	p := newTestProfile(t, 0)
	p.AddScore(profile.Hard, 10)
	p.AddScore(profile.Hard, 30)
	p.AddScore(profile.Easy, 5)

	m := NewScoreboardModel(p, p.Settings(), 80, 30)
	if len(m.scores) != 2 || m.scores[0] != 30 {
		t.Fatalf("hard scores = %v, want [30 10]", m.scores)
	}

	m = press(t, m, "left")
	if len(m.scores) != 1 || m.scores[0] != 5 {
		t.Fatalf("easy scores = %v, want [5]", m.scores)
	}

	m = press(t, m, "x")
	if p.Leaderboard(profile.Easy).Empty() {
		t.Fatal("single x cleared the leaderboards")
	}
	m = press(t, m, "x")
	if !p.Leaderboard(profile.Easy).Empty() || !p.Leaderboard(profile.Hard).Empty() {
		t.Error("leaderboards not cleared")
	}
	if len(m.scores) != 0 {
		t.Error("table not refreshed")
	}
}

func TestStatsView(t *testing.T) {
	stats := profile.Stats{TotalGames: 12, TotalDistance: 3400}
	m := NewStatsModel(stats, profile.English, nil, 80)

	view := m.View()
	if !strings.Contains(view, "Games played") || !strings.Contains(view, "3400") {
		t.Errorf("stats view:\n%s", view)
	}
	if strings.Contains(view, "Recent runs") {
		t.Error("history shown without runs")
	}

	m = press(t, m, "esc")
	if !m.back {
		t.Error("esc should go back")
	}
}
