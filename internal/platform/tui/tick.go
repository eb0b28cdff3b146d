// Package tui provides the Bubble Tea front-end of the runner: the game
// screen with its pause and game-over overlays, and the menu, shop,
// leaderboard, settings and statistics screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tickAfter(time.Second / time.Duration(tickRate))
}

// tickAfter schedules a single tick after d. A paused game uses it with
// a longer interval to keep CPU usage down.
func tickAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
