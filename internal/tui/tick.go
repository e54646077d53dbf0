// Package tui provides the Bubble Tea integration for mineterm.
// It handles the terminal UI loop, input mapping, rendering and the SSH
// server. The engine in internal/mines stays free of any of this.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a redraw and timer update.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// specified rate. The wall clock carried by the message drives the game
// timer; the engine has no timer of its own.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
