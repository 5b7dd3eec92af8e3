// Package tui provides the Bubble Tea front end of the game. It drives the
// simulation loop from tick messages, maps keys to the shared input record
// and draws simulation snapshots to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to drive one simulation frame.
type TickMsg time.Time

// frameInterval converts a frame rate to the delay between ticks.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
