// Package tui hosts arcade sessions in Bubble Tea. It maps keys and mouse
// events to session inputs and draws snapshots through the shared renderer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall time of one frame.
type TickMsg time.Time

// tickCmd schedules the next frame at fps frames per second.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
