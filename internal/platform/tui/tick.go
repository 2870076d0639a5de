// Package tui provides the Bubble Tea host for the puzzle.
// It handles the terminal UI loop, key mapping, rendering and score keeping.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// highlightDuration is how long merged and spawned tiles stay emphasized.
const highlightDuration = 180 * time.Millisecond

// highlightDoneMsg ends the emphasis started by the move with the same sequence.
type highlightDoneMsg struct {
	seq int
}

// highlightCmd returns a command that ends the highlight of move seq.
func highlightCmd(seq int) tea.Cmd {
	return tea.Tick(highlightDuration, func(time.Time) tea.Msg {
		return highlightDoneMsg{seq: seq}
	})
}
