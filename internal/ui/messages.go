package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg drives the control's physics tick. The subscription is only
// kept alive while the control reports it needs frames.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// longPressMsg fires a pending long-press timer. The sequence number
// invalidates timers from presses that have since moved or lifted.
type longPressMsg struct {
	seq int
}

func longPressAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return longPressMsg{seq: seq}
	})
}
