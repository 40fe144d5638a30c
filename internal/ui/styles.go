package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a2e", Dark: "#e0e4f0"})

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6b7089", Dark: "#6b7089"})

	activityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#44485c", Dark: "#9aa0b8"})

	photoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#3a6ea5", Dark: "#7aa2f7"})

	updateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#8a8da0", Dark: "#565a6e"}).
			Italic(true)

	unviewedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#c2620a", Dark: "#ffb84d"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6b7089", Dark: "#6b7089"})
)
