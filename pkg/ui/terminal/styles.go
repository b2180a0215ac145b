package terminal

import "github.com/charmbracelet/lipgloss"

// Adaptive colors for light and dark terminals
var (
	colorAdd     = lipgloss.AdaptiveColor{Light: "#1B7F3B", Dark: "#5FD787"}
	colorRemove  = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF6B6B"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#8A8A8A"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#0B5CAD", Dark: "#6CB6FF"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#E3B341"}
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	managerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	addStyle     = lipgloss.NewStyle().Foreground(colorAdd)
	removeStyle  = lipgloss.NewStyle().Foreground(colorRemove)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	numberStyle  = lipgloss.NewStyle().Width(5).Align(lipgloss.Right).Foreground(colorMuted)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	builtStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAdd)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRemove)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	itemIndent   = lipgloss.NewStyle().PaddingLeft(2)
)
