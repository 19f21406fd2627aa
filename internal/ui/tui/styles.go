package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"smarttimer/internal/core/timekeeper"
)

// IsTTY returns true when stdout is a terminal (not piped/redirected).
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Adaptive colours for the engine colour hints.
var (
	ColorWork    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}
	ColorRest    = lipgloss.AdaptiveColor{Light: "#00A86B", Dark: "#73D16C"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#FFD866"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#626262"}
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleError  = lipgloss.NewStyle().Foreground(ColorWork)
	StyleNotice = lipgloss.NewStyle().Bold(true).Foreground(ColorRest)
	StyleClock  = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)
)

// styleFor maps an engine colour hint to a text style.
func styleFor(color timekeeper.Color) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch color {
	case timekeeper.ColorWork:
		return style.Foreground(ColorWork)
	case timekeeper.ColorRest:
		return style.Foreground(ColorRest)
	case timekeeper.ColorWarning:
		return style.Foreground(ColorWarning)
	default:
		return style
	}
}
