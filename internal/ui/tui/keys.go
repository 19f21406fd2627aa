package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"smarttimer/internal/core/timekeeper"
)

type KeyMap struct {
	Stopwatch key.Binding
	Countdown key.Binding
	Tabata    key.Binding
	Start     key.Binding
	Pause     key.Binding
	Reset     key.Binding
	Lap       key.Binding
	Next      key.Binding
	Submit    key.Binding
	Menu      key.Binding
	Quit      key.Binding
}

var Keys = KeyMap{
	Stopwatch: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "stopwatch"),
	),
	Countdown: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "countdown"),
	),
	Tabata: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "tabata"),
	),
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Lap: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "lap"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m", "esc"),
		key.WithHelp("m", "menu"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// bindingsFor returns the actions offered on the surface for mode.
func bindingsFor(mode timekeeper.Mode) []key.Binding {
	switch mode {
	case timekeeper.ModeStopwatch:
		return []key.Binding{Keys.Start, Keys.Pause, Keys.Reset, Keys.Lap, Keys.Menu, Keys.Quit}
	case timekeeper.ModeCountdown:
		return []key.Binding{Keys.Submit, Keys.Pause, Keys.Reset, Keys.Lap, Keys.Menu, Keys.Quit}
	case timekeeper.ModeTabata:
		return []key.Binding{Keys.Next, Keys.Submit, Keys.Reset, Keys.Menu, Keys.Quit}
	default:
		return []key.Binding{Keys.Stopwatch, Keys.Countdown, Keys.Tabata, Keys.Quit}
	}
}
