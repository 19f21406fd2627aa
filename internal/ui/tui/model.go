// Package tui is the terminal frontend. The bubbletea loop owns the engine:
// key presses and tick messages are the only callers, so engine sinks write
// plain fields without further synchronisation.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smarttimer/internal/core/controller"
	"smarttimer/internal/core/format"
	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/ui/preferences"
)

type tickMsg time.Time

// Screen holds the text regions the engine writes to.
type Screen struct {
	timeText   string
	timeColor  timekeeper.Color
	labelText  string
	labelColor timekeeper.Color
	notice     string
}

// NewScreen returns an empty screen.
func NewScreen() *Screen {
	return &Screen{timeText: "0", timeColor: timekeeper.ColorNeutral, labelColor: timekeeper.ColorNeutral}
}

// Outputs returns engine sinks writing into screen.
func (screen *Screen) Outputs() timekeeper.Outputs {
	return timekeeper.Outputs{
		Time:     timeRegion{screen},
		Label:    labelRegion{screen},
		Notifier: screen,
	}
}

// Notify shows a banner until the next key press.
func (screen *Screen) Notify(title, message string) {
	screen.notice = fmt.Sprintf("%s: %s", title, message)
}

type timeRegion struct{ screen *Screen }

func (region timeRegion) SetText(text string)            { region.screen.timeText = text }
func (region timeRegion) SetColor(color timekeeper.Color) { region.screen.timeColor = color }

type labelRegion struct{ screen *Screen }

func (region labelRegion) SetText(text string)            { region.screen.labelText = text }
func (region labelRegion) SetColor(color timekeeper.Color) { region.screen.labelColor = color }

// Model is the top-level BubbleTea model for the terminal timer.
type Model struct {
	ctrl     *controller.Controller
	screen   *Screen
	interval time.Duration

	countdown textinput.Model
	tabata    []textinput.Model
	focus     int

	help     help.Model
	err      string
	quitting bool
	width    int
}

// NewModel creates the model. screen must be the one whose Outputs back the
// controller's engine.
func NewModel(ctrl *controller.Controller, screen *Screen, settings preferences.Settings) Model {
	interval := settings.TickInterval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return Model{
		ctrl:      ctrl,
		screen:    screen,
		interval:  interval,
		countdown: newInput("Seconds: ", secondsValue(settings.CountdownDefault)),
		tabata: []textinput.Model{
			newInput("Work (sec): ", secondsValue(settings.WorkDuration)),
			newInput("Rest (sec): ", secondsValue(settings.RestDuration)),
			newInput("Rounds:     ", fmt.Sprintf("%d", settings.Rounds)),
		},
		help: help.New(),
	}
}

func newInput(prompt, value string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 6
	input.Width = 8
	input.SetValue(value)
	return input
}

func secondsValue(value time.Duration) string {
	return fmt.Sprintf("%d", int(value/time.Second))
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.ctrl.Tick()
		return m, m.tick()

	case tea.KeyMsg:
		if key.Matches(msg, Keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.screen.notice = ""
		m.err = ""
		if key.Matches(msg, Keys.Menu) && m.ctrl.Mode() != timekeeper.ModeNone {
			m.ctrl.ReturnToMenu()
			return m.blurAll(), nil
		}
	}

	switch m.ctrl.Mode() {
	case timekeeper.ModeStopwatch:
		return m.updateStopwatch(msg)
	case timekeeper.ModeCountdown:
		return m.updateCountdown(msg)
	case timekeeper.ModeTabata:
		return m.updateTabata(msg)
	case timekeeper.ModeNone:
		return m.updateMenu(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, Keys.Stopwatch):
		m.ctrl.SelectMode(timekeeper.ModeStopwatch)
		return m, nil
	case key.Matches(keyMsg, Keys.Countdown):
		m.ctrl.SelectMode(timekeeper.ModeCountdown)
		cmd := m.countdown.Focus()
		return m, cmd
	case key.Matches(keyMsg, Keys.Tabata):
		m.ctrl.SelectMode(timekeeper.ModeTabata)
		m.focus = 0
		cmd := m.tabata[0].Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateStopwatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, Keys.Start, Keys.Submit):
		m.ctrl.Start()
	case key.Matches(keyMsg, Keys.Pause):
		m.ctrl.Pause()
	case key.Matches(keyMsg, Keys.Reset):
		m.ctrl.Reset()
	case key.Matches(keyMsg, Keys.Lap):
		m.ctrl.Lap()
	}
	return m, nil
}

func (m Model) updateCountdown(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, Keys.Start, Keys.Submit):
			if m.ctrl.Engine().Snapshot().Status == timekeeper.StatusPaused {
				m.ctrl.Start()
				return m, nil
			}
			return m.report(m.ctrl.StartCountdown(m.countdown.Value())), nil
		case key.Matches(keyMsg, Keys.Pause):
			m.ctrl.Pause()
			return m, nil
		case key.Matches(keyMsg, Keys.Reset):
			m.ctrl.Reset()
			return m, nil
		case key.Matches(keyMsg, Keys.Lap):
			m.ctrl.Lap()
			return m, nil
		}
		// Start resumes a paused countdown, so the seconds field is frozen.
		if m.ctrl.Engine().Snapshot().Status == timekeeper.StatusPaused {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.countdown, cmd = m.countdown.Update(msg)
	return m, cmd
}

func (m Model) updateTabata(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, Keys.Next):
			m.tabata[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.tabata)
			cmd := m.tabata[m.focus].Focus()
			return m, cmd
		case key.Matches(keyMsg, Keys.Start, Keys.Submit):
			err := m.ctrl.StartTabata(m.tabata[0].Value(), m.tabata[1].Value(), m.tabata[2].Value())
			return m.report(err), nil
		case key.Matches(keyMsg, Keys.Reset):
			m.ctrl.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tabata[m.focus], cmd = m.tabata[m.focus].Update(msg)
	return m, cmd
}

func (m Model) report(err error) Model {
	if err == nil {
		return m
	}
	var validation *timekeeper.ValidationError
	if errors.As(err, &validation) {
		m.err = validation.Message
		return m
	}
	m.err = err.Error()
	return m
}

func (m Model) blurAll() Model {
	m.countdown.Blur()
	for i := range m.tabata {
		m.tabata[i].Blur()
	}
	m.focus = 0
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	mode := m.ctrl.Mode()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("SmartTimer") + StyleMuted.Render(" · "+mode.String()) + "\n\n")

	switch mode {
	case timekeeper.ModeNone:
		b.WriteString("  1  Stopwatch\n  2  Countdown\n  3  Tabata\n")
	case timekeeper.ModeCountdown:
		b.WriteString(m.countdown.View() + "\n\n")
		b.WriteString(m.clockView() + "\n")
		b.WriteString(m.lapsView(mode))
	case timekeeper.ModeTabata:
		for _, input := range m.tabata {
			b.WriteString(input.View() + "\n")
		}
		b.WriteString("\n" + styleFor(m.screen.labelColor).Render(m.screen.labelText) + "\n")
		b.WriteString(m.clockView() + "\n")
	case timekeeper.ModeStopwatch:
		b.WriteString(m.clockView() + "\n")
		b.WriteString(m.lapsView(mode))
	}

	if m.screen.notice != "" {
		b.WriteString("\n" + StyleNotice.Render(m.screen.notice) + "\n")
	}
	if m.err != "" {
		b.WriteString("\n" + StyleError.Render(m.err) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(bindingsFor(mode)) + "\n")
	return b.String()
}

func (m Model) clockView() string {
	text := styleFor(m.screen.timeColor).Render(m.screen.timeText)
	return StyleClock.Render(lipgloss.PlaceHorizontal(12, lipgloss.Center, text))
}

func (m Model) lapsView(mode timekeeper.Mode) string {
	laps := m.ctrl.Engine().Snapshot().Laps
	if len(laps) == 0 {
		return ""
	}
	var b strings.Builder
	for i, lap := range laps {
		b.WriteString(StyleMuted.Render(fmt.Sprintf("Lap %d: %s", i+1, lapValue(mode, lap))) + "\n")
	}
	return b.String()
}

func lapValue(mode timekeeper.Mode, value time.Duration) string {
	if mode == timekeeper.ModeStopwatch {
		return format.Stopwatch(value)
	}
	return format.Hierarchical(value)
}
