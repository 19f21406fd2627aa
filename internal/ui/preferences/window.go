package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	countdown *widget.Entry
	work      *widget.Entry
	rest      *widget.Entry
	rounds    *widget.Entry
	tick      *widget.Entry
	warning   *widget.Entry
	sound     *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("SmartTimer Settings")

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		countdown: widget.NewEntry(),
		work:      widget.NewEntry(),
		rest:      widget.NewEntry(),
		rounds:    widget.NewEntry(),
		tick:      widget.NewEntry(),
		warning:   widget.NewEntry(),
		sound:     widget.NewCheck("Play sounds", nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Defaults", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Countdown"), prefs.countdown, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Work"), prefs.work, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Rest"), prefs.rest, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Rounds"), prefs.rounds),
		widget.NewLabelWithStyle("Timing", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Refresh every"), prefs.tick, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Warn during last"), prefs.warning, widget.NewLabel("sec")),
		prefs.sound,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 380))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.countdown.SetText(secondsText(settings.CountdownDefault))
	prefs.work.SetText(secondsText(settings.WorkDuration))
	prefs.rest.SetText(secondsText(settings.RestDuration))
	prefs.rounds.SetText(strconv.Itoa(settings.Rounds))
	prefs.tick.SetText(fmt.Sprintf("%d", settings.TickInterval.Milliseconds()))
	prefs.warning.SetText(secondsText(settings.WarningWindow))
	prefs.sound.SetChecked(settings.SoundEnabled)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.countdown.Text); ok {
		settings.CountdownDefault = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.work.Text); ok {
		settings.WorkDuration = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.rest.Text); ok {
		settings.RestDuration = time.Duration(seconds) * time.Second
	}
	if rounds, ok := parsePositiveInt(prefs.rounds.Text); ok {
		settings.Rounds = rounds
	}
	if millis, ok := parsePositiveInt(prefs.tick.Text); ok {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}
	if seconds, ok := parsePositiveInt(prefs.warning.Text); ok {
		settings.WarningWindow = time.Duration(seconds) * time.Second
	}
	settings.SoundEnabled = prefs.sound.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func secondsText(value time.Duration) string {
	return strconv.Itoa(int(value / time.Second))
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
