// Package window is the desktop frontend: a mode menu and one frame per
// timer mode, all driven through the controller.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"smarttimer/internal/core/controller"
	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/logging"
	"smarttimer/internal/ui/preferences"
)

const (
	timeTextSize  = 56
	phaseTextSize = 22
)

// Callbacks defines window-level actions outside the engine.
type Callbacks struct {
	OnPreferences func()
	OnQuit        func()
}

// Window manages the main timer window.
type Window struct {
	app       fyne.App
	window    fyne.Window
	ctrl      *controller.Controller
	callbacks Callbacks
	logger    *slog.Logger
	do        func(func())

	timeDisplay  *region
	phaseDisplay *region

	countdownEntry *widget.Entry
	workEntry      *widget.Entry
	restEntry      *widget.Entry
	roundsEntry    *widget.Entry

	laps     []string
	lapLists []*widget.List

	body      *fyne.Container
	menu      fyne.CanvasObject
	stopwatch fyne.CanvasObject
	countdown fyne.CanvasObject
	tabata    fyne.CanvasObject
}

// New builds the window. Bind must be called before it is shown.
func New(app fyne.App, settings preferences.Settings, callbacks Callbacks, logger *slog.Logger) *Window {
	if logger == nil {
		logger = logging.Discard()
	}
	window := app.NewWindow("SmartTimer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		app:            app,
		window:         window,
		callbacks:      callbacks,
		logger:         logger.With("component", "window"),
		do:             fyne.Do,
		countdownEntry: widget.NewEntry(),
		workEntry:      widget.NewEntry(),
		restEntry:      widget.NewEntry(),
		roundsEntry:    widget.NewEntry(),
	}
	view.timeDisplay = &region{
		text:  "0",
		color: timekeeper.ColorNeutral,
		size:  timeTextSize,
		style: fyne.TextStyle{Bold: true, Monospace: true},
		do:    view.schedule,
	}
	view.phaseDisplay = &region{
		color: timekeeper.ColorNeutral,
		size:  phaseTextSize,
		style: fyne.TextStyle{Bold: true},
		do:    view.schedule,
	}
	view.UpdateSettings(settings)

	view.body = container.NewStack()
	window.SetContent(view.body)
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(func() {
		if view.callbacks.OnQuit != nil {
			view.callbacks.OnQuit()
			return
		}
		window.Close()
	})

	return view
}

// Outputs returns the engine sinks backed by this window.
func (view *Window) Outputs() timekeeper.Outputs {
	return timekeeper.Outputs{
		Time:     view.timeDisplay,
		Label:    view.phaseDisplay,
		Notifier: view,
	}
}

// Bind attaches the controller and builds the mode frames.
func (view *Window) Bind(ctrl *controller.Controller) {
	view.ctrl = ctrl
	view.menu = view.buildMenu()
	view.stopwatch = view.buildStopwatch()
	view.countdown = view.buildCountdown()
	view.tabata = view.buildTabata()
	view.showModeUnsafe(ctrl.Mode())
}

// Watch consumes engine events to maintain the lap lists and the countdown
// input. It returns when events is closed.
func (view *Window) Watch(events <-chan timekeeper.Event) {
	for event := range events {
		switch event.Type {
		case timekeeper.EventLap:
			text := lapText(event.Lap, event.Text)
			view.schedule(func() {
				view.laps = append(view.laps, text)
				for _, list := range view.lapLists {
					list.Refresh()
					list.ScrollToBottom()
				}
			})
		case timekeeper.EventReset:
			view.schedule(func() {
				view.laps = nil
				for _, list := range view.lapLists {
					list.Refresh()
				}
			})
		}
		if event.Type == timekeeper.EventStateChange || event.Type == timekeeper.EventReset {
			paused := event.Mode == timekeeper.ModeCountdown && event.Status == timekeeper.StatusPaused
			view.schedule(func() { view.lockCountdownInput(paused) })
		}
	}
}

// lockCountdownInput disables the seconds entry while a countdown is paused;
// Start then resumes, so a value typed there would be ignored.
func (view *Window) lockCountdownInput(paused bool) {
	if paused {
		view.countdownEntry.Disable()
		return
	}
	view.countdownEntry.Enable()
}

// ShowMode swaps the visible frame; it is the controller's mode hook.
func (view *Window) ShowMode(mode timekeeper.Mode) {
	view.schedule(func() {
		view.showModeUnsafe(mode)
	})
}

// Show displays and focuses the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// UpdateSettings refreshes the pre-filled input defaults.
func (view *Window) UpdateSettings(settings preferences.Settings) {
	view.countdownEntry.SetText(strconv.Itoa(int(settings.CountdownDefault.Seconds())))
	view.workEntry.SetText(strconv.Itoa(int(settings.WorkDuration.Seconds())))
	view.restEntry.SetText(strconv.Itoa(int(settings.RestDuration.Seconds())))
	view.roundsEntry.SetText(strconv.Itoa(settings.Rounds))
}

// Notify shows a modal information dialog.
func (view *Window) Notify(title, message string) {
	view.schedule(func() {
		dialog.ShowInformation(title, message, view.window)
	})
}

func (view *Window) schedule(fn func()) {
	view.do(fn)
}

func (view *Window) showModeUnsafe(mode timekeeper.Mode) {
	var frame fyne.CanvasObject
	switch mode {
	case timekeeper.ModeStopwatch:
		frame = view.stopwatch
	case timekeeper.ModeCountdown:
		frame = view.countdown
	case timekeeper.ModeTabata:
		frame = view.tabata
	case timekeeper.ModeNone:
		frame = view.menu
	}
	if frame == nil {
		return
	}
	view.window.SetTitle("SmartTimer - " + mode.String())
	view.body.Objects = []fyne.CanvasObject{frame}
	view.body.Refresh()
}

func (view *Window) buildMenu() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("SmartTimer", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	buttons := container.NewVBox(
		widget.NewButton("Stopwatch", func() { view.ctrl.SelectMode(timekeeper.ModeStopwatch) }),
		widget.NewButton("Countdown", func() { view.ctrl.SelectMode(timekeeper.ModeCountdown) }),
		widget.NewButton("Tabata", func() { view.ctrl.SelectMode(timekeeper.ModeTabata) }),
		widget.NewSeparator(),
		widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() {
			if view.callbacks.OnPreferences != nil {
				view.callbacks.OnPreferences()
			}
		}),
	)
	return container.NewCenter(container.NewVBox(title, buttons))
}

func (view *Window) buildStopwatch() fyne.CanvasObject {
	buttons := container.NewGridWithColumns(5,
		widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), view.ctrl.Start),
		widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), view.ctrl.Pause),
		widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), view.ctrl.Reset),
		widget.NewButton("Lap", view.ctrl.Lap),
		view.menuButton(),
	)
	header := container.NewVBox(view.timeDisplay.add(), buttons)
	return container.NewBorder(header, nil, nil, nil, view.newLapList())
}

func (view *Window) buildCountdown() fyne.CanvasObject {
	view.countdownEntry.SetPlaceHolder("Seconds")
	start := func() {
		if view.ctrl.Engine().Snapshot().Status == timekeeper.StatusPaused {
			view.ctrl.Start()
			return
		}
		view.showError(view.ctrl.StartCountdown(view.countdownEntry.Text))
	}
	view.countdownEntry.OnSubmitted = func(string) { start() }

	input := container.NewBorder(nil, nil, widget.NewLabel("Seconds"), nil, view.countdownEntry)
	buttons := container.NewGridWithColumns(5,
		widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), start),
		widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), view.ctrl.Pause),
		widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), view.ctrl.Reset),
		widget.NewButton("Lap", view.ctrl.Lap),
		view.menuButton(),
	)
	header := container.NewVBox(input, view.timeDisplay.add(), buttons)
	return container.NewBorder(header, nil, nil, nil, view.newLapList())
}

func (view *Window) buildTabata() fyne.CanvasObject {
	start := func() {
		view.showError(view.ctrl.StartTabata(view.workEntry.Text, view.restEntry.Text, view.roundsEntry.Text))
	}
	form := widget.NewForm(
		widget.NewFormItem("Work (sec)", view.workEntry),
		widget.NewFormItem("Rest (sec)", view.restEntry),
		widget.NewFormItem("Rounds", view.roundsEntry),
	)
	buttons := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), start),
		widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), view.ctrl.Reset),
		view.menuButton(),
		layout.NewSpacer(),
	)
	return container.NewVBox(form, view.phaseDisplay.add(), view.timeDisplay.add(), buttons)
}

// newLapList returns a list over the shared lap history. Each frame gets its
// own list since a canvas object can only sit in one container.
func (view *Window) newLapList() *widget.List {
	list := widget.NewList(
		func() int { return len(view.laps) },
		func() fyne.CanvasObject { return widget.NewLabel("Lap 00: 00:00.0") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < len(view.laps) {
				item.(*widget.Label).SetText(view.laps[id])
			}
		},
	)
	view.lapLists = append(view.lapLists, list)
	return list
}

func (view *Window) menuButton() *widget.Button {
	return widget.NewButtonWithIcon("Menu", theme.HomeIcon(), view.ctrl.ReturnToMenu)
}

func (view *Window) showError(err error) {
	if err == nil {
		return
	}
	var validation *timekeeper.ValidationError
	if errors.As(err, &validation) {
		dialog.ShowError(errors.New(validation.Message), view.window)
		return
	}
	view.logger.Error("start failed", "error", err)
	dialog.ShowError(err, view.window)
}

// region adapts one engine output to timekeeper.Display. Every frame that
// shows the output holds its own canvas.Text; writes fan out to all of them.
type region struct {
	texts []*canvas.Text
	text  string
	color timekeeper.Color
	size  float32
	style fyne.TextStyle
	do    func(func())
}

// add creates a text object for one frame, initialised to the current value.
func (display *region) add() *canvas.Text {
	text := canvas.NewText(display.text, colorFor(display.color))
	text.Alignment = fyne.TextAlignCenter
	text.TextStyle = display.style
	text.TextSize = display.size
	display.texts = append(display.texts, text)
	return text
}

func (display *region) SetText(value string) {
	display.do(func() {
		display.text = value
		for _, text := range display.texts {
			text.Text = value
			text.Refresh()
		}
	})
}

func (display *region) SetColor(value timekeeper.Color) {
	display.do(func() {
		display.color = value
		for _, text := range display.texts {
			text.Color = colorFor(value)
			text.Refresh()
		}
	})
}

func colorFor(value timekeeper.Color) color.Color {
	switch value {
	case timekeeper.ColorWork:
		return color.NRGBA{R: 220, G: 50, B: 47, A: 255}
	case timekeeper.ColorRest:
		return color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	case timekeeper.ColorWarning:
		return color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	default:
		return theme.Color(theme.ColorNameForeground)
	}
}

func lapText(index int, formatted string) string {
	return fmt.Sprintf("Lap %d: %s", index, formatted)
}
