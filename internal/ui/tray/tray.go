package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"smarttimer/internal/core/timekeeper"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStartPause  func()
	OnReset       func()
	OnLap         func()
	OnMenu        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	lapItem     *fyne.MenuItem
	callbacks   Callbacks
	status      timekeeper.Status
	mode        timekeeper.Mode
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "menu",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnStartPause))
	manager.lapItem = fyne.NewMenuItem("Lap", invoke(&manager.callbacks.OnLap))

	manager.refreshStatus()
	return manager
}

// Apply updates tray state from an engine event.
func (manager *Manager) Apply(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventProgress:
		manager.statusLabel = fmt.Sprintf("%s %s", event.Mode, event.Text)
	case timekeeper.EventPhaseChange:
		manager.statusLabel = timekeeper.PhaseLabel(event.Phase, event.Round)
	case timekeeper.EventComplete:
		manager.statusLabel = fmt.Sprintf("%s done", event.Mode)
	case timekeeper.EventReset, timekeeper.EventStateChange:
		manager.statusLabel = event.Mode.String()
	case timekeeper.EventLap:
		return
	}
	manager.mode = event.Mode
	manager.status = event.Status
	manager.refreshStatus()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.status == timekeeper.StatusPaused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)

	running := manager.status == timekeeper.StatusRunning
	if running {
		manager.startItem.Label = "Pause"
	} else {
		manager.startItem.Label = "Start"
	}
	manager.startItem.Disabled = manager.mode == timekeeper.ModeNone || manager.mode == timekeeper.ModeTabata
	manager.lapItem.Disabled = !running || manager.mode == timekeeper.ModeTabata
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("SmartTimer",
		manager.statusItem,
		fyne.NewMenuItem("Show", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset)),
		manager.lapItem,
		fyne.NewMenuItem("Back to menu", invoke(&manager.callbacks.OnMenu)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
