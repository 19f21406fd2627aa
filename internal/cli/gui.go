package cli

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"smarttimer/internal/core/controller"
	"smarttimer/internal/core/scheduler"
	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/platform"
	"smarttimer/internal/storage"
	"smarttimer/internal/ui/preferences"
	"smarttimer/internal/ui/tray"
	"smarttimer/internal/ui/window"
	"smarttimer/resources"
)

func runGUI(opts *options) error {
	if err := validateTick(opts); err != nil {
		return err
	}
	logger, closeLog, err := opts.logger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		if activateErr := platform.ActivateRunning(appName, time.Second); activateErr == nil {
			logger.Info("raised the running instance")
			return nil
		}
		return fmt.Errorf("start %s: %w", appName, err)
	}
	defer func() {
		_ = lock.Release()
	}()
	logger.Debug("instance lock held", "address", lock.Address())

	settings := opts.settings(logger)

	fyneApp := app.NewWithID(appID)
	icon := resources.MustIcon(resources.AppIcon)
	fyneApp.SetIcon(icon)

	alert, closeAlert := newAlert(settings, logger)
	defer closeAlert()

	var prefsWindow *preferences.Window
	view := window.New(fyneApp, settings, window.Callbacks{
		OnPreferences: func() { prefsWindow.Show() },
		OnQuit:        fyneApp.Quit,
	}, logger)

	outputs := view.Outputs()
	outputs.Alert = alert
	engine := timekeeper.New(settings.TimerConfig(), timekeeper.Options{
		Outputs: outputs,
		Logger:  logger,
	})
	defer engine.Close()

	ctrl := controller.New(engine, controller.Callbacks{OnModeChange: view.ShowMode}, logger)
	view.Bind(ctrl)
	go view.Watch(engine.Subscribe(32))

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(appName, updated); err != nil {
			logger.Error("settings save failed", "error", err)
			return
		}
		view.UpdateSettings(updated)
		logger.Info("settings saved", "path", settingsPathOrEmpty())
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow: view.Show,
			OnStartPause: func() {
				if engine.Snapshot().Status == timekeeper.StatusRunning {
					ctrl.Pause()
					return
				}
				ctrl.Start()
			},
			OnReset:       ctrl.Reset,
			OnLap:         ctrl.Lap,
			OnMenu:        ctrl.ReturnToMenu,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(icon)

		events := engine.Subscribe(32)
		go func() {
			for event := range events {
				fyne.Do(func() {
					trayManager.Apply(event)
				})
			}
		}()
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	go lock.Serve(func() {
		fyne.Do(view.Show)
	})

	ticker := scheduler.New(settings.TickInterval, ctrl)
	ticker.Start()
	defer ticker.Stop()

	logger.Info("smarttimer started", "version", version, "tick", settings.TickInterval, "sound", settings.SoundEnabled)
	view.Show()
	fyneApp.Run()
	return nil
}

func settingsPathOrEmpty() string {
	path, err := storage.SettingsPath(appName)
	if err != nil {
		return ""
	}
	return path
}
