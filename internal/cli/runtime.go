package cli

import (
	"fmt"
	"io"
	"log/slog"

	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/logging"
	"smarttimer/internal/platform"
	"smarttimer/internal/storage"
	"smarttimer/internal/ui/preferences"
)

// logger builds the process logger. Logs go to the --log-file when set,
// otherwise to defaultOut; a nil defaultOut discards them.
func (opts *options) logger(defaultOut io.Writer) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, nil, err
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.JSON = opts.logJSON
	cfg.Output = defaultOut
	closer := func() {}
	if opts.logFile != "" {
		file, err := logging.OpenFile(opts.logFile)
		if err != nil {
			return nil, nil, err
		}
		cfg.Output = file
		closer = func() { _ = file.Close() }
	}
	if cfg.Output == nil {
		return logging.Discard(), closer, nil
	}
	return logging.New(cfg), closer, nil
}

// settings loads the persisted settings and applies flag overrides. A
// broken settings file is reported and replaced by defaults.
func (opts *options) settings(logger *slog.Logger) preferences.Settings {
	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("settings load failed, using defaults", "error", err)
		settings = preferences.DefaultSettings()
	}
	return opts.apply(settings)
}

func (opts *options) apply(settings preferences.Settings) preferences.Settings {
	if opts.tick > 0 {
		settings.TickInterval = opts.tick
	}
	if opts.mute {
		settings.SoundEnabled = false
	}
	return settings
}

// newAlert returns the tone sink for settings and its shutdown func.
func newAlert(settings preferences.Settings, logger *slog.Logger) (timekeeper.Alert, func()) {
	if !settings.SoundEnabled {
		return platform.Silent{}, func() {}
	}
	player := platform.NewTonePlayer(logger)
	return player, player.Close
}

func validateTick(opts *options) error {
	if opts.tick < 0 {
		return fmt.Errorf("invalid --tick %s: must be positive", opts.tick)
	}
	return nil
}
