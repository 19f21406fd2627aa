// Package controller selects which timer mode is active and validates the
// numeric input that starts a countdown or a Tabata run.
package controller

import (
	"log/slog"
	"strconv"
	"strings"

	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/logging"
)

// Callbacks defines the hooks that swap input surfaces.
type Callbacks struct {
	OnModeChange func(timekeeper.Mode)
}

// Controller coordinates mode switches over a single Engine.
type Controller struct {
	engine    *timekeeper.Engine
	callbacks Callbacks
	logger    *slog.Logger
}

// New creates a controller for engine. The engine starts on the menu.
func New(engine *timekeeper.Engine, callbacks Callbacks, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		engine:    engine,
		callbacks: callbacks,
		logger:    logger.With("component", "controller"),
	}
}

// Engine returns the controlled engine.
func (ctrl *Controller) Engine() *timekeeper.Engine {
	return ctrl.engine
}

// Mode returns the active mode.
func (ctrl *Controller) Mode() timekeeper.Mode {
	return ctrl.engine.Mode()
}

// SelectMode fully resets the engine and activates mode. A run in progress
// in another mode is abandoned without confirmation.
func (ctrl *Controller) SelectMode(mode timekeeper.Mode) {
	ctrl.engine.Activate(mode)
	if ctrl.callbacks.OnModeChange != nil {
		ctrl.callbacks.OnModeChange(mode)
	}
}

// ReturnToMenu resets the engine and deactivates every mode surface.
func (ctrl *Controller) ReturnToMenu() {
	ctrl.SelectMode(timekeeper.ModeNone)
}

// StartCountdown parses the seconds field and starts the countdown.
func (ctrl *Controller) StartCountdown(input string) error {
	seconds, err := parseField("seconds", input, timekeeper.MsgCountdownInput)
	if err != nil {
		ctrl.logger.Warn("countdown input rejected", "input", input)
		return err
	}
	return ctrl.engine.StartCountdown(seconds)
}

// StartTabata parses the three Tabata fields and starts a run. Any
// malformed field yields a single validation error.
func (ctrl *Controller) StartTabata(work, rest, rounds string) error {
	values := make([]int, 0, 3)
	for _, field := range []struct{ name, input string }{
		{"work", work},
		{"rest", rest},
		{"rounds", rounds},
	} {
		value, err := parseField(field.name, field.input, timekeeper.MsgTabataInput)
		if err != nil {
			ctrl.logger.Warn("tabata input rejected", "field", field.name, "input", field.input)
			return err
		}
		values = append(values, value)
	}
	if err := ctrl.engine.StartTabata(values[0], values[1], values[2]); err != nil {
		ctrl.logger.Warn("tabata start failed", "error", err)
		return err
	}
	return nil
}

// Start starts or resumes the active timer.
func (ctrl *Controller) Start() { ctrl.engine.Start() }

// Pause pauses the active timer.
func (ctrl *Controller) Pause() { ctrl.engine.Pause() }

// Reset resets the active timer without leaving its mode.
func (ctrl *Controller) Reset() { ctrl.engine.Reset() }

// Lap records a lap on the active timer.
func (ctrl *Controller) Lap() { ctrl.engine.Lap() }

// Tick advances the active timer; it is the scheduler's entry point.
func (ctrl *Controller) Tick() { ctrl.engine.Tick() }

func parseField(name, input, message string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &timekeeper.ValidationError{Field: name, Input: input, Message: message}
	}
	return value, nil
}
