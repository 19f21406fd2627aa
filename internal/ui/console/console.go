// Package console provides a line-oriented timer driven from a readline
// prompt while a background scheduler ticks the engine.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"smarttimer/internal/core/controller"
	"smarttimer/internal/core/format"
	"smarttimer/internal/core/scheduler"
	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/logging"
	"smarttimer/internal/ui/preferences"
)

// Console handles the interactive timer prompt.
type Console struct {
	ctrl     *controller.Controller
	settings preferences.Settings
	rl       *readline.Instance
	out      io.Writer
	logger   *slog.Logger

	mu       sync.Mutex
	timeText string
}

// New creates a console bound to a readline prompt.
func New(settings preferences.Settings, logger *slog.Logger) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	console := newConsole(settings, rl.Stdout(), logger)
	console.rl = rl
	return console, nil
}

func newConsole(settings preferences.Settings, out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Console{
		settings: settings,
		out:      out,
		logger:   logger.With("component", "console"),
		timeText: "0",
	}
}

// Outputs returns the engine sinks for the console. The time display is kept
// for the status command; phase labels and notifications are printed.
func (console *Console) Outputs() timekeeper.Outputs {
	return timekeeper.Outputs{
		Time:     timeRegion{console},
		Label:    labelPrinter{console},
		Notifier: console,
	}
}

// Bind attaches the controller.
func (console *Console) Bind(ctrl *controller.Controller) {
	console.ctrl = ctrl
}

// Notify prints a one-off message.
func (console *Console) Notify(title, message string) {
	fmt.Fprintf(console.out, "[%s] %s\n", title, message)
}

// Watch prints countdown expiry. It returns when events is closed.
func (console *Console) Watch(events <-chan timekeeper.Event) {
	for event := range events {
		if event.Type == timekeeper.EventComplete && event.Mode == timekeeper.ModeCountdown {
			fmt.Fprintln(console.out, "[Done] Countdown finished")
		}
	}
}

// Run starts the tick scheduler and the interactive command loop. It
// returns when the user quits or ctx is cancelled.
func (console *Console) Run(ctx context.Context) {
	defer console.rl.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go scheduler.New(console.settings.TickInterval, console.ctrl).Run(ctx)

	console.printHelp()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := console.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(console.out, "Exiting...")
			return
		}
		if quit := console.Execute(line); quit {
			fmt.Fprintln(console.out, "Exiting...")
			return
		}
	}
}

// Execute runs one command line and reports whether the user asked to quit.
func (console *Console) Execute(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		console.printHelp()

	case "stopwatch", "sw":
		console.ctrl.SelectMode(timekeeper.ModeStopwatch)
		console.printMode()

	case "countdown", "cd":
		console.ctrl.SelectMode(timekeeper.ModeCountdown)
		console.printMode()
		if len(args) > 0 {
			console.report(console.ctrl.StartCountdown(args[0]))
		}

	case "tabata", "tb":
		console.ctrl.SelectMode(timekeeper.ModeTabata)
		console.printMode()
		if len(args) > 0 {
			console.startTabata(args)
		}

	case "menu":
		console.ctrl.ReturnToMenu()
		console.printMode()

	case "start", "s":
		console.cmdStart(args)

	case "pause", "p":
		console.ctrl.Pause()

	case "reset", "r":
		console.ctrl.Reset()

	case "lap", "l":
		console.cmdLap()

	case "laps":
		console.cmdLaps()

	case "status", "st":
		console.cmdStatus()

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(console.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (console *Console) cmdStart(args []string) {
	switch console.ctrl.Mode() {
	case timekeeper.ModeStopwatch:
		console.ctrl.Start()
	case timekeeper.ModeCountdown:
		if len(args) > 0 {
			console.report(console.ctrl.StartCountdown(args[0]))
			return
		}
		if console.ctrl.Engine().Snapshot().Status == timekeeper.StatusPaused {
			console.ctrl.Start()
			return
		}
		seconds := fmt.Sprintf("%d", int(console.settings.CountdownDefault/time.Second))
		console.report(console.ctrl.StartCountdown(seconds))
	case timekeeper.ModeTabata:
		console.startTabata(args)
	case timekeeper.ModeNone:
		fmt.Fprintln(console.out, "Select a mode first: stopwatch, countdown or tabata")
	}
}

func (console *Console) startTabata(args []string) {
	values := []string{
		fmt.Sprintf("%d", int(console.settings.WorkDuration/time.Second)),
		fmt.Sprintf("%d", int(console.settings.RestDuration/time.Second)),
		fmt.Sprintf("%d", console.settings.Rounds),
	}
	copy(values, args)
	console.report(console.ctrl.StartTabata(values[0], values[1], values[2]))
}

func (console *Console) cmdLap() {
	before := len(console.ctrl.Engine().Snapshot().Laps)
	console.ctrl.Lap()
	snapshot := console.ctrl.Engine().Snapshot()
	if len(snapshot.Laps) > before {
		fmt.Fprintln(console.out, lapLine(snapshot.Mode, len(snapshot.Laps), snapshot.Laps[len(snapshot.Laps)-1]))
	}
}

func (console *Console) cmdLaps() {
	snapshot := console.ctrl.Engine().Snapshot()
	if len(snapshot.Laps) == 0 {
		fmt.Fprintln(console.out, "No laps recorded")
		return
	}
	for i, lap := range snapshot.Laps {
		fmt.Fprintln(console.out, lapLine(snapshot.Mode, i+1, lap))
	}
}

func (console *Console) cmdStatus() {
	snapshot := console.ctrl.Engine().Snapshot()
	fmt.Fprintf(console.out, "Mode:   %s\n", snapshot.Mode)
	if snapshot.Mode == timekeeper.ModeNone {
		return
	}
	fmt.Fprintf(console.out, "Status: %s\n", snapshot.Status)
	fmt.Fprintf(console.out, "Time:   %s\n", console.displayedTime())
	if snapshot.Phase != timekeeper.PhaseNone {
		fmt.Fprintf(console.out, "Phase:  %s (%d/%d)\n", timekeeper.PhaseLabel(snapshot.Phase, snapshot.Round), snapshot.Round, snapshot.Rounds)
	}
	if len(snapshot.Laps) > 0 {
		fmt.Fprintf(console.out, "Laps:   %d\n", len(snapshot.Laps))
	}
}

func (console *Console) report(err error) {
	if err == nil {
		return
	}
	var validation *timekeeper.ValidationError
	if errors.As(err, &validation) {
		fmt.Fprintf(console.out, "Error: %s\n", validation.Message)
		return
	}
	console.logger.Error("command failed", "error", err)
	fmt.Fprintf(console.out, "Error: %v\n", err)
}

func (console *Console) printMode() {
	fmt.Fprintf(console.out, "Mode: %s\n", console.ctrl.Mode())
}

func (console *Console) displayedTime() string {
	console.mu.Lock()
	defer console.mu.Unlock()
	return console.timeText
}

func (console *Console) printHelp() {
	fmt.Fprintln(console.out, `
SmartTimer Commands:
  Modes:
    stopwatch              - Select the stopwatch
    countdown [seconds]    - Select the countdown (and start it)
    tabata [work rest n]   - Select Tabata (and start a run)
    menu                   - Return to the menu

  Timer:
    start [args]           - Start or resume the active timer
    pause                  - Pause the stopwatch or countdown
    reset                  - Reset the active timer
    lap                    - Record a lap
    laps                   - List recorded laps
    status                 - Show the timer state

    help                   - Show this help
    quit                   - Exit`)
}

func lapLine(mode timekeeper.Mode, index int, value time.Duration) string {
	if mode == timekeeper.ModeStopwatch {
		return fmt.Sprintf("Lap %d: %s", index, format.Stopwatch(value))
	}
	return fmt.Sprintf("Lap %d: %s", index, format.Hierarchical(value))
}

type timeRegion struct{ console *Console }

func (region timeRegion) SetText(text string) {
	region.console.mu.Lock()
	region.console.timeText = text
	region.console.mu.Unlock()
}

func (region timeRegion) SetColor(timekeeper.Color) {}

type labelPrinter struct{ console *Console }

func (region labelPrinter) SetText(text string) {
	if text != "" {
		fmt.Fprintf(region.console.out, "» %s\n", text)
	}
}

func (region labelPrinter) SetColor(timekeeper.Color) {}
