package timekeeper

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"smarttimer/internal/core/clock"
	"smarttimer/internal/core/format"
	"smarttimer/internal/core/model"
	"smarttimer/internal/logging"
)

// Options contains runtime collaborators for the Engine.
type Options struct {
	Clock   clock.Clock
	Outputs Outputs
	Logger  *slog.Logger
}

// Engine is the timer state machine shared by the stopwatch, countdown and
// Tabata modes. Every mutation goes through its methods under one mutex.
type Engine struct {
	mu     sync.Mutex
	config model.TimerConfig
	clock  clock.Clock
	out    Outputs
	logger *slog.Logger
	events []chan Event

	mode        Mode
	status      Status
	reference   time.Time
	accumulated time.Duration
	target      time.Duration
	laps        []time.Duration
	tabata      *tabataState
}

type tabataState struct {
	config model.TabataConfig
	phase  Phase
	round  int
	blink  bool
}

// New creates an idle Engine with no mode selected.
func New(config model.TimerConfig, options Options) *Engine {
	if config.WarningWindow <= 0 {
		config.WarningWindow = 3 * time.Second
	}
	if options.Clock == nil {
		options.Clock = clock.New()
	}
	if options.Logger == nil {
		options.Logger = logging.Discard()
	}

	return &Engine{
		config: config,
		clock:  options.Clock,
		out:    options.Outputs.withDefaults(),
		logger: options.Logger.With("component", "timekeeper"),
		status: StatusIdle,
	}
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Close closes all observer channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Activate performs a full reset and makes mode the active configuration.
func (engine *Engine) Activate(mode Mode) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.resetLocked()
	engine.mode = mode
	engine.logger.Info("mode selected", "mode", mode.String())
	engine.emitLocked(Event{
		Type:   EventStateChange,
		Mode:   mode,
		Status: engine.status,
		At:     engine.clock.Now(),
	})
}

// Mode returns the active mode.
func (engine *Engine) Mode() Mode {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.mode
}

// Start starts or resumes the stopwatch, or resumes a paused countdown.
// It is a no-op when already running and in Tabata mode.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.status == StatusRunning {
		return
	}
	now := engine.clock.Now()

	switch engine.mode {
	case ModeStopwatch:
		engine.reference = now.Add(-engine.accumulated)
	case ModeCountdown:
		if engine.status != StatusPaused {
			return
		}
		engine.reference = now
	case ModeTabata, ModeNone:
		return
	}
	engine.setStatusLocked(StatusRunning, now)
}

// StartCountdown begins a countdown of seconds. A negative value, or one too
// large to hold as a duration, is rejected with a *ValidationError before any
// state changes.
func (engine *Engine) StartCountdown(seconds int) error {
	if !format.SecondsInRange(seconds) {
		return &ValidationError{Field: "seconds", Input: strconv.Itoa(seconds), Message: MsgCountdownInput}
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.mode != ModeCountdown {
		return fmt.Errorf("start countdown in %s mode: %w", engine.mode, ErrWrongMode)
	}
	now := engine.clock.Now()
	engine.target = format.Seconds(seconds)
	engine.reference = now
	engine.setStatusLocked(StatusRunning, now)
	return nil
}

// StartTabata resets the engine and begins round 1 of a Tabata run. All
// three values must be positive and no larger than format.MaxSeconds.
func (engine *Engine) StartTabata(work, rest, rounds int) error {
	for _, field := range []struct {
		name  string
		value int
	}{{"work", work}, {"rest", rest}, {"rounds", rounds}} {
		if field.value <= 0 || !format.SecondsInRange(field.value) {
			return &ValidationError{Field: field.name, Input: strconv.Itoa(field.value), Message: MsgTabataInput}
		}
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.mode != ModeTabata {
		return fmt.Errorf("start tabata in %s mode: %w", engine.mode, ErrWrongMode)
	}

	engine.resetLocked()
	now := engine.clock.Now()
	engine.tabata = &tabataState{
		config: model.TabataConfig{
			Work:   format.Seconds(work),
			Rest:   format.Seconds(rest),
			Rounds: rounds,
		},
		phase: PhaseWork,
		round: 1,
	}
	engine.target = engine.tabata.config.Work
	engine.reference = now
	engine.setStatusLocked(StatusRunning, now)
	engine.showPhaseLocked(now)
	return nil
}

// Pause banks elapsed time for the stopwatch or remaining time for the
// countdown. Tabata runs cannot be paused.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.status != StatusRunning {
		return
	}
	now := engine.clock.Now()

	switch engine.mode {
	case ModeStopwatch:
		engine.accumulated = now.Sub(engine.reference)
	case ModeCountdown:
		engine.target -= now.Sub(engine.reference)
	case ModeTabata, ModeNone:
		return
	}
	engine.setStatusLocked(StatusPaused, now)
}

// Reset returns the active mode to idle and clears laps.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.resetLocked()
	engine.logger.Info("timer reset", "mode", engine.mode.String())
}

// Lap records the current elapsed (stopwatch) or remaining (countdown) time.
// It is ignored unless the timer is running.
func (engine *Engine) Lap() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.status != StatusRunning {
		return
	}
	now := engine.clock.Now()

	var value time.Duration
	var text string
	switch engine.mode {
	case ModeStopwatch:
		value = now.Sub(engine.reference)
		text = format.Stopwatch(value)
	case ModeCountdown:
		value = engine.remainingLocked(now)
		if value < 0 {
			value = 0
		}
		text = format.Hierarchical(value)
	case ModeTabata, ModeNone:
		return
	}

	engine.laps = append(engine.laps, value)
	engine.out.Alert.Play(ToneLap)
	engine.logger.Debug("lap recorded", "mode", engine.mode.String(), "lap", len(engine.laps), "value", value)
	engine.emitLocked(Event{
		Type:   EventLap,
		Mode:   engine.mode,
		Status: engine.status,
		Value:  value,
		Lap:    len(engine.laps),
		Text:   text,
		At:     now,
	})
}

// Tick recomputes derived time for the active mode and pushes display and
// alert updates. It never blocks and does nothing unless running.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.status != StatusRunning {
		return
	}
	now := engine.clock.Now()

	switch engine.mode {
	case ModeStopwatch:
		engine.tickStopwatchLocked(now)
	case ModeCountdown:
		engine.tickCountdownLocked(now)
	case ModeTabata:
		engine.tickTabataLocked(now)
	case ModeNone:
	}
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	now := engine.clock.Now()
	snapshot := Snapshot{
		Mode:   engine.mode,
		Status: engine.status,
		Laps:   append([]time.Duration(nil), engine.laps...),
	}

	switch engine.mode {
	case ModeStopwatch:
		snapshot.Elapsed = engine.accumulated
		if engine.status == StatusRunning {
			snapshot.Elapsed = now.Sub(engine.reference)
		}
	case ModeCountdown, ModeTabata:
		switch engine.status {
		case StatusRunning:
			snapshot.Remaining = max(engine.remainingLocked(now), 0)
		case StatusPaused:
			snapshot.Remaining = max(engine.target, 0)
		}
		if engine.tabata != nil {
			snapshot.Phase = engine.tabata.phase
			snapshot.Round = engine.tabata.round
			snapshot.Rounds = engine.tabata.config.Rounds
		}
	case ModeNone:
	}
	return snapshot
}

func (engine *Engine) tickStopwatchLocked(now time.Time) {
	elapsed := now.Sub(engine.reference)
	text := format.Stopwatch(elapsed)
	engine.out.Time.SetText(text)
	engine.emitProgressLocked(now, elapsed, text)
}

func (engine *Engine) tickCountdownLocked(now time.Time) {
	remaining := engine.remainingLocked(now)
	if remaining <= 0 {
		engine.out.Time.SetText("0")
		engine.status = StatusExpired
		engine.out.Alert.Play(ToneCountdownDone)
		engine.logger.Info("countdown complete")
		engine.emitLocked(Event{
			Type:   EventComplete,
			Mode:   engine.mode,
			Status: engine.status,
			Text:   "0",
			At:     now,
		})
		return
	}

	text := format.Hierarchical(remaining)
	engine.out.Time.SetText(text)
	engine.emitProgressLocked(now, remaining, text)
}

func (engine *Engine) tickTabataLocked(now time.Time) {
	state := engine.tabata
	remaining := engine.remainingLocked(now)

	if remaining > 0 && remaining <= engine.config.WarningWindow {
		state.blink = !state.blink
		if state.blink {
			engine.out.Time.SetColor(ColorWarning)
		} else {
			engine.out.Time.SetColor(state.phase.color())
		}
		engine.out.Alert.Play(ToneWarning)
	} else {
		engine.out.Time.SetColor(state.phase.color())
	}

	if remaining <= 0 {
		engine.advancePhaseLocked(now)
		return
	}

	text := format.Hierarchical(remaining)
	engine.out.Time.SetText(text)
	engine.emitProgressLocked(now, remaining, text)
}

func (engine *Engine) advancePhaseLocked(now time.Time) {
	state := engine.tabata

	switch state.phase {
	case PhaseWork:
		engine.out.Alert.Play(ToneWorkEnd)
		state.phase = PhaseRest
		engine.target = state.config.Rest
	case PhaseRest:
		engine.out.Alert.Play(ToneRestEnd)
		if state.round >= state.config.Rounds {
			engine.completeTabataLocked(now)
			return
		}
		state.round++
		state.phase = PhaseWork
		engine.target = state.config.Work
	case PhaseNone:
		return
	}

	engine.reference = now
	engine.showPhaseLocked(now)
}

func (engine *Engine) completeTabataLocked(now time.Time) {
	engine.status = StatusComplete
	engine.out.Alert.Play(ToneTabataDone)
	engine.out.Time.SetColor(ColorNeutral)
	engine.out.Notifier.Notify("Done", "Tabata complete!")
	engine.logger.Info("tabata complete", "rounds", engine.tabata.config.Rounds)
	engine.emitLocked(Event{
		Type:   EventComplete,
		Mode:   engine.mode,
		Status: engine.status,
		Round:  engine.tabata.round,
		At:     now,
	})
}

func (engine *Engine) showPhaseLocked(now time.Time) {
	state := engine.tabata
	engine.out.Label.SetText(PhaseLabel(state.phase, state.round))
	engine.out.Time.SetColor(state.phase.color())
	engine.logger.Info("phase started", "phase", state.phase, "round", state.round)
	engine.emitLocked(Event{
		Type:   EventPhaseChange,
		Mode:   engine.mode,
		Status: engine.status,
		Phase:  state.phase,
		Round:  state.round,
		Value:  engine.target,
		At:     now,
	})
}

func (engine *Engine) remainingLocked(now time.Time) time.Duration {
	return engine.target - now.Sub(engine.reference)
}

func (engine *Engine) resetLocked() {
	engine.status = StatusIdle
	engine.reference = time.Time{}
	engine.accumulated = 0
	engine.target = 0
	engine.laps = nil
	engine.tabata = nil

	engine.out.Time.SetText("0")
	engine.out.Time.SetColor(ColorNeutral)
	engine.out.Label.SetText("")

	engine.emitLocked(Event{
		Type:   EventReset,
		Mode:   engine.mode,
		Status: engine.status,
		At:     engine.clock.Now(),
	})
}

func (engine *Engine) setStatusLocked(status Status, now time.Time) {
	engine.status = status
	engine.logger.Info("timer "+string(status), "mode", engine.mode.String())
	engine.emitLocked(Event{
		Type:   EventStateChange,
		Mode:   engine.mode,
		Status: status,
		At:     now,
	})
}

func (engine *Engine) emitProgressLocked(now time.Time, value time.Duration, text string) {
	event := Event{
		Type:   EventProgress,
		Mode:   engine.mode,
		Status: engine.status,
		Value:  value,
		Text:   text,
		At:     now,
	}
	if engine.tabata != nil {
		event.Phase = engine.tabata.phase
		event.Round = engine.tabata.round
	}
	engine.emitLocked(event)
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// PhaseLabel renders the Tabata phase label, e.g. "Work • Round 2".
func PhaseLabel(phase Phase, round int) string {
	switch phase {
	case PhaseWork:
		return fmt.Sprintf("Work • Round %d", round)
	case PhaseRest:
		return fmt.Sprintf("Rest • Round %d", round)
	default:
		return ""
	}
}
