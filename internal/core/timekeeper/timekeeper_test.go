package timekeeper

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttimer/internal/core/clock"
	"smarttimer/internal/core/format"
	"smarttimer/internal/core/model"
)

const tick = 200 * time.Millisecond

type region struct {
	texts  []string
	colors []Color
}

func (r *region) SetText(text string)  { r.texts = append(r.texts, text) }
func (r *region) SetColor(color Color) { r.colors = append(r.colors, color) }

func (r *region) text() string {
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}

func (r *region) color() Color {
	if len(r.colors) == 0 {
		return ""
	}
	return r.colors[len(r.colors)-1]
}

type speaker struct{ tones []Tone }

func (s *speaker) Play(tone Tone) { s.tones = append(s.tones, tone) }

func (s *speaker) count(tone Tone) int {
	n := 0
	for _, played := range s.tones {
		if played == tone {
			n++
		}
	}
	return n
}

type inbox struct{ messages []string }

func (i *inbox) Notify(title, message string) { i.messages = append(i.messages, title+": "+message) }

type fixture struct {
	engine  *Engine
	clock   *clock.MockClock
	time    *region
	label   *region
	speaker *speaker
	inbox   *inbox
}

func newFixture(t *testing.T, mode Mode) *fixture {
	t.Helper()
	f := &fixture{
		clock:   clock.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)),
		time:    &region{},
		label:   &region{},
		speaker: &speaker{},
		inbox:   &inbox{},
	}
	f.engine = New(model.DefaultTimerConfig(), Options{
		Clock: f.clock,
		Outputs: Outputs{
			Time:     f.time,
			Label:    f.label,
			Alert:    f.speaker,
			Notifier: f.inbox,
		},
	})
	f.engine.Activate(mode)
	return f
}

func (f *fixture) advance(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		f.clock.Advance(tick)
		f.engine.Tick()
	}
}

func TestStopwatch_TickFormatsElapsed(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	f.engine.Start()
	f.clock.Advance(65*time.Second + 300*time.Millisecond)
	f.engine.Tick()

	assert.Equal(t, "01:05.3", f.time.text())
	assert.True(t, f.engine.Snapshot().Running())
}

func TestStopwatch_PauseResumeIsAdditive(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	f.engine.Start()
	f.advance(3 * time.Second)
	f.engine.Pause()

	f.clock.Advance(10 * time.Second)
	f.engine.Tick()
	assert.Equal(t, 3*time.Second, f.engine.Snapshot().Elapsed)

	f.engine.Start()
	f.advance(2 * time.Second)
	f.engine.Pause()

	snapshot := f.engine.Snapshot()
	assert.Equal(t, StatusPaused, snapshot.Status)
	assert.Equal(t, 5*time.Second, snapshot.Elapsed)
}

func TestStopwatch_StartWhileRunningIsNoop(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	f.engine.Start()
	f.clock.Advance(time.Second)
	f.engine.Start()
	f.clock.Advance(time.Second)

	assert.Equal(t, 2*time.Second, f.engine.Snapshot().Elapsed)
}

func TestStopwatch_PauseWhilePausedIsNoop(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	f.engine.Start()
	f.clock.Advance(time.Second)
	f.engine.Pause()
	f.clock.Advance(time.Second)
	f.engine.Pause()

	assert.Equal(t, time.Second, f.engine.Snapshot().Elapsed)
}

func TestLap_IgnoredWhileIdle(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	f.engine.Lap()

	assert.Empty(t, f.engine.Snapshot().Laps)
	assert.Empty(t, f.speaker.tones)
}

func TestLap_IgnoredWhilePaused(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	f.engine.Start()
	f.clock.Advance(time.Second)
	f.engine.Pause()
	f.engine.Lap()

	assert.Empty(t, f.engine.Snapshot().Laps)
	assert.Empty(t, f.speaker.tones)
}

func TestStopwatch_LapRecordsElapsed(t *testing.T) {
	f := newFixture(t, ModeStopwatch)
	events := f.engine.Subscribe(16)

	f.engine.Start()
	f.clock.Advance(1500 * time.Millisecond)
	f.engine.Lap()
	f.clock.Advance(time.Second)
	f.engine.Lap()

	assert.Equal(t, []time.Duration{1500 * time.Millisecond, 2500 * time.Millisecond}, f.engine.Snapshot().Laps)
	assert.Equal(t, 2, f.speaker.count(ToneLap))

	var laps []Event
	for len(events) > 0 {
		if event := <-events; event.Type == EventLap {
			laps = append(laps, event)
		}
	}
	require.Len(t, laps, 2)
	assert.Equal(t, 1, laps[0].Lap)
	assert.Equal(t, "00:01.5", laps[0].Text)
	assert.Equal(t, "00:02.5", laps[1].Text)
}

func TestStopwatch_ResetClearsState(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	f.engine.Start()
	f.clock.Advance(2 * time.Second)
	f.engine.Lap()
	f.engine.Reset()

	snapshot := f.engine.Snapshot()
	assert.Equal(t, StatusIdle, snapshot.Status)
	assert.Zero(t, snapshot.Elapsed)
	assert.Empty(t, snapshot.Laps)
	assert.Equal(t, "0", f.time.text())
	assert.Equal(t, ColorNeutral, f.time.color())

	f.engine.Start()
	f.clock.Advance(time.Second)
	assert.Equal(t, time.Second, f.engine.Snapshot().Elapsed)
}

func TestTick_IdleIsNoop(t *testing.T) {
	f := newFixture(t, ModeStopwatch)
	texts := len(f.time.texts)

	f.advance(time.Second)

	assert.Len(t, f.time.texts, texts)
}

func TestCountdown_DecreasesAndExpiresOnce(t *testing.T) {
	f := newFixture(t, ModeCountdown)
	events := f.engine.Subscribe(64)

	require.NoError(t, f.engine.StartCountdown(3))

	previous := f.engine.Snapshot().Remaining
	assert.Equal(t, 3*time.Second, previous)
	for i := 0; i < 25; i++ {
		f.clock.Advance(tick)
		f.engine.Tick()
		remaining := f.engine.Snapshot().Remaining
		assert.LessOrEqual(t, remaining, previous)
		previous = remaining
	}

	snapshot := f.engine.Snapshot()
	assert.Equal(t, StatusExpired, snapshot.Status)
	assert.Zero(t, snapshot.Remaining)
	assert.Equal(t, "0", f.time.text())
	assert.Equal(t, 1, f.speaker.count(ToneCountdownDone))

	completions := 0
	for len(events) > 0 {
		if event := <-events; event.Type == EventComplete {
			completions++
		}
	}
	assert.Equal(t, 1, completions)
}

func TestCountdown_DisplaysHierarchical(t *testing.T) {
	f := newFixture(t, ModeCountdown)

	require.NoError(t, f.engine.StartCountdown(3700))
	f.clock.Advance(tick)
	f.engine.Tick()
	assert.Equal(t, "1:01:39", f.time.text())

	f.clock.Advance(3600 * time.Second)
	f.engine.Tick()
	assert.Equal(t, "1:39", f.time.text())

	f.clock.Advance(90 * time.Second)
	f.engine.Tick()
	assert.Equal(t, "9", f.time.text())
}

func TestCountdown_PauseAndResume(t *testing.T) {
	f := newFixture(t, ModeCountdown)

	require.NoError(t, f.engine.StartCountdown(10))
	f.advance(4 * time.Second)
	f.engine.Pause()
	assert.Equal(t, 6*time.Second, f.engine.Snapshot().Remaining)

	f.clock.Advance(100 * time.Second)
	f.engine.Tick()
	assert.Equal(t, StatusPaused, f.engine.Snapshot().Status)

	f.engine.Start()
	f.clock.Advance(time.Second)
	f.engine.Tick()
	assert.Equal(t, "5", f.time.text())
	assert.Equal(t, 5*time.Second, f.engine.Snapshot().Remaining)
}

func TestCountdown_StartAfterExpiryIsNoop(t *testing.T) {
	f := newFixture(t, ModeCountdown)

	require.NoError(t, f.engine.StartCountdown(1))
	f.advance(2 * time.Second)
	f.engine.Start()

	assert.Equal(t, StatusExpired, f.engine.Snapshot().Status)
}

func TestCountdown_LapRecordsRemaining(t *testing.T) {
	f := newFixture(t, ModeCountdown)

	require.NoError(t, f.engine.StartCountdown(30))
	f.clock.Advance(12 * time.Second)
	f.engine.Lap()

	assert.Equal(t, []time.Duration{18 * time.Second}, f.engine.Snapshot().Laps)
	assert.Equal(t, 1, f.speaker.count(ToneLap))
}

func TestCountdown_RejectsNegative(t *testing.T) {
	f := newFixture(t, ModeCountdown)

	err := f.engine.StartCountdown(-5)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgCountdownInput, validation.Message)
	assert.Equal(t, StatusIdle, f.engine.Snapshot().Status)
}

func TestCountdown_RejectsSecondsBeyondDurationRange(t *testing.T) {
	f := newFixture(t, ModeCountdown)
	limit := format.MaxSeconds

	err := f.engine.StartCountdown(int(limit + 1))

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StatusIdle, f.engine.Snapshot().Status)

	require.NoError(t, f.engine.StartCountdown(int(limit)))
	f.clock.Advance(tick)
	f.engine.Tick()
	snapshot := f.engine.Snapshot()
	assert.Equal(t, StatusRunning, snapshot.Status)
	assert.Equal(t, format.Seconds(int(limit))-tick, snapshot.Remaining)
}

func TestTabata_RejectsSecondsBeyondDurationRange(t *testing.T) {
	f := newFixture(t, ModeTabata)
	limit := format.MaxSeconds

	err := f.engine.StartTabata(int(limit+1), 10, 2)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "work", validation.Field)
	assert.Equal(t, MsgTabataInput, validation.Message)
	assert.Equal(t, StatusIdle, f.engine.Snapshot().Status)
}

func TestCountdown_ZeroExpiresOnFirstTick(t *testing.T) {
	f := newFixture(t, ModeCountdown)

	require.NoError(t, f.engine.StartCountdown(0))
	f.clock.Advance(tick)
	f.engine.Tick()

	assert.Equal(t, StatusExpired, f.engine.Snapshot().Status)
	assert.Equal(t, 1, f.speaker.count(ToneCountdownDone))
}

func TestStart_WrongMode(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	assert.ErrorIs(t, f.engine.StartCountdown(10), ErrWrongMode)
	assert.ErrorIs(t, f.engine.StartTabata(1, 1, 1), ErrWrongMode)
	assert.Equal(t, StatusIdle, f.engine.Snapshot().Status)
}

func TestTabata_RoundAccounting(t *testing.T) {
	f := newFixture(t, ModeTabata)
	events := f.engine.Subscribe(256)

	require.NoError(t, f.engine.StartTabata(1, 1, 2))
	f.advance(6 * time.Second)

	var phases []string
	for len(events) > 0 {
		event := <-events
		if event.Type == EventPhaseChange {
			phases = append(phases, PhaseLabel(event.Phase, event.Round))
		}
	}
	assert.Equal(t, []string{
		"Work • Round 1",
		"Rest • Round 1",
		"Work • Round 2",
		"Rest • Round 2",
	}, phases)

	workLabels := 0
	for _, text := range f.label.texts {
		if strings.HasPrefix(text, "Work") {
			workLabels++
		}
	}
	assert.Equal(t, 2, workLabels)

	assert.Equal(t, 1, f.speaker.count(ToneTabataDone))
	assert.Equal(t, 2, f.speaker.count(ToneWorkEnd))
	assert.Equal(t, 2, f.speaker.count(ToneRestEnd))
	assert.Equal(t, 16, f.speaker.count(ToneWarning))
	assert.Equal(t, []string{"Done: Tabata complete!"}, f.inbox.messages)

	snapshot := f.engine.Snapshot()
	assert.Equal(t, StatusComplete, snapshot.Status)
	assert.Equal(t, 2, snapshot.Round)
	assert.Equal(t, ColorNeutral, f.time.color())
}

func TestTabata_CompleteIsTerminal(t *testing.T) {
	f := newFixture(t, ModeTabata)

	require.NoError(t, f.engine.StartTabata(1, 1, 1))
	f.advance(3 * time.Second)
	tones := len(f.speaker.tones)
	texts := len(f.time.texts)

	f.advance(5 * time.Second)

	assert.Len(t, f.speaker.tones, tones)
	assert.Len(t, f.time.texts, texts)
	assert.Equal(t, StatusComplete, f.engine.Snapshot().Status)
}

func TestTabata_WarningWindowBlinks(t *testing.T) {
	f := newFixture(t, ModeTabata)

	require.NoError(t, f.engine.StartTabata(5, 5, 1))
	assert.Equal(t, "Work • Round 1", f.label.text())
	assert.Equal(t, ColorWork, f.time.color())

	f.clock.Advance(time.Second)
	f.engine.Tick()
	assert.Equal(t, ColorWork, f.time.color())
	assert.Equal(t, "4", f.time.text())
	assert.Zero(t, f.speaker.count(ToneWarning))

	f.clock.Advance(time.Second)
	f.engine.Tick()
	assert.Equal(t, ColorWarning, f.time.color())
	assert.Equal(t, 1, f.speaker.count(ToneWarning))

	f.clock.Advance(tick)
	f.engine.Tick()
	assert.Equal(t, ColorWork, f.time.color())
	assert.Equal(t, 2, f.speaker.count(ToneWarning))

	f.clock.Advance(tick)
	f.engine.Tick()
	assert.Equal(t, ColorWarning, f.time.color())
}

func TestTabata_RestPhaseUsesRestColor(t *testing.T) {
	f := newFixture(t, ModeTabata)

	require.NoError(t, f.engine.StartTabata(1, 10, 2))
	f.advance(time.Second)

	assert.Equal(t, "Rest • Round 1", f.label.text())
	assert.Equal(t, ColorRest, f.time.color())
	assert.Equal(t, PhaseRest, f.engine.Snapshot().Phase)

	f.clock.Advance(tick)
	f.engine.Tick()
	assert.Equal(t, ColorRest, f.time.color())
	assert.Equal(t, "9", f.time.text())
}

func TestTabata_PauseAndLapAreNoops(t *testing.T) {
	f := newFixture(t, ModeTabata)

	require.NoError(t, f.engine.StartTabata(20, 10, 8))
	f.clock.Advance(time.Second)
	f.engine.Pause()
	f.engine.Lap()

	snapshot := f.engine.Snapshot()
	assert.Equal(t, StatusRunning, snapshot.Status)
	assert.Empty(t, snapshot.Laps)
	assert.Equal(t, 19*time.Second, snapshot.Remaining)
}

func TestTabata_InvalidInputLeavesRunUntouched(t *testing.T) {
	f := newFixture(t, ModeTabata)
	require.NoError(t, f.engine.StartTabata(20, 10, 8))
	f.clock.Advance(5 * time.Second)
	before := f.engine.Snapshot()

	err := f.engine.StartTabata(20, 10, 0)

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "rounds", validation.Field)
	assert.Equal(t, MsgTabataInput, validation.Message)
	assert.Equal(t, before, f.engine.Snapshot())
}

func TestActivate_DiscardsState(t *testing.T) {
	f := newFixture(t, ModeStopwatch)

	f.engine.Start()
	f.clock.Advance(4 * time.Second)
	f.engine.Lap()

	f.engine.Activate(ModeCountdown)
	f.engine.Activate(ModeStopwatch)

	snapshot := f.engine.Snapshot()
	assert.Equal(t, ModeStopwatch, snapshot.Mode)
	assert.Equal(t, StatusIdle, snapshot.Status)
	assert.Zero(t, snapshot.Elapsed)
	assert.Empty(t, snapshot.Laps)
	assert.Equal(t, "", f.label.text())
}

func TestClose_ClosesSubscribers(t *testing.T) {
	f := newFixture(t, ModeStopwatch)
	events := f.engine.Subscribe(1)

	f.engine.Close()

	for range events {
	}
	_, ok := <-events
	assert.False(t, ok)
}
