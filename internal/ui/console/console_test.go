package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttimer/internal/core/clock"
	"smarttimer/internal/core/controller"
	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/ui/preferences"
)

type fixture struct {
	console *Console
	ctrl    *controller.Controller
	clock   *clock.MockClock
	out     *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	settings := preferences.DefaultSettings()
	out := &bytes.Buffer{}
	console := newConsole(settings, out, nil)
	mock := clock.NewMockClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	engine := timekeeper.New(settings.TimerConfig(), timekeeper.Options{
		Clock:   mock,
		Outputs: console.Outputs(),
	})
	ctrl := controller.New(engine, controller.Callbacks{}, nil)
	console.Bind(ctrl)
	return &fixture{console: console, ctrl: ctrl, clock: mock, out: out}
}

func (f *fixture) run(lines ...string) {
	for _, line := range lines {
		f.console.Execute(line)
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	f := newFixture(t)

	f.run("jump")

	assert.Contains(t, f.out.String(), "Unknown command: jump")
}

func TestExecute_Quit(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.console.Execute("quit"))
	assert.True(t, f.console.Execute("  Q "))
	assert.False(t, f.console.Execute(""))
}

func TestExecute_StopwatchLaps(t *testing.T) {
	f := newFixture(t)

	f.run("stopwatch", "start")
	f.clock.Advance(1200 * time.Millisecond)
	f.run("lap")
	f.clock.Advance(800 * time.Millisecond)
	f.run("lap")
	f.out.Reset()
	f.run("laps")

	assert.Equal(t, "Lap 1: 00:01.2\nLap 2: 00:02.0\n", f.out.String())
}

func TestExecute_StartOnMenu(t *testing.T) {
	f := newFixture(t)

	f.run("start")

	assert.Contains(t, f.out.String(), "Select a mode first")
	assert.Equal(t, timekeeper.StatusIdle, f.ctrl.Engine().Snapshot().Status)
}

func TestExecute_CountdownWithArgument(t *testing.T) {
	f := newFixture(t)

	f.run("countdown 90")
	f.clock.Advance(time.Second)
	f.ctrl.Tick()
	f.out.Reset()
	f.run("status")

	assert.Contains(t, f.out.String(), "Status: running")
	assert.Contains(t, f.out.String(), "Time:   1:29")
}

func TestExecute_CountdownRejectsText(t *testing.T) {
	f := newFixture(t)

	f.run("countdown abc")

	assert.Contains(t, f.out.String(), "Error: "+timekeeper.MsgCountdownInput)
	assert.Equal(t, timekeeper.StatusIdle, f.ctrl.Engine().Snapshot().Status)
}

func TestExecute_CountdownPauseResume(t *testing.T) {
	f := newFixture(t)

	f.run("countdown 10")
	f.clock.Advance(3 * time.Second)
	f.run("pause")
	f.clock.Advance(time.Minute)
	f.run("start")

	snapshot := f.ctrl.Engine().Snapshot()
	assert.Equal(t, timekeeper.StatusRunning, snapshot.Status)
	assert.Equal(t, 7*time.Second, snapshot.Remaining)
}

func TestExecute_StartWithSecondsWhilePausedRestarts(t *testing.T) {
	f := newFixture(t)

	f.run("countdown 10")
	f.clock.Advance(3 * time.Second)
	f.run("pause", "start 30")

	snapshot := f.ctrl.Engine().Snapshot()
	assert.Equal(t, timekeeper.StatusRunning, snapshot.Status)
	assert.Equal(t, 30*time.Second, snapshot.Remaining)
}

func TestExecute_TabataDefaultsAndLabel(t *testing.T) {
	f := newFixture(t)

	f.run("tabata", "start")

	snapshot := f.ctrl.Engine().Snapshot()
	require.Equal(t, timekeeper.PhaseWork, snapshot.Phase)
	assert.Equal(t, 8, snapshot.Rounds)
	assert.Contains(t, f.out.String(), "» Work • Round 1")
}

func TestExecute_TabataPartialArguments(t *testing.T) {
	f := newFixture(t)

	f.run("tabata 5 2")

	snapshot := f.ctrl.Engine().Snapshot()
	assert.Equal(t, 8, snapshot.Rounds)
	assert.Equal(t, 5*time.Second, snapshot.Remaining)
}

func TestExecute_TabataCompletionNotifies(t *testing.T) {
	f := newFixture(t)

	f.run("tabata 1 1 1")
	for i := 0; i < 15; i++ {
		f.clock.Advance(200 * time.Millisecond)
		f.ctrl.Tick()
	}

	assert.Contains(t, f.out.String(), "[Done] Tabata complete!")
	assert.Equal(t, timekeeper.StatusComplete, f.ctrl.Engine().Snapshot().Status)
}

func TestWatch_PrintsCountdownExpiry(t *testing.T) {
	f := newFixture(t)
	events := f.ctrl.Engine().Subscribe(16)
	done := make(chan struct{})

	f.run("countdown 1")
	f.clock.Advance(time.Second)
	f.ctrl.Tick()
	f.ctrl.Engine().Close()

	go func() {
		f.console.Watch(events)
		close(done)
	}()
	<-done

	assert.Contains(t, f.out.String(), "[Done] Countdown finished")
}
