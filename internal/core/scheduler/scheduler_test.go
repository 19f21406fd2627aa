package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type counter struct{ ticks atomic.Int64 }

func (c *counter) Tick() { c.ticks.Add(1) }

func TestScheduler_TicksUntilStopped(t *testing.T) {
	target := &counter{}
	scheduler := New(5*time.Millisecond, target)

	scheduler.Start()
	scheduler.Start()
	assert.Eventually(t, func() bool { return target.ticks.Load() >= 3 }, time.Second, time.Millisecond)

	scheduler.Stop()
	stopped := target.ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, target.ticks.Load())

	scheduler.Stop()
}

func TestScheduler_RestartAfterStop(t *testing.T) {
	target := &counter{}
	scheduler := New(5*time.Millisecond, target)

	scheduler.Start()
	scheduler.Stop()
	before := target.ticks.Load()

	scheduler.Start()
	defer scheduler.Stop()
	assert.Eventually(t, func() bool { return target.ticks.Load() > before }, time.Second, time.Millisecond)
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	target := &counter{}
	scheduler := New(5*time.Millisecond, target)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return target.ticks.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(0, &counter{}).Interval())
}
