// Package scheduler drives a tick entry point at a fixed cadence.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the reference tick cadence.
const DefaultInterval = 200 * time.Millisecond

// Tickable is anything with a non-blocking tick entry point.
type Tickable interface {
	Tick()
}

// Scheduler calls Tick on its target from one goroutine until stopped.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	target   Tickable
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New creates a scheduler; a non-positive interval uses DefaultInterval.
func New(interval time.Duration, target Tickable) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		target:   target,
	}
}

// Interval returns the tick cadence.
func (scheduler *Scheduler) Interval() time.Duration {
	return scheduler.interval
}

// Start launches the ticking loop. It is a no-op when already started.
func (scheduler *Scheduler) Start() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.running {
		return
	}
	scheduler.running = true
	scheduler.stopCh = make(chan struct{})
	scheduler.doneCh = make(chan struct{})
	go scheduler.run(scheduler.stopCh, scheduler.doneCh)
}

// Stop terminates the ticking loop and waits for it to exit.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	if !scheduler.running {
		scheduler.mu.Unlock()
		return
	}
	close(scheduler.stopCh)
	scheduler.running = false
	done := scheduler.doneCh
	scheduler.mu.Unlock()

	<-done
}

// Run ticks until ctx is cancelled.
func (scheduler *Scheduler) Run(ctx context.Context) {
	scheduler.Start()
	<-ctx.Done()
	scheduler.Stop()
}

func (scheduler *Scheduler) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	ticker := time.NewTicker(scheduler.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			scheduler.target.Tick()
		}
	}
}
