package platform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/logging"
)

// ErrToneUnsupported indicates no tone device is available on this system.
var ErrToneUnsupported = errors.New("tone output unsupported")

const toneQueueSize = 8

// beeper produces one tone synchronously.
type beeper interface {
	Beep(frequency int, duration time.Duration) error
}

// TonePlayer plays tones on a worker goroutine so Play never blocks the
// caller. Requests arriving while the queue is full are dropped.
type TonePlayer struct {
	mu     sync.Mutex
	queue  chan timekeeper.Tone
	done   chan struct{}
	closed bool
	beeper beeper
	logger *slog.Logger
}

// NewTonePlayer returns a player backed by the platform tone device.
func NewTonePlayer(logger *slog.Logger) *TonePlayer {
	return newTonePlayer(newBeeper(), logger)
}

func newTonePlayer(device beeper, logger *slog.Logger) *TonePlayer {
	if logger == nil {
		logger = logging.Discard()
	}
	player := &TonePlayer{
		queue:  make(chan timekeeper.Tone, toneQueueSize),
		done:   make(chan struct{}),
		beeper: device,
		logger: logger.With("component", "tone"),
	}
	go player.run()
	return player
}

// Play enqueues tone.
func (player *TonePlayer) Play(tone timekeeper.Tone) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.closed {
		return
	}
	select {
	case player.queue <- tone:
	default:
		player.logger.Debug("tone dropped", "frequency", tone.Frequency)
	}
}

// Close stops the worker after queued tones have played.
func (player *TonePlayer) Close() {
	player.mu.Lock()
	if player.closed {
		player.mu.Unlock()
		return
	}
	player.closed = true
	close(player.queue)
	player.mu.Unlock()

	<-player.done
}

func (player *TonePlayer) run() {
	defer close(player.done)
	for tone := range player.queue {
		if err := player.beeper.Beep(tone.Frequency, tone.Duration); err != nil {
			player.logger.Debug("tone failed", "frequency", tone.Frequency, "error", err)
		}
	}
}

// Silent discards every tone; it backs the mute setting.
type Silent struct{}

// Play does nothing.
func (Silent) Play(timekeeper.Tone) {}

// bellBeeper rings the terminal bell and holds for the tone duration so
// consecutive tones stay audibly separate.
type bellBeeper struct {
	out io.Writer
}

func (device bellBeeper) Beep(_ int, duration time.Duration) error {
	if device.out == nil {
		return ErrToneUnsupported
	}
	if _, err := io.WriteString(device.out, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	time.Sleep(duration)
	return nil
}
