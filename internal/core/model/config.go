package model

import "time"

// TabataConfig defines one interval-training run.
type TabataConfig struct {
	Work   time.Duration
	Rest   time.Duration
	Rounds int
}

// TimerConfig contains runtime settings for the timer engine.
type TimerConfig struct {
	TickInterval  time.Duration
	WarningWindow time.Duration

	// Defaults pre-filled into the input surfaces.
	CountdownDefault time.Duration
	TabataDefault    TabataConfig

	SoundEnabled bool
}

// DefaultTimerConfig returns the stock cadence and Tabata protocol.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		TickInterval:     200 * time.Millisecond,
		WarningWindow:    3 * time.Second,
		CountdownDefault: time.Minute,
		TabataDefault: TabataConfig{
			Work:   20 * time.Second,
			Rest:   10 * time.Second,
			Rounds: 8,
		},
		SoundEnabled: true,
	}
}
