package timekeeper

import "time"

// Mode selects which timer configuration is active.
type Mode string

const (
	ModeNone      Mode = ""
	ModeStopwatch Mode = "stopwatch"
	ModeCountdown Mode = "countdown"
	ModeTabata    Mode = "tabata"
)

// String returns the mode name, "menu" when nothing is selected.
func (mode Mode) String() string {
	if mode == ModeNone {
		return "menu"
	}
	return string(mode)
}

// Status represents where the active timer is in its lifecycle.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusExpired  Status = "expired"
	StatusComplete Status = "complete"
)

// Phase is one contiguous Tabata interval.
type Phase string

const (
	PhaseNone Phase = ""
	PhaseWork Phase = "work"
	PhaseRest Phase = "rest"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventLap         EventType = "lap"
	EventPhaseChange EventType = "phase_change"
	EventComplete    EventType = "complete"
	EventReset       EventType = "reset"
)

// Event represents an engine update for observers.
type Event struct {
	Type   EventType
	Mode   Mode
	Status Status
	Phase  Phase
	Round  int
	// Value is the elapsed time for the stopwatch and the remaining time
	// for countdown and Tabata.
	Value time.Duration
	// Lap is the 1-based index of a recorded lap.
	Lap  int
	Text string
	At   time.Time
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Mode      Mode
	Status    Status
	Phase     Phase
	Round     int
	Rounds    int
	Elapsed   time.Duration
	Remaining time.Duration
	Laps      []time.Duration
}

// Running reports whether time is advancing.
func (snapshot Snapshot) Running() bool {
	return snapshot.Status == StatusRunning
}
