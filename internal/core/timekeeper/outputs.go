package timekeeper

import "time"

// Color is a display colour hint.
type Color string

const (
	ColorNeutral Color = "black"
	ColorWork    Color = "red"
	ColorRest    Color = "green"
	ColorWarning Color = "yellow"
)

// Display is one text region of the frontend.
type Display interface {
	SetText(text string)
	SetColor(color Color)
}

// Tone is a request to play a beep.
type Tone struct {
	Frequency int
	Duration  time.Duration
}

// Alert tones. Ending Work is pitched above ending Rest so the two can be
// told apart by ear.
var (
	ToneLap           = Tone{Frequency: 900, Duration: 100 * time.Millisecond}
	ToneWorkEnd       = Tone{Frequency: 1500, Duration: 300 * time.Millisecond}
	ToneRestEnd       = Tone{Frequency: 800, Duration: 300 * time.Millisecond}
	ToneCountdownDone = Tone{Frequency: 1500, Duration: 400 * time.Millisecond}
	ToneTabataDone    = Tone{Frequency: 2000, Duration: 600 * time.Millisecond}
	ToneWarning       = Tone{Frequency: 2000, Duration: 100 * time.Millisecond}
)

// Alert plays tones.
type Alert interface {
	Play(tone Tone)
}

// Notifier surfaces a one-off message to the user.
type Notifier interface {
	Notify(title, message string)
}

// Outputs are the collaborators the engine pushes side effects to. They are
// called with the engine lock held, so they must not block or call back into
// the engine. Nil members are replaced with no-ops.
type Outputs struct {
	Time     Display
	Label    Display
	Alert    Alert
	Notifier Notifier
}

type discard struct{}

func (discard) SetText(string)        {}
func (discard) SetColor(Color)        {}
func (discard) Play(Tone)             {}
func (discard) Notify(string, string) {}

func (outputs Outputs) withDefaults() Outputs {
	if outputs.Time == nil {
		outputs.Time = discard{}
	}
	if outputs.Label == nil {
		outputs.Label = discard{}
	}
	if outputs.Alert == nil {
		outputs.Alert = discard{}
	}
	if outputs.Notifier == nil {
		outputs.Notifier = discard{}
	}
	return outputs
}

func (phase Phase) color() Color {
	switch phase {
	case PhaseWork:
		return ColorWork
	case PhaseRest:
		return ColorRest
	default:
		return ColorNeutral
	}
}
