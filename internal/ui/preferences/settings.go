package preferences

import (
	"time"

	"smarttimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	TickInterval  time.Duration
	WarningWindow time.Duration

	CountdownDefault time.Duration
	WorkDuration     time.Duration
	RestDuration     time.Duration
	Rounds           int

	SoundEnabled bool
}

// DefaultSettings returns default settings for SmartTimer.
func DefaultSettings() Settings {
	defaults := model.DefaultTimerConfig()
	return Settings{
		TickInterval:     defaults.TickInterval,
		WarningWindow:    defaults.WarningWindow,
		CountdownDefault: defaults.CountdownDefault,
		WorkDuration:     defaults.TabataDefault.Work,
		RestDuration:     defaults.TabataDefault.Rest,
		Rounds:           defaults.TabataDefault.Rounds,
		SoundEnabled:     defaults.SoundEnabled,
	}
}

// TimerConfig converts settings to TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		TickInterval:     settings.TickInterval,
		WarningWindow:    settings.WarningWindow,
		CountdownDefault: settings.CountdownDefault,
		TabataDefault: model.TabataConfig{
			Work:   settings.WorkDuration,
			Rest:   settings.RestDuration,
			Rounds: settings.Rounds,
		},
		SoundEnabled: settings.SoundEnabled,
	}
}
