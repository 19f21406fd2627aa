package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_SaveParsesFields(t *testing.T) {
	app := test.NewTempApp(t)
	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})

	prefs.work.SetText("45")
	prefs.rounds.SetText(" 4 ")
	prefs.tick.SetText("100")
	prefs.sound.SetChecked(false)
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, 45*time.Second, saved[0].WorkDuration)
	assert.Equal(t, 4, saved[0].Rounds)
	assert.Equal(t, 100*time.Millisecond, saved[0].TickInterval)
	assert.False(t, saved[0].SoundEnabled)
	assert.Equal(t, DefaultSettings().RestDuration, saved[0].RestDuration)
}

func TestWindow_SaveKeepsPreviousOnBadInput(t *testing.T) {
	app := test.NewTempApp(t)
	var saved Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) { saved = settings })

	prefs.countdown.SetText("soon")
	prefs.rest.SetText("-5")
	prefs.handleSave()

	assert.Equal(t, DefaultSettings().CountdownDefault, saved.CountdownDefault)
	assert.Equal(t, DefaultSettings().RestDuration, saved.RestDuration)
}

func TestWindow_UpdateSettingsRefreshesEntries(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), nil)

	updated := DefaultSettings()
	updated.CountdownDefault = 5 * time.Minute
	prefs.UpdateSettings(updated)

	assert.Equal(t, "300", prefs.countdown.Text)
	assert.Equal(t, "200", prefs.tick.Text)
}
