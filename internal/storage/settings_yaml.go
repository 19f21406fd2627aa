package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"smarttimer/internal/core/format"
	"smarttimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

const (
	minTickMillis = 20
	maxTickMillis = 2000
	maxWarning    = 60
)

type yamlSettings struct {
	TickIntervalMillis int   `yaml:"tick_interval_ms"`
	WarningSeconds     int   `yaml:"warning_seconds"`
	CountdownSeconds   int   `yaml:"countdown_seconds"`
	WorkSeconds        int   `yaml:"work_seconds"`
	RestSeconds        int   `yaml:"rest_seconds"`
	Rounds             int   `yaml:"rounds"`
	SoundEnabled       *bool `yaml:"sound_enabled,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := SettingsPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := MarshalSettings(settings)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// MarshalSettings renders settings in the on-disk YAML layout.
func MarshalSettings(settings preferences.Settings) ([]byte, error) {
	sound := settings.SoundEnabled
	fileData := yamlSettings{
		TickIntervalMillis: int(settings.TickInterval / time.Millisecond),
		WarningSeconds:     int(settings.WarningWindow / time.Second),
		CountdownSeconds:   int(settings.CountdownDefault / time.Second),
		WorkSeconds:        int(settings.WorkDuration / time.Second),
		RestSeconds:        int(settings.RestDuration / time.Second),
		Rounds:             settings.Rounds,
		SoundEnabled:       &sound,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// SettingsPath returns the location of the settings file for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TickIntervalMillis >= minTickMillis && fileData.TickIntervalMillis <= maxTickMillis {
		settings.TickInterval = time.Duration(fileData.TickIntervalMillis) * time.Millisecond
	}
	if fileData.WarningSeconds > 0 && fileData.WarningSeconds <= maxWarning {
		settings.WarningWindow = time.Duration(fileData.WarningSeconds) * time.Second
	}
	if fileData.CountdownSeconds > 0 && format.SecondsInRange(fileData.CountdownSeconds) {
		settings.CountdownDefault = format.Seconds(fileData.CountdownSeconds)
	}
	if fileData.WorkSeconds > 0 && format.SecondsInRange(fileData.WorkSeconds) {
		settings.WorkDuration = format.Seconds(fileData.WorkSeconds)
	}
	if fileData.RestSeconds > 0 && format.SecondsInRange(fileData.RestSeconds) {
		settings.RestDuration = format.Seconds(fileData.RestSeconds)
	}
	if fileData.Rounds > 0 {
		settings.Rounds = fileData.Rounds
	}

	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
}
