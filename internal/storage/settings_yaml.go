package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomotick/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	SoundEnabled         bool `yaml:"sound_enabled"`
	NotificationsEnabled bool `yaml:"notifications_enabled"`
	StartAtLogin         bool `yaml:"start_at_login"`
}

// LoadSettings reads application preferences from YAML.
// If the settings file does not exist, default settings are returned.
func LoadSettings(dir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
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

	settings.SoundEnabled = fileData.SoundEnabled
	settings.NotificationsEnabled = fileData.NotificationsEnabled
	settings.StartAtLogin = fileData.StartAtLogin
	return settings, nil
}

// SaveSettings writes application preferences to YAML.
func SaveSettings(dir string, settings preferences.Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	fileData := yamlSettings{
		SoundEnabled:         settings.SoundEnabled,
		NotificationsEnabled: settings.NotificationsEnabled,
		StartAtLogin:         settings.StartAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
