package preferences

// Settings defines editable application preferences. Interval durations are
// not here; they live on the session itself and are edited from the timer
// window.
type Settings struct {
	SoundEnabled         bool
	NotificationsEnabled bool
	StartAtLogin         bool
}

// DefaultSettings returns default settings for Pomotick.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:         true,
		NotificationsEnabled: true,
		StartAtLogin:         false,
	}
}
