package domain

// Theme is the display theme preference
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultStudyDuration is the default study session length in minutes
const DefaultStudyDuration = 60

// Settings holds the user's global preferences
type Settings struct {
	DefaultNotificationTime NotificationTime `json:"defaultNotificationTime" validate:"oneof=5 15 30 60 120 180"`
	DefaultStudyDuration    int              `json:"defaultStudyDuration" validate:"gt=0"`
	Theme                   Theme            `json:"theme" validate:"oneof=light dark auto"`
}

// DefaultSettings returns the hard-coded defaults
func DefaultSettings() Settings {
	return Settings{
		DefaultNotificationTime: DefaultNotificationTime,
		DefaultStudyDuration:    DefaultStudyDuration,
		Theme:                   ThemeAuto,
	}
}

// Validate checks field constraints
func (s Settings) Validate() error {
	return validateStruct(s)
}

// SettingsUpdate is a partial settings change
type SettingsUpdate struct {
	DefaultNotificationTime *NotificationTime
	DefaultStudyDuration    *int
	Theme                   *Theme
}

// Apply merges the update into s
func (u SettingsUpdate) Apply(s *Settings) {
	if u.DefaultNotificationTime != nil {
		s.DefaultNotificationTime = *u.DefaultNotificationTime
	}
	if u.DefaultStudyDuration != nil {
		s.DefaultStudyDuration = *u.DefaultStudyDuration
	}
	if u.Theme != nil {
		s.Theme = *u.Theme
	}
}
