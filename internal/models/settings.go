package models

// Theme represents the UI color scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Language represents the UI language preference
type Language string

const (
	LanguageZhCN Language = "zh-CN"
	LanguageEnUS Language = "en-US"
)

// ReminderIntervals lists the reminder choices offered to the user, in
// minutes. The field itself is not hard-restricted to these values.
var ReminderIntervals = []int{15, 30, 60, 120, 240}

// UserSettings holds the user's persisted preferences
type UserSettings struct {
	Notifications    bool     `json:"notifications"`
	ReminderInterval int      `json:"reminderInterval" validate:"gt=0"` // minutes
	Theme            Theme    `json:"theme" validate:"theme"`
	Language         Language `json:"language" validate:"language"`
}

// DefaultSettings returns the settings used when nothing has been persisted
// yet, or when the persisted settings document cannot be decoded.
func DefaultSettings() UserSettings {
	return UserSettings{
		Notifications:    true,
		ReminderInterval: 30,
		Theme:            ThemeLight,
		Language:         LanguageEnUS,
	}
}
