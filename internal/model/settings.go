package model

// Setting keys as stored in the settings collection.
const (
	SettingReminderDays       = "reminderDays"
	SettingEmailNotifications = "emailNotifications"
	SettingPushNotifications  = "pushNotifications"
	SettingUserEmail          = "userEmail"
)

// DefaultReminderDays is the lookahead window used when no setting is stored.
const DefaultReminderDays = 3

// Settings is the in-memory form of the settings collection.
type Settings struct {
	UserEmail          string
	ReminderDays       int
	EmailNotifications bool
	PushNotifications  bool
}

// DefaultSettings returns the settings applied on first run.
func DefaultSettings() Settings {
	return Settings{
		ReminderDays:      DefaultReminderDays,
		PushNotifications: true,
	}
}
