package models

// Settings represents application-wide settings
type Settings struct {
	OwnerID              string `json:"owner_id"`              // identifier of the local user; scopes habits and the inbox
	Timezone             string `json:"timezone"`              // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether reminder delivery is enabled
	DefaultReminder      bool   `json:"default_reminder"`      // default reminder flag for new habits
}
