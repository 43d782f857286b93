package models

import "time"

type NotificationType string

const (
	NotificationAllyInvitation NotificationType = "ally_invitation"
	NotificationHabitReminder  NotificationType = "habit_reminder"
	NotificationAchievement    NotificationType = "achievement"
)

// Notification is an inbox entry for the social layer (ally invitations,
// reminders, achievements). It never carries completion state.
type Notification struct {
	ID           string           `json:"id"`
	OwnerID      string           `json:"owner_id,omitempty"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	CreatedAt    time.Time        `json:"created_at"`
	IsRead       bool             `json:"is_read"`
	HabitID      string           `json:"habit_id,omitempty"`
	FromUserID   string           `json:"from_user_id,omitempty"`
	FromUsername string           `json:"from_username,omitempty"`
}
