package storage

import (
	"errors"

	"github.com/butterslam/vibe-1/internal/models"
)

// ErrNotFound is returned when a habit or notification id is not present in
// the store. Callers mutating by id treat it as a no-op, not a failure.
var ErrNotFound = errors.New("not found")

// Provider is the persistence boundary the habit engine depends on. Saves
// are upserts, idempotent on id. Failures are surfaced to the caller and
// never retried here; the in-memory state stays the user's latest intent.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	SaveHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(ownerID, name string) (models.Habit, error)
	GetAllHabits(ownerID string) ([]models.Habit, error)
	DeleteHabit(id string) error

	// Inbox
	SaveNotification(models.Notification) error
	GetNotification(id string) (models.Notification, error)
	GetNotifications(ownerID string) ([]models.Notification, error)
	DeleteNotification(id string) error

	// Utils
	GetConfigPath() string
}

// Watcher is an optional live-update channel a Provider may implement. Each
// snapshot carries the full habit collection; subscribers replace their
// in-memory state wholesale (last snapshot wins, no field-level merge).
type Watcher interface {
	Subscribe(ownerID string, onSnapshot func([]models.Habit)) (cancel func(), err error)
}
