package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/butterslam/vibe-1/internal/models"
)

type fileStore struct {
	Version       int                            `json:"version"`
	Settings      models.Settings                `json:"settings"`
	Habits        map[string]models.Habit        `json:"habits"`
	Notifications map[string]models.Notification `json:"notifications"`
}

// JSONStore is a single-file document store. It mirrors the original app's
// blob persistence and backs tests and `--config *.json` setups.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version: 1,
		Settings: models.Settings{
			Timezone:             "Local",
			NotificationsEnabled: true,
			DefaultReminder:      true,
		},
		Habits:        make(map[string]models.Habit),
		Notifications: make(map[string]models.Notification),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'vibe init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Notifications == nil {
		s.store.Notifications = make(map[string]models.Notification)
	}

	// Records migrated from the legacy single-day format may predate the
	// completion set.
	for id, h := range s.store.Habits {
		if h.CompletedDates == nil {
			h.CompletedDates = models.NewDateSet()
			s.store.Habits[id] = h
		}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) SaveHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if habit.CompletedDates == nil {
		habit.CompletedDates = models.NewDateSet()
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}
	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, ErrNotFound
	}
	return habit, nil
}

func (s *JSONStore) GetHabitByName(ownerID, name string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}
	for _, habit := range s.store.Habits {
		if habit.OwnerID == ownerID && habit.Name == name {
			return habit, nil
		}
	}
	return models.Habit{}, ErrNotFound
}

func (s *JSONStore) GetAllHabits(ownerID string) ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		if habit.OwnerID == ownerID {
			habits = append(habits, habit)
		}
	}
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].ID < habits[j].ID
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Habits[id]; !ok {
		return ErrNotFound
	}
	delete(s.store.Habits, id)
	return s.save()
}

func (s *JSONStore) SaveNotification(n models.Notification) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Notifications[n.ID] = n
	return s.save()
}

func (s *JSONStore) GetNotification(id string) (models.Notification, error) {
	if s.store == nil {
		return models.Notification{}, fmt.Errorf("storage not loaded")
	}
	n, ok := s.store.Notifications[id]
	if !ok {
		return models.Notification{}, ErrNotFound
	}
	return n, nil
}

func (s *JSONStore) GetNotifications(ownerID string) ([]models.Notification, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	notifications := make([]models.Notification, 0, len(s.store.Notifications))
	for _, n := range s.store.Notifications {
		if n.OwnerID == ownerID {
			notifications = append(notifications, n)
		}
	}
	// Newest first, matching the inbox display order.
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *JSONStore) DeleteNotification(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Notifications[id]; !ok {
		return ErrNotFound
	}
	delete(s.store.Notifications, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
