// Package habits owns the in-memory habit collection: optimistic local
// mutation, serialized writes, wholesale snapshot replacement from a watching
// store, and fire-and-forget scheduler hooks.
package habits

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/logger"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/notifier"
	"github.com/butterslam/vibe-1/internal/storage"
	"github.com/butterslam/vibe-1/internal/tracker"
	"github.com/butterslam/vibe-1/internal/validation"
)

// Store manages one user's habits. All mutation goes through the store's
// mutex, so two local callers can never interleave a toggle.
//
// Persistence is optimistic: the in-memory state is updated first and kept
// even when the remote save fails; the save error is surfaced for the caller
// to retry or toast.
type Store struct {
	mu          sync.Mutex
	provider    storage.Provider
	scheduler   notifier.Scheduler
	ownerID     string
	timezone    string
	habits      []models.Habit
	cancelWatch func()
}

// New creates a store bound to the given provider and scheduler. Call
// Refresh (or StartWatch) to populate it.
func New(provider storage.Provider, scheduler notifier.Scheduler, settings models.Settings) *Store {
	if scheduler == nil {
		scheduler = notifier.Noop{}
	}
	return &Store{
		provider:  provider,
		scheduler: scheduler,
		ownerID:   settings.OwnerID,
		timezone:  settings.Timezone,
	}
}

// Refresh replaces the in-memory collection from the provider.
func (s *Store) Refresh() error {
	habits, err := s.provider.GetAllHabits(s.ownerID)
	if err != nil {
		return fmt.Errorf("loading habits: %w", err)
	}
	s.mu.Lock()
	s.habits = habits
	s.mu.Unlock()
	return nil
}

// StartWatch subscribes to the provider's live-update channel if it offers
// one. Each snapshot replaces the collection wholesale (last snapshot wins).
// Providers without a Watcher are a silent no-op.
func (s *Store) StartWatch() error {
	w, ok := s.provider.(storage.Watcher)
	if !ok {
		return nil
	}
	cancel, err := w.Subscribe(s.ownerID, func(snapshot []models.Habit) {
		s.mu.Lock()
		s.habits = snapshot
		s.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("subscribing to habit updates: %w", err)
	}
	s.mu.Lock()
	s.cancelWatch = cancel
	s.mu.Unlock()
	return nil
}

// StopWatch cancels a running subscription, if any.
func (s *Store) StopWatch() {
	s.mu.Lock()
	cancel := s.cancelWatch
	s.cancelWatch = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// All returns a copy of the current collection.
func (s *Store) All() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

// Get returns the habit with the given id.
func (s *Store) Get(id string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// GetByName returns the habit with the given display name.
func (s *Store) GetByName(name string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.habits {
		if h.Name == name {
			return h, true
		}
	}
	return models.Habit{}, false
}

// TodayKey returns today's date key in the store's timezone.
func (s *Store) TodayKey() (string, error) {
	return dates.TodayKey(s.timezone)
}

// Now returns the current time in the store's timezone.
func (s *Store) Now() (time.Time, error) {
	return dates.NowInTimezone(s.timezone)
}

// NewHabit describes a habit to create.
type NewHabit struct {
	Name            string
	ScheduledDays   []string
	TimeOfDay       string
	CommitmentLevel int
	ColorIndex      int
	Description     string
	ReminderEnabled bool
}

// Add validates and creates a habit. The frequency is always derived from
// the scheduled days, never supplied.
func (s *Store) Add(params NewHabit) (models.Habit, error) {
	habit := models.Habit{
		ID:               uuid.New().String(),
		OwnerID:          s.ownerID,
		Name:             params.Name,
		ScheduledDays:    params.ScheduledDays,
		TimeOfDay:        params.TimeOfDay,
		FrequencyPerWeek: len(params.ScheduledDays),
		CommitmentLevel:  params.CommitmentLevel,
		ColorIndex:       params.ColorIndex,
		Description:      params.Description,
		ReminderEnabled:  params.ReminderEnabled,
		CreatedAt:        time.Now(),
		CompletedDates:   models.NewDateSet(),
	}
	if err := validation.ValidateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	if _, ok := s.GetByName(habit.Name); ok {
		return models.Habit{}, &validation.Error{Field: "name", Reason: fmt.Sprintf("habit %q already exists", habit.Name)}
	}

	s.mu.Lock()
	s.habits = append(s.habits, habit)
	s.mu.Unlock()

	s.notify(func() { s.scheduler.HabitAdded(habit) })
	return habit, s.persist(habit)
}

// Edit describes a schedule update. Completion history is never edited here.
type Edit struct {
	Name            string
	ScheduledDays   []string
	TimeOfDay       string
	CommitmentLevel int
	ColorIndex      int
	Description     string
	InvitedAllies   []string
	ReminderEnabled bool
}

// Update applies an edit to the habit with the given id. A missing id is a
// no-op (ok=false). Invalid edits are rejected whole: the stored habit is
// untouched.
func (s *Store) Update(id string, edit Edit) (models.Habit, bool, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Habit{}, false, nil
	}

	updated := s.habits[idx]
	updated.Name = edit.Name
	updated.ScheduledDays = edit.ScheduledDays
	updated.TimeOfDay = edit.TimeOfDay
	updated.FrequencyPerWeek = len(edit.ScheduledDays)
	updated.CommitmentLevel = edit.CommitmentLevel
	updated.ColorIndex = edit.ColorIndex
	updated.Description = edit.Description
	updated.InvitedAllies = edit.InvitedAllies
	updated.ReminderEnabled = edit.ReminderEnabled

	if err := validation.ValidateHabit(updated); err != nil {
		s.mu.Unlock()
		return models.Habit{}, true, err
	}

	s.habits[idx] = updated
	s.mu.Unlock()

	s.notify(func() { s.scheduler.HabitUpdated(updated) })
	return updated, true, s.persist(updated)
}

// Toggle flips the completion mark for the given date. A missing id is a
// no-op (ok=false). The mutation is atomic: callers never observe a habit
// with a half-updated completion set.
func (s *Store) Toggle(id string, date time.Time) (models.Habit, bool, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Habit{}, false, nil
	}
	updated := tracker.Toggle(s.habits[idx], date)
	s.habits[idx] = updated
	s.mu.Unlock()

	return updated, true, s.persist(updated)
}

// ToggleToday toggles completion for today in the store's timezone.
func (s *Store) ToggleToday(id string) (models.Habit, bool, error) {
	now, err := s.Now()
	if err != nil {
		return models.Habit{}, false, err
	}
	return s.Toggle(id, now)
}

// Delete removes the habit locally and remotely. A missing id is a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.habits[idx]
	s.habits = append(s.habits[:idx], s.habits[idx+1:]...)
	s.mu.Unlock()

	s.notify(func() { s.scheduler.HabitRemoved(removed) })

	if err := s.provider.DeleteHabit(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("deleting habit: %w", err)
	}
	return nil
}

func (s *Store) indexLocked(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// persist saves one habit. Failures do not roll back the local mutation.
func (s *Store) persist(habit models.Habit) error {
	if err := s.provider.SaveHabit(habit); err != nil {
		logger.Warn("Habit save failed, local state kept", "habit", habit.Name, "error", err)
		return fmt.Errorf("saving habit %q: %w", habit.Name, err)
	}
	return nil
}

// notify runs a scheduler hook. Hooks are best-effort: a panicking or failing
// scheduler must never affect habit state.
func (s *Store) notify(hook func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Notification hook panicked", "panic", r)
		}
	}()
	hook()
}
