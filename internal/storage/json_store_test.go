package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/butterslam/vibe-1/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vibe.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func TestJSONStoreInit(t *testing.T) {
	s := newTestJSONStore(t)

	if err := s.Init(); err == nil {
		t.Error("expected second Init to fail, store already exists")
	}

	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("default Timezone = %q, want Local", settings.Timezone)
	}
	if !settings.NotificationsEnabled || !settings.DefaultReminder {
		t.Error("expected notification defaults on")
	}
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "vibe.json"))
	if err := s.Load(); err == nil {
		t.Fatal("expected Load of a missing file to fail")
	}
}

func TestJSONStoreHabitRoundTrip(t *testing.T) {
	s := newTestJSONStore(t)

	h := models.Habit{
		ID:               "h1",
		OwnerID:          "owner-1",
		Name:             "Meditate",
		ScheduledDays:    []string{"Monday", "Friday"},
		TimeOfDay:        "06:30",
		FrequencyPerWeek: 2,
		CommitmentLevel:  8,
		CreatedAt:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CompletedDates:   models.NewDateSet("2026-08-24"),
	}
	if err := s.SaveHabit(h); err != nil {
		t.Fatalf("SaveHabit: %v", err)
	}

	// A fresh store against the same file sees the persisted habit
	fresh := NewJSONStore(s.GetConfigPath())
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := fresh.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if got.Name != "Meditate" || !got.IsCompletedOn("2026-08-24") {
		t.Errorf("reloaded habit = %+v", got)
	}

	byName, err := fresh.GetHabitByName("owner-1", "Meditate")
	if err != nil || byName.ID != "h1" {
		t.Errorf("GetHabitByName = %+v, %v", byName, err)
	}
}

func TestJSONStoreGetAllHabitsOrder(t *testing.T) {
	s := newTestJSONStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"c", "a", "b"} {
		h := models.Habit{ID: id, OwnerID: "owner-1", Name: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.SaveHabit(h); err != nil {
			t.Fatalf("SaveHabit %s: %v", id, err)
		}
	}
	// Same timestamp falls back to id ordering
	if err := s.SaveHabit(models.Habit{ID: "aa", OwnerID: "owner-1", Name: "aa", CreatedAt: base}); err != nil {
		t.Fatalf("SaveHabit: %v", err)
	}

	habits, err := s.GetAllHabits("owner-1")
	if err != nil {
		t.Fatalf("GetAllHabits: %v", err)
	}
	var ids []string
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	want := []string{"aa", "c", "a", "b"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}

	other, err := s.GetAllHabits("someone-else")
	if err != nil || len(other) != 0 {
		t.Errorf("other owner habits = %v, %v", other, err)
	}
}

func TestJSONStoreNotFound(t *testing.T) {
	s := newTestJSONStore(t)

	if _, err := s.GetHabit("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetHabit error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteHabit("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteHabit error = %v, want ErrNotFound", err)
	}
	if _, err := s.GetNotification("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetNotification error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteNotification("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteNotification error = %v, want ErrNotFound", err)
	}
}

func TestJSONStoreNotificationsNewestFirst(t *testing.T) {
	s := newTestJSONStore(t)

	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"n1", "n2", "n3"} {
		n := models.Notification{
			ID:        id,
			OwnerID:   "owner-1",
			Type:      models.NotificationAllyInvitation,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.SaveNotification(n); err != nil {
			t.Fatalf("SaveNotification: %v", err)
		}
	}

	got, err := s.GetNotifications("owner-1")
	if err != nil {
		t.Fatalf("GetNotifications: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != "n3" || got[2].ID != "n1" {
		t.Errorf("order = %s,%s,%s, want newest first", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "vibe.json"))
	if _, err := s.GetSettings(); err == nil {
		t.Error("expected error reading settings before Load")
	}
	if err := s.SaveHabit(models.Habit{ID: "x"}); err == nil {
		t.Error("expected error saving before Load")
	}
}
