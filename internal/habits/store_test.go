package habits

import (
	"errors"
	"testing"
	"time"

	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/storage"
)

// fakeProvider records saves and deletes in memory.
type fakeProvider struct {
	habits   map[string]models.Habit
	saveErr  error
	saves    int
	deletes  []string
	settings models.Settings
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{habits: make(map[string]models.Habit)}
}

func (f *fakeProvider) Init() error  { return nil }
func (f *fakeProvider) Load() error  { return nil }
func (f *fakeProvider) Close() error { return nil }

func (f *fakeProvider) GetSettings() (models.Settings, error) { return f.settings, nil }
func (f *fakeProvider) SaveSettings(s models.Settings) error  { f.settings = s; return nil }

func (f *fakeProvider) SaveHabit(h models.Habit) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.habits[h.ID] = h
	return nil
}

func (f *fakeProvider) GetHabit(id string) (models.Habit, error) {
	h, ok := f.habits[id]
	if !ok {
		return models.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (f *fakeProvider) GetHabitByName(ownerID, name string) (models.Habit, error) {
	for _, h := range f.habits {
		if h.Name == name {
			return h, nil
		}
	}
	return models.Habit{}, storage.ErrNotFound
}

func (f *fakeProvider) GetAllHabits(ownerID string) ([]models.Habit, error) {
	out := make([]models.Habit, 0, len(f.habits))
	for _, h := range f.habits {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeProvider) DeleteHabit(id string) error {
	f.deletes = append(f.deletes, id)
	if _, ok := f.habits[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.habits, id)
	return nil
}

func (f *fakeProvider) SaveNotification(models.Notification) error { return nil }
func (f *fakeProvider) GetNotification(id string) (models.Notification, error) {
	return models.Notification{}, storage.ErrNotFound
}
func (f *fakeProvider) GetNotifications(ownerID string) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeProvider) DeleteNotification(id string) error { return nil }
func (f *fakeProvider) GetConfigPath() string              { return "" }

// hookRecorder captures scheduler hook invocations.
type hookRecorder struct {
	added, updated, removed []string
}

func (r *hookRecorder) HabitAdded(h models.Habit)   { r.added = append(r.added, h.Name) }
func (r *hookRecorder) HabitUpdated(h models.Habit) { r.updated = append(r.updated, h.Name) }
func (r *hookRecorder) HabitRemoved(h models.Habit) { r.removed = append(r.removed, h.Name) }

func newTestStore(p storage.Provider, sched *hookRecorder) *Store {
	settings := models.Settings{OwnerID: "owner-1", Timezone: "UTC"}
	if sched == nil {
		return New(p, nil, settings)
	}
	return New(p, sched, settings)
}

func TestAddDerivesFrequency(t *testing.T) {
	p := newFakeProvider()
	s := newTestStore(p, nil)

	h, err := s.Add(NewHabit{
		Name:            "Read",
		ScheduledDays:   []string{"Monday", "Wednesday", "Friday"},
		TimeOfDay:       "21:00",
		CommitmentLevel: 5,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if h.FrequencyPerWeek != 3 {
		t.Errorf("FrequencyPerWeek = %d, want 3", h.FrequencyPerWeek)
	}
	if h.ID == "" {
		t.Error("expected generated id")
	}
	if _, ok := p.habits[h.ID]; !ok {
		t.Error("habit not persisted")
	}
}

func TestAddRejectsDuplicateName(t *testing.T) {
	p := newFakeProvider()
	s := newTestStore(p, nil)

	params := NewHabit{Name: "Read", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5}
	if _, err := s.Add(params); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := s.Add(params); err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	if len(s.All()) != 1 {
		t.Errorf("len = %d, want 1 after rejected add", len(s.All()))
	}
}

func TestAddRejectsInvalidHabit(t *testing.T) {
	p := newFakeProvider()
	s := newTestStore(p, nil)

	if _, err := s.Add(NewHabit{Name: "", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5}); err == nil {
		t.Fatal("expected empty name to be rejected")
	}
	if p.saves != 0 {
		t.Errorf("saves = %d, want 0 for rejected add", p.saves)
	}
}

func TestUpdateMissingID(t *testing.T) {
	s := newTestStore(newFakeProvider(), nil)

	_, ok, err := s.Update("no-such-id", Edit{Name: "x", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing id")
	}
}

func TestUpdateRejectedWhole(t *testing.T) {
	p := newFakeProvider()
	s := newTestStore(p, nil)

	h, err := s.Add(NewHabit{Name: "Read", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, ok, err := s.Update(h.ID, Edit{Name: "Read", ScheduledDays: []string{"Funday"}, CommitmentLevel: 5})
	if !ok {
		t.Error("expected ok=true, the habit exists")
	}
	if err == nil {
		t.Fatal("expected invalid edit to be rejected")
	}

	kept, _ := s.Get(h.ID)
	if len(kept.ScheduledDays) != 1 || kept.ScheduledDays[0] != "Monday" {
		t.Errorf("stored habit changed by rejected edit: %v", kept.ScheduledDays)
	}
}

func TestUpdateAppliesEdit(t *testing.T) {
	p := newFakeProvider()
	s := newTestStore(p, nil)

	h, err := s.Add(NewHabit{Name: "Read", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, ok, err := s.Update(h.ID, Edit{
		Name:            "Read more",
		ScheduledDays:   []string{"Monday", "Thursday"},
		TimeOfDay:       "08:00",
		CommitmentLevel: 7,
		InvitedAllies:   []string{"sam"},
		ReminderEnabled: true,
	})
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}
	if updated.FrequencyPerWeek != 2 {
		t.Errorf("FrequencyPerWeek = %d, want 2 (derived from days)", updated.FrequencyPerWeek)
	}
	if got := p.habits[h.ID]; got.Name != "Read more" {
		t.Errorf("persisted name = %q", got.Name)
	}
}

func TestToggleKeepsLocalStateOnSaveFailure(t *testing.T) {
	p := newFakeProvider()
	s := newTestStore(p, nil)

	h, err := s.Add(NewHabit{Name: "Read", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	p.saveErr = errors.New("connection refused")
	day := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	toggled, ok, err := s.Toggle(h.ID, day)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if err == nil {
		t.Fatal("expected save error to surface")
	}
	if !toggled.IsCompletedOn("2026-08-24") {
		t.Error("returned habit lost the completion mark")
	}

	// Optimistic persistence keeps the local mutation
	local, _ := s.Get(h.ID)
	if !local.IsCompletedOn("2026-08-24") {
		t.Error("local state rolled back on save failure")
	}
}

func TestToggleRoundTrip(t *testing.T) {
	p := newFakeProvider()
	s := newTestStore(p, nil)

	h, err := s.Add(NewHabit{Name: "Read", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	day := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	on, _, err := s.Toggle(h.ID, day)
	if err != nil {
		t.Fatalf("Toggle on: %v", err)
	}
	if !on.IsCompletedOn("2026-08-24") {
		t.Error("expected completion mark after first toggle")
	}

	off, _, err := s.Toggle(h.ID, day)
	if err != nil {
		t.Fatalf("Toggle off: %v", err)
	}
	if off.IsCompletedOn("2026-08-24") {
		t.Error("expected mark removed after second toggle")
	}
}

func TestToggleMissingID(t *testing.T) {
	s := newTestStore(newFakeProvider(), nil)
	_, ok, err := s.Toggle("ghost", time.Now())
	if err != nil || ok {
		t.Errorf("Toggle missing id: ok=%v err=%v, want false, nil", ok, err)
	}
}

func TestDelete(t *testing.T) {
	p := newFakeProvider()
	s := newTestStore(p, nil)

	h, err := s.Add(NewHabit{Name: "Read", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := s.Delete(h.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get(h.ID); ok {
		t.Error("habit still present locally")
	}
	if len(p.deletes) != 1 || p.deletes[0] != h.ID {
		t.Errorf("provider deletes = %v", p.deletes)
	}

	// Deleting again is a no-op, ErrNotFound from the provider is tolerated
	if err := s.Delete(h.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestSchedulerHooksFire(t *testing.T) {
	rec := &hookRecorder{}
	s := newTestStore(newFakeProvider(), rec)

	h, err := s.Add(NewHabit{Name: "Read", ScheduledDays: []string{"Monday"}, CommitmentLevel: 5})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, _, err := s.Update(h.ID, Edit{Name: "Read", ScheduledDays: []string{"Monday"}, CommitmentLevel: 6}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Delete(h.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(rec.added) != 1 || len(rec.updated) != 1 || len(rec.removed) != 1 {
		t.Errorf("hooks fired added=%v updated=%v removed=%v", rec.added, rec.updated, rec.removed)
	}
}

func TestRefresh(t *testing.T) {
	p := newFakeProvider()
	p.habits["h1"] = models.Habit{ID: "h1", Name: "Walk", OwnerID: "owner-1"}

	s := newTestStore(p, nil)
	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, ok := s.GetByName("Walk"); !ok {
		t.Error("expected refreshed habit to be visible")
	}
}
