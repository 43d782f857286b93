package tracker

import (
	"testing"
	"time"

	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
)

func mustDate(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := dates.ParseKey(key, time.UTC)
	if err != nil {
		t.Fatalf("bad date key %q: %v", key, err)
	}
	return d
}

func TestToggle(t *testing.T) {
	h := models.Habit{
		ID:             "h1",
		ScheduledDays:  []string{"Monday"},
		CompletedDates: models.NewDateSet(),
	}
	day := mustDate(t, "2026-08-24")

	on := Toggle(h, day)
	if !on.IsCompletedOn("2026-08-24") {
		t.Error("first toggle should mark the day completed")
	}

	off := Toggle(on, day)
	if off.IsCompletedOn("2026-08-24") {
		t.Error("second toggle should unmark the day")
	}
	if !off.CompletedDates.Equal(h.CompletedDates) {
		t.Error("toggling twice should restore the original set")
	}
}

func TestTogglePure(t *testing.T) {
	h := models.Habit{
		ID:             "h1",
		ScheduledDays:  []string{"Monday"},
		CompletedDates: models.NewDateSet("2026-08-17"),
	}

	_ = Toggle(h, mustDate(t, "2026-08-24"))
	if h.CompletedDates.Len() != 1 || !h.CompletedDates.Contains("2026-08-17") {
		t.Error("Toggle must not mutate its input")
	}
}

func TestToggleNonScheduledDay(t *testing.T) {
	h := models.Habit{
		ID:             "h1",
		ScheduledDays:  []string{"Monday"},
		CompletedDates: models.NewDateSet(),
	}

	// Sunday is not scheduled but the calendar allows marking it anyway
	sunday := mustDate(t, "2026-08-30")
	got := Toggle(h, sunday)
	if !got.IsCompletedOn("2026-08-30") {
		t.Error("toggling a non-scheduled day should still record the completion")
	}
}

func TestToggleNilSet(t *testing.T) {
	h := models.Habit{ID: "h1", ScheduledDays: []string{"Monday"}}

	got := Toggle(h, mustDate(t, "2026-08-24"))
	if !got.IsCompletedOn("2026-08-24") {
		t.Error("toggling a habit with a nil set should work")
	}
}

func TestCompletionCountRecent(t *testing.T) {
	asOf := mustDate(t, "2026-08-28")

	tests := []struct {
		name      string
		frequency int
		completed []string
		want      int
	}{
		{"never completed", 3, nil, 0},
		{"completed today", 3, []string{"2026-08-28"}, 3},
		{"one day ago", 3, []string{"2026-08-27"}, 2},
		{"decayed to zero", 3, []string{"2026-08-25"}, 0},
		{"floored at zero", 3, []string{"2026-08-01"}, 0},
		{"uses most recent completion", 5, []string{"2026-08-01", "2026-08-26"}, 3},
		{"future completion does not decay", 2, []string{"2026-08-30"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := models.Habit{
				ID:               "h1",
				FrequencyPerWeek: tt.frequency,
				CompletedDates:   models.NewDateSet(tt.completed...),
			}
			if got := CompletionCountRecent(h, asOf); got != tt.want {
				t.Errorf("CompletionCountRecent = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsCompletedOn(t *testing.T) {
	h := models.Habit{CompletedDates: models.NewDateSet("2026-08-24")}
	if !IsCompletedOn(h, mustDate(t, "2026-08-24")) {
		t.Error("IsCompletedOn should report a recorded day")
	}
	if IsCompletedOn(h, mustDate(t, "2026-08-25")) {
		t.Error("IsCompletedOn should not report an unrecorded day")
	}
}
