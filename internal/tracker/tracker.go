// Package tracker mutates and queries a habit's completion history. All
// functions are pure: they return an updated copy and never touch the input.
package tracker

import (
	"time"

	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
)

// Toggle flips the completion mark for the given date and returns the updated
// habit. Toggling the same date twice restores the original set. Dates whose
// weekday is not scheduled may still be toggled; the calendar view allows
// marking arbitrary days.
func Toggle(h models.Habit, date time.Time) models.Habit {
	key := dates.Key(date)
	set := h.CompletedDates.Clone()
	if set.Contains(key) {
		set.Remove(key)
	} else {
		set.Add(key)
	}
	h.CompletedDates = set
	return h
}

// IsCompletedOn reports whether the habit was completed on the given date.
func IsCompletedOn(h models.Habit, date time.Time) bool {
	return h.IsCompletedOn(dates.Key(date))
}

// CompletionCountRecent is the countdown shown on a habit card: the habit's
// weekly frequency decayed by one per day since its most recent completion,
// floored at zero. Not a streak; see the progress package for streaks.
func CompletionCountRecent(h models.Habit, asOf time.Time) int {
	lastKey, ok := h.LastCompleted()
	if !ok {
		return 0
	}
	last, err := dates.ParseKey(lastKey, asOf.Location())
	if err != nil {
		return 0
	}
	since := dates.DaysBetween(last, asOf)
	if since < 0 {
		// Future-dated completion; nothing has decayed yet.
		since = 0
	}
	return max(0, h.FrequencyPerWeek-since)
}
