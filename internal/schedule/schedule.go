// Package schedule decides, for any date, whether a habit is due and
// enumerates due dates over a range. Due-ness depends only on the habit's
// scheduled weekdays; time of day is a reminder concern, not a due concern.
package schedule

import (
	"iter"
	"time"

	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
)

// IsDue reports whether the habit is scheduled on the given date's weekday.
// A habit scheduled all seven days is due every day; there is no separate
// "daily" path.
func IsDue(h models.Habit, date time.Time) bool {
	return h.IsScheduledOn(dates.WeekdayName(date))
}

// DueDates returns the habit's due dates in [start, end] inclusive, ascending.
// The sequence is lazy and restartable; each range call walks the days fresh.
func DueDates(h models.Habit, start, end time.Time) iter.Seq[time.Time] {
	first := dates.Midnight(start)
	last := dates.Midnight(end)
	return func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !IsDue(h, d) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// NextDue returns the next instant at or after the given time when the habit
// is due, combining the due date with the habit's time of day. The second
// return is false when the habit has no valid scheduled days or time.
func NextDue(h models.Habit, after time.Time) (time.Time, bool) {
	tod, err := dates.ParseTime(h.TimeOfDay)
	if err != nil {
		return time.Time{}, false
	}
	// Eight days covers the case where today's occurrence already passed.
	for d := range DueDates(h, after, after.AddDate(0, 0, 7)) {
		at := time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, after.Location())
		if !at.Before(after) {
			return at, true
		}
	}
	return time.Time{}, false
}
