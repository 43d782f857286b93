// Package dates provides canonical date-key handling. A date key is a
// YYYY-MM-DD string identifying a calendar day; keys are the set elements of
// a habit's completion history and part of the persisted data contract.
package dates

import (
	"fmt"
	"time"

	"github.com/butterslam/vibe-1/internal/constants"
)

// Key formats a timestamp as its canonical date key. The key reflects the
// calendar day in the timestamp's own location, so the same instant can map
// to different keys for users in different timezones.
func Key(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseKey parses a date key back into a midnight timestamp in the given
// location (nil means local). Key and ParseKey round-trip for any finite date.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// IsValidKey reports whether the string is a well-formed date key.
func IsValidKey(key string) bool {
	_, err := time.Parse(constants.DateFormat, key)
	return err == nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayKey returns today's date key in the specified timezone. "Today" is
// determined by the user's configured timezone, not the system timezone.
func TodayKey(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return Key(now), nil
}

// WeekdayName returns the canonical English weekday name for the date. It is
// computed from the date itself and never depends on locale or first-weekday
// conventions.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// StartOfWeek returns midnight of the Monday of the week containing t, in
// t's location.
func StartOfWeek(t time.Time) time.Time {
	// time.Weekday is Sunday=0..Saturday=6; shift so Monday=0.
	daysFromMonday := (int(t.Weekday()) + 6) % 7
	day := Midnight(t)
	return day.AddDate(0, 0, -daysFromMonday)
}

// Midnight truncates a timestamp to midnight of its calendar day, preserving
// the location. time.Truncate is unsuitable here since it operates on
// absolute durations and breaks across DST transitions.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b (positive when
// b is later). Computed from day boundaries so partial days and DST shifts
// don't skew the count.
func DaysBetween(a, b time.Time) int {
	ma, mb := Midnight(a), Midnight(b)
	hours := mb.Sub(ma).Hours()
	// Round to absorb the one-hour wobble a DST boundary introduces.
	if hours >= 0 {
		return int(hours/24 + 0.5)
	}
	return -int(-hours/24 + 0.5)
}

// ParseTime parses a wall-clock time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of
// minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
