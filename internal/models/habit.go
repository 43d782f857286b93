package models

import (
	"encoding/json"
	"sort"
	"time"
)

// Habit represents one recurring activity a user tracks.
//
// CompletedDates is the source of truth for completion history. The
// "completed today" style conveniences are derived on read (IsCompletedToday,
// CompletedDate) and are never persisted.
type Habit struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id,omitempty"`
	Name             string    `json:"name"`
	ScheduledDays    []string  `json:"scheduled_days"` // canonical weekday names, Monday..Sunday
	TimeOfDay        string    `json:"time_of_day"`    // HH:MM format
	FrequencyPerWeek int       `json:"frequency_per_week"`
	CommitmentLevel  int       `json:"commitment_level"`
	ColorIndex       int       `json:"color_index"`
	Description      string    `json:"description,omitempty"`
	InvitedAllies    []string  `json:"invited_allies,omitempty"`
	ReminderEnabled  bool      `json:"reminder_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	CompletedDates   DateSet   `json:"completed_dates"`
}

// IsScheduledOn reports whether the given canonical weekday name is part of
// the habit's schedule. Unknown or legacy labels in ScheduledDays simply
// never match.
func (h Habit) IsScheduledOn(weekday string) bool {
	for _, d := range h.ScheduledDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// IsCompletedOn reports whether the habit was completed on the given date key.
func (h Habit) IsCompletedOn(day string) bool {
	return h.CompletedDates.Contains(day)
}

// IsCompletedToday is the derived "as of now" completion flag.
func (h Habit) IsCompletedToday(today string) bool {
	return h.CompletedDates.Contains(today)
}

// LastCompleted returns the most recent completion date key, if any.
func (h Habit) LastCompleted() (string, bool) {
	days := h.CompletedDates.Sorted()
	if len(days) == 0 {
		return "", false
	}
	return days[len(days)-1], true
}

// Day returns the habit's first scheduled day. Legacy accessor for records
// persisted under the original single-day format.
func (h Habit) Day() string {
	if len(h.ScheduledDays) == 0 {
		return "Monday"
	}
	return h.ScheduledDays[0]
}

// DateSet is a set of date keys (YYYY-MM-DD). It serializes as a sorted
// array so encoded habits are stable and diffable.
type DateSet map[string]struct{}

func NewDateSet(days ...string) DateSet {
	s := make(DateSet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Contains(day string) bool {
	_, ok := s[day]
	return ok
}

func (s DateSet) Add(day string) {
	s[day] = struct{}{}
}

func (s DateSet) Remove(day string) {
	delete(s, day)
}

func (s DateSet) Len() int {
	return len(s)
}

// Sorted returns the set's members in ascending order.
func (s DateSet) Sorted() []string {
	days := make([]string, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// Clone returns an independent copy of the set. Cloning a nil set yields an
// empty, usable set.
func (s DateSet) Clone() DateSet {
	c := make(DateSet, len(s))
	for d := range s {
		c[d] = struct{}{}
	}
	return c
}

// Equal reports whether two sets hold the same members.
func (s DateSet) Equal(other DateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for d := range s {
		if !other.Contains(d) {
			return false
		}
	}
	return true
}

func (s DateSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *DateSet) UnmarshalJSON(data []byte) error {
	var days []string
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	*s = NewDateSet(days...)
	return nil
}

// CommitmentLabel describes a commitment level for display.
func CommitmentLabel(level int) string {
	switch {
	case level <= 3:
		return "Low"
	case level <= 6:
		return "Medium"
	case level <= 9:
		return "High"
	default:
		return "Maximum"
	}
}
