package validation

import (
	"fmt"
	"slices"

	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
)

// Error is a rejected habit construction or edit. It is recovered at the
// call boundary: the edit is refused whole, never partially applied.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateHabit checks a habit at creation/edit time. Historical records are
// never validated with this; legacy day labels and stray date keys in stored
// data are tolerated at read time.
func ValidateHabit(h models.Habit) error {
	if h.Name == "" {
		return &Error{Field: "name", Reason: "must not be empty"}
	}
	if len(h.ScheduledDays) == 0 {
		return &Error{Field: "scheduled days", Reason: "at least one weekday is required"}
	}
	for _, d := range h.ScheduledDays {
		if !slices.Contains(constants.Weekdays, d) {
			return &Error{Field: "scheduled days", Reason: fmt.Sprintf("unknown weekday %q", d)}
		}
	}
	if h.TimeOfDay != "" && !dates.ValidateTimeFormat(h.TimeOfDay) {
		return &Error{Field: "time of day", Reason: fmt.Sprintf("%q is not in HH:MM format", h.TimeOfDay)}
	}
	if h.CommitmentLevel < constants.MinCommitmentLevel || h.CommitmentLevel > constants.MaxCommitmentLevel {
		return &Error{Field: "commitment level", Reason: fmt.Sprintf("must be between %d and %d", constants.MinCommitmentLevel, constants.MaxCommitmentLevel)}
	}
	if h.ColorIndex < 0 {
		return &Error{Field: "color", Reason: "index must not be negative"}
	}
	return nil
}

// ConflictType represents the type of data conflict found by a health check
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictUnknownWeekday     ConflictType = "unknown_weekday"
	ConflictMalformedDateKey   ConflictType = "malformed_date_key"
	ConflictFrequencyDrift     ConflictType = "frequency_drift"
)

// Conflict represents a detected inconsistency in stored habits
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// CheckHabits inspects stored habits for inconsistencies that creation-time
// validation cannot prevent: records written by older versions, hand-edited
// stores, or drifted derived fields.
func CheckHabits(habits []models.Habit) Result {
	result := Result{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, h := range habits {
		if h.Name == "" {
			continue
		}
		nameCount[h.Name] = append(nameCount[h.Name], h.ID)
	}
	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("%d habits share the name %q", len(ids), name),
				HabitIDs:    ids,
			})
		}
	}

	for _, h := range habits {
		for _, d := range h.ScheduledDays {
			if !slices.Contains(constants.Weekdays, d) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnknownWeekday,
					Description: fmt.Sprintf("habit %q has unknown weekday label %q (ignored during matching)", h.Name, d),
					HabitIDs:    []string{h.ID},
				})
			}
		}

		for _, key := range h.CompletedDates.Sorted() {
			if !dates.IsValidKey(key) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictMalformedDateKey,
					Description: fmt.Sprintf("habit %q has malformed completion date %q", h.Name, key),
					HabitIDs:    []string{h.ID},
				})
			}
		}

		if h.FrequencyPerWeek != len(h.ScheduledDays) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFrequencyDrift,
				Description: fmt.Sprintf("habit %q declares %d times per week but schedules %d days", h.Name, h.FrequencyPerWeek, len(h.ScheduledDays)),
				HabitIDs:    []string{h.ID},
			})
		}
	}

	return result
}
