// Package progress computes cross-habit, calendar-aligned statistics: weekly
// completion ratios, running streaks, and today's completed/total count. All
// computations read the durable completion set, never the derived
// "completed today" conveniences.
package progress

import (
	"fmt"
	"time"

	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/schedule"
)

// WeekProgress returns the per-day completion ratio for the Monday-starting
// week containing anchor. Index 0 is Monday, 6 is Sunday. A day with no due
// habits has ratio 0.
func WeekProgress(habits []models.Habit, anchor time.Time) [7]float64 {
	var ratios [7]float64
	monday := dates.StartOfWeek(anchor)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		key := dates.Key(day)
		due, completed := 0, 0
		for _, h := range habits {
			if !schedule.IsDue(h, day) {
				continue
			}
			due++
			if h.IsCompletedOn(key) {
				completed++
			}
		}
		if due > 0 {
			ratios[i] = float64(completed) / float64(due)
		}
	}
	return ratios
}

// CurrentStreak walks backward from today counting consecutive days on which
// at least one due habit was completed. Days with no due habits neither break
// nor extend the streak. The walk is bounded to guarantee termination.
func CurrentStreak(habits []models.Habit, today time.Time) int {
	streak := 0
	day := dates.Midnight(today)
	for i := 0; i < constants.StreakLookbackDays; i++ {
		due := false
		done := false
		key := dates.Key(day)
		for _, h := range habits {
			if !schedule.IsDue(h, day) {
				continue
			}
			due = true
			if h.IsCompletedOn(key) {
				done = true
				break
			}
		}
		if due {
			if !done {
				break
			}
			streak++
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// TodayCounts returns how many habits due today are completed and how many
// are due in total.
func TodayCounts(habits []models.Habit, today time.Time) (completed, total int) {
	key := dates.Key(today)
	for _, h := range habits {
		if !schedule.IsDue(h, today) {
			continue
		}
		total++
		if h.IsCompletedOn(key) {
			completed++
		}
	}
	return completed, total
}

// TodayRatio formats today's progress as "completed/total".
func TodayRatio(habits []models.Habit, today time.Time) string {
	completed, total := TodayCounts(habits, today)
	return fmt.Sprintf("%d/%d", completed, total)
}
