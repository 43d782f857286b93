package cli

import (
	"fmt"
	"strings"

	"github.com/butterslam/vibe-1/internal/allies"
	"github.com/butterslam/vibe-1/internal/backup"
	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/habits"
	"github.com/butterslam/vibe-1/internal/logger"
	"github.com/butterslam/vibe-1/internal/notifier"
	"github.com/butterslam/vibe-1/internal/storage"
)

type Context struct {
	Store storage.Provider

	habitStore *habits.Store
	allySvc    *allies.Service
}

// Habits returns the loaded habit store, building it on first use.
func (c *Context) Habits() (*habits.Store, error) {
	if c.habitStore != nil {
		return c.habitStore, nil
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var sched notifier.Scheduler = notifier.Noop{}
	if settings.NotificationsEnabled {
		sched = notifier.New(settings.Timezone)
	}

	store := habits.New(c.Store, sched, settings)
	if err := store.Refresh(); err != nil {
		return nil, err
	}
	c.habitStore = store
	return store, nil
}

// Allies returns the ally service, building it on first use.
func (c *Context) Allies() (*allies.Service, error) {
	if c.allySvc != nil {
		return c.allySvc, nil
	}
	habitStore, err := c.Habits()
	if err != nil {
		return nil, err
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	c.allySvc = allies.New(c.Store, habitStore, settings.OwnerID)
	return c.allySvc, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var weekdayAliases = map[string]string{
	"mon": "Monday", "monday": "Monday",
	"tue": "Tuesday", "tues": "Tuesday", "tuesday": "Tuesday",
	"wed": "Wednesday", "wednesday": "Wednesday",
	"thu": "Thursday", "thur": "Thursday", "thursday": "Thursday",
	"fri": "Friday", "friday": "Friday",
	"sat": "Saturday", "saturday": "Saturday",
	"sun": "Sunday", "sunday": "Sunday",
}

// ParseWeekdayLabels parses a comma-separated list of weekdays into canonical
// labels, Monday first, duplicates removed. "all" expands to every day.
func ParseWeekdayLabels(s string) ([]string, error) {
	picked := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if part == "all" || part == "daily" {
			for _, d := range constants.Weekdays {
				picked[d] = true
			}
			continue
		}
		label, ok := weekdayAliases[part]
		if !ok {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		picked[label] = true
	}

	var days []string
	for _, d := range constants.Weekdays {
		if picked[d] {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays specified")
	}
	return days, nil
}

// FormatDays renders scheduled days compactly ("Mon, Wed, Fri").
func FormatDays(days []string) string {
	if len(days) == 7 {
		return "Every day"
	}
	short := make([]string, 0, len(days))
	for _, d := range days {
		if len(d) > 3 {
			d = d[:3]
		}
		short = append(short, d)
	}
	return strings.Join(short, ", ")
}
