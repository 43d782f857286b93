package system

import (
	"fmt"

	"github.com/butterslam/vibe-1/internal/cli"
	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/notifier"
	"github.com/butterslam/vibe-1/internal/schedule"
)

// NotifyCmd is run on a timer (cron or the tray app) and reminds about habits
// whose time of day just passed without a completion.
type NotifyCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	now, err := store.Now()
	if err != nil {
		return err
	}
	todayKey := dates.Key(now)
	nowMinutes := now.Hour()*60 + now.Minute()

	n := notifier.New(settings.Timezone)
	reminded := 0
	for _, habit := range store.All() {
		if !habit.ReminderEnabled || !schedule.IsDue(habit, now) || habit.IsCompletedOn(todayKey) {
			continue
		}

		dueMinutes, err := dates.ParseTimeToMinutes(habit.TimeOfDay)
		if err != nil {
			continue
		}
		// Remind only inside the grace window after the scheduled time, so a
		// repeated timer run does not spam earlier habits all day.
		if nowMinutes < dueMinutes || nowMinutes > dueMinutes+constants.ReminderGraceMin {
			continue
		}

		msg := fmt.Sprintf("Time for %s (%s)", habit.Name, habit.TimeOfDay)
		if c.DryRun {
			fmt.Println("[DryRun] " + msg)
		} else if err := n.Notify(msg); err != nil {
			// Keep checking other habits
			fmt.Printf("Failed to send reminder: %v\n", err)
		}
		reminded++
	}

	if c.DryRun && reminded == 0 {
		fmt.Println("No reminders due right now.")
	}
	return nil
}
