package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/habits"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/schedule"
	"github.com/butterslam/vibe-1/internal/tracker"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Edit     HabitEditCmd     `cmd:"" help:"Edit a habit's schedule or details."`
	Toggle   HabitToggleCmd   `cmd:"" help:"Toggle completion for a day."`
	Show     HabitShowCmd     `cmd:"" help:"Show details for one habit."`
	Calendar HabitCalendarCmd `cmd:"" help:"Show a month of completion history."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Days        string `help:"Comma-separated weekdays (e.g. mon,wed,fri) or 'all'." default:"all"`
	Time        string `help:"Time of day in HH:MM format." default:"09:00"`
	Commitment  int    `help:"Commitment level (1-10)." default:"5"`
	Color       int    `help:"Color index for display." default:"0"`
	Description string `help:"Optional description."`
	NoReminder  bool   `help:"Disable reminders for this habit."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	days, err := ParseWeekdayLabels(c.Days)
	if err != nil {
		return err
	}

	habit, err := store.Add(habits.NewHabit{
		Name:            c.Name,
		ScheduledDays:   days,
		TimeOfDay:       c.Time,
		CommitmentLevel: c.Commitment,
		ColorIndex:      c.Color,
		Description:     c.Description,
		ReminderEnabled: !c.NoReminder,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s at %s)\n", habit.Name, FormatDays(habit.ScheduledDays), habit.TimeOfDay)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	all := store.All()
	if len(all) == 0 {
		fmt.Println("No habits found. Add one with 'vibe habit add'.")
		return nil
	}

	today, err := store.TodayKey()
	if err != nil {
		return err
	}

	for _, habit := range all {
		status := "[ ]"
		if habit.IsCompletedToday(today) {
			status = "[x]"
		}
		fmt.Printf("%s %-24s %s at %s\n", status, habit.Name, FormatDays(habit.ScheduledDays), habit.TimeOfDay)
	}
	return nil
}

type HabitEditCmd struct {
	Name        string  `arg:"" help:"Habit name."`
	Rename      string  `help:"New habit name."`
	Days        string  `help:"Comma-separated weekdays or 'all'."`
	Time        string  `help:"Time of day in HH:MM format."`
	Commitment  *int    `help:"Commitment level (1-10)."`
	Color       *int    `help:"Color index for display."`
	Description *string `help:"Description text."`
	Reminder    *bool   `help:"Enable or disable reminders."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	habit, ok := store.GetByName(c.Name)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	edit := habits.Edit{
		Name:            habit.Name,
		ScheduledDays:   habit.ScheduledDays,
		TimeOfDay:       habit.TimeOfDay,
		CommitmentLevel: habit.CommitmentLevel,
		ColorIndex:      habit.ColorIndex,
		Description:     habit.Description,
		InvitedAllies:   habit.InvitedAllies,
		ReminderEnabled: habit.ReminderEnabled,
	}
	if c.Rename != "" {
		edit.Name = c.Rename
	}
	if c.Days != "" {
		days, err := ParseWeekdayLabels(c.Days)
		if err != nil {
			return err
		}
		edit.ScheduledDays = days
	}
	if c.Time != "" {
		edit.TimeOfDay = c.Time
	}
	if c.Commitment != nil {
		edit.CommitmentLevel = *c.Commitment
	}
	if c.Color != nil {
		edit.ColorIndex = *c.Color
	}
	if c.Description != nil {
		edit.Description = *c.Description
	}
	if c.Reminder != nil {
		edit.ReminderEnabled = *c.Reminder
	}

	updated, ok, err := store.Update(habit.ID, edit)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	fmt.Printf("Updated habit: %s (%s at %s)\n", updated.Name, FormatDays(updated.ScheduledDays), updated.TimeOfDay)
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	habit, ok := store.GetByName(c.Name)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	day := c.Date
	if day == "" {
		day, err = store.TodayKey()
		if err != nil {
			return err
		}
	} else if !dates.IsValidKey(day) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}

	date, err := dates.ParseKey(day, nil)
	if err != nil {
		return err
	}

	updated, ok, err := store.Toggle(habit.ID, date)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if updated.IsCompletedOn(day) {
		fmt.Printf("Marked %q done for %s\n", updated.Name, day)
	} else {
		fmt.Printf("Unmarked %q for %s\n", updated.Name, day)
	}
	return nil
}

type HabitShowCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	habit, ok := store.GetByName(c.Name)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	now, err := store.Now()
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", habit.Name)
	if habit.Description != "" {
		fmt.Printf("  %s\n", habit.Description)
	}
	fmt.Printf("  Schedule:    %s at %s\n", FormatDays(habit.ScheduledDays), habit.TimeOfDay)
	fmt.Printf("  Commitment:  %d/%d (%s)\n", habit.CommitmentLevel, constants.MaxCommitmentLevel, models.CommitmentLabel(habit.CommitmentLevel))
	fmt.Printf("  Completions: %d recorded\n", habit.CompletedDates.Len())
	fmt.Printf("  Recent:      %d of %d weekly target\n", tracker.CompletionCountRecent(habit, now), habit.FrequencyPerWeek)
	if last, ok := habit.LastCompleted(); ok {
		fmt.Printf("  Last done:   %s\n", last)
	}
	if next, ok := schedule.NextDue(habit, now); ok {
		fmt.Printf("  Next due:    %s\n", next.Format("Monday 15:04"))
	}
	if len(habit.InvitedAllies) > 0 {
		fmt.Printf("  Allies:      %s\n", strings.Join(habit.InvitedAllies, ", "))
	}
	return nil
}

type HabitCalendarCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Month string `help:"Month in YYYY-MM format (default: current month)." default:""`
}

func (c *HabitCalendarCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	habit, ok := store.GetByName(c.Name)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	now, err := store.Now()
	if err != nil {
		return err
	}
	first := dates.Midnight(now).AddDate(0, 0, 1-now.Day())
	if c.Month != "" {
		first, err = dates.ParseKey(c.Month+"-01", now.Location())
		if err != nil {
			return fmt.Errorf("invalid month: %s (expected YYYY-MM)", c.Month)
		}
	}

	fmt.Printf("%s: %s\n\n", habit.Name, first.Format("January 2006"))
	fmt.Println("Mon Tue Wed Thu Fri Sat Sun")

	// Leading blanks up to the month's first weekday, Monday-based.
	offset := (int(first.Weekday()) + 6) % 7
	fmt.Print(strings.Repeat("    ", offset))

	todayKey := dates.Key(now)
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		key := dates.Key(day)
		cell := " . "
		switch {
		case habit.IsCompletedOn(key):
			cell = " x "
		case key == todayKey && schedule.IsDue(habit, day):
			cell = " ! "
		case !schedule.IsDue(habit, day):
			cell = "   "
		}
		fmt.Print(cell + " ")
		if (offset+day.Day())%7 == 0 {
			fmt.Println()
		}
	}
	fmt.Println()
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	habit, ok := store.GetByName(c.Name)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := store.Delete(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Name)
	return nil
}

// sortedByName returns habits ordered by name for stable display.
func sortedByName(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	copy(out, habits)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
