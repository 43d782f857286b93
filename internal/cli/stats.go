package cli

import (
	"fmt"
	"strings"

	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/progress"
	"github.com/butterslam/vibe-1/internal/schedule"
)

type StatsCmd struct {
	Today  StatsTodayCmd  `cmd:"" help:"Show today's completion status." default:"1"`
	Week   StatsWeekCmd   `cmd:"" help:"Show progress for the current week."`
	Streak StatsStreakCmd `cmd:"" help:"Show the current all-habit streak."`
	Log    StatsLogCmd    `cmd:"" help:"Show completion history (ASCII grid)."`
}

type StatsTodayCmd struct{}

func (c *StatsTodayCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	all := store.All()
	if len(all) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now, err := store.Now()
	if err != nil {
		return err
	}
	todayKey := dates.Key(now)

	fmt.Printf("Habits for %s (%s):\n\n", todayKey, dates.WeekdayName(now))
	for _, habit := range sortedByName(all) {
		if !schedule.IsDue(habit, now) {
			continue
		}
		status := "[ ]"
		if habit.IsCompletedOn(todayKey) {
			status = "[x]"
		}
		fmt.Printf("%s %s (%s)\n", status, habit.Name, habit.TimeOfDay)
	}

	fmt.Printf("\nCompleted: %s\n", progress.TodayRatio(all, now))
	return nil
}

type StatsWeekCmd struct{}

func (c *StatsWeekCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	all := store.All()
	if len(all) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now, err := store.Now()
	if err != nil {
		return err
	}

	week := progress.WeekProgress(all, now)
	start := dates.StartOfWeek(now)

	fmt.Printf("Week of %s:\n\n", dates.Key(start))
	for i, ratio := range week {
		day := start.AddDate(0, 0, i)
		marker := " "
		if dates.Key(day) == dates.Key(now) {
			marker = "*"
		}
		fmt.Printf("%s %-9s %s %3.0f%%\n", marker, dates.WeekdayName(day), bar(ratio, 10), ratio*100)
	}

	fmt.Printf("\nStreak: %d days\n", progress.CurrentStreak(all, now))
	return nil
}

// bar renders a fixed-width completion bar.
func bar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

type StatsStreakCmd struct{}

func (c *StatsStreakCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	now, err := store.Now()
	if err != nil {
		return err
	}

	streak := progress.CurrentStreak(store.All(), now)
	switch streak {
	case 0:
		fmt.Println("No streak yet. Complete everything due today to start one.")
	case 1:
		fmt.Println("Streak: 1 day")
	default:
		fmt.Printf("Streak: %d days\n", streak)
	}
	return nil
}

type StatsLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *StatsLogCmd) Run(ctx *Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	all := store.All()
	if len(all) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	var selected []models.Habit
	if c.Habit != "" {
		habit, ok := store.GetByName(c.Habit)
		if !ok {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
		selected = []models.Habit{habit}
	} else {
		selected = sortedByName(all)
	}

	now, err := store.Now()
	if err != nil {
		return err
	}
	start := dates.Midnight(now).AddDate(0, 0, -(c.Days - 1))

	const nameWidth = 20
	fmt.Printf("Completion log (last %d days):\n\n", c.Days)

	fmt.Print(strings.Repeat(" ", nameWidth))
	for i := 0; i < c.Days; i++ {
		fmt.Printf(" %5s", start.AddDate(0, 0, i).Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", nameWidth+6*c.Days))

	for _, habit := range selected {
		name := habit.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		fmt.Printf("%-*s", nameWidth, name)

		for i := 0; i < c.Days; i++ {
			day := start.AddDate(0, 0, i)
			key := dates.Key(day)
			switch {
			case habit.IsCompletedOn(key):
				fmt.Print("  x   ")
			case schedule.IsDue(habit, day):
				fmt.Print("  .   ")
			default:
				fmt.Print("      ")
			}
		}
		fmt.Println()
	}
	return nil
}
