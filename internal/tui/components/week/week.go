// Package week renders the current week's progress and the running streak.
package week

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/progress"
	"github.com/butterslam/vibe-1/internal/schedule"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	fullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	streakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

type Model struct {
	habits []models.Habit
	now    time.Time
	width  int
	height int
}

func New(habits []models.Habit, now time.Time, width, height int) Model {
	return Model{habits: habits, now: now, width: width, height: height}
}

func (m *Model) SetHabits(habits []models.Habit, now time.Time) {
	m.habits = habits
	m.now = now
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return "\n  No habits yet.\n"
	}

	week := progress.WeekProgress(m.habits, m.now)
	start := dates.StartOfWeek(m.now)
	todayKey := dates.Key(m.now)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Week of %s\n\n", dates.Key(start)))

	for i, ratio := range week {
		day := start.AddDate(0, 0, i)
		label := fmt.Sprintf("%-9s", dates.WeekdayName(day))

		style := dayStyle
		if dates.Key(day) == todayKey {
			style = todayStyle
		} else if ratio >= 1 {
			style = fullStyle
		}

		b.WriteString(fmt.Sprintf("%s %s %3.0f%%", style.Render(label), bar(ratio, 20), ratio*100))
		if dueCount(m.habits, day) == 0 {
			b.WriteString("  (rest day)")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	streak := progress.CurrentStreak(m.habits, m.now)
	switch streak {
	case 0:
		b.WriteString("No streak yet.")
	case 1:
		b.WriteString(streakStyle.Render("Streak: 1 day"))
	default:
		b.WriteString(streakStyle.Render(fmt.Sprintf("Streak: %d days", streak)))
	}

	completed, total := progress.TodayCounts(m.habits, m.now)
	b.WriteString(fmt.Sprintf("\nToday: %d/%d done", completed, total))

	return b.String()
}

func bar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func dueCount(habits []models.Habit, day time.Time) int {
	count := 0
	for _, h := range habits {
		if schedule.IsDue(h, day) {
			count++
		}
	}
	return count
}
