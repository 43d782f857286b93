// Package calendar renders a month of completion history for one habit and
// lets the user toggle days directly.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/schedule"
)

// ToggleDayMsg asks the host model to toggle a completion.
type ToggleDayMsg struct {
	HabitID string
	Date    time.Time
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type KeyMap struct {
	PrevDay    key.Binding
	NextDay    key.Binding
	PrevWeek   key.Binding
	NextWeek   key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	PrevHabit  key.Binding
	NextHabit  key.Binding
	ToggleDone key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev day")),
		NextDay:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next day")),
		PrevWeek:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "prev week")),
		NextWeek:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "next week")),
		PrevMonth:  key.NewBinding(key.WithKeys("pgup", "["), key.WithHelp("[", "prev month")),
		NextMonth:  key.NewBinding(key.WithKeys("pgdown", "]"), key.WithHelp("]", "next month")),
		PrevHabit:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev habit")),
		NextHabit:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next habit")),
		ToggleDone: key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space", "toggle done")),
	}
}

type Model struct {
	habits   []models.Habit
	selected int
	cursor   time.Time
	keys     KeyMap
	width    int
	height   int
}

func New(habits []models.Habit, now time.Time, width, height int) Model {
	return Model{
		habits: habits,
		cursor: dates.Midnight(now),
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
	}
}

// SetHabits replaces the habit slice, clamping the selection.
func (m *Model) SetHabits(habits []models.Habit) {
	m.habits = habits
	if m.selected >= len(habits) {
		m.selected = 0
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.habits) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.cursor = m.cursor.AddDate(0, 0, -1)
	case key.Matches(keyMsg, m.keys.NextDay):
		m.cursor = m.cursor.AddDate(0, 0, 1)
	case key.Matches(keyMsg, m.keys.PrevWeek):
		m.cursor = m.cursor.AddDate(0, 0, -7)
	case key.Matches(keyMsg, m.keys.NextWeek):
		m.cursor = m.cursor.AddDate(0, 0, 7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.cursor = m.cursor.AddDate(0, -1, 0)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.cursor = m.cursor.AddDate(0, 1, 0)
	case key.Matches(keyMsg, m.keys.NextHabit):
		m.selected = (m.selected + 1) % len(m.habits)
	case key.Matches(keyMsg, m.keys.PrevHabit):
		m.selected = (m.selected + len(m.habits) - 1) % len(m.habits)
	case key.Matches(keyMsg, m.keys.ToggleDone):
		habit := m.habits[m.selected]
		date := m.cursor
		return m, func() tea.Msg { return ToggleDayMsg{HabitID: habit.ID, Date: date} }
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return "\n  No habits yet.\n"
	}

	habit := m.habits[m.selected]
	first := m.cursor.AddDate(0, 0, 1-m.cursor.Day())
	cursorKey := dates.Key(m.cursor)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s · %s", habit.Name, first.Format("January 2006"))))
	b.WriteString("\n\n Mon  Tue  Wed  Thu  Fri  Sat  Sun\n")

	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("     ", offset))

	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		dayKey := dates.Key(day)
		cell := fmt.Sprintf(" %2d ", day.Day())

		switch {
		case habit.IsCompletedOn(dayKey):
			cell = doneStyle.Render(cell)
		case !schedule.IsDue(habit, day):
			cell = dimStyle.Render(cell)
		}
		if dayKey == cursorKey {
			cell = cursorStyle.Render(cell)
		}

		b.WriteString(cell)
		b.WriteString(" ")
		if (offset+day.Day())%7 == 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %d completions recorded · n to switch habit", cursorKey, habit.CompletedDates.Len())))
	return b.String()
}
