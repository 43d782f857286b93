// Package habitlist renders the scrollable habit list tab.
package habitlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/schedule"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID string
}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type InviteAllyMsg struct {
	ID string
}

type Item struct {
	Habit models.Habit
	Today string
	Due   bool
}

func (i Item) Title() string {
	marker := "○"
	if i.Habit.IsCompletedOn(i.Today) {
		marker = "✓"
	} else if !i.Due {
		marker = "·"
	}
	return marker + " " + i.Habit.Name
}

func (i Item) Description() string {
	var parts []string
	if i.Habit.IsCompletedOn(i.Today) {
		parts = append(parts, "done today")
	} else if i.Due {
		parts = append(parts, "due at "+i.Habit.TimeOfDay)
	} else {
		parts = append(parts, "not scheduled today")
	}
	parts = append(parts, fmt.Sprintf("%d/wk", i.Habit.FrequencyPerWeek))
	if len(i.Habit.InvitedAllies) > 0 {
		parts = append(parts, fmt.Sprintf("%d allies", len(i.Habit.InvitedAllies)))
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Invite key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "t"),
			key.WithHelp("space", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Invite: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "invite ally"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, today string, width, height int) Model {
	l := list.New(buildItems(habits, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Toggle, keys.Delete, keys.Invite}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func buildItems(habits []models.Habit, today string) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{
			Habit: h,
			Today: today,
			Due:   isDueToday(h, today),
		}
	}
	return items
}

func isDueToday(h models.Habit, today string) bool {
	date, err := dates.ParseKey(today, nil)
	if err != nil {
		return false
	}
	return schedule.IsDue(h, date)
}

// SetHabits replaces the list contents, keeping the cursor where possible.
func (m *Model) SetHabits(habits []models.Habit, today string) {
	selected := m.list.Index()
	m.list.SetItems(buildItems(habits, today))
	if selected >= len(habits) {
		selected = len(habits) - 1
	}
	if selected >= 0 {
		m.list.Select(selected)
	}
}

// Filtering reports whether the list's filter input is capturing keys.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (models.Habit, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Habit, true
	}
	return models.Habit{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Invite):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return InviteAllyMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
