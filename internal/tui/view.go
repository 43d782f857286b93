package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateWeek:
		content = docStyle.Render(m.weekModel.View())
	case StateCalendar:
		content = docStyle.Render(m.calendarModel.View())
	case StateAddHabit, StateEditHabit, StateInviteAlly:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var banner string
	if m.validationWarning != "" && m.state == StateHabits {
		banner = warningStyle.Render(m.validationWarning)
	}
	if m.formError != "" {
		banner = errorStyle.Render("Error: " + m.formError)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []string{"Habits", "Week", "Calendar"}
	states := []SessionState{StateHabits, StateWeek, StateCalendar}

	active := m.state
	// Forms and confirmations overlay the tab they were opened from
	if active > StateCalendar {
		active = m.previousState
	}

	var tabs []string
	for i, title := range titles {
		if states[i] == active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	name := m.habitToDelete
	if habit, ok := m.store.Get(m.habitToDelete); ok {
		name = habit.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete habit \""+name+"\" and its completion history?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
