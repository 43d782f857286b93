package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/habits"
	"github.com/butterslam/vibe-1/internal/tui/components/calendar"
	"github.com/butterslam/vibe-1/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 6
		m.habitList.SetSize(msg.Width-4, contentHeight)
		m.weekModel.SetSize(msg.Width-4, contentHeight)
		m.calendarModel.SetSize(msg.Width-4, contentHeight)
	}

	switch m.state {
	case StateAddHabit, StateEditHabit:
		return m.updateHabitForm(msg)
	case StateInviteAlly:
		return m.updateAllyForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.state == StateHabits && m.habitList.Filtering() {
				break
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = nextState(m.state, 1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab) && m.state != StateCalendar:
			m.state = nextState(m.state, -1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{
			Time:       constants.DefaultTimeOfDay,
			Commitment: constants.DefaultCommitmentLevel,
			Reminder:   true,
		}
		m.form = newHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		m.formError = ""
		return m, m.form.Init()

	case habitlist.EditHabitMsg:
		habit, ok := m.store.Get(msg.ID)
		if !ok {
			return m, nil
		}
		m.habitForm = &HabitFormModel{
			Name:        habit.Name,
			Days:        slices.Clone(habit.ScheduledDays),
			Time:        habit.TimeOfDay,
			Commitment:  habit.CommitmentLevel,
			Color:       habit.ColorIndex,
			Description: habit.Description,
			Reminder:    habit.ReminderEnabled,
		}
		m.form = newHabitForm(m.habitForm)
		m.editingHabitID = habit.ID
		m.previousState = m.state
		m.state = StateEditHabit
		m.formError = ""
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		if _, _, err := m.store.ToggleToday(msg.ID); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
		}
		m.refresh()
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.habitToDelete = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case habitlist.InviteAllyMsg:
		m.allyForm = &AllyFormModel{}
		m.form = newAllyForm(m.allyForm)
		m.editingHabitID = msg.ID
		m.previousState = m.state
		m.state = StateInviteAlly
		m.formError = ""
		return m, m.form.Init()

	case calendar.ToggleDayMsg:
		if _, _, err := m.store.Toggle(msg.HabitID, msg.Date); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateWeek:
		m.weekModel, cmd = m.weekModel.Update(msg)
	case StateCalendar:
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func nextState(state SessionState, step int) SessionState {
	order := []SessionState{StateHabits, StateWeek, StateCalendar}
	for i, s := range order {
		if s == state {
			return order[(i+step+len(order))%len(order)]
		}
	}
	return StateHabits
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		if m.state == StateAddHabit {
			_, err = m.store.Add(habits.NewHabit{
				Name:            m.habitForm.Name,
				ScheduledDays:   m.habitForm.Days,
				TimeOfDay:       m.habitForm.Time,
				CommitmentLevel: m.habitForm.Commitment,
				ColorIndex:      m.habitForm.Color,
				Description:     m.habitForm.Description,
				ReminderEnabled: m.habitForm.Reminder,
			})
		} else {
			var allies []string
			if habit, ok := m.store.Get(m.editingHabitID); ok {
				allies = habit.InvitedAllies
			}
			_, _, err = m.store.Update(m.editingHabitID, habits.Edit{
				Name:            m.habitForm.Name,
				ScheduledDays:   m.habitForm.Days,
				TimeOfDay:       m.habitForm.Time,
				CommitmentLevel: m.habitForm.Commitment,
				ColorIndex:      m.habitForm.Color,
				Description:     m.habitForm.Description,
				InvitedAllies:   allies,
				ReminderEnabled: m.habitForm.Reminder,
			})
		}
		if err != nil {
			// Stay in the form so the user can fix the input
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, nil
		}
		m.formError = ""
		m.refresh()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateAllyForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		habit, ok := m.store.Get(m.editingHabitID)
		if ok && !slices.Contains(habit.InvitedAllies, m.allyForm.Username) {
			_, _, err := m.store.Update(habit.ID, habits.Edit{
				Name:            habit.Name,
				ScheduledDays:   habit.ScheduledDays,
				TimeOfDay:       habit.TimeOfDay,
				CommitmentLevel: habit.CommitmentLevel,
				ColorIndex:      habit.ColorIndex,
				Description:     habit.Description,
				InvitedAllies:   append(slices.Clone(habit.InvitedAllies), m.allyForm.Username),
				ReminderEnabled: habit.ReminderEnabled,
			})
			if err != nil {
				m.formError = err.Error()
				m.form.State = huh.StateNormal
				return m, nil
			}
		}
		m.formError = ""
		m.refresh()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if err := m.store.Delete(m.habitToDelete); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
		}
		m.habitToDelete = ""
		m.refresh()
		m.state = m.previousState
	case "n", "N", "esc", "q":
		m.habitToDelete = ""
		m.state = m.previousState
	}
	return m, nil
}
