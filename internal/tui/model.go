package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/habits"
	"github.com/butterslam/vibe-1/internal/tui/components/calendar"
	"github.com/butterslam/vibe-1/internal/tui/components/habitlist"
	"github.com/butterslam/vibe-1/internal/tui/components/week"
	"github.com/butterslam/vibe-1/internal/validation"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateWeek
	StateCalendar
	StateAddHabit
	StateEditHabit
	StateInviteAlly
	StateConfirmDelete
)

// HabitFormModel backs the add/edit habit form.
type HabitFormModel struct {
	Name        string
	Days        []string
	Time        string
	Commitment  int
	Color       int
	Description string
	Reminder    bool
}

// AllyFormModel backs the invite-ally form.
type AllyFormModel struct {
	Username string
}

type Model struct {
	store         *habits.Store
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habitList     habitlist.Model
	weekModel     week.Model
	calendarModel calendar.Model

	form           *huh.Form
	habitForm      *HabitFormModel
	allyForm       *AllyFormModel
	editingHabitID string
	habitToDelete  string
	formError      string

	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store *habits.Store) Model {
	all := store.All()
	today, err := store.TodayKey()
	if err != nil {
		log.Warn("Falling back to local timezone", "error", err)
	}
	now, _ := store.Now()

	m := Model{
		store:         store,
		state:         StateHabits,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		habitList:     habitlist.New(all, today, 0, 0),
		weekModel:     week.New(all, now, 0, 0),
		calendarModel: calendar.New(all, now, 0, 0),
	}
	m.updateValidationStatus()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateHabits {
		keys = append(keys, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	return [][]key.Binding{global, navigation}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-reads the store and pushes the data into every component.
func (m *Model) refresh() {
	all := m.store.All()
	today, _ := m.store.TodayKey()
	now, _ := m.store.Now()
	m.habitList.SetHabits(all, today)
	m.weekModel.SetHabits(all, now)
	m.calendarModel.SetHabits(all)
	m.updateValidationStatus()
}

func (m *Model) updateValidationStatus() {
	result := validation.CheckHabits(m.store.All())
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d data warning(s), run 'vibe doctor'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

// newHabitForm builds the add/edit form over the given form model.
func newHabitForm(f *HabitFormModel) *huh.Form {
	dayOptions := make([]huh.Option[string], len(constants.Weekdays))
	for i, d := range constants.Weekdays {
		dayOptions[i] = huh.NewOption(d, d)
	}

	commitmentOptions := make([]huh.Option[int], 0, constants.MaxCommitmentLevel)
	for level := constants.MinCommitmentLevel; level <= constants.MaxCommitmentLevel; level++ {
		commitmentOptions = append(commitmentOptions, huh.NewOption(fmt.Sprintf("%d", level), level))
	}

	colorOptions := make([]huh.Option[int], len(constants.HabitColors))
	for i, c := range constants.HabitColors {
		colorOptions[i] = huh.NewOption(c, i)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewMultiSelect[string]().
				Title("Scheduled days").
				Options(dayOptions...).
				Value(&f.Days).
				Validate(func(days []string) error {
					if len(days) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time of day (HH:MM)").
				Value(&f.Time).
				Validate(validateTimeField),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Commitment level").
				Options(commitmentOptions...).
				Value(&f.Commitment),
			huh.NewSelect[int]().
				Title("Color").
				Options(colorOptions...).
				Value(&f.Color),
			huh.NewInput().
				Title("Description (optional)").
				Value(&f.Description),
			huh.NewConfirm().
				Title("Reminders").
				Affirmative("On").
				Negative("Off").
				Value(&f.Reminder),
		),
	)
}

func newAllyForm(f *AllyFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ally username").
				Value(&f.Username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),
		),
	)
}

func validateTimeField(s string) error {
	if !dates.ValidateTimeFormat(s) {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}
