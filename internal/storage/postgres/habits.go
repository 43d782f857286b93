package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/storage"
)

const habitColumns = `id, owner_id, name, scheduled_days, time_of_day, frequency_per_week,
	commitment_level, color_index, description, invited_allies, reminder_enabled, created_at`

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var days, allies string
	var createdAt time.Time

	err := scan(&h.ID, &h.OwnerID, &h.Name, &days, &h.TimeOfDay, &h.FrequencyPerWeek,
		&h.CommitmentLevel, &h.ColorIndex, &h.Description, &allies, &h.ReminderEnabled, &createdAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.ScheduledDays = splitList(days)
	h.InvitedAllies = splitList(allies)
	h.CreatedAt = createdAt
	h.CompletedDates = models.NewDateSet()
	return h, nil
}

func (s *Store) loadCompletions(h *models.Habit) error {
	rows, err := s.db.Query("SELECT day FROM habit_completions WHERE habit_id = $1", h.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return err
		}
		h.CompletedDates.Add(day)
	}
	return rows.Err()
}

func (s *Store) SaveHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			name = EXCLUDED.name,
			scheduled_days = EXCLUDED.scheduled_days,
			time_of_day = EXCLUDED.time_of_day,
			frequency_per_week = EXCLUDED.frequency_per_week,
			commitment_level = EXCLUDED.commitment_level,
			color_index = EXCLUDED.color_index,
			description = EXCLUDED.description,
			invited_allies = EXCLUDED.invited_allies,
			reminder_enabled = EXCLUDED.reminder_enabled`,
		habit.ID, habit.OwnerID, habit.Name, joinList(habit.ScheduledDays), habit.TimeOfDay,
		habit.FrequencyPerWeek, habit.CommitmentLevel, habit.ColorIndex, habit.Description,
		joinList(habit.InvitedAllies), habit.ReminderEnabled, habit.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM habit_completions WHERE habit_id = $1", habit.ID); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO habit_completions (habit_id, day) VALUES ($1, $2)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, day := range habit.CompletedDates.Sorted() {
		if _, err := stmt.Exec(habit.ID, day); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = $1", id)
	h, err := scanHabit(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, storage.ErrNotFound
		}
		return models.Habit{}, err
	}
	if err := s.loadCompletions(&h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetHabitByName(ownerID, name string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE owner_id = $1 AND name = $2", ownerID, name)
	h, err := scanHabit(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, storage.ErrNotFound
		}
		return models.Habit{}, err
	}
	if err := s.loadCompletions(&h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetAllHabits(ownerID string) ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT "+habitColumns+" FROM habits WHERE owner_id = $1 ORDER BY created_at, id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		if err := s.loadCompletions(&habits[i]); err != nil {
			return nil, err
		}
	}
	return habits, nil
}

func (s *Store) DeleteHabit(id string) error {
	res, err := s.db.Exec("DELETE FROM habits WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
