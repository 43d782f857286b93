package postgres

import (
	"github.com/butterslam/vibe-1/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "owner_id":
			settings.OwnerID = value
		case "timezone":
			settings.Timezone = value
		case "notifications_enabled":
			settings.NotificationsEnabled = value == "true"
		case "default_reminder":
			settings.DefaultReminder = value == "true"
		}
	}

	return settings, rows.Err()
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	boolStr := func(b bool) string {
		if b {
			return "true"
		}
		return "false"
	}

	pairs := [][2]string{
		{"owner_id", settings.OwnerID},
		{"timezone", settings.Timezone},
		{"notifications_enabled", boolStr(settings.NotificationsEnabled)},
		{"default_reminder", boolStr(settings.DefaultReminder)},
	}
	for _, kv := range pairs {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return err
		}
	}

	return tx.Commit()
}
