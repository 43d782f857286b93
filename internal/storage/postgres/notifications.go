package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/storage"
)

const notificationColumns = `id, owner_id, type, title, message, created_at, is_read,
	habit_id, from_user_id, from_username`

func scanNotification(scan func(dest ...any) error) (models.Notification, error) {
	var n models.Notification
	var typ string
	var createdAt time.Time

	err := scan(&n.ID, &n.OwnerID, &typ, &n.Title, &n.Message, &createdAt, &n.IsRead,
		&n.HabitID, &n.FromUserID, &n.FromUsername)
	if err != nil {
		return models.Notification{}, err
	}

	n.Type = models.NotificationType(typ)
	n.CreatedAt = createdAt
	return n, nil
}

func (s *Store) SaveNotification(n models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			is_read = EXCLUDED.is_read,
			title = EXCLUDED.title,
			message = EXCLUDED.message`,
		n.ID, n.OwnerID, string(n.Type), n.Title, n.Message, n.CreatedAt,
		n.IsRead, n.HabitID, n.FromUserID, n.FromUsername)
	return err
}

func (s *Store) GetNotification(id string) (models.Notification, error) {
	row := s.db.QueryRow("SELECT "+notificationColumns+" FROM notifications WHERE id = $1", id)
	n, err := scanNotification(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Notification{}, storage.ErrNotFound
		}
		return models.Notification{}, err
	}
	return n, nil
}

func (s *Store) GetNotifications(ownerID string) ([]models.Notification, error) {
	rows, err := s.db.Query("SELECT "+notificationColumns+" FROM notifications WHERE owner_id = $1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows.Scan)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *Store) DeleteNotification(id string) error {
	res, err := s.db.Exec("DELETE FROM notifications WHERE id = $1", id)
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
