package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/storage"
)

const notificationColumns = `id, owner_id, type, title, message, created_at, is_read,
	habit_id, from_user_id, from_username`

func scanNotification(scan func(dest ...any) error) (models.Notification, error) {
	var n models.Notification
	var typ, createdAt string

	err := scan(&n.ID, &n.OwnerID, &typ, &n.Title, &n.Message, &createdAt, &n.IsRead,
		&n.HabitID, &n.FromUserID, &n.FromUsername)
	if err != nil {
		return models.Notification{}, err
	}

	n.Type = models.NotificationType(typ)
	n.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return n, nil
}

func (s *Store) SaveNotification(n models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_read = excluded.is_read,
			title = excluded.title,
			message = excluded.message`,
		n.ID, n.OwnerID, string(n.Type), n.Title, n.Message, n.CreatedAt.Format(time.RFC3339),
		n.IsRead, n.HabitID, n.FromUserID, n.FromUsername)
	return err
}

func (s *Store) GetNotification(id string) (models.Notification, error) {
	row := s.db.QueryRow("SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id)
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
	rows, err := s.db.Query("SELECT "+notificationColumns+" FROM notifications WHERE owner_id = ? ORDER BY created_at DESC", ownerID)
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
	res, err := s.db.Exec("DELETE FROM notifications WHERE id = ?", id)
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
