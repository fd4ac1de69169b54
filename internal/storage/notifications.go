package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/localpay/localpay/internal/model"
)

// AppendNotification adds a record to the local notification log. The ID
// is assigned here when the caller left it empty.
func (s *SQLiteStorage) AppendNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return model.Notification{}, err
	}
	if err := validateString(n.Title, "title"); err != nil {
		return model.Notification{}, err
	}
	switch n.Type {
	case model.NotificationSuccess, model.NotificationError, model.NotificationInfo:
	default:
		return model.Notification{}, fmt.Errorf("%w: %q", ErrInvalidNotifType, n.Type)
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, title, message, type, read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Message, n.Type, n.Read, n.CreatedAt)
	if err != nil {
		return model.Notification{}, fmt.Errorf("failed to append notification: %w", err)
	}

	slog.Debug("appended notification", "id", n.ID, "type", n.Type)
	return n, nil
}

// ListNotifications returns the notification log newest-first. When
// unreadOnly is set, read records are filtered out.
func (s *SQLiteStorage) ListNotifications(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, message, type, read, created_at
		FROM notifications`
	if unreadOnly {
		query += ` WHERE read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// UnreadCount returns how many notifications are still unread.
func (s *SQLiteStorage) UnreadCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks one record as read.
func (s *SQLiteStorage) MarkNotificationRead(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks the whole log as read.
func (s *SQLiteStorage) MarkAllNotificationsRead(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE read = 0`)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes a single record.
func (s *SQLiteStorage) DeleteNotification(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// ClearNotifications empties the log.
func (s *SQLiteStorage) ClearNotifications(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM notifications`)
	if err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}
