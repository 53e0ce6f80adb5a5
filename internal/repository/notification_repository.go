package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	query := `SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 10`
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, appErrors.Wrap(err, "failed to list notifications")
	}
	return notifications, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `INSERT INTO notifications (user_id, title, message, type, is_read)
		VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, n.UserID, n.Title, n.Message, n.Type, n.IsRead)
	if err != nil {
		return appErrors.Wrap(err, "failed to create notification")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return appErrors.Wrap(err, "failed to read new notification id")
	}
	n.ID = id
	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return appErrors.Wrap(err, "failed to mark notification read")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return appErrors.Wrap(err, "failed to read update result")
	}
	if rows == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}
