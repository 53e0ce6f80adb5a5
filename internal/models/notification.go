package models

import "time"

// Notification types.
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
	NotificationInfo    = "info"
	NotificationWarning = "warning"
)

// Notification is a per-user inbox entry.
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
