package models

import "time"

// UserToken is an opaque bearer session token. A user has at most one
// valid token; minting a new one removes the previous session.
type UserToken struct {
	Token     string    `db:"token" json:"token"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
