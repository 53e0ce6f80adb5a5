package models

import "time"

// Available roles. Listeners own a user record with the listener role.
const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleListener = "listener"
)

// User statuses.
const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

// User represents an application user stored in the users table.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	Role         string    `db:"role" json:"role"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserInfo is the sanitized projection returned by auth and list endpoints.
type UserInfo struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Email  string `db:"email" json:"email"`
	Role   string `db:"role" json:"role"`
	Status string `db:"status" json:"status"`
}

// Info strips credentials and token material from a user record.
func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status}
}
