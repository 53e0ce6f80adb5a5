package models

import "time"

// Conversation statuses. A conversation starts Pending, becomes Active on
// its first message and never reverts.
const (
	ConversationStatusPending = "Pending"
	ConversationStatusActive  = "Active"
	ConversationStatusClosed  = "Closed"
)

// Conversation is a chat session between a user and a listener.
type Conversation struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	ListenerID int64     `db:"listener_id" json:"listener_id"`
	Problem    string    `db:"problem" json:"problem"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ConversationDetail joins participant display names for listings.
type ConversationDetail struct {
	Conversation
	UserName     string `db:"user_name" json:"user_name"`
	ListenerName string `db:"listener_name" json:"listener_name"`
}

// ConversationRelay carries the participants needed to route an auto-reply:
// the listener profile on the conversation and the user account behind it.
type ConversationRelay struct {
	ConversationID int64  `db:"conversation_id"`
	ListenerID     int64  `db:"listener_id"`
	ListenerUserID int64  `db:"user_id"`
	Status         string `db:"status"`
}
