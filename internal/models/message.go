package models

import "time"

// Message is an append-only chat entry within a conversation.
type Message struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversation_id"`
	SenderID       int64     `db:"sender_id" json:"sender_id"`
	Text           string    `db:"message" json:"text"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// MessageView joins the sender name for conversation listings.
type MessageView struct {
	ID         int64     `db:"id" json:"id"`
	Text       string    `db:"message" json:"text"`
	SenderID   int64     `db:"sender_id" json:"sender_id"`
	SenderName string    `db:"sender_name" json:"sender_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
