package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type ConversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) ListByUser(ctx context.Context, userID int64) ([]models.ConversationDetail, error) {
	conversations := []models.ConversationDetail{}
	query := `SELECT c.id, c.user_id, c.listener_id, c.problem, c.status, c.created_at,
			u.name AS user_name, l.name AS listener_name
		FROM conversations c
		JOIN users u ON u.id = c.user_id
		JOIN listeners l ON l.id = c.listener_id
		WHERE c.user_id = ?
		ORDER BY c.created_at DESC`
	if err := r.db.SelectContext(ctx, &conversations, query, userID); err != nil {
		return nil, appErrors.Wrap(err, "failed to list conversations")
	}
	return conversations, nil
}

func (r *ConversationRepository) GetDetail(ctx context.Context, id int64) (*models.ConversationDetail, error) {
	var detail models.ConversationDetail
	query := `SELECT c.id, c.user_id, c.listener_id, c.problem, c.status, c.created_at,
			u.name AS user_name, l.name AS listener_name
		FROM conversations c
		JOIN users u ON u.id = c.user_id
		JOIN listeners l ON l.id = c.listener_id
		WHERE c.id = ?`
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, "failed to get conversation")
	}
	return &detail, nil
}

func (r *ConversationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE conversations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return appErrors.Wrap(err, "failed to update conversation status")
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

func (r *ConversationRepository) Create(ctx context.Context, c *models.Conversation) error {
	query := `INSERT INTO conversations (user_id, listener_id, problem, status)
		VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, c.UserID, c.ListenerID, c.Problem, c.Status)
	if err != nil {
		return appErrors.Wrap(err, "failed to create conversation")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return appErrors.Wrap(err, "failed to read new conversation id")
	}
	c.ID = id
	return nil
}

// GetRelayTarget resolves the user account behind a conversation's listener,
// which is the sender identity auto-replies are written under.
func (r *ConversationRepository) GetRelayTarget(ctx context.Context, conversationID int64) (*models.ConversationRelay, error) {
	var relay models.ConversationRelay
	query := `SELECT c.id AS conversation_id, c.listener_id, l.user_id, c.status
		FROM conversations c
		JOIN listeners l ON l.id = c.listener_id
		WHERE c.id = ?`
	if err := r.db.GetContext(ctx, &relay, query, conversationID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, "failed to resolve relay target")
	}
	return &relay, nil
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID int64) ([]models.MessageView, error) {
	messages := []models.MessageView{}
	query := `SELECT m.id, m.message, m.sender_id, u.name AS sender_name, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = ?
		ORDER BY m.created_at ASC`
	if err := r.db.SelectContext(ctx, &messages, query, conversationID); err != nil {
		return nil, appErrors.Wrap(err, "failed to list messages")
	}
	return messages, nil
}

// AppendMessage stores a message and, in the same transaction, promotes a
// Pending conversation to Active. The guarded UPDATE keeps the promotion a
// one-way transition.
func (r *ConversationRepository) AppendMessage(ctx context.Context, m *models.Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, "failed to begin message transaction")
	}
	defer tx.Rollback()

	query := `INSERT INTO messages (conversation_id, sender_id, message) VALUES (?, ?, ?)`
	result, err := tx.ExecContext(ctx, query, m.ConversationID, m.SenderID, m.Text)
	if err != nil {
		return appErrors.Wrap(err, "failed to store message")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return appErrors.Wrap(err, "failed to read new message id")
	}
	m.ID = id

	promote := `UPDATE conversations SET status = ? WHERE id = ? AND status = ?`
	if _, err := tx.ExecContext(ctx, promote,
		models.ConversationStatusActive, m.ConversationID, models.ConversationStatusPending); err != nil {
		return appErrors.Wrap(err, "failed to activate conversation")
	}

	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, "failed to commit message transaction")
	}
	return nil
}
