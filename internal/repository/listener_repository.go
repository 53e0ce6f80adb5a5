package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type ListenerRepository struct {
	db *sqlx.DB
}

func NewListenerRepository(db *sqlx.DB) *ListenerRepository {
	return &ListenerRepository{db: db}
}

// ListAvailable returns listener profiles whose owning user account is
// Active. The stored is_available flag is surfaced as-is but availability is
// decided by account status alone.
func (r *ListenerRepository) ListAvailable(ctx context.Context) ([]models.ListenerSummary, error) {
	listeners := []models.ListenerSummary{}
	query := `SELECT l.id, l.photo, l.specialization, l.is_available, u.name
		FROM listeners l
		JOIN users u ON u.id = l.user_id
		WHERE u.status = 'Active'
		ORDER BY l.id ASC`
	if err := r.db.SelectContext(ctx, &listeners, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to list listeners")
	}
	return listeners, nil
}

func (r *ListenerRepository) GetByID(ctx context.Context, id int64) (*models.Listener, error) {
	var listener models.Listener
	query := `SELECT id, user_id, name, photo, specialization, is_available
		FROM listeners WHERE id = ?`
	if err := r.db.GetContext(ctx, &listener, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, "failed to get listener")
	}
	return &listener, nil
}
