package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type ContactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	query := `INSERT INTO contacts (name, email, subject, message) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Subject, c.Message)
	if err != nil {
		return appErrors.Wrap(err, "failed to store contact message")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return appErrors.Wrap(err, "failed to read new contact id")
	}
	c.ID = id
	return nil
}
