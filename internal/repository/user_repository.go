package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]models.UserInfo, error) {
	users := []models.UserInfo{}
	query := `SELECT id, name, email, role, status FROM users ORDER BY id`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to list users")
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, password, role, status, created_at, updated_at
		FROM users WHERE id = ?`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, "failed to get user")
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, password, role, status, created_at, updated_at
		FROM users WHERE email = ?`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, "failed to find user by email")
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (name, email, password, role, status)
		VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Status)
	if err != nil {
		return appErrors.Wrap(err, "failed to create user")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return appErrors.Wrap(err, "failed to read new user id")
	}
	u.ID = id
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET name = ?, email = ?, role = ?, status = ?,
		updated_at = NOW() WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.Role, u.Status, u.ID)
	if err != nil {
		return appErrors.Wrap(err, "failed to update user")
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

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return appErrors.Wrap(err, "failed to delete user")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return appErrors.Wrap(err, "failed to read delete result")
	}
	if rows == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}

// ReplaceToken installs a fresh session token for the user, dropping any
// previous one so only a single session stays valid.
func (r *UserRepository) ReplaceToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, "failed to begin token transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_tokens WHERE user_id = ?`, userID); err != nil {
		return appErrors.Wrap(err, "failed to revoke previous token")
	}
	query := `INSERT INTO user_tokens (token, user_id, expires_at) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, token, userID, expiresAt); err != nil {
		return appErrors.Wrap(err, "failed to store token")
	}
	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, "failed to commit token transaction")
	}
	return nil
}

// FindByToken resolves an unexpired bearer token to its user.
func (r *UserRepository) FindByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	query := `SELECT u.id, u.name, u.email, u.password, u.role, u.status,
			u.created_at, u.updated_at
		FROM users u
		JOIN user_tokens t ON t.user_id = u.id
		WHERE t.token = ? AND t.expires_at > NOW()`
	if err := r.db.GetContext(ctx, &user, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrUnauthorized
		}
		return nil, appErrors.Wrap(err, "failed to resolve token")
	}
	return &user, nil
}

func (r *UserRepository) DeleteToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_tokens WHERE token = ?`, token); err != nil {
		return appErrors.Wrap(err, "failed to delete token")
	}
	return nil
}
