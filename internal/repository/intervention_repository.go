package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type InterventionRepository struct {
	db *sqlx.DB
}

func NewInterventionRepository(db *sqlx.DB) *InterventionRepository {
	return &InterventionRepository{db: db}
}

// ListHighRisk returns every high-risk student left-joined with their
// interventions, so students without any intervention still appear once.
func (r *InterventionRepository) ListHighRisk(ctx context.Context) ([]models.InterventionDetail, error) {
	rows := []models.InterventionDetail{}
	query := `SELECT s.id AS student_id, s.name AS student_name, s.dropout_risk,
			s.intervention_status AS student_status,
			i.id AS intervention_id, i.type, i.description,
			i.start_date, i.end_date, i.status, i.effectiveness
		FROM students s
		LEFT JOIN interventions i ON i.student_id = s.id
		WHERE s.dropout_risk >= ?
		ORDER BY s.dropout_risk DESC, s.id, i.id`
	if err := r.db.SelectContext(ctx, &rows, query, models.HighRiskThreshold); err != nil {
		return nil, appErrors.Wrap(err, "failed to list high risk interventions")
	}
	return rows, nil
}

// Create stores an intervention and marks the student In Progress in one
// transaction.
func (r *InterventionRepository) Create(ctx context.Context, iv *models.Intervention) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, "failed to begin intervention transaction")
	}
	defer tx.Rollback()

	query := `INSERT INTO interventions (student_id, type, description, start_date, status, effectiveness)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		iv.StudentID, iv.Type, iv.Description, iv.StartDate, iv.Status, iv.Effectiveness)
	if err != nil {
		return appErrors.Wrap(err, "failed to create intervention")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return appErrors.Wrap(err, "failed to read new intervention id")
	}
	iv.ID = id

	bump := `UPDATE students SET intervention_status = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, bump, models.InterventionStatusInProgress, iv.StudentID); err != nil {
		return appErrors.Wrap(err, "failed to update student status")
	}

	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, "failed to commit intervention transaction")
	}
	return nil
}

// Update changes an intervention's status and effectiveness; the end date
// is set only when the new status is Completed. Completion also rolls the
// aggregate up to the student: once no open interventions remain, the
// student itself is Completed. The whole sequence runs in one transaction
// so a concurrent completion cannot skip the roll-up.
func (r *InterventionRepository) Update(ctx context.Context, id int64, status, effectiveness string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, "failed to begin intervention transaction")
	}
	defer tx.Rollback()

	var studentID int64
	if err := tx.GetContext(ctx, &studentID,
		`SELECT student_id FROM interventions WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, "failed to find intervention")
	}

	update := `UPDATE interventions
		SET status = ?, effectiveness = ?,
			end_date = CASE WHEN ? = 'Completed' THEN CURDATE() ELSE NULL END
		WHERE id = ?`
	if _, err := tx.ExecContext(ctx, update, status, effectiveness, status, id); err != nil {
		return appErrors.Wrap(err, "failed to update intervention")
	}

	if status == models.InterventionStatusCompleted {
		var open int
		if err := tx.GetContext(ctx, &open,
			`SELECT COUNT(*) FROM interventions WHERE student_id = ? AND status != ?`,
			studentID, models.InterventionStatusCompleted); err != nil {
			return appErrors.Wrap(err, "failed to count open interventions")
		}
		if open == 0 {
			bump := `UPDATE students SET intervention_status = ? WHERE id = ?`
			if _, err := tx.ExecContext(ctx, bump, models.InterventionStatusCompleted, studentID); err != nil {
				return appErrors.Wrap(err, "failed to update student status")
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, "failed to commit intervention transaction")
	}
	return nil
}
