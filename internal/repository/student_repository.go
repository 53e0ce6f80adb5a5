package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type StudentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, name, age, gender, school, school_id, school_name,
	location_type, risk_factors, academic_performance, attendance,
	socio_economic_status, family_support, dropout_risk,
	intervention_status, date_flagged`

func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	args := []interface{}{}
	if filter.HighRisk {
		query += ` WHERE dropout_risk >= ?`
		args = append(args, models.HighRiskThreshold)
	}
	query += ` ORDER BY id`

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, appErrors.Wrap(err, "failed to list students")
	}
	return students, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, "failed to get student")
	}
	return &student, nil
}

func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	query := `INSERT INTO students (name, age, gender, school, school_id, school_name,
			location_type, risk_factors, academic_performance, attendance,
			socio_economic_status, family_support, dropout_risk,
			intervention_status, date_flagged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	result, err := r.db.ExecContext(ctx, query,
		s.Name, s.Age, s.Gender, s.School, s.SchoolID, s.SchoolName,
		s.LocationType, s.RiskFactors, s.AcademicPerformance, s.Attendance,
		s.SocioEconomicStatus, s.FamilySupport, s.DropoutRisk,
		s.InterventionStatus)
	if err != nil {
		return appErrors.Wrap(err, "failed to create student")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return appErrors.Wrap(err, "failed to read new student id")
	}
	s.ID = id
	return nil
}

// UpdateInterventionStatus is the only student mutation. Intake factors and
// the derived dropout_risk are immutable after creation.
func (r *StudentRepository) UpdateInterventionStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE students SET intervention_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return appErrors.Wrap(err, "failed to update student status")
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
