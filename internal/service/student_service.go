package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// StudentRepository is the persistence surface the student service needs.
type StudentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, s *models.Student) error
	UpdateInterventionStatus(ctx context.Context, id int64, status string) error
}

type StudentService struct {
	repo     StudentRepository
	cache    *CacheService
	logger   *zap.Logger
	validate *validator.Validate
}

func NewStudentService(repo StudentRepository, cache *CacheService, logger *zap.Logger) *StudentService {
	return &StudentService{
		repo:     repo,
		cache:    cache,
		logger:   logger,
		validate: validator.New(),
	}
}

func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return s.repo.List(ctx, filter)
}

func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	return s.repo.GetByID(ctx, id)
}

// Create scores the intake factors and persists the student with the
// derived risk. Writes invalidate the cached dashboard.
func (s *StudentService) Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	student := &models.Student{
		Name:                req.Name,
		Age:                 req.Age,
		Gender:              req.Gender,
		School:              req.School,
		SchoolID:            req.SchoolID,
		SchoolName:          req.SchoolName,
		LocationType:        req.LocationType,
		RiskFactors:         req.RiskFactors,
		AcademicPerformance: req.AcademicPerformance,
		Attendance:          req.Attendance,
		SocioEconomicStatus: req.SocioEconomicStatus,
		FamilySupport:       req.FamilySupport,
		DropoutRisk: CalculateDropoutRisk(
			req.AcademicPerformance, req.Attendance,
			req.SocioEconomicStatus, req.FamilySupport),
		InterventionStatus: models.InterventionStatusPending,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student created",
		zap.Int64("id", student.ID),
		zap.Float64("dropout_risk", student.DropoutRisk))
	s.cache.InvalidateDashboard(ctx)

	return student, nil
}

// UpdateStatus moves a student's intervention roll-up state. It is the
// only mutation a student record supports after intake.
func (s *StudentService) UpdateStatus(ctx context.Context, req models.UpdateStudentStatusRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return appErrors.ErrValidation.Clone(err.Error())
	}
	if err := s.repo.UpdateInterventionStatus(ctx, req.ID, req.InterventionStatus); err != nil {
		return err
	}
	s.logger.Info("student status updated",
		zap.Int64("id", req.ID),
		zap.String("status", req.InterventionStatus))
	s.cache.InvalidateDashboard(ctx)
	return nil
}
