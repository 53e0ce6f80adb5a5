package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// InterventionRepository is the persistence surface for interventions.
type InterventionRepository interface {
	ListHighRisk(ctx context.Context) ([]models.InterventionDetail, error)
	Create(ctx context.Context, iv *models.Intervention) error
	Update(ctx context.Context, id int64, status, effectiveness string) error
}

type InterventionService struct {
	repo     InterventionRepository
	cache    *CacheService
	logger   *zap.Logger
	validate *validator.Validate
}

func NewInterventionService(repo InterventionRepository, cache *CacheService, logger *zap.Logger) *InterventionService {
	return &InterventionService{
		repo:     repo,
		cache:    cache,
		logger:   logger,
		validate: validator.New(),
	}
}

// ListHighRisk returns every high-risk student with their interventions,
// students without any intervention included.
func (s *InterventionService) ListHighRisk(ctx context.Context) ([]models.InterventionDetail, error) {
	return s.repo.ListHighRisk(ctx)
}

// Create opens an In Progress intervention starting today and marks the
// student In Progress in the same transaction.
func (s *InterventionService) Create(ctx context.Context, req models.CreateInterventionRequest) (*models.Intervention, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	intervention := &models.Intervention{
		StudentID:   req.StudentID,
		Type:        req.Type,
		Description: req.Description,
		StartDate:   time.Now(),
		Status:      models.InterventionStatusInProgress,
	}
	if err := s.repo.Create(ctx, intervention); err != nil {
		return nil, err
	}

	s.logger.Info("intervention created",
		zap.Int64("intervention_id", intervention.ID),
		zap.Int64("student_id", intervention.StudentID))
	s.cache.InvalidateDashboard(ctx)
	return intervention, nil
}

// Update changes status and effectiveness; completing the last open
// intervention also completes the student.
func (s *InterventionService) Update(ctx context.Context, req models.UpdateInterventionRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return appErrors.ErrValidation.Clone(err.Error())
	}
	if err := s.repo.Update(ctx, req.InterventionID, req.Status, req.Effectiveness); err != nil {
		return err
	}
	s.cache.InvalidateDashboard(ctx)
	return nil
}
