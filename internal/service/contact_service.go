package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// ContactRepository is the persistence surface for contact submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *models.Contact) error
}

type ContactService struct {
	repo     ContactRepository
	logger   *zap.Logger
	validate *validator.Validate
}

func NewContactService(repo ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger, validate: validator.New()}
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (*models.Contact, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	contact := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Info("contact form submitted", zap.Int64("id", contact.ID))
	return contact, nil
}
