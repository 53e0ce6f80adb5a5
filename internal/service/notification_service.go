package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// NotificationRepository is the persistence surface for notifications.
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	Create(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, id int64) error
}

// CreateNotificationRequest pushes an inbox entry to a user.
type CreateNotificationRequest struct {
	UserID  int64  `json:"user_id" validate:"required"`
	Title   string `json:"title" validate:"required,max=150"`
	Message string `json:"message" validate:"required,max=500"`
	Type    string `json:"type" validate:"required,oneof=success error info warning"`
}

type NotificationService struct {
	repo     NotificationRepository
	validate *validator.Validate
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, validate: validator.New()}
}

// ListByUser returns the user's latest ten notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}
