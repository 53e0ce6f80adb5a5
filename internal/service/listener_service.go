package service

import (
	"context"

	"github.com/noah-isme/dropout-watch-api/internal/models"
)

// ListenerRepository is the persistence surface for listener listings.
type ListenerRepository interface {
	ListAvailable(ctx context.Context) ([]models.ListenerSummary, error)
	GetByID(ctx context.Context, id int64) (*models.Listener, error)
}

type ListenerService struct {
	repo ListenerRepository
}

func NewListenerService(repo ListenerRepository) *ListenerService {
	return &ListenerService{repo: repo}
}

// ListAvailable returns listeners whose account is Active, in profile order.
func (s *ListenerService) ListAvailable(ctx context.Context) ([]models.ListenerSummary, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *ListenerService) Get(ctx context.Context, id int64) (*models.Listener, error) {
	return s.repo.GetByID(ctx, id)
}
