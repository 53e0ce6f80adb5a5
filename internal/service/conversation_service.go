package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// ConversationRepository is the persistence surface for conversations and
// their messages.
type ConversationRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.ConversationDetail, error)
	GetDetail(ctx context.Context, id int64) (*models.ConversationDetail, error)
	Create(ctx context.Context, c *models.Conversation) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	GetRelayTarget(ctx context.Context, conversationID int64) (*models.ConversationRelay, error)
	ListMessages(ctx context.Context, conversationID int64) ([]models.MessageView, error)
	AppendMessage(ctx context.Context, m *models.Message) error
}

type ConversationService struct {
	repo      ConversationRepository
	listeners ListenerRepository
	logger    *zap.Logger
	validate  *validator.Validate
}

func NewConversationService(repo ConversationRepository, listeners ListenerRepository, logger *zap.Logger) *ConversationService {
	return &ConversationService{
		repo:      repo,
		listeners: listeners,
		logger:    logger,
		validate:  validator.New(),
	}
}

func (s *ConversationService) ListByUser(ctx context.Context, userID int64) ([]models.ConversationDetail, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ConversationService) Get(ctx context.Context, id int64) (*models.ConversationDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *ConversationService) Messages(ctx context.Context, conversationID int64) ([]models.MessageView, error) {
	return s.repo.ListMessages(ctx, conversationID)
}

// UpdateStatus moves a conversation to a new status, typically Closed.
func (s *ConversationService) UpdateStatus(ctx context.Context, req models.UpdateConversationStatusRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return appErrors.ErrValidation.Clone(err.Error())
	}
	return s.repo.UpdateStatus(ctx, req.ID, req.Status)
}

// Create opens a Pending conversation against an existing listener.
func (s *ConversationService) Create(ctx context.Context, req models.CreateConversationRequest) (*models.Conversation, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	if _, err := s.listeners.GetByID(ctx, req.ListenerID); err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.ErrNotFound.Clone("Listener not found")
		}
		return nil, err
	}

	conversation := &models.Conversation{
		UserID:     req.UserID,
		ListenerID: req.ListenerID,
		Problem:    req.Problem,
		Status:     models.ConversationStatusPending,
	}
	if err := s.repo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	s.logger.Info("conversation opened",
		zap.Int64("conversation_id", conversation.ID),
		zap.Int64("listener_id", conversation.ListenerID))
	return conversation, nil
}
