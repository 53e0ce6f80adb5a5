package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/jobs"
)

// JobRelayReply is the queue job type for generated auto-replies.
const JobRelayReply = "relay.reply"

// RelayPayload carries what the relay worker needs to compose a reply.
type RelayPayload struct {
	ConversationID int64
	UserMessage    string
}

// Enqueuer pushes background jobs. Satisfied by jobs.Queue.
type Enqueuer interface {
	Enqueue(job jobs.Job) error
}

type MessageService struct {
	conversations ConversationRepository
	queue         Enqueuer
	logger        *zap.Logger
	validate      *validator.Validate
}

func NewMessageService(conversations ConversationRepository, queue Enqueuer, logger *zap.Logger) *MessageService {
	return &MessageService{
		conversations: conversations,
		queue:         queue,
		logger:        logger,
		validate:      validator.New(),
	}
}

// Post stores a message and, when the sender is not the conversation's
// listener, schedules a generated reply. The reply job is enqueued only
// after the message transaction commits, so a crashed generation never
// leaves a reply without its trigger.
func (s *MessageService) Post(ctx context.Context, req models.PostMessageRequest) (*models.Message, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	relay, err := s.conversations.GetRelayTarget(ctx, req.ConversationID)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.ErrNotFound.Clone("Conversation not found")
		}
		return nil, err
	}

	message := &models.Message{
		ConversationID: req.ConversationID,
		SenderID:       req.SenderID,
		Text:           req.Text,
	}
	if err := s.conversations.AppendMessage(ctx, message); err != nil {
		return nil, err
	}

	if req.SenderID != relay.ListenerUserID {
		job := jobs.Job{
			ID:   uuid.NewString(),
			Type: JobRelayReply,
			Payload: RelayPayload{
				ConversationID: req.ConversationID,
				UserMessage:    req.Text,
			},
		}
		if err := s.queue.Enqueue(job); err != nil {
			// The user's message is already committed; the missing reply
			// surfaces in logs rather than failing the request.
			s.logger.Error("failed to enqueue relay reply",
				zap.Int64("conversation_id", req.ConversationID),
				zap.Error(err))
		}
	}

	return message, nil
}
