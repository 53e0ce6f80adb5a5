package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/pkg/genai"
	"github.com/noah-isme/dropout-watch-api/pkg/jobs"
)

// FallbackReply is stored whenever the text generator cannot produce a
// usable response. Every user message still gets exactly one reply.
const FallbackReply = "I'm here to listen and support you. How are you feeling today?"

const relayPromptFormat = `You are a supportive listener. The user said: %q. Please provide a helpful and empathetic response.`

// RelayService turns queued user messages into listener replies through an
// external text generator.
type RelayService struct {
	conversations ConversationRepository
	generator     genai.TextGenerator
	timeout       time.Duration
	metrics       *MetricsService
	logger        *zap.Logger
}

func NewRelayService(conversations ConversationRepository, generator genai.TextGenerator, timeout time.Duration, metrics *MetricsService, logger *zap.Logger) *RelayService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RelayService{
		conversations: conversations,
		generator:     generator,
		timeout:       timeout,
		metrics:       metrics,
		logger:        logger,
	}
}

// HandleJob is the queue handler for relay.reply jobs. Generation failures
// are absorbed by the canned fallback, so only a failed database insert
// returns an error and triggers the queue's retry.
func (s *RelayService) HandleJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(RelayPayload)
	if !ok {
		s.logger.Error("relay job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.Reply(ctx, payload)
}

// Reply generates and stores the listener-side response for one user
// message.
func (s *RelayService) Reply(ctx context.Context, payload RelayPayload) error {
	relay, err := s.conversations.GetRelayTarget(ctx, payload.ConversationID)
	if err != nil {
		return fmt.Errorf("resolve relay target: %w", err)
	}

	text := s.generate(ctx, payload.UserMessage)

	reply := &models.Message{
		ConversationID: payload.ConversationID,
		SenderID:       relay.ListenerUserID,
		Text:           text,
	}
	if err := s.conversations.AppendMessage(ctx, reply); err != nil {
		return fmt.Errorf("store relay reply: %w", err)
	}

	s.logger.Info("relay reply stored",
		zap.Int64("conversation_id", payload.ConversationID),
		zap.Int64("message_id", reply.ID))
	return nil
}

func (s *RelayService) generate(ctx context.Context, userMessage string) string {
	start := time.Now()

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(relayPromptFormat, userMessage)
	text, err := s.generator.Generate(genCtx, prompt)
	if err != nil || text == "" {
		if err != nil {
			s.logger.Warn("text generation failed, using fallback", zap.Error(err))
		}
		s.metrics.RecordRelay("fallback", time.Since(start))
		return FallbackReply
	}

	s.metrics.RecordRelay("generated", time.Since(start))
	return text
}
