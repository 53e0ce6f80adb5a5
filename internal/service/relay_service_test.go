package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/genai"
	"github.com/noah-isme/dropout-watch-api/pkg/jobs"
)

type mockConversationRepo struct {
	conversations map[int64]*models.ConversationDetail
	relayTargets  map[int64]*models.ConversationRelay
	messages      []models.Message
	appendErr     error
	promoted      []int64
	statusUpdates map[int64]string
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{
		conversations: map[int64]*models.ConversationDetail{},
		relayTargets:  map[int64]*models.ConversationRelay{},
		statusUpdates: map[int64]string{},
	}
}

func (m *mockConversationRepo) ListByUser(_ context.Context, userID int64) ([]models.ConversationDetail, error) {
	out := []models.ConversationDetail{}
	for _, c := range m.conversations {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockConversationRepo) GetDetail(_ context.Context, id int64) (*models.ConversationDetail, error) {
	if c, ok := m.conversations[id]; ok {
		return c, nil
	}
	return nil, appErrors.ErrNotFound
}

func (m *mockConversationRepo) Create(_ context.Context, c *models.Conversation) error {
	c.ID = int64(len(m.conversations) + 1)
	m.conversations[c.ID] = &models.ConversationDetail{Conversation: *c}
	return nil
}

func (m *mockConversationRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	m.statusUpdates[id] = status
	return nil
}

func (m *mockConversationRepo) GetRelayTarget(_ context.Context, conversationID int64) (*models.ConversationRelay, error) {
	if r, ok := m.relayTargets[conversationID]; ok {
		return r, nil
	}
	return nil, appErrors.ErrNotFound
}

func (m *mockConversationRepo) ListMessages(_ context.Context, conversationID int64) ([]models.MessageView, error) {
	out := []models.MessageView{}
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, models.MessageView{
				ID: msg.ID, Text: msg.Text, SenderID: msg.SenderID,
			})
		}
	}
	return out, nil
}

func (m *mockConversationRepo) AppendMessage(_ context.Context, msg *models.Message) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	msg.ID = int64(len(m.messages) + 1)
	m.messages = append(m.messages, *msg)
	if c, ok := m.conversations[msg.ConversationID]; ok && c.Status == models.ConversationStatusPending {
		c.Status = models.ConversationStatusActive
		m.promoted = append(m.promoted, msg.ConversationID)
	}
	return nil
}

type mockQueue struct {
	enqueued []jobs.Job
	err      error
}

func (m *mockQueue) Enqueue(job jobs.Job) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, job)
	return nil
}

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	return s.text, s.err
}

type promptRecorder struct {
	prompt string
}

func (p *promptRecorder) Generate(_ context.Context, prompt string) (string, error) {
	p.prompt = prompt
	return "generated reply", nil
}

const listenerUserID = int64(4)

func seedConversation(repo *mockConversationRepo, id int64, status string) {
	repo.conversations[id] = &models.ConversationDetail{
		Conversation: models.Conversation{ID: id, UserID: 8, ListenerID: 2, Status: status},
	}
	repo.relayTargets[id] = &models.ConversationRelay{
		ConversationID: id,
		ListenerID:     2,
		ListenerUserID: listenerUserID,
		Status:         status,
	}
}

func TestMessageServicePostEnqueuesRelayForUserMessage(t *testing.T) {
	repo := newMockConversationRepo()
	seedConversation(repo, 3, models.ConversationStatusPending)
	queue := &mockQueue{}
	svc := NewMessageService(repo, queue, zap.NewNop())

	msg, err := svc.Post(context.Background(), models.PostMessageRequest{
		ConversationID: 3,
		SenderID:       8,
		Text:           "I feel stressed about school",
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, JobRelayReply, queue.enqueued[0].Type)
	payload, ok := queue.enqueued[0].Payload.(RelayPayload)
	require.True(t, ok)
	assert.Equal(t, int64(3), payload.ConversationID)
	assert.Equal(t, "I feel stressed about school", payload.UserMessage)

	// first message activates the conversation
	assert.Contains(t, repo.promoted, int64(3))
}

func TestMessageServicePostSkipsRelayForListenerMessage(t *testing.T) {
	repo := newMockConversationRepo()
	seedConversation(repo, 3, models.ConversationStatusActive)
	queue := &mockQueue{}
	svc := NewMessageService(repo, queue, zap.NewNop())

	_, err := svc.Post(context.Background(), models.PostMessageRequest{
		ConversationID: 3,
		SenderID:       listenerUserID,
		Text:           "How are you holding up?",
	})
	require.NoError(t, err)
	assert.Empty(t, queue.enqueued)
}

func TestMessageServicePostUnknownConversation(t *testing.T) {
	svc := NewMessageService(newMockConversationRepo(), &mockQueue{}, zap.NewNop())

	_, err := svc.Post(context.Background(), models.PostMessageRequest{
		ConversationID: 99,
		SenderID:       8,
		Text:           "hello?",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, "Conversation not found", appErrors.FromError(err).Message)
}

func TestMessageServicePostEnqueueFailureDoesNotFailRequest(t *testing.T) {
	repo := newMockConversationRepo()
	seedConversation(repo, 3, models.ConversationStatusActive)
	queue := &mockQueue{err: errors.New("queue stopped")}
	svc := NewMessageService(repo, queue, zap.NewNop())

	msg, err := svc.Post(context.Background(), models.PostMessageRequest{
		ConversationID: 3,
		SenderID:       8,
		Text:           "anyone there?",
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
}

func TestRelayServiceStoresGeneratedReply(t *testing.T) {
	repo := newMockConversationRepo()
	seedConversation(repo, 3, models.ConversationStatusActive)
	recorder := &promptRecorder{}
	svc := NewRelayService(repo, recorder, time.Second, nil, zap.NewNop())

	err := svc.Reply(context.Background(), RelayPayload{
		ConversationID: 3,
		UserMessage:    "I feel alone",
	})
	require.NoError(t, err)

	require.Len(t, repo.messages, 1)
	assert.Equal(t, "generated reply", repo.messages[0].Text)
	assert.Equal(t, listenerUserID, repo.messages[0].SenderID)
	assert.Contains(t, recorder.prompt, "You are a supportive listener.")
	assert.Contains(t, recorder.prompt, "I feel alone")
}

func TestRelayServiceFallsBackOnGenerationFailure(t *testing.T) {
	repo := newMockConversationRepo()
	seedConversation(repo, 3, models.ConversationStatusActive)
	svc := NewRelayService(repo, &stubGenerator{err: errors.New("upstream 500")}, time.Second, nil, zap.NewNop())

	err := svc.Reply(context.Background(), RelayPayload{ConversationID: 3, UserMessage: "hi"})
	require.NoError(t, err)

	require.Len(t, repo.messages, 1)
	assert.Equal(t, FallbackReply, repo.messages[0].Text)
	assert.Equal(t, listenerUserID, repo.messages[0].SenderID)
}

func TestRelayServiceFallsBackOnEmptyReply(t *testing.T) {
	repo := newMockConversationRepo()
	seedConversation(repo, 3, models.ConversationStatusActive)
	svc := NewRelayService(repo, &stubGenerator{text: ""}, time.Second, nil, zap.NewNop())

	err := svc.Reply(context.Background(), RelayPayload{ConversationID: 3, UserMessage: "hi"})
	require.NoError(t, err)

	require.Len(t, repo.messages, 1)
	assert.Equal(t, FallbackReply, repo.messages[0].Text)
}

func TestRelayServiceReturnsErrorWhenInsertFails(t *testing.T) {
	repo := newMockConversationRepo()
	seedConversation(repo, 3, models.ConversationStatusActive)
	repo.appendErr = fmt.Errorf("connection lost")
	svc := NewRelayService(repo, &stubGenerator{text: "a reply"}, time.Second, nil, zap.NewNop())

	err := svc.Reply(context.Background(), RelayPayload{ConversationID: 3, UserMessage: "hi"})
	assert.Error(t, err)
}

// A user send produces exactly two stored messages once the relay job
// runs, whether generation succeeds or not.
func TestUserMessageYieldsExactlyTwoMessages(t *testing.T) {
	for _, generator := range []struct {
		name string
		gen  genai.TextGenerator
	}{
		{"generation succeeds", &stubGenerator{text: "a kind reply"}},
		{"generation fails", &stubGenerator{err: errors.New("timeout")}},
	} {
		t.Run(generator.name, func(t *testing.T) {
			repo := newMockConversationRepo()
			seedConversation(repo, 3, models.ConversationStatusPending)
			queue := &mockQueue{}
			messages := NewMessageService(repo, queue, zap.NewNop())
			relay := NewRelayService(repo, generator.gen, time.Second, nil, zap.NewNop())

			_, err := messages.Post(context.Background(), models.PostMessageRequest{
				ConversationID: 3,
				SenderID:       8,
				Text:           "I want to quit school",
			})
			require.NoError(t, err)

			require.Len(t, queue.enqueued, 1)
			require.NoError(t, relay.HandleJob(context.Background(), queue.enqueued[0]))

			assert.Len(t, repo.messages, 2)
			assert.Equal(t, int64(8), repo.messages[0].SenderID)
			assert.Equal(t, listenerUserID, repo.messages[1].SenderID)
		})
	}
}

