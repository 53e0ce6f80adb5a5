package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/internal/service"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type MessageHandler struct {
	messages      *service.MessageService
	conversations *service.ConversationService
	logger        *zap.Logger
}

func NewMessageHandler(messages *service.MessageService, conversations *service.ConversationService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, conversations: conversations, logger: logger}
}

// List returns a conversation's messages, oldest first.
func (h *MessageHandler) List(c *gin.Context) {
	conversationID, err := queryID(c, "conversation_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	messages, err := h.conversations.Messages(c.Request.Context(), conversationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages)
}

// Post appends a message. A user-sent message schedules the listener's
// auto-reply in the background.
func (h *MessageHandler) Post(c *gin.Context) {
	var req models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	message, err := h.messages.Post(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Message created successfully.",
		"id":      message.ID,
	})
}
