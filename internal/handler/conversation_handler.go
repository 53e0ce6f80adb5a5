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

type ConversationHandler struct {
	conversations *service.ConversationService
	logger        *zap.Logger
}

func NewConversationHandler(conversations *service.ConversationService, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, logger: logger}
}

// List returns one conversation by id, or all conversations for a user.
func (h *ConversationHandler) List(c *gin.Context) {
	if c.Query("id") != "" {
		id, err := queryID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		conversation, err := h.conversations.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, conversation)
		return
	}

	userID, err := queryID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	conversations, err := h.conversations.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conversations)
}

// Create opens a Pending conversation with a listener.
func (h *ConversationHandler) Create(c *gin.Context) {
	var req models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	conversation, err := h.conversations.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message":         "Conversation created successfully.",
		"conversation_id": conversation.ID,
	})
}

// UpdateStatus moves a conversation to a new status.
func (h *ConversationHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateConversationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	if err := h.conversations.UpdateStatus(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Conversation status updated.")
}
