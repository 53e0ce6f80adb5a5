package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/internal/service"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Reply answers a chat message from the keyword table. The envelope
// carries its own status field rather than the error envelope.
func (h *ChatHandler) Reply(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		response.JSON(c, http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Message is required",
		})
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"status":   "success",
		"response": h.chat.Reply(req.Message),
	})
}
