package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dropout-watch-api/internal/service"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type ListenerHandler struct {
	listeners *service.ListenerService
}

func NewListenerHandler(listeners *service.ListenerService) *ListenerHandler {
	return &ListenerHandler{listeners: listeners}
}

// List returns every listener whose account is active, in registration
// order.
func (h *ListenerHandler) List(c *gin.Context) {
	listeners, err := h.listeners.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, listeners)
}
