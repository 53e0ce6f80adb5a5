package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dropout-watch-api/internal/service"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// notificationPayload covers both POST shapes: marking one notification
// read, or pushing a new one.
type notificationPayload struct {
	NotificationID int64  `json:"notification_id"`
	UserID         int64  `json:"user_id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Type           string `json:"type"`
}

// List returns the user's latest notifications wrapped in a records
// envelope.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := queryID(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.notifications.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"records": records})
}

// Mutate marks a notification read when notification_id is given,
// otherwise creates a new one.
func (h *NotificationHandler) Mutate(c *gin.Context) {
	var payload notificationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	if payload.NotificationID > 0 {
		if err := h.notifications.MarkRead(c.Request.Context(), payload.NotificationID); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, http.StatusOK, "Notification marked as read.")
		return
	}

	_, err := h.notifications.Create(c.Request.Context(), service.CreateNotificationRequest{
		UserID:  payload.UserID,
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Notification was created."})
}
