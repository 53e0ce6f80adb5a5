package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/internal/service"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type ContactHandler struct {
	contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit stores a public contact-form entry.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	contact, err := h.contacts.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Contact form submitted successfully.",
		"id":      contact.ID,
	})
}
