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

// UserHandler is the admin account-management surface.
type UserHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

func NewUserHandler(users *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) List(c *gin.Context) {
	if c.Query("id") != "" {
		id, err := queryID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		user, err := h.users.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, user)
		return
	}

	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "User was created.",
		"id":      user.ID,
	})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	if _, err := h.users.Update(c.Request.Context(), req.ID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User was updated.")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := queryID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User was deleted.")
}
