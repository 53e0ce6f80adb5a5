package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/middleware"
	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/internal/service"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/response"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login exchanges credentials for an opaque session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Register opens a self-service account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Clone("invalid request body"))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Registration successful",
		"user":    user,
	})
}

// Check confirms the presented token is still valid and echoes the
// account. The auth middleware has already resolved the user.
func (h *AuthHandler) Check(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"status": "success",
		"user":   user.Info(),
	})
}

// Logout revokes the presented session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Logged out successfully.")
}
