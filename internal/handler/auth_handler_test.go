package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/dropout-watch-api/internal/middleware"
	"github.com/noah-isme/dropout-watch-api/internal/models"
	"github.com/noah-isme/dropout-watch-api/internal/service"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type stubAuthRepo struct {
	users  map[string]*models.User
	tokens map[string]*models.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		users:  map[string]*models.User{},
		tokens: map[string]*models.User{},
	}
}

func (s *stubAuthRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, appErrors.ErrNotFound
}

func (s *stubAuthRepo) Create(_ context.Context, u *models.User) error {
	u.ID = int64(len(s.users) + 1)
	s.users[u.Email] = u
	return nil
}

func (s *stubAuthRepo) ReplaceToken(_ context.Context, userID int64, token string, _ time.Time) error {
	for _, u := range s.users {
		if u.ID == userID {
			s.tokens[token] = u
		}
	}
	return nil
}

func (s *stubAuthRepo) FindByToken(_ context.Context, token string) (*models.User, error) {
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, appErrors.ErrUnauthorized
}

func (s *stubAuthRepo) DeleteToken(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func newAuthRouter(t *testing.T) (*gin.Engine, *stubAuthRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newStubAuthRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["andi@example.com"] = &models.User{
		ID:           7,
		Name:         "Andi",
		Email:        "andi@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
	}

	svc := service.NewAuthService(repo, time.Hour, zap.NewNop())
	h := NewAuthHandler(svc, zap.NewNop())

	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.POST("/auth/register", h.Register)
	authed := router.Group("", middleware.Auth(svc))
	authed.GET("/auth/check", h.Check)
	authed.POST("/auth/logout", h.Logout)
	return router, repo
}

func postJSON(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := postJSON(router, "/auth/login", `{"email":"andi@example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string          `json:"token"`
		User  models.UserInfo `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "andi@example.com", body.User.Email)
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	router, _ := newAuthRouter(t)

	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"unknown email", `{"email":"ghost@example.com","password":"whatever"}`, "User not found"},
		{"wrong password", `{"email":"andi@example.com","password":"nope"}`, "Invalid password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(router, "/auth/login", tt.payload)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestAuthHandlerRegisterDuplicate(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := postJSON(router, "/auth/register", `{"name":"Andi Two","email":"andi@example.com","password":"longenough"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Email already exists", body.Error)
	assert.Equal(t, "This email is already registered", body.Details["message"])
	assert.Equal(t, "Please use a different email or try to log in instead", body.Details["suggestion"])
}

func TestAuthHandlerCheck(t *testing.T) {
	router, repo := newAuthRouter(t)
	repo.tokens["valid-token"] = repo.users["andi@example.com"]

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status string          `json:"status"`
		User   models.UserInfo `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, int64(7), body.User.ID)
}

func TestAuthHandlerCheckRejectsBadTokens(t *testing.T) {
	router, _ := newAuthRouter(t)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing token", "", "No token provided"},
		{"stale token", "Bearer stale", "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestAuthHandlerLogoutRevokesToken(t *testing.T) {
	router, repo := newAuthRouter(t)
	repo.tokens["valid-token"] = repo.users["andi@example.com"]

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	_, stillThere := repo.tokens["valid-token"]
	assert.False(t, stillThere)
}
