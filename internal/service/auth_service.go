package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// AuthUserRepository is the persistence surface the auth service needs.
type AuthUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	ReplaceToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	FindByToken(ctx context.Context, token string) (*models.User, error)
	DeleteToken(ctx context.Context, token string) error
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string          `json:"token"`
	User  models.UserInfo `json:"user"`
}

type AuthService struct {
	repo        AuthUserRepository
	tokenExpiry time.Duration
	logger      *zap.Logger
	validate    *validator.Validate
}

func NewAuthService(repo AuthUserRepository, tokenExpiry time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:        repo,
		tokenExpiry: tokenExpiry,
		logger:      logger,
		validate:    validator.New(),
	}
}

// Login verifies credentials and mints a fresh opaque session token,
// revoking any previous session for the account. Unknown accounts and bad
// passwords are reported distinctly, matching the client contract.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.ErrUnauthorized.Clone("User not found")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrUnauthorized.Clone("Invalid password")
	}

	token, err := newToken()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to mint token")
	}
	if err := s.repo.ReplaceToken(ctx, user.ID, token, time.Now().Add(s.tokenExpiry)); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return &LoginResult{Token: token, User: user.Info()}, nil
}

// Register creates a self-service account with the user role. Duplicate
// emails come back as a validation-style error with a login suggestion.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	email := strings.TrimSpace(req.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, appErrors.ErrDuplicateEmail.WithDetails(map[string]string{
			"message":    "This email is already registered",
			"suggestion": "Please use a different email or try to log in instead",
		})
	} else if !appErrors.Is(err, appErrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	info := user.Info()
	return &info, nil
}

// Authenticate resolves a bearer token to its account. Expired and unknown
// tokens both come back unauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return s.repo.FindByToken(ctx, token)
}

// Logout revokes the presented token. Revoking an already-dead token is
// not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteToken(ctx, token)
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
