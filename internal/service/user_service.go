package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// UserRepository is the persistence surface for admin user management.
type UserRepository interface {
	List(ctx context.Context) ([]models.UserInfo, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	repo     UserRepository
	logger   *zap.Logger
	validate *validator.Validate
}

func NewUserService(repo UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger, validate: validator.New()}
}

func (s *UserService) List(ctx context.Context) ([]models.UserInfo, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.UserInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	email := strings.TrimSpace(req.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, appErrors.ErrDuplicateEmail
	} else if !appErrors.Is(err, appErrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to hash password")
	}

	status := req.Status
	if status == "" {
		status = models.UserStatusActive
	}
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Status:       status,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", user.Role))
	info := user.Info()
	return &info, nil
}

func (s *UserService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.UserInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Clone(err.Error())
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	if email != user.Email {
		if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing.ID != id {
			return nil, appErrors.ErrDuplicateEmail
		} else if err != nil && !appErrors.Is(err, appErrors.ErrNotFound) {
			return nil, err
		}
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email
	user.Role = req.Role
	user.Status = req.Status

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
