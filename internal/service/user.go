package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rookgm/lunchorder/internal/logger"
	"github.com/rookgm/lunchorder/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user to database
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns user by login
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// GetUserByID returns user by id
	GetUserByID(ctx context.Context, id uint64) (*models.User, error)
}

// UserService implements UserService interface
type UserService struct {
	repo UserRepository
}

// NewUserService creates new UserService instance
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates new user with hashed password
func (us *UserService) Register(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Login == "" || user.Password == "" {
		return nil, models.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := *user
	u.Password = string(hash)

	created, err := us.repo.CreateUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("user registered", zap.Uint64("id", created.ID), zap.String("login", created.Login))
	return created, nil
}

// GetUser returns user by id
func (us *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := us.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureAdmin creates admin user unless login is already taken
func (us *UserService) EnsureAdmin(ctx context.Context, login, password string) error {
	_, err := us.Register(ctx, &models.User{
		Login:    login,
		Password: password,
		IsAdmin:  true,
	})
	if errors.Is(err, models.ErrConflictData) {
		return nil
	}
	return err
}
