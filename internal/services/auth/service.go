package auth

import (
	"context"
	"errors"

	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest carries a signup submission.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency"`
}

// LoginRequest carries a login submission.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is what a successful register or login hands back.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service is the actor provider. Everything downstream only needs the user id
// it puts into the token claims.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, *TokenPair, error)
	Login(ctx context.Context, req LoginRequest) (*models.User, *TokenPair, error)
	Logout(ctx context.Context, userID uint) error
}

type service struct {
	users repositories.UserRepository
}

// NewService creates a new auth service.
func NewService(users repositories.UserRepository) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{users: users}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*models.User, *TokenPair, error) {
	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		logging.L().WithError(err).Error("failed to check email")
		return nil, nil, ErrAuthFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logging.L().WithError(err).Error("failed to hash password")
		return nil, nil, ErrAuthFailed
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
		Currency: req.Currency,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, nil, ErrEmailTaken
		}
		logging.L().WithError(err).Error("failed to create user")
		return nil, nil, ErrAuthFailed
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		logging.L().WithError(err).Error("failed to load user")
		return nil, nil, ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout bumps the user's token version so previously issued tokens stop
// validating.
func (s *service) Logout(ctx context.Context, userID uint) error {
	if err := s.users.IncrementTokenVersion(userID); err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to revoke tokens")
		return ErrAuthFailed
	}
	return nil
}

func (s *service) issueTokens(user *models.User) (*TokenPair, error) {
	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		logging.L().WithError(err).Error("failed to issue tokens")
		return nil, ErrAuthFailed
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
