// Package user exposes the per-user settings: today just the display
// currency the history endpoints format amounts with.
package user

import (
	"context"
	"errors"

	"fintrack/internal/logging"
	"fintrack/internal/repositories"
	"fintrack/internal/utils"
)

const defaultCurrency = "USD"

// Settings is the settings payload handed back to the client.
type Settings struct {
	Currency string `json:"currency"`
}

// UpdateCurrencyRequest carries a currency change.
type UpdateCurrencyRequest struct {
	Currency string `json:"currency" validate:"required"`
}

type Service interface {
	GetSettings(ctx context.Context, userID uint) (*Settings, error)
	UpdateCurrency(ctx context.Context, userID uint, currency string) (*Settings, error)
}

type service struct {
	users repositories.UserRepository
}

// NewService creates a new user settings service.
func NewService(users repositories.UserRepository) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{users: users}
}

// GetSettings returns the user's settings, backfilling the default currency
// for accounts created before one was stored.
func (s *service) GetSettings(ctx context.Context, userID uint) (*Settings, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to load settings")
		return nil, ErrSettingsFailed
	}

	if user.Currency == "" {
		user.Currency = defaultCurrency
		if err := s.users.Update(user); err != nil {
			logging.L().WithError(err).WithField("user_id", userID).Error("failed to store default currency")
			return nil, ErrSettingsFailed
		}
	}
	return &Settings{Currency: user.Currency}, nil
}

func (s *service) UpdateCurrency(ctx context.Context, userID uint, currency string) (*Settings, error) {
	if !utils.IsSupportedCurrency(currency) {
		return nil, ErrUnsupportedCurrency
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to load user")
		return nil, ErrSettingsFailed
	}

	user.Currency = currency
	if err := s.users.Update(user); err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to update currency")
		return nil, ErrSettingsFailed
	}
	return &Settings{Currency: user.Currency}, nil
}
