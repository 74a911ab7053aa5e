package transfer

import (
	"context"
	"errors"

	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	cachekeys "fintrack/internal/utils/cache"
	"fintrack/internal/validation"
)

// Cache is the slice of the cache layer the coordinator needs.
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}

// Service moves money between two of a user's accounts. A transfer touches
// balances only: no journal row, no aggregate bucket, no category.
type Service interface {
	MoneyTransfer(ctx context.Context, userID uint, fromAccountID, toAccountID string, amount float64) (*models.Account, error)
}

type service struct {
	accounts repositories.AccountRepository
	cache    Cache
}

// NewService creates a new transfer service.
func NewService(accounts repositories.AccountRepository, cache Cache) Service {
	if accounts == nil {
		panic("account repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	return &service{accounts: accounts, cache: cache}
}

// MoneyTransfer debits the source and credits the destination in one atomic
// unit: either both balances move or neither does. Returns the source account
// with its post-transfer balance.
func (s *service) MoneyTransfer(ctx context.Context, userID uint, fromAccountID, toAccountID string, amount float64) (*models.Account, error) {
	if !validation.ValidAmount(amount) {
		return nil, ErrInvalidAmount
	}
	if fromAccountID == "" || toAccountID == "" {
		return nil, ErrAccountNotFound
	}
	if fromAccountID == toAccountID {
		return nil, ErrSameAccount
	}

	var source *models.Account
	err := s.accounts.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
		var err error
		source, err = tx.GetByID(userID, fromAccountID)
		if err != nil {
			return err
		}
		if _, err := tx.GetByID(userID, toAccountID); err != nil {
			return err
		}
		// The balance guard is inside the debit UPDATE, not a compare on
		// the snapshot read above, so concurrent transfers cannot both
		// pass it and overdraw.
		if err := tx.Debit(userID, fromAccountID, amount); err != nil {
			return err
		}
		if err := tx.AdjustBalance(userID, toAccountID, amount); err != nil {
			return err
		}

		source.Amount -= amount
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			return nil, ErrAccountNotFound
		case errors.Is(err, repositories.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		}
		logging.L().WithError(err).WithField("user_id", userID).Error("transfer rolled back")
		return nil, ErrTransferFailed
	}

	if err := s.cache.Delete(ctx, cachekeys.BankStatsKey(userID)); err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Warn("failed to invalidate bank stats cache")
	}
	return source, nil
}
