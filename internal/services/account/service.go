package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	cachekeys "fintrack/internal/utils/cache"
)

// NewAccount is one account in a BulkAdd or UpsertSelection submission.
type NewAccount struct {
	Name   string  `json:"account_name" validate:"required"`
	Logo   string  `json:"account_logo"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

// Cache is the slice of the cache layer the registry needs.
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}

// Service manages the user's account ledger set. Balance movements live in
// the transaction and transfer services, not here.
type Service interface {
	Create(ctx context.Context, userID uint, req NewAccount) (*models.Account, error)
	List(ctx context.Context, userID uint) ([]models.Account, error)
	BulkAdd(ctx context.Context, userID uint, reqs []NewAccount) ([]models.Account, error)
	UpsertSelection(ctx context.Context, userID uint, reqs []NewAccount) ([]models.Account, error)
}

type service struct {
	accounts repositories.AccountRepository
	cache    Cache
}

// NewService creates a new account service.
func NewService(accounts repositories.AccountRepository, cache Cache) Service {
	if accounts == nil {
		panic("account repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	return &service{accounts: accounts, cache: cache}
}

func (s *service) Create(ctx context.Context, userID uint, req NewAccount) (*models.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	account := &models.Account{
		UserID:      userID,
		AccountName: name,
		AccountLogo: req.Logo,
		Amount:      req.Amount,
	}
	if err := s.accounts.Create(account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to create account")
		return nil, ErrOperationFailed
	}

	s.invalidateBankStats(ctx, userID)
	return account, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]models.Account, error) {
	accounts, err := s.accounts.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// BulkAdd inserts a batch of new accounts and returns the user's full set.
func (s *service) BulkAdd(ctx context.Context, userID uint, reqs []NewAccount) ([]models.Account, error) {
	accounts, err := buildAccounts(userID, reqs)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.CreateMany(accounts); err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to create accounts")
		return nil, ErrOperationFailed
	}

	s.invalidateBankStats(ctx, userID)
	return s.List(ctx, userID)
}

// UpsertSelection syncs the user's account set to the submitted list:
// accounts absent from the submission are deleted, the rest created or
// refreshed. This is the onboarding wizard path where the user re-picks
// their banks.
func (s *service) UpsertSelection(ctx context.Context, userID uint, reqs []NewAccount) ([]models.Account, error) {
	wanted, err := buildAccounts(userID, reqs)
	if err != nil {
		return nil, err
	}

	err = s.accounts.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
		existing, err := tx.ListByUser(userID)
		if err != nil {
			return err
		}

		keep := make(map[string]bool, len(wanted))
		for _, a := range wanted {
			keep[a.AccountName] = true
		}

		var stale []string
		for _, a := range existing {
			if !keep[a.AccountName] {
				stale = append(stale, a.ID)
			}
		}
		if err := tx.DeleteMany(userID, stale); err != nil {
			return err
		}

		for _, a := range wanted {
			if err := tx.Upsert(a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to sync account selection")
		return nil, ErrOperationFailed
	}

	s.invalidateBankStats(ctx, userID)
	return s.List(ctx, userID)
}

func buildAccounts(userID uint, reqs []NewAccount) ([]*models.Account, error) {
	if len(reqs) == 0 {
		return nil, ErrNothingToCreate
	}
	accounts := make([]*models.Account, 0, len(reqs))
	for _, req := range reqs {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		accounts = append(accounts, &models.Account{
			UserID:      userID,
			AccountName: name,
			AccountLogo: req.Logo,
			Amount:      req.Amount,
		})
	}
	return accounts, nil
}

func (s *service) invalidateBankStats(ctx context.Context, userID uint) {
	if err := s.cache.Delete(ctx, cachekeys.BankStatsKey(userID)); err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Warn("failed to invalidate bank stats cache")
	}
}
