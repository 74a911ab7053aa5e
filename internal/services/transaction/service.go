package transaction

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	cachekeys "fintrack/internal/utils/cache"
	"fintrack/internal/validation"
)

type service struct {
	repo       repositories.TransactionRepository
	categories repositories.CategoryRepository
	cache      Cache
}

// NewService creates a new journal service.
func NewService(repo repositories.TransactionRepository, categories repositories.CategoryRepository, cache Cache) Service {
	if repo == nil {
		panic("transaction repository is required")
	}
	if categories == nil {
		panic("category repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	return &service{
		repo:       repo,
		categories: categories,
		cache:      cache,
	}
}

func (s *service) Create(ctx context.Context, userID uint, req CreateRequest) (*models.Transaction, error) {
	if err := validateMutation(req.Amount, req.Type, req.AccountID); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByName(userID, req.Category, req.Type)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	t := &models.Transaction{
		UserID:       userID,
		AccountID:    req.AccountID,
		Amount:       req.Amount,
		Type:         req.Type,
		Category:     category.Name,
		CategoryIcon: category.Icon,
		Description:  req.Description,
		Date:         req.Date.UTC(),
	}

	day, month, year := BucketKey(t.Date)

	err = s.repo.ExecuteInTransaction(func(tx repositories.JournalWriter) error {
		if err := tx.CreateTransaction(t); err != nil {
			return err
		}
		if err := tx.UpsertMonthBucket(userID, day, month, year, t.Type, t.Amount); err != nil {
			return err
		}
		if err := tx.UpsertYearBucket(userID, month, year, t.Type, t.Amount); err != nil {
			return err
		}
		return tx.AdjustAccountBalance(userID, t.AccountID, balanceEffect(t.Type, t.Amount))
	})
	if err != nil {
		return nil, s.storeError("create", err)
	}

	s.invalidateStatsCaches(ctx, userID)
	return t, nil
}

func (s *service) Update(ctx context.Context, userID uint, req UpdateRequest) (*models.Transaction, error) {
	if err := validateMutation(req.Amount, req.Type, req.AccountID); err != nil {
		return nil, err
	}
	if !validation.ValidAmount(req.PreviousAmount) || req.PreviousAccountID == "" {
		return nil, ErrInvalidAmount
	}

	category, err := s.categories.GetByName(userID, req.Category, req.Type)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	prev := Snapshot{
		Amount:    req.PreviousAmount,
		Type:      req.Type,
		Date:      req.PreviousDate,
		AccountID: req.PreviousAccountID,
	}
	curr := Snapshot{
		Amount:    req.Amount,
		Type:      req.Type,
		Date:      req.Date,
		AccountID: req.AccountID,
	}
	delta := ComputeDelta(prev, curr)

	updated := &models.Transaction{
		ID:           req.TransactionID,
		UserID:       userID,
		AccountID:    req.AccountID,
		Amount:       req.Amount,
		Type:         req.Type,
		Category:     category.Name,
		CategoryIcon: category.Icon,
		Description:  req.Description,
		Date:         req.Date.UTC(),
	}

	prevDay, prevMonth, prevYear := BucketKey(req.PreviousDate)
	day, month, year := BucketKey(req.Date)

	err = s.repo.ExecuteInTransaction(func(tx repositories.JournalWriter) error {
		if err := tx.UpdateTransaction(updated); err != nil {
			return err
		}

		if delta.DateChanged {
			if err := tx.AddToMonthBucket(userID, prevDay, prevMonth, prevYear, req.Type, -delta.PreviousBucketSub); err != nil {
				return err
			}
			if err := tx.AddToYearBucket(userID, prevMonth, prevYear, req.Type, -delta.PreviousBucketSub); err != nil {
				return err
			}
			if err := tx.UpsertMonthBucket(userID, day, month, year, req.Type, delta.CurrentBucketAdd); err != nil {
				return err
			}
			if err := tx.UpsertYearBucket(userID, month, year, req.Type, delta.CurrentBucketAdd); err != nil {
				return err
			}
		} else {
			if err := tx.AddToMonthBucket(userID, day, month, year, req.Type, delta.CurrentBucketAdd); err != nil {
				return err
			}
			if err := tx.AddToYearBucket(userID, month, year, req.Type, delta.CurrentBucketAdd); err != nil {
				return err
			}
		}

		for _, change := range delta.BalanceChanges {
			if err := tx.AdjustAccountBalance(userID, change.AccountID, change.Delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.storeError("update", err)
	}

	s.invalidateStatsCaches(ctx, userID)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, userID uint, id string) error {
	t, err := s.repo.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to load transaction: %w", err)
	}

	day, month, year := BucketKey(t.Date)

	err = s.repo.ExecuteInTransaction(func(tx repositories.JournalWriter) error {
		deleted, err := tx.DeleteTransactions(userID, []string{id})
		if err != nil {
			return err
		}
		if deleted == 0 {
			return repositories.ErrTransactionNotFound
		}
		if err := tx.AddToMonthBucket(userID, day, month, year, t.Type, -t.Amount); err != nil {
			return err
		}
		if err := tx.AddToYearBucket(userID, month, year, t.Type, -t.Amount); err != nil {
			return err
		}
		return tx.AdjustAccountBalance(userID, t.AccountID, -balanceEffect(t.Type, t.Amount))
	})
	if err != nil {
		return s.storeError("delete", err)
	}

	s.invalidateStatsCaches(ctx, userID)
	return nil
}

func (s *service) BulkDelete(ctx context.Context, userID uint, ids []string) (int64, error) {
	// Only actor-owned rows are loaded; foreign ids drop out silently.
	owned, err := s.repo.ListByIDs(userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(owned) == 0 {
		return 0, nil
	}

	type monthKey struct {
		day, month, year int
		txType           string
	}
	type yearKey struct {
		month, year int
		txType      string
	}
	type accountKey struct {
		accountID string
		txType    string
	}

	ownedIDs := make([]string, 0, len(owned))
	monthSums := make(map[monthKey]float64)
	yearSums := make(map[yearKey]float64)
	balanceSums := make(map[accountKey]float64)

	for _, t := range owned {
		ownedIDs = append(ownedIDs, t.ID)
		day, month, year := BucketKey(t.Date)
		monthSums[monthKey{day, month, year, t.Type}] += t.Amount
		yearSums[yearKey{month, year, t.Type}] += t.Amount
		balanceSums[accountKey{t.AccountID, t.Type}] += t.Amount
	}

	var deleted int64
	err = s.repo.ExecuteInTransaction(func(tx repositories.JournalWriter) error {
		var err error
		deleted, err = tx.DeleteTransactions(userID, ownedIDs)
		if err != nil {
			return err
		}
		for key, sum := range monthSums {
			if err := tx.AddToMonthBucket(userID, key.day, key.month, key.year, key.txType, -sum); err != nil {
				return err
			}
		}
		for key, sum := range yearSums {
			if err := tx.AddToYearBucket(userID, key.month, key.year, key.txType, -sum); err != nil {
				return err
			}
		}
		// One balance write per (account, type) pair.
		for key, sum := range balanceSums {
			if err := tx.AdjustAccountBalance(userID, key.accountID, -balanceEffect(key.txType, sum)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, s.storeError("bulk_delete", err)
	}

	s.invalidateStatsCaches(ctx, userID)
	return deleted, nil
}

// invalidateStatsCaches drops every derived read for the user. Deletion over
// in-place patching: a missing entry is recomputed on the next read, a
// half-patched one drifts.
func (s *service) invalidateStatsCaches(ctx context.Context, userID uint) {
	keys := []string{
		cachekeys.TransactionsKey(userID),
		cachekeys.BankStatsKey(userID),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Warn("failed to invalidate stats cache")
	}
	// Balance values and range markers are keyed by bounds, so every range
	// the user ever queried gets dropped.
	for _, pattern := range []string{
		cachekeys.BalanceStatsPattern(userID),
		cachekeys.StatsRangePattern(userID),
	} {
		if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
			logging.L().WithError(err).WithField("user_id", userID).Warn("failed to invalidate stats cache")
		}
	}
}

// storeError passes through the sentinels a caller can act on and folds
// everything else into a generic failure once the unit has rolled back.
func (s *service) storeError(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return ErrTransactionNotFound
	case errors.Is(err, repositories.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repositories.ErrBucketNotFound):
		return ErrAggregateNotFound
	}
	logging.L().WithError(err).WithField("op", op).Error("journal mutation rolled back")
	return ErrTransactionFailed
}

func validateMutation(amount float64, txType, accountID string) error {
	if !validation.ValidAmount(amount) {
		return ErrInvalidAmount
	}
	if !models.IsValidTransactionType(txType) {
		return ErrInvalidType
	}
	if accountID == "" {
		return ErrAccountNotFound
	}
	return nil
}
