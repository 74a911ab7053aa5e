package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/utils"
	cachekeys "fintrack/internal/utils/cache"
)

// statsTTL bounds how stale a cached derived read can get. Mutations also
// invalidate eagerly, the TTL is the backstop.
const statsTTL = 60 * time.Second

// Cache is the slice of the cache layer the stats reads need.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service serves the derived reads: balance split, category breakdown,
// per-account balances and the formatted transaction listing. All of them are
// recomputed from the journal, never from the aggregate buckets.
type Service interface {
	GetBalanceStats(ctx context.Context, userID uint, from, to time.Time) (models.BalanceStats, error)
	GetCategoryStats(ctx context.Context, userID uint, from, to time.Time) ([]models.CategoryStat, error)
	GetBankStats(ctx context.Context, userID uint) ([]models.Account, error)
	GetTransactionsHistory(ctx context.Context, userID uint, from, to time.Time) ([]models.FormattedTransaction, error)
}

type service struct {
	transactions repositories.TransactionRepository
	accounts     repositories.AccountRepository
	users        repositories.UserRepository
	cache        Cache
}

// NewService creates a new stats service.
func NewService(
	transactions repositories.TransactionRepository,
	accounts repositories.AccountRepository,
	users repositories.UserRepository,
	cache Cache,
) Service {
	if transactions == nil {
		panic("transaction repository is required")
	}
	if accounts == nil {
		panic("account repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	return &service{
		transactions: transactions,
		accounts:     accounts,
		users:        users,
		cache:        cache,
	}
}

// lookbackFrom widens the lower bound by one day so entries dated around the
// boundary in other time zones still land in the window.
func lookbackFrom(from time.Time) time.Time {
	return from.AddDate(0, 0, -1)
}

func (s *service) GetBalanceStats(ctx context.Context, userID uint, from, to time.Time) (models.BalanceStats, error) {
	rangeKey := cachekeys.StatsRangeKey(userID, from, to)
	balanceKey := cachekeys.BalanceStatsKey(userID, from, to)

	var marker string
	var cached models.BalanceStats
	markerHit := s.cacheGet(ctx, rangeKey, &marker)
	balanceHit := s.cacheGet(ctx, balanceKey, &cached)
	if markerHit && balanceHit {
		return cached, nil
	}

	stats, err := s.transactions.SumByType(ctx, userID, lookbackFrom(from), to)
	if err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to sum balance stats")
		return models.BalanceStats{}, ErrStatsFailed
	}

	s.cacheSet(ctx, rangeKey, "1")
	s.cacheSet(ctx, balanceKey, stats)
	return stats, nil
}

func (s *service) GetCategoryStats(ctx context.Context, userID uint, from, to time.Time) ([]models.CategoryStat, error) {
	breakdown, err := s.transactions.GroupByCategory(ctx, userID, lookbackFrom(from), to)
	if err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to group category stats")
		return nil, ErrStatsFailed
	}
	return breakdown, nil
}

func (s *service) GetBankStats(ctx context.Context, userID uint) ([]models.Account, error) {
	key := cachekeys.BankStatsKey(userID)

	var cached []models.Account
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	accounts, err := s.accounts.ListByUser(userID)
	if err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to list accounts")
		return nil, ErrStatsFailed
	}

	s.cacheSet(ctx, key, accounts)
	return accounts, nil
}

// cachedListing pins the bounds the cached listing was computed for, so a
// request with different bounds falls through to the journal.
type cachedListing struct {
	From  time.Time                     `json:"from"`
	To    time.Time                     `json:"to"`
	Items []models.FormattedTransaction `json:"items"`
}

func (s *service) GetTransactionsHistory(ctx context.Context, userID uint, from, to time.Time) ([]models.FormattedTransaction, error) {
	key := cachekeys.TransactionsKey(userID)

	var cached cachedListing
	if s.cacheGet(ctx, key, &cached) && cached.From.Equal(from.UTC()) && cached.To.Equal(to.UTC()) {
		return cached.Items, nil
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	rows, err := s.transactions.ListByDateRange(ctx, userID, lookbackFrom(from), to)
	if err != nil {
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to list transactions")
		return nil, ErrStatsFailed
	}

	formatted := make([]models.FormattedTransaction, 0, len(rows))
	for _, row := range rows {
		formatted = append(formatted, models.FormattedTransaction{
			Transaction:     row,
			FormattedAmount: utils.FormatAmount(row.Amount, user.Currency),
		})
	}

	s.cacheSet(ctx, key, cachedListing{From: from.UTC(), To: to.UTC(), Items: formatted})
	return formatted, nil
}

// cacheGet treats any cache failure as a miss.
func (s *service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logging.L().WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	return hit
}

func (s *service) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.SetWithTTL(ctx, key, value, statsTTL); err != nil {
		logging.L().WithError(err).WithField("key", key).Warn("cache write failed")
	}
}
