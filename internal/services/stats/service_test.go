package stats

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories"
	cachekeys "fintrack/internal/utils/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID uint = 3

var (
	from = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
)

type fakeTransactions struct {
	repositories.TransactionRepository

	sum       models.BalanceStats
	breakdown []models.CategoryStat
	rows      []models.Transaction

	sumCalls int
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeTransactions) SumByType(ctx context.Context, userID uint, from, to time.Time) (models.BalanceStats, error) {
	f.sumCalls++
	f.lastFrom, f.lastTo = from, to
	return f.sum, nil
}

func (f *fakeTransactions) GroupByCategory(ctx context.Context, userID uint, from, to time.Time) ([]models.CategoryStat, error) {
	f.lastFrom, f.lastTo = from, to
	return f.breakdown, nil
}

func (f *fakeTransactions) ListByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Transaction, error) {
	f.lastFrom, f.lastTo = from, to
	return f.rows, nil
}

type fakeAccounts struct {
	repositories.AccountRepository

	accounts  []models.Account
	listCalls int
}

func (f *fakeAccounts) ListByUser(userID uint) ([]models.Account, error) {
	f.listCalls++
	return f.accounts, nil
}

type fakeUsers struct {
	repositories.UserRepository

	user *models.User
}

func (f *fakeUsers) GetByID(id uint) (*models.User, error) {
	if f.user == nil {
		return nil, repositories.ErrUserNotFound
	}
	return f.user, nil
}

// memoryCache stores JSON so reads go through the same round trip the redis
// backed cache does.
type memoryCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.ttls[key] = ttl
	return nil
}

func newTestService(transactions *fakeTransactions, accounts *fakeAccounts, users *fakeUsers, cache *memoryCache) Service {
	return NewService(transactions, accounts, users, cache)
}

func TestGetBalanceStatsMissComputesAndWritesThrough(t *testing.T) {
	transactions := &fakeTransactions{sum: models.BalanceStats{Income: 300, Expense: 120}}
	cache := newMemoryCache()
	svc := newTestService(transactions, &fakeAccounts{}, &fakeUsers{}, cache)

	stats, err := svc.GetBalanceStats(context.Background(), testUserID, from, to)
	require.NoError(t, err)
	assert.Equal(t, models.BalanceStats{Income: 300, Expense: 120}, stats)

	// The lower bound is widened by one day.
	assert.Equal(t, from.AddDate(0, 0, -1), transactions.lastFrom)
	assert.Equal(t, to, transactions.lastTo)

	rangeKey := cachekeys.StatsRangeKey(testUserID, from, to)
	balanceKey := cachekeys.BalanceStatsKey(testUserID, from, to)
	assert.Contains(t, cache.entries, rangeKey)
	assert.Contains(t, cache.entries, balanceKey)
	assert.Equal(t, statsTTL, cache.ttls[rangeKey])
	assert.Equal(t, statsTTL, cache.ttls[balanceKey])
}

func TestGetBalanceStatsHitReturnsCachedVerbatim(t *testing.T) {
	transactions := &fakeTransactions{sum: models.BalanceStats{Income: 999}}
	cache := newMemoryCache()
	svc := newTestService(transactions, &fakeAccounts{}, &fakeUsers{}, cache)

	require.NoError(t, cache.SetWithTTL(context.Background(),
		cachekeys.StatsRangeKey(testUserID, from, to), "1", statsTTL))
	require.NoError(t, cache.SetWithTTL(context.Background(),
		cachekeys.BalanceStatsKey(testUserID, from, to), models.BalanceStats{Income: 300, Expense: 120}, statsTTL))

	stats, err := svc.GetBalanceStats(context.Background(), testUserID, from, to)
	require.NoError(t, err)
	assert.Equal(t, models.BalanceStats{Income: 300, Expense: 120}, stats)
	assert.Zero(t, transactions.sumCalls)
}

func TestGetBalanceStatsDifferentRangeMisses(t *testing.T) {
	transactions := &fakeTransactions{sum: models.BalanceStats{Income: 50}}
	cache := newMemoryCache()
	svc := newTestService(transactions, &fakeAccounts{}, &fakeUsers{}, cache)

	// A different range is fully cached; a query for this range must not
	// see any of it.
	other := from.AddDate(0, -1, 0)
	require.NoError(t, cache.SetWithTTL(context.Background(),
		cachekeys.StatsRangeKey(testUserID, other, to), "1", statsTTL))
	require.NoError(t, cache.SetWithTTL(context.Background(),
		cachekeys.BalanceStatsKey(testUserID, other, to), models.BalanceStats{Income: 999}, statsTTL))

	stats, err := svc.GetBalanceStats(context.Background(), testUserID, from, to)
	require.NoError(t, err)
	assert.Equal(t, models.BalanceStats{Income: 50}, stats)
	assert.Equal(t, 1, transactions.sumCalls)
}

// Querying one range must never be answered with a balance cached for
// another. Interleaved queries for two ranges inside the TTL each keep
// seeing their own sums.
func TestGetBalanceStatsRangesDoNotCrossContaminate(t *testing.T) {
	transactions := &fakeTransactions{sum: models.BalanceStats{Income: 100}}
	cache := newMemoryCache()
	svc := newTestService(transactions, &fakeAccounts{}, &fakeUsers{}, cache)
	ctx := context.Background()

	janFrom := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	janTo := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	marFrom := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	marTo := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	jan, err := svc.GetBalanceStats(ctx, testUserID, janFrom, janTo)
	require.NoError(t, err)
	require.InDelta(t, 100, jan.Income, 1e-9)

	transactions.sum = models.BalanceStats{Income: 999}
	mar, err := svc.GetBalanceStats(ctx, testUserID, marFrom, marTo)
	require.NoError(t, err)
	require.InDelta(t, 999, mar.Income, 1e-9)

	jan, err = svc.GetBalanceStats(ctx, testUserID, janFrom, janTo)
	require.NoError(t, err)
	assert.InDelta(t, 100, jan.Income, 1e-9)
	assert.Equal(t, 2, transactions.sumCalls)
}

func TestGetCategoryStatsUsesLookback(t *testing.T) {
	transactions := &fakeTransactions{breakdown: []models.CategoryStat{
		{Type: models.TransactionTypeExpense, Category: "Groceries", Amount: 80},
	}}
	svc := newTestService(transactions, &fakeAccounts{}, &fakeUsers{}, newMemoryCache())

	breakdown, err := svc.GetCategoryStats(context.Background(), testUserID, from, to)
	require.NoError(t, err)
	require.Len(t, breakdown, 1)
	assert.Equal(t, "Groceries", breakdown[0].Category)
	assert.Equal(t, from.AddDate(0, 0, -1), transactions.lastFrom)
}

func TestGetBankStatsCachesAccounts(t *testing.T) {
	accounts := &fakeAccounts{accounts: []models.Account{
		{ID: "acc-a", UserID: testUserID, AccountName: "Checking", Amount: 140},
	}}
	cache := newMemoryCache()
	svc := newTestService(&fakeTransactions{}, accounts, &fakeUsers{}, cache)

	got, err := svc.GetBankStats(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Checking", got[0].AccountName)
	assert.Equal(t, 1, accounts.listCalls)

	// Second read comes from the cache.
	got, err = svc.GetBankStats(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, accounts.listCalls)
	assert.Equal(t, statsTTL, cache.ttls[cachekeys.BankStatsKey(testUserID)])
}

func TestGetTransactionsHistoryFormatsWithUserCurrency(t *testing.T) {
	transactions := &fakeTransactions{rows: []models.Transaction{
		{ID: "tx-1", UserID: testUserID, Amount: 42.5, Type: models.TransactionTypeExpense},
	}}
	users := &fakeUsers{user: &models.User{Currency: "EUR"}}
	svc := newTestService(transactions, &fakeAccounts{}, users, newMemoryCache())

	history, err := svc.GetTransactionsHistory(context.Background(), testUserID, from, to)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "€42.50", history[0].FormattedAmount)
	assert.Equal(t, from.AddDate(0, 0, -1), transactions.lastFrom)
}

func TestGetTransactionsHistoryCachedBoundsMustMatch(t *testing.T) {
	transactions := &fakeTransactions{rows: []models.Transaction{
		{ID: "tx-1", UserID: testUserID, Amount: 10, Type: models.TransactionTypeIncome},
	}}
	users := &fakeUsers{user: &models.User{Currency: "USD"}}
	cache := newMemoryCache()
	svc := newTestService(transactions, &fakeAccounts{}, users, cache)

	_, err := svc.GetTransactionsHistory(context.Background(), testUserID, from, to)
	require.NoError(t, err)

	// Same bounds hit the cache, shifted bounds recompute.
	transactions.rows = nil
	history, err := svc.GetTransactionsHistory(context.Background(), testUserID, from, to)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	history, err = svc.GetTransactionsHistory(context.Background(), testUserID, from.AddDate(0, -1, 0), to)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGetTransactionsHistoryUnknownUser(t *testing.T) {
	svc := newTestService(&fakeTransactions{}, &fakeAccounts{}, &fakeUsers{}, newMemoryCache())

	_, err := svc.GetTransactionsHistory(context.Background(), testUserID, from, to)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
