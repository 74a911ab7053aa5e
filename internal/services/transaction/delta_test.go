package transaction

import (
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/stretchr/testify/assert"
)

var (
	mar5  = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	mar12 = time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
)

func snap(amount float64, txType string, date time.Time, accountID string) Snapshot {
	return Snapshot{Amount: amount, Type: txType, Date: date, AccountID: accountID}
}

func TestComputeDelta(t *testing.T) {
	tests := []struct {
		name            string
		prev, curr      Snapshot
		wantDateChanged bool
		wantPrevSub     float64
		wantCurrAdd     float64
		wantUpsert      bool
		wantBalances    []BalanceChange
	}{
		{
			name:         "income increased same date",
			prev:         snap(100, models.TransactionTypeIncome, mar5, "acc-a"),
			curr:         snap(150, models.TransactionTypeIncome, mar5, "acc-a"),
			wantCurrAdd:  50,
			wantBalances: []BalanceChange{{AccountID: "acc-a", Delta: 50}},
		},
		{
			name:         "income decreased same date",
			prev:         snap(100, models.TransactionTypeIncome, mar5, "acc-a"),
			curr:         snap(60, models.TransactionTypeIncome, mar5, "acc-a"),
			wantCurrAdd:  -40,
			wantBalances: []BalanceChange{{AccountID: "acc-a", Delta: -40}},
		},
		{
			name:         "expense increased same date",
			prev:         snap(100, models.TransactionTypeExpense, mar5, "acc-a"),
			curr:         snap(150, models.TransactionTypeExpense, mar5, "acc-a"),
			wantCurrAdd:  50,
			wantBalances: []BalanceChange{{AccountID: "acc-a", Delta: -50}},
		},
		{
			name:         "expense decreased same date",
			prev:         snap(100, models.TransactionTypeExpense, mar5, "acc-a"),
			curr:         snap(60, models.TransactionTypeExpense, mar5, "acc-a"),
			wantCurrAdd:  -40,
			wantBalances: []BalanceChange{{AccountID: "acc-a", Delta: 40}},
		},
		{
			name:            "income increased date changed",
			prev:            snap(100, models.TransactionTypeIncome, mar5, "acc-a"),
			curr:            snap(150, models.TransactionTypeIncome, mar12, "acc-a"),
			wantDateChanged: true,
			wantPrevSub:     100,
			wantCurrAdd:     150,
			wantUpsert:      true,
			wantBalances:    []BalanceChange{{AccountID: "acc-a", Delta: 50}},
		},
		{
			name:            "income decreased date changed",
			prev:            snap(100, models.TransactionTypeIncome, mar5, "acc-a"),
			curr:            snap(60, models.TransactionTypeIncome, mar12, "acc-a"),
			wantDateChanged: true,
			wantPrevSub:     100,
			wantCurrAdd:     60,
			wantUpsert:      true,
			wantBalances:    []BalanceChange{{AccountID: "acc-a", Delta: -40}},
		},
		{
			name:            "expense increased date changed",
			prev:            snap(100, models.TransactionTypeExpense, mar5, "acc-a"),
			curr:            snap(150, models.TransactionTypeExpense, mar12, "acc-a"),
			wantDateChanged: true,
			wantPrevSub:     100,
			wantCurrAdd:     150,
			wantUpsert:      true,
			wantBalances:    []BalanceChange{{AccountID: "acc-a", Delta: -50}},
		},
		{
			name:            "expense decreased date changed",
			prev:            snap(100, models.TransactionTypeExpense, mar5, "acc-a"),
			curr:            snap(60, models.TransactionTypeExpense, mar12, "acc-a"),
			wantDateChanged: true,
			wantPrevSub:     100,
			wantCurrAdd:     60,
			wantUpsert:      true,
			wantBalances:    []BalanceChange{{AccountID: "acc-a", Delta: 40}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDelta(tt.prev, tt.curr)

			assert.Equal(t, tt.wantDateChanged, d.DateChanged)
			assert.InDelta(t, tt.wantPrevSub, d.PreviousBucketSub, 1e-9)
			assert.InDelta(t, tt.wantCurrAdd, d.CurrentBucketAdd, 1e-9)
			assert.Equal(t, tt.wantUpsert, d.UpsertCurrentBucket)
			assert.Equal(t, tt.wantBalances, d.BalanceChanges)
		})
	}
}

func TestComputeDeltaAccountMoved(t *testing.T) {
	t.Run("income", func(t *testing.T) {
		d := ComputeDelta(
			snap(100, models.TransactionTypeIncome, mar5, "acc-a"),
			snap(80, models.TransactionTypeIncome, mar5, "acc-b"),
		)
		assert.Equal(t, []BalanceChange{
			{AccountID: "acc-a", Delta: -100},
			{AccountID: "acc-b", Delta: 80},
		}, d.BalanceChanges)
	})

	t.Run("expense", func(t *testing.T) {
		d := ComputeDelta(
			snap(100, models.TransactionTypeExpense, mar5, "acc-a"),
			snap(80, models.TransactionTypeExpense, mar5, "acc-b"),
		)
		assert.Equal(t, []BalanceChange{
			{AccountID: "acc-a", Delta: 100},
			{AccountID: "acc-b", Delta: -80},
		}, d.BalanceChanges)
	})
}

// SameBucket must compare the day of the month, not the weekday. 2024-03-05
// and 2024-03-12 are both Tuesdays; a weekday comparison would call them
// equal and skip the bucket move entirely.
func TestSameBucketComparesCalendarDay(t *testing.T) {
	assert.Equal(t, mar5.Weekday(), mar12.Weekday())
	assert.False(t, SameBucket(mar5, mar12))

	sameDay := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameBucket(mar5, sameDay))

	nextMonth := time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)
	assert.False(t, SameBucket(mar5, nextMonth))

	nextYear := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.False(t, SameBucket(mar5, nextYear))
}

func TestBucketKeyMonthIsZeroIndexed(t *testing.T) {
	day, month, year := BucketKey(mar5)
	assert.Equal(t, 5, day)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2024, year)
}

func TestBucketKeyNormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	// 22:00 on March 4th in UTC-5 is already March 5th in UTC.
	local := time.Date(2024, time.March, 4, 22, 0, 0, 0, zone)

	day, month, year := BucketKey(local)
	assert.Equal(t, 5, day)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2024, year)
}
