package transaction

import (
	"time"

	"fintrack/internal/models"
)

// Snapshot is the slice of a journal row that drives reconciliation.
type Snapshot struct {
	Amount    float64
	Type      string
	Date      time.Time
	AccountID string
}

// BalanceChange is one signed adjustment to an account balance.
type BalanceChange struct {
	AccountID string
	Delta     float64
}

// Delta describes how an update moves the aggregates and balances from the
// previous snapshot to the current one.
type Delta struct {
	// DateChanged reports whether the row moved to a different calendar
	// bucket (UTC day, month or year differ).
	DateChanged bool
	// PreviousBucketSub is subtracted from the previous date's buckets for
	// the current type. Zero when the date is unchanged.
	PreviousBucketSub float64
	// CurrentBucketAdd is the signed contribution to the current date's
	// buckets: the full new amount after a date change, otherwise the
	// signed amount difference.
	CurrentBucketAdd float64
	// UpsertCurrentBucket is true when the current date's bucket may not
	// exist yet and must be created on first write.
	UpsertCurrentBucket bool
	// BalanceChanges holds one entry per affected account.
	BalanceChanges []BalanceChange
}

// BucketKey splits a date into the aggregate bucket coordinates. Month is
// 0-indexed. Dates are normalized to UTC so a row lands in the same bucket
// regardless of the server's zone.
func BucketKey(date time.Time) (day, month, year int) {
	d := date.UTC()
	return d.Day(), int(d.Month()) - 1, d.Year()
}

// SameBucket reports whether two dates fall into the same calendar-day
// bucket. The comparison is day-of-month, not weekday.
func SameBucket(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Day() == bu.Day() && au.Month() == bu.Month() && au.Year() == bu.Year()
}

// balanceEffect returns the signed effect a journal row has on its account
// balance: income adds, expense removes.
func balanceEffect(txType string, amount float64) float64 {
	if txType == models.TransactionTypeExpense {
		return -amount
	}
	return amount
}

// ComputeDelta derives the bucket and balance adjustments for an update.
// The reconciliation runs under the current type: the previous bucket and
// the previous account are both reversed as if the row had always carried
// the new type.
func ComputeDelta(prev, curr Snapshot) Delta {
	d := Delta{
		DateChanged: !SameBucket(prev.Date, curr.Date),
	}

	if d.DateChanged {
		d.PreviousBucketSub = prev.Amount
		d.CurrentBucketAdd = curr.Amount
		d.UpsertCurrentBucket = true
	} else {
		d.CurrentBucketAdd = curr.Amount - prev.Amount
	}

	if prev.AccountID == curr.AccountID {
		diff := curr.Amount - prev.Amount
		d.BalanceChanges = []BalanceChange{
			{AccountID: curr.AccountID, Delta: balanceEffect(curr.Type, diff)},
		}
	} else {
		d.BalanceChanges = []BalanceChange{
			{AccountID: prev.AccountID, Delta: -balanceEffect(curr.Type, prev.Amount)},
			{AccountID: curr.AccountID, Delta: balanceEffect(curr.Type, curr.Amount)},
		}
	}

	return d
}
