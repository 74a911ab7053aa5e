// Package cache builds the cache keys used by the stats layer. Keys are
// assembled here only, never by string concatenation at call sites.
package cache

import (
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// BalanceStatsKey holds the cached income/expense split for a user and date
// range. The bounds are part of the key so a balance cached for one range can
// never be served for another.
func BalanceStatsKey(userID uint, from, to time.Time) string {
	return fmt.Sprintf("stats:balance:user:%d:%s:%s",
		userID, from.UTC().Format(dayFormat), to.UTC().Format(dayFormat))
}

// BalanceStatsPattern matches every cached balance for a user, whatever
// bounds it was written with.
func BalanceStatsPattern(userID uint) string {
	return fmt.Sprintf("stats:balance:user:%d:*", userID)
}

// StatsRangeKey marks which date range the cached balance was computed for.
func StatsRangeKey(userID uint, from, to time.Time) string {
	return fmt.Sprintf("stats:range:user:%d:%s:%s",
		userID, from.UTC().Format(dayFormat), to.UTC().Format(dayFormat))
}

// StatsRangePattern matches every range marker for a user, whatever bounds
// it was written with.
func StatsRangePattern(userID uint) string {
	return fmt.Sprintf("stats:range:user:%d:*", userID)
}

// TransactionsKey holds the cached transaction listing for a user.
func TransactionsKey(userID uint) string {
	return fmt.Sprintf("transactions:user:%d", userID)
}

// BankStatsKey holds the cached per-account balances for a user.
func BankStatsKey(userID uint) string {
	return fmt.Sprintf("stats:bank:user:%d", userID)
}
