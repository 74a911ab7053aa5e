package models

// BalanceStats is the income/expense split over a date range.
type BalanceStats struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryStat is one row of the per-category breakdown.
type CategoryStat struct {
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	CategoryIcon string  `json:"category_icon"`
	Amount       float64 `json:"amount"`
}

// FormattedTransaction is a journal row plus the amount rendered in the
// user's display currency.
type FormattedTransaction struct {
	Transaction
	FormattedAmount string `json:"formatted_amount"`
}
