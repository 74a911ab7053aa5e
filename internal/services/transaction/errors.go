package transaction

import "errors"

// Service errors
var (
	ErrInvalidAmount       = errors.New("amount must be positive with at most two decimals")
	ErrInvalidType         = errors.New("type must be income or expense")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAggregateNotFound   = errors.New("history bucket for previous date not found")
	ErrTransactionFailed   = errors.New("transaction failed")
)
