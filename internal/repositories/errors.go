package repositories

import "errors"

// Sentinel errors returned by the data access layer. Services translate
// these into their own error vocabulary where needed.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBucketNotFound      = errors.New("history bucket not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrDuplicateKey        = errors.New("duplicate key")
)
