package account

import "errors"

var (
	ErrInvalidName     = errors.New("account name is required")
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrNothingToCreate = errors.New("no accounts to create")
	ErrOperationFailed = errors.New("account operation failed")
)
