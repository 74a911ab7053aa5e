package transfer

import "errors"

var (
	ErrInvalidAmount     = errors.New("invalid transfer amount")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferFailed    = errors.New("transfer failed")
)
