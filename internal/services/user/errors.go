package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrSettingsFailed      = errors.New("settings operation failed")
)
