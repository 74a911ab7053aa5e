package stats

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrStatsFailed  = errors.New("failed to compute stats")
)
