package category

import "errors"

var (
	ErrInvalidName      = errors.New("category name is required")
	ErrInvalidType      = errors.New("invalid category type")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOperationFailed  = errors.New("category operation failed")
)
