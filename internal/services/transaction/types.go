package transaction

import (
	"context"
	"time"

	"fintrack/internal/models"
)

// CreateRequest carries a new journal entry.
type CreateRequest struct {
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Category    string    `json:"category" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=income expense"`
	Date        time.Time `json:"date" validate:"required"`
	Description string    `json:"description"`
	AccountID   string    `json:"account_id" validate:"required"`
}

// UpdateRequest overwrites an existing entry. The Previous* fields describe
// the row as it was, so the aggregates it fed can be reconciled.
type UpdateRequest struct {
	TransactionID     string    `json:"transaction_id" validate:"required"`
	Amount            float64   `json:"amount" validate:"required,gt=0"`
	Category          string    `json:"category" validate:"required"`
	Type              string    `json:"type" validate:"required,oneof=income expense"`
	Date              time.Time `json:"date" validate:"required"`
	Description       string    `json:"description"`
	AccountID         string    `json:"account_id" validate:"required"`
	PreviousAmount    float64   `json:"previous_amount" validate:"required,gt=0"`
	PreviousAccountID string    `json:"previous_account_id" validate:"required"`
	PreviousDate      time.Time `json:"previous_date" validate:"required"`
}

// Service is the transaction journal: every mutation keeps the aggregate
// buckets and account balances consistent within one atomic unit.
type Service interface {
	Create(ctx context.Context, userID uint, req CreateRequest) (*models.Transaction, error)
	Update(ctx context.Context, userID uint, req UpdateRequest) (*models.Transaction, error)
	Delete(ctx context.Context, userID uint, id string) error
	BulkDelete(ctx context.Context, userID uint, ids []string) (int64, error)
}

// Cache is the slice of the cache layer the journal needs: dropping keys
// after a committed mutation.
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
