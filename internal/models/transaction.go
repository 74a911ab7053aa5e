package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction kinds. The sign of a transaction is carried by Type, the
// Amount column is always positive.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction is a single monetary event in the journal. Category and
// CategoryIcon are snapshots taken at creation time; renaming a category
// does not rewrite history.
type Transaction struct {
	ID           string    `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	AccountID    string    `gorm:"index;not null" json:"account_id"`
	Amount       float64   `gorm:"not null" json:"amount"`
	Type         string    `gorm:"not null" json:"type"`
	Category     string    `gorm:"not null" json:"category"`
	CategoryIcon string    `json:"category_icon"`
	Description  string    `json:"description"`
	Date         time.Time `gorm:"index;not null" json:"date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsValidTransactionType reports whether t is one of the journal types.
func IsValidTransactionType(t string) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}
