package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is a bank/cash bucket holding a running balance. The balance is
// mutated only by journal operations and transfers, never written directly.
type Account struct {
	ID          string  `gorm:"primarykey" json:"id"`
	UserID      uint    `gorm:"uniqueIndex:idx_user_account_name;not null" json:"user_id"`
	AccountName string  `gorm:"uniqueIndex:idx_user_account_name;not null" json:"account_name"`
	AccountLogo string  `json:"account_logo"`
	Amount      float64 `gorm:"default:0" json:"amount"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
