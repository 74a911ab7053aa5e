package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository gives access to the account ledger. AdjustBalance is the
// only balance write path; callers compose it inside ExecuteInTransaction
// when an operation must move money atomically.
type AccountRepository interface {
	Create(account *models.Account) error
	CreateMany(accounts []*models.Account) error
	GetByID(userID uint, id string) (*models.Account, error)
	GetByName(userID uint, name string) (*models.Account, error)
	ListByUser(userID uint) ([]models.Account, error)
	Upsert(account *models.Account) error
	DeleteMany(userID uint, ids []string) error
	AdjustBalance(userID uint, id string, delta float64) error
	Debit(userID uint, id string, amount float64) error
	ExecuteInTransaction(fn func(AccountRepository) error) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) CreateMany(accounts []*models.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	if err := r.db.Create(accounts).Error; err != nil {
		return fmt.Errorf("failed to create accounts: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(userID uint, id string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByName(userID uint, name string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("user_id = ? AND account_name = ?", userID, name).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) ListByUser(userID uint) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Upsert creates the account or, when (user_id, account_name) already
// exists, refreshes its logo and balance.
func (r *accountRepository) Upsert(account *models.Account) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "account_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"account_logo": account.AccountLogo,
			"amount":       account.Amount,
		}),
	}).Create(account).Error
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

func (r *accountRepository) DeleteMany(userID uint, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.Account{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	return nil
}

// AdjustBalance applies a signed delta to the running balance.
func (r *accountRepository) AdjustBalance(userID uint, id string, delta float64) error {
	result := r.db.Model(&models.Account{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("amount", gorm.Expr("amount + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Debit subtracts amount only when the balance covers it. The guard lives in
// the UPDATE itself, so two concurrent transfers cannot both pass a check
// read from a snapshot and overdraw the account. Callers resolve the account
// first; RowsAffected==0 here means the funds are short.
func (r *accountRepository) Debit(userID uint, id string, amount float64) error {
	result := r.db.Model(&models.Account{}).
		Where("user_id = ? AND id = ? AND amount >= ?", userID, id, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

func (r *accountRepository) ExecuteInTransaction(fn func(AccountRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&accountRepository{db: tx})
	})
}
