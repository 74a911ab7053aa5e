package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JournalWriter is the set of writes the journal composes inside one atomic
// unit: the transaction row, both aggregate buckets and the account balance.
// Everything called through the value passed to ExecuteInTransaction shares
// a single database transaction and commits or rolls back together.
type JournalWriter interface {
	CreateTransaction(t *models.Transaction) error
	UpdateTransaction(t *models.Transaction) error
	DeleteTransactions(userID uint, ids []string) (int64, error)
	UpsertMonthBucket(userID uint, day, month, year int, txType string, amount float64) error
	UpsertYearBucket(userID uint, month, year int, txType string, amount float64) error
	AddToMonthBucket(userID uint, day, month, year int, txType string, delta float64) error
	AddToYearBucket(userID uint, month, year int, txType string, delta float64) error
	AdjustAccountBalance(userID uint, accountID string, delta float64) error
}

// TransactionRepository is the journal store: reads plus the atomic write
// unit.
type TransactionRepository interface {
	JournalWriter
	GetByID(userID uint, id string) (*models.Transaction, error)
	ListByIDs(userID uint, ids []string) ([]models.Transaction, error)
	ListByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Transaction, error)
	SumByType(ctx context.Context, userID uint, from, to time.Time) (models.BalanceStats, error)
	GroupByCategory(ctx context.Context, userID uint, from, to time.Time) ([]models.CategoryStat, error)
	ExecuteInTransaction(fn func(JournalWriter) error) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CreateTransaction(t *models.Transaction) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) UpdateTransaction(t *models.Transaction) error {
	result := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND id = ?", t.UserID, t.ID).
		Updates(map[string]interface{}{
			"account_id":    t.AccountID,
			"amount":        t.Amount,
			"type":          t.Type,
			"category":      t.Category,
			"category_icon": t.CategoryIcon,
			"description":   t.Description,
			"date":          t.Date,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) DeleteTransactions(userID uint, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *transactionRepository) GetByID(userID uint, id string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &t, nil
}

func (r *transactionRepository) ListByIDs(userID uint, ids []string) ([]models.Transaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ts []models.Transaction
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&ts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return ts, nil
}

func (r *transactionRepository) ListByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date DESC").
		Find(&ts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return ts, nil
}

func (r *transactionRepository) SumByType(ctx context.Context, userID uint, from, to time.Time) (models.BalanceStats, error) {
	var stats models.BalanceStats
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS expense",
			models.TransactionTypeIncome, models.TransactionTypeExpense,
		).
		Scan(&stats).Error
	if err != nil {
		return models.BalanceStats{}, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return stats, nil
}

func (r *transactionRepository) GroupByCategory(ctx context.Context, userID uint, from, to time.Time) ([]models.CategoryStat, error) {
	var stats []models.CategoryStat
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Select("type, category, category_icon, COALESCE(SUM(amount), 0) AS amount").
		Group("type, category, category_icon").
		Order("amount DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group transactions: %w", err)
	}
	return stats, nil
}

// bucketColumn maps a transaction type onto the aggregate column it feeds.
func bucketColumn(txType string) string {
	if txType == models.TransactionTypeExpense {
		return "expense"
	}
	return "income"
}

// UpsertMonthBucket creates the (user, day, month, year) bucket with amount
// in the matching column, or increments the column when the bucket exists.
func (r *transactionRepository) UpsertMonthBucket(userID uint, day, month, year int, txType string, amount float64) error {
	column := bucketColumn(txType)
	bucket := models.MonthHistory{UserID: userID, Day: day, Month: month, Year: year}
	if txType == models.TransactionTypeExpense {
		bucket.Expense = amount
	} else {
		bucket.Income = amount
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column+" + ?", amount),
		}),
	}).Create(&bucket).Error
	if err != nil {
		return fmt.Errorf("failed to upsert month bucket: %w", err)
	}
	return nil
}

// UpsertYearBucket mirrors UpsertMonthBucket for the per-month aggregate.
func (r *transactionRepository) UpsertYearBucket(userID uint, month, year int, txType string, amount float64) error {
	column := bucketColumn(txType)
	bucket := models.YearHistory{UserID: userID, Month: month, Year: year}
	if txType == models.TransactionTypeExpense {
		bucket.Expense = amount
	} else {
		bucket.Income = amount
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column+" + ?", amount),
		}),
	}).Create(&bucket).Error
	if err != nil {
		return fmt.Errorf("failed to upsert year bucket: %w", err)
	}
	return nil
}

// AddToMonthBucket applies a signed delta to an existing bucket. Buckets are
// signed deltas, no floor is enforced.
func (r *transactionRepository) AddToMonthBucket(userID uint, day, month, year int, txType string, delta float64) error {
	column := bucketColumn(txType)
	result := r.db.Model(&models.MonthHistory{}).
		Where("user_id = ? AND day = ? AND month = ? AND year = ?", userID, day, month, year).
		Update(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust month bucket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBucketNotFound
	}
	return nil
}

// AddToYearBucket mirrors AddToMonthBucket for the per-month aggregate.
func (r *transactionRepository) AddToYearBucket(userID uint, month, year int, txType string, delta float64) error {
	column := bucketColumn(txType)
	result := r.db.Model(&models.YearHistory{}).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Update(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust year bucket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBucketNotFound
	}
	return nil
}

func (r *transactionRepository) AdjustAccountBalance(userID uint, accountID string, delta float64) error {
	result := r.db.Model(&models.Account{}).
		Where("user_id = ? AND id = ?", userID, accountID).
		Update("amount", gorm.Expr("amount + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *transactionRepository) ExecuteInTransaction(fn func(JournalWriter) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&transactionRepository{db: tx})
	})
}
