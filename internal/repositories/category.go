package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	// GetByName resolves a category by its full (name, type) identity, the
	// lookup the journal uses when snapshotting.
	GetByName(userID uint, name, categoryType string) (*models.Category, error)
	GetByID(userID uint, id uint) (*models.Category, error)
	ListByUser(userID uint) ([]models.Category, error)
	ListByUserAndType(userID uint, categoryType string) ([]models.Category, error)
	Update(category *models.Category) error
	DeleteByNameAndType(userID uint, name, categoryType string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByName(userID uint, name, categoryType string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByID(userID uint, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) ListByUser(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) ListByUserAndType(userID uint, categoryType string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("user_id = ? AND type = ?", userID, categoryType).
		Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (r *categoryRepository) DeleteByNameAndType(userID uint, name, categoryType string) error {
	result := r.db.Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).
		Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
