package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
)

// Request carries the fields of a category mutation.
type Request struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon"`
	Type string `json:"type" validate:"required,oneof=income expense"`
}

// Service manages the per-user category registry. Journal rows snapshot the
// category at write time, so registry edits never rewrite history.
type Service interface {
	Create(ctx context.Context, userID uint, req Request) (*models.Category, error)
	Update(ctx context.Context, userID uint, id uint, req Request) (*models.Category, error)
	Delete(ctx context.Context, userID uint, name, categoryType string) error
	List(ctx context.Context, userID uint, categoryType string) ([]models.Category, error)
}

type service struct {
	categories repositories.CategoryRepository
}

// NewService creates a new category service.
func NewService(categories repositories.CategoryRepository) Service {
	if categories == nil {
		panic("category repository is required")
	}
	return &service{categories: categories}
}

func (s *service) Create(ctx context.Context, userID uint, req Request) (*models.Category, error) {
	name, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Icon:   req.Icon,
		Type:   req.Type,
	}
	if err := s.categories.Create(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to create category")
		return nil, ErrOperationFailed
	}
	return category, nil
}

func (s *service) Update(ctx context.Context, userID uint, id uint, req Request) (*models.Category, error) {
	name, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	category.Name = name
	category.Icon = req.Icon
	category.Type = req.Type
	if err := s.categories.Update(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to update category")
		return nil, ErrOperationFailed
	}
	return category, nil
}

func (s *service) Delete(ctx context.Context, userID uint, name, categoryType string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if !models.IsValidTransactionType(categoryType) {
		return ErrInvalidType
	}

	err := s.categories.DeleteByNameAndType(userID, name, categoryType)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		logging.L().WithError(err).WithField("user_id", userID).Error("failed to delete category")
		return ErrOperationFailed
	}
	return nil
}

// List returns the user's categories, filtered by type when one is given.
func (s *service) List(ctx context.Context, userID uint, categoryType string) ([]models.Category, error) {
	if categoryType == "" {
		categories, err := s.categories.ListByUser(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		return categories, nil
	}

	if !models.IsValidTransactionType(categoryType) {
		return nil, ErrInvalidType
	}
	categories, err := s.categories.ListByUserAndType(userID, categoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func validateRequest(req Request) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", ErrInvalidName
	}
	if !models.IsValidTransactionType(req.Type) {
		return "", ErrInvalidType
	}
	return name, nil
}
