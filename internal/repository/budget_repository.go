package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"gorm.io/gorm"
)

// BudgetRepository handles budget database operations
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// BudgetFilter narrows List results. A zero FiscalYear means no constraint.
type BudgetFilter struct {
	FiscalYear int
	Page       int
	Limit      int
}

// Create persists a new budget
func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	if err := r.db.WithContext(ctx).Create(budget).Error; err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// GetByID retrieves a budget by ID
func (r *BudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&budget).Error; err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// List retrieves budgets matching the filter, newest fiscal year first
func (r *BudgetRepository) List(ctx context.Context, filter BudgetFilter) ([]models.Budget, error) {
	query := r.db.WithContext(ctx).Model(&models.Budget{})

	if filter.FiscalYear != 0 {
		query = query.Where("fiscal_year = ?", filter.FiscalYear)
	}

	var budgets []models.Budget
	if err := query.
		Order("fiscal_year DESC, category DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	return budgets, nil
}

// ListByFiscalYear retrieves all budgets for one fiscal year by category
func (r *BudgetRepository) ListByFiscalYear(ctx context.Context, fiscalYear int) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.WithContext(ctx).
		Where("fiscal_year = ?", fiscalYear).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list budgets by fiscal year: %w", err)
	}
	return budgets, nil
}

// Update saves the full budget record
func (r *BudgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	if err := r.db.WithContext(ctx).Save(budget).Error; err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

// Delete removes a budget
func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Budget{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
