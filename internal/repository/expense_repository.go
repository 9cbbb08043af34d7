package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"gorm.io/gorm"
)

// ExpenseRepository handles expense database operations
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// ExpenseFilter narrows List results. Zero values mean no constraint.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      models.TransactionType
	Category  models.ExpenseCategory
	Page      int
	Limit     int
}

// Create persists a new expense
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

// List retrieves expenses matching the filter, most recent first
func (r *ExpenseRepository) List(ctx context.Context, filter ExpenseFilter) ([]models.Expense, error) {
	query := r.db.WithContext(ctx).Model(&models.Expense{})

	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("transaction_date BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var expenses []models.Expense
	if err := query.
		Order("transaction_date DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, nil
}

// ListCompletedBetween retrieves completed transactions in a date range,
// the input for financial summaries
func (r *ExpenseRepository) ListCompletedBetween(ctx context.Context, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.WithContext(ctx).
		Where("transaction_date BETWEEN ? AND ? AND status = ?", start, end, models.ExpenseCompleted).
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed expenses: %w", err)
	}
	return expenses, nil
}

// Update saves the full expense record
func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	if err := r.db.WithContext(ctx).Save(expense).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Expense{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
