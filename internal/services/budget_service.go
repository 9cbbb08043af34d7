package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/apperr"
	"github.com/smartclin/clinic-api/internal/models"
	"github.com/smartclin/clinic-api/internal/repository"
	"github.com/smartclin/clinic-api/internal/validation"
)

// BudgetStore is the storage surface the budget service needs
type BudgetStore interface {
	Create(ctx context.Context, budget *models.Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Budget, error)
	List(ctx context.Context, filter repository.BudgetFilter) ([]models.Budget, error)
	ListByFiscalYear(ctx context.Context, fiscalYear int) ([]models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetService handles budget allocation procedures
type BudgetService struct {
	budgets BudgetStore
}

// NewBudgetService creates a new budget service
func NewBudgetService(budgets BudgetStore) *BudgetService {
	return &BudgetService{budgets: budgets}
}

// CreateBudgetInput is the budget.create schema
type CreateBudgetInput struct {
	Category        string  `json:"category" validate:"required,oneof=consultation medication laboratory imaging procedure supplies equipment rent utilities salaries insurance other"`
	FiscalYear      int     `json:"fiscal_year" validate:"required,min=2000,max=2100"`
	AllocatedAmount float64 `json:"allocated_amount" validate:"required,gt=0"`
	Notes           string  `json:"notes"`
}

// Create validates input and persists a category allocation
func (s *BudgetService) Create(ctx context.Context, actor *models.User, input CreateBudgetInput) (*models.Budget, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Category:        models.ExpenseCategory(input.Category),
		FiscalYear:      input.FiscalYear,
		AllocatedAmount: input.AllocatedAmount,
		Notes:           input.Notes,
		CreatedBy:       &actor.ID,
	}

	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// ListBudgetsInput is the budget.list schema
type ListBudgetsInput struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	FiscalYear int `json:"fiscal_year" validate:"omitempty,min=2000,max=2100"`
}

// List returns a page of budgets, newest fiscal year first
func (s *BudgetService) List(ctx context.Context, actor *models.User, input ListBudgetsInput) (*ListResult[models.Budget], error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	page, limit := normalizePage(input.Page, input.Limit)

	budgets, err := s.budgets.List(ctx, repository.BudgetFilter{
		FiscalYear: input.FiscalYear,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListResult[models.Budget]{
		Data:       budgets,
		Pagination: Pagination{Page: page, Limit: limit},
	}, nil
}

// GetByID returns a budget or NOT_FOUND
func (s *BudgetService) GetByID(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "budget not found")
	}
	return budget, nil
}

// FiscalYearInput identifies one fiscal year
type FiscalYearInput struct {
	FiscalYear int `json:"fiscal_year" validate:"required,min=2000,max=2100"`
}

// GetByFiscalYear returns every category allocation for one fiscal year
func (s *BudgetService) GetByFiscalYear(ctx context.Context, actor *models.User, input FiscalYearInput) ([]models.Budget, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	return s.budgets.ListByFiscalYear(ctx, input.FiscalYear)
}

// UpdateBudgetInput is the budget.update schema; nil fields stay untouched
type UpdateBudgetInput struct {
	AllocatedAmount *float64 `json:"allocated_amount" validate:"omitempty,gt=0"`
	SpentAmount     *float64 `json:"spent_amount" validate:"omitempty,gte=0"`
	Notes           *string  `json:"notes"`
}

// Update merges partial fields and stamps updatedAt. Category and fiscal
// year are immutable once created; delete and recreate to move an
// allocation.
func (s *BudgetService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateBudgetInput) (*models.Budget, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	budget, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "budget not found")
	}

	if input.AllocatedAmount != nil {
		budget.AllocatedAmount = *input.AllocatedAmount
	}
	if input.SpentAmount != nil {
		budget.SpentAmount = *input.SpentAmount
	}
	if input.Notes != nil {
		budget.Notes = *input.Notes
	}

	budget.UpdatedAt = time.Now().UTC()

	if err := s.budgets.Update(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Delete removes a budget and returns its prior state
func (s *BudgetService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "budget not found")
	}

	if err := s.budgets.Delete(ctx, id); err != nil {
		return nil, err
	}
	return budget, nil
}

// GetBudgetUtilization reports allocated vs spent across a fiscal year,
// totalled and broken down per category
func (s *BudgetService) GetBudgetUtilization(ctx context.Context, actor *models.User, input FiscalYearInput) (*models.BudgetUtilization, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	budgets, err := s.budgets.ListByFiscalYear(ctx, input.FiscalYear)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, apperr.NotFound("no budgets found for fiscal year")
	}

	report := &models.BudgetUtilization{
		ByCategory: make([]models.BudgetCategoryUtilization, 0, len(budgets)),
	}
	for _, b := range budgets {
		entry := models.BudgetCategoryUtilization{
			Category:  b.Category,
			Allocated: b.AllocatedAmount,
			Spent:     b.SpentAmount,
			Remaining: b.AllocatedAmount - b.SpentAmount,
		}
		if b.AllocatedAmount > 0 {
			entry.UtilizationRate = b.SpentAmount / b.AllocatedAmount
		}
		report.TotalAllocated += b.AllocatedAmount
		report.TotalSpent += b.SpentAmount
		report.ByCategory = append(report.ByCategory, entry)
	}
	report.Remaining = report.TotalAllocated - report.TotalSpent
	if report.TotalAllocated > 0 {
		report.UtilizationRate = report.TotalSpent / report.TotalAllocated
	}
	return report, nil
}
