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

// ExpenseStore is the storage surface the expense service needs
type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, filter repository.ExpenseFilter) ([]models.Expense, error)
	ListCompletedBetween(ctx context.Context, start, end time.Time) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseService handles financial transaction procedures
type ExpenseService struct {
	expenses ExpenseStore
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenses ExpenseStore) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

// CreateExpenseInput is the expense.create schema
type CreateExpenseInput struct {
	Type            string     `json:"type" validate:"required,oneof=income outflow"`
	Category        string     `json:"category" validate:"required,oneof=consultation medication laboratory imaging procedure supplies equipment rent utilities salaries insurance other"`
	Amount          float64    `json:"amount" validate:"required,gt=0"`
	Description     string     `json:"description" validate:"required"`
	TransactionDate time.Time  `json:"transaction_date" validate:"required"`
	ReferenceNumber string     `json:"reference_number"`
	PatientID       *uuid.UUID `json:"patient_id"`
	AppointmentID   *uuid.UUID `json:"appointment_id"`
	PaymentMethod   string     `json:"payment_method"`
	Status          string     `json:"status" validate:"omitempty,oneof=pending completed failed"`
}

// Create validates input and records a transaction
func (s *ExpenseService) Create(ctx context.Context, actor *models.User, input CreateExpenseInput) (*models.Expense, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.ExpenseCompleted
	}

	expense := &models.Expense{
		Type:            models.TransactionType(input.Type),
		Category:        models.ExpenseCategory(input.Category),
		Amount:          input.Amount,
		Description:     input.Description,
		TransactionDate: input.TransactionDate,
		ReferenceNumber: input.ReferenceNumber,
		PatientID:       input.PatientID,
		AppointmentID:   input.AppointmentID,
		PaymentMethod:   input.PaymentMethod,
		Status:          status,
		CreatedBy:       &actor.ID,
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesInput is the expense.list schema
type ListExpensesInput struct {
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Type      string     `json:"type" validate:"omitempty,oneof=income outflow"`
	Category  string     `json:"category" validate:"omitempty,oneof=consultation medication laboratory imaging procedure supplies equipment rent utilities salaries insurance other"`
}

// List returns a page of transactions, most recent first
func (s *ExpenseService) List(ctx context.Context, actor *models.User, input ListExpensesInput) (*ListResult[models.Expense], error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	page, limit := normalizePage(input.Page, input.Limit)

	expenses, err := s.expenses.List(ctx, repository.ExpenseFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Type:      models.TransactionType(input.Type),
		Category:  models.ExpenseCategory(input.Category),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListResult[models.Expense]{
		Data:       expenses,
		Pagination: Pagination{Page: page, Limit: limit},
	}, nil
}

// GetByID returns a transaction or NOT_FOUND
func (s *ExpenseService) GetByID(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "expense not found")
	}
	return expense, nil
}

// UpdateExpenseInput is the expense.update schema; nil fields stay untouched
type UpdateExpenseInput struct {
	Type            *string    `json:"type" validate:"omitempty,oneof=income outflow"`
	Category        *string    `json:"category" validate:"omitempty,oneof=consultation medication laboratory imaging procedure supplies equipment rent utilities salaries insurance other"`
	Amount          *float64   `json:"amount" validate:"omitempty,gt=0"`
	Description     *string    `json:"description"`
	TransactionDate *time.Time `json:"transaction_date"`
	ReferenceNumber *string    `json:"reference_number"`
	PaymentMethod   *string    `json:"payment_method"`
	Status          *string    `json:"status" validate:"omitempty,oneof=pending completed failed"`
}

// Update merges partial fields and stamps updatedAt
func (s *ExpenseService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateExpenseInput) (*models.Expense, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "expense not found")
	}

	if input.Type != nil {
		expense.Type = models.TransactionType(*input.Type)
	}
	if input.Category != nil {
		expense.Category = models.ExpenseCategory(*input.Category)
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Description != nil {
		if *input.Description == "" {
			return nil, apperr.Validation("description cannot be empty", nil)
		}
		expense.Description = *input.Description
	}
	if input.TransactionDate != nil {
		expense.TransactionDate = *input.TransactionDate
	}
	if input.ReferenceNumber != nil {
		expense.ReferenceNumber = *input.ReferenceNumber
	}
	if input.PaymentMethod != nil {
		expense.PaymentMethod = *input.PaymentMethod
	}
	if input.Status != nil {
		expense.Status = *input.Status
	}

	expense.UpdatedAt = time.Now().UTC()

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete removes a transaction and returns its prior state
func (s *ExpenseService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "expense not found")
	}

	if err := s.expenses.Delete(ctx, id); err != nil {
		return nil, err
	}
	return expense, nil
}

// FinancialSummaryInput is the expense.getFinancialSummary schema
type FinancialSummaryInput struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// GetFinancialSummary aggregates completed transactions over a period,
// splitting income from outflow and bucketing each by category
func (s *ExpenseService) GetFinancialSummary(ctx context.Context, actor *models.User, input FinancialSummaryInput) (*models.FinancialSummary, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperr.Validation("end date must not be before start date", nil)
	}

	expenses, err := s.expenses.ListCompletedBetween(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	summary := &models.FinancialSummary{
		IncomeByCategory:   map[string]float64{},
		ExpensesByCategory: map[string]float64{},
	}
	for _, e := range expenses {
		switch e.Type {
		case models.TransactionIncome:
			summary.TotalIncome += e.Amount
			summary.IncomeByCategory[string(e.Category)] += e.Amount
		case models.TransactionOutflow:
			summary.TotalExpenses += e.Amount
			summary.ExpensesByCategory[string(e.Category)] += e.Amount
		}
	}
	return summary, nil
}
