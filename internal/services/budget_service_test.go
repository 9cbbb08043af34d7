package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/apperr"
	"github.com/smartclin/clinic-api/internal/models"
	"github.com/smartclin/clinic-api/internal/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBudget(store *fakeBudgetStore, category models.ExpenseCategory, year int, allocated, spent float64) *models.Budget {
	b := &models.Budget{
		ID:              uuid.New(),
		Category:        category,
		FiscalYear:      year,
		AllocatedAmount: allocated,
		SpentAmount:     spent,
	}
	store.budgets[b.ID] = b
	return b
}

func TestBudgetCreate(t *testing.T) {
	store := newFakeBudgetStore()
	svc := NewBudgetService(store)
	admin := actor(rbac.RoleAdmin)

	created, err := svc.Create(context.Background(), admin, CreateBudgetInput{
		Category:        "supplies",
		FiscalYear:      2026,
		AllocatedAmount: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategorySupplies, created.Category)
	assert.Equal(t, 2026, created.FiscalYear)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, admin.ID, *created.CreatedBy)
}

func TestBudgetCreateValidation(t *testing.T) {
	svc := NewBudgetService(newFakeBudgetStore())
	admin := actor(rbac.RoleAdmin)

	_, err := svc.Create(context.Background(), admin, CreateBudgetInput{
		Category: "supplies", FiscalYear: 2026, AllocatedAmount: 0,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(context.Background(), admin, CreateBudgetInput{
		Category: "supplies", FiscalYear: 1926, AllocatedAmount: 100,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(context.Background(), admin, CreateBudgetInput{
		Category: "snacks", FiscalYear: 2026, AllocatedAmount: 100,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestBudgetUpdateKeepsCategoryAndYear(t *testing.T) {
	store := newFakeBudgetStore()
	svc := NewBudgetService(store)
	b := seedBudget(store, models.CategoryRent, 2026, 12000, 3000)

	allocated := 13000.0
	spent := 4000.0
	updated, err := svc.Update(context.Background(), actor(rbac.RoleAdmin), b.ID, UpdateBudgetInput{
		AllocatedAmount: &allocated,
		SpentAmount:     &spent,
	})
	require.NoError(t, err)
	assert.Equal(t, 13000.0, updated.AllocatedAmount)
	assert.Equal(t, 4000.0, updated.SpentAmount)
	assert.Equal(t, models.CategoryRent, updated.Category)
	assert.Equal(t, 2026, updated.FiscalYear)
}

func TestBudgetNotFound(t *testing.T) {
	svc := NewBudgetService(newFakeBudgetStore())

	_, err := svc.GetByID(context.Background(), actor(rbac.RoleMember), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	amount := 10.0
	_, err = svc.Update(context.Background(), actor(rbac.RoleAdmin), uuid.New(), UpdateBudgetInput{AllocatedAmount: &amount})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetByFiscalYear(t *testing.T) {
	store := newFakeBudgetStore()
	svc := NewBudgetService(store)
	seedBudget(store, models.CategorySupplies, 2026, 5000, 1000)
	seedBudget(store, models.CategoryRent, 2026, 12000, 6000)
	seedBudget(store, models.CategorySupplies, 2025, 4000, 4000)

	budgets, err := svc.GetByFiscalYear(context.Background(), actor(rbac.RoleMember), FiscalYearInput{FiscalYear: 2026})
	require.NoError(t, err)
	assert.Len(t, budgets, 2)

	_, err = svc.GetByFiscalYear(context.Background(), actor(rbac.RoleMember), FiscalYearInput{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestGetBudgetUtilization(t *testing.T) {
	store := newFakeBudgetStore()
	svc := NewBudgetService(store)
	seedBudget(store, models.CategorySupplies, 2026, 5000, 1000)
	seedBudget(store, models.CategoryRent, 2026, 12000, 6000)
	seedBudget(store, models.CategoryEquipment, 2026, 3000, 0)

	report, err := svc.GetBudgetUtilization(context.Background(), actor(rbac.RoleAdmin), FiscalYearInput{FiscalYear: 2026})
	require.NoError(t, err)
	assert.Equal(t, 20000.0, report.TotalAllocated)
	assert.Equal(t, 7000.0, report.TotalSpent)
	assert.Equal(t, 13000.0, report.Remaining)
	assert.InDelta(t, 0.35, report.UtilizationRate, 1e-9)
	require.Len(t, report.ByCategory, 3)

	for _, entry := range report.ByCategory {
		if entry.Category == models.CategoryRent {
			assert.Equal(t, 6000.0, entry.Spent)
			assert.InDelta(t, 0.5, entry.UtilizationRate, 1e-9)
		}
		if entry.Category == models.CategoryEquipment {
			assert.Zero(t, entry.UtilizationRate)
			assert.Equal(t, 3000.0, entry.Remaining)
		}
	}
}

func TestGetBudgetUtilizationEmptyYear(t *testing.T) {
	svc := NewBudgetService(newFakeBudgetStore())

	_, err := svc.GetBudgetUtilization(context.Background(), actor(rbac.RoleAdmin), FiscalYearInput{FiscalYear: 2031})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
