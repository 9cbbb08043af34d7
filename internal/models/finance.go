package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType separates money coming in from money going out
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionOutflow TransactionType = "outflow"
)

// ExpenseCategory buckets transactions for reporting and budgeting
type ExpenseCategory string

const (
	CategoryConsultation ExpenseCategory = "consultation"
	CategoryMedication   ExpenseCategory = "medication"
	CategoryLaboratory   ExpenseCategory = "laboratory"
	CategoryImaging      ExpenseCategory = "imaging"
	CategoryProcedure    ExpenseCategory = "procedure"
	CategorySupplies     ExpenseCategory = "supplies"
	CategoryEquipment    ExpenseCategory = "equipment"
	CategoryRent         ExpenseCategory = "rent"
	CategoryUtilities    ExpenseCategory = "utilities"
	CategorySalaries     ExpenseCategory = "salaries"
	CategoryInsurance    ExpenseCategory = "insurance"
	CategoryOther        ExpenseCategory = "other"
)

// Expense status values
const (
	ExpensePending   = "pending"
	ExpenseCompleted = "completed"
	ExpenseFailed    = "failed"
)

// Expense is a financial transaction, income or outflow
type Expense struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Type     TransactionType `gorm:"type:varchar(10);not null;index" json:"type"`
	Category ExpenseCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	Amount   float64         `gorm:"type:numeric(10,2);not null" json:"amount"`

	Description     string    `gorm:"type:text;not null" json:"description"`
	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`
	ReferenceNumber string    `gorm:"type:varchar(100)" json:"reference_number,omitempty"`

	PatientID     *uuid.UUID `gorm:"type:uuid" json:"patient_id,omitempty"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id,omitempty"`

	PaymentMethod string `gorm:"type:varchar(30)" json:"payment_method,omitempty"` // cash, card, insurance, bank transfer
	Status        string `gorm:"type:varchar(20);default:completed" json:"status"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
}

// TableName overrides the table name
func (Expense) TableName() string {
	return "expenses"
}

// BeforeCreate hook
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Budget is an allocation for a category within a fiscal year. One row per
// category/year pair.
type Budget struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Category        ExpenseCategory `gorm:"type:varchar(30);not null;uniqueIndex:idx_budgets_category_year" json:"category"`
	FiscalYear      int             `gorm:"not null;uniqueIndex:idx_budgets_category_year" json:"fiscal_year"`
	AllocatedAmount float64         `gorm:"type:numeric(10,2);not null" json:"allocated_amount"`
	SpentAmount     float64         `gorm:"type:numeric(10,2);default:0" json:"spent_amount"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
}

// TableName overrides the table name
func (Budget) TableName() string {
	return "budgets"
}

// BeforeCreate hook
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// FinancialSummary aggregates completed transactions over a period
type FinancialSummary struct {
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	IncomeByCategory   map[string]float64 `json:"income_by_category"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
}

// BudgetUtilization reports allocated vs spent for a fiscal year
type BudgetUtilization struct {
	TotalAllocated  float64                     `json:"total_allocated"`
	TotalSpent      float64                     `json:"total_spent"`
	Remaining       float64                     `json:"remaining"`
	UtilizationRate float64                     `json:"utilization_rate"`
	ByCategory      []BudgetCategoryUtilization `json:"by_category"`
}

// BudgetCategoryUtilization is the per-category slice of a utilization report
type BudgetCategoryUtilization struct {
	Category        ExpenseCategory `json:"category"`
	Allocated       float64         `json:"allocated"`
	Spent           float64         `json:"spent"`
	Remaining       float64         `json:"remaining"`
	UtilizationRate float64         `json:"utilization_rate"`
}
