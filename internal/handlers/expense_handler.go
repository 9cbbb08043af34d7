package handlers

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/rpc"
	"github.com/smartclin/clinic-api/internal/services"
)

// ExpenseHandler exposes expense procedures
type ExpenseHandler struct {
	expenses *services.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenses *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// Register adds the expense procedures to the registry
func (h *ExpenseHandler) Register(r *rpc.Registry) {
	r.Register("expense.create", rpc.TierStaff, h.create)
	r.Register("expense.list", rpc.TierProtected, h.list)
	r.Register("expense.getById", rpc.TierProtected, h.getByID)
	r.Register("expense.update", rpc.TierStaff, h.update)
	r.Register("expense.delete", rpc.TierAdmin, h.delete)
	r.Register("expense.getFinancialSummary", rpc.TierAdmin, h.getFinancialSummary)
}

func (h *ExpenseHandler) create(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.CreateExpenseInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.expenses.Create(ctx, actorFrom(ctx), in)
}

func (h *ExpenseHandler) list(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.ListExpensesInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.expenses.List(ctx, actorFrom(ctx), in)
}

func (h *ExpenseHandler) getByID(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.expenses.GetByID(ctx, actorFrom(ctx), id)
}

func (h *ExpenseHandler) update(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in struct {
		ID uuid.UUID `json:"id"`
		services.UpdateExpenseInput
	}
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	if in.ID == uuid.Nil {
		return nil, errIDRequired()
	}
	return h.expenses.Update(ctx, actorFrom(ctx), in.ID, in.UpdateExpenseInput)
}

func (h *ExpenseHandler) delete(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.expenses.Delete(ctx, actorFrom(ctx), id)
}

func (h *ExpenseHandler) getFinancialSummary(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.FinancialSummaryInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.expenses.GetFinancialSummary(ctx, actorFrom(ctx), in)
}
