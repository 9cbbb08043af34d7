package handlers

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/rpc"
	"github.com/smartclin/clinic-api/internal/services"
)

// BudgetHandler exposes budget procedures
type BudgetHandler struct {
	budgets *services.BudgetService
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgets *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

// Register adds the budget procedures to the registry
func (h *BudgetHandler) Register(r *rpc.Registry) {
	r.Register("budget.create", rpc.TierAdmin, h.create)
	r.Register("budget.list", rpc.TierProtected, h.list)
	r.Register("budget.getById", rpc.TierProtected, h.getByID)
	r.Register("budget.getByFiscalYear", rpc.TierProtected, h.getByFiscalYear)
	r.Register("budget.update", rpc.TierAdmin, h.update)
	r.Register("budget.delete", rpc.TierAdmin, h.delete)
	r.Register("budget.getBudgetUtilization", rpc.TierAdmin, h.getBudgetUtilization)
}

func (h *BudgetHandler) create(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.CreateBudgetInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.budgets.Create(ctx, actorFrom(ctx), in)
}

func (h *BudgetHandler) list(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.ListBudgetsInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.budgets.List(ctx, actorFrom(ctx), in)
}

func (h *BudgetHandler) getByID(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.budgets.GetByID(ctx, actorFrom(ctx), id)
}

func (h *BudgetHandler) getByFiscalYear(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.FiscalYearInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.budgets.GetByFiscalYear(ctx, actorFrom(ctx), in)
}

func (h *BudgetHandler) update(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in struct {
		ID uuid.UUID `json:"id"`
		services.UpdateBudgetInput
	}
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	if in.ID == uuid.Nil {
		return nil, errIDRequired()
	}
	return h.budgets.Update(ctx, actorFrom(ctx), in.ID, in.UpdateBudgetInput)
}

func (h *BudgetHandler) delete(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.budgets.Delete(ctx, actorFrom(ctx), id)
}

func (h *BudgetHandler) getBudgetUtilization(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.FiscalYearInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.budgets.GetBudgetUtilization(ctx, actorFrom(ctx), in)
}
