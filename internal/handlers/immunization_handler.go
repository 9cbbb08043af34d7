package handlers

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/rpc"
	"github.com/smartclin/clinic-api/internal/services"
)

// ImmunizationHandler exposes immunization procedures
type ImmunizationHandler struct {
	immunizations *services.ImmunizationService
}

// NewImmunizationHandler creates a new immunization handler
func NewImmunizationHandler(immunizations *services.ImmunizationService) *ImmunizationHandler {
	return &ImmunizationHandler{immunizations: immunizations}
}

// Register adds the immunization procedures to the registry
func (h *ImmunizationHandler) Register(r *rpc.Registry) {
	r.Register("immunization.create", rpc.TierDoctor, h.create)
	r.Register("immunization.list", rpc.TierDoctor, h.list)
	r.Register("immunization.getById", rpc.TierDoctor, h.getByID)
	r.Register("immunization.update", rpc.TierDoctor, h.update)
	r.Register("immunization.delete", rpc.TierDoctor, h.delete)
	r.Register("immunization.getVaccinationSchedule", rpc.TierDoctor, h.getVaccinationSchedule)
	r.Register("immunization.getOverdueVaccinations", rpc.TierDoctor, h.getOverdueVaccinations)
	r.Register("immunization.getVaccineCoverage", rpc.TierDoctor, h.getVaccineCoverage)
}

func (h *ImmunizationHandler) create(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.CreateImmunizationInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.immunizations.Create(ctx, actorFrom(ctx), in)
}

func (h *ImmunizationHandler) list(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.ListImmunizationsInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.immunizations.List(ctx, actorFrom(ctx), in)
}

func (h *ImmunizationHandler) getByID(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.immunizations.GetByID(ctx, actorFrom(ctx), id)
}

func (h *ImmunizationHandler) update(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in struct {
		ID uuid.UUID `json:"id"`
		services.UpdateImmunizationInput
	}
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	if in.ID == uuid.Nil {
		return nil, errIDRequired()
	}
	return h.immunizations.Update(ctx, actorFrom(ctx), in.ID, in.UpdateImmunizationInput)
}

func (h *ImmunizationHandler) delete(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.immunizations.Delete(ctx, actorFrom(ctx), id)
}

func (h *ImmunizationHandler) getVaccinationSchedule(ctx context.Context, input json.RawMessage) (interface{}, error) {
	patientID, err := decodePatientID(input)
	if err != nil {
		return nil, err
	}
	return h.immunizations.GetVaccinationSchedule(ctx, actorFrom(ctx), patientID)
}

func (h *ImmunizationHandler) getOverdueVaccinations(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.OverdueVaccinationsInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.immunizations.GetOverdueVaccinations(ctx, actorFrom(ctx), in)
}

func (h *ImmunizationHandler) getVaccineCoverage(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.VaccineCoverageInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.immunizations.GetVaccineCoverage(ctx, actorFrom(ctx), in)
}
