package handlers

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/rpc"
	"github.com/smartclin/clinic-api/internal/services"
)

// ClinicalNoteHandler exposes clinical note procedures
type ClinicalNoteHandler struct {
	notes *services.ClinicalNoteService
}

// NewClinicalNoteHandler creates a new clinical note handler
func NewClinicalNoteHandler(notes *services.ClinicalNoteService) *ClinicalNoteHandler {
	return &ClinicalNoteHandler{notes: notes}
}

// Register adds the clinical note procedures to the registry
func (h *ClinicalNoteHandler) Register(r *rpc.Registry) {
	r.Register("clinicalNote.create", rpc.TierDoctor, h.create)
	r.Register("clinicalNote.list", rpc.TierDoctor, h.list)
	r.Register("clinicalNote.getById", rpc.TierDoctor, h.getByID)
	r.Register("clinicalNote.update", rpc.TierDoctor, h.update)
	r.Register("clinicalNote.delete", rpc.TierDoctor, h.delete)
	r.Register("clinicalNote.getGrowthChartData", rpc.TierDoctor, h.getGrowthChartData)
}

func (h *ClinicalNoteHandler) create(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.CreateClinicalNoteInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.notes.Create(ctx, actorFrom(ctx), in)
}

func (h *ClinicalNoteHandler) list(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.ListClinicalNotesInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.notes.List(ctx, actorFrom(ctx), in)
}

func (h *ClinicalNoteHandler) getByID(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.notes.GetByID(ctx, actorFrom(ctx), id)
}

func (h *ClinicalNoteHandler) update(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in struct {
		ID uuid.UUID `json:"id"`
		services.UpdateClinicalNoteInput
	}
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	if in.ID == uuid.Nil {
		return nil, errIDRequired()
	}
	return h.notes.Update(ctx, actorFrom(ctx), in.ID, in.UpdateClinicalNoteInput)
}

func (h *ClinicalNoteHandler) delete(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.notes.Delete(ctx, actorFrom(ctx), id)
}

func (h *ClinicalNoteHandler) getGrowthChartData(ctx context.Context, input json.RawMessage) (interface{}, error) {
	patientID, err := decodePatientID(input)
	if err != nil {
		return nil, err
	}
	return h.notes.GetGrowthChartData(ctx, actorFrom(ctx), patientID)
}
