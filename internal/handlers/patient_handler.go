package handlers

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/rpc"
	"github.com/smartclin/clinic-api/internal/services"
)

// PatientHandler exposes patient procedures
type PatientHandler struct {
	patients *services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patients *services.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// Register adds the patient procedures to the registry
func (h *PatientHandler) Register(r *rpc.Registry) {
	r.Register("patient.create", rpc.TierDoctor, h.create)
	r.Register("patient.list", rpc.TierProtected, h.list)
	r.Register("patient.getById", rpc.TierProtected, h.getByID)
	r.Register("patient.update", rpc.TierDoctor, h.update)
	r.Register("patient.delete", rpc.TierAdmin, h.delete)
	r.Register("patient.getMedicalHistory", rpc.TierDoctor, h.getMedicalHistory)
	r.Register("patient.getAllergies", rpc.TierDoctor, h.getAllergies)
	r.Register("patient.getPediatricStats", rpc.TierDoctor, h.getPediatricStats)
}

func (h *PatientHandler) create(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.CreatePatientInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.patients.Create(ctx, actorFrom(ctx), in)
}

func (h *PatientHandler) list(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.ListPatientsInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.patients.List(ctx, actorFrom(ctx), in)
}

func (h *PatientHandler) getByID(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.patients.GetByID(ctx, actorFrom(ctx), id)
}

func (h *PatientHandler) update(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in struct {
		ID uuid.UUID `json:"id"`
		services.UpdatePatientInput
	}
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	if in.ID == uuid.Nil {
		return nil, errIDRequired()
	}
	return h.patients.Update(ctx, actorFrom(ctx), in.ID, in.UpdatePatientInput)
}

func (h *PatientHandler) delete(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.patients.Delete(ctx, actorFrom(ctx), id)
}

func (h *PatientHandler) getMedicalHistory(ctx context.Context, input json.RawMessage) (interface{}, error) {
	patientID, err := decodePatientID(input)
	if err != nil {
		return nil, err
	}
	return h.patients.GetMedicalHistory(ctx, actorFrom(ctx), patientID)
}

func (h *PatientHandler) getAllergies(ctx context.Context, input json.RawMessage) (interface{}, error) {
	patientID, err := decodePatientID(input)
	if err != nil {
		return nil, err
	}
	return h.patients.GetAllergies(ctx, actorFrom(ctx), patientID)
}

func (h *PatientHandler) getPediatricStats(ctx context.Context, input json.RawMessage) (interface{}, error) {
	patientID, err := decodePatientID(input)
	if err != nil {
		return nil, err
	}
	return h.patients.GetPediatricStats(ctx, actorFrom(ctx), patientID)
}
