package handlers

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/apperr"
	"github.com/smartclin/clinic-api/internal/middleware"
	"github.com/smartclin/clinic-api/internal/models"
)

// decode unmarshals a procedure input body into dst
func decode(input json.RawMessage, dst interface{}) error {
	if err := json.Unmarshal(input, dst); err != nil {
		return apperr.Validation("malformed request body", err)
	}
	return nil
}

type idInput struct {
	ID uuid.UUID `json:"id"`
}

// decodeID reads the single-id input shared by getById/update/delete
func decodeID(input json.RawMessage) (uuid.UUID, error) {
	var in idInput
	if err := decode(input, &in); err != nil {
		return uuid.Nil, err
	}
	if in.ID == uuid.Nil {
		return uuid.Nil, errIDRequired()
	}
	return in.ID, nil
}

func errIDRequired() error {
	return apperr.Validation("id is required", nil)
}

type patientIDInput struct {
	PatientID uuid.UUID `json:"patient_id"`
}

// decodePatientID reads the per-patient input used by schedule and chart
// procedures
func decodePatientID(input json.RawMessage) (uuid.UUID, error) {
	var in patientIDInput
	if err := decode(input, &in); err != nil {
		return uuid.Nil, err
	}
	if in.PatientID == uuid.Nil {
		return uuid.Nil, apperr.Validation("patient_id is required", nil)
	}
	return in.PatientID, nil
}

// actorFrom returns the resolved caller. Nil only for public procedures;
// the gate rejects unauthenticated calls to every other tier before the
// handler runs.
func actorFrom(ctx context.Context) *models.User {
	user, _ := middleware.UserFrom(ctx)
	return user
}
