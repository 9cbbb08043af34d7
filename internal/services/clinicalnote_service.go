package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/apperr"
	"github.com/smartclin/clinic-api/internal/models"
	"github.com/smartclin/clinic-api/internal/rbac"
	"github.com/smartclin/clinic-api/internal/repository"
	"github.com/smartclin/clinic-api/internal/validation"
)

// ClinicalNoteStore is the storage surface the clinical note service needs
type ClinicalNoteStore interface {
	Create(ctx context.Context, note *models.ClinicalNote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ClinicalNote, error)
	List(ctx context.Context, filter repository.ClinicalNoteFilter) ([]models.ClinicalNote, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit int, newestFirst bool) ([]models.ClinicalNote, error)
	Update(ctx context.Context, note *models.ClinicalNote) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClinicalNoteService handles SOAP note procedures. Notes are owned by their
// author: doctor-role callers see and mutate only their own notes.
type ClinicalNoteService struct {
	notes ClinicalNoteStore
}

// NewClinicalNoteService creates a new clinical note service
func NewClinicalNoteService(notes ClinicalNoteStore) *ClinicalNoteService {
	return &ClinicalNoteService{notes: notes}
}

func (s *ClinicalNoteService) checkOwnership(actor *models.User, note *models.ClinicalNote, verb string) error {
	if actor.Role == rbac.RoleDoctor && note.AuthorID != actor.ID {
		return apperr.Forbidden("can only " + verb + " your own notes")
	}
	return nil
}

// CreateClinicalNoteInput is the clinicalNote.create schema
type CreateClinicalNoteInput struct {
	PatientID      uuid.UUID          `json:"patient_id" validate:"required"`
	AppointmentID  *uuid.UUID         `json:"appointment_id"`
	Subjective     string             `json:"subjective"`
	Objective      string             `json:"objective"`
	Assessment     string             `json:"assessment"`
	Plan           string             `json:"plan"`
	VitalSigns     *models.VitalSigns `json:"vital_signs"`
	IsConfidential bool               `json:"is_confidential"`
}

// Create validates input, stamps the author and persists the note
func (s *ClinicalNoteService) Create(ctx context.Context, actor *models.User, input CreateClinicalNoteInput) (*models.ClinicalNote, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	note := &models.ClinicalNote{
		PatientID:      input.PatientID,
		AppointmentID:  input.AppointmentID,
		AuthorID:       actor.ID,
		Subjective:     input.Subjective,
		Objective:      input.Objective,
		Assessment:     input.Assessment,
		Plan:           input.Plan,
		VitalSigns:     input.VitalSigns,
		IsConfidential: input.IsConfidential,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListClinicalNotesInput is the clinicalNote.list schema
type ListClinicalNotesInput struct {
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
	PatientID *uuid.UUID `json:"patient_id"`
}

// List returns a page of notes. Doctor-role callers are silently narrowed to
// notes they authored.
func (s *ClinicalNoteService) List(ctx context.Context, actor *models.User, input ListClinicalNotesInput) (*ListResult[models.ClinicalNote], error) {
	page, limit := normalizePage(input.Page, input.Limit)

	var authorID *uuid.UUID
	if actor.Role == rbac.RoleDoctor {
		authorID = &actor.ID
	}

	notes, err := s.notes.List(ctx, repository.ClinicalNoteFilter{
		PatientID: input.PatientID,
		AuthorID:  authorID,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListResult[models.ClinicalNote]{
		Data:       notes,
		Pagination: Pagination{Page: page, Limit: limit},
	}, nil
}

// GetByID returns a note; NOT_FOUND for absent ids precedes the ownership
// comparison
func (s *ClinicalNoteService) GetByID(ctx context.Context, actor *models.User, id uuid.UUID) (*models.ClinicalNote, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "clinical note not found")
	}
	if err := s.checkOwnership(actor, note, "view"); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateClinicalNoteInput is the clinicalNote.update schema; nil fields stay
// untouched
type UpdateClinicalNoteInput struct {
	Subjective     *string            `json:"subjective"`
	Objective      *string            `json:"objective"`
	Assessment     *string            `json:"assessment"`
	Plan           *string            `json:"plan"`
	VitalSigns     *models.VitalSigns `json:"vital_signs"`
	IsConfidential *bool              `json:"is_confidential"`
}

// Update merges partial fields after the ownership check passes
func (s *ClinicalNoteService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateClinicalNoteInput) (*models.ClinicalNote, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "clinical note not found")
	}
	if err := s.checkOwnership(actor, note, "update"); err != nil {
		return nil, err
	}

	if input.Subjective != nil {
		note.Subjective = *input.Subjective
	}
	if input.Objective != nil {
		note.Objective = *input.Objective
	}
	if input.Assessment != nil {
		note.Assessment = *input.Assessment
	}
	if input.Plan != nil {
		note.Plan = *input.Plan
	}
	if input.VitalSigns != nil {
		note.VitalSigns = input.VitalSigns
	}
	if input.IsConfidential != nil {
		note.IsConfidential = *input.IsConfidential
	}

	note.UpdatedAt = time.Now().UTC()

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes a note after the ownership check and returns its prior state
func (s *ClinicalNoteService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) (*models.ClinicalNote, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "clinical note not found")
	}
	if err := s.checkOwnership(actor, note, "delete"); err != nil {
		return nil, err
	}

	if err := s.notes.Delete(ctx, id); err != nil {
		return nil, err
	}
	return note, nil
}

// GetGrowthChartData returns the chronological height/weight series for a
// patient, skipping notes without growth measurements
func (s *ClinicalNoteService) GetGrowthChartData(ctx context.Context, actor *models.User, patientID uuid.UUID) ([]models.GrowthPoint, error) {
	notes, err := s.notes.ListByPatient(ctx, patientID, 0, false)
	if err != nil {
		return nil, err
	}

	points := []models.GrowthPoint{}
	for _, note := range notes {
		vs := note.VitalSigns
		if vs == nil || (vs.Height == 0 && vs.Weight == 0) {
			continue
		}
		points = append(points, models.GrowthPoint{
			Date:   note.CreatedAt,
			Height: vs.Height,
			Weight: vs.Weight,
			BMI:    vs.BMI,
		})
	}
	return points, nil
}
