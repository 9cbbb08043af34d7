package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"github.com/smartclin/clinic-api/internal/repository"
	"github.com/smartclin/clinic-api/internal/validation"
)

// ImmunizationStore is the storage surface the immunization service needs
type ImmunizationStore interface {
	Create(ctx context.Context, immunization *models.Immunization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Immunization, error)
	List(ctx context.Context, filter repository.ImmunizationFilter) ([]models.Immunization, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Immunization, error)
	ListOverdue(ctx context.Context, asOf time.Time, patientID *uuid.UUID) ([]models.Immunization, error)
	ListVaccineCoverage(ctx context.Context, vaccineName string) ([]models.VaccineCoverage, error)
	Update(ctx context.Context, immunization *models.Immunization) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImmunizationService handles immunization procedures. Dose records stamp
// who administered them but carry no ownership restriction; any doctor-tier
// caller can read and amend the clinic's vaccination history.
type ImmunizationService struct {
	immunizations ImmunizationStore
}

// NewImmunizationService creates a new immunization service
func NewImmunizationService(immunizations ImmunizationStore) *ImmunizationService {
	return &ImmunizationService{immunizations: immunizations}
}

// CreateImmunizationInput is the immunization.create schema
type CreateImmunizationInput struct {
	PatientID          uuid.UUID  `json:"patient_id" validate:"required"`
	VaccineName        string     `json:"vaccine_name" validate:"required"`
	VaccineCode        string     `json:"vaccine_code"`
	Manufacturer       string     `json:"manufacturer"`
	LotNumber          string     `json:"lot_number"`
	AdministrationDate time.Time  `json:"administration_date" validate:"required"`
	NextDueDate        *time.Time `json:"next_due_date"`
	Status             string     `json:"status" validate:"omitempty,oneof=administered scheduled overdue contraindicated"`
	AdministrationSite string     `json:"administration_site"`
	DoseNumber         int        `json:"dose_number" validate:"omitempty,min=1"`
	TotalDoses         int        `json:"total_doses" validate:"omitempty,min=1"`
	Reactions          string     `json:"reactions"`
	Notes              string     `json:"notes"`
}

// Create validates input, stamps the administering user and persists the dose
func (s *ImmunizationService) Create(ctx context.Context, actor *models.User, input CreateImmunizationInput) (*models.Immunization, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	status := models.ImmunizationStatus(input.Status)
	if status == "" {
		status = models.ImmunizationAdministered
	}
	doseNumber := input.DoseNumber
	if doseNumber == 0 {
		doseNumber = 1
	}
	totalDoses := input.TotalDoses
	if totalDoses == 0 {
		totalDoses = 1
	}

	immunization := &models.Immunization{
		PatientID:          input.PatientID,
		VaccineName:        input.VaccineName,
		VaccineCode:        input.VaccineCode,
		Manufacturer:       input.Manufacturer,
		LotNumber:          input.LotNumber,
		AdministrationDate: input.AdministrationDate,
		NextDueDate:        input.NextDueDate,
		Status:             status,
		AdministeredBy:     &actor.ID,
		AdministrationSite: input.AdministrationSite,
		DoseNumber:         doseNumber,
		TotalDoses:         totalDoses,
		Reactions:          input.Reactions,
		Notes:              input.Notes,
	}

	if err := s.immunizations.Create(ctx, immunization); err != nil {
		return nil, err
	}
	return immunization, nil
}

// ListImmunizationsInput is the immunization.list schema
type ListImmunizationsInput struct {
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
	PatientID *uuid.UUID `json:"patient_id"`
	Status    string     `json:"status" validate:"omitempty,oneof=administered scheduled overdue contraindicated"`
}

// List returns a page of immunizations
func (s *ImmunizationService) List(ctx context.Context, actor *models.User, input ListImmunizationsInput) (*ListResult[models.Immunization], error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	page, limit := normalizePage(input.Page, input.Limit)

	immunizations, err := s.immunizations.List(ctx, repository.ImmunizationFilter{
		PatientID: input.PatientID,
		Status:    models.ImmunizationStatus(input.Status),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListResult[models.Immunization]{
		Data:       immunizations,
		Pagination: Pagination{Page: page, Limit: limit},
	}, nil
}

// GetByID returns an immunization or NOT_FOUND
func (s *ImmunizationService) GetByID(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Immunization, error) {
	immunization, err := s.immunizations.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "immunization record not found")
	}
	return immunization, nil
}

// UpdateImmunizationInput is the immunization.update schema; nil fields stay
// untouched
type UpdateImmunizationInput struct {
	VaccineName        *string    `json:"vaccine_name"`
	VaccineCode        *string    `json:"vaccine_code"`
	Manufacturer       *string    `json:"manufacturer"`
	LotNumber          *string    `json:"lot_number"`
	AdministrationDate *time.Time `json:"administration_date"`
	NextDueDate        *time.Time `json:"next_due_date"`
	Status             *string    `json:"status" validate:"omitempty,oneof=administered scheduled overdue contraindicated"`
	AdministrationSite *string    `json:"administration_site"`
	DoseNumber         *int       `json:"dose_number" validate:"omitempty,min=1"`
	TotalDoses         *int       `json:"total_doses" validate:"omitempty,min=1"`
	Reactions          *string    `json:"reactions"`
	Notes              *string    `json:"notes"`
}

// Update merges partial fields and stamps updatedAt
func (s *ImmunizationService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateImmunizationInput) (*models.Immunization, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	immunization, err := s.immunizations.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "immunization record not found")
	}

	if input.VaccineName != nil {
		immunization.VaccineName = *input.VaccineName
	}
	if input.VaccineCode != nil {
		immunization.VaccineCode = *input.VaccineCode
	}
	if input.Manufacturer != nil {
		immunization.Manufacturer = *input.Manufacturer
	}
	if input.LotNumber != nil {
		immunization.LotNumber = *input.LotNumber
	}
	if input.AdministrationDate != nil {
		immunization.AdministrationDate = *input.AdministrationDate
	}
	if input.NextDueDate != nil {
		immunization.NextDueDate = input.NextDueDate
	}
	if input.Status != nil {
		immunization.Status = models.ImmunizationStatus(*input.Status)
	}
	if input.AdministrationSite != nil {
		immunization.AdministrationSite = *input.AdministrationSite
	}
	if input.DoseNumber != nil {
		immunization.DoseNumber = *input.DoseNumber
	}
	if input.TotalDoses != nil {
		immunization.TotalDoses = *input.TotalDoses
	}
	if input.Reactions != nil {
		immunization.Reactions = *input.Reactions
	}
	if input.Notes != nil {
		immunization.Notes = *input.Notes
	}

	immunization.UpdatedAt = time.Now().UTC()

	if err := s.immunizations.Update(ctx, immunization); err != nil {
		return nil, err
	}
	return immunization, nil
}

// Delete removes an immunization record and returns its prior state
func (s *ImmunizationService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Immunization, error) {
	immunization, err := s.immunizations.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "immunization record not found")
	}

	if err := s.immunizations.Delete(ctx, id); err != nil {
		return nil, err
	}
	return immunization, nil
}

// GetVaccinationSchedule returns a patient's doses in administration order
func (s *ImmunizationService) GetVaccinationSchedule(ctx context.Context, actor *models.User, patientID uuid.UUID) ([]models.Immunization, error) {
	return s.immunizations.ListByPatient(ctx, patientID)
}

// OverdueVaccinationsInput is the immunization.getOverdueVaccinations schema
type OverdueVaccinationsInput struct {
	PatientID *uuid.UUID `json:"patient_id"`
}

// GetOverdueVaccinations returns scheduled doses past their next due date
func (s *ImmunizationService) GetOverdueVaccinations(ctx context.Context, actor *models.User, input OverdueVaccinationsInput) ([]models.Immunization, error) {
	return s.immunizations.ListOverdue(ctx, time.Now(), input.PatientID)
}

// VaccineCoverageInput is the immunization.getVaccineCoverage schema
type VaccineCoverageInput struct {
	VaccineName string `json:"vaccine_name"`
}

// GetVaccineCoverage tallies administered doses per vaccine across the
// clinic, optionally narrowed to one vaccine
func (s *ImmunizationService) GetVaccineCoverage(ctx context.Context, actor *models.User, input VaccineCoverageInput) ([]models.VaccineCoverage, error) {
	return s.immunizations.ListVaccineCoverage(ctx, input.VaccineName)
}
