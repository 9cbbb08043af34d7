package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"github.com/smartclin/clinic-api/internal/repository"
	"github.com/smartclin/clinic-api/internal/validation"
)

// PatientStore is the storage surface the patient service needs
type PatientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	List(ctx context.Context, filter repository.PatientFilter) ([]models.Patient, int64, error)
	ListMedicalHistory(ctx context.Context, patientID uuid.UUID) ([]models.MedicalHistory, error)
	ListActiveAllergies(ctx context.Context, patientID uuid.UUID) ([]models.PatientAllergy, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NoteReader is the slice of note storage the patient service reads growth
// observations from
type NoteReader interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit int, newestFirst bool) ([]models.ClinicalNote, error)
}

// PatientService handles patient procedures
type PatientService struct {
	patients PatientStore
	notes    NoteReader
}

// NewPatientService creates a new patient service
func NewPatientService(patients PatientStore, notes NoteReader) *PatientService {
	return &PatientService{patients: patients, notes: notes}
}

// CreatePatientInput is the patient.create schema
type CreatePatientInput struct {
	MedicalRecordNumber string    `json:"medical_record_number" validate:"required,mrn"`
	FirstName           string    `json:"first_name" validate:"required"`
	LastName            string    `json:"last_name" validate:"required"`
	DateOfBirth         time.Time `json:"date_of_birth" validate:"required,past_date"`
	Gender              string    `json:"gender" validate:"required,oneof=male female other prefer-not-to-say"`
	BloodType           string    `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email" validate:"omitempty,email"`
	Address             string    `json:"address"`

	EmergencyContactName     string `json:"emergency_contact_name"`
	EmergencyContactPhone    string `json:"emergency_contact_phone"`
	EmergencyContactRelation string `json:"emergency_contact_relation"`

	InsuranceProvider     string `json:"insurance_provider"`
	InsurancePolicyNumber string `json:"insurance_policy_number"`

	Allergies             []string `json:"allergies"`
	CurrentMedications    []string `json:"current_medications"`
	PreExistingConditions []string `json:"pre_existing_conditions"`

	Notes string `json:"notes"`
}

// Create validates input, stamps the acting user and persists the patient
func (s *PatientService) Create(ctx context.Context, actor *models.User, input CreatePatientInput) (*models.Patient, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	patient := &models.Patient{
		MedicalRecordNumber:      input.MedicalRecordNumber,
		FirstName:                input.FirstName,
		LastName:                 input.LastName,
		DateOfBirth:              input.DateOfBirth,
		Gender:                   input.Gender,
		BloodType:                input.BloodType,
		Phone:                    input.Phone,
		Email:                    input.Email,
		Address:                  input.Address,
		EmergencyContactName:     input.EmergencyContactName,
		EmergencyContactPhone:    input.EmergencyContactPhone,
		EmergencyContactRelation: input.EmergencyContactRelation,
		InsuranceProvider:        input.InsuranceProvider,
		InsurancePolicyNumber:    input.InsurancePolicyNumber,
		Allergies:                input.Allergies,
		CurrentMedications:       input.CurrentMedications,
		PreExistingConditions:    input.PreExistingConditions,
		Notes:                    input.Notes,
		IsActive:                 true,
		CreatedBy:                &actor.ID,
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// ListPatientsInput is the patient.list schema
type ListPatientsInput struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Search   string `json:"search"`
	IsActive *bool  `json:"is_active"`
}

// List returns a page of patients with the unpaged total
func (s *PatientService) List(ctx context.Context, actor *models.User, input ListPatientsInput) (*ListResult[models.Patient], error) {
	page, limit := normalizePage(input.Page, input.Limit)

	patients, total, err := s.patients.List(ctx, repository.PatientFilter{
		Search:   input.Search,
		IsActive: input.IsActive,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ListResult[models.Patient]{
		Data:       patients,
		Pagination: Pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	}, nil
}

// GetByID returns a patient or NOT_FOUND
func (s *PatientService) GetByID(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "patient not found")
	}
	return patient, nil
}

// UpdatePatientInput is the patient.update schema; nil fields stay untouched
type UpdatePatientInput struct {
	FirstName             *string    `json:"first_name"`
	LastName              *string    `json:"last_name"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	Gender                *string    `json:"gender" validate:"omitempty,oneof=male female other prefer-not-to-say"`
	BloodType             *string    `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Phone                 *string    `json:"phone"`
	Email                 *string    `json:"email" validate:"omitempty,email"`
	Address               *string    `json:"address"`
	EmergencyContactName  *string    `json:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone"`
	InsuranceProvider     *string    `json:"insurance_provider"`
	InsurancePolicyNumber *string    `json:"insurance_policy_number"`
	Allergies             []string   `json:"allergies"`
	CurrentMedications    []string   `json:"current_medications"`
	Notes                 *string    `json:"notes"`
	IsActive              *bool      `json:"is_active"`
}

// Update merges partial fields into the patient and stamps the acting user
func (s *PatientService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdatePatientInput) (*models.Patient, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "patient not found")
	}

	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = *input.DateOfBirth
	}
	if input.Gender != nil {
		patient.Gender = *input.Gender
	}
	if input.BloodType != nil {
		patient.BloodType = *input.BloodType
	}
	if input.Phone != nil {
		patient.Phone = *input.Phone
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}
	if input.Address != nil {
		patient.Address = *input.Address
	}
	if input.EmergencyContactName != nil {
		patient.EmergencyContactName = *input.EmergencyContactName
	}
	if input.EmergencyContactPhone != nil {
		patient.EmergencyContactPhone = *input.EmergencyContactPhone
	}
	if input.InsuranceProvider != nil {
		patient.InsuranceProvider = *input.InsuranceProvider
	}
	if input.InsurancePolicyNumber != nil {
		patient.InsurancePolicyNumber = *input.InsurancePolicyNumber
	}
	if input.Allergies != nil {
		patient.Allergies = input.Allergies
	}
	if input.CurrentMedications != nil {
		patient.CurrentMedications = input.CurrentMedications
	}
	if input.Notes != nil {
		patient.Notes = *input.Notes
	}
	if input.IsActive != nil {
		patient.IsActive = *input.IsActive
	}

	patient.UpdatedBy = &actor.ID
	patient.UpdatedAt = time.Now().UTC()

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Delete removes a patient and returns its prior state
func (s *PatientService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "patient not found")
	}

	if err := s.patients.Delete(ctx, id); err != nil {
		return nil, err
	}
	return patient, nil
}

// PediatricStats is the patient.getPediatricStats result
type PediatricStats struct {
	GrowthData   []models.GrowthPoint `json:"growth_data"`
	LatestVitals *models.VitalSigns   `json:"latest_vitals,omitempty"`
}

// GetMedicalHistory lists a patient's diagnosed conditions, most recent
// diagnosis first. An unknown patient yields an empty chart, not an error.
func (s *PatientService) GetMedicalHistory(ctx context.Context, actor *models.User, patientID uuid.UUID) ([]models.MedicalHistory, error) {
	return s.patients.ListMedicalHistory(ctx, patientID)
}

// GetAllergies lists a patient's active allergies; resolved entries are
// filtered out
func (s *PatientService) GetAllergies(ctx context.Context, actor *models.User, patientID uuid.UUID) ([]models.PatientAllergy, error) {
	return s.patients.ListActiveAllergies(ctx, patientID)
}

// GetPediatricStats derives growth tracking data from the patient's most
// recent clinical-note vitals
func (s *PatientService) GetPediatricStats(ctx context.Context, actor *models.User, patientID uuid.UUID) (*PediatricStats, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, orNotFound(err, "patient not found")
	}

	notes, err := s.notes.ListByPatient(ctx, patientID, 10, true)
	if err != nil {
		return nil, err
	}

	stats := &PediatricStats{GrowthData: []models.GrowthPoint{}}
	for _, note := range notes {
		vs := note.VitalSigns
		if vs == nil || (vs.Height == 0 && vs.Weight == 0) {
			continue
		}
		stats.GrowthData = append(stats.GrowthData, models.GrowthPoint{
			Date:   note.CreatedAt,
			Height: vs.Height,
			Weight: vs.Weight,
			BMI:    vs.BMI,
		})
	}
	if len(notes) > 0 {
		stats.LatestVitals = notes[0].VitalSigns
	}

	return stats, nil
}
