package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"gorm.io/gorm"
)

// PatientRepository handles patient database operations
type PatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// PatientFilter narrows List results. Zero values mean no constraint.
type PatientFilter struct {
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}

// Create persists a new patient
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetByID retrieves a patient by ID
func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error; err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// List retrieves patients matching the filter along with the unpaged total
func (r *PatientRepository) List(ctx context.Context, filter PatientFilter) ([]models.Patient, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Patient{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR medical_record_number ILIKE ? OR phone ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	var patients []models.Patient
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&patients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}

	return patients, total, nil
}

// ListMedicalHistory retrieves a patient's diagnosed conditions, most recent
// diagnosis first
func (r *PatientRepository) ListMedicalHistory(ctx context.Context, patientID uuid.UUID) ([]models.MedicalHistory, error) {
	var history []models.MedicalHistory
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("diagnosis_date DESC").
		Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to list medical history: %w", err)
	}
	return history, nil
}

// ListActiveAllergies retrieves a patient's active allergies
func (r *PatientRepository) ListActiveAllergies(ctx context.Context, patientID uuid.UUID) ([]models.PatientAllergy, error) {
	var allergies []models.PatientAllergy
	if err := r.db.WithContext(ctx).
		Where("patient_id = ? AND is_active = ?", patientID, true).
		Find(&allergies).Error; err != nil {
		return nil, fmt.Errorf("failed to list patient allergies: %w", err)
	}
	return allergies, nil
}

// Update saves the full patient record
func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

// Delete removes a patient
func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}
