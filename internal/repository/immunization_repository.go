package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"gorm.io/gorm"
)

// ImmunizationRepository handles immunization database operations
type ImmunizationRepository struct {
	db *gorm.DB
}

// NewImmunizationRepository creates a new immunization repository
func NewImmunizationRepository(db *gorm.DB) *ImmunizationRepository {
	return &ImmunizationRepository{db: db}
}

// ImmunizationFilter narrows List results. Zero values mean no constraint.
type ImmunizationFilter struct {
	PatientID *uuid.UUID
	Status    models.ImmunizationStatus
	Page      int
	Limit     int
}

// Create persists a new immunization record
func (r *ImmunizationRepository) Create(ctx context.Context, immunization *models.Immunization) error {
	if err := r.db.WithContext(ctx).Create(immunization).Error; err != nil {
		return fmt.Errorf("failed to create immunization: %w", err)
	}
	return nil
}

// GetByID retrieves an immunization by ID
func (r *ImmunizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Immunization, error) {
	var immunization models.Immunization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&immunization).Error; err != nil {
		return nil, fmt.Errorf("failed to get immunization: %w", err)
	}
	return &immunization, nil
}

// List retrieves immunizations matching the filter, most recent first
func (r *ImmunizationRepository) List(ctx context.Context, filter ImmunizationFilter) ([]models.Immunization, error) {
	query := r.db.WithContext(ctx).Model(&models.Immunization{})

	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var immunizations []models.Immunization
	if err := query.
		Order("administration_date DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&immunizations).Error; err != nil {
		return nil, fmt.Errorf("failed to list immunizations: %w", err)
	}

	return immunizations, nil
}

// ListByPatient retrieves a patient's full vaccination schedule in
// administration order
func (r *ImmunizationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Immunization, error) {
	var immunizations []models.Immunization
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("administration_date ASC").
		Find(&immunizations).Error; err != nil {
		return nil, fmt.Errorf("failed to list patient immunizations: %w", err)
	}
	return immunizations, nil
}

// ListOverdue retrieves scheduled doses whose next due date has passed,
// most overdue first, optionally narrowed to one patient
func (r *ImmunizationRepository) ListOverdue(ctx context.Context, asOf time.Time, patientID *uuid.UUID) ([]models.Immunization, error) {
	query := r.db.WithContext(ctx).
		Where("next_due_date <= ? AND status = ?", asOf, models.ImmunizationScheduled)
	if patientID != nil {
		query = query.Where("patient_id = ?", *patientID)
	}

	var immunizations []models.Immunization
	if err := query.Order("next_due_date ASC").Find(&immunizations).Error; err != nil {
		return nil, fmt.Errorf("failed to list overdue immunizations: %w", err)
	}
	return immunizations, nil
}

// ListVaccineCoverage tallies administered doses per vaccine, optionally
// narrowed to one vaccine name
func (r *ImmunizationRepository) ListVaccineCoverage(ctx context.Context, vaccineName string) ([]models.VaccineCoverage, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Immunization{}).
		Select("vaccine_name, count(*) AS count").
		Where("status = ?", models.ImmunizationAdministered)
	if vaccineName != "" {
		query = query.Where("vaccine_name = ?", vaccineName)
	}

	var coverage []models.VaccineCoverage
	if err := query.Group("vaccine_name").Order("vaccine_name ASC").Scan(&coverage).Error; err != nil {
		return nil, fmt.Errorf("failed to tally vaccine coverage: %w", err)
	}
	return coverage, nil
}

// Update saves the full immunization record
func (r *ImmunizationRepository) Update(ctx context.Context, immunization *models.Immunization) error {
	if err := r.db.WithContext(ctx).Save(immunization).Error; err != nil {
		return fmt.Errorf("failed to update immunization: %w", err)
	}
	return nil
}

// Delete removes an immunization record
func (r *ImmunizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Immunization{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete immunization: %w", err)
	}
	return nil
}
