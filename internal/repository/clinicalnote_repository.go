package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"gorm.io/gorm"
)

// ClinicalNoteRepository handles clinical note database operations
type ClinicalNoteRepository struct {
	db *gorm.DB
}

// NewClinicalNoteRepository creates a new clinical note repository
func NewClinicalNoteRepository(db *gorm.DB) *ClinicalNoteRepository {
	return &ClinicalNoteRepository{db: db}
}

// ClinicalNoteFilter narrows List results. AuthorID carries the implicit
// doctor-role narrowing applied by the service.
type ClinicalNoteFilter struct {
	PatientID *uuid.UUID
	AuthorID  *uuid.UUID
	Page      int
	Limit     int
}

// Create persists a new clinical note
func (r *ClinicalNoteRepository) Create(ctx context.Context, note *models.ClinicalNote) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("failed to create clinical note: %w", err)
	}
	return nil
}

// GetByID retrieves a clinical note by ID
func (r *ClinicalNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ClinicalNote, error) {
	var note models.ClinicalNote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		return nil, fmt.Errorf("failed to get clinical note: %w", err)
	}
	return &note, nil
}

// List retrieves clinical notes matching the filter, newest first
func (r *ClinicalNoteRepository) List(ctx context.Context, filter ClinicalNoteFilter) ([]models.ClinicalNote, error) {
	query := r.db.WithContext(ctx).Model(&models.ClinicalNote{})

	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	var notes []models.ClinicalNote
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list clinical notes: %w", err)
	}

	return notes, nil
}

// ListByPatient retrieves a patient's notes. Set newestFirst for the most
// recent observations (pediatric stats); leave it unset for the
// chronological growth chart series. A limit of 0 means no limit.
func (r *ClinicalNoteRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, limit int, newestFirst bool) ([]models.ClinicalNote, error) {
	order := "created_at ASC"
	if newestFirst {
		order = "created_at DESC"
	}

	query := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order(order)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notes []models.ClinicalNote
	if err := query.Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list patient notes: %w", err)
	}
	return notes, nil
}

// Update saves the full clinical note
func (r *ClinicalNoteRepository) Update(ctx context.Context, note *models.ClinicalNote) error {
	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		return fmt.Errorf("failed to update clinical note: %w", err)
	}
	return nil
}

// Delete removes a clinical note
func (r *ClinicalNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.ClinicalNote{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete clinical note: %w", err)
	}
	return nil
}
