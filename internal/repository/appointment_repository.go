package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"gorm.io/gorm"
)

// AppointmentRepository handles appointment database operations
type AppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// AppointmentFilter narrows List results. Zero values mean no constraint.
// DoctorID carries both the explicit filter and the implicit doctor-role
// narrowing applied by the service.
type AppointmentFilter struct {
	Date     *time.Time
	Status   models.AppointmentStatus
	DoctorID *uuid.UUID
	Page     int
	Limit    int
}

// Create persists a new appointment
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// dayWindow returns [local midnight, next local midnight) for t's calendar
// day in t's own location, matching how callers build "today" bounds.
func dayWindow(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// GetByID retrieves an appointment by ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// List retrieves appointments matching the filter, newest first
func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.Date != nil {
		dayStart, dayEnd := dayWindow(*filter.Date)
		query = query.Where("date >= ? AND date < ?", dayStart, dayEnd)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}

	var appointments []models.Appointment
	if err := query.
		Order("date DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appointments, nil
}

// ListBetween retrieves appointments within [start, end), soonest first,
// optionally narrowed to one doctor
func (r *AppointmentRepository) ListBetween(ctx context.Context, start, end time.Time, doctorID *uuid.UUID) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).Where("date >= ? AND date < ?", start, end)
	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	}

	var appointments []models.Appointment
	if err := query.Order("date ASC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// ListVaccinationsBetween retrieves vaccination appointments within
// [start, end), soonest first
func (r *AppointmentRepository) ListVaccinationsBetween(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ? AND type = ?", start, end, models.AppointmentVaccination).
		Order("date ASC").
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list vaccination appointments: %w", err)
	}
	return appointments, nil
}

// Update saves the full appointment record
func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	if err := r.db.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return nil
}

// Delete removes an appointment
func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
