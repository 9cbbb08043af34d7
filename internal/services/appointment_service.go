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

// AppointmentStore is the storage surface the appointment service needs
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	List(ctx context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error)
	ListBetween(ctx context.Context, start, end time.Time, doctorID *uuid.UUID) ([]models.Appointment, error)
	ListVaccinationsBetween(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AppointmentService handles appointment procedures. Appointments are owned
// by their doctor: doctor-role callers are narrowed to their own rows on
// list queries and rejected on direct access to others' rows.
type AppointmentService struct {
	appointments AppointmentStore
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(appointments AppointmentStore) *AppointmentService {
	return &AppointmentService{appointments: appointments}
}

// checkOwnership enforces the doctor-scope rule on a loaded appointment.
// Only the doctor role is restricted; admins and nurses have clinic-wide
// access by construction.
func (s *AppointmentService) checkOwnership(actor *models.User, appointment *models.Appointment, verb string) error {
	if actor.Role == rbac.RoleDoctor && appointment.DoctorID != actor.ID {
		return apperr.Forbidden("can only " + verb + " your own appointments")
	}
	return nil
}

// CreateAppointmentInput is the appointment.create schema
type CreateAppointmentInput struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required,future_date"`
	Duration  int       `json:"duration" validate:"omitempty,gt=0"`
	Type      string    `json:"type" validate:"required,oneof=consultation check-up follow-up emergency vaccination surgery therapy"`
	Priority  string    `json:"priority" validate:"omitempty,oneof=low medium high emergency"`
	Reason    string    `json:"reason" validate:"required"`
	Symptoms  string    `json:"symptoms"`
	Notes     string    `json:"notes"`
}

// Create validates input, stamps the acting user and persists the appointment
func (s *AppointmentService) Create(ctx context.Context, actor *models.User, input CreateAppointmentInput) (*models.Appointment, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	duration := input.Duration
	if duration == 0 {
		duration = 30
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	appointment := &models.Appointment{
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		Date:      input.Date,
		Duration:  duration,
		Type:      models.AppointmentType(input.Type),
		Status:    models.AppointmentScheduled,
		Priority:  priority,
		Reason:    input.Reason,
		Symptoms:  input.Symptoms,
		Notes:     input.Notes,
		CreatedBy: &actor.ID,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListAppointmentsInput is the appointment.list schema
type ListAppointmentsInput struct {
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
	Date     *time.Time `json:"date"`
	Status   string     `json:"status" validate:"omitempty,oneof=scheduled in-progress completed cancelled no-show"`
	DoctorID *uuid.UUID `json:"doctor_id"`
}

// List returns a page of appointments. Doctor-role callers are silently
// narrowed to their own appointments regardless of the doctor_id filter.
func (s *AppointmentService) List(ctx context.Context, actor *models.User, input ListAppointmentsInput) (*ListResult[models.Appointment], error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	page, limit := normalizePage(input.Page, input.Limit)

	doctorID := input.DoctorID
	if actor.Role == rbac.RoleDoctor {
		doctorID = &actor.ID
	}

	appointments, err := s.appointments.List(ctx, repository.AppointmentFilter{
		Date:     input.Date,
		Status:   models.AppointmentStatus(input.Status),
		DoctorID: doctorID,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListResult[models.Appointment]{
		Data:       appointments,
		Pagination: Pagination{Page: page, Limit: limit},
	}, nil
}

// GetByID returns an appointment. Absent ids are NOT_FOUND before any
// ownership comparison, so probing never leaks FORBIDDEN.
func (s *AppointmentService) GetByID(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "appointment not found")
	}
	if err := s.checkOwnership(actor, appointment, "view"); err != nil {
		return nil, err
	}
	return appointment, nil
}

// UpdateAppointmentInput is the appointment.update schema; nil fields stay
// untouched
type UpdateAppointmentInput struct {
	Date         *time.Time `json:"date" validate:"omitempty"`
	Duration     *int       `json:"duration" validate:"omitempty,gt=0"`
	Type         *string    `json:"type" validate:"omitempty,oneof=consultation check-up follow-up emergency vaccination surgery therapy"`
	Status       *string    `json:"status" validate:"omitempty,oneof=scheduled in-progress completed cancelled no-show"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=low medium high emergency"`
	Reason       *string    `json:"reason"`
	Symptoms     *string    `json:"symptoms"`
	Notes        *string    `json:"notes"`
	Diagnosis    *string    `json:"diagnosis"`
	Prescription *string    `json:"prescription"`
	FollowUpDate *time.Time `json:"follow_up_date"`
}

// Update merges partial fields after the ownership check passes
func (s *AppointmentService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateAppointmentInput) (*models.Appointment, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "appointment not found")
	}
	if err := s.checkOwnership(actor, appointment, "update"); err != nil {
		return nil, err
	}

	if input.Date != nil {
		appointment.Date = *input.Date
	}
	if input.Duration != nil {
		appointment.Duration = *input.Duration
	}
	if input.Type != nil {
		appointment.Type = models.AppointmentType(*input.Type)
	}
	if input.Status != nil {
		appointment.Status = models.AppointmentStatus(*input.Status)
	}
	if input.Priority != nil {
		appointment.Priority = *input.Priority
	}
	if input.Reason != nil {
		appointment.Reason = *input.Reason
	}
	if input.Symptoms != nil {
		appointment.Symptoms = *input.Symptoms
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.Diagnosis != nil {
		appointment.Diagnosis = *input.Diagnosis
	}
	if input.Prescription != nil {
		appointment.Prescription = *input.Prescription
	}
	if input.FollowUpDate != nil {
		appointment.FollowUpDate = input.FollowUpDate
	}

	appointment.UpdatedAt = time.Now().UTC()

	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Delete removes an appointment after the ownership check and returns its
// prior state
func (s *AppointmentService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "appointment not found")
	}
	if err := s.checkOwnership(actor, appointment, "delete"); err != nil {
		return nil, err
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return nil, err
	}
	return appointment, nil
}

// GetToday returns today's appointments in start order, doctor-narrowed
func (s *AppointmentService) GetToday(ctx context.Context, actor *models.User) ([]models.Appointment, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var doctorID *uuid.UUID
	if actor.Role == rbac.RoleDoctor {
		doctorID = &actor.ID
	}

	return s.appointments.ListBetween(ctx, dayStart, dayStart.Add(24*time.Hour), doctorID)
}

// UpcomingVaccinationsInput is the appointment.getUpcomingVaccinations schema
type UpcomingVaccinationsInput struct {
	Days int `json:"days" validate:"omitempty,min=1,max=365"`
}

// GetUpcomingVaccinations returns vaccination appointments in the next
// input.Days days (default 30)
func (s *AppointmentService) GetUpcomingVaccinations(ctx context.Context, actor *models.User, input UpcomingVaccinationsInput) ([]models.Appointment, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	days := input.Days
	if days == 0 {
		days = 30
	}

	start := time.Now()
	return s.appointments.ListVaccinationsBetween(ctx, start, start.AddDate(0, 0, days))
}
