package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentInProgress AppointmentStatus = "in-progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no-show"
)

// AppointmentType classifies the visit
type AppointmentType string

const (
	AppointmentConsultation AppointmentType = "consultation"
	AppointmentCheckUp      AppointmentType = "check-up"
	AppointmentFollowUp     AppointmentType = "follow-up"
	AppointmentEmergency    AppointmentType = "emergency"
	AppointmentVaccination  AppointmentType = "vaccination"
	AppointmentSurgery      AppointmentType = "surgery"
	AppointmentTherapy      AppointmentType = "therapy"
)

// Priority levels shared by appointments and history entries
const (
	PriorityLow       = "low"
	PriorityMedium    = "medium"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

// Appointment is a scheduled visit. DoctorID identifies the responsible
// doctor and is the ownership field for doctor-scoped authorization.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`

	Date     time.Time         `gorm:"not null;index" json:"date"`
	Duration int               `gorm:"not null;default:30" json:"duration"` // minutes
	Type     AppointmentType   `gorm:"type:varchar(30);not null" json:"type"`
	Status   AppointmentStatus `gorm:"type:varchar(20);not null;default:scheduled;index" json:"status"`
	Priority string            `gorm:"type:varchar(20);default:medium" json:"priority,omitempty"`

	Reason       string     `gorm:"type:text" json:"reason,omitempty"`
	Symptoms     string     `gorm:"type:text" json:"symptoms,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	Diagnosis    string     `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription string     `gorm:"type:text" json:"prescription,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
}

// TableName overrides the table name
func (Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate hook
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// OwnerID returns the user responsible for this appointment
func (a *Appointment) OwnerID() uuid.UUID {
	return a.DoctorID
}
