package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History entry statuses
const (
	HistoryActive   = "active"
	HistoryResolved = "resolved"
	HistoryChronic  = "chronic"
)

// MedicalHistory is one diagnosed condition in a patient's chart
type MedicalHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	Condition     string    `gorm:"type:text;not null" json:"condition"`
	DiagnosisDate time.Time `gorm:"not null" json:"diagnosis_date"`
	Status        string    `gorm:"type:varchar(20);default:active" json:"status"`
	Severity      string    `gorm:"type:varchar(20)" json:"severity,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	Treatment     string    `gorm:"type:text" json:"treatment,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
}

// TableName overrides the table name
func (MedicalHistory) TableName() string {
	return "medical_history"
}

// BeforeCreate hook
func (m *MedicalHistory) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PatientAllergy is a documented allergy. Resolved allergies stay on file
// with IsActive false.
type PatientAllergy struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	Allergen  string     `gorm:"type:varchar(255);not null" json:"allergen"`
	Severity  string     `gorm:"type:varchar(20);not null" json:"severity"`
	Reaction  string     `gorm:"type:text" json:"reaction,omitempty"`
	OnsetDate *time.Time `json:"onset_date,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (PatientAllergy) TableName() string {
	return "patient_allergies"
}

// BeforeCreate hook
func (a *PatientAllergy) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
