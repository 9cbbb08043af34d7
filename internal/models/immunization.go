package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImmunizationStatus tracks a vaccine dose through its schedule
type ImmunizationStatus string

const (
	ImmunizationAdministered    ImmunizationStatus = "administered"
	ImmunizationScheduled       ImmunizationStatus = "scheduled"
	ImmunizationOverdue         ImmunizationStatus = "overdue"
	ImmunizationContraindicated ImmunizationStatus = "contraindicated"
)

// Immunization is a single vaccine dose record
type Immunization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	VaccineName  string `gorm:"type:varchar(255);not null" json:"vaccine_name"`
	VaccineCode  string `gorm:"type:varchar(20)" json:"vaccine_code,omitempty"` // CVX code
	Manufacturer string `gorm:"type:varchar(255)" json:"manufacturer,omitempty"`
	LotNumber    string `gorm:"type:varchar(100)" json:"lot_number,omitempty"`

	AdministrationDate time.Time          `gorm:"not null" json:"administration_date"`
	NextDueDate        *time.Time         `gorm:"index" json:"next_due_date,omitempty"`
	Status             ImmunizationStatus `gorm:"type:varchar(20);not null;default:administered;index" json:"status"`
	AdministeredBy     *uuid.UUID         `gorm:"type:uuid" json:"administered_by,omitempty"`
	AdministrationSite string             `gorm:"type:varchar(100)" json:"administration_site,omitempty"`

	DoseNumber int    `gorm:"default:1" json:"dose_number"`
	TotalDoses int    `gorm:"default:1" json:"total_doses"`
	Reactions  string `gorm:"type:text" json:"reactions,omitempty"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VaccineCoverage is an administered-dose tally for one vaccine
type VaccineCoverage struct {
	VaccineName string `json:"vaccine_name"`
	Count       int64  `json:"count"`
}

// TableName overrides the table name
func (Immunization) TableName() string {
	return "immunizations"
}

// BeforeCreate hook
func (i *Immunization) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
