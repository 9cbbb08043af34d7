package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VitalSigns are the measurements captured with a SOAP note. Height/weight
// feed pediatric growth tracking.
type VitalSigns struct {
	BloodPressure    string  `json:"blood_pressure,omitempty"`
	HeartRate        int     `json:"heart_rate,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	RespiratoryRate  int     `json:"respiratory_rate,omitempty"`
	OxygenSaturation int     `json:"oxygen_saturation,omitempty"`
	Height           float64 `json:"height,omitempty"` // cm
	Weight           float64 `json:"weight,omitempty"` // kg
	BMI              float64 `json:"bmi,omitempty"`
}

// ClinicalNote is a SOAP note. AuthorID identifies the authoring doctor and
// is the ownership field for doctor-scoped authorization.
type ClinicalNote struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	AuthorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`

	Subjective string      `gorm:"type:text" json:"subjective,omitempty"` // patient's description
	Objective  string      `gorm:"type:text" json:"objective,omitempty"`  // clinical findings
	Assessment string      `gorm:"type:text" json:"assessment,omitempty"` // diagnosis
	Plan       string      `gorm:"type:text" json:"plan,omitempty"`       // treatment plan
	VitalSigns *VitalSigns `gorm:"serializer:json;type:jsonb" json:"vital_signs,omitempty"`

	IsConfidential bool `gorm:"default:false" json:"is_confidential"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (ClinicalNote) TableName() string {
	return "clinical_notes"
}

// BeforeCreate hook
func (n *ClinicalNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// OwnerID returns the user responsible for this note
func (n *ClinicalNote) OwnerID() uuid.UUID {
	return n.AuthorID
}

// GrowthPoint is one height/weight observation for the growth chart
type GrowthPoint struct {
	Date   time.Time `json:"date"`
	Height float64   `json:"height,omitempty"`
	Weight float64   `json:"weight,omitempty"`
	BMI    float64   `json:"bmi,omitempty"`
}
