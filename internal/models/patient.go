package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted for patients
const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer-not-to-say"
)

// Patient is a pediatric patient record
type Patient struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MedicalRecordNumber string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"medical_record_number"`
	FirstName           string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName            string    `gorm:"type:varchar(255);not null" json:"last_name"`
	DateOfBirth         time.Time `gorm:"not null" json:"date_of_birth"`
	Gender              string    `gorm:"type:varchar(20);not null" json:"gender"`
	BloodType           string    `gorm:"type:varchar(3)" json:"blood_type,omitempty"`
	Phone               string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email               string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address             string    `gorm:"type:text" json:"address,omitempty"`

	EmergencyContactName     string `gorm:"type:varchar(255)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone    string `gorm:"type:varchar(30)" json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelation string `gorm:"type:varchar(100)" json:"emergency_contact_relation,omitempty"`

	InsuranceProvider     string `gorm:"type:varchar(255)" json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string `gorm:"type:varchar(100)" json:"insurance_policy_number,omitempty"`

	Allergies             []string `gorm:"serializer:json;type:jsonb" json:"allergies"`
	CurrentMedications    []string `gorm:"serializer:json;type:jsonb" json:"current_medications"`
	PreExistingConditions []string `gorm:"serializer:json;type:jsonb" json:"pre_existing_conditions"`

	Notes    string `gorm:"type:text" json:"notes,omitempty"`
	IsActive bool   `gorm:"default:true;not null" json:"is_active"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// BeforeCreate hook
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
