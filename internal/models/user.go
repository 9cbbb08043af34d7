package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/rbac"
	"gorm.io/gorm"
)

// User is a clinic account. Role changes only through explicit admin action
// outside this service; every authorization decision reads it as-is.
type User struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email  string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name   string    `gorm:"type:varchar(255);not null" json:"name"`
	Role   rbac.Role `gorm:"type:varchar(20);not null;index" json:"role"`
	Gender string    `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Banned bool      `gorm:"default:false" json:"banned,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
