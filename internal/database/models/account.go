package models

import (
	"github.com/google/uuid"
)

// Account represents a company an organization does business with.
// The owning organization is immutable after creation.
type Account struct {
	BaseModel
	OrganizationID uuid.UUID       `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name           string          `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	Industry       string          `json:"industry" gorm:"size:100"`
	Size           AccountSize     `json:"size" gorm:"type:varchar(20);not null;default:'SMALL'"`
	Type           string          `json:"type" gorm:"size:100"`
	Priority       AccountPriority `json:"priority" gorm:"type:varchar(20);not null;default:'MEDIUM'"`

	// Relationships
	Contacts []Contact `json:"contacts,omitempty" gorm:"foreignKey:AccountID"`
}

// TableName returns the table name for Account
func (Account) TableName() string {
	return "accounts"
}
