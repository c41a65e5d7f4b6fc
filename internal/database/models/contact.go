package models

import (
	"github.com/google/uuid"
)

// Contact represents a person at an account. The optional account reference
// must resolve to an account in the same organization; phone numbers are
// stored normalized to E.164.
type Contact struct {
	BaseModel
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	AccountID      *uuid.UUID `json:"account_id,omitempty" gorm:"type:uuid;index"`
	FirstName      string     `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName       string     `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Email          string     `json:"email" gorm:"size:255" validate:"omitempty,email,max=255"`
	Phone          string     `json:"phone" gorm:"size:20"`
	Title          string     `json:"title" gorm:"size:100"`
}

// TableName returns the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
