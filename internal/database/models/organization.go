package models

import (
	"github.com/google/uuid"
)

// Organization represents the root entity for multi-tenancy.
// Every business entity belongs to exactly one organization, and every
// organization has exactly one owner at a time.
type Organization struct {
	BaseModel
	Name    string    `json:"name" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`
	OwnerID uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	Accounts []Account `json:"accounts,omitempty" gorm:"foreignKey:OrganizationID"`
	Contacts []Contact `json:"contacts,omitempty" gorm:"foreignKey:OrganizationID"`
	Deals    []Deal    `json:"deals,omitempty" gorm:"foreignKey:OrganizationID"`
	Leads    []Lead    `json:"leads,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
