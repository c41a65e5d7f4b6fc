package models

import (
	"github.com/google/uuid"
)

// Lead represents an unqualified prospect. The optional owner must be a user
// in the same organization who is not READ_ONLY at assignment time. IsNew
// starts true and flips to false on the first status change.
type Lead struct {
	BaseModel
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	OwnerID        *uuid.UUID `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	FirstName      string     `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName       string     `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Email          string     `json:"email" gorm:"size:255" validate:"omitempty,email,max=255"`
	Phone          string     `json:"phone" gorm:"size:20"`
	Status         LeadStatus `json:"status" gorm:"type:varchar(30);not null;default:'NEW_LEAD'"`
	IsNew          bool       `json:"is_new" gorm:"not null;default:true"`

	// Relationships
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// TableName returns the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// IsOwnedBy reports whether the given user is the lead's current owner
func (l *Lead) IsOwnedBy(userID uuid.UUID) bool {
	return l.OwnerID != nil && *l.OwnerID == userID
}
