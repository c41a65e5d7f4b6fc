package models

import (
	"github.com/google/uuid"
)

// User represents an authenticated actor. OrganizationID and Role are both
// nil while the user is unaffiliated; they are always set and cleared together.
type User struct {
	BaseModel
	Email          string     `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash   string     `json:"-" gorm:"not null;size:100"`
	FirstName      string     `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName       string     `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Role           *UserRole  `json:"role,omitempty" gorm:"type:varchar(20)"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// BelongsTo reports whether the user is affiliated with the given organization
func (u *User) BelongsTo(orgID uuid.UUID) bool {
	return u.OrganizationID != nil && *u.OrganizationID == orgID
}

// HasRole reports whether the user currently holds the given role
func (u *User) HasRole(role UserRole) bool {
	return u.Role != nil && *u.Role == role
}
