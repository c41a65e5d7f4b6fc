package models

import (
	"time"

	"github.com/google/uuid"
)

// Deal represents an opportunity in the pipeline. Owner, account and contacts
// must all belong to the deal's organization; the name is unique across the
// system. ClosedAt is stamped when the stage transitions to WON or LOST.
type Deal struct {
	BaseModel
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	OwnerID        *uuid.UUID `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	AccountID      uuid.UUID  `json:"account_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name           string     `json:"name" gorm:"uniqueIndex;not null;size:200" validate:"required,max=200"`
	Stage          DealStage  `json:"stage" gorm:"type:varchar(20);not null;default:'NEW'"`
	ValueAmount    int64      `json:"value_amount" gorm:"not null;default:0"`
	ValueCurrency  string     `json:"value_currency" gorm:"size:3;not null;default:'USD'"`
	ActualAmount   int64      `json:"actual_amount" gorm:"not null;default:0"`
	ActualCurrency string     `json:"actual_currency" gorm:"size:3;not null;default:'USD'"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`

	// Relationships
	Owner    *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Account  *Account  `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Contacts []Contact `json:"contacts,omitempty" gorm:"many2many:deal_contacts"`
}

// TableName returns the table name for Deal
func (Deal) TableName() string {
	return "deals"
}

// MinDealContacts and MaxDealContacts bound the contacts collection on a deal.
const (
	MinDealContacts = 1
	MaxDealContacts = 5
)
