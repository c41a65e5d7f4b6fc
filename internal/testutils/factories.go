package testutils

import (
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:    "Test Organization " + uuid.New().String()[:8],
		OwnerID: uuid.New(),
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	return org
}

// WithOwner sets the owner ID for the organization
func (f *OrganizationFactory) WithOwner(ownerID uuid.UUID) *models.Organization {
	org := f.Create()
	org.OwnerID = ownerID
	return org
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates an unaffiliated test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email:        "user-" + id.String()[:8] + "@test.com",
		PasswordHash: "$2a$10$0000000000000000000000000000000000000000000000000000",
		FirstName:    "John",
		LastName:     "Doe",
	}
}

// WithOrganization affiliates the user with an organization under the given role
func (f *UserFactory) WithOrganization(orgID uuid.UUID, role models.UserRole) *models.User {
	user := f.Create()
	user.OrganizationID = &orgID
	user.Role = &role
	return user
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// AccountFactory provides methods to create test Account data
type AccountFactory struct{}

// NewAccountFactory creates a new AccountFactory
func NewAccountFactory() *AccountFactory {
	return &AccountFactory{}
}

// Create creates a test Account with default values
func (f *AccountFactory) Create() *models.Account {
	return &models.Account{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		Name:           "Acme Corp",
		Industry:       "Manufacturing",
		Size:           models.AccountSizeMedium,
		Type:           "Customer",
		Priority:       models.AccountPriorityMedium,
	}
}

// WithOrganization sets the organization ID for the account
func (f *AccountFactory) WithOrganization(orgID uuid.UUID) *models.Account {
	account := f.Create()
	account.OrganizationID = orgID
	return account
}

// ContactFactory provides methods to create test Contact data
type ContactFactory struct{}

// NewContactFactory creates a new ContactFactory
func NewContactFactory() *ContactFactory {
	return &ContactFactory{}
}

// Create creates a test Contact with default values
func (f *ContactFactory) Create() *models.Contact {
	id := uuid.New()
	return &models.Contact{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		FirstName:      "Jane",
		LastName:       "Smith",
		Email:          "jane-" + id.String()[:8] + "@test.com",
		Phone:          "+14155552671",
		Title:          "Procurement Lead",
	}
}

// WithOrganization sets the organization ID for the contact
func (f *ContactFactory) WithOrganization(orgID uuid.UUID) *models.Contact {
	contact := f.Create()
	contact.OrganizationID = orgID
	return contact
}

// WithAccount links the contact to an account
func (f *ContactFactory) WithAccount(orgID, accountID uuid.UUID) *models.Contact {
	contact := f.Create()
	contact.OrganizationID = orgID
	contact.AccountID = &accountID
	return contact
}

// DealFactory provides methods to create test Deal data
type DealFactory struct{}

// NewDealFactory creates a new DealFactory
func NewDealFactory() *DealFactory {
	return &DealFactory{}
}

// Create creates a test Deal with default values
func (f *DealFactory) Create() *models.Deal {
	id := uuid.New()
	ownerID := uuid.New()
	return &models.Deal{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		OwnerID:        &ownerID,
		AccountID:      uuid.New(),
		Name:           "Deal " + id.String()[:8],
		Stage:          models.DealStageNew,
		ValueAmount:    100000,
		ValueCurrency:  "USD",
		ActualCurrency: "USD",
	}
}

// WithOrganization sets the organization ID for the deal
func (f *DealFactory) WithOrganization(orgID uuid.UUID) *models.Deal {
	deal := f.Create()
	deal.OrganizationID = orgID
	return deal
}

// WithStage sets the stage for the deal
func (f *DealFactory) WithStage(stage models.DealStage) *models.Deal {
	deal := f.Create()
	deal.Stage = stage
	return deal
}

// LeadFactory provides methods to create test Lead data
type LeadFactory struct{}

// NewLeadFactory creates a new LeadFactory
func NewLeadFactory() *LeadFactory {
	return &LeadFactory{}
}

// Create creates a test Lead with default values
func (f *LeadFactory) Create() *models.Lead {
	id := uuid.New()
	return &models.Lead{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		FirstName:      "Sam",
		LastName:       "Prospect",
		Email:          "sam-" + id.String()[:8] + "@test.com",
		Phone:          "+14155552672",
		Status:         models.LeadStatusNew,
		IsNew:          true,
	}
}

// WithOrganization sets the organization ID for the lead
func (f *LeadFactory) WithOrganization(orgID uuid.UUID) *models.Lead {
	lead := f.Create()
	lead.OrganizationID = orgID
	return lead
}

// WithOwner sets the owner for the lead
func (f *LeadFactory) WithOwner(orgID, ownerID uuid.UUID) *models.Lead {
	lead := f.Create()
	lead.OrganizationID = orgID
	lead.OwnerID = &ownerID
	return lead
}
