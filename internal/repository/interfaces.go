package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetByName(name string) (*models.Organization, error)
	Update(org *models.Organization) error
	Delete(id uuid.UUID) (int64, error)
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) (int64, error)
	ClearOrganization(orgID uuid.UUID) (int64, error)
}

// AccountRepositoryInterface defines the interface for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Account, int64, error)
	Update(account *models.Account) error
	Delete(id uuid.UUID) (int64, error)
	DeleteByOrganizationID(orgID uuid.UUID) (int64, error)
}

// ContactRepositoryInterface defines the interface for contact repository operations
type ContactRepositoryInterface interface {
	Create(contact *models.Contact) error
	GetByID(id uuid.UUID) (*models.Contact, error)
	GetByIDs(ids []uuid.UUID) ([]models.Contact, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Contact, int64, error)
	Update(contact *models.Contact) error
	Delete(id uuid.UUID) (int64, error)
	DeleteByOrganizationID(orgID uuid.UUID) (int64, error)
}

// DealRepositoryInterface defines the interface for deal repository operations
type DealRepositoryInterface interface {
	Create(deal *models.Deal, contacts []models.Contact) error
	GetByID(id uuid.UUID) (*models.Deal, error)
	GetByName(name string) (*models.Deal, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Deal, int64, error)
	Update(deal *models.Deal) error
	ReplaceContacts(deal *models.Deal, contacts []models.Contact) error
	RemoveContactFromAll(contactID uuid.UUID) error
	UnassignOwner(ownerID uuid.UUID) (int64, error)
	Delete(id uuid.UUID) (int64, error)
	DeleteByOrganizationID(orgID uuid.UUID) (int64, error)
}

// LeadRepositoryInterface defines the interface for lead repository operations
type LeadRepositoryInterface interface {
	Create(lead *models.Lead) error
	GetByID(id uuid.UUID) (*models.Lead, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Lead, int64, error)
	Update(lead *models.Lead) error
	UnassignOwner(ownerID uuid.UUID) (int64, error)
	Delete(id uuid.UUID) (int64, error)
	DeleteByOrganizationID(orgID uuid.UUID) (int64, error)
}

// TransactionManagerInterface runs a function with a repository bundle bound
// to a single database transaction. The transaction commits when fn returns
// nil and rolls back otherwise; it is always released before the call returns.
type TransactionManagerInterface interface {
	InTransaction(fn func(repos *Repositories) error) error
}
