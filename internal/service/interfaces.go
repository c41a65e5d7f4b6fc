package service

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// OrganizationServiceInterface defines the interface for organization service operations
type OrganizationServiceInterface interface {
	Create(actor *models.User, req *CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByID(actor *models.User, id uuid.UUID) (*OrganizationResponse, error)
	ChangeOwner(actor *models.User, orgID uuid.UUID, req *ChangeOwnerRequest) (*OrganizationResponse, error)
	Delete(actor *models.User, id uuid.UUID) (*DeleteOrganizationResponse, error)
	RemoveUser(actor *models.User, orgID uuid.UUID, userID uuid.UUID) (*RemoveUserResponse, error)
}

// UserServiceInterface defines the interface for user service operations
type UserServiceInterface interface {
	GetMe(actor *models.User) *UserResponse
	GetByID(actor *models.User, id uuid.UUID) (*UserResponse, error)
	List(actor *models.User, page, pageSize int) (*UserListResponse, error)
	Delete(actor *models.User, id uuid.UUID) error
}

// AccountServiceInterface defines the interface for account service operations
type AccountServiceInterface interface {
	Create(actor *models.User, req *CreateAccountRequest) (*AccountResponse, error)
	GetByID(actor *models.User, id uuid.UUID) (*AccountResponse, error)
	List(actor *models.User, page, pageSize int) (*AccountListResponse, error)
	Update(actor *models.User, id uuid.UUID, req *UpdateAccountRequest) (*AccountResponse, error)
	Delete(actor *models.User, id uuid.UUID) error
}

// ContactServiceInterface defines the interface for contact service operations
type ContactServiceInterface interface {
	Create(actor *models.User, req *CreateContactRequest) (*ContactResponse, error)
	GetByID(actor *models.User, id uuid.UUID) (*ContactResponse, error)
	List(actor *models.User, page, pageSize int) (*ContactListResponse, error)
	Update(actor *models.User, id uuid.UUID, req *UpdateContactRequest) (*ContactResponse, error)
	Delete(actor *models.User, id uuid.UUID) error
}

// DealServiceInterface defines the interface for deal service operations
type DealServiceInterface interface {
	Create(actor *models.User, req *CreateDealRequest) (*DealResponse, error)
	GetByID(actor *models.User, id uuid.UUID) (*DealResponse, error)
	List(actor *models.User, page, pageSize int) (*DealListResponse, error)
	Update(actor *models.User, id uuid.UUID, req *UpdateDealRequest) (*DealResponse, error)
	Delete(actor *models.User, id uuid.UUID) error
}

// LeadServiceInterface defines the interface for lead service operations
type LeadServiceInterface interface {
	Create(actor *models.User, req *CreateLeadRequest) (*LeadResponse, error)
	GetByID(actor *models.User, id uuid.UUID) (*LeadResponse, error)
	List(actor *models.User, page, pageSize int) (*LeadListResponse, error)
	Update(actor *models.User, id uuid.UUID, req *UpdateLeadRequest) (*LeadResponse, error)
	ChangeStatus(actor *models.User, id uuid.UUID, req *ChangeLeadStatusRequest) (*LeadResponse, error)
	ConvertToContact(actor *models.User, id uuid.UUID) (*ContactResponse, error)
	Delete(actor *models.User, id uuid.UUID) error
}
