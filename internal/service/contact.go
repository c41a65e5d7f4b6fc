package service

import (
	"errors"
	"fmt"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactService handles business logic for contacts
type ContactService struct {
	repo      repository.ContactRepositoryInterface
	refs      *ReferenceValidator
	tx        repository.TransactionManagerInterface
	validator *validator.Validate
}

// NewContactService creates a new contact service
func NewContactService(
	repo repository.ContactRepositoryInterface,
	refs *ReferenceValidator,
	tx repository.TransactionManagerInterface,
	validator *validator.Validate,
) *ContactService {
	return &ContactService{
		repo:      repo,
		refs:      refs,
		tx:        tx,
		validator: validator,
	}
}

// CreateContactRequest represents the request to create a contact
type CreateContactRequest struct {
	AccountID *uuid.UUID `json:"account_id"`
	FirstName string     `json:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" validate:"required,max=100"`
	Email     string     `json:"email" validate:"omitempty,email,max=255"`
	Phone     string     `json:"phone"`
	Title     string     `json:"title" validate:"max=100"`
}

// UpdateContactRequest represents the request to update a contact.
// Absent fields are left untouched.
type UpdateContactRequest struct {
	AccountID *uuid.UUID `json:"account_id"`
	FirstName *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string    `json:"last_name" validate:"omitempty,max=100"`
	Email     *string    `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string    `json:"phone"`
	Title     *string    `json:"title" validate:"omitempty,max=100"`
}

// ContactResponse represents the response for contact operations
type ContactResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	AccountID      *uuid.UUID `json:"account_id,omitempty"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Title          string     `json:"title"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

// ContactListResponse represents a paginated list of contacts
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create creates a new contact in the actor's organization
func (s *ContactService) Create(actor *models.User, req *CreateContactRequest) (*ContactResponse, error) {
	if err := authz.AuthorizeCreate(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.AccountID != nil {
		if _, err := s.refs.ValidateAccount(*actor.OrganizationID, *req.AccountID); err != nil {
			return nil, err
		}
	}

	phone := ""
	if req.Phone != "" {
		normalized, err := NormalizePhone(req.Phone)
		if err != nil {
			return nil, err
		}
		phone = normalized
	}

	contact := &models.Contact{
		OrganizationID: *actor.OrganizationID,
		AccountID:      req.AccountID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          phone,
		Title:          req.Title,
	}

	if err := s.repo.Create(contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return s.toResponse(contact), nil
}

// GetByID retrieves a contact, enforcing tenancy
func (s *ContactService) GetByID(actor *models.User, id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpRead, contact.OrganizationID); err != nil {
		return nil, err
	}
	return s.toResponse(contact), nil
}

// List retrieves the contacts in the actor's organization with pagination
func (s *ContactService) List(actor *models.User, page, pageSize int) (*ContactListResponse, error) {
	if actor.OrganizationID == nil {
		return nil, apperrors.ErrNotAuthorized
	}
	page, pageSize = normalizePagination(page, pageSize)

	contacts, total, err := s.repo.GetByOrganizationID(*actor.OrganizationID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	responses := make([]ContactResponse, len(contacts))
	for i, contact := range contacts {
		responses[i] = *s.toResponse(&contact)
	}
	return &ContactListResponse{
		Contacts: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to a contact
func (s *ContactService) Update(actor *models.User, id uuid.UUID, req *UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpUpdate, contact.OrganizationID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.AccountID != nil {
		if _, err := s.refs.ValidateAccount(contact.OrganizationID, *req.AccountID); err != nil {
			return nil, err
		}
		contact.AccountID = req.AccountID
	}
	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		normalized, err := NormalizePhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		contact.Phone = normalized
	}
	if req.Title != nil {
		contact.Title = *req.Title
	}

	if err := s.repo.Update(contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return s.toResponse(contact), nil
}

// Delete deletes a contact and removes it from every deal's contact list,
// atomically
func (s *ContactService) Delete(actor *models.User, id uuid.UUID) error {
	contact, err := s.fetch(id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.OpDelete, contact.OrganizationID); err != nil {
		return err
	}

	err = s.tx.InTransaction(func(repos *repository.Repositories) error {
		if err := repos.Deals.RemoveContactFromAll(id); err != nil {
			return fmt.Errorf("failed to unlink contact from deals: %w", err)
		}
		rows, err := repos.Contacts.Delete(id)
		if err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}
		if rows == 0 {
			return apperrors.ErrDeleteFailed
		}
		return nil
	})
	return err
}

func (s *ContactService) fetch(id uuid.UUID) (*models.Contact, error) {
	contact, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

// toResponse converts a contact model to response
func (s *ContactService) toResponse(contact *models.Contact) *ContactResponse {
	return &ContactResponse{
		ID:             contact.ID,
		OrganizationID: contact.OrganizationID,
		AccountID:      contact.AccountID,
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Title:          contact.Title,
		CreatedAt:      contact.CreatedAt.Format(timeFormat),
		UpdatedAt:      contact.UpdatedAt.Format(timeFormat),
	}
}
