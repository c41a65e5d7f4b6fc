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

// LeadService handles business logic for leads
type LeadService struct {
	repo      repository.LeadRepositoryInterface
	refs      *ReferenceValidator
	tx        repository.TransactionManagerInterface
	validator *validator.Validate
}

// NewLeadService creates a new lead service
func NewLeadService(
	repo repository.LeadRepositoryInterface,
	refs *ReferenceValidator,
	tx repository.TransactionManagerInterface,
	validator *validator.Validate,
) *LeadService {
	return &LeadService{
		repo:      repo,
		refs:      refs,
		tx:        tx,
		validator: validator,
	}
}

// CreateLeadRequest represents the request to create a lead
type CreateLeadRequest struct {
	OwnerID   *uuid.UUID `json:"owner_id"`
	FirstName string     `json:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" validate:"required,max=100"`
	Email     string     `json:"email" validate:"omitempty,email,max=255"`
	Phone     string     `json:"phone"`
}

// UpdateLeadRequest represents the request to update a lead.
// Absent fields are left untouched.
type UpdateLeadRequest struct {
	OwnerID   *uuid.UUID `json:"owner_id"`
	FirstName *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string    `json:"last_name" validate:"omitempty,max=100"`
	Email     *string    `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string    `json:"phone"`
}

// ChangeLeadStatusRequest represents the request to change a lead's status
type ChangeLeadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LeadResponse represents the response for lead operations
type LeadResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	OwnerID        *uuid.UUID `json:"owner_id,omitempty"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Status         string     `json:"status"`
	IsNew          bool       `json:"is_new"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

// LeadListResponse represents a paginated list of leads
type LeadListResponse struct {
	Leads    []LeadResponse `json:"leads"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create creates a new lead in the actor's organization. The optional owner
// must resolve inside that organization and must not be read-only.
func (s *LeadService) Create(actor *models.User, req *CreateLeadRequest) (*LeadResponse, error) {
	if err := authz.AuthorizeCreate(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var ownerID *uuid.UUID
	if req.OwnerID != nil {
		owner, err := s.refs.ValidateOwner(*actor.OrganizationID, *req.OwnerID)
		if err != nil {
			return nil, err
		}
		ownerID = &owner.ID
	}

	phone := ""
	if req.Phone != "" {
		normalized, err := NormalizePhone(req.Phone)
		if err != nil {
			return nil, err
		}
		phone = normalized
	}

	lead := &models.Lead{
		OrganizationID: *actor.OrganizationID,
		OwnerID:        ownerID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          phone,
		Status:         models.LeadStatusNew,
		IsNew:          true,
	}

	if err := s.repo.Create(lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return s.toResponse(lead), nil
}

// GetByID retrieves a lead, enforcing tenancy
func (s *LeadService) GetByID(actor *models.User, id uuid.UUID) (*LeadResponse, error) {
	lead, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpRead, lead.OrganizationID); err != nil {
		return nil, err
	}
	return s.toResponse(lead), nil
}

// List retrieves the leads in the actor's organization with pagination
func (s *LeadService) List(actor *models.User, page, pageSize int) (*LeadListResponse, error) {
	if actor.OrganizationID == nil {
		return nil, apperrors.ErrNotAuthorized
	}
	page, pageSize = normalizePagination(page, pageSize)

	leads, total, err := s.repo.GetByOrganizationID(*actor.OrganizationID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	responses := make([]LeadResponse, len(leads))
	for i, lead := range leads {
		responses[i] = *s.toResponse(&lead)
	}
	return &LeadListResponse{
		Leads:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to a lead. Only the current owner may
// mutate a lead, regardless of role.
func (s *LeadService) Update(actor *models.User, id uuid.UUID, req *UpdateLeadRequest) (*LeadResponse, error) {
	lead, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeLeadMutation(actor, lead); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.OwnerID != nil {
		owner, err := s.refs.ValidateOwner(lead.OrganizationID, *req.OwnerID)
		if err != nil {
			return nil, err
		}
		lead.OwnerID = &owner.ID
	}
	if req.FirstName != nil {
		lead.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		lead.LastName = *req.LastName
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		normalized, err := NormalizePhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		lead.Phone = normalized
	}

	if err := s.repo.Update(lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	return s.toResponse(lead), nil
}

// ChangeStatus moves a lead to a new status. Owner-only; the first change
// irreversibly flips IsNew to false.
func (s *LeadService) ChangeStatus(actor *models.User, id uuid.UUID, req *ChangeLeadStatusRequest) (*LeadResponse, error) {
	lead, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeLeadMutation(actor, lead); err != nil {
		return nil, err
	}

	status := models.LeadStatus(req.Status)
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidLeadStatus
	}

	lead.Status = status
	lead.IsNew = false
	if err := s.repo.Update(lead); err != nil {
		return nil, fmt.Errorf("failed to change lead status: %w", err)
	}
	return s.toResponse(lead), nil
}

// ConvertToContact atomically creates a contact from the lead's data and
// deletes the lead. Owner-only.
func (s *LeadService) ConvertToContact(actor *models.User, id uuid.UUID) (*ContactResponse, error) {
	lead, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeLeadMutation(actor, lead); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		OrganizationID: lead.OrganizationID,
		FirstName:      lead.FirstName,
		LastName:       lead.LastName,
		Email:          lead.Email,
		Phone:          lead.Phone,
	}

	err = s.tx.InTransaction(func(repos *repository.Repositories) error {
		if err := repos.Contacts.Create(contact); err != nil {
			return fmt.Errorf("failed to create contact from lead: %w", err)
		}
		rows, err := repos.Leads.Delete(id)
		if err != nil {
			return fmt.Errorf("failed to delete converted lead: %w", err)
		}
		if rows == 0 {
			return apperrors.ErrDeleteFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

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
	}, nil
}

// Delete deletes a lead. Admin-only, unlike other lead mutations.
func (s *LeadService) Delete(actor *models.User, id uuid.UUID) error {
	lead, err := s.fetch(id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.OpDelete, lead.OrganizationID); err != nil {
		return err
	}

	rows, err := s.repo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrDeleteFailed
	}
	return nil
}

func (s *LeadService) fetch(id uuid.UUID) (*models.Lead, error) {
	lead, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

// toResponse converts a lead model to response
func (s *LeadService) toResponse(lead *models.Lead) *LeadResponse {
	return &LeadResponse{
		ID:             lead.ID,
		OrganizationID: lead.OrganizationID,
		OwnerID:        lead.OwnerID,
		FirstName:      lead.FirstName,
		LastName:       lead.LastName,
		Email:          lead.Email,
		Phone:          lead.Phone,
		Status:         string(lead.Status),
		IsNew:          lead.IsNew,
		CreatedAt:      lead.CreatedAt.Format(timeFormat),
		UpdatedAt:      lead.UpdatedAt.Format(timeFormat),
	}
}
