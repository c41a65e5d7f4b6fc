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

// OrganizationService handles business logic for organizations, including
// the multi-document cascades that must run atomically
type OrganizationService struct {
	repo      repository.OrganizationRepositoryInterface
	users     repository.UserRepositoryInterface
	tx        repository.TransactionManagerInterface
	validator *validator.Validate
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	repo repository.OrganizationRepositoryInterface,
	users repository.UserRepositoryInterface,
	tx repository.TransactionManagerInterface,
	validator *validator.Validate,
) *OrganizationService {
	return &OrganizationService{
		repo:      repo,
		users:     users,
		tx:        tx,
		validator: validator,
	}
}

// CreateOrganizationRequest represents the request to create an organization
type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// ChangeOwnerRequest represents the request to transfer organization ownership
type ChangeOwnerRequest struct {
	NewOwnerID uuid.UUID `json:"new_owner_id" validate:"required"`
}

// OrganizationResponse represents the response for organization operations
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// DeleteOrganizationResponse reports how many dependents the cascade touched
type DeleteOrganizationResponse struct {
	AccountsDeleted int64 `json:"accounts_deleted"`
	ContactsDeleted int64 `json:"contacts_deleted"`
	DealsDeleted    int64 `json:"deals_deleted"`
	LeadsDeleted    int64 `json:"leads_deleted"`
	UsersDetached   int64 `json:"users_detached"`
}

// RemoveUserResponse reports the ownership unassignments caused by removing
// a user from an organization
type RemoveUserResponse struct {
	LeadsUnassigned int64 `json:"leads_unassigned"`
	DealsUnassigned int64 `json:"deals_unassigned"`
}

// Create creates a new organization owned by the actor. The actor must be
// unaffiliated; they become the owner with the ADMIN role in the same atomic
// unit that persists the organization.
func (s *OrganizationService) Create(actor *models.User, req *CreateOrganizationRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if actor.OrganizationID != nil {
		return nil, apperrors.ErrAlreadyInOrganization
	}

	if _, err := s.repo.GetByName(req.Name); err == nil {
		return nil, apperrors.ErrOrganizationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing organization by name: %w", err)
	}

	org := &models.Organization{
		Name:    req.Name,
		OwnerID: actor.ID,
	}

	err := s.tx.InTransaction(func(repos *repository.Repositories) error {
		if err := repos.Organizations.Create(org); err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}
		role := models.UserRoleAdmin
		actor.OrganizationID = &org.ID
		actor.Role = &role
		if err := repos.Users.Update(actor); err != nil {
			return fmt.Errorf("failed to promote organization owner: %w", err)
		}
		return nil
	})
	if err != nil {
		// The actor's in-memory affiliation must not outlive the rollback.
		actor.OrganizationID = nil
		actor.Role = nil
		return nil, err
	}

	return s.toResponse(org), nil
}

// GetByID retrieves an organization, enforcing tenancy
func (s *OrganizationService) GetByID(actor *models.User, id uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpRead, org.ID); err != nil {
		return nil, err
	}
	return s.toResponse(org), nil
}

// ChangeOwner transfers ownership of an organization to another user and
// promotes them to ADMIN, atomically. The new owner must not already belong
// to a different organization.
func (s *OrganizationService) ChangeOwner(actor *models.User, orgID uuid.UUID, req *ChangeOwnerRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	org, err := s.fetch(orgID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpTransferOwnership, org.ID); err != nil {
		return nil, err
	}

	newOwner, err := s.users.GetByID(req.NewOwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get new owner: %w", err)
	}
	if newOwner.OrganizationID != nil && *newOwner.OrganizationID != org.ID {
		return nil, apperrors.ErrNewOwnerInOtherOrganization
	}

	err = s.tx.InTransaction(func(repos *repository.Repositories) error {
		org.OwnerID = newOwner.ID
		if err := repos.Organizations.Update(org); err != nil {
			return fmt.Errorf("failed to update organization owner: %w", err)
		}
		role := models.UserRoleAdmin
		newOwner.OrganizationID = &org.ID
		newOwner.Role = &role
		if err := repos.Users.Update(newOwner); err != nil {
			return fmt.Errorf("failed to promote new owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(org), nil
}

// Delete deletes an organization and every dependent entity scoped to it,
// atomically, reporting the affected counts
func (s *OrganizationService) Delete(actor *models.User, id uuid.UUID) (*DeleteOrganizationResponse, error) {
	org, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpDelete, org.ID); err != nil {
		return nil, err
	}

	counts := &DeleteOrganizationResponse{}
	err = s.tx.InTransaction(func(repos *repository.Repositories) error {
		var err error
		if counts.DealsDeleted, err = repos.Deals.DeleteByOrganizationID(id); err != nil {
			return fmt.Errorf("failed to delete organization deals: %w", err)
		}
		if counts.ContactsDeleted, err = repos.Contacts.DeleteByOrganizationID(id); err != nil {
			return fmt.Errorf("failed to delete organization contacts: %w", err)
		}
		if counts.AccountsDeleted, err = repos.Accounts.DeleteByOrganizationID(id); err != nil {
			return fmt.Errorf("failed to delete organization accounts: %w", err)
		}
		if counts.LeadsDeleted, err = repos.Leads.DeleteByOrganizationID(id); err != nil {
			return fmt.Errorf("failed to delete organization leads: %w", err)
		}
		if counts.UsersDetached, err = repos.Users.ClearOrganization(id); err != nil {
			return fmt.Errorf("failed to detach organization users: %w", err)
		}
		rows, err := repos.Organizations.Delete(id)
		if err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}
		if rows == 0 {
			return apperrors.ErrDeleteFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// RemoveUser detaches a user from the organization, clearing their role and
// un-assigning them as owner from every lead and deal they owned, atomically
func (s *OrganizationService) RemoveUser(actor *models.User, orgID uuid.UUID, userID uuid.UUID) (*RemoveUserResponse, error) {
	org, err := s.fetch(orgID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpRemoveMember, org.ID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.BelongsTo(orgID) {
		return nil, apperrors.ErrDifferentOrganization
	}

	counts := &RemoveUserResponse{}
	err = s.tx.InTransaction(func(repos *repository.Repositories) error {
		user.OrganizationID = nil
		user.Role = nil
		if err := repos.Users.Update(user); err != nil {
			return fmt.Errorf("failed to detach user: %w", err)
		}
		var err error
		if counts.LeadsUnassigned, err = repos.Leads.UnassignOwner(userID); err != nil {
			return fmt.Errorf("failed to unassign user from leads: %w", err)
		}
		if counts.DealsUnassigned, err = repos.Deals.UnassignOwner(userID); err != nil {
			return fmt.Errorf("failed to unassign user from deals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *OrganizationService) fetch(id uuid.UUID) (*models.Organization, error) {
	org, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// toResponse converts an organization model to response
func (s *OrganizationService) toResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		OwnerID:   org.OwnerID,
		CreatedAt: org.CreatedAt.Format(timeFormat),
		UpdatedAt: org.UpdatedAt.Format(timeFormat),
	}
}
