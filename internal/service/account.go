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

// AccountService handles business logic for accounts
type AccountService struct {
	repo      repository.AccountRepositoryInterface
	validator *validator.Validate
}

// NewAccountService creates a new account service
func NewAccountService(repo repository.AccountRepositoryInterface, validator *validator.Validate) *AccountService {
	return &AccountService{
		repo:      repo,
		validator: validator,
	}
}

// CreateAccountRequest represents the request to create an account
type CreateAccountRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Industry string  `json:"industry" validate:"max=100"`
	Size     *string `json:"size"`
	Type     string  `json:"type" validate:"max=100"`
	Priority *string `json:"priority"`
}

// UpdateAccountRequest represents the request to update an account.
// Absent fields are left untouched.
type UpdateAccountRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Industry *string `json:"industry" validate:"omitempty,max=100"`
	Size     *string `json:"size"`
	Type     *string `json:"type" validate:"omitempty,max=100"`
	Priority *string `json:"priority"`
}

// AccountResponse represents the response for account operations
type AccountResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Industry       string    `json:"industry"`
	Size           string    `json:"size"`
	Type           string    `json:"type"`
	Priority       string    `json:"priority"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}

// AccountListResponse represents a paginated list of accounts
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create creates a new account in the actor's organization
func (s *AccountService) Create(actor *models.User, req *CreateAccountRequest) (*AccountResponse, error) {
	if err := authz.AuthorizeCreate(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	size := models.AccountSizeSmall
	if req.Size != nil {
		size = models.AccountSize(*req.Size)
		if !size.IsValid() {
			return nil, apperrors.NewValidationError("size", "invalid account size")
		}
	}
	priority := models.AccountPriorityMedium
	if req.Priority != nil {
		priority = models.AccountPriority(*req.Priority)
		if !priority.IsValid() {
			return nil, apperrors.NewValidationError("priority", "invalid account priority")
		}
	}

	account := &models.Account{
		OrganizationID: *actor.OrganizationID,
		Name:           req.Name,
		Industry:       req.Industry,
		Size:           size,
		Type:           req.Type,
		Priority:       priority,
	}

	if err := s.repo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.toResponse(account), nil
}

// GetByID retrieves an account, enforcing tenancy
func (s *AccountService) GetByID(actor *models.User, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpRead, account.OrganizationID); err != nil {
		return nil, err
	}
	return s.toResponse(account), nil
}

// List retrieves the accounts in the actor's organization with pagination
func (s *AccountService) List(actor *models.User, page, pageSize int) (*AccountListResponse, error) {
	if actor.OrganizationID == nil {
		return nil, apperrors.ErrNotAuthorized
	}
	page, pageSize = normalizePagination(page, pageSize)

	accounts, total, err := s.repo.GetByOrganizationID(*actor.OrganizationID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	responses := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = *s.toResponse(&account)
	}
	return &AccountListResponse{
		Accounts: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to an account
func (s *AccountService) Update(actor *models.User, id uuid.UUID, req *UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpUpdate, account.OrganizationID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Industry != nil {
		account.Industry = *req.Industry
	}
	if req.Size != nil {
		size := models.AccountSize(*req.Size)
		if !size.IsValid() {
			return nil, apperrors.NewValidationError("size", "invalid account size")
		}
		account.Size = size
	}
	if req.Type != nil {
		account.Type = *req.Type
	}
	if req.Priority != nil {
		priority := models.AccountPriority(*req.Priority)
		if !priority.IsValid() {
			return nil, apperrors.NewValidationError("priority", "invalid account priority")
		}
		account.Priority = priority
	}

	if err := s.repo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return s.toResponse(account), nil
}

// Delete deletes an account. Deals referencing the account are left as they
// are; only contact deletion cascades into deals.
func (s *AccountService) Delete(actor *models.User, id uuid.UUID) error {
	account, err := s.fetch(id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.OpDelete, account.OrganizationID); err != nil {
		return err
	}

	rows, err := s.repo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrDeleteFailed
	}
	return nil
}

func (s *AccountService) fetch(id uuid.UUID) (*models.Account, error) {
	account, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// toResponse converts an account model to response
func (s *AccountService) toResponse(account *models.Account) *AccountResponse {
	return &AccountResponse{
		ID:             account.ID,
		OrganizationID: account.OrganizationID,
		Name:           account.Name,
		Industry:       account.Industry,
		Size:           string(account.Size),
		Type:           account.Type,
		Priority:       string(account.Priority),
		CreatedAt:      account.CreatedAt.Format(timeFormat),
		UpdatedAt:      account.UpdatedAt.Format(timeFormat),
	}
}
