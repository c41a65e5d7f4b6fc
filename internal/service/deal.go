package service

import (
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealService handles business logic for deals
type DealService struct {
	repo      repository.DealRepositoryInterface
	refs      *ReferenceValidator
	validator *validator.Validate
}

// NewDealService creates a new deal service
func NewDealService(
	repo repository.DealRepositoryInterface,
	refs *ReferenceValidator,
	validator *validator.Validate,
) *DealService {
	return &DealService{
		repo:      repo,
		refs:      refs,
		validator: validator,
	}
}

// MoneyRequest carries an amount in minor units plus an ISO 4217 currency code
type MoneyRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency" validate:"required,len=3"`
}

// CreateDealRequest represents the request to create a deal
type CreateDealRequest struct {
	Name       string        `json:"name" validate:"required,min=1,max=200"`
	OwnerID    uuid.UUID     `json:"owner_id" validate:"required"`
	AccountID  uuid.UUID     `json:"account_id" validate:"required"`
	ContactIDs []uuid.UUID   `json:"contact_ids" validate:"required"`
	Stage      *string       `json:"stage"`
	Value      *MoneyRequest `json:"value"`
}

// UpdateDealRequest represents the request to update a deal.
// Absent fields are left untouched.
type UpdateDealRequest struct {
	Name        *string       `json:"name" validate:"omitempty,min=1,max=200"`
	OwnerID     *uuid.UUID    `json:"owner_id"`
	AccountID   *uuid.UUID    `json:"account_id"`
	ContactIDs  []uuid.UUID   `json:"contact_ids"`
	Stage       *string       `json:"stage"`
	Value       *MoneyRequest `json:"value"`
	ActualValue *MoneyRequest `json:"actual_value"`
	ClosedAt    *time.Time    `json:"closed_at"`
}

// MoneyResponse mirrors MoneyRequest with a human-readable rendering
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
}

// DealResponse represents the response for deal operations
type DealResponse struct {
	ID             uuid.UUID     `json:"id"`
	OrganizationID uuid.UUID     `json:"organization_id"`
	OwnerID        *uuid.UUID    `json:"owner_id,omitempty"`
	AccountID      uuid.UUID     `json:"account_id"`
	Name           string        `json:"name"`
	Stage          string        `json:"stage"`
	Value          MoneyResponse `json:"value"`
	ActualValue    MoneyResponse `json:"actual_value"`
	ContactIDs     []uuid.UUID   `json:"contact_ids"`
	ClosedAt       *time.Time    `json:"closed_at,omitempty"`
	CreatedAt      string        `json:"created_at"`
	UpdatedAt      string        `json:"updated_at"`
}

// DealListResponse represents a paginated list of deals
type DealListResponse struct {
	Deals    []DealResponse `json:"deals"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create creates a new deal in the actor's organization. Owner, account and
// every contact reference must resolve inside that organization; the deal
// name must be unique across the system.
func (s *DealService) Create(actor *models.User, req *CreateDealRequest) (*DealResponse, error) {
	if err := authz.AuthorizeCreate(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	orgID := *actor.OrganizationID

	// References resolve before any domain-level checks so a dangling or
	// foreign reference wins over a malformed stage, currency or count.
	owner, err := s.refs.ValidateOwner(orgID, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.refs.ValidateAccount(orgID, req.AccountID); err != nil {
		return nil, err
	}
	contacts, err := s.refs.ValidateContacts(orgID, req.ContactIDs)
	if err != nil {
		return nil, err
	}

	if len(req.ContactIDs) < models.MinDealContacts || len(req.ContactIDs) > models.MaxDealContacts {
		return nil, apperrors.ErrContactsCountInvalid
	}

	stage := models.DealStageNew
	if req.Stage != nil {
		stage = models.DealStage(*req.Stage)
		if !stage.IsValid() {
			return nil, apperrors.ErrInvalidDealStage
		}
	}

	valueAmount, valueCurrency, err := resolveMoney(req.Value)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByName(req.Name); err == nil {
		return nil, apperrors.ErrDealExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing deal by name: %w", err)
	}

	deal := &models.Deal{
		OrganizationID: orgID,
		OwnerID:        &owner.ID,
		AccountID:      req.AccountID,
		Name:           req.Name,
		Stage:          stage,
		ValueAmount:    valueAmount,
		ValueCurrency:  valueCurrency,
		ActualCurrency: valueCurrency,
	}
	if stage.IsTerminal() {
		now := time.Now()
		deal.ClosedAt = &now
	}

	if err := s.repo.Create(deal, contacts); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}
	return s.toResponse(deal), nil
}

// GetByID retrieves a deal, enforcing tenancy
func (s *DealService) GetByID(actor *models.User, id uuid.UUID) (*DealResponse, error) {
	deal, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpRead, deal.OrganizationID); err != nil {
		return nil, err
	}
	return s.toResponse(deal), nil
}

// List retrieves the deals in the actor's organization with pagination
func (s *DealService) List(actor *models.User, page, pageSize int) (*DealListResponse, error) {
	if actor.OrganizationID == nil {
		return nil, apperrors.ErrNotAuthorized
	}
	page, pageSize = normalizePagination(page, pageSize)

	deals, total, err := s.repo.GetByOrganizationID(*actor.OrganizationID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}

	responses := make([]DealResponse, len(deals))
	for i, deal := range deals {
		responses[i] = *s.toResponse(&deal)
	}
	return &DealListResponse{
		Deals:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to a deal. A transition into WON or LOST
// stamps ClosedAt with the update time unless the payload supplies one; a
// transition out of a terminal stage clears it.
func (s *DealService) Update(actor *models.User, id uuid.UUID, req *UpdateDealRequest) (*DealResponse, error) {
	deal, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.OpUpdate, deal.OrganizationID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	orgID := deal.OrganizationID

	if req.OwnerID != nil {
		owner, err := s.refs.ValidateOwner(orgID, *req.OwnerID)
		if err != nil {
			return nil, err
		}
		deal.OwnerID = &owner.ID
	}
	if req.AccountID != nil {
		if _, err := s.refs.ValidateAccount(orgID, *req.AccountID); err != nil {
			return nil, err
		}
		deal.AccountID = *req.AccountID
	}

	var newContacts []models.Contact
	if req.ContactIDs != nil {
		newContacts, err = s.refs.ValidateContacts(orgID, req.ContactIDs)
		if err != nil {
			return nil, err
		}
		if len(req.ContactIDs) < models.MinDealContacts || len(req.ContactIDs) > models.MaxDealContacts {
			return nil, apperrors.ErrContactsCountInvalid
		}
	}

	if req.Name != nil && *req.Name != deal.Name {
		if _, err := s.repo.GetByName(*req.Name); err == nil {
			return nil, apperrors.ErrDealExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing deal by name: %w", err)
		}
		deal.Name = *req.Name
	}

	if req.Stage != nil {
		stage := models.DealStage(*req.Stage)
		if !stage.IsValid() {
			return nil, apperrors.ErrInvalidDealStage
		}
		wasTerminal := deal.Stage.IsTerminal()
		deal.Stage = stage
		switch {
		case stage.IsTerminal() && req.ClosedAt == nil && deal.ClosedAt == nil:
			now := time.Now()
			deal.ClosedAt = &now
		case !stage.IsTerminal() && wasTerminal:
			// Reopening a closed deal invalidates its close timestamp.
			deal.ClosedAt = nil
		}
	}
	if req.ClosedAt != nil {
		deal.ClosedAt = req.ClosedAt
	}

	if req.Value != nil {
		amount, currency, err := resolveMoney(req.Value)
		if err != nil {
			return nil, err
		}
		deal.ValueAmount = amount
		deal.ValueCurrency = currency
	}
	if req.ActualValue != nil {
		amount, currency, err := resolveMoney(req.ActualValue)
		if err != nil {
			return nil, err
		}
		deal.ActualAmount = amount
		deal.ActualCurrency = currency
	}

	if err := s.repo.Update(deal); err != nil {
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}
	if newContacts != nil {
		if err := s.repo.ReplaceContacts(deal, newContacts); err != nil {
			return nil, fmt.Errorf("failed to update deal contacts: %w", err)
		}
		deal.Contacts = newContacts
	}
	return s.toResponse(deal), nil
}

// Delete deletes a deal
func (s *DealService) Delete(actor *models.User, id uuid.UUID) error {
	deal, err := s.fetch(id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.OpDelete, deal.OrganizationID); err != nil {
		return err
	}

	rows, err := s.repo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrDeleteFailed
	}
	return nil
}

func (s *DealService) fetch(id uuid.UUID) (*models.Deal, error) {
	deal, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return deal, nil
}

// resolveMoney validates an optional money payload, defaulting to zero USD
func resolveMoney(req *MoneyRequest) (int64, string, error) {
	if req == nil {
		return 0, money.USD, nil
	}
	if money.GetCurrency(req.Currency) == nil {
		return 0, "", apperrors.ErrCurrencyNotValid
	}
	return req.Amount, req.Currency, nil
}

func toMoneyResponse(amount int64, currency string) MoneyResponse {
	return MoneyResponse{
		Amount:   amount,
		Currency: currency,
		Display:  money.New(amount, currency).Display(),
	}
}

// toResponse converts a deal model to response
func (s *DealService) toResponse(deal *models.Deal) *DealResponse {
	contactIDs := make([]uuid.UUID, len(deal.Contacts))
	for i, contact := range deal.Contacts {
		contactIDs[i] = contact.ID
	}
	return &DealResponse{
		ID:             deal.ID,
		OrganizationID: deal.OrganizationID,
		OwnerID:        deal.OwnerID,
		AccountID:      deal.AccountID,
		Name:           deal.Name,
		Stage:          string(deal.Stage),
		Value:          toMoneyResponse(deal.ValueAmount, deal.ValueCurrency),
		ActualValue:    toMoneyResponse(deal.ActualAmount, deal.ActualCurrency),
		ContactIDs:     contactIDs,
		ClosedAt:       deal.ClosedAt,
		CreatedAt:      deal.CreatedAt.Format(timeFormat),
		UpdatedAt:      deal.UpdatedAt.Format(timeFormat),
	}
}
