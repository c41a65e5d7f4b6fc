package service

import (
	"errors"
	"fmt"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for users
type UserService struct {
	repo repository.UserRepositoryInterface
	tx   repository.TransactionManagerInterface
}

// NewUserService creates a new user service
func NewUserService(
	repo repository.UserRepositoryInterface,
	tx repository.TransactionManagerInterface,
) *UserService {
	return &UserService{
		repo: repo,
		tx:   tx,
	}
}

// UserResponse represents the response for user operations
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           *string    `json:"role,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// GetMe returns the authenticated user's own profile
func (s *UserService) GetMe(actor *models.User) *UserResponse {
	return s.toResponse(actor)
}

// GetByID retrieves a user. The target must share the actor's organization.
func (s *UserService) GetByID(actor *models.User, id uuid.UUID) (*UserResponse, error) {
	user, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if actor.OrganizationID == nil || !user.BelongsTo(*actor.OrganizationID) {
		return nil, apperrors.ErrDifferentOrganization
	}
	return s.toResponse(user), nil
}

// List retrieves the users in the actor's organization with pagination
func (s *UserService) List(actor *models.User, page, pageSize int) (*UserListResponse, error) {
	if actor.OrganizationID == nil {
		return nil, apperrors.ErrNotAuthorized
	}
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := s.repo.GetByOrganizationID(*actor.OrganizationID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = *s.toResponse(&user)
	}
	return &UserListResponse{
		Users:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Delete removes a user account. Users may only delete themselves; the
// deletion un-assigns them from leads they own in the same atomic unit.
func (s *UserService) Delete(actor *models.User, id uuid.UUID) error {
	if actor.ID != id {
		return apperrors.ErrOnlySelfDelete
	}

	return s.tx.InTransaction(func(repos *repository.Repositories) error {
		if _, err := repos.Leads.UnassignOwner(id); err != nil {
			return fmt.Errorf("failed to unassign user from leads: %w", err)
		}
		rows, err := repos.Users.Delete(id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if rows == 0 {
			return apperrors.ErrDeleteFailed
		}
		return nil
	})
}

func (s *UserService) fetch(id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// toResponse converts a user model to response
func (s *UserService) toResponse(user *models.User) *UserResponse {
	var role *string
	if user.Role != nil {
		r := string(*user.Role)
		role = &r
	}
	return &UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           role,
		OrganizationID: user.OrganizationID,
		CreatedAt:      user.CreatedAt.Format(timeFormat),
		UpdatedAt:      user.UpdatedAt.Format(timeFormat),
	}
}
