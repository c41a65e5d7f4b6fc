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

// ReferenceValidator resolves reference fields on incoming payloads and
// confirms each one exists and belongs to the given organization. Failures
// are reported in a fixed order: existence, then tenancy, then
// role-suitability where it applies.
type ReferenceValidator struct {
	users    repository.UserRepositoryInterface
	accounts repository.AccountRepositoryInterface
	contacts repository.ContactRepositoryInterface
}

// NewReferenceValidator creates a new reference validator
func NewReferenceValidator(
	users repository.UserRepositoryInterface,
	accounts repository.AccountRepositoryInterface,
	contacts repository.ContactRepositoryInterface,
) *ReferenceValidator {
	return &ReferenceValidator{
		users:    users,
		accounts: accounts,
		contacts: contacts,
	}
}

// ValidateOwner resolves a user assigned as owner of a lead or deal. The
// resolved user must belong to orgID and must not hold the READ_ONLY role at
// assignment time.
func (v *ReferenceValidator) ValidateOwner(orgID uuid.UUID, ownerID uuid.UUID) (*models.User, error) {
	owner, err := v.users.GetByID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssignedOwnerNotFound
		}
		return nil, fmt.Errorf("failed to resolve assigned owner: %w", err)
	}
	if !owner.BelongsTo(orgID) {
		return nil, apperrors.ErrAssignedOwnerDifferentOrg
	}
	if owner.HasRole(models.UserRoleReadOnly) {
		return nil, apperrors.ErrAssignedOwnerReadOnly
	}
	return owner, nil
}

// ValidateAccount resolves an account reference within orgID
func (v *ReferenceValidator) ValidateAccount(orgID uuid.UUID, accountID uuid.UUID) (*models.Account, error) {
	account, err := v.accounts.GetByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssignedAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve assigned account: %w", err)
	}
	if account.OrganizationID != orgID {
		return nil, apperrors.ErrAssignedAccountDifferentOrg
	}
	return account, nil
}

// ValidateContacts batch-resolves a collection of contact references. The
// verdict is aggregate: if any id is missing the whole set is reported as
// not found; if all exist but any is foreign, the set is reported as
// belonging to a different organization.
func (v *ReferenceValidator) ValidateContacts(orgID uuid.UUID, ids []uuid.UUID) ([]models.Contact, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	contacts, err := v.contacts.GetByIDs(unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assigned contacts: %w", err)
	}
	if len(contacts) != len(unique) {
		return nil, apperrors.ErrSomeContactsNotFound
	}
	for _, contact := range contacts {
		if contact.OrganizationID != orgID {
			return nil, apperrors.ErrSomeContactsDifferentOrg
		}
	}
	return contacts, nil
}
