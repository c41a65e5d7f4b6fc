// Package authz implements the role-based access gate shared by every
// service. The gate is pure: callers fetch the target entity first and pass
// its organization in, so the check order is always existence (caller),
// then tenancy, then role.
package authz

import (
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/google/uuid"
)

// Operation is the kind of mutation being authorized
type Operation string

const (
	OpRead              Operation = "read"
	OpCreate            Operation = "create"
	OpUpdate            Operation = "update"
	OpDelete            Operation = "delete"
	OpTransferOwnership Operation = "transfer_ownership"
	OpRemoveMember      Operation = "remove_member"
)

// Authorize applies the uniform tenancy and role rules for an operation
// against an entity in targetOrgID. It performs no I/O.
//
// Tenancy is checked before the role rule so that cross-tenant attempts are
// reported as such regardless of the actor's role.
func Authorize(actor *models.User, op Operation, targetOrgID uuid.UUID) error {
	if actor == nil || actor.Role == nil {
		return apperrors.ErrNotAuthorized
	}
	if !actor.BelongsTo(targetOrgID) {
		return apperrors.ErrDifferentOrganization
	}

	switch op {
	case OpRead:
		return nil
	case OpCreate, OpUpdate:
		if *actor.Role == models.UserRoleReadOnly {
			return apperrors.ErrNotAuthorized
		}
		return nil
	case OpDelete, OpRemoveMember:
		if *actor.Role != models.UserRoleAdmin {
			return apperrors.ErrNotAuthorized
		}
		return nil
	case OpTransferOwnership:
		if *actor.Role != models.UserRoleAdmin {
			return apperrors.ErrOrganizationTransferDenied
		}
		return nil
	}
	return apperrors.ErrNotAuthorized
}

// AuthorizeCreate gates entity creation inside the actor's own organization.
// An unaffiliated actor has nowhere to create into, so the check covers
// affiliation as well as role.
func AuthorizeCreate(actor *models.User) error {
	if actor == nil || actor.Role == nil || actor.OrganizationID == nil {
		return apperrors.ErrNotAuthorized
	}
	if *actor.Role == models.UserRoleReadOnly {
		return apperrors.ErrNotAuthorized
	}
	return nil
}

// AuthorizeLeadMutation gates lead updates and status changes: ownership,
// not role, decides. The tenancy check still runs first.
func AuthorizeLeadMutation(actor *models.User, lead *models.Lead) error {
	if actor == nil || actor.Role == nil {
		return apperrors.ErrNotAuthorized
	}
	if !actor.BelongsTo(lead.OrganizationID) {
		return apperrors.ErrDifferentOrganization
	}
	if !lead.IsOwnedBy(actor.ID) {
		return apperrors.ErrNotLeadOwner
	}
	return nil
}
