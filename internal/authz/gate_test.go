package authz_test

import (
	"testing"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func actorWithRole(orgID uuid.UUID, role models.UserRole) *models.User {
	return &models.User{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: &orgID,
		Role:           &role,
	}
}

func TestAuthorizeRoleMatrix(t *testing.T) {
	orgID := uuid.New()

	tests := []struct {
		name    string
		role    models.UserRole
		op      authz.Operation
		wantErr error
	}{
		{"admin read", models.UserRoleAdmin, authz.OpRead, nil},
		{"admin create", models.UserRoleAdmin, authz.OpCreate, nil},
		{"admin update", models.UserRoleAdmin, authz.OpUpdate, nil},
		{"admin delete", models.UserRoleAdmin, authz.OpDelete, nil},
		{"admin remove member", models.UserRoleAdmin, authz.OpRemoveMember, nil},
		{"admin transfer", models.UserRoleAdmin, authz.OpTransferOwnership, nil},
		{"member read", models.UserRoleMember, authz.OpRead, nil},
		{"member create", models.UserRoleMember, authz.OpCreate, nil},
		{"member update", models.UserRoleMember, authz.OpUpdate, nil},
		{"member delete", models.UserRoleMember, authz.OpDelete, apperrors.ErrNotAuthorized},
		{"member remove member", models.UserRoleMember, authz.OpRemoveMember, apperrors.ErrNotAuthorized},
		{"member transfer", models.UserRoleMember, authz.OpTransferOwnership, apperrors.ErrOrganizationTransferDenied},
		{"read-only read", models.UserRoleReadOnly, authz.OpRead, nil},
		{"read-only create", models.UserRoleReadOnly, authz.OpCreate, apperrors.ErrNotAuthorized},
		{"read-only update", models.UserRoleReadOnly, authz.OpUpdate, apperrors.ErrNotAuthorized},
		{"read-only delete", models.UserRoleReadOnly, authz.OpDelete, apperrors.ErrNotAuthorized},
		{"read-only transfer", models.UserRoleReadOnly, authz.OpTransferOwnership, apperrors.ErrOrganizationTransferDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := actorWithRole(orgID, tt.role)
			err := authz.Authorize(actor, tt.op, orgID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeTenancyBeforeRole(t *testing.T) {
	// A cross-tenant attempt is reported as such even for an admin, and even
	// for operations the actor's role would otherwise forbid.
	actor := actorWithRole(uuid.New(), models.UserRoleReadOnly)
	otherOrg := uuid.New()

	for _, op := range []authz.Operation{authz.OpRead, authz.OpCreate, authz.OpUpdate, authz.OpDelete, authz.OpTransferOwnership} {
		err := authz.Authorize(actor, op, otherOrg)
		assert.ErrorIs(t, err, apperrors.ErrDifferentOrganization, "op %s", op)
	}
}

func TestAuthorizeUnaffiliatedActor(t *testing.T) {
	actor := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}}

	err := authz.Authorize(actor, authz.OpRead, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	err = authz.Authorize(nil, authz.OpRead, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestAuthorizeCreate(t *testing.T) {
	orgID := uuid.New()

	assert.NoError(t, authz.AuthorizeCreate(actorWithRole(orgID, models.UserRoleAdmin)))
	assert.NoError(t, authz.AuthorizeCreate(actorWithRole(orgID, models.UserRoleMember)))
	assert.ErrorIs(t, authz.AuthorizeCreate(actorWithRole(orgID, models.UserRoleReadOnly)), apperrors.ErrNotAuthorized)
	assert.ErrorIs(t, authz.AuthorizeCreate(&models.User{}), apperrors.ErrNotAuthorized)
}

func TestAuthorizeLeadMutation(t *testing.T) {
	orgID := uuid.New()
	owner := actorWithRole(orgID, models.UserRoleReadOnly)
	admin := actorWithRole(orgID, models.UserRoleAdmin)
	stranger := actorWithRole(uuid.New(), models.UserRoleAdmin)

	lead := &models.Lead{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		OwnerID:        &owner.ID,
	}

	// Ownership decides, not role: the read-only owner may mutate, the admin
	// non-owner may not.
	assert.NoError(t, authz.AuthorizeLeadMutation(owner, lead))
	assert.ErrorIs(t, authz.AuthorizeLeadMutation(admin, lead), apperrors.ErrNotLeadOwner)
	assert.ErrorIs(t, authz.AuthorizeLeadMutation(stranger, lead), apperrors.ErrDifferentOrganization)

	unowned := &models.Lead{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID}
	assert.ErrorIs(t, authz.AuthorizeLeadMutation(admin, unowned), apperrors.ErrNotLeadOwner)
}
