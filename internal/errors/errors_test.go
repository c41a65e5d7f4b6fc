package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelComparison(t *testing.T) {
	assert.ErrorIs(t, ErrDealNotFound, ErrDealNotFound)
	assert.NotErrorIs(t, ErrDealNotFound, ErrAccountNotFound)
	assert.NotErrorIs(t, ErrDealNotFound, ErrDealExists)

	// Wrapping preserves identity.
	wrapped := fmt.Errorf("while handling request: %w", ErrLeadNotFound)
	assert.ErrorIs(t, wrapped, ErrLeadNotFound)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{"not found", ErrOrganizationNotFound, IsNotFound, true},
		{"not found on authz error", ErrNotAuthorized, IsNotFound, false},
		{"authorization", ErrNotAuthorized, IsAuthorization, true},
		{"authorization on lead owner", ErrNotLeadOwner, IsAuthorization, true},
		{"different organization", ErrAssignedOwnerDifferentOrg, IsDifferentOrganization, true},
		{"different organization is not authorization", ErrDifferentOrganization, IsAuthorization, false},
		{"already exists", ErrDealExists, IsAlreadyExists, true},
		{"conflict covers already exists", ErrOrganizationExists, IsConflict, true},
		{"conflict", ErrAlreadyInOrganization, IsConflict, true},
		{"validation", ErrPhoneNumberNotValid, IsValidation, true},
		{"authentication", ErrInvalidCredentials, IsAuthentication, true},
		{"plain error matches nothing", errors.New("boom"), IsOperational, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.predicate(tt.err))
		})
	}
}

func TestPredicatesOnWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("checking references: %w", ErrSomeContactsDifferentOrg)
	assert.True(t, IsDifferentOrganization(wrapped))
	assert.True(t, IsOperational(wrapped))

	infra := fmt.Errorf("failed to delete deal: %w", errors.New("connection reset"))
	assert.False(t, IsOperational(infra))
}

func TestIsOperationalCoversAllDomainFamilies(t *testing.T) {
	for _, err := range []error{
		ErrUserNotFound,
		ErrNotAuthorized,
		ErrDifferentOrganization,
		ErrDealExists,
		ErrNewOwnerInOtherOrganization,
		ErrCurrencyNotValid,
		ErrInvalidToken,
	} {
		assert.True(t, IsOperational(err), "expected %v to be operational", err)
	}

	assert.False(t, IsOperational(ErrDeleteFailed))
}
