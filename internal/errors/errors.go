package errors

import (
	"errors"
	"fmt"
)

// GenericMessage is what callers see for unexpected failures. Diagnostic
// detail stays in the logs.
const GenericMessage = "Something went wrong"

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this name"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AuthorizationError represents a denied operation. System state is
// unaffected; the caller cannot retry their way past it.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison for AuthorizationError
func (e *AuthorizationError) Is(target error) bool {
	t, ok := target.(*AuthorizationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// DifferentOrganizationError represents a tenancy violation: the referenced
// entity exists but belongs to another organization. Reported distinctly from
// NotFoundError because existence is checked first.
type DifferentOrganizationError struct {
	Entity string
}

func (e *DifferentOrganizationError) Error() string {
	return fmt.Sprintf("%s belongs to a different organization", e.Entity)
}

// Is enables errors.Is() comparison for DifferentOrganizationError
func (e *DifferentOrganizationError) Is(target error) bool {
	t, ok := target.(*DifferentOrganizationError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ConflictError represents a state conflict that is not a duplicate entity,
// e.g. assigning an owner who already belongs to another organization.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison for ConflictError
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// ValidationError represents a domain validation error, distinct from
// request-shape errors caught at binding time
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Is enables errors.Is() comparison for ValidationError
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Field == t.Field && e.Message == t.Message
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrAccountNotFound      = &NotFoundError{Entity: "account"}
	ErrContactNotFound      = &NotFoundError{Entity: "contact"}
	ErrDealNotFound         = &NotFoundError{Entity: "deal"}
	ErrLeadNotFound         = &NotFoundError{Entity: "lead"}

	// Reference-field resolution failures
	ErrAssignedOwnerNotFound   = &NotFoundError{Entity: "assigned owner"}
	ErrAssignedAccountNotFound = &NotFoundError{Entity: "assigned account"}
	ErrSomeContactsNotFound    = &NotFoundError{Entity: "some of the assigned contacts"}
)

// Authorization Errors
var (
	ErrNotAuthorized = &AuthorizationError{Message: "not authorized to perform this operation"}

	// Reference-field tenancy failures
	ErrDifferentOrganization       = &DifferentOrganizationError{Entity: "entity"}
	ErrAssignedOwnerDifferentOrg   = &DifferentOrganizationError{Entity: "assigned owner"}
	ErrAssignedAccountDifferentOrg = &DifferentOrganizationError{Entity: "assigned account"}
	ErrSomeContactsDifferentOrg    = &DifferentOrganizationError{Entity: "some of the assigned contacts"}
	ErrAssignedOwnerReadOnly       = &AuthorizationError{Message: "a read-only user cannot be assigned as owner"}
	ErrNotLeadOwner                = &AuthorizationError{Message: "only the lead owner can perform this operation"}
	ErrOnlySelfDelete              = &AuthorizationError{Message: "a user can only delete their own account"}
	ErrOrganizationTransferDenied  = &AuthorizationError{Message: "only an admin of the organization can transfer ownership"}
)

// Conflict Errors
var (
	ErrOrganizationExists          = &AlreadyExistsError{Entity: "organization", Context: "with this name"}
	ErrDealExists                  = &AlreadyExistsError{Entity: "deal", Context: "with this name"}
	ErrUserExists                  = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrAlreadyInOrganization       = &ConflictError{Message: "user is already associated with an organization"}
	ErrNewOwnerInOtherOrganization = &ConflictError{Message: "new owner already belongs to a different organization"}
)

// Domain Validation Errors
var (
	ErrPhoneNumberNotValid  = &ValidationError{Field: "phone", Message: "phone number is not valid"}
	ErrCurrencyNotValid     = &ValidationError{Field: "currency", Message: "currency code is not valid"}
	ErrInvalidLeadStatus    = &ValidationError{Field: "status", Message: "invalid lead status"}
	ErrInvalidDealStage     = &ValidationError{Field: "stage", Message: "invalid deal stage"}
	ErrInvalidRole          = &ValidationError{Field: "role", Message: "invalid role"}
	ErrContactsCountInvalid = &ValidationError{Field: "contacts", Message: "a deal must reference between 1 and 5 contacts"}
)

// Authentication Errors
var (
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid email or password"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired token"}
)

// Infrastructure Errors
var (
	// ErrDeleteFailed is reported when the storage layer removes zero rows
	// despite a prior existence check (a race with a concurrent delete).
	ErrDeleteFailed = errors.New("delete was not applied")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsDifferentOrganization checks if an error is a DifferentOrganizationError
func IsDifferentOrganization(err error) bool {
	var orgErr *DifferentOrganizationError
	return errors.As(err, &orgErr)
}

// IsConflict checks if an error is a ConflictError or an AlreadyExistsError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr) || IsAlreadyExists(err)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsOperational reports whether the error is an expected, client-reportable
// outcome. Anything else is treated as an infrastructure failure and surfaced
// to the caller as GenericMessage only.
func IsOperational(err error) bool {
	return IsNotFound(err) ||
		IsAuthorization(err) ||
		IsDifferentOrganization(err) ||
		IsConflict(err) ||
		IsValidation(err) ||
		IsAuthentication(err)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
