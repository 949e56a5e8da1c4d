package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrAlreadyInFamily indicates the user already belongs to a family and cannot
// create or join another one.
var ErrAlreadyInFamily = errors.New("user already belongs to a family")

// ErrFamilyNotFound indicates the referenced family does not exist. It wraps
// ErrNotFound so callers matching on either sentinel treat it the same way.
var ErrFamilyNotFound = fmt.Errorf("family not found: %w", ErrNotFound)

// ErrTimeout indicates a store call exceeded its deadline. Kept distinct from
// ErrNotFound so callers retry with backoff instead of provisioning a profile.
var ErrTimeout = errors.New("operation timed out")

// ErrTransient indicates a network-level failure that the caller may retry.
var ErrTransient = errors.New("transient store error")

// ErrProfileProvisioningFailed indicates both the profile read and the
// fallback provisioning insert failed.
var ErrProfileProvisioningFailed = errors.New("profile provisioning failed")

// ErrRefreshFailed indicates profile re-resolution exhausted its retries.
// Callers are expected to keep the previously resolved profile.
var ErrRefreshFailed = errors.New("profile refresh failed")

// RoleSlotTakenError is returned when joining a family whose slot for the
// joining user's role is already occupied. The message names the role.
type RoleSlotTakenError struct {
	Role string
}

func (e *RoleSlotTakenError) Error() string {
	return fmt.Sprintf("family already has a member with role %s", e.Role)
}

// NewRoleSlotTakenError creates a RoleSlotTakenError for the given role.
func NewRoleSlotTakenError(role string) *RoleSlotTakenError {
	return &RoleSlotTakenError{Role: role}
}

// IsRoleSlotTaken reports whether err is (or wraps) a RoleSlotTakenError.
func IsRoleSlotTaken(err error) bool {
	var target *RoleSlotTakenError
	return errors.As(err, &target)
}

// AppError carries a status code alongside the underlying error so
// repositories can classify failures without importing net/http.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError that matches ErrDuplicate via errors.Is.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError that matches ErrValidation via errors.Is.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
