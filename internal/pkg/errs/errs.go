package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is the sentinel for missing or malformed required values.
	// Callers should not retry a request that failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrAuthorization is the sentinel for role or ownership check failures.
	// The error message never reveals whether the target resource exists.
	ErrAuthorization = errors.New("access denied")

	// ErrAuth is the sentinel for missing, invalid, or expired credentials.
	// The caller must re-authenticate before retrying.
	ErrAuth = errors.New("authentication failed")

	// ErrObjectNotFound is the sentinel for references to absent entities.
	ErrObjectNotFound = errors.New("object not found")

	// ErrConflict is the sentinel for unique-constraint violations.
	ErrConflict = errors.New("conflict")

	// ErrTransientStore is the sentinel for a temporarily unavailable store.
	// The specific call is safe to retry: no mutation was applied and no
	// event was published.
	ErrTransientStore = errors.New("store temporarily unavailable")
)

// sanitize removes newlines from values before they are embedded in error
// messages, so a single log line stays a single log line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	ParamName string
	Cause     error
}

// NewValidationError creates a ValidationError for the named parameter.
func NewValidationError(paramName string) *ValidationError {
	return &ValidationError{ParamName: paramName}
}

// NewValidationErrorWithCause creates a ValidationError wrapping an underlying cause.
func NewValidationErrorWithCause(paramName string, cause error) *ValidationError {
	return &ValidationError{ParamName: paramName, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation failed: %s (cause: %s)", sanitize(e.ParamName), e.Cause)
	}
	return fmt.Sprintf("validation failed: %s", sanitize(e.ParamName))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AuthorizationError reports a role or ownership check failure.
// Its message is deliberately generic: an unauthorized caller learns nothing
// about whether the resource they targeted exists.
type AuthorizationError struct {
	Action string
}

// NewAuthorizationError creates an AuthorizationError for the named action.
func NewAuthorizationError(action string) *AuthorizationError {
	return &AuthorizationError{Action: action}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("access denied: %s", sanitize(e.Action))
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// AuthError reports a missing, invalid, or expired credential.
type AuthError struct {
	Reason string
	Cause  error
}

// NewAuthError creates an AuthError with the given reason.
func NewAuthError(reason string) *AuthError {
	return &AuthError{Reason: reason}
}

// NewAuthErrorWithCause creates an AuthError wrapping an underlying cause.
func NewAuthErrorWithCause(reason string, cause error) *AuthError {
	return &AuthError{Reason: reason, Cause: cause}
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed: %s (cause: %s)", sanitize(e.Reason), e.Cause)
	}
	return fmt.Sprintf("authentication failed: %s", sanitize(e.Reason))
}

func (e *AuthError) Unwrap() error {
	return ErrAuth
}

// ObjectNotFoundError reports a reference to an entity that does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named parameter and ID.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("object not found: param is: %s, ID is: %s (cause: %s)",
			sanitize(e.ParamName), sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("object not found: %s", sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError reports a unique-constraint violation, such as a duplicate
// username.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates a ConflictError for the named parameter.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conflict: %s (cause: %s)", sanitize(e.ParamName), e.Cause)
	}
	return fmt.Sprintf("conflict: %s", sanitize(e.ParamName))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// TransientStoreError reports that the underlying store was unavailable for
// the named operation. The operation did not partially apply and published
// no event, so the caller may safely retry it.
type TransientStoreError struct {
	Op    string
	Cause error
}

// NewTransientStoreError creates a TransientStoreError for the named operation.
func NewTransientStoreError(op string, cause error) *TransientStoreError {
	return &TransientStoreError{Op: op, Cause: cause}
}

func (e *TransientStoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store temporarily unavailable: %s (cause: %s)", sanitize(e.Op), e.Cause)
	}
	return fmt.Sprintf("store temporarily unavailable: %s", sanitize(e.Op))
}

func (e *TransientStoreError) Unwrap() error {
	return ErrTransientStore
}

// NewValueIsRequiredError creates a ValidationError for a value that must be present.
// Kept as a named constructor because "required" reads better at call sites
// than a bare ValidationError.
func NewValueIsRequiredError(paramName string) *ValidationError {
	return &ValidationError{ParamName: paramName + " is required"}
}
