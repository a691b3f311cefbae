package internal

import (
	"errors"
	"fmt"
	"strings"
)

// Generic errors
var (
	// ErrAccessNotPermitted is returned when an authorization check fails.
	ErrAccessNotPermitted = errors.New("access to the resource is not permitted")

	// ErrResourceNotFound is returned when a referenced record does not exist
	// for the tenant.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInvalidOperation is returned when a code path has no authorization
	// handling defined, e.g. an entity type that is not mapped to a check.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrResourceAlreadyExists is returned when attempting to create a record
	// that already exists.
	ErrResourceAlreadyExists = errors.New("resource already exists")
)

// Error codes carried by AuthorizationError.
const (
	CodeNotFound           = "not_found"
	CodeAccessNotPermitted = "access_not_permitted"
	CodePermissionRequired = "permission_required"
	CodeInvalidOperation   = "invalid_operation"
)

type (
	// AuthorizationError is the single error type surfaced by the
	// authorization services. It carries a machine readable code and a
	// human readable message, and optionally names the permission that would
	// have sufficed.
	AuthorizationError struct {
		Code    string
		Message string
		// Kind and ID identify the record concerned, if any.
		Kind string
		ID   string
		// Permission is the permission the subject held or would need.
		Permission string
		// Alternative is a stronger permission offered as an escalation
		// path.
		Alternative string
		// Reason explains why a held permission did not match.
		Reason string
	}

	// MissingParameterError occurs when the caller has failed to provide a
	// required parameter
	MissingParameterError struct {
		Parameter string
	}

	// ForeignKeyError occurs when there is a foreign key violation.
	ForeignKeyError struct {
		Detail string
	}
)

func (e *AuthorizationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Alternative != "" {
		fmt.Fprintf(&b, ", or you need the permission %q", e.Alternative)
	}
	return b.String()
}

// Is maps the error code onto the generic sentinel errors so that callers can
// use errors.Is without inspecting the code.
func (e *AuthorizationError) Is(target error) bool {
	switch target {
	case ErrResourceNotFound:
		return e.Code == CodeNotFound
	case ErrAccessNotPermitted:
		return e.Code == CodeAccessNotPermitted || e.Code == CodePermissionRequired
	case ErrInvalidOperation:
		return e.Code == CodeInvalidOperation
	}
	return false
}

// NotFound constructs an error for a record that does not exist.
func NotFound(kind string, id fmt.Stringer) *AuthorizationError {
	return &AuthorizationError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", kind, id),
		Kind:    kind,
		ID:      id.String(),
	}
}

// NotPermitted constructs a generic denial.
func NotPermitted(message string) *AuthorizationError {
	return &AuthorizationError{
		Code:    CodeAccessNotPermitted,
		Message: message,
	}
}

// InvalidOperation constructs an error for a branch with no authorization
// handling.
func InvalidOperation(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{
		Code:    CodeInvalidOperation,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("required parameter missing: %s", e.Parameter)
}

func (e *ForeignKeyError) Error() string {
	return e.Detail
}
