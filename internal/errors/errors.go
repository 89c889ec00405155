// FilePath: internal/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Error types
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeBackend     ErrorType = "backend"
	ErrorTypeAuth        ErrorType = "authentication"
	ErrorTypeForbidden   ErrorType = "authorization"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeInternal    ErrorType = "internal"
	ErrorTypeUnavailable ErrorType = "service_unavailable"
)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// APIError represents a structured API error
type APIError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Details   any       `json:"details,omitempty"`
	err       error     // Internal error for logging
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the internal error to errors.Is / errors.As.
func (e *APIError) Unwrap() error {
	return e.err
}

// The With* methods return a modified copy and leave e untouched, so an
// error value shared between requests keeps its own code and request id.

// WithRequestID returns a copy of the error carrying the request ID
func (e *APIError) WithRequestID(id string) *APIError {
	c := *e
	c.RequestID = id
	return &c
}

// WithDetails returns a copy of the error carrying additional details
func (e *APIError) WithDetails(details any) *APIError {
	c := *e
	c.Details = details
	return &c
}

// WithCode returns a copy of the error with the HTTP status code overridden.
func (e *APIError) WithCode(code int) *APIError {
	c := *e
	c.Code = code
	return &c
}

// NewValidationError creates a new validation error
func NewValidationError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeValidation,
		Message: msg,
		Code:    http.StatusBadRequest,
		err:     err,
	}
}

// NewFieldValidationError creates a validation error carrying per-field messages.
func NewFieldValidationError(msg string, fields FieldErrors) *APIError {
	return NewValidationError(msg, nil).WithDetails(fields)
}

// NewBackendError creates an error for a failed call to the backend API.
// The message is the one the backend returned, or a localized fallback.
func NewBackendError(msg string, status int, err error) *APIError {
	code := http.StatusBadGateway
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
		code = status
	}
	return &APIError{
		Type:    ErrorTypeBackend,
		Message: msg,
		Code:    code,
		err:     err,
	}
}

// NewAuthError creates a new authentication error
func NewAuthError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeAuth,
		Message: msg,
		Code:    http.StatusUnauthorized,
		err:     err,
	}
}

// NewAuthorizationError creates an error for an authenticated user lacking a role
func NewAuthorizationError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeForbidden,
		Message: msg,
		Code:    http.StatusForbidden,
		err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: msg,
		Code:    http.StatusNotFound,
		err:     err,
	}
}

// NewUnavailableError creates an error for a store or dependency that cannot be reached.
func NewUnavailableError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeUnavailable,
		Message: msg,
		Code:    http.StatusServiceUnavailable,
		err:     err,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeInternal,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// AsAPIError returns the first *APIError in err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Wrap returns err unchanged when it already is an *APIError, otherwise an internal error.
func Wrap(msg string, err error) *APIError {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr
	}
	return NewInternalError(msg, err)
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a Validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsAuth checks if an error is an authentication error
func IsAuth(err error) bool {
	return isType(err, ErrorTypeAuth)
}

// IsForbidden checks if an error is an authorization error
func IsForbidden(err error) bool {
	return isType(err, ErrorTypeForbidden)
}

func isType(err error, t ErrorType) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Type == t
	}
	return false
}
