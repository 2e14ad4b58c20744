package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so wrapped copies compare equal to the
// predefined values.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Error codes
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeItemNotInCart       = "ITEM_NOT_IN_CART"
	CodePageOutOfRange      = "PAGE_OUT_OF_RANGE"
	CodeStoreNotProvisioned = "STORE_NOT_PROVISIONED"
	CodeInternal            = "INTERNAL_ERROR"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
)

// Predefined domain errors
var (
	// Authentication errors
	ErrUnauthorized    = NewDomainError(CodeUnauthorized, "unauthorized")
	ErrInvalidToken    = NewDomainError(CodeInvalidToken, "invalid or expired token")
	ErrSessionNotFound = NewDomainError(CodeSessionNotFound, "session not found")

	// Validation errors
	ErrInvalidInput   = NewDomainError(CodeInvalidInput, "invalid input")
	ErrPageOutOfRange = NewDomainError(CodePageOutOfRange, "requested page is out of range")

	// Lookup errors
	ErrProductNotFound = NewDomainError(CodeProductNotFound, "product not found")
	ErrItemNotInCart   = NewDomainError(CodeItemNotInCart, "item is not in the cart")

	// System errors
	ErrStoreNotProvisioned = NewDomainError(CodeStoreNotProvisioned, "store accessed outside a provisioned session")
	ErrInternal            = NewDomainError(CodeInternal, "internal server error")
	ErrServiceUnavailable  = NewDomainError(CodeServiceUnavailable, "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case CodeInvalidInput:
		return http.StatusBadRequest

	case CodeUnauthorized, CodeInvalidToken, CodeSessionNotFound:
		return http.StatusUnauthorized

	case CodeProductNotFound, CodeItemNotInCart:
		return http.StatusNotFound

	case CodePageOutOfRange:
		return http.StatusUnprocessableEntity

	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}

// GetErrorCode returns the domain code of err, or INTERNAL_ERROR.
func GetErrorCode(err error) string {
	if d := GetDomainError(err); d != nil {
		return d.Code
	}
	return CodeInternal
}
