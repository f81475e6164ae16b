package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Client-side validation errors. These never reach the network layer.
var (
	// ErrEmailRequired indicates a missing email input.
	ErrEmailRequired = errors.New("api: email is required")
	// ErrPasswordTooShort indicates the password fails the minimum length.
	ErrPasswordTooShort = errors.New("api: password must be at least 8 characters")
	// ErrPasswordMismatch indicates password and confirmation differ.
	ErrPasswordMismatch = errors.New("api: password confirmation does not match")
	// ErrQuantityInvalid indicates a non-positive quantity.
	ErrQuantityInvalid = errors.New("api: quantity must be positive")
)

// APIError is a non-2xx backend response. Message carries the backend's own
// wording where it sent one, so business-rule rejections surface verbatim.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// UserMessage is the text shown to the user for this error.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Status {
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusNotFound:
		return "not found"
	default:
		return "request failed, please try again"
	}
}

func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports a 401 response.
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }

// IsForbidden reports a 403 response.
func IsForbidden(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// IsConflict reports a 409 response, the backend's answer to a status
// transition lost to another admin or to rule drift.
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }
