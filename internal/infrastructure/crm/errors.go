package crm

import (
	"errors"
	"fmt"
	"net/http"
)

// The upstream failure taxonomy mirrors what callers need to distinguish:
// a transport failure (no response reached us), a structured rejection, and
// the special case of an authorization failure, which forces the stored
// session token to be discarded.

// TransportError means no response was received from the CRM API
type TransportError struct {
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("crm api unreachable: %v", e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the CRM API. Fields carries
// field-specific messages when the error body shape was recognized;
// otherwise RawBody holds the verbatim response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
	RawBody    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("crm api error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("crm api error (%d): %s", e.StatusCode, e.RawBody)
}

// UserMessage returns the most specific message available for display:
// the first field error, then the structured message, then the raw body
func (e *APIError) UserMessage() string {
	for _, msg := range e.Fields {
		return msg
	}
	if e.Message != "" {
		return e.Message
	}
	return e.RawBody
}

// IsAuthFailure reports whether the error is an upstream 401/403, which
// invalidates the stored session token
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsTransport reports whether the error means no response was received
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
