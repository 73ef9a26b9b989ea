package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "ERR_VALIDATION"
)

// Session error codes
const (
	// ErrCodeNoSession is used when no session token is stored for the slug
	ErrCodeNoSession = "ERR_NO_SESSION"
	// ErrCodeSessionInvalid is used when the stored token is unusable
	ErrCodeSessionInvalid = "ERR_SESSION_INVALID"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeStoreNotFound is used when no store exists for the slug
	ErrCodeStoreNotFound = "ERR_STORE_NOT_FOUND"
)

// Business rule error codes
const (
	// ErrCodeEmptyCart is used when checkout is attempted on an empty cart
	ErrCodeEmptyCart = "ERR_EMPTY_CART"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeIndexOutOfRange is used for positional cart operations with a bad index
	ErrCodeIndexOutOfRange = "ERR_INDEX_OUT_OF_RANGE"
)

// Upstream error codes
const (
	// ErrCodeUpstream is used when the CRM API rejected a request
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeUpstreamUnreachable is used when no response was received from the CRM API
	ErrCodeUpstreamUnreachable = "ERR_UPSTREAM_UNREACHABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNoSession:      http.StatusUnauthorized,
	ErrCodeSessionInvalid: http.StatusUnauthorized,
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeStoreNotFound: http.StatusNotFound,

	ErrCodeEmptyCart:       http.StatusUnprocessableEntity,
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeIndexOutOfRange: http.StatusUnprocessableEntity,

	ErrCodeUpstream:            http.StatusBadGateway,
	ErrCodeUpstreamUnreachable: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to standardized API codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"STORE_NOT_FOUND":    ErrCodeStoreNotFound,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"INVALID_STATE":      ErrCodeInvalidState,
	"UNAUTHORIZED":       ErrCodeUnauthorized,
	"FORBIDDEN":          ErrCodeForbidden,
	"EMPTY_CART":         ErrCodeEmptyCart,
	"NO_SESSION":         ErrCodeNoSession,
	"SESSION_INVALID":    ErrCodeSessionInvalid,
	"INDEX_OUT_OF_RANGE": ErrCodeIndexOutOfRange,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the API format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
