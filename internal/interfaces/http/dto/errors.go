package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used for failed request field validation
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Domain error codes surfaced over the wire. These match the codes carried
// by shared.DomainError so handlers can map them without translation.
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeInvalidState     = "INVALID_STATE"
	ErrCodeInvalidBrand     = "INVALID_BRAND"
	ErrCodeInvalidRange     = "INVALID_RANGE"
	ErrCodeEmptyHorizon     = "EMPTY_HORIZON"
	ErrCodePartialFailure   = "PARTIAL_FAILURE"
	ErrCodeCacheUnavailable = "CACHE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidBrand:     http.StatusBadRequest,
	ErrCodeInvalidRange:     http.StatusBadRequest,
	ErrCodeEmptyHorizon:     http.StatusBadRequest,
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodePartialFailure:   http.StatusInternalServerError,
	ErrCodeCacheUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
