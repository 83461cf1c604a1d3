package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound        = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState    = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidBrand    = NewDomainError("INVALID_BRAND", "Unknown or empty brand")
	ErrInvalidRange    = NewDomainError("INVALID_RANGE", "Date range start must not be after end")
	ErrEmptyHorizon    = NewDomainError("EMPTY_HORIZON", "Forecast horizon must cover at least one day")
	ErrPartialFailure  = NewDomainError("PARTIAL_FAILURE", "One or more write batches failed")
	ErrCacheUnavailable = NewDomainError("CACHE_UNAVAILABLE", "Projection cache is unavailable")
)
