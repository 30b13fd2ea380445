package shared

// FieldErrors collects validation messages keyed by field name.
// Validation never fails fast: every failing field is reported in one batch
// so the client can render all errors at once.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Has reports whether any message was recorded for the field.
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// IsEmpty reports whether no messages were recorded at all.
func (f FieldErrors) IsEmpty() bool {
	return len(f) == 0
}

// DomainError represents a domain-level error
type DomainError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Fields  FieldErrors `json:"fields,omitempty"`
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

// NewValidationError creates a VALIDATION_FAILED error carrying the
// field-keyed message batch.
func NewValidationError(fields FieldErrors) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "Validation failed",
		Fields:  fields,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthenticated      = NewDomainError("UNAUTHENTICATED", "Authentication required")
	ErrForbidden            = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrMethodNotAllowed     = NewDomainError("METHOD_NOT_ALLOWED", "Method not allowed")
	ErrCartEmpty            = NewDomainError("CART_EMPTY", "Cart is empty")
	ErrAlreadyCommitted     = NewDomainError("ALREADY_COMMITTED", "Cart has already been converted to an order")
	ErrOutOfStock           = NewDomainError("OUT_OF_STOCK", "Insufficient stock available")
	ErrInvalidCarrier       = NewDomainError("INVALID_CARRIER", "Carrier is not available for this cart")
	ErrInvalidPaymentMethod = NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not available")
	ErrInternal             = NewDomainError("INTERNAL", "An unexpected error occurred")
)

// MissingParameter builds a MISSING_PARAMETER error naming the parameter.
func MissingParameter(name string) *DomainError {
	return NewDomainError("MISSING_PARAMETER", name+" is required")
}

// PreconditionFailed builds a PRECONDITION_FAILED error with a reason.
func PreconditionFailed(message string) *DomainError {
	return NewDomainError("PRECONDITION_FAILED", message)
}
