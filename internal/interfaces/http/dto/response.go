package dto

import "github.com/storefront/backend/internal/domain/shared"

// Payload is the body of a success response. Fields are merged at the top
// level next to the success flag.
type Payload map[string]interface{}

// Success builds the success envelope: {"success": true, ...payload}.
func Success(payload Payload) map[string]interface{} {
	body := make(map[string]interface{}, len(payload)+1)
	for key, value := range payload {
		body[key] = value
	}
	body["success"] = true
	return body
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Error   bool               `json:"error"`
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Errors  shared.FieldErrors `json:"errors,omitempty"`
}

// NewErrorResponse builds the failure envelope for a code and message
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
	}
}

// NewFieldErrorResponse builds the failure envelope carrying the field-keyed
// validation batch.
func NewFieldErrorResponse(code, message string, fields shared.FieldErrors) ErrorResponse {
	return ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
		Errors:  fields,
	}
}
