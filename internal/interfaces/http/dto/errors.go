package dto

import "net/http"

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	"VALIDATION_FAILED": http.StatusUnprocessableEntity,

	"MISSING_PARAMETER":      http.StatusBadRequest,
	"PRECONDITION_FAILED":    http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"CART_EMPTY":             http.StatusBadRequest,
	"OUT_OF_STOCK":           http.StatusBadRequest,
	"INVALID_CARRIER":        http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,
	"ITEM_NOT_FOUND":         http.StatusBadRequest,

	"UNAUTHENTICATED": http.StatusUnauthorized,
	"FORBIDDEN":       http.StatusForbidden,

	"NOT_FOUND": http.StatusNotFound,

	"METHOD_NOT_ALLOWED": http.StatusMethodNotAllowed,

	"ALREADY_COMMITTED":    http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusConflict,

	"INTERNAL": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
// for codes not in the table.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
