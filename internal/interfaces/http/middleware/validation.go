package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/domain/shared"
)

// SetupValidator makes binding errors report JSON field names instead of Go
// struct field names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// FieldErrorsFromBinding converts binding validation failures into the
// field-keyed error batch the API returns. Non-validator errors (malformed
// JSON, type mismatches) produce an empty batch.
func FieldErrorsFromBinding(err error) shared.FieldErrors {
	fieldErrs := shared.FieldErrors{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fieldErrs
	}
	for _, e := range validationErrors {
		if e.Field() == "" {
			continue
		}
		fieldErrs.Add(e.Field(), validationMessage(e))
	}
	return fieldErrs
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return "Invalid value"
	}
}
