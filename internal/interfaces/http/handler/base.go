package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response with the payload merged into the envelope
func (h *BaseHandler) Success(c *gin.Context, payload dto.Payload) {
	c.JSON(http.StatusOK, dto.Success(payload))
}

// Created sends a 201 response with the payload merged into the envelope
func (h *BaseHandler) Created(c *gin.Context, payload dto.Payload) {
	c.JSON(http.StatusCreated, dto.Success(payload))
}

// BadRequest sends a 400 INVALID_INPUT response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_INPUT", message))
}

// BindError sends a 400 INVALID_INPUT response for a request binding failure,
// including per-field messages when the failure came from validation tags.
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	fields := middleware.FieldErrorsFromBinding(err)
	if fields.IsEmpty() {
		h.BadRequest(c, "Invalid request body")
		return
	}
	c.JSON(http.StatusBadRequest,
		dto.NewFieldErrorResponse("INVALID_INPUT", "Invalid request body", fields))
}

// Error sends an error response for an explicit code and message
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message))
}

// HandleDomainError converts domain errors to HTTP responses. Unknown error
// types surface as a generic 500 so internals never leak.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code),
			dto.NewFieldErrorResponse(domainErr.Code, domainErr.Message, domainErr.Fields))
		return
	}
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse("INTERNAL", "An unexpected error occurred"))
}

// identityFrom builds the cart-owner identity: the authenticated customer
// when present, otherwise the guest cart token.
func identityFrom(c *gin.Context) checkoutapp.Identity {
	if customerID := middleware.GetCustomerID(c); customerID != nil {
		return checkoutapp.Identity{CustomerID: customerID}
	}
	return checkoutapp.Identity{GuestToken: middleware.GetGuestToken(c)}
}
