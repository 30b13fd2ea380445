package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Context keys for the authenticated identity
const (
	CustomerIDKey = "auth_customer_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticate extracts and validates the bearer token when present. Requests
// without a token proceed as guests; a present but invalid token is rejected
// so a client never silently downgrades to guest.
func Authenticate(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			c.Next()
			return
		}

		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthenticated(c)
			return
		}
		token := strings.TrimPrefix(header, BearerPrefix)
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		customerID, err := jwtService.Validate(token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(CustomerIDKey, customerID)
		c.Next()
	}
}

// RequireCustomer rejects requests that did not authenticate
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCustomerID(c) == nil {
			abortUnauthenticated(c)
			return
		}
		c.Next()
	}
}

// GetCustomerID returns the authenticated customer ID, or nil for guests
func GetCustomerID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get(CustomerIDKey)
	if !exists {
		return nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse("UNAUTHENTICATED", "Authentication required"))
}
