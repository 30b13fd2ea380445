package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// GuestTokenKey is the context key for the guest cart token
const GuestTokenKey = "guest_token"

// GuestToken reads the guest cart cookie and, for unauthenticated requests
// without one, issues a fresh token so a guest can start a cart on their
// first request.
func GuestToken(cookieCfg config.CookieConfig, storeCfg config.StoreConfig) gin.HandlerFunc {
	sameSite := parseSameSite(cookieCfg.SameSite)

	return func(c *gin.Context) {
		token, err := c.Cookie(storeCfg.GuestCookieName)
		if err != nil || token == "" {
			if GetCustomerID(c) == nil {
				token = uuid.NewString()
				c.SetSameSite(sameSite)
				c.SetCookie(
					storeCfg.GuestCookieName,
					token,
					int(storeCfg.GuestCartTTL.Seconds()),
					cookiePath(cookieCfg.Path),
					cookieCfg.Domain,
					cookieCfg.Secure,
					true,
				)
			}
		}
		if token != "" {
			c.Set(GuestTokenKey, token)
		}
		c.Next()
	}
}

// GetGuestToken returns the guest cart token, or "" when none is attached
func GetGuestToken(c *gin.Context) string {
	return c.GetString(GuestTokenKey)
}

func parseSameSite(policy string) http.SameSite {
	switch policy {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func cookiePath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
