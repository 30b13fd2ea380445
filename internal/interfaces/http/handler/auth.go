package handler

import (
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	customerapp "github.com/storefront/backend/internal/application/customer"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles customer identity endpoints
type AuthHandler struct {
	BaseHandler
	auth   *customerapp.AuthService
	carts  *checkoutapp.CartService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *customerapp.AuthService, carts *checkoutapp.CartService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		carts:  carts,
		logger: logger,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

// Register creates a customer account and signs them in
func (h *AuthHandler) Register(c *gin.Context) {
	var req customerapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.bindGuestCart(c, result)

	h.Created(c, dto.Payload{
		"token":    result.Token,
		"customer": toCustomerView(result.Customer),
	})
}

// Login authenticates a customer. A non-empty guest cart carried in the
// cookie is bound to the account so nothing in it is lost.
func (h *AuthHandler) Login(c *gin.Context) {
	var req customerapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.bindGuestCart(c, result)

	h.Success(c, dto.Payload{
		"token":    result.Token,
		"customer": toCustomerView(result.Customer),
	})
}

// Logout acknowledges the sign-out. Tokens are stateless; the client drops
// its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Success(c, dto.Payload{})
}

// ForgotPassword triggers a reset email. The response never reveals whether
// the account exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	h.auth.ForgotPassword(c.Request.Context(), req.Email)
	h.Success(c, dto.Payload{})
}

// ResetPassword sets a new password from an emailed reset token. The token
// is single use.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req customerapp.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{})
}

// bindGuestCart re-binds the guest cart to the freshly authenticated
// customer. A merge failure never fails the sign-in.
func (h *AuthHandler) bindGuestCart(c *gin.Context, result *customerapp.AuthResult) {
	guestToken := middleware.GetGuestToken(c)
	if guestToken == "" {
		return
	}

	if _, err := h.carts.BindOnLogin(c.Request.Context(), guestToken, result.Customer.ID); err != nil {
		h.logger.Warn("failed to bind guest cart on login",
			zap.String("customer_id", result.Customer.ID.String()),
			zap.Error(err))
	}
}
