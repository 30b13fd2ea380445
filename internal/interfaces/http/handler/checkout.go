package handler

import (
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the checkout progression endpoints
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	co := rg.Group("/checkout")
	{
		co.GET("", h.Overview)
		co.PUT("", h.SubmitStep)
		co.PATCH("", h.SubmitStep)
		co.POST("", h.Commit)
	}
}

// Overview returns the cart together with addresses, quoted carriers and
// payment methods for the current checkout state.
func (h *CheckoutHandler) Overview(c *gin.Context) {
	view, err := h.checkout.Overview(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dto.Payload{
		"cart":            toCartView(view.Cart),
		"addresses":       toAddressViews(view.Addresses),
		"carriers":        toCarrierViews(view.Carriers),
		"payment_methods": toPaymentMethodViews(view.PaymentMethods),
	})
}

// SubmitStep advances the checkout by one step. The response carries what the
// shopper picks from next: carriers after an address step, payment methods
// after the shipping step.
func (h *CheckoutHandler) SubmitStep(c *gin.Context) {
	var req checkoutapp.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.checkout.SubmitStep(c.Request.Context(), identityFrom(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	payload := dto.Payload{"cart": toCartView(result.Cart)}
	if result.Carriers != nil {
		payload["carriers"] = toCarrierViews(result.Carriers)
	}
	if result.PaymentMethods != nil {
		payload["payment_methods"] = toPaymentMethodViews(result.PaymentMethods)
	}
	h.Success(c, payload)
}

// Commit finalizes the checkout. Offline payment methods return the placed
// order reference; redirect methods return the gateway URL.
func (h *CheckoutHandler) Commit(c *gin.Context) {
	var req checkoutapp.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.checkout.Commit(c.Request.Context(), identityFrom(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	payload := dto.Payload{}
	if result.RedirectURL != "" {
		payload["redirect_url"] = result.RedirectURL
	}
	if result.OrderID != nil {
		payload["order_id"] = result.OrderID.String()
		payload["order_reference"] = result.OrderReference
	}
	h.Success(c, payload)
}
