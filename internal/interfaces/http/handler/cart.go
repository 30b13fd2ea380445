package handler

import (
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles cart line-item endpoints
type CartHandler struct {
	BaseHandler
	carts *checkoutapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *checkoutapp.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("", h.Mutate)
		cart.PUT("", h.Mutate)
		cart.PATCH("", h.Mutate)
		cart.DELETE("", h.Remove)
	}
}

// Get returns the current cart, creating one on first access
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.carts.GetOrCreate(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{"cart": toCartView(cart)})
}

// Mutate applies a signed quantity delta to a cart line. POST with no
// quantity adds one unit.
func (h *CartHandler) Mutate(c *gin.Context) {
	var req checkoutapp.MutateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.carts.MutateLineItem(c.Request.Context(), identityFrom(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{"cart": toCartView(cart)})
}

// removeLineItemRequest identifies the cart line to drop
type removeLineItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
}

// Remove drops a cart line entirely, whatever its quantity
func (h *CartHandler) Remove(c *gin.Context) {
	var req removeLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.carts.RemoveLineItem(c.Request.Context(), identityFrom(c), req.ProductID, req.VariantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{"cart": toCartView(cart)})
}
