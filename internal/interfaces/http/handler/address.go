package handler

import (
	customerapp "github.com/storefront/backend/internal/application/customer"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddressHandler handles the customer address book endpoints
type AddressHandler struct {
	BaseHandler
	addresses *customerapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addresses *customerapp.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// RegisterRoutes registers address routes. The address book requires an
// authenticated customer; the country list does not.
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/countries", h.Countries)

	book := rg.Group("/customer/addresses", middleware.RequireCustomer())
	{
		book.GET("", h.List)
		book.GET("/:id", h.Get)
		book.POST("", h.Create)
		book.PUT("/:id", h.Update)
		book.PATCH("/:id", h.Update)
		book.DELETE("/:id", h.Delete)
	}
}

// List returns the customer's live addresses
func (h *AddressHandler) List(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)

	addresses, err := h.addresses.List(c.Request.Context(), *customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{"addresses": toAddressViews(addresses)})
}

// Get returns a single address owned by the customer
func (h *AddressHandler) Get(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	addr, err := h.addresses.Get(c.Request.Context(), *customerID, addressID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{"address": toAddressView(addr)})
}

// Create adds an address to the customer's address book
func (h *AddressHandler) Create(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)

	var req customerapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	addr, err := h.addresses.Create(c.Request.Context(), *customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, dto.Payload{"address": toAddressView(addr)})
}

// Update replaces an address owned by the customer
func (h *AddressHandler) Update(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	var req customerapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	addr, err := h.addresses.Update(c.Request.Context(), *customerID, addressID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{"address": toAddressView(addr)})
}

// Delete removes an address, soft-deleting when an order still references it
func (h *AddressHandler) Delete(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), *customerID, addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{"deleted": true})
}

// Countries returns the countries open for delivery
func (h *AddressHandler) Countries(c *gin.Context) {
	countries, err := h.addresses.Countries(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.Payload{"countries": toCountryViews(countries)})
}
