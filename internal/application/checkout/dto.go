package checkout

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
)

// Identity names the cart owner: exactly one of CustomerID or GuestToken is
// set per request.
type Identity struct {
	CustomerID *uuid.UUID
	GuestToken string
}

// IsAuthenticated reports whether the identity is a logged-in customer.
func (i Identity) IsAuthenticated() bool {
	return i.CustomerID != nil
}

// MutateLineItemRequest applies a signed quantity delta to a cart line.
type MutateLineItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Delta     int        `json:"quantity"`
}

// Checkout step names accepted by the step dispatcher.
const (
	StepAddress         = "address"
	StepDeliveryAddress = "delivery_address"
	StepInvoiceAddress  = "invoice_address"
	StepShipping        = "shipping"
	StepCarrier         = "carrier"
)

// AddressPayload creates an address inline during checkout or address CRUD.
type AddressPayload struct {
	Alias       string     `json:"alias"`
	FirstName   string     `json:"firstname"`
	LastName    string     `json:"lastname"`
	Company     string     `json:"company"`
	Address1    string     `json:"address1"`
	Address2    string     `json:"address2"`
	Postcode    string     `json:"postcode"`
	City        string     `json:"city"`
	CountryID   uuid.UUID  `json:"id_country"`
	StateID     *uuid.UUID `json:"id_state"`
	Phone       string     `json:"phone"`
	PhoneMobile string     `json:"phone_mobile"`
}

// StepRequest is the body of PUT/PATCH /checkout. Which fields matter depends
// on the step. Wire keys follow the id_* register the address payload already
// uses.
type StepRequest struct {
	Step              string          `json:"step" binding:"required"`
	DeliveryAddressID *uuid.UUID      `json:"id_address_delivery"`
	InvoiceAddressID  *uuid.UUID      `json:"id_address_invoice"`
	SameAsDelivery    bool            `json:"same_as_delivery"`
	NewAddress        *AddressPayload `json:"new_address"`
	CarrierID         *uuid.UUID      `json:"id_carrier"`
}

// StepResult carries the cart after a step together with what the shopper
// picks from next: carriers once an address is attached, payment methods once
// a carrier is chosen.
type StepResult struct {
	Cart           *checkout.Cart
	Carriers       []checkout.Carrier
	PaymentMethods []checkout.PaymentMethod
}

// CommitRequest is the body of POST /checkout.
type CommitRequest struct {
	PaymentMethod string `json:"payment_method"`
	GuestEmail    string `json:"guest_email"`
}

// CheckoutView aggregates everything GET /checkout renders. Formatting to
// the wire shape happens at the HTTP boundary.
type CheckoutView struct {
	Cart           *checkout.Cart
	Addresses      []customer.Address
	Carriers       []checkout.Carrier
	PaymentMethods []checkout.PaymentMethod
}

// CommitResult is the outcome of POST /checkout: an order reference for
// offline flows, a gateway URL for redirect flows.
type CommitResult struct {
	OrderID        *uuid.UUID
	OrderReference string
	RedirectURL    string
}
