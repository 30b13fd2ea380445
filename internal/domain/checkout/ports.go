package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Carrier is a shipping option quoted for a specific cart and destination.
type Carrier struct {
	ID        uuid.UUID
	Name      string
	Delay     string
	Price     valueobject.Money
	IsDefault bool
}

// PaymentFlow distinguishes how a payment method completes checkout.
type PaymentFlow string

const (
	// FlowOffline methods (bank transfer, check, free order) create the
	// order immediately; payment settles out of band.
	FlowOffline PaymentFlow = "offline"
	// FlowRedirect methods hand the customer to an external gateway; the
	// cart stays open until the gateway callback confirms.
	FlowRedirect PaymentFlow = "redirect"
)

// PaymentMethod describes a payment option offered at checkout.
type PaymentMethod struct {
	Code        string
	DisplayName string
	Flow        PaymentFlow
}

// Inventory answers stock questions for cart mutation and commit checks.
type Inventory interface {
	// QuantityAvailable returns the sellable quantity for a product or,
	// when variantID is non-nil, for that specific variant.
	QuantityAvailable(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (int, error)
	// AllowsBackorder reports whether the product may be ordered beyond
	// available stock.
	AllowsBackorder(ctx context.Context, productID uuid.UUID) (bool, error)
}

// Pricing resolves the current unit price for a product or variant.
type Pricing interface {
	PriceOf(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (valueobject.Money, error)
}

// Shipping quotes the carriers able to deliver a cart to an address.
type Shipping interface {
	Quote(ctx context.Context, cart *Cart, destination *customer.Address) ([]Carrier, error)
}

// Payment lists and classifies payment methods and performs the final
// conversion for offline flows.
type Payment interface {
	// AvailableMethods returns the methods offered for the cart.
	AvailableMethods(ctx context.Context, cart *Cart) ([]PaymentMethod, error)
	// Classify resolves a method code to its flow, or an error when the
	// code is unknown or not offered.
	Classify(ctx context.Context, cart *Cart, code string) (PaymentMethod, error)
	// RedirectURL builds the external gateway URL for a redirect method.
	RedirectURL(ctx context.Context, cart *Cart, method PaymentMethod) (string, error)
}

// Notification delivers customer-facing messages. Failures are logged by
// implementations and never propagate into the checkout flow.
type Notification interface {
	SendOrderConfirmation(ctx context.Context, email string, orderReference string)
	SendPasswordReset(ctx context.Context, email string, token string)
}
