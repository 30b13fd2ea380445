package checkout

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	EventCartCreated   = "cart.created"
	EventCartCommitted = "cart.committed"
)

// CartCreatedEvent is raised when a new cart is opened.
type CartCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	GuestToken string     `json:"guest_token,omitempty"`
}

// NewCartCreatedEvent creates a CartCreatedEvent
func NewCartCreatedEvent(cart *Cart) *CartCreatedEvent {
	return &CartCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCartCreated, "Cart", cart.ID),
		CustomerID:      cart.CustomerID,
		GuestToken:      cart.GuestToken,
	}
}

// CartCommittedEvent is raised when a cart is converted into an order.
type CartCommittedEvent struct {
	shared.BaseDomainEvent
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	ItemCount     int        `json:"item_count"`
}

// NewCartCommittedEvent creates a CartCommittedEvent
func NewCartCommittedEvent(cart *Cart) *CartCommittedEvent {
	return &CartCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCartCommitted, "Cart", cart.ID),
		CustomerID:      cart.CustomerID,
		PaymentMethod:   cart.PaymentMethod,
		ItemCount:       cart.ItemCount(),
	}
}
