package order

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

const EventOrderPlaced = "order.placed"

// OrderPlacedEvent is raised when a cart is converted into an order.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	Reference     string     `json:"reference"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	PaymentMethod string     `json:"payment_method"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderPlaced, "Order", o.ID),
		Reference:       o.Reference,
		CustomerID:      o.CustomerID,
		PaymentMethod:   o.PaymentMethod,
	}
}
