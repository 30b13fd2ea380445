package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// ActivityLogHandler writes the storefront lifecycle events to the
// application log. It is the default subscriber: every cart opened, cart
// committed and order placed leaves a structured trace.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a new ActivityLogHandler
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger}
}

// EventTypes returns the lifecycle events this handler subscribes to
func (h *ActivityLogHandler) EventTypes() []string {
	return []string{
		checkout.EventCartCreated,
		checkout.EventCartCommitted,
		order.EventOrderPlaced,
	}
}

// Handle logs the event with its aggregate context
func (h *ActivityLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	}

	switch e := event.(type) {
	case *checkout.CartCommittedEvent:
		fields = append(fields,
			zap.String("payment_method", e.PaymentMethod),
			zap.Int("item_count", e.ItemCount))
	case *order.OrderPlacedEvent:
		fields = append(fields,
			zap.String("order_reference", e.Reference),
			zap.String("payment_method", e.PaymentMethod))
	}

	h.logger.Info(event.EventType(), fields...)
	return nil
}

var _ shared.EventHandler = (*ActivityLogHandler)(nil)
