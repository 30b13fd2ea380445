package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence interface for orders.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByReference(ctx context.Context, reference string) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Order, error)
	Save(ctx context.Context, o *Order) error
	// AnyReferencingAddress reports whether any order snapshot points at
	// the address, which forces soft deletion instead of removal.
	AnyReferencingAddress(ctx context.Context, addressID uuid.UUID) (bool, error)
}
