package checkout

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the persistence interface for carts.
type CartRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)
	// FindOpenByCustomer returns the customer's open (not committed) cart,
	// shared.ErrNotFound when there is none.
	FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)
	// FindOpenByGuestToken returns the guest's open cart.
	FindOpenByGuestToken(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	// SaveWithLock persists the cart only when the stored version still
	// matches, returning shared.ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, cart *Cart, expectedVersion int) error
	// MarkConverted atomically flips the cart to COMMITTED. Exactly one
	// caller wins a concurrent race: the write is conditional on the cart
	// not already being committed, and the loser gets
	// shared.ErrAlreadyCommitted.
	MarkConverted(ctx context.Context, cartID uuid.UUID) error
}
