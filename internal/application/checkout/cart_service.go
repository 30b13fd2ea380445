package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CartService handles cart lifecycle and line-item operations
type CartService struct {
	cartRepo       checkout.CartRepository
	productRepo    catalog.ProductRepository
	addressRepo    customer.AddressRepository
	inventory      checkout.Inventory
	pricing        checkout.Pricing
	eventPublisher shared.EventPublisher
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo checkout.CartRepository,
	productRepo catalog.ProductRepository,
	addressRepo customer.AddressRepository,
	inventory checkout.Inventory,
	pricing checkout.Pricing,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		inventory:   inventory,
		pricing:     pricing,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CartService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetOrCreate returns the identity's open cart, creating an empty one when
// none exists.
func (s *CartService) GetOrCreate(ctx context.Context, identity Identity) (*checkout.Cart, error) {
	cart, err := s.find(ctx, identity)
	if err == nil {
		return cart, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	if identity.IsAuthenticated() {
		cart = checkout.NewCustomerCart(*identity.CustomerID, valueobject.DefaultCurrency)
	} else {
		if identity.GuestToken == "" {
			return nil, shared.ErrUnauthenticated
		}
		cart = checkout.NewGuestCart(identity.GuestToken, valueobject.DefaultCurrency)
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, cart)
	return cart, nil
}

// Get returns the identity's open cart, shared.ErrNotFound when none exists.
func (s *CartService) Get(ctx context.Context, identity Identity) (*checkout.Cart, error) {
	return s.find(ctx, identity)
}

func (s *CartService) find(ctx context.Context, identity Identity) (*checkout.Cart, error) {
	if identity.IsAuthenticated() {
		return s.cartRepo.FindOpenByCustomer(ctx, *identity.CustomerID)
	}
	if identity.GuestToken == "" {
		return nil, shared.ErrNotFound
	}
	return s.cartRepo.FindOpenByGuestToken(ctx, identity.GuestToken)
}

// MutateLineItem applies a signed quantity delta to a cart line. A positive
// delta is checked against available stock unless the product allows
// backorders; a line whose quantity drops to zero or below is removed.
func (s *CartService) MutateLineItem(ctx context.Context, identity Identity, req MutateLineItemRequest) (*checkout.Cart, error) {
	cart, err := s.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	// An unorderable product is indistinguishable from a missing one.
	if !product.IsOrderable() {
		return nil, shared.ErrNotFound
	}
	if req.VariantID != nil {
		if _, err := s.productRepo.FindVariantByID(ctx, *req.VariantID); err != nil {
			return nil, err
		}
	}

	delta := req.Delta
	if delta == 0 {
		delta = 1
	}

	if delta > 0 {
		target := cart.Quantity(req.ProductID, req.VariantID) + delta
		if err := s.checkStock(ctx, product, req.VariantID, target); err != nil {
			return nil, err
		}
	}

	unitPrice, err := s.pricing.PriceOf(ctx, req.ProductID, req.VariantID)
	if err != nil {
		return nil, err
	}

	expectedVersion := cart.Version
	if err := cart.ApplyItemDelta(req.ProductID, req.VariantID, delta, product.Name, product.Reference, unitPrice); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveWithLock(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLineItem removes a cart line regardless of its quantity.
func (s *CartService) RemoveLineItem(ctx context.Context, identity Identity, productID uuid.UUID, variantID *uuid.UUID) (*checkout.Cart, error) {
	cart, err := s.find(ctx, identity)
	if err != nil {
		return nil, err
	}

	expectedVersion := cart.Version
	if err := cart.RemoveItem(productID, variantID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveWithLock(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}
	return cart, nil
}

// BindOnLogin attaches the guest cart to a customer who just authenticated.
// Line items are preserved; the customer's default addresses are re-resolved
// because guest address selections do not survive the identity change. A
// guest cart with no items is discarded in favor of whatever open cart the
// customer already has.
func (s *CartService) BindOnLogin(ctx context.Context, guestToken string, customerID uuid.UUID) (*checkout.Cart, error) {
	guestCart, err := s.cartRepo.FindOpenByGuestToken(ctx, guestToken)
	if err != nil {
		if err == shared.ErrNotFound {
			return s.GetOrCreate(ctx, Identity{CustomerID: &customerID})
		}
		return nil, err
	}

	if guestCart.IsEmpty() {
		return s.GetOrCreate(ctx, Identity{CustomerID: &customerID})
	}

	expectedVersion := guestCart.Version
	if err := guestCart.BindToCustomer(customerID); err != nil {
		return nil, err
	}

	if defaultAddr, err := s.addressRepo.FindDefaultForCustomer(ctx, customerID); err == nil {
		if err := guestCart.AttachAddresses(defaultAddr.ID, nil); err != nil {
			return nil, err
		}
	}

	if err := s.cartRepo.SaveWithLock(ctx, guestCart, expectedVersion); err != nil {
		return nil, err
	}
	return guestCart, nil
}

func (s *CartService) checkStock(ctx context.Context, product *catalog.Product, variantID *uuid.UUID, wanted int) error {
	available, err := s.inventory.QuantityAvailable(ctx, product.ID, variantID)
	if err != nil {
		return err
	}
	if wanted <= available {
		return nil
	}
	allowed, err := s.inventory.AllowsBackorder(ctx, product.ID)
	if err != nil {
		return err
	}
	if allowed {
		return nil
	}
	return outOfStockError(product.Name, product.Reference)
}

func outOfStockError(name, reference string) *shared.DomainError {
	err := shared.NewDomainError("OUT_OF_STOCK", "Insufficient stock for "+name)
	err.Fields = shared.FieldErrors{}
	err.Fields.Add("product_reference", reference)
	return err
}

func (s *CartService) publishEvents(ctx context.Context, cart *checkout.Cart) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range cart.GetDomainEvents() {
		// Event delivery is best effort; cart persistence already succeeded.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	cart.ClearDomainEvents()
}
