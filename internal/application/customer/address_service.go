package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// AddressService handles the customer address book
type AddressService struct {
	addressRepo customer.AddressRepository
	countryRepo customer.CountryRepository
	orderRepo   order.OrderRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(
	addressRepo customer.AddressRepository,
	countryRepo customer.CountryRepository,
	orderRepo order.OrderRepository,
) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		countryRepo: countryRepo,
		orderRepo:   orderRepo,
	}
}

// List returns the customer's addresses, soft-deleted ones excluded.
func (s *AddressService) List(ctx context.Context, customerID uuid.UUID) ([]customer.Address, error) {
	addresses, err := s.addressRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	visible := make([]customer.Address, 0, len(addresses))
	for _, addr := range addresses {
		if !addr.Deleted {
			visible = append(visible, addr)
		}
	}
	return visible, nil
}

// Get returns one address. A foreign or deleted address reads as NOT_FOUND:
// the response never confirms that an id belonging to someone else exists.
func (s *AddressService) Get(ctx context.Context, customerID, addressID uuid.UUID) (*customer.Address, error) {
	addr, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if addr.Deleted || !addr.IsOwnedBy(customerID) {
		return nil, shared.ErrNotFound
	}
	return addr, nil
}

// Create validates and stores a new address. Validation is batch: every
// failing field is reported in one response and nothing is stored on failure.
func (s *AddressService) Create(ctx context.Context, customerID uuid.UUID, req CreateAddressRequest) (*customer.Address, error) {
	addr := customer.NewAddress(customerID)
	req.apply(addr)

	if err := s.validate(ctx, addr); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// Update replaces the fields of an existing address after full re-validation.
func (s *AddressService) Update(ctx context.Context, customerID, addressID uuid.UUID, req CreateAddressRequest) (*customer.Address, error) {
	addr, err := s.Get(ctx, customerID, addressID)
	if err != nil {
		return nil, err
	}
	req.apply(addr)

	if err := s.validate(ctx, addr); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// Delete removes an address. An address still referenced by a placed order
// is soft-deleted instead so the order's snapshot stays resolvable.
func (s *AddressService) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	addr, err := s.Get(ctx, customerID, addressID)
	if err != nil {
		return err
	}

	referenced, err := s.orderRepo.AnyReferencingAddress(ctx, addr.ID)
	if err != nil {
		return err
	}
	if referenced {
		addr.MarkDeleted()
		return s.addressRepo.Save(ctx, addr)
	}
	return s.addressRepo.Delete(ctx, addr.ID)
}

// Countries lists active countries with the fields address forms need.
func (s *AddressService) Countries(ctx context.Context) ([]customer.Country, error) {
	return s.countryRepo.FindAllActive(ctx)
}

func (s *AddressService) validate(ctx context.Context, addr *customer.Address) error {
	country, err := s.countryRepo.FindByID(ctx, addr.CountryID)
	if err != nil {
		country = nil
	}
	if fieldErrs := addr.Validate(country); !fieldErrs.IsEmpty() {
		return shared.NewValidationError(fieldErrs)
	}
	return nil
}
