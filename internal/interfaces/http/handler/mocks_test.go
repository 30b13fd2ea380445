package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository implements checkout.CartRepository for testing
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Cart), args.Error(1)
}

func (m *MockCartRepository) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*checkout.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Cart), args.Error(1)
}

func (m *MockCartRepository) FindOpenByGuestToken(ctx context.Context, token string) (*checkout.Cart, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *checkout.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) SaveWithLock(ctx context.Context, cart *checkout.Cart, expectedVersion int) error {
	args := m.Called(ctx, cart, expectedVersion)
	return args.Error(0)
}

func (m *MockCartRepository) MarkConverted(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariantByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) StockFor(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (int, error) {
	args := m.Called(ctx, productID, variantID)
	return args.Int(0), args.Error(1)
}

// MockAddressRepository implements customer.AddressRepository for testing
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]customer.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Address), args.Error(1)
}

func (m *MockAddressRepository) FindDefaultForCustomer(ctx context.Context, customerID uuid.UUID) (*customer.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, addr *customer.Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCountryRepository implements customer.CountryRepository for testing
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Country), args.Error(1)
}

func (m *MockCountryRepository) FindAllActive(ctx context.Context) ([]customer.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Country), args.Error(1)
}

func (m *MockCountryRepository) FindStateByID(ctx context.Context, id uuid.UUID) (*customer.State, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.State), args.Error(1)
}

// MockCustomerRepository implements customer.CustomerRepository for testing
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockOrderRepository implements order.OrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByReference(ctx context.Context, reference string) (*order.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) AnyReferencingAddress(ctx context.Context, addressID uuid.UUID) (bool, error) {
	args := m.Called(ctx, addressID)
	return args.Bool(0), args.Error(1)
}

// MockInventory implements checkout.Inventory for testing
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) QuantityAvailable(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (int, error) {
	args := m.Called(ctx, productID, variantID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventory) AllowsBackorder(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// MockPricing implements checkout.Pricing for testing
type MockPricing struct {
	mock.Mock
}

func (m *MockPricing) PriceOf(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, productID, variantID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

// MockShipping implements checkout.Shipping for testing
type MockShipping struct {
	mock.Mock
}

func (m *MockShipping) Quote(ctx context.Context, cart *checkout.Cart, destination *customer.Address) ([]checkout.Carrier, error) {
	args := m.Called(ctx, cart, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkout.Carrier), args.Error(1)
}

// MockPayment implements checkout.Payment for testing
type MockPayment struct {
	mock.Mock
}

func (m *MockPayment) AvailableMethods(ctx context.Context, cart *checkout.Cart) ([]checkout.PaymentMethod, error) {
	args := m.Called(ctx, cart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkout.PaymentMethod), args.Error(1)
}

func (m *MockPayment) Classify(ctx context.Context, cart *checkout.Cart, code string) (checkout.PaymentMethod, error) {
	args := m.Called(ctx, cart, code)
	return args.Get(0).(checkout.PaymentMethod), args.Error(1)
}

func (m *MockPayment) RedirectURL(ctx context.Context, cart *checkout.Cart, method checkout.PaymentMethod) (string, error) {
	args := m.Called(ctx, cart, method)
	return args.String(0), args.Error(1)
}

// MockNotification implements checkout.Notification for testing
type MockNotification struct {
	mock.Mock
}

func (m *MockNotification) SendOrderConfirmation(ctx context.Context, email string, orderReference string) {
	m.Called(ctx, email, orderReference)
}

func (m *MockNotification) SendPasswordReset(ctx context.Context, email string, token string) {
	m.Called(ctx, email, token)
}
