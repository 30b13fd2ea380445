package customer

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockCustomerRepository is a mock implementation of customer.CustomerRepository
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

func (m *MockCustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	args := m.Called(ctx, cust)
	return args.Error(0)
}

// MockHasher is a mock implementation of PasswordHasher
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) bool {
	args := m.Called(hash, password)
	return args.Bool(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(customerID uuid.UUID, email string) (string, error) {
	args := m.Called(customerID, email)
	return args.String(0), args.Error(1)
}

// MockResetTokenStore is a mock implementation of ResetTokenStore
type MockResetTokenStore struct {
	mock.Mock
}

func (m *MockResetTokenStore) Store(ctx context.Context, token string, customerID uuid.UUID) error {
	args := m.Called(ctx, token, customerID)
	return args.Error(0)
}

func (m *MockResetTokenStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockNotification is a mock implementation of checkout.Notification
type MockNotification struct {
	mock.Mock
}

func (m *MockNotification) SendOrderConfirmation(ctx context.Context, email string, orderReference string) {
	m.Called(ctx, email, orderReference)
}

func (m *MockNotification) SendPasswordReset(ctx context.Context, email string, token string) {
	m.Called(ctx, email, token)
}

type authServiceFixture struct {
	customerRepo *MockCustomerRepository
	hasher       *MockHasher
	tokens       *MockTokenIssuer
	resetTokens  *MockResetTokenStore
	notification *MockNotification
	service      *AuthService
}

func newAuthServiceFixture() *authServiceFixture {
	f := &authServiceFixture{
		customerRepo: new(MockCustomerRepository),
		hasher:       new(MockHasher),
		tokens:       new(MockTokenIssuer),
		resetTokens:  new(MockResetTokenStore),
		notification: new(MockNotification),
	}
	f.service = NewAuthService(f.customerRepo, f.hasher, f.tokens, f.resetTokens, f.notification, zap.NewNop())
	return f
}

func activeCustomer(t *testing.T, email string) *customer.Customer {
	t.Helper()
	cust, err := customer.NewCustomer(email, "hashed", "Jean", "Martin")
	require.NoError(t, err)
	return cust
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and issues token", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.customerRepo.On("FindByEmail", ctx, "jean@example.com").Return(nil, shared.ErrNotFound)
		f.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
		f.customerRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil)
		f.tokens.On("Issue", mock.AnythingOfType("uuid.UUID"), "jean@example.com").Return("jwt-token", nil)

		result, err := f.service.Register(ctx, RegisterRequest{
			Email:     "jean@example.com",
			Password:  "s3cret-pass",
			FirstName: "Jean",
			LastName:  "Martin",
		})
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", result.Token)
		assert.Equal(t, "jean@example.com", result.Customer.Email)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		f := newAuthServiceFixture()
		existing := activeCustomer(t, "jean@example.com")
		f.customerRepo.On("FindByEmail", ctx, "jean@example.com").Return(existing, nil)

		_, err := f.service.Register(ctx, RegisterRequest{
			Email:     "jean@example.com",
			Password:  "s3cret-pass",
			FirstName: "Jean",
			LastName:  "Martin",
		})
		assert.Equal(t, shared.ErrAlreadyExists, err)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthServiceFixture()
		cust := activeCustomer(t, "jean@example.com")
		f.customerRepo.On("FindByEmail", ctx, "jean@example.com").Return(cust, nil)
		f.hasher.On("Compare", "hashed", "s3cret-pass").Return(true)
		f.tokens.On("Issue", cust.ID, "jean@example.com").Return("jwt-token", nil)

		result, err := f.service.Login(ctx, LoginRequest{Email: "jean@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", result.Token)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		f := newAuthServiceFixture()
		cust := activeCustomer(t, "jean@example.com")
		f.customerRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)
		f.customerRepo.On("FindByEmail", ctx, "jean@example.com").Return(cust, nil)
		f.hasher.On("Compare", "hashed", "wrong").Return(false)

		_, errUnknown := f.service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		_, errWrong := f.service.Login(ctx, LoginRequest{Email: "jean@example.com", Password: "wrong"})
		assert.Equal(t, shared.ErrUnauthenticated, errUnknown)
		assert.Equal(t, errUnknown, errWrong)
	})

	t.Run("inactive account cannot log in", func(t *testing.T) {
		f := newAuthServiceFixture()
		cust := activeCustomer(t, "jean@example.com")
		cust.Active = false
		f.customerRepo.On("FindByEmail", ctx, "jean@example.com").Return(cust, nil)

		_, err := f.service.Login(ctx, LoginRequest{Email: "jean@example.com", Password: "s3cret-pass"})
		assert.Equal(t, shared.ErrUnauthenticated, err)
	})
}

func TestAuthServiceForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("known email stores token and notifies", func(t *testing.T) {
		f := newAuthServiceFixture()
		cust := activeCustomer(t, "jean@example.com")
		f.customerRepo.On("FindByEmail", ctx, "jean@example.com").Return(cust, nil)
		f.resetTokens.On("Store", ctx, mock.AnythingOfType("string"), cust.ID).Return(nil)
		f.notification.On("SendPasswordReset", ctx, "jean@example.com", mock.AnythingOfType("string")).Return()

		f.service.ForgotPassword(ctx, "jean@example.com")
		f.notification.AssertExpectations(t)
	})

	t.Run("unknown email is silent", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.customerRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		f.service.ForgotPassword(ctx, "nobody@example.com")
		f.notification.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthServiceResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token replaces the password hash", func(t *testing.T) {
		f := newAuthServiceFixture()
		cust := activeCustomer(t, "jean@example.com")
		f.resetTokens.On("Consume", ctx, "tok-1").Return(cust.ID, nil)
		f.customerRepo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		f.hasher.On("Hash", "fresh-passw0rd").Return("hashed-fresh", nil)
		f.customerRepo.On("Save", ctx, cust).Return(nil)

		err := f.service.ResetPassword(ctx, ResetPasswordRequest{Token: "tok-1", Password: "fresh-passw0rd"})
		require.NoError(t, err)
		assert.Equal(t, "hashed-fresh", cust.PasswordHash)
		f.customerRepo.AssertExpectations(t)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.resetTokens.On("Consume", ctx, "never-issued").Return(uuid.Nil, shared.ErrNotFound)

		err := f.service.ResetPassword(ctx, ResetPasswordRequest{Token: "never-issued", Password: "fresh-passw0rd"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHENTICATED", domainErr.Code)
		f.customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("vanished account reads as invalid token", func(t *testing.T) {
		f := newAuthServiceFixture()
		customerID := uuid.New()
		f.resetTokens.On("Consume", ctx, "tok-2").Return(customerID, nil)
		f.customerRepo.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

		err := f.service.ResetPassword(ctx, ResetPasswordRequest{Token: "tok-2", Password: "fresh-passw0rd"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHENTICATED", domainErr.Code)
	})
}
