package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	customerapp "github.com/storefront/backend/internal/application/customer"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) bool   { return hash == "hashed:"+password }

type staticTokenIssuer struct{ token string }

func (s staticTokenIssuer) Issue(uuid.UUID, string) (string, error) { return s.token, nil }

type mockResetStore struct{ mock.Mock }

func (m *mockResetStore) Store(ctx context.Context, token string, customerID uuid.UUID) error {
	args := m.Called(ctx, token, customerID)
	return args.Error(0)
}

func (m *mockResetStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type authHandlerFixture struct {
	customerRepo *MockCustomerRepository
	cartRepo     *MockCartRepository
	addressRepo  *MockAddressRepository
	notification *MockNotification
	resetStore   *mockResetStore
	router       *gin.Engine
}

func newAuthHandlerFixture(guestToken string) *authHandlerFixture {
	f := &authHandlerFixture{
		customerRepo: new(MockCustomerRepository),
		cartRepo:     new(MockCartRepository),
		addressRepo:  new(MockAddressRepository),
		notification: new(MockNotification),
		resetStore:   new(mockResetStore),
	}

	authService := customerapp.NewAuthService(
		f.customerRepo, plainHasher{}, staticTokenIssuer{token: "session-token"},
		f.resetStore, f.notification, zap.NewNop(),
	)
	carts := checkoutapp.NewCartService(f.cartRepo, new(MockProductRepository),
		f.addressRepo, new(MockInventory), new(MockPricing))
	handler := NewAuthHandler(authService, carts, zap.NewNop())

	f.router = gin.New()
	f.router.Use(func(c *gin.Context) {
		if guestToken != "" {
			c.Set(middleware.GuestTokenKey, guestToken)
		}
		c.Next()
	})
	api := f.router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return f
}

func activeCustomer(t *testing.T, email, password string) *customer.Customer {
	t.Helper()
	cust, err := customer.NewCustomer(email, "hashed:"+password, "Nora", "Vasquez")
	require.NoError(t, err)
	return cust
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates the account and returns a token", func(t *testing.T) {
		f := newAuthHandlerFixture("")
		f.customerRepo.On("FindByEmail", mock.Anything, "nora@example.com").Return(nil, shared.ErrNotFound)
		f.customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*customer.Customer")).Return(nil)

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"email":     "nora@example.com",
			"password":  "correct-horse",
			"firstname": "Nora",
			"lastname":  "Vasquez",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "session-token", body["token"])
		cust := body["customer"].(map[string]interface{})
		assert.Equal(t, "nora@example.com", cust["email"])
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		f := newAuthHandlerFixture("")
		existing := activeCustomer(t, "nora@example.com", "whatever")
		f.customerRepo.On("FindByEmail", mock.Anything, "nora@example.com").Return(existing, nil)

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"email":     "nora@example.com",
			"password":  "correct-horse",
			"firstname": "Nora",
			"lastname":  "Vasquez",
		})

		require.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ALREADY_EXISTS", body["code"])
	})

	t.Run("short password fails validation", func(t *testing.T) {
		f := newAuthHandlerFixture("")

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"email":     "nora@example.com",
			"password":  "short",
			"firstname": "Nora",
			"lastname":  "Vasquez",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials bind the guest cart", func(t *testing.T) {
		f := newAuthHandlerFixture("guest-7")
		cust := activeCustomer(t, "nora@example.com", "correct-horse")
		guestCart := checkout.NewGuestCart("guest-7", valueobject.DefaultCurrency)
		require.NoError(t, guestCart.ApplyItemDelta(uuid.New(), nil, 1, "Wandering Dunes Print", "WDP-01",
			valueobject.NewMoneyEURFromFloat(24.90)))

		f.customerRepo.On("FindByEmail", mock.Anything, "nora@example.com").Return(cust, nil)
		f.cartRepo.On("FindOpenByGuestToken", mock.Anything, "guest-7").Return(guestCart, nil)
		f.addressRepo.On("FindDefaultForCustomer", mock.Anything, cust.ID).Return(nil, shared.ErrNotFound)
		f.cartRepo.On("SaveWithLock", mock.Anything, guestCart, guestCart.Version).Return(nil)

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    "nora@example.com",
			"password": "correct-horse",
		})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "session-token", body["token"])
		require.NotNil(t, guestCart.CustomerID)
		assert.Equal(t, cust.ID, *guestCart.CustomerID)
	})

	t.Run("wrong password is unauthenticated", func(t *testing.T) {
		f := newAuthHandlerFixture("")
		cust := activeCustomer(t, "nora@example.com", "correct-horse")
		f.customerRepo.On("FindByEmail", mock.Anything, "nora@example.com").Return(cust, nil)

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    "nora@example.com",
			"password": "battery-staple",
		})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "UNAUTHENTICATED", body["code"])
	})

	t.Run("a failed cart bind does not fail the login", func(t *testing.T) {
		f := newAuthHandlerFixture("guest-7")
		cust := activeCustomer(t, "nora@example.com", "correct-horse")

		f.customerRepo.On("FindByEmail", mock.Anything, "nora@example.com").Return(cust, nil)
		f.cartRepo.On("FindOpenByGuestToken", mock.Anything, "guest-7").Return(nil, shared.ErrInternal)

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    "nora@example.com",
			"password": "correct-horse",
		})

		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	t.Run("known email triggers a reset mail", func(t *testing.T) {
		f := newAuthHandlerFixture("")
		cust := activeCustomer(t, "nora@example.com", "correct-horse")

		f.customerRepo.On("FindByEmail", mock.Anything, "nora@example.com").Return(cust, nil)
		f.resetStore.On("Store", mock.Anything, mock.AnythingOfType("string"), cust.ID).Return(nil)
		f.notification.On("SendPasswordReset", mock.Anything, "nora@example.com", mock.AnythingOfType("string")).Return()

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/forgot-password", map[string]interface{}{
			"email": "nora@example.com",
		})

		require.Equal(t, http.StatusOK, w.Code)
		f.notification.AssertExpectations(t)
	})

	t.Run("unknown email gets the same response", func(t *testing.T) {
		f := newAuthHandlerFixture("")
		f.customerRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/forgot-password", map[string]interface{}{
			"email": "ghost@example.com",
		})

		require.Equal(t, http.StatusOK, w.Code)
		f.notification.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	t.Run("valid token sets the new password", func(t *testing.T) {
		f := newAuthHandlerFixture("")
		cust := activeCustomer(t, "nora@example.com", "correct-horse")

		f.resetStore.On("Consume", mock.Anything, "tok-1").Return(cust.ID, nil)
		f.customerRepo.On("FindByID", mock.Anything, cust.ID).Return(cust, nil)
		f.customerRepo.On("Save", mock.Anything, cust).Return(nil)

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/reset-password", map[string]interface{}{
			"token":    "tok-1",
			"password": "fresh-passw0rd",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hashed:fresh-passw0rd", cust.PasswordHash)
		f.customerRepo.AssertExpectations(t)
	})

	t.Run("unknown token is a 401", func(t *testing.T) {
		f := newAuthHandlerFixture("")
		f.resetStore.On("Consume", mock.Anything, "never-issued").Return(uuid.Nil, shared.ErrNotFound)

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/reset-password", map[string]interface{}{
			"token":    "never-issued",
			"password": "fresh-passw0rd",
		})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "UNAUTHENTICATED", body["code"])
		f.customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		f := newAuthHandlerFixture("")

		w := postJSON(f.router, http.MethodPost, "/api/v1/auth/reset-password", map[string]interface{}{
			"token":    "tok-1",
			"password": "short",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		f.resetStore.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
	})
}
