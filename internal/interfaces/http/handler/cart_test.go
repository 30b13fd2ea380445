package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type cartHandlerFixture struct {
	cartRepo    *MockCartRepository
	productRepo *MockProductRepository
	addressRepo *MockAddressRepository
	inventory   *MockInventory
	pricing     *MockPricing
	router      *gin.Engine
}

// newCartHandlerFixture wires the handler with a real CartService over mocked
// repositories, behind a guest-token stub middleware.
func newCartHandlerFixture(guestToken string) *cartHandlerFixture {
	f := &cartHandlerFixture{
		cartRepo:    new(MockCartRepository),
		productRepo: new(MockProductRepository),
		addressRepo: new(MockAddressRepository),
		inventory:   new(MockInventory),
		pricing:     new(MockPricing),
	}

	service := checkoutapp.NewCartService(f.cartRepo, f.productRepo, f.addressRepo, f.inventory, f.pricing)
	handler := NewCartHandler(service)

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

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCartHandler_Get(t *testing.T) {
	t.Run("creates guest cart on first access", func(t *testing.T) {
		f := newCartHandlerFixture("guest-token-1")
		f.cartRepo.On("FindOpenByGuestToken", mock.Anything, "guest-token-1").Return(nil, shared.ErrNotFound)
		f.cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*checkout.Cart")).Return(nil)

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		cart := body["cart"].(map[string]interface{})
		assert.Equal(t, "EMPTY", cart["state"])
		f.cartRepo.AssertExpectations(t)
	})

	t.Run("rejects anonymous request without guest token", func(t *testing.T) {
		f := newCartHandlerFixture("")

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["error"])
		assert.Equal(t, "UNAUTHENTICATED", body["code"])
	})
}

func TestCartHandler_Mutate(t *testing.T) {
	productID := uuid.New()

	orderable := &catalog.Product{
		Name:              "Wandering Dunes Print",
		Reference:         "WDP-01",
		Price:             decimal.NewFromFloat(24.90),
		Active:            true,
		AvailableForOrder: true,
	}
	orderable.ID = productID

	t.Run("adds one unit when quantity omitted", func(t *testing.T) {
		f := newCartHandlerFixture("guest-token-1")
		existing := checkout.NewGuestCart("guest-token-1", valueobject.DefaultCurrency)

		f.cartRepo.On("FindOpenByGuestToken", mock.Anything, "guest-token-1").Return(existing, nil)
		f.productRepo.On("FindByID", mock.Anything, productID).Return(orderable, nil)
		f.inventory.On("QuantityAvailable", mock.Anything, productID, (*uuid.UUID)(nil)).Return(10, nil)
		f.pricing.On("PriceOf", mock.Anything, productID, (*uuid.UUID)(nil)).
			Return(valueobject.NewMoneyEURFromFloat(24.90), nil)
		f.cartRepo.On("SaveWithLock", mock.Anything, existing, 1).Return(nil)

		payload, _ := json.Marshal(map[string]interface{}{"product_id": productID})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		cart := body["cart"].(map[string]interface{})
		items := cart["items"].([]interface{})
		require.Len(t, items, 1)
		item := items[0].(map[string]interface{})
		assert.Equal(t, float64(1), item["quantity"])
		assert.Equal(t, 24.9, item["unit_price"])
	})

	t.Run("surfaces out-of-stock with offending reference", func(t *testing.T) {
		f := newCartHandlerFixture("guest-token-1")
		existing := checkout.NewGuestCart("guest-token-1", valueobject.DefaultCurrency)

		f.cartRepo.On("FindOpenByGuestToken", mock.Anything, "guest-token-1").Return(existing, nil)
		f.productRepo.On("FindByID", mock.Anything, productID).Return(orderable, nil)
		f.inventory.On("QuantityAvailable", mock.Anything, productID, (*uuid.UUID)(nil)).Return(0, nil)
		f.inventory.On("AllowsBackorder", mock.Anything, productID).Return(false, nil)

		payload, _ := json.Marshal(map[string]interface{}{"product_id": productID, "quantity": 3})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["error"])
		assert.Equal(t, "OUT_OF_STOCK", body["code"])
		errs := body["errors"].(map[string]interface{})
		assert.Contains(t, errs, "product_reference")
	})

	t.Run("hides inactive product as not found", func(t *testing.T) {
		f := newCartHandlerFixture("guest-token-1")
		existing := checkout.NewGuestCart("guest-token-1", valueobject.DefaultCurrency)
		inactive := &catalog.Product{Name: "Retired", Reference: "RET-01"}
		inactive.ID = productID

		f.cartRepo.On("FindOpenByGuestToken", mock.Anything, "guest-token-1").Return(existing, nil)
		f.productRepo.On("FindByID", mock.Anything, productID).Return(inactive, nil)

		payload, _ := json.Marshal(map[string]interface{}{"product_id": productID})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		f := newCartHandlerFixture("guest-token-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartHandler_Remove(t *testing.T) {
	t.Run("removes a line by product", func(t *testing.T) {
		f := newCartHandlerFixture("guest-token-1")
		productID := uuid.New()
		cart := checkout.NewGuestCart("guest-token-1", valueobject.DefaultCurrency)
		require.NoError(t, cart.ApplyItemDelta(productID, nil, 2, "Print", "WDP-01",
			valueobject.NewMoneyEURFromFloat(24.90)))

		f.cartRepo.On("FindOpenByGuestToken", mock.Anything, "guest-token-1").Return(cart, nil)
		f.cartRepo.On("SaveWithLock", mock.Anything, cart, 1).Return(nil)

		payload, _ := json.Marshal(map[string]interface{}{"product_id": productID})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		cartView := body["cart"].(map[string]interface{})
		assert.Equal(t, float64(0), cartView["item_count"])
	})
}
