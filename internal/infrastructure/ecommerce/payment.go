package ecommerce

import (
	"context"
	"fmt"
	"net/url"

	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
)

const redirectMethodCode = "card_online"

var offlineDisplayNames = map[string]string{
	"bank_transfer": "Bank transfer",
	"check":         "Payment by check",
	"free":          "Free order",
}

// ConfigPaymentRegistry offers payment methods driven by configuration:
// offline methods listed in config, the free-order method when the cart total
// is zero, and a card redirect method when a gateway base URL is configured.
type ConfigPaymentRegistry struct {
	cfg config.PaymentConfig
}

// NewConfigPaymentRegistry creates a new ConfigPaymentRegistry
func NewConfigPaymentRegistry(cfg config.PaymentConfig) *ConfigPaymentRegistry {
	return &ConfigPaymentRegistry{cfg: cfg}
}

// AvailableMethods returns the methods offered for the cart
func (r *ConfigPaymentRegistry) AvailableMethods(ctx context.Context, cart *checkout.Cart) ([]checkout.PaymentMethod, error) {
	methods := make([]checkout.PaymentMethod, 0, len(r.cfg.OfflineMethods)+1)
	for _, code := range r.cfg.OfflineMethods {
		if code == "free" {
			if !r.cfg.FreeOrderEnabled || !cart.TotalGrand.IsZero() {
				continue
			}
		}
		methods = append(methods, checkout.PaymentMethod{
			Code:        code,
			DisplayName: displayName(code),
			Flow:        checkout.FlowOffline,
		})
	}
	if r.cfg.GatewayBaseURL != "" {
		methods = append(methods, checkout.PaymentMethod{
			Code:        redirectMethodCode,
			DisplayName: "Pay by card",
			Flow:        checkout.FlowRedirect,
		})
	}
	return methods, nil
}

// Classify resolves a method code against the methods currently offered
func (r *ConfigPaymentRegistry) Classify(ctx context.Context, cart *checkout.Cart, code string) (checkout.PaymentMethod, error) {
	methods, err := r.AvailableMethods(ctx, cart)
	if err != nil {
		return checkout.PaymentMethod{}, err
	}
	for _, method := range methods {
		if method.Code == code {
			return method, nil
		}
	}
	return checkout.PaymentMethod{}, shared.ErrInvalidPaymentMethod
}

// RedirectURL builds the gateway URL carrying the cart reference and amount
func (r *ConfigPaymentRegistry) RedirectURL(ctx context.Context, cart *checkout.Cart, method checkout.PaymentMethod) (string, error) {
	if method.Flow != checkout.FlowRedirect {
		return "", shared.ErrInvalidPaymentMethod
	}
	base, err := url.Parse(r.cfg.GatewayBaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid gateway base URL: %w", err)
	}
	base = base.JoinPath("pay")
	query := base.Query()
	query.Set("cart_id", cart.ID.String())
	query.Set("amount", cart.TotalGrand.Round(2).String())
	query.Set("currency", string(cart.Currency))
	base.RawQuery = query.Encode()
	return base.String(), nil
}

func displayName(code string) string {
	if name, ok := offlineDisplayNames[code]; ok {
		return name
	}
	return code
}
