package ecommerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CatalogPricing resolves unit prices from the catalog: the product's base
// price plus the variant's price impact, in the store currency.
type CatalogPricing struct {
	products catalog.ProductRepository
	currency valueobject.Currency
}

// NewCatalogPricing creates a new CatalogPricing
func NewCatalogPricing(products catalog.ProductRepository, currency valueobject.Currency) *CatalogPricing {
	return &CatalogPricing{products: products, currency: currency}
}

// PriceOf returns the current unit price for a product or variant
func (p *CatalogPricing) PriceOf(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (valueobject.Money, error) {
	product, err := p.products.FindByID(ctx, productID)
	if err != nil {
		return valueobject.Money{}, err
	}

	price := product.Price
	if variantID != nil {
		variant, err := p.products.FindVariantByID(ctx, *variantID)
		if err != nil {
			return valueobject.Money{}, err
		}
		if variant.ProductID != productID {
			return valueobject.Money{}, shared.ErrNotFound
		}
		price = price.Add(variant.PriceImpact)
	}

	return valueobject.NewMoney(price, p.currency)
}
