package ecommerce

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CatalogInventory answers stock questions from the catalog's stock levels.
type CatalogInventory struct {
	products catalog.ProductRepository
}

// NewCatalogInventory creates a new CatalogInventory
func NewCatalogInventory(products catalog.ProductRepository) *CatalogInventory {
	return &CatalogInventory{products: products}
}

// QuantityAvailable returns the sellable quantity for a product/variant pair
func (i *CatalogInventory) QuantityAvailable(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (int, error) {
	return i.products.StockFor(ctx, productID, variantID)
}

// AllowsBackorder reports whether the product accepts orders beyond stock.
// An unknown product does not.
func (i *CatalogInventory) AllowsBackorder(ctx context.Context, productID uuid.UUID) (bool, error) {
	product, err := i.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return product.AllowBackorder, nil
}
