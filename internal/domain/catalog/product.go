package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Product is the slice of the catalog this module needs: availability flags,
// a price and per-variant stock. Catalog browsing and search live elsewhere.
type Product struct {
	shared.BaseAggregateRoot
	Name              string
	Reference         string
	Price             decimal.Decimal
	Active            bool
	AvailableForOrder bool
	AllowBackorder    bool
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// IsOrderable reports whether the product can be placed in a cart at all.
func (p *Product) IsOrderable() bool {
	return p.Active && p.AvailableForOrder
}

// ProductVariant is a sellable combination of a product (size, color, ...).
// A product without declared variants is sold through a nil variant ref.
type ProductVariant struct {
	shared.BaseEntity
	ProductID uuid.UUID
	Reference string
	// PriceImpact is added to the parent product price.
	PriceImpact decimal.Decimal
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// StockLevel is the current available quantity for a product/variant pair.
type StockLevel struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// ProductRepository provides read access to the catalog slice
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindVariantByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)
	StockFor(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (int, error)
}
