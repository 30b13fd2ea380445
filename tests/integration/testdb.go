// Package integration exercises the storefront services against a real
// database. Tests run on in-memory SQLite so they need no external
// infrastructure.
package integration

import (
	"testing"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/infrastructure/ecommerce"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory database with the full storefront
// schema migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&customer.Customer{},
		&customer.Country{},
		&customer.State{},
		&customer.Address{},
		&catalog.Product{},
		&catalog.ProductVariant{},
		&catalog.StockLevel{},
		&ecommerce.CarrierRecord{},
		&checkout.Cart{},
		&checkout.CartItem{},
		&order.Order{},
		&order.OrderLine{},
	)
	require.NoError(t, err)

	return db
}
