package ecommerce

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"gorm.io/gorm"
)

// CarrierRecord is a configured shipping option. Position fixes the order
// carriers are presented in.
type CarrierRecord struct {
	shared.BaseEntity
	Name      string
	Delay     string
	Price     decimal.Decimal
	FreeFrom  *decimal.Decimal
	Active    bool
	IsDefault bool
	Position  int
}

// TableName returns the table name for GORM
func (CarrierRecord) TableName() string {
	return "carriers"
}

// TableRateShipping quotes carriers from the carriers table. The price is the
// carrier's flat rate, waived when the cart's product total reaches the
// carrier's free-shipping threshold.
type TableRateShipping struct {
	db *gorm.DB
}

// NewTableRateShipping creates a new TableRateShipping
func NewTableRateShipping(db *gorm.DB) *TableRateShipping {
	return &TableRateShipping{db: db}
}

// Quote returns the active carriers for the cart and destination, in
// configured position order.
func (s *TableRateShipping) Quote(ctx context.Context, cart *checkout.Cart, destination *customer.Address) ([]checkout.Carrier, error) {
	var records []CarrierRecord
	if err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("position ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	carriers := make([]checkout.Carrier, 0, len(records))
	for _, record := range records {
		price := record.Price
		if record.FreeFrom != nil && cart.TotalProducts.GreaterThanOrEqual(*record.FreeFrom) {
			price = decimal.Zero
		}
		money, err := valueobject.NewMoney(price, cart.Currency)
		if err != nil {
			return nil, err
		}
		carriers = append(carriers, checkout.Carrier{
			ID:        record.ID,
			Name:      record.Name,
			Delay:     record.Delay,
			Price:     money,
			IsDefault: record.IsDefault,
		})
	}
	return carriers, nil
}
