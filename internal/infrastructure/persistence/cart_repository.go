package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements checkout.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Cart, error) {
	var cart checkout.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindOpenByCustomer finds the customer's open cart
func (r *GormCartRepository) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*checkout.Cart, error) {
	var cart checkout.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ? AND state <> ?", customerID, checkout.StateCommitted).
		Order("created_at DESC").
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindOpenByGuestToken finds the guest's open cart
func (r *GormCartRepository) FindOpenByGuestToken(ctx context.Context, token string) (*checkout.Cart, error) {
	var cart checkout.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("guest_token = ? AND state <> ?", token, checkout.StateCommitted).
		Order("created_at DESC").
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save creates or updates a cart with its line items
func (r *GormCartRepository) Save(ctx context.Context, cart *checkout.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(cart).Error; err != nil {
			return err
		}
		return r.syncItems(tx, cart)
	})
}

// SaveWithLock saves the cart only when the stored version still matches
func (r *GormCartRepository) SaveWithLock(ctx context.Context, cart *checkout.Cart, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart.Version = expectedVersion + 1
		cart.UpdatedAt = time.Now()

		result := tx.Model(&checkout.Cart{}).
			Where("id = ? AND version = ?", cart.ID, expectedVersion).
			Updates(map[string]interface{}{
				"customer_id":         cart.CustomerID,
				"guest_token":         cart.GuestToken,
				"currency":            cart.Currency,
				"delivery_address_id": cart.DeliveryAddressID,
				"invoice_address_id":  cart.InvoiceAddressID,
				"carrier_id":          cart.CarrierID,
				"payment_method":      cart.PaymentMethod,
				"state":               cart.State,
				"total_products":      cart.TotalProducts,
				"total_shipping":      cart.TotalShipping,
				"total_discount":      cart.TotalDiscount,
				"total_grand":         cart.TotalGrand,
				"version":             cart.Version,
				"updated_at":          cart.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return r.syncItems(tx, cart)
	})
}

// MarkConverted atomically flips the cart to COMMITTED. The write is
// conditional on the current state so exactly one of two racing commits
// succeeds; the loser reads back the cart to distinguish a lost race from a
// missing cart.
func (r *GormCartRepository) MarkConverted(ctx context.Context, cartID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&checkout.Cart{}).
		Where("id = ? AND state <> ?", cartID, checkout.StateCommitted).
		Updates(map[string]interface{}{
			"state":      checkout.StateCommitted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&checkout.Cart{}).
			Where("id = ?", cartID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrAlreadyCommitted
	}
	return nil
}

// syncItems replaces the stored line set with the aggregate's current lines.
func (r *GormCartRepository) syncItems(tx *gorm.DB, cart *checkout.Cart) error {
	currentIDs := make([]uuid.UUID, len(cart.Items))
	for i, item := range cart.Items {
		currentIDs[i] = item.ID
	}

	if len(currentIDs) > 0 {
		if err := tx.Where("cart_id = ? AND id NOT IN ?", cart.ID, currentIDs).
			Delete(&checkout.CartItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("cart_id = ?", cart.ID).
			Delete(&checkout.CartItem{}).Error; err != nil {
			return err
		}
	}

	for i := range cart.Items {
		cart.Items[i].CartID = cart.ID
		if err := tx.Save(&cart.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
