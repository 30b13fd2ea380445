package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAddressRepository implements customer.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID, deleted ones included
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Address, error) {
	var addr customer.Address
	if err := r.db.WithContext(ctx).First(&addr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &addr, nil
}

// FindByCustomer returns the customer's live addresses
func (r *GormAddressRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]customer.Address, error) {
	var addresses []customer.Address
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND deleted = ?", customerID, false).
		Order("created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindDefaultForCustomer returns the customer's oldest live address, or
// shared.ErrNotFound when they have none.
func (r *GormAddressRepository) FindDefaultForCustomer(ctx context.Context, customerID uuid.UUID) (*customer.Address, error) {
	var addr customer.Address
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND deleted = ?", customerID, false).
		Order("created_at ASC").
		First(&addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &addr, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, addr *customer.Address) error {
	return r.db.WithContext(ctx).Save(addr).Error
}

// Delete removes an address permanently
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&customer.Address{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
