package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCountryRepository implements customer.CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindByID finds a country by its ID
func (r *GormCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Country, error) {
	var country customer.Country
	if err := r.db.WithContext(ctx).First(&country, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &country, nil
}

// FindAllActive returns every country open for delivery
func (r *GormCountryRepository) FindAllActive(ctx context.Context) ([]customer.Country, error) {
	var countries []customer.Country
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// FindStateByID finds a state by its ID
func (r *GormCountryRepository) FindStateByID(ctx context.Context, id uuid.UUID) (*customer.State, error) {
	var state customer.State
	if err := r.db.WithContext(ctx).First(&state, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}
