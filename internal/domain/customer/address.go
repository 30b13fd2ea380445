package customer

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

var (
	// nameFormat rejects digits and punctuation that never appears in a
	// person's name but frequently appears in injection attempts.
	nameFormat = regexp.MustCompile(`^[^0-9!<>,;?=+()@#"°{}_$%:]+$`)
	cityFormat = regexp.MustCompile(`^[^!<>;?=+@#"°{}_$%]+$`)
)

// Address is a customer-owned postal address. Carts and orders reference
// addresses by ID but never own them.
type Address struct {
	shared.BaseEntity
	CustomerID  uuid.UUID
	Alias       string
	FirstName   string
	LastName    string
	Company     string
	Address1    string
	Address2    string
	Postcode    string
	City        string
	CountryID   uuid.UUID
	StateID     *uuid.UUID
	Phone       string
	PhoneMobile string
	Deleted     bool
}

// NewAddress creates an address owned by the given customer. Field validation
// happens separately through Validate because it needs country reference data.
func NewAddress(customerID uuid.UUID) *Address {
	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
	}
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// IsOwnedBy reports whether the address belongs to the given customer.
func (a *Address) IsOwnedBy(customerID uuid.UUID) bool {
	return a.CustomerID == customerID
}

// MarkDeleted soft-deletes the address. Used when the address is still
// referenced by a historical order and cannot be removed.
func (a *Address) MarkDeleted() {
	a.Deleted = true
	a.UpdatedAt = time.Now()
}

// Validate checks the address against the owning country's rules and returns
// every failing field in one batch. Check order per field: presence, then
// format, then country-specific constraints.
func (a *Address) Validate(country *Country) shared.FieldErrors {
	errs := shared.FieldErrors{}

	if a.Alias == "" {
		errs.Add("alias", "Alias is required")
	}
	if a.FirstName == "" {
		errs.Add("firstname", "First name is required")
	} else if !nameFormat.MatchString(a.FirstName) {
		errs.Add("firstname", "Invalid first name")
	}
	if a.LastName == "" {
		errs.Add("lastname", "Last name is required")
	} else if !nameFormat.MatchString(a.LastName) {
		errs.Add("lastname", "Invalid last name")
	}
	if a.Address1 == "" {
		errs.Add("address1", "Address is required")
	}
	if a.City == "" {
		errs.Add("city", "City is required")
	} else if !cityFormat.MatchString(a.City) {
		errs.Add("city", "Invalid city")
	}
	if a.CountryID == uuid.Nil || country == nil {
		errs.Add("id_country", "Country is required")
		return errs
	}

	if a.Postcode == "" {
		if country.NeedZipCode {
			errs.Add("postcode", "Postcode is required")
		}
	} else if !country.MatchesPostcode(a.Postcode) {
		errs.Add("postcode", "Invalid postcode format for this country")
	}

	if country.ContainsStates && (a.StateID == nil || *a.StateID == uuid.Nil) {
		errs.Add("id_state", "State is required for this country")
	}

	return errs
}

// AddressRepository persists customer addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Address, error)
	FindDefaultForCustomer(ctx context.Context, customerID uuid.UUID) (*Address, error)
	Save(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}
