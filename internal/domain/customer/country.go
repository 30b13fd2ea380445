package customer

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Country is a read-only reference entity describing per-country address rules.
// ZipCodeFormat uses the token alphabet N (digit), L (letter) and C (the
// country ISO code substituted literally); spaces in the declared format are
// optional in submitted postcodes.
type Country struct {
	shared.BaseEntity
	Name           string
	IsoCode        string
	NeedZipCode    bool
	ZipCodeFormat  string
	ContainsStates bool
	Active         bool
}

// TableName returns the table name for GORM
func (Country) TableName() string {
	return "countries"
}

// MatchesPostcode reports whether the postcode satisfies the country's
// declared format. Countries without a declared format accept anything.
func (c *Country) MatchesPostcode(postcode string) bool {
	if !c.NeedZipCode || c.ZipCodeFormat == "" {
		return true
	}
	re, err := c.postcodePattern()
	if err != nil {
		return false
	}
	return re.MatchString(postcode)
}

func (c *Country) postcodePattern() (*regexp.Regexp, error) {
	replacer := strings.NewReplacer(
		"N", "[0-9]",
		"L", "[a-zA-Z]",
		"C", regexp.QuoteMeta(c.IsoCode),
		" ", " ?",
	)
	return regexp.Compile("(?i)^" + replacer.Replace(c.ZipCodeFormat) + "$")
}

// State is a country subdivision referenced by addresses in countries that
// partition by state.
type State struct {
	shared.BaseEntity
	CountryID uuid.UUID
	Name      string
	IsoCode   string
	Active    bool
}

// TableName returns the table name for GORM
func (State) TableName() string {
	return "states"
}

// CountryRepository provides read access to country reference data
type CountryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Country, error)
	FindAllActive(ctx context.Context) ([]Country, error)
	FindStateByID(ctx context.Context, id uuid.UUID) (*State, error)
}
