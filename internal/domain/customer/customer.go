package customer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Customer is an authenticated storefront identity.
type Customer struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Newsletter   bool
	Active       bool
}

// NewCustomer creates a customer account. The password hash is produced by
// the auth layer; the domain only stores it.
func NewCustomer(email, passwordHash, firstName, lastName string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if firstName == "" || !nameFormat.MatchString(firstName) {
		return nil, shared.NewDomainError("INVALID_NAME", "Invalid first name")
	}
	if lastName == "" || !nameFormat.MatchString(lastName) {
		return nil, shared.NewDomainError("INVALID_NAME", "Invalid last name")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		FirstName:         firstName,
		LastName:          lastName,
		Active:            true,
	}, nil
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ChangePassword replaces the stored password hash.
func (c *Customer) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	c.PasswordHash = passwordHash
	c.UpdatedAt = time.Now()
	return nil
}

// SetNewsletter records the newsletter opt-in choice.
func (c *Customer) SetNewsletter(optIn bool) {
	c.Newsletter = optIn
	c.UpdatedAt = time.Now()
}

// CustomerRepository persists customer accounts
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
}
