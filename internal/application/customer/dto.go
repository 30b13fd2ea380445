package customer

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
)

// CreateAddressRequest creates or replaces a customer address.
type CreateAddressRequest struct {
	Alias       string     `json:"alias"`
	FirstName   string     `json:"firstname"`
	LastName    string     `json:"lastname"`
	Company     string     `json:"company"`
	Address1    string     `json:"address1"`
	Address2    string     `json:"address2"`
	Postcode    string     `json:"postcode"`
	City        string     `json:"city"`
	CountryID   uuid.UUID  `json:"id_country"`
	StateID     *uuid.UUID `json:"id_state"`
	Phone       string     `json:"phone"`
	PhoneMobile string     `json:"phone_mobile"`
}

func (r CreateAddressRequest) apply(addr *customer.Address) {
	addr.Alias = r.Alias
	addr.FirstName = r.FirstName
	addr.LastName = r.LastName
	addr.Company = r.Company
	addr.Address1 = r.Address1
	addr.Address2 = r.Address2
	addr.Postcode = r.Postcode
	addr.City = r.City
	addr.CountryID = r.CountryID
	addr.StateID = r.StateID
	addr.Phone = r.Phone
	addr.PhoneMobile = r.PhoneMobile
}

// RegisterRequest creates a customer account.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FirstName  string `json:"firstname" binding:"required"`
	LastName   string `json:"lastname" binding:"required"`
	Newsletter bool   `json:"newsletter"`
}

// LoginRequest authenticates a customer.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest completes a password reset with an emailed token.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResult carries the issued token and the authenticated customer.
type AuthResult struct {
	Token    string
	Customer *customer.Customer
}
