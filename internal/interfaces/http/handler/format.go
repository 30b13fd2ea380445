package handler

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
)

// Wire shapes. Amounts leave the API rounded to two decimals; everything
// upstream works on exact decimals.

// CartItemView represents a cart line in API responses
type CartItemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id,omitempty"`
	Name      string  `json:"name"`
	Reference string  `json:"reference"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// CartTotalsView represents cart totals in API responses
type CartTotalsView struct {
	Products float64 `json:"products"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Grand    float64 `json:"grand"`
}

// CartView represents a cart in API responses
type CartView struct {
	ID                string         `json:"id"`
	State             string         `json:"state"`
	Currency          string         `json:"currency"`
	Items             []CartItemView `json:"items"`
	ItemCount         int            `json:"item_count"`
	DeliveryAddressID *string        `json:"delivery_address_id,omitempty"`
	InvoiceAddressID  *string        `json:"invoice_address_id,omitempty"`
	CarrierID         *string        `json:"carrier_id,omitempty"`
	PaymentMethod     string         `json:"payment_method,omitempty"`
	Totals            CartTotalsView `json:"totals"`
}

// AddressView represents an address in API responses
type AddressView struct {
	ID          string  `json:"id"`
	Alias       string  `json:"alias"`
	FirstName   string  `json:"firstname"`
	LastName    string  `json:"lastname"`
	Company     string  `json:"company,omitempty"`
	Address1    string  `json:"address1"`
	Address2    string  `json:"address2,omitempty"`
	Postcode    string  `json:"postcode"`
	City        string  `json:"city"`
	CountryID   string  `json:"id_country"`
	StateID     *string `json:"id_state,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	PhoneMobile string  `json:"phone_mobile,omitempty"`
}

// CarrierView represents a quoted carrier in API responses
type CarrierView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Delay     string  `json:"delay"`
	Price     float64 `json:"price"`
	IsDefault bool    `json:"is_default"`
}

// PaymentMethodView represents a payment method in API responses
type PaymentMethodView struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Flow        string `json:"flow"`
}

// CountryView represents a deliverable country in API responses
type CountryView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IsoCode        string `json:"iso_code"`
	NeedZipCode    bool   `json:"need_zip_code"`
	ZipCodeFormat  string `json:"zip_code_format,omitempty"`
	ContainsStates bool   `json:"contains_states"`
}

// CustomerView represents the account owner in API responses
type CustomerView struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstname"`
	LastName   string `json:"lastname"`
	Newsletter bool   `json:"newsletter"`
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toCartView(cart *checkout.Cart) CartView {
	items := make([]CartItemView, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemView{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			VariantID: uuidPtrString(item.VariantID),
			Name:      item.ProductName,
			Reference: item.Reference,
			Quantity:  item.Quantity,
			UnitPrice: round2(item.UnitPrice),
			Total:     round2(item.Total()),
		}
	}

	return CartView{
		ID:                cart.ID.String(),
		State:             cart.State.String(),
		Currency:          string(cart.Currency),
		Items:             items,
		ItemCount:         cart.ItemCount(),
		DeliveryAddressID: uuidPtrString(cart.DeliveryAddressID),
		InvoiceAddressID:  uuidPtrString(cart.InvoiceAddressID),
		CarrierID:         uuidPtrString(cart.CarrierID),
		PaymentMethod:     cart.PaymentMethod,
		Totals: CartTotalsView{
			Products: cart.GetTotalProductsMoney().Rounded2(),
			Shipping: cart.GetTotalShippingMoney().Rounded2(),
			Discount: cart.GetTotalDiscountMoney().Rounded2(),
			Grand:    cart.GetTotalGrandMoney().Rounded2(),
		},
	}
}

func toAddressView(addr *customer.Address) AddressView {
	return AddressView{
		ID:          addr.ID.String(),
		Alias:       addr.Alias,
		FirstName:   addr.FirstName,
		LastName:    addr.LastName,
		Company:     addr.Company,
		Address1:    addr.Address1,
		Address2:    addr.Address2,
		Postcode:    addr.Postcode,
		City:        addr.City,
		CountryID:   addr.CountryID.String(),
		StateID:     uuidPtrString(addr.StateID),
		Phone:       addr.Phone,
		PhoneMobile: addr.PhoneMobile,
	}
}

func toAddressViews(addresses []customer.Address) []AddressView {
	views := make([]AddressView, len(addresses))
	for i := range addresses {
		views[i] = toAddressView(&addresses[i])
	}
	return views
}

func toCarrierViews(carriers []checkout.Carrier) []CarrierView {
	views := make([]CarrierView, len(carriers))
	for i, carrier := range carriers {
		views[i] = CarrierView{
			ID:        carrier.ID.String(),
			Name:      carrier.Name,
			Delay:     carrier.Delay,
			Price:     carrier.Price.Rounded2(),
			IsDefault: carrier.IsDefault,
		}
	}
	return views
}

func toPaymentMethodViews(methods []checkout.PaymentMethod) []PaymentMethodView {
	views := make([]PaymentMethodView, len(methods))
	for i, method := range methods {
		views[i] = PaymentMethodView{
			Code:        method.Code,
			DisplayName: method.DisplayName,
			Flow:        string(method.Flow),
		}
	}
	return views
}

func toCountryViews(countries []customer.Country) []CountryView {
	views := make([]CountryView, len(countries))
	for i, country := range countries {
		views[i] = CountryView{
			ID:             country.ID.String(),
			Name:           country.Name,
			IsoCode:        country.IsoCode,
			NeedZipCode:    country.NeedZipCode,
			ZipCodeFormat:  country.ZipCodeFormat,
			ContainsStates: country.ContainsStates,
		}
	}
	return views
}

func toCustomerView(cust *customer.Customer) CustomerView {
	return CustomerView{
		ID:         cust.ID.String(),
		Email:      cust.Email,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		Newsletter: cust.Newsletter,
	}
}
