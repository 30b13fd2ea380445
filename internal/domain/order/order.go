package order

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle of a placed order. An order is created in
// the status matching its payment flow and only moves forward from there.
type Status string

const (
	// StatusAwaitingPayment is the initial status for offline payment
	// methods: the order exists but payment settles out of band.
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusPaymentAccepted Status = "PAYMENT_ACCEPTED"
	StatusProcessing      Status = "PROCESSING"
	StatusShipped         Status = "SHIPPED"
	StatusDelivered       Status = "DELIVERED"
	StatusCanceled        Status = "CANCELED"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusAwaitingPayment, StatusPaymentAccepted, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// OrderLine is a frozen copy of a cart line at conversion time.
type OrderLine struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	Reference   string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Order is the immutable record produced by committing a cart. All monetary
// fields and the address/carrier references are snapshots: later changes to
// the catalog, the customer's addresses or carrier pricing never rewrite a
// placed order.
type Order struct {
	shared.BaseAggregateRoot
	Reference         string
	CartID            uuid.UUID
	CustomerID        *uuid.UUID
	GuestEmail        string
	Currency          valueobject.Currency
	Lines             []OrderLine `gorm:"foreignKey:OrderID"`
	DeliveryAddressID uuid.UUID
	InvoiceAddressID  uuid.UUID
	CarrierID         uuid.UUID
	PaymentMethod     string
	Status            Status
	TotalProducts     decimal.Decimal
	TotalShipping     decimal.Decimal
	TotalDiscount     decimal.Decimal
	TotalPaid         decimal.Decimal
	PlacedAt          time.Time
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewReference generates a nine-letter order reference. The alphabet skips
// I and O to keep references unambiguous when read aloud.
func NewReference() string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return string(buf)
}

// FromCart freezes a fully prepared cart into an order. The cart must have
// reached PAYMENT_CHOSEN; the caller owns the atomic conversion write.
func FromCart(cart *checkout.Cart, guestEmail string) (*Order, error) {
	if !cart.State.AtLeast(checkout.StatePaymentChosen) {
		return nil, shared.PreconditionFailed("Payment method required")
	}
	if cart.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}
	if cart.DeliveryAddressID == nil || cart.InvoiceAddressID == nil || cart.CarrierID == nil {
		return nil, shared.PreconditionFailed("Checkout is incomplete")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         NewReference(),
		CartID:            cart.ID,
		CustomerID:        cart.CustomerID,
		GuestEmail:        guestEmail,
		Currency:          cart.Currency,
		Lines:             make([]OrderLine, 0, len(cart.Items)),
		DeliveryAddressID: *cart.DeliveryAddressID,
		InvoiceAddressID:  *cart.InvoiceAddressID,
		CarrierID:         *cart.CarrierID,
		PaymentMethod:     cart.PaymentMethod,
		Status:            StatusAwaitingPayment,
		TotalProducts:     cart.TotalProducts,
		TotalShipping:     cart.TotalShipping,
		TotalDiscount:     cart.TotalDiscount,
		TotalPaid:         cart.TotalGrand,
		PlacedAt:          time.Now(),
	}

	for _, item := range cart.Items {
		o.Lines = append(o.Lines, OrderLine{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Reference:   item.Reference,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.Total(),
		})
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// ReferencesAddress reports whether the order snapshot points at the address.
// Addresses referenced by orders are soft-deleted, never removed.
func (o *Order) ReferencesAddress(addressID uuid.UUID) bool {
	return o.DeliveryAddressID == addressID || o.InvoiceAddressID == addressID
}
