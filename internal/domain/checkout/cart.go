package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CartItem is a line item in a cart. The unit price is a snapshot taken when
// the line was created; it is not re-read from the catalog on every request.
type CartItem struct {
	ID          uuid.UUID
	CartID      uuid.UUID
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	Reference   string
	Quantity    int
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Total returns quantity * unit price for the line.
func (i *CartItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *CartItem) matches(productID uuid.UUID, variantID *uuid.UUID) bool {
	if i.ProductID != productID {
		return false
	}
	if i.VariantID == nil || variantID == nil {
		return i.VariantID == variantID
	}
	return *i.VariantID == *variantID
}

// Cart is the mutable pre-order aggregate. It is owned by exactly one
// identity (an authenticated customer or an anonymous guest token) and lives
// until it is converted into an order or abandoned.
type Cart struct {
	shared.BaseAggregateRoot
	CustomerID        *uuid.UUID
	GuestToken        string
	Currency          valueobject.Currency
	Items             []CartItem `gorm:"foreignKey:CartID"`
	DeliveryAddressID *uuid.UUID
	InvoiceAddressID  *uuid.UUID
	CarrierID         *uuid.UUID
	PaymentMethod     string
	State             State
	TotalProducts     decimal.Decimal
	TotalShipping     decimal.Decimal
	TotalDiscount     decimal.Decimal
	TotalGrand        decimal.Decimal
}

// NewCustomerCart creates an empty cart bound to an authenticated customer.
func NewCustomerCart(customerID uuid.UUID, currency valueobject.Currency) *Cart {
	cart := newCart(currency)
	cart.CustomerID = &customerID
	cart.AddDomainEvent(NewCartCreatedEvent(cart))
	return cart
}

// NewGuestCart creates an empty cart bound to an anonymous guest token.
func NewGuestCart(guestToken string, currency valueobject.Currency) *Cart {
	cart := newCart(currency)
	cart.GuestToken = guestToken
	cart.AddDomainEvent(NewCartCreatedEvent(cart))
	return cart
}

func newCart(currency valueobject.Currency) *Cart {
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Currency:          currency,
		Items:             make([]CartItem, 0),
		State:             StateEmpty,
		TotalProducts:     decimal.Zero,
		TotalShipping:     decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalGrand:        decimal.Zero,
	}
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// IsCommitted reports whether the cart has already been converted.
func (c *Cart) IsCommitted() bool {
	return c.State == StateCommitted
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the number of line items.
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// GetItem returns the line matching the product/variant pair, or nil.
func (c *Cart) GetItem(productID uuid.UUID, variantID *uuid.UUID) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].matches(productID, variantID) {
			return &c.Items[idx]
		}
	}
	return nil
}

// Quantity returns the current quantity of the product/variant pair, zero if
// the line does not exist.
func (c *Cart) Quantity(productID uuid.UUID, variantID *uuid.UUID) int {
	if item := c.GetItem(productID, variantID); item != nil {
		return item.Quantity
	}
	return 0
}

// ApplyItemDelta applies a signed quantity delta to a line, creating the line
// when it does not exist and removing it when the resulting quantity drops to
// zero or below. Stock limits are enforced by the application service before
// this is called; the aggregate owns only the structural invariants.
func (c *Cart) ApplyItemDelta(productID uuid.UUID, variantID *uuid.UUID, delta int, name, reference string, unitPrice valueobject.Money) error {
	if c.IsCommitted() {
		return shared.ErrAlreadyCommitted
	}
	if delta == 0 {
		return nil
	}

	item := c.GetItem(productID, variantID)
	if item == nil {
		if delta < 0 {
			return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
		}
		now := time.Now()
		c.Items = append(c.Items, CartItem{
			ID:          uuid.New(),
			CartID:      c.ID,
			ProductID:   productID,
			VariantID:   variantID,
			ProductName: name,
			Reference:   reference,
			Quantity:    delta,
			UnitPrice:   unitPrice.Amount(),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	} else {
		item.Quantity += delta
		item.UpdatedAt = time.Now()
		if item.Quantity <= 0 {
			c.removeItem(item.ID)
		}
	}

	c.afterItemsChanged()
	return nil
}

// RemoveItem removes a line regardless of its quantity.
func (c *Cart) RemoveItem(productID uuid.UUID, variantID *uuid.UUID) error {
	if c.IsCommitted() {
		return shared.ErrAlreadyCommitted
	}
	item := c.GetItem(productID, variantID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
	}
	c.removeItem(item.ID)
	c.afterItemsChanged()
	return nil
}

func (c *Cart) removeItem(itemID uuid.UUID) {
	for idx, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

// afterItemsChanged recomputes totals and resolves the state: an emptied cart
// falls back to EMPTY, a refilled cart with an address keeps its progress.
func (c *Cart) afterItemsChanged() {
	if c.IsEmpty() {
		c.State = StateEmpty
	} else if c.State == StateEmpty && c.DeliveryAddressID != nil {
		c.State = StateAddressSet
	}
	c.recalculateTotals()
	c.UpdatedAt = time.Now()
}

// AttachAddresses records the delivery and invoice address selection and
// advances the checkout to ADDRESS_SET. Re-submitting the same pair is a
// no-op; a changed delivery address invalidates any carrier and payment
// selection because carrier availability depends on the destination.
func (c *Cart) AttachAddresses(deliveryID uuid.UUID, invoiceID *uuid.UUID) error {
	if c.IsCommitted() {
		return shared.ErrAlreadyCommitted
	}
	if c.IsEmpty() {
		return shared.ErrCartEmpty
	}

	resolvedInvoice := deliveryID
	if invoiceID != nil && *invoiceID != uuid.Nil {
		resolvedInvoice = *invoiceID
	}

	sameDelivery := c.DeliveryAddressID != nil && *c.DeliveryAddressID == deliveryID
	if sameDelivery && c.InvoiceAddressID != nil && *c.InvoiceAddressID == resolvedInvoice {
		return nil
	}

	c.DeliveryAddressID = &deliveryID
	c.InvoiceAddressID = &resolvedInvoice

	if !sameDelivery {
		c.CarrierID = nil
		c.PaymentMethod = ""
		c.TotalShipping = decimal.Zero
		c.State = StateAddressSet
	}
	c.recalculateTotals()
	c.UpdatedAt = time.Now()
	return nil
}

// SetInvoiceAddress overrides only the invoice address. Checkout progress is
// unaffected: invoicing does not influence carrier availability.
func (c *Cart) SetInvoiceAddress(invoiceID uuid.UUID) error {
	if c.IsCommitted() {
		return shared.ErrAlreadyCommitted
	}
	if !c.State.AtLeast(StateAddressSet) {
		return shared.PreconditionFailed("Delivery address required")
	}
	c.InvoiceAddressID = &invoiceID
	c.UpdatedAt = time.Now()
	return nil
}

// SelectCarrier records the carrier choice and its quoted shipping price and
// advances the checkout to CARRIER_SET. The caller must have re-validated the
// carrier against a fresh quote.
func (c *Cart) SelectCarrier(carrierID uuid.UUID, shippingPrice valueobject.Money) error {
	if c.IsCommitted() {
		return shared.ErrAlreadyCommitted
	}
	if !c.State.AtLeast(StateAddressSet) {
		return shared.PreconditionFailed("Delivery address required")
	}

	c.CarrierID = &carrierID
	c.TotalShipping = shippingPrice.Amount()
	if !c.State.AtLeast(StateCarrierSet) {
		c.State = StateCarrierSet
	}
	c.recalculateTotals()
	c.UpdatedAt = time.Now()
	return nil
}

// ChoosePayment records the payment method and advances the checkout to
// PAYMENT_CHOSEN.
func (c *Cart) ChoosePayment(method string) error {
	if c.IsCommitted() {
		return shared.ErrAlreadyCommitted
	}
	if !c.State.AtLeast(StateCarrierSet) {
		return shared.PreconditionFailed("Carrier required")
	}
	if method == "" {
		return shared.MissingParameter("payment_method")
	}

	c.PaymentMethod = method
	if !c.State.AtLeast(StatePaymentChosen) {
		c.State = StatePaymentChosen
	}
	c.UpdatedAt = time.Now()
	return nil
}

// MarkCommitted transitions the cart to its terminal state. The repository
// performs the actual conditional write; this only mirrors the transition on
// the in-memory aggregate.
func (c *Cart) MarkCommitted() error {
	if c.IsCommitted() {
		return shared.ErrAlreadyCommitted
	}
	c.State = StateCommitted
	c.UpdatedAt = time.Now()
	c.AddDomainEvent(NewCartCommittedEvent(c))
	return nil
}

// BindToCustomer attaches a previously anonymous cart to an authenticated
// customer, preserving line items. Address defaults are re-resolved by the
// application service because they live outside this aggregate.
func (c *Cart) BindToCustomer(customerID uuid.UUID) error {
	if c.IsCommitted() {
		return shared.ErrAlreadyCommitted
	}
	if c.CustomerID != nil && *c.CustomerID != customerID {
		return shared.ErrForbidden
	}
	c.CustomerID = &customerID
	c.GuestToken = ""
	c.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy reports whether the identity owns this cart.
func (c *Cart) IsOwnedBy(customerID *uuid.UUID, guestToken string) bool {
	if c.CustomerID != nil {
		return customerID != nil && *c.CustomerID == *customerID
	}
	return c.GuestToken != "" && c.GuestToken == guestToken
}

func (c *Cart) recalculateTotals() {
	products := decimal.Zero
	for _, item := range c.Items {
		products = products.Add(item.Total())
	}
	c.TotalProducts = products
	c.TotalGrand = products.Add(c.TotalShipping).Sub(c.TotalDiscount)
	if c.TotalGrand.IsNegative() {
		c.TotalGrand = decimal.Zero
	}
}

// GetTotalProductsMoney returns the products total as Money
func (c *Cart) GetTotalProductsMoney() valueobject.Money {
	return mustMoney(c.TotalProducts, c.Currency)
}

// GetTotalShippingMoney returns the shipping total as Money
func (c *Cart) GetTotalShippingMoney() valueobject.Money {
	return mustMoney(c.TotalShipping, c.Currency)
}

// GetTotalDiscountMoney returns the discount total as Money
func (c *Cart) GetTotalDiscountMoney() valueobject.Money {
	return mustMoney(c.TotalDiscount, c.Currency)
}

// GetTotalGrandMoney returns the grand total as Money
func (c *Cart) GetTotalGrandMoney() valueobject.Money {
	return mustMoney(c.TotalGrand, c.Currency)
}

func mustMoney(amount decimal.Decimal, currency valueobject.Currency) valueobject.Money {
	m, err := valueobject.NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}
