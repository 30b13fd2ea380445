package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// CheckoutService drives the checkout progression of a cart: address
// attachment, carrier selection and the final commit that converts the cart
// into an order.
type CheckoutService struct {
	carts          *CartService
	cartRepo       checkout.CartRepository
	addressRepo    customer.AddressRepository
	countryRepo    customer.CountryRepository
	customerRepo   customer.CustomerRepository
	orderRepo      order.OrderRepository
	shipping       checkout.Shipping
	payment        checkout.Payment
	inventory      checkout.Inventory
	notification   checkout.Notification
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	carts *CartService,
	cartRepo checkout.CartRepository,
	addressRepo customer.AddressRepository,
	countryRepo customer.CountryRepository,
	customerRepo customer.CustomerRepository,
	orderRepo order.OrderRepository,
	shipping checkout.Shipping,
	payment checkout.Payment,
	inventory checkout.Inventory,
	notification checkout.Notification,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:        carts,
		cartRepo:     cartRepo,
		addressRepo:  addressRepo,
		countryRepo:  countryRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		shipping:     shipping,
		payment:      payment,
		inventory:    inventory,
		notification: notification,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Overview assembles everything the checkout page renders: the cart, the
// customer's address book, the carriers available for the chosen delivery
// address and the payment methods on offer.
func (s *CheckoutService) Overview(ctx context.Context, identity Identity) (*CheckoutView, error) {
	cart, err := s.carts.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	view := &CheckoutView{Cart: cart}

	if identity.IsAuthenticated() {
		addresses, err := s.addressRepo.FindByCustomer(ctx, *identity.CustomerID)
		if err != nil {
			return nil, err
		}
		view.Addresses = addresses
	}

	if cart.State.AtLeast(checkout.StateAddressSet) && cart.DeliveryAddressID != nil {
		destination, err := s.loadOwnedAddress(ctx, identity, *cart.DeliveryAddressID)
		if err == nil {
			carriers, err := s.shipping.Quote(ctx, cart, destination)
			if err != nil {
				return nil, err
			}
			view.Carriers = carriers
		}
	}

	methods, err := s.payment.AvailableMethods(ctx, cart)
	if err != nil {
		return nil, err
	}
	view.PaymentMethods = methods

	return view, nil
}

// SubmitStep dispatches a PUT/PATCH /checkout body to the matching step
// handler. Steps are idempotent: resubmitting an already applied step leaves
// the cart unchanged. The result carries what the shopper chooses from next:
// the carrier quotes after an address step, the payment methods after the
// shipping step.
func (s *CheckoutService) SubmitStep(ctx context.Context, identity Identity, req StepRequest) (*StepResult, error) {
	cart, err := s.carts.Get(ctx, identity)
	if err != nil {
		return nil, err
	}

	switch req.Step {
	case StepAddress:
		err = s.stepAddress(ctx, identity, cart, req)
	case StepDeliveryAddress:
		err = s.stepDeliveryAddress(ctx, identity, cart, req)
	case StepInvoiceAddress:
		err = s.stepInvoiceAddress(ctx, identity, cart, req)
	case StepShipping, StepCarrier:
		err = s.stepCarrier(ctx, identity, cart, req)
	default:
		err = shared.NewDomainError("INVALID_INPUT", "Unknown checkout step: "+req.Step)
	}
	if err != nil {
		return nil, err
	}

	result := &StepResult{Cart: cart}
	switch req.Step {
	case StepAddress, StepDeliveryAddress, StepInvoiceAddress:
		carriers, err := s.quoteForCart(ctx, identity, cart)
		if err != nil {
			return nil, err
		}
		result.Carriers = carriers
	case StepShipping, StepCarrier:
		methods, err := s.payment.AvailableMethods(ctx, cart)
		if err != nil {
			return nil, err
		}
		result.PaymentMethods = methods
	}
	return result, nil
}

// stepAddress attaches delivery and invoice addresses in one submission.
func (s *CheckoutService) stepAddress(ctx context.Context, identity Identity, cart *checkout.Cart, req StepRequest) error {
	deliveryID, err := s.resolveStepAddress(ctx, identity, req.DeliveryAddressID, req.NewAddress)
	if err != nil {
		return err
	}

	var invoiceID *uuid.UUID
	if !req.SameAsDelivery && req.InvoiceAddressID != nil {
		resolved, err := s.resolveStepAddress(ctx, identity, req.InvoiceAddressID, nil)
		if err != nil {
			return err
		}
		invoiceID = &resolved
	}

	expectedVersion := cart.Version
	if err := cart.AttachAddresses(deliveryID, invoiceID); err != nil {
		return err
	}
	return s.cartRepo.SaveWithLock(ctx, cart, expectedVersion)
}

func (s *CheckoutService) stepDeliveryAddress(ctx context.Context, identity Identity, cart *checkout.Cart, req StepRequest) error {
	deliveryID, err := s.resolveStepAddress(ctx, identity, req.DeliveryAddressID, req.NewAddress)
	if err != nil {
		return err
	}
	expectedVersion := cart.Version
	if err := cart.AttachAddresses(deliveryID, cart.InvoiceAddressID); err != nil {
		return err
	}
	return s.cartRepo.SaveWithLock(ctx, cart, expectedVersion)
}

func (s *CheckoutService) stepInvoiceAddress(ctx context.Context, identity Identity, cart *checkout.Cart, req StepRequest) error {
	if req.SameAsDelivery {
		if cart.DeliveryAddressID == nil {
			return shared.PreconditionFailed("Delivery address required")
		}
		expectedVersion := cart.Version
		if err := cart.SetInvoiceAddress(*cart.DeliveryAddressID); err != nil {
			return err
		}
		return s.cartRepo.SaveWithLock(ctx, cart, expectedVersion)
	}

	invoiceID, err := s.resolveStepAddress(ctx, identity, req.InvoiceAddressID, req.NewAddress)
	if err != nil {
		return err
	}
	expectedVersion := cart.Version
	if err := cart.SetInvoiceAddress(invoiceID); err != nil {
		return err
	}
	return s.cartRepo.SaveWithLock(ctx, cart, expectedVersion)
}

// stepCarrier re-validates the chosen carrier against a fresh quote before
// recording it: a stale or foreign carrier id never sticks to the cart.
func (s *CheckoutService) stepCarrier(ctx context.Context, identity Identity, cart *checkout.Cart, req StepRequest) error {
	if req.CarrierID == nil {
		return shared.MissingParameter("id_carrier")
	}
	if !cart.State.AtLeast(checkout.StateAddressSet) || cart.DeliveryAddressID == nil {
		return shared.PreconditionFailed("Delivery address required")
	}

	carriers, err := s.quoteForCart(ctx, identity, cart)
	if err != nil {
		return err
	}

	for _, carrier := range carriers {
		if carrier.ID == *req.CarrierID {
			expectedVersion := cart.Version
			if err := cart.SelectCarrier(carrier.ID, carrier.Price); err != nil {
				return err
			}
			return s.cartRepo.SaveWithLock(ctx, cart, expectedVersion)
		}
	}
	return shared.ErrInvalidCarrier
}

// ListCarriers quotes the carriers for the cart's delivery address in the
// order the shipping collaborator returns them.
func (s *CheckoutService) ListCarriers(ctx context.Context, identity Identity) ([]checkout.Carrier, error) {
	cart, err := s.carts.Get(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !cart.State.AtLeast(checkout.StateAddressSet) || cart.DeliveryAddressID == nil {
		return nil, shared.PreconditionFailed("Delivery address required")
	}
	return s.quoteForCart(ctx, identity, cart)
}

// quoteForCart quotes carriers against the cart's delivery address. A cart
// with no address yet quotes to nothing.
func (s *CheckoutService) quoteForCart(ctx context.Context, identity Identity, cart *checkout.Cart) ([]checkout.Carrier, error) {
	if cart.DeliveryAddressID == nil {
		return nil, nil
	}
	destination, err := s.loadOwnedAddress(ctx, identity, *cart.DeliveryAddressID)
	if err != nil {
		return nil, err
	}
	return s.shipping.Quote(ctx, cart, destination)
}

// Commit converts the cart into an order. The sequence is strict: the cart
// must be non-empty and carrier-complete, every line is re-checked against
// current stock, the payment method is classified, and only offline flows
// create an order here. The conversion itself is a single conditional write:
// when two commits race, exactly one creates the order.
func (s *CheckoutService) Commit(ctx context.Context, identity Identity, req CommitRequest) (*CommitResult, error) {
	cart, err := s.carts.Get(ctx, identity)
	if err != nil {
		return nil, err
	}
	if cart.IsCommitted() {
		return nil, shared.ErrAlreadyCommitted
	}
	if cart.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}
	if !cart.State.AtLeast(checkout.StateCarrierSet) {
		return nil, shared.PreconditionFailed("Address and carrier must be set before committing")
	}
	if req.PaymentMethod == "" {
		return nil, shared.MissingParameter("payment_method")
	}

	if err := s.recheckStock(ctx, cart); err != nil {
		return nil, err
	}

	method, err := s.payment.Classify(ctx, cart, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := cart.ChoosePayment(method.Code); err != nil {
		return nil, err
	}

	if method.Flow == checkout.FlowRedirect {
		expectedVersion := cart.Version
		if err := s.cartRepo.SaveWithLock(ctx, cart, expectedVersion); err != nil {
			return nil, err
		}
		url, err := s.payment.RedirectURL(ctx, cart, method)
		if err != nil {
			return nil, err
		}
		return &CommitResult{RedirectURL: url}, nil
	}

	o, err := order.FromCart(cart, req.GuestEmail)
	if err != nil {
		return nil, err
	}
	if err := cart.MarkCommitted(); err != nil {
		return nil, err
	}

	// The conditional conversion is the commit point. A concurrent commit
	// that already flipped the cart makes this return ALREADY_COMMITTED
	// and no second order is created.
	if err := s.cartRepo.MarkConverted(ctx, cart.ID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("order save failed after cart conversion",
			zap.String("cart_id", cart.ID.String()),
			zap.String("order_reference", o.Reference),
			zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.publishEvents(ctx, cart, o)
	s.notifyOrderPlaced(ctx, cart, o, req.GuestEmail)

	return &CommitResult{OrderID: &o.ID, OrderReference: o.Reference}, nil
}

// publishEvents drains the aggregates' recorded events to the publisher.
// Delivery is best effort; the commit already persisted.
func (s *CheckoutService) publishEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, agg := range aggregates {
		for _, event := range agg.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		agg.ClearDomainEvents()
	}
}

// recheckStock re-validates every line against current availability. The
// first offending line aborts the commit and is named in the error; no
// partial order is ever created.
func (s *CheckoutService) recheckStock(ctx context.Context, cart *checkout.Cart) error {
	for _, item := range cart.Items {
		available, err := s.inventory.QuantityAvailable(ctx, item.ProductID, item.VariantID)
		if err != nil {
			return err
		}
		if item.Quantity <= available {
			continue
		}
		allowed, err := s.inventory.AllowsBackorder(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !allowed {
			return outOfStockError(item.ProductName, item.Reference)
		}
	}
	return nil
}

func (s *CheckoutService) notifyOrderPlaced(ctx context.Context, cart *checkout.Cart, o *order.Order, guestEmail string) {
	email := guestEmail
	if cart.CustomerID != nil {
		cust, err := s.customerRepo.FindByID(ctx, *cart.CustomerID)
		if err != nil {
			s.logger.Warn("order confirmation skipped, customer lookup failed",
				zap.String("order_reference", o.Reference), zap.Error(err))
			return
		}
		email = cust.Email
	}
	if email == "" {
		return
	}
	s.notification.SendOrderConfirmation(ctx, email, o.Reference)
}

// loadOwnedAddress resolves an address for the identity. Any failure mode
// (missing, deleted or owned by someone else) collapses to NOT_FOUND so the
// response never reveals whether a given address id exists.
func (s *CheckoutService) loadOwnedAddress(ctx context.Context, identity Identity, addressID uuid.UUID) (*customer.Address, error) {
	if !identity.IsAuthenticated() {
		return nil, shared.ErrUnauthenticated
	}
	addr, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if addr.Deleted || !addr.IsOwnedBy(*identity.CustomerID) {
		return nil, shared.ErrNotFound
	}
	return addr, nil
}

// resolveStepAddress resolves an existing address reference or creates one
// inline from the payload. Validation is batch: every failing field comes
// back at once and nothing is attached on failure.
func (s *CheckoutService) resolveStepAddress(ctx context.Context, identity Identity, addressID *uuid.UUID, payload *AddressPayload) (uuid.UUID, error) {
	if addressID != nil && *addressID != uuid.Nil {
		addr, err := s.loadOwnedAddress(ctx, identity, *addressID)
		if err != nil {
			return uuid.Nil, err
		}
		return addr.ID, nil
	}
	if payload == nil {
		return uuid.Nil, shared.MissingParameter("id_address_delivery")
	}
	if !identity.IsAuthenticated() {
		return uuid.Nil, shared.ErrUnauthenticated
	}

	addr := customer.NewAddress(*identity.CustomerID)
	applyAddressPayload(addr, *payload)

	country, err := s.countryRepo.FindByID(ctx, addr.CountryID)
	if err != nil {
		country = nil
	}
	if fieldErrs := addr.Validate(country); !fieldErrs.IsEmpty() {
		return uuid.Nil, shared.NewValidationError(fieldErrs)
	}
	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return uuid.Nil, err
	}
	return addr.ID, nil
}

func applyAddressPayload(addr *customer.Address, payload AddressPayload) {
	addr.Alias = payload.Alias
	addr.FirstName = payload.FirstName
	addr.LastName = payload.LastName
	addr.Company = payload.Company
	addr.Address1 = payload.Address1
	addr.Address2 = payload.Address2
	addr.Postcode = payload.Postcode
	addr.City = payload.City
	addr.CountryID = payload.CountryID
	addr.StateID = payload.StateID
	addr.Phone = payload.Phone
	addr.PhoneMobile = payload.PhoneMobile
}
