package order

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrReasonIsRequired is returned when a transition to Cancelled or Returned
	// is requested without a status reason. Terminal outcomes must be auditable.
	ErrReasonIsRequired = errors.New("status reason is required for cancelled and returned orders")

	// ErrOrderHasNoItems is returned when an order is created without line items.
	ErrOrderHasNoItems = errors.New("order must contain at least one line item")

	// ErrAddressIsLocked is returned when the shipping address is patched after
	// the order has been handed to the carrier or reached a terminal status.
	ErrAddressIsLocked = errors.New("shipping address can no longer be changed")
)

// Order represents a customer order in the system. It is the aggregate root that
// manages the order lifecycle from placement through fulfillment, cancellation or return.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and at least one line item
//   - Line items and their branch assignments are immutable after placement
//   - Status transitions follow the Status state machine edges
//   - Cancelled and Returned orders carry a non-empty status reason
//   - Inventory restoration happens at most once per order (idempotency marker)
//   - version increases by exactly 1 on every committed mutation
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. Internal order state is the source
// of truth: the shipping carrier is kept eventually consistent with it.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// items are the purchased quantities, each bound to one fulfilling branch
	items []LineItem

	// status is the current state in the order lifecycle
	status Status

	// paymentStatus tracks the payment side independently of fulfillment
	paymentStatus PaymentStatus

	// shippingAddress is the immutable-at-placement address snapshot
	shippingAddress kernel.Address

	// computed totals, all in minor units
	subtotal    kernel.Money
	tax         kernel.Money
	shippingFee kernel.Money
	discount    kernel.Money
	totalPrice  kernel.Money
	finalPrice  kernel.Money

	// trackingCode is the carrier reference, nil until a shipment exists
	trackingCode *string

	// statusReason explains a cancellation or return
	statusReason string

	// note is a free-text customer/administrative note
	note string

	// stockRestored guards inventory restoration so a retried cancel
	// never credits stock twice
	stockRestored bool

	// carrierSyncPending marks a cancelled order whose carrier-side
	// cancellation has not been acknowledged yet
	carrierSyncPending bool

	// version is the optimistic-concurrency counter
	version int

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with computed totals.
// This is the placement-time constructor: line items arrive already bound to
// the branches the Inventory Allocator chose, and the authoritative stock
// decrement has already been committed by the caller.
//
// Totals: subtotal is the sum of line subtotals; totalPrice adds tax and
// shipping fee; finalPrice subtracts the voucher discount (floored at zero).
//
// Returns a validation error if the ID is invalid, no items are given, any
// item is invalid, or the address was not constructed properly.
func NewOrder(
	id kernel.UUID,
	items []LineItem,
	shippingAddress kernel.Address,
	tax kernel.Money,
	shippingFee kernel.Money,
	discount kernel.Money,
	note string,
) (*Order, error) {
	now := time.Now().UTC()

	order := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		tax:           tax,
		shippingFee:   shippingFee,
		discount:      discount,
		note:          note,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setItems(items),
		order.setShippingAddress(shippingAddress),
	); err != nil {
		return nil, err
	}

	order.computeTotals()
	return order, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// placement-time logic. Totals are recomputed from the restored items and
// charges; they are derived values and the line items remain authoritative.
func RestoreOrder(
	id kernel.UUID,
	items []LineItem,
	status Status,
	paymentStatus PaymentStatus,
	shippingAddress kernel.Address,
	tax kernel.Money,
	shippingFee kernel.Money,
	discount kernel.Money,
	trackingCode *string,
	statusReason string,
	note string,
	stockRestored bool,
	carrierSyncPending bool,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("order version")
	}

	order := &Order{
		status:             status,
		paymentStatus:      paymentStatus,
		tax:                tax,
		shippingFee:        shippingFee,
		discount:           discount,
		trackingCode:       trackingCode,
		statusReason:       statusReason,
		note:               note,
		stockRestored:      stockRestored,
		carrierSyncPending: carrierSyncPending,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setItems(items),
		order.setShippingAddress(shippingAddress),
	); err != nil {
		return nil, err
	}

	order.computeTotals()
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns a copy of the order's line items.
// The slice is copied so callers cannot mutate the aggregate's state.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// ShippingAddress returns the address snapshot taken at placement.
func (o *Order) ShippingAddress() kernel.Address {
	return o.shippingAddress
}

// Subtotal returns the sum of line item subtotals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Tax returns the tax amount.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// ShippingFee returns the shipping fee.
func (o *Order) ShippingFee() kernel.Money {
	return o.shippingFee
}

// Discount returns the voucher discount amount.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// TotalPrice returns subtotal + tax + shipping fee.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// FinalPrice returns the total price minus the discount, floored at zero.
func (o *Order) FinalPrice() kernel.Money {
	return o.finalPrice
}

// TrackingCode returns the carrier tracking reference, or nil if no shipment exists.
func (o *Order) TrackingCode() *string {
	return o.trackingCode
}

// StatusReason returns the reason recorded for a cancellation or return.
func (o *Order) StatusReason() string {
	return o.statusReason
}

// Note returns the free-text note on the order.
func (o *Order) Note() string {
	return o.note
}

// StockRestored reports whether inventory for this order has already been
// credited back to its branches.
func (o *Order) StockRestored() bool {
	return o.stockRestored
}

// CarrierSyncPending reports whether the carrier still has to acknowledge
// a cancellation for this order.
func (o *Order) CarrierSyncPending() bool {
	return o.carrierSyncPending
}

// Version returns the optimistic-concurrency counter.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to the target status.
//
// Rules enforced:
//   - the edge must exist in the Status state machine
//   - Cancelled and Returned require a non-empty reason (ErrReasonIsRequired)
//   - terminal statuses reject every further transition
//
// On success the status (and reason, when given) is updated and the version
// is bumped by exactly 1. On failure the order is left untouched.
func (o *Order) TransitionTo(target Status, reason string) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if target.RequiresReason() && reason == "" {
		return ErrReasonIsRequired
	}

	o.status = newStatus
	if reason != "" {
		o.statusReason = reason
	}
	o.bumpVersion()
	return nil
}

// MarkStockRestored flips the restoration idempotency marker.
//
// Returns true only on the first call for this order: the caller may credit
// inventory back exactly when true is returned. Subsequent calls return false,
// so a retried cancellation can never double-restore stock.
func (o *Order) MarkStockRestored() bool {
	if o.stockRestored {
		return false
	}
	o.stockRestored = true
	return true
}

// MarkCarrierSyncPending records that the carrier-side cancellation has not
// been acknowledged yet. Set in the same commit as the cancellation itself,
// so it does not bump the version; a reconciliation job re-drives the carrier
// call later.
func (o *Order) MarkCarrierSyncPending() {
	o.carrierSyncPending = true
}

// MarkCarrierSynced clears the carrier reconciliation flag.
func (o *Order) MarkCarrierSynced() {
	o.carrierSyncPending = false
	o.bumpVersion()
}

// SetTrackingCode attaches the carrier tracking reference to the order.
func (o *Order) SetTrackingCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	o.trackingCode = &code
	o.bumpVersion()
	return nil
}

// SetPaymentStatus updates the payment side of the order.
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	o.bumpVersion()
	return nil
}

// ChangeNote updates the free-text note. Notes are a non-status field and may
// be patched at any point in the lifecycle.
func (o *Order) ChangeNote(note string) {
	o.note = note
	o.bumpVersion()
}

// ChangeShippingAddress replaces the address snapshot.
//
// Allowed only before the order is handed to the carrier: once the status is
// Shipping or terminal, the address is locked (ErrAddressIsLocked).
func (o *Order) ChangeShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	if o.status == Shipping || o.status == Delivered || o.status.IsTerminal() {
		return ErrAddressIsLocked
	}

	o.shippingAddress = address
	o.bumpVersion()
	return nil
}

func (o *Order) bumpVersion() {
	o.version++
	o.updatedAt = time.Now().UTC()
}

func (o *Order) computeTotals() {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	o.subtotal = subtotal
	o.totalPrice = subtotal.Add(o.tax).Add(o.shippingFee)
	o.finalPrice = o.totalPrice.Sub(o.discount)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}
