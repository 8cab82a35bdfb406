package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrLineItemsAreRequired is returned when creating an order with no line items.
	ErrLineItemsAreRequired = errs.NewValueIsRequiredError("line items")
)

// Order represents a customer's checkout transaction. It is the aggregate root
// that owns the status, payment, and delivery fields for its whole lifecycle;
// no other code mutates those fields.
//
// Order maintains these invariants:
//   - Line items, shipping address, and pricing are fixed at creation
//   - Pricing totals are consistent (checked once, at creation)
//   - Status only moves forward through the lifecycle sequence
//   - A courier is assigned at most once
//   - Payment confirmation is idempotent per gateway reference
//   - Every successful mutation bumps the aggregate version, which the
//     persistence layer uses as an optimistic-concurrency token
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	items         []LineItem
	address       Address
	paymentMethod PaymentMethod

	paid             bool
	paidAt           *time.Time
	paymentReference string

	courierID   *kernel.UUID
	delivered   bool
	deliveredAt *time.Time

	pricing Pricing
	status  Status
	version int

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Placed status with payment and delivery flags cleared.
//
// Validation rules:
//   - id and customerID must be valid UUIDs
//   - items must be non-empty and each item constructed via NewLineItem
//   - address must be constructed via NewAddress
//   - paymentMethod must be a valid enum value
//   - pricing must be constructed via NewPricing, and its items total must
//     equal the sum of the line item totals
//
// All violations are joined into a single error so a bad checkout request
// reports every problem at once.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	address Address,
	paymentMethod PaymentMethod,
	pricing Pricing,
) (*Order, error) {
	now := time.Now().UTC()

	order := &Order{
		status:        Placed,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setAddress(address),
		order.setPaymentMethod(paymentMethod),
		order.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts the full lifecycle state, including payment and
// delivery fields, the current status, and the persisted version counter.
// Structural invariants are still validated; lifecycle history is trusted as
// recorded.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	address Address,
	paymentMethod PaymentMethod,
	pricing Pricing,
	status Status,
	paid bool,
	paidAt *time.Time,
	paymentReference string,
	courierID *kernel.UUID,
	delivered bool,
	deliveredAt *time.Time,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		paid:             paid,
		paidAt:           paidAt,
		paymentReference: paymentReference,
		delivered:        delivered,
		deliveredAt:      deliveredAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setAddress(address),
		order.setPaymentMethod(paymentMethod),
		order.setPricing(pricing),
		order.setStatus(status),
		order.setCourierID(courierID),
		order.setVersion(version),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
// Returns ErrOrderIsNotConstructed otherwise. Called when reconstructing orders
// from persistence to ensure data integrity.
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

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns the snapshotted line items.
// A copy is returned so callers cannot mutate the aggregate's state.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// Address returns the shipping destination fixed at creation.
func (o *Order) Address() Address {
	return o.address
}

// PaymentMethod returns how the customer settles the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Pricing returns the money breakdown fixed at creation.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// IsPaid reports whether payment has been confirmed.
func (o *Order) IsPaid() bool {
	return o.paid
}

// PaidAt returns the payment confirmation time, or nil if unpaid.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// PaymentReference returns the gateway correlation reference, empty if unpaid.
func (o *Order) PaymentReference() string {
	return o.paymentReference
}

// Courier returns the assigned courier's ID.
// Returns nil if no courier is assigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// IsDelivered reports whether the order reached the customer.
func (o *Order) IsDelivered() bool {
	return o.delivered
}

// DeliveredAt returns the delivery time, or nil if undelivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Version returns the optimistic-concurrency counter.
// It starts at 1 and increases by one with every successful mutation.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ConfirmPayment records a successful payment callback from the gateway.
//
// The operation is idempotent per gateway reference: confirming again with the
// reference already recorded is a no-op that leaves the payment timestamp
// untouched, because gateways retry callbacks. Confirming with a different
// reference fails with AlreadyPaidError.
func (o *Order) ConfirmPayment(reference string) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("gateway reference")
	}

	if o.paid {
		if o.paymentReference == reference {
			return nil
		}
		return NewAlreadyPaidError(reference)
	}

	now := time.Now().UTC()
	o.paid = true
	o.paidAt = &now
	o.paymentReference = reference
	o.touch()
	return nil
}

// AdvanceStatus moves the order one step forward in the lifecycle.
// The target must be exactly the next status in the sequence; skips and
// backward moves fail with InvalidTransitionError and leave the order unchanged.
//
// Advancing into Delivered closes the lifecycle the same way MarkDelivered
// does: the delivered flag and timestamp are set, so an order can never sit
// in the terminal status with its delivery unrecorded.
func (o *Order) AdvanceStatus(to Status) error {
	newStatus, err := o.status.Advance(to)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus.IsTerminal() {
		now := time.Now().UTC()
		o.delivered = true
		o.deliveredAt = &now
	}
	o.touch()
	return nil
}

// AssignCourier assigns the order to a courier.
//
// Assignment happens exactly once: re-assignment fails with
// AlreadyAssignedError, and delivered orders cannot be assigned at all.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return NewAlreadyAssignedError(o.courierID.String())
	}

	if o.status.IsTerminal() {
		return NewInvalidTransitionError(o.status, o.status)
	}

	o.courierID = &courierID
	o.touch()
	return nil
}

// MarkDelivered records the courier's handover confirmation.
//
// It sets the delivered flag and timestamp and forces the status to Delivered
// from any non-terminal state, so the lifecycle always closes even when
// intermediate statuses were skipped. Fails with InvalidTransitionError if the
// order is already delivered.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.delivered = true
	o.deliveredAt = &now
	o.touch()
	return nil
}

// touch records a successful mutation: the version counter used for
// optimistic concurrency goes up and the update timestamp is refreshed.
func (o *Order) touch() {
	o.version++
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer ID", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}

	itemsSum := kernel.ZeroMoney()
	for _, item := range o.items {
		itemsSum = itemsSum.Add(item.Total())
	}

	if !pricing.ItemsTotal().IsEqual(itemsSum) {
		return errs.NewValueIsInvalidErrorWithCause("pricing items total",
			fmt.Errorf("items total %s does not equal the line item sum %s",
				pricing.ItemsTotal(), itemsSum))
	}

	o.pricing = pricing
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	o.courierID = courierID
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("order",
			fmt.Errorf("%d is not a valid version", version))
	}
	o.version = version
	return nil
}
