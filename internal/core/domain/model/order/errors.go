package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying order lifecycle failures with errors.Is.
var (
	// ErrInvalidTransition indicates a status change that the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrOrderAlreadyPaid indicates a payment confirmation that conflicts with an earlier one.
	ErrOrderAlreadyPaid = errors.New("order is already paid")
	// ErrCourierAlreadyAssigned indicates an attempt to assign a second courier to an order.
	ErrCourierAlreadyAssigned = errors.New("courier is already assigned")
)

// InvalidTransitionError is returned when a status change would move the
// order backward, skip a lifecycle step, or leave the terminal state.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the rejected move.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot transition to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyPaidError is returned when a payment confirmation carries a gateway
// reference that differs from the one already recorded. A repeat confirmation
// with the same reference is a no-op, not an error, because gateways retry
// their callbacks.
type AlreadyPaidError struct {
	Reference string
}

// NewAlreadyPaidError creates an AlreadyPaidError for the conflicting reference.
func NewAlreadyPaidError(reference string) *AlreadyPaidError {
	return &AlreadyPaidError{Reference: reference}
}

func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("%s: conflicting gateway reference %q", ErrOrderAlreadyPaid, e.Reference)
}

func (e *AlreadyPaidError) Unwrap() error {
	return ErrOrderAlreadyPaid
}

// AlreadyAssignedError is returned when assigning a courier to an order that
// already has one. Orders are assigned exactly once; there is no reassignment.
type AlreadyAssignedError struct {
	CourierID string
}

// NewAlreadyAssignedError creates an AlreadyAssignedError naming the current courier.
func NewAlreadyAssignedError(courierID string) *AlreadyAssignedError {
	return &AlreadyAssignedError{CourierID: courierID}
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("%s: courier %s holds the order", ErrCourierAlreadyAssigned, e.CourierID)
}

func (e *AlreadyAssignedError) Unwrap() error {
	return ErrCourierAlreadyAssigned
}
