package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

// ErrConfirmPaymentCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents a payment gateway's confirmation callback
// for an order. The reference correlates the callback with the gateway's
// transaction and makes repeated callbacks idempotent.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	reference string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to record a payment confirmation.
// The order ID must be valid and the gateway reference non-empty.
func NewConfirmPaymentCommand(orderID kernel.UUID, reference string) (ConfirmPaymentCommand, error) {
	command := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setReference(reference),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being paid.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reference returns the gateway's transaction reference.
func (c ConfirmPaymentCommand) Reference() string {
	return c.reference
}

func (c *ConfirmPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ConfirmPaymentCommand) setReference(reference string) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("gateway reference")
	}
	c.reference = reference
	return nil
}
