package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/ports"
)

// AssignCourierCommandHandler hands an order to a specific courier.
// Updates both aggregates within one transaction: the order records the
// assignment and the courier becomes busy, or neither change happens.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	snapshotNotifier
}

// NewAssignCourierCommandHandler creates a handler for explicit courier assignment.
// Requires a UoWFactory because the command spans both aggregates.
func NewAssignCourierCommandHandler(
	uowFactory UoWFactory, publisher ports.OrderStatusPublisher, logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory:       uowFactory,
		snapshotNotifier: newSnapshotNotifier(publisher, logger),
	}
}

// Handle processes the courier assignment command.
// Fails with order.AlreadyAssignedError if the order already has a courier
// and with courier.ErrCourierIsAlreadyBusy if the courier holds another order.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	assignee, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignCourier(assignee.ID()); err != nil {
		return err
	}

	if err = assignee.MarkBusy(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, assignee); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}
