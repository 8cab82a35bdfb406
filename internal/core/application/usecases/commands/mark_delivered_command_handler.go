package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/ports"
)

// MarkDeliveredCommandHandler closes an order's lifecycle.
// The order becomes Delivered and its courier, if one was assigned, is freed
// for new work. Both changes commit in one transaction.
type MarkDeliveredCommandHandler struct {
	uowFactory UoWFactory
	snapshotNotifier
}

// NewMarkDeliveredCommandHandler creates a handler for delivery confirmations.
// Requires a UoWFactory because freeing the courier spans both aggregates.
func NewMarkDeliveredCommandHandler(
	uowFactory UoWFactory, publisher ports.OrderStatusPublisher, logger *slog.Logger,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory:       uowFactory,
		snapshotNotifier: newSnapshotNotifier(publisher, logger),
	}
}

// Handle processes the delivery confirmation command.
// Fails with order.InvalidTransitionError when the order is already delivered.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkDelivered(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if courierID := aggregate.Courier(); courierID != nil {
		courierRepo := uow.CourierRepository()

		assignee, getErr := courierRepo.Get(ctx, *courierID)
		if getErr != nil {
			return getErr
		}

		if freeErr := assignee.MarkFree(); freeErr != nil {
			return freeErr
		}

		if updateErr := courierRepo.Update(ctx, assignee); updateErr != nil {
			return updateErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}
