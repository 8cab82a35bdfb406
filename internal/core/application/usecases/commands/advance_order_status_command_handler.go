package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler moves orders forward through the lifecycle.
// The aggregate enforces that only the immediate next status is accepted;
// the handler adds the transaction boundary and the post-commit publish.
// When the step lands on Delivered the assigned courier is freed in the same
// transaction, exactly as a delivery confirmation would do.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	snapshotNotifier
}

// NewAdvanceOrderStatusCommandHandler creates a handler for status advancement.
// Requires a UoWFactory because the final step also releases the courier.
func NewAdvanceOrderStatusCommandHandler(
	uowFactory UoWFactory, publisher ports.OrderStatusPublisher, logger *slog.Logger,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory:       uowFactory,
		snapshotNotifier: newSnapshotNotifier(publisher, logger),
	}
}

// Handle processes the status advancement command.
func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) error {
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

	if err = aggregate.AdvanceStatus(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if aggregate.Status().IsTerminal() {
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
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}
