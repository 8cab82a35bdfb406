package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/ports"
)

// ConfirmPaymentCommandHandler records payment gateway confirmations.
//
// A repeated confirmation with the reference already on file commits no change
// and publishes no snapshot; a confirmation with a conflicting reference fails
// with order.AlreadyPaidError.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	snapshotNotifier
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.OrderStatusPublisher, logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory:       uowFactory,
		snapshotNotifier: newSnapshotNotifier(publisher, logger),
	}
}

// Handle processes the payment confirmation command.
// Loads the order, applies the confirmation, and persists the change with an
// optimistic-concurrency check. The snapshot is published only when the
// confirmation actually changed the order.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	versionBefore := aggregate.Version()
	if err = aggregate.ConfirmPayment(cmd.Reference()); err != nil {
		return err
	}

	// Repeated callback with the same reference: nothing to persist,
	// the deferred rollback discards the transaction.
	if aggregate.Version() == versionBefore {
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}
