package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in Placed status and announces it to live watchers once
// the transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	snapshotNotifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence; publisher may be
// nil when no live consumers exist, for example in tests.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.OrderStatusPublisher, logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:       uowFactory,
		snapshotNotifier: newSnapshotNotifier(publisher, logger),
	}
}

// Handle processes the order creation command.
// Builds the aggregate from the command's value objects, persists it within a
// transaction, and publishes the initial snapshot after commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.Items(), cmd.Address(), cmd.PaymentMethod(), cmd.Pricing())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}
