package commands

import (
	"context"
	"errors"
	"log/slog"

	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrNoUnassignedOrderFound means no ready order is waiting for a courier.
	// An expected idle outcome for the dispatch job, not a failure.
	ErrNoUnassignedOrderFound = errors.New("no unassigned order found")

	// ErrNoFreeCouriersFound means every registered courier is busy.
	// Also an expected idle outcome.
	ErrNoFreeCouriersFound = errors.New("no free couriers found")
)

// DispatchCourierCommandHandler runs one round of automatic assignment:
// oldest waiting order, first free courier, both updated in one transaction.
type DispatchCourierCommandHandler struct {
	uowFactory UoWFactory
	snapshotNotifier
}

// NewDispatchCourierCommandHandler creates a handler for automatic dispatch rounds.
func NewDispatchCourierCommandHandler(
	uowFactory UoWFactory, publisher ports.OrderStatusPublisher, logger *slog.Logger,
) DispatchCourierCommandHandler {
	return DispatchCourierCommandHandler{
		uowFactory:       uowFactory,
		snapshotNotifier: newSnapshotNotifier(publisher, logger),
	}
}

// Handle processes one dispatch round.
// Returns ErrNoUnassignedOrderFound when the queue is empty and
// ErrNoFreeCouriersFound when all couriers are busy; callers treat both as
// idle outcomes rather than errors.
func (h DispatchCourierCommandHandler) Handle(ctx context.Context, cmd DispatchCourierCommand) error {
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

	aggregate, err := orderRepo.GetFirstUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoUnassignedOrderFound
	}
	if err != nil {
		return err
	}

	couriers, err := courierRepo.GetAllFree(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		return ErrNoFreeCouriersFound
	}

	assignee := couriers[0]
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
