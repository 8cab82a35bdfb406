// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and a best-effort snapshot publish after commit.
package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	// Used when commands only modify courier aggregates.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions across both order and courier aggregates.
	// Used for commands that coordinate changes between multiple aggregate types.
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// snapshotNotifier is embedded by every handler that mutates orders.
// It pushes the post-commit snapshot to the publisher without letting a
// publish failure propagate: the lifecycle change is already durable, so
// the error is only logged.
type snapshotNotifier struct {
	publisher ports.OrderStatusPublisher
	logger    *slog.Logger
}

func newSnapshotNotifier(publisher ports.OrderStatusPublisher, logger *slog.Logger) snapshotNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return snapshotNotifier{publisher: publisher, logger: logger}
}

func (n snapshotNotifier) notify(ctx context.Context, aggregate *order.Order) {
	if n.publisher == nil {
		return
	}

	if err := n.publisher.Publish(ctx, ports.SnapshotOf(aggregate)); err != nil {
		n.logger.WarnContext(ctx, "order snapshot publish failed",
			slog.String("orderId", aggregate.ID().String()),
			slog.String("error", err.Error()),
		)
	}
}
