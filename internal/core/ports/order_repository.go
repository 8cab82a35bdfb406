// Package ports defines the contracts between the application core and
// infrastructure adapters. Repositories cover persistence, the unit of work
// covers transaction boundaries, and the status publisher covers fan-out of
// lifecycle changes to live watchers and the message broker.
package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	//
	// The write is conditional on the version the aggregate was loaded with:
	// if another transaction touched the order in between, Update fails with
	// errs.VersionIsInvalidError and persists nothing. Callers retry by
	// reloading the aggregate and reapplying the mutation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstUnassigned retrieves the oldest paid order in Ready status that
	// has no courier yet. Used by the assignment job to pick the next order
	// to dispatch. Returns errs.ObjectNotFoundError when the queue is empty.
	GetFirstUnassigned(ctx context.Context) (*order.Order, error)
}
