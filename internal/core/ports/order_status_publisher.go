package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/order"
)

// OrderSnapshot is the flattened view of an order's lifecycle state that gets
// pushed to live watchers and the message broker after every committed
// mutation. It carries only the fields a status display needs; the full
// aggregate stays behind the query API.
type OrderSnapshot struct {
	OrderID     string     `json:"orderId"`
	CustomerID  string     `json:"customerId"`
	Status      string     `json:"status"`
	Paid        bool       `json:"paid"`
	CourierID   *string    `json:"courierId,omitempty"`
	Delivered   bool       `json:"delivered"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	Version     int        `json:"version"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SnapshotOf flattens an order aggregate into its published form.
func SnapshotOf(aggregate *order.Order) OrderSnapshot {
	snapshot := OrderSnapshot{
		OrderID:     aggregate.ID().String(),
		CustomerID:  aggregate.CustomerID().String(),
		Status:      aggregate.Status().String(),
		Paid:        aggregate.IsPaid(),
		Delivered:   aggregate.IsDelivered(),
		DeliveredAt: aggregate.DeliveredAt(),
		Version:     aggregate.Version(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}

	if courierID := aggregate.Courier(); courierID != nil {
		id := courierID.String()
		snapshot.CourierID = &id
	}

	return snapshot
}

// OrderStatusPublisher pushes order snapshots out to whoever is listening.
//
// Publication is best effort and happens after the database transaction
// commits: a failed or slow publish never rolls back a lifecycle change, and
// command handlers only log publish errors. Implementations must therefore
// never block on slow consumers.
type OrderStatusPublisher interface {
	// Publish fans the snapshot out to the implementation's consumers.
	Publish(ctx context.Context, snapshot OrderSnapshot) error
}
