package broadcast

import (
	"context"
	"errors"

	"foodorder/internal/core/ports"
)

// FanOutPublisher forwards each snapshot to several downstream publishers,
// typically the in-process watcher registry and the message broker relay.
// Every downstream publisher sees every snapshot even when another one fails;
// the failures are joined into the returned error.
type FanOutPublisher struct {
	publishers []ports.OrderStatusPublisher
}

// NewFanOutPublisher creates a publisher fanning out to the given targets.
func NewFanOutPublisher(publishers ...ports.OrderStatusPublisher) *FanOutPublisher {
	return &FanOutPublisher{publishers: publishers}
}

// Publish delivers the snapshot to all downstream publishers.
func (p *FanOutPublisher) Publish(ctx context.Context, snapshot ports.OrderSnapshot) error {
	var errs []error
	for _, publisher := range p.publishers {
		if err := publisher.Publish(ctx, snapshot); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
