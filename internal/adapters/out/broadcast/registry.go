// Package broadcast delivers order snapshots to in-process watchers.
//
// A watcher is a live HTTP client streaming one order's status. The registry
// keeps a buffered channel per watcher and delivers snapshots fire-and-forget:
// a watcher that cannot keep up misses intermediate snapshots instead of
// slowing the write path down.
package broadcast

import (
	"context"
	"sync"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
)

// watcherBufferSize bounds how many undelivered snapshots a single watcher
// may lag behind before further snapshots are dropped for it.
const watcherBufferSize = 8

type watcher struct {
	ch chan ports.OrderSnapshot
}

// Registry tracks the live watchers of each order and fans committed
// snapshots out to them. It implements ports.OrderStatusPublisher.
//
// The registry is safe for concurrent use. Its lifecycle is owned by the
// composition root: Shutdown closes every watcher channel and makes
// subsequent subscriptions return closed channels.
type Registry struct {
	mu       sync.RWMutex
	watchers map[string]map[*watcher]struct{}
	closed   bool
}

// NewRegistry creates an empty watcher registry.
func NewRegistry() *Registry {
	return &Registry{
		watchers: make(map[string]map[*watcher]struct{}),
	}
}

// Subscribe registers a watcher for one order and returns the channel its
// snapshots arrive on, plus a cancel function the caller must invoke when the
// watcher disconnects. The channel is closed on cancel and on Shutdown.
func (r *Registry) Subscribe(orderID kernel.UUID) (<-chan ports.OrderSnapshot, func()) {
	w := &watcher{ch: make(chan ports.OrderSnapshot, watcherBufferSize)}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		close(w.ch)
		return w.ch, func() {}
	}

	key := orderID.String()
	group, ok := r.watchers[key]
	if !ok {
		group = make(map[*watcher]struct{})
		r.watchers[key] = group
	}
	group[w] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.closed {
				return
			}
			if group, ok := r.watchers[key]; ok {
				delete(group, w)
				if len(group) == 0 {
					delete(r.watchers, key)
				}
			}
			close(w.ch)
		})
	}

	return w.ch, cancel
}

// Publish delivers the snapshot to every watcher of its order.
// Delivery is non-blocking: watchers whose buffers are full are skipped.
// Publish never returns an error; it satisfies ports.OrderStatusPublisher.
func (r *Registry) Publish(_ context.Context, snapshot ports.OrderSnapshot) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil
	}

	for w := range r.watchers[snapshot.OrderID] {
		select {
		case w.ch <- snapshot:
		default:
			// Watcher is lagging; it will catch up with the next snapshot.
		}
	}

	return nil
}

// WatcherCount reports how many watchers are registered for an order.
func (r *Registry) WatcherCount(orderID kernel.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watchers[orderID.String()])
}

// Shutdown closes every watcher channel and rejects further subscriptions.
// Called once when the process shuts down.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	for _, group := range r.watchers {
		for w := range group {
			close(w.ch)
		}
	}
	r.watchers = make(map[string]map[*watcher]struct{})
}
