package driver

import (
	"context"
	"sync/atomic"
)

// notifier carries line-completed wake-ups from interrupt context to
// the receive loop: a monotonic counter incremented by the producer
// and drained by the consumer, with a single-token channel to unblock
// the waiter. notify never blocks, so it is safe in interrupt context.
type notifier struct {
	pending atomic.Uint32
	wake    chan struct{} // capacity 1
}

func newNotifier() *notifier {
	return &notifier{wake: make(chan struct{}, 1)}
}

// notify records one event and wakes the waiter if it sleeps.
func (n *notifier) notify() {
	n.pending.Add(1)
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// wait blocks until at least one event is pending or ctx is done, and
// returns the number of events it consumed.
func (n *notifier) wait(ctx context.Context) (uint32, error) {
	for {
		if c := n.pending.Swap(0); c > 0 {
			return c, nil
		}
		select {
		case <-n.wake:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}
