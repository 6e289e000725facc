// Package notify publishes task-update signals and lets event streams subscribe
// to them. A signal only carries the task id; subscribers re-read the task.
package notify

import (
	"context"

	"github.com/google/uuid"
)

// Channel is the channel name task updates are published on.
const Channel = "generation_task_updates"

// Publisher announces that a task changed.
type Publisher interface {
	Publish(ctx context.Context, taskID uuid.UUID) error
}

// Subscriber opens a subscription to updates of one task.
type Subscriber interface {
	Subscribe(ctx context.Context, taskID uuid.UUID) (Subscription, error)
}

// Notifier is both ends of the side channel.
type Notifier interface {
	Publisher
	Subscriber
}

// Subscription delivers a signal per update of the subscribed task. Bursts may be
// coalesced into one signal. Events is closed when the subscription ends, either
// through Close or because the underlying connection failed.
type Subscription interface {
	Events() <-chan struct{}
	Close() error
}

// signal performs a non-blocking send so a slow reader coalesces updates.
func signal(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
