package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// Waiter is the read side of an asynchronous dispatch.
// Wait blocks until the result is available or ctx is done; the bus
// itself imposes no timeout, so cancellation is entirely caller-owned.
type Waiter interface {
	Wait(ctx context.Context) (any, error)
	Done() <-chan struct{}
}

// MessageBus is the generic dispatch contract shared by both sides.
type MessageBus interface {
	// Send dispatches the message and blocks until its handler returns.
	Send(ctx context.Context, msg domain.Message) (any, error)

	// SendAsync dispatches on the bus's worker pool. Errors are
	// delivered through the returned Waiter, never raised here.
	SendAsync(ctx context.Context, msg domain.Message) Waiter

	// HandlerCount reports how many handlers are registered.
	HandlerCount() int
}

// CommandBus dispatches state-changing messages.
type CommandBus interface {
	MessageBus
}

// QueryBus dispatches read requests.
type QueryBus interface {
	MessageBus
}
