package bus

import (
	"context"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// HandlerFunc adapts a typed function into a domain.Handler, so
// handlers are written against their concrete message type instead of
// type-asserting domain.Message by hand.
//
// The message name is matched structurally at registration time (one
// handler per name); the concrete type is checked at dispatch time and
// a mismatch is reported as a handler error, not a panic.
func HandlerFunc[M domain.Message, R any](messageName string, fn func(ctx context.Context, msg M) (R, error)) domain.Handler {
	return &typedHandler[M, R]{name: messageName, fn: fn}
}

type typedHandler[M domain.Message, R any] struct {
	name string
	fn   func(ctx context.Context, msg M) (R, error)
}

func (h *typedHandler[M, R]) MessageName() string { return h.name }

func (h *typedHandler[M, R]) Handle(ctx context.Context, msg domain.Message) (any, error) {
	typed, ok := msg.(M)
	if !ok {
		return nil, fmt.Errorf("handler for %q received unexpected message type %T", h.name, msg)
	}
	return h.fn(ctx, typed)
}
