package bus

import (
	"context"
	"log/slog"

	"github.com/aretw0/espalier/internal/workers"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/ports"
)

// Bus is the generic dispatch engine. The command side and the query
// side are two instances of this type: same algorithm, distinct label,
// registry, and worker pool.
type Bus struct {
	label    string
	registry *Registry
	pool     *workers.Pool
	logger   *slog.Logger
	metrics  *observability.BusMetrics
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets a structured logger for the bus.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithMetrics attaches prometheus collectors to the bus.
func WithMetrics(m *observability.BusMetrics) Option {
	return func(b *Bus) {
		b.metrics = m
	}
}

// New creates a bus over the given registry and worker pool.
// The label ("command", "query") only feeds logs and metrics.
func New(label string, registry *Registry, pool *workers.Pool, opts ...Option) *Bus {
	b := &Bus{
		label:    label,
		registry: registry,
		pool:     pool,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.logger = b.logger.With("bus", label)
	return b
}

// Send dispatches a message and blocks until its handler returns.
//
// The message is rejected with a ValidationError when nil or when its
// own IsValid reports false. Handler resolution is memoized in the
// registry cache. A handler failure comes back wrapped in a
// HandlingError with the cause preserved.
func (b *Bus) Send(ctx context.Context, msg domain.Message) (any, error) {
	if msg == nil {
		b.observe("rejected")
		return nil, &domain.ValidationError{Reason: "message is nil"}
	}

	name := msg.MessageName()
	b.logger.Debug("dispatching message", "message", name)

	if !msg.IsValid() {
		b.observe("rejected")
		return nil, &domain.ValidationError{MessageName: name, Reason: "message failed validation"}
	}

	handler, cached, ok := b.registry.resolve(name)
	if !ok {
		b.observe("unrouted")
		b.logger.Warn("no handler for message", "message", name)
		return nil, &domain.HandlerNotFoundError{MessageName: name}
	}
	if cached && b.metrics != nil {
		b.metrics.CacheHits.WithLabelValues(b.label).Inc()
	}

	result, err := handler.Handle(ctx, msg)
	if err != nil {
		b.observe("failed")
		b.logger.Error("handler failed", "message", name, "error", err)
		return nil, &domain.HandlingError{MessageName: name, Err: err}
	}

	b.observe("handled")
	b.logger.Debug("message handled", "message", name)
	return result, nil
}

// SendAsync dispatches on the bus's worker pool and returns immediately.
// Failures surface through the returned Waiter, never here. When the
// pool is saturated the dispatch runs on the calling goroutine before
// SendAsync returns (caller-runs backpressure).
func (b *Bus) SendAsync(ctx context.Context, msg domain.Message) ports.Waiter {
	f := newFuture()
	b.pool.Submit(func() {
		value, err := b.Send(ctx, msg)
		f.complete(value, err)
	})
	return f
}

// HandlerCount reports how many handlers are registered on this bus.
func (b *Bus) HandlerCount() int {
	return b.registry.Len()
}

func (b *Bus) observe(outcome string) {
	if b.metrics != nil {
		b.metrics.Messages.WithLabelValues(b.label, outcome).Inc()
	}
}
