package espalier

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier/internal/workers"
	"github.com/aretw0/espalier/pkg/bus"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/flow"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/ports"
)

// Version is the library version, overridable at build time via ldflags.
var Version = "dev"

// Engine is the high-level entry point for the Espalier library.
// It wires the command bus, the query bus, their registries and worker
// pools, and binds new flows to them.
type Engine struct {
	commands *bus.Bus
	queries  *bus.Bus

	commandRegistry *bus.Registry
	queryRegistry   *bus.Registry
	commandPool     *workers.Pool
	queryPool       *workers.Pool

	logger      *slog.Logger
	busMetrics  *observability.BusMetrics
	flowMetrics *observability.FlowMetrics

	poolSize   int
	queueDepth int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWorkerPool sets the per-bus async worker count and queue depth.
// Defaults: 4 workers, 16 queued tasks.
func WithWorkerPool(size, queueDepth int) Option {
	return func(e *Engine) {
		e.poolSize = size
		e.queueDepth = queueDepth
	}
}

// WithMetrics registers prometheus collectors for the buses and flows
// against the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.busMetrics = observability.NewBusMetrics(reg)
		e.flowMetrics = observability.NewFlowMetrics(reg)
	}
}

// New initializes an Engine. The command and query sides get their own
// registry and worker pool; they share nothing else.
func New(opts ...Option) *Engine {
	e := &Engine{
		poolSize:   4,
		queueDepth: 16,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	e.commandRegistry = bus.NewRegistry()
	e.queryRegistry = bus.NewRegistry()
	e.commandPool = workers.NewPool("command", e.poolSize, e.queueDepth, e.logger)
	e.queryPool = workers.NewPool("query", e.poolSize, e.queueDepth, e.logger)
	e.commandPool.Start()
	e.queryPool.Start()

	busOpts := []bus.Option{bus.WithLogger(e.logger)}
	if e.busMetrics != nil {
		busOpts = append(busOpts, bus.WithMetrics(e.busMetrics))
	}
	e.commands = bus.New("command", e.commandRegistry, e.commandPool, busOpts...)
	e.queries = bus.New("query", e.queryRegistry, e.queryPool, busOpts...)

	return e
}

// RegisterCommandHandlers adds handlers to the command side.
func (e *Engine) RegisterCommandHandlers(handlers ...domain.Handler) {
	e.commandRegistry.Register(handlers...)
}

// RegisterQueryHandlers adds handlers to the query side.
func (e *Engine) RegisterQueryHandlers(handlers ...domain.Handler) {
	e.queryRegistry.Register(handlers...)
}

// Commands returns the command-side bus.
func (e *Engine) Commands() ports.CommandBus { return e.commands }

// Queries returns the query-side bus.
func (e *Engine) Queries() ports.QueryBus { return e.queries }

// NewFlow creates a flow bound to the engine's buses, logger, and
// metrics.
func (e *Engine) NewFlow(id, name string, opts ...flow.Option) *flow.Flow {
	base := []flow.Option{flow.WithLogger(e.logger)}
	if e.flowMetrics != nil {
		base = append(base, flow.WithMetrics(e.flowMetrics))
	}
	return flow.New(id, name, e.commands, e.queries, append(base, opts...)...)
}

// Close drains both worker pools. In-flight async dispatches finish;
// new ones fall back to caller-runs.
func (e *Engine) Close(ctx context.Context) error {
	if err := e.commandPool.Shutdown(ctx); err != nil {
		return err
	}
	return e.queryPool.Shutdown(ctx)
}
