package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/ports"
)

// Flow is a named, mutable graph of nodes and edges representing one
// business process. Build it with the Add*/Connect* methods, then run
// it with Execute. Building is not synchronized: finish wiring the
// graph before executing it, concurrently or otherwise.
type Flow struct {
	id       string
	name     string
	commands ports.CommandBus
	queries  ports.QueryBus

	nodes map[string]*node
	order []string
	edges []domain.Edge

	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	metrics *observability.FlowMetrics
}

// node pairs the renderable view with the function run on visit.
type node struct {
	view domain.NodeView
	run  func(ctx context.Context, rc *Context) (any, error)
}

// Option configures a Flow.
type Option func(*Flow)

// WithLogger sets a structured logger for the flow.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Flow) {
		f.hooks = hooks
	}
}

// WithMetrics attaches prometheus collectors to the flow.
func WithMetrics(m *observability.FlowMetrics) Option {
	return func(f *Flow) {
		f.metrics = m
	}
}

// New creates an empty flow bound to a command bus and a query bus.
func New(id, name string, commands ports.CommandBus, queries ports.QueryBus, opts ...Option) *Flow {
	f := &Flow{
		id:       id,
		name:     name,
		commands: commands,
		queries:  queries,
		nodes:    make(map[string]*node),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	f.logger = f.logger.With("flow", id)
	return f
}

// ID returns the flow id.
func (f *Flow) ID() string { return f.id }

// Name returns the human-readable flow name.
func (f *Flow) Name() string { return f.name }

// AddCommand adds a node that produces a Command and dispatches it on
// the command bus, storing the handler's return value under id.
func (f *Flow) AddCommand(id, name string, produce func(rc *Context) (domain.Message, error)) *Flow {
	return f.addMessageNode(id, name, domain.NodeKindCommand, produce)
}

// AddQuery adds a node that produces a Query and dispatches it on the
// query bus, storing the handler's return value under id.
func (f *Flow) AddQuery(id, name string, produce func(rc *Context) (domain.Message, error)) *Flow {
	return f.addMessageNode(id, name, domain.NodeKindQuery, produce)
}

// AddCondition adds a node whose boolean outcome selects which guarded
// outgoing edges fire. The boolean itself is stored under id.
func (f *Flow) AddCondition(id, name string, predicate func(rc *Context) (bool, error)) *Flow {
	return f.addNode(id, name, domain.NodeKindCondition, func(ctx context.Context, rc *Context) (any, error) {
		return predicate(rc)
	})
}

// AddGeneric adds a node running an arbitrary function against the run
// context, storing its return value under id.
func (f *Flow) AddGeneric(id, name string, fn func(rc *Context) (any, error)) *Flow {
	return f.addNode(id, name, domain.NodeKindGeneric, func(ctx context.Context, rc *Context) (any, error) {
		return fn(rc)
	})
}

func (f *Flow) addMessageNode(id, name, kind string, produce func(rc *Context) (domain.Message, error)) *Flow {
	target := f.commands
	if kind == domain.NodeKindQuery {
		target = f.queries
	}
	return f.addNode(id, name, kind, func(ctx context.Context, rc *Context) (any, error) {
		msg, err := produce(rc)
		if err != nil {
			return nil, err
		}
		if msg == nil {
			return nil, fmt.Errorf("%s node produced a nil message", kind)
		}
		value, err := target.Send(ctx, msg)
		f.emitMessageSend(ctx, rc.RunID(), id, msg.MessageName(), err != nil)
		return value, err
	})
}

// addNode inserts or silently overwrites the node under id. An
// overwrite keeps the original insertion position.
func (f *Flow) addNode(id, name, kind string, run func(ctx context.Context, rc *Context) (any, error)) *Flow {
	if _, exists := f.nodes[id]; !exists {
		f.order = append(f.order, id)
	}
	f.nodes[id] = &node{
		view: domain.NodeView{ID: id, Name: name, Kind: kind},
		run:  run,
	}
	return f
}

// Connect adds an unconditional edge.
func (f *Flow) Connect(from, to string) *Flow {
	return f.connect(from, to, domain.GuardNone)
}

// ConnectWhenTrue adds an edge that fires when the source condition
// evaluates true.
func (f *Flow) ConnectWhenTrue(from, to string) *Flow {
	return f.connect(from, to, domain.GuardOnTrue)
}

// ConnectWhenFalse adds an edge that fires when the source condition
// evaluates false.
func (f *Flow) ConnectWhenFalse(from, to string) *Flow {
	return f.connect(from, to, domain.GuardOnFalse)
}

func (f *Flow) connect(from, to, guard string) *Flow {
	f.edges = append(f.edges, domain.Edge{From: from, To: to, Guard: guard})
	return f
}

// Nodes returns the renderable node projections in insertion order.
func (f *Flow) Nodes() []domain.NodeView {
	views := make([]domain.NodeView, 0, len(f.order))
	for _, id := range f.order {
		views = append(views, f.nodes[id].view)
	}
	return views
}

// Edges returns the edges in insertion order.
func (f *Flow) Edges() []domain.Edge {
	return append([]domain.Edge(nil), f.edges...)
}

// Execute runs the flow with a fresh context.
func (f *Flow) Execute(ctx context.Context) Result {
	return f.ExecuteWith(ctx, nil)
}

// ExecuteWith runs the flow against the given run context (nil means a
// fresh one). It traverses breadth-first from the root nodes, executes
// each reachable node at most once, and never returns a Go error: any
// node failure is converted into a soft failure Result carrying the
// partial results accumulated so far.
func (f *Flow) ExecuteWith(ctx context.Context, rc *Context) Result {
	startedAt := time.Now()
	if rc == nil {
		rc = NewContext(f.id)
	}
	logger := f.logger.With("run", rc.RunID())

	if len(f.order) == 0 {
		defErr := &domain.DefinitionError{FlowID: f.id, Reason: "orchestration has no nodes defined"}
		logger.Warn("refusing to execute empty flow")
		f.observeRun("failure", startedAt)
		return failureResult(rc.RunID(), defErr.Error(), startedAt, rc.Results())
	}

	logger.Debug("starting flow run", "nodes", len(f.order), "edges", len(f.edges))

	queue := f.roots()
	visited := make(map[string]bool, len(f.order))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			continue
		}
		n, ok := f.nodes[id]
		if !ok {
			// Edge to an undefined node: tolerated, surfaced by Validate.
			logger.Warn("skipping edge to undefined node", "node", id)
			continue
		}
		visited[id] = true

		f.emitNodeEvent(ctx, domain.EventNodeEnter, rc.RunID(), n.view, false)
		value, err := f.runNode(ctx, n, rc)
		if err != nil {
			execErr := &domain.ExecutionError{NodeID: id, Err: err}
			logger.Error("flow run failed", "node", id, "error", err)
			f.emitNodeEvent(ctx, domain.EventNodeLeave, rc.RunID(), n.view, true)
			f.observeRun("failure", startedAt)
			return failureResult(rc.RunID(), execErr.Error(), startedAt, rc.Results())
		}
		rc.SetResult(id, value)
		f.emitNodeEvent(ctx, domain.EventNodeLeave, rc.RunID(), n.view, false)
		if f.metrics != nil {
			f.metrics.NodeVisits.WithLabelValues(f.id, n.view.Kind).Inc()
		}

		for _, next := range f.successors(n, value) {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	logger.Debug("flow run finished", "results", len(rc.Results()))
	f.observeRun("success", startedAt)
	return successResult(rc.RunID(), startedAt, rc.Results())
}

// runNode invokes the node function, converting a panic into an error
// so one misbehaving node cannot take down the caller.
func (f *Flow) runNode(ctx context.Context, n *node, rc *Context) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return n.run(ctx, rc)
}

// roots returns the ids never referenced as an edge target, in the
// order their nodes were added.
func (f *Flow) roots() []string {
	targets := make(map[string]bool, len(f.edges))
	for _, e := range f.edges {
		targets[e.To] = true
	}
	var roots []string
	for _, id := range f.order {
		if !targets[id] {
			roots = append(roots, id)
		}
	}
	return roots
}

// successors selects the outgoing edges armed by the node's outcome.
// Condition nodes follow only the edges whose guard matches the
// boolean; every other kind follows all outgoing edges and ignores
// guards entirely.
func (f *Flow) successors(n *node, value any) []string {
	var out []string
	isCondition := n.view.Kind == domain.NodeKindCondition
	outcome, _ := value.(bool)
	for _, e := range f.edges {
		if e.From != n.view.ID {
			continue
		}
		if isCondition {
			if (e.Guard == domain.GuardOnTrue && outcome) || (e.Guard == domain.GuardOnFalse && !outcome) {
				out = append(out, e.To)
			}
			continue
		}
		out = append(out, e.To)
	}
	return out
}

// Validate reports structural issues the builder tolerates: edges whose
// endpoints are undefined, guards on edges not leaving a condition
// node, and unguarded edges leaving one (which never fire). An empty
// slice means the graph is structurally sound.
func (f *Flow) Validate() []string {
	var issues []string
	for _, e := range f.edges {
		src, srcOK := f.nodes[e.From]
		if !srcOK {
			issues = append(issues, fmt.Sprintf("edge %s -> %s: source node is not defined", e.From, e.To))
		}
		if _, ok := f.nodes[e.To]; !ok {
			issues = append(issues, fmt.Sprintf("edge %s -> %s: target node is not defined", e.From, e.To))
		}
		if !srcOK {
			continue
		}
		if src.view.Kind == domain.NodeKindCondition {
			if e.Guard == domain.GuardNone {
				issues = append(issues, fmt.Sprintf("edge %s -> %s: unguarded edge from condition node never fires", e.From, e.To))
			}
		} else if e.Guard != domain.GuardNone {
			issues = append(issues, fmt.Sprintf("edge %s -> %s: guard %q on non-condition source is ignored", e.From, e.To, e.Guard))
		}
	}
	if len(f.order) == 0 {
		issues = append(issues, "flow has no nodes defined")
	}
	return issues
}

// ToDiagram renders the flow as a PlantUML state diagram.
func (f *Flow) ToDiagram() string {
	return graph.RenderStateDiagram(f.name, f.Nodes(), f.Edges())
}

// ToMermaid renders the flow as a Mermaid flowchart.
func (f *Flow) ToMermaid() string {
	return graph.RenderMermaid(f.Nodes(), f.Edges())
}

func (f *Flow) observeRun(outcome string, startedAt time.Time) {
	if f.metrics == nil {
		return
	}
	f.metrics.Runs.WithLabelValues(f.id, outcome).Inc()
	f.metrics.Duration.WithLabelValues(f.id).Observe(time.Since(startedAt).Seconds())
}

func (f *Flow) emitNodeEvent(ctx context.Context, kind domain.EventType, runID string, view domain.NodeView, isError bool) {
	var hook func(context.Context, *domain.NodeEvent)
	switch kind {
	case domain.EventNodeEnter:
		hook = f.hooks.OnNodeEnter
	case domain.EventNodeLeave:
		hook = f.hooks.OnNodeLeave
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: kind, RunID: runID},
		NodeID:    view.ID,
		NodeKind:  view.Kind,
		IsError:   isError,
	})
}

func (f *Flow) emitMessageSend(ctx context.Context, runID, nodeID, messageName string, isError bool) {
	if f.hooks.OnMessageSend == nil {
		return
	}
	f.hooks.OnMessageSend(ctx, &domain.MessageEvent{
		EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventMessageSend, RunID: runID},
		NodeID:      nodeID,
		MessageName: messageName,
		IsError:     isError,
	})
}
