package domain

// NodeKind constants define what a flow node does when visited.
const (
	// NodeKindCommand produces a Command and dispatches it on the command bus.
	NodeKindCommand = "command"
	// NodeKindQuery produces a Query and dispatches it on the query bus.
	NodeKindQuery = "query"
	// NodeKindCondition evaluates a predicate and selects guarded edges.
	NodeKindCondition = "condition"
	// NodeKindGeneric runs an arbitrary function against the run context.
	NodeKindGeneric = "generic"
)

// Guard constants label an edge with the condition outcome that arms it.
const (
	// GuardNone marks an unconditional edge.
	GuardNone = ""
	// GuardOnTrue arms the edge when the source condition evaluates true.
	GuardOnTrue = "true"
	// GuardOnFalse arms the edge when the source condition evaluates false.
	GuardOnFalse = "false"
)

// NodeView is the renderable projection of a flow node: identity and
// kind without the producer function. Diagram renderers and structural
// validators consume this instead of the live node.
type NodeView struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
}

// Edge is a directed connection between two nodes.
// Guard is only meaningful when the source is a condition node; the
// engine ignores it on any other source and Validate reports it.
type Edge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Guard string `json:"guard,omitempty" yaml:"guard,omitempty"`
}
