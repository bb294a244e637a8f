package flow

import "github.com/google/uuid"

// Context is the per-run variable and result store handed to every node
// function. Variables are caller-supplied inputs; results accumulate as
// nodes execute.
//
// A Context belongs to exactly one run. Flow execution is sequential,
// so the store is not synchronized; do not share one Context between
// concurrent runs.
type Context struct {
	runID     string
	flowID    string
	variables map[string]any
	results   map[string]any
}

// NewContext creates an empty run context for the given flow id.
func NewContext(flowID string) *Context {
	return &Context{
		runID:     uuid.NewString(),
		flowID:    flowID,
		variables: make(map[string]any),
		results:   make(map[string]any),
	}
}

// RunID returns the unique identifier of this run.
func (c *Context) RunID() string { return c.runID }

// FlowID returns the id of the flow this context was created for.
func (c *Context) FlowID() string { return c.flowID }

// SetVariable stores a caller-supplied input.
func (c *Context) SetVariable(key string, value any) {
	c.variables[key] = value
}

// Variable returns the variable stored under key.
// The ok result is explicit: a missing key is (nil, false), never a
// silent zero value.
func (c *Context) Variable(key string) (any, bool) {
	v, ok := c.variables[key]
	return v, ok
}

// SetResult records a node's output under its id.
func (c *Context) SetResult(nodeID string, value any) {
	c.results[nodeID] = value
}

// Result returns the output recorded for a node id.
func (c *Context) Result(nodeID string) (any, bool) {
	v, ok := c.results[nodeID]
	return v, ok
}

// Results returns a copy of all recorded node outputs.
func (c *Context) Results() map[string]any {
	out := make(map[string]any, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return out
}

// VariableAs returns the variable under key asserted to type T.
// ok is false when the key is absent or holds a different type.
func VariableAs[T any](c *Context, key string) (T, bool) {
	var zero T
	v, ok := c.variables[key]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// ResultAs returns the node output under nodeID asserted to type T.
func ResultAs[T any](c *Context, nodeID string) (T, bool) {
	var zero T
	v, ok := c.results[nodeID]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
