package domain

import "fmt"

// ValidationError reports a nil or malformed message rejected before dispatch.
type ValidationError struct {
	MessageName string // empty when the message itself was nil
	Reason      string
}

func (e *ValidationError) Error() string {
	if e.MessageName == "" {
		return fmt.Sprintf("invalid message: %s", e.Reason)
	}
	return fmt.Sprintf("invalid message %q: %s", e.MessageName, e.Reason)
}

// HandlerNotFoundError reports that no registered handler serves a message name.
type HandlerNotFoundError struct {
	MessageName string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for message %q", e.MessageName)
}

// HandlingError wraps a failure raised by a handler, preserving the cause.
type HandlingError struct {
	MessageName string
	Err         error
}

func (e *HandlingError) Error() string {
	return fmt.Sprintf("handler for %q failed: %v", e.MessageName, e.Err)
}

func (e *HandlingError) Unwrap() error { return e.Err }

// DefinitionError reports a structurally unusable flow (e.g. no nodes).
type DefinitionError struct {
	FlowID string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("flow %q: %s", e.FlowID, e.Reason)
}

// ExecutionError wraps a failure raised by a node during a flow run.
type ExecutionError struct {
	NodeID string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("node %q failed: %v", e.NodeID, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
