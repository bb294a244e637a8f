package domain

import "context"

// Message is the contract every dispatchable value must satisfy.
// MessageName doubles as the routing tag and the diagnostic identifier:
// handlers declare the name they serve, and the bus matches on it.
type Message interface {
	// MessageName returns a stable identifier (e.g. "user.create").
	MessageName() string

	// IsValid reports whether the message is well-formed enough to dispatch.
	IsValid() bool
}

// Command is a message representing an intent to change state.
// It is dispatched on the command-side bus.
type Command interface {
	Message
}

// Query is a message representing a read request.
// It is dispatched on the query-side bus.
type Query interface {
	Message
}

// Handler binds exactly one message name to an executor.
// Handlers must be safe for concurrent use: a single instance is shared
// across every send once it is registered.
type Handler interface {
	// MessageName declares the message name this handler serves.
	MessageName() string

	// Handle executes the message and returns its result.
	Handle(ctx context.Context, msg Message) (any, error)
}
