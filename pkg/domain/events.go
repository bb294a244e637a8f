package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter   EventType = "node_enter"
	EventNodeLeave   EventType = "node_leave"
	EventMessageSend EventType = "message_send"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// NodeEvent represents entry or exit from a flow node.
type NodeEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	NodeKind string `json:"node_kind"`
	IsError  bool   `json:"is_error,omitempty"`
}

// MessageEvent represents a message dispatched on a bus by a flow node.
type MessageEvent struct {
	EventBase
	NodeID      string `json:"node_id"`
	MessageName string `json:"message_name"`
	IsError     bool   `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for flow observability.
// Nil callbacks are skipped; hooks run synchronously on the executing
// goroutine, so they should be cheap.
type LifecycleHooks struct {
	OnNodeEnter   func(context.Context, *NodeEvent)
	OnNodeLeave   func(context.Context, *NodeEvent)
	OnMessageSend func(context.Context, *MessageEvent)
}
