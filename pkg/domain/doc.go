/*
Package domain contains the core domain models for the Espalier dispatch
and orchestration engine.

It defines the message contracts (Message, Command, Query, Handler), the
flow graph primitives (NodeView, Edge, guards), the error taxonomy shared
by the buses and the flow engine, and the lifecycle events emitted during
a run. This package is kept pure and free of external dependencies like
I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Message: anything with a routing name and a validity check.
  - Handler: the unique executor bound to one message name.
  - NodeView / Edge: the renderable projection of a flow graph.
  - LifecycleHooks: observability callbacks for flow execution.
*/
package domain
