/*
Package bus implements the generic command/query dispatch engine.

A Bus routes a domain.Message to the single handler declaring its
message name. Resolution walks the registered handler list in order
(first-found wins) and memoizes successful matches in a process-lifetime
cache shared by all concurrent sends.

Two bus instances are typically wired per application: one for the
command side and one for the query side, each with its own Registry and
worker pool. The algorithm is identical on both sides; only the pool
executing SendAsync differs.
*/
package bus
