/*
Package flow implements the directed-graph orchestration engine.

A Flow sequences command, query, condition, and generic nodes connected
by optionally guarded edges. Execution is breadth-first from the root
nodes (those never referenced as an edge target), strictly sequential
and insertion-ordered; a visited set guarantees each node runs at most
once per run even in diamond-shaped graphs. Condition nodes prune the
outgoing edges whose guard does not match their boolean outcome.

Errors never escape Execute: a failing node stops traversal and yields
a failure Result carrying the partial results accumulated so far.
*/
package flow
