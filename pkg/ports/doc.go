// Package ports defines the boundary interfaces between the flow engine
// and the message buses. The flow engine depends on these contracts
// only, so alternative bus implementations (or test doubles) can be
// swapped in without touching traversal logic.
package ports
