// Package observability exposes prometheus collectors for the buses and
// the flow engine. Collectors are created against an explicit
// Registerer, so embedders control exposition (promhttp, push, or a
// test registry).
package observability
