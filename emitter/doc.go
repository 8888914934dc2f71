// Package emitter implements the hierarchical publish/subscribe bus that
// components use to surface lifecycle events (run start/finish, tool
// start/finish) without coupling producers to logging or metrics backends.
//
// Topics are dot-separated segment paths ("run.start", "tool.search.error").
// Subscribing to a parent topic implies receiving every descendant event, so
// a handler on "tool" observes "tool.search.error". Child buses created via
// Child prefix their namespace onto every emitted topic and propagate events
// upward to the parent; propagation is upward only, siblings never observe
// each other.
//
// Emission is synchronous fan-out in registration order. Handlers must not
// block; slow consumers should hand events off to their own goroutines.
package emitter
