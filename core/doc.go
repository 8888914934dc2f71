// Package core provides the execution machinery governing a single
// component invocation. It defines:
//
//   - Component (the invokable instance contract: identity, event bus,
//     run state, memory accessor, teardown)
//   - RunState (per-owner Idle/Running guard preventing overlapping
//     top-level invocations)
//   - RunContext / Enter (scoped, cancellable invocation handle with
//     nesting, middleware, lifecycle events and structured error wrapping)
//   - The error taxonomy (ReentrancyError, AgentError)
//
// The package intentionally keeps leaf concerns (concrete agents, tools,
// schema handling, persistence) out of scope, exposing small interfaces so
// sibling packages can build on the lifecycle guarantees documented here.
package core
