// Package agent contains first-class agent implementations and supporting
// utilities for building composable orchestration graphs. The package
// focuses on two concerns:
//
//  1. Base identity + lifecycle plumbing (BaseAgent)
//  2. Concrete coordination patterns (Sequential, Parallel, Loop)
//
// Design principles:
//   - Minimal hidden global state; explicit wiring via the run context
//   - Composability: composites nest arbitrarily, each child runs in its
//     own nested invocation with its own reentrancy guard
//   - Observability: lifecycle events flow through each component's bus
//
// Execution Model:
//   - An agent's Run receives a *core.RunContext scoped to its invocation
//   - Composite agents coordinate child Runs through RunNested, so
//     cancellation and error attribution follow the invocation chain
package agent
