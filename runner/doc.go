// Package runner coordinates top-level agent execution: it enters the run,
// installs the default middleware stages, tracks active runs for
// cancellation by id, and delivers results asynchronously. Public methods
// are safe for concurrent use.
package runner
