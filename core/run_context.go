package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentcore-dev/agentcore/logging"
	"github.com/agentcore-dev/agentcore/middleware"
)

// Lifecycle topics emitted on the owner's event bus. The events carry no
// control-flow meaning; subscribers cannot block or alter the run.
const (
	TopicRunStart   = "run.start"
	TopicRunSuccess = "run.success"
	TopicRunError   = "run.error"
)

// RunStartPayload accompanies TopicRunStart.
type RunStartPayload struct {
	RunID  string
	Params []any
}

// RunSuccessPayload accompanies TopicRunSuccess.
type RunSuccessPayload struct {
	RunID  string
	Output any
}

// RunErrorPayload accompanies TopicRunError.
type RunErrorPayload struct {
	RunID string
	Err   error
}

// Work is the unit of execution wrapped by a RunContext.
type Work func(rc *RunContext) (any, error)

// EnterOptions configures one invocation attempt.
type EnterOptions struct {
	// Context is the cancellation token for the run. It may be externally
	// supplied so the caller can abort; cancellation is advisory, observed
	// cooperatively by the work, never preemptive. Nil means inherit the
	// parent's context for nested runs, context.Background() at top level.
	Context context.Context

	// Params is the input tuple as passed by the caller. Stored on the
	// RunContext for middleware and event subscribers.
	Params []any

	// Middleware is the ordered stage list wrapped around the work. When
	// empty a single identity stage is installed so the pipeline shape is
	// uniform.
	Middleware []middleware.Stage

	// Logger used for diagnostics raised by the run machinery itself
	// (e.g. failing event handlers). Nil inherits the parent's logger or
	// falls back to NoOpLogger.
	Logger logging.Logger
}

// RunContext is the scoped handle governing one invocation: identity,
// cancellation, the parent chain of nested invocations, and the input
// params. It is created by Enter and valid until the wrapped work settles.
type RunContext struct {
	ctx    context.Context
	cancel context.CancelFunc
	runID  string
	owner  Component
	parent *RunContext
	params []any
	logger logging.Logger
}

// Enter starts a top-level invocation on owner.
//
// It fails immediately with a *ReentrancyError if the owner already has an
// active invocation — the second call is rejected before any user code
// runs, never queued. On successful entry the owner is marked running, the
// middleware pipeline is composed around work, and a run.start event is
// emitted on the owner's bus. The running flag is cleared and the run's
// derived context released in a deferred block on every path: success,
// failure, or cancellation.
//
// Any error raised by work that is not already an *AgentError or
// *ReentrancyError is wrapped exactly once into an *AgentError naming the
// owner and preserving the cause chain.
func Enter(owner Component, opts EnterOptions, work Work) (any, error) {
	return enter(owner, nil, opts, work)
}

func enter(owner Component, parent *RunContext, opts EnterOptions, work Work) (out any, err error) {
	if owner == nil {
		return nil, fmt.Errorf("enter: nil component")
	}

	if err := owner.RunState().begin(owner.Name()); err != nil {
		return nil, err
	}

	base := opts.Context
	if base == nil {
		if parent != nil {
			base = parent.ctx
		} else {
			base = context.Background()
		}
	}
	ctx, cancel := context.WithCancel(base)

	logger := opts.Logger
	if logger == nil {
		if parent != nil {
			logger = parent.logger
		} else {
			logger = logging.NoOpLogger{}
		}
	}

	rc := &RunContext{
		ctx:    ctx,
		cancel: cancel,
		runID:  uuid.NewString(),
		owner:  owner,
		parent: parent,
		params: opts.Params,
		logger: logger,
	}

	defer func() {
		owner.RunState().end()
		cancel()
	}()

	rc.emitLifecycle(TopicRunStart, RunStartPayload{RunID: rc.runID, Params: rc.params})

	pipeline := middleware.New(opts.Middleware...)
	out, err = pipeline.Run(ctx, func(context.Context) (any, error) {
		return work(rc)
	})

	if err != nil {
		err = wrapRunError(owner.Name(), err)
		rc.emitLifecycle(TopicRunError, RunErrorPayload{RunID: rc.runID, Err: err})
		return nil, err
	}

	rc.emitLifecycle(TopicRunSuccess, RunSuccessPayload{RunID: rc.runID, Output: out})
	return out, nil
}

// emitLifecycle publishes a lifecycle event on the owner's bus. Handler
// errors are logged, never propagated into the run's critical path.
func (rc *RunContext) emitLifecycle(topic string, payload any) {
	bus := rc.owner.Emitter()
	if bus == nil {
		return
	}
	if err := bus.Emit(topic, payload); err != nil {
		rc.logger.Warn("lifecycle event handler failed", "topic", topic, "component", rc.owner.Name(), "error", err.Error())
	}
}

// RunNested starts a nested invocation on child (e.g. a sub-agent or a
// tool call). The nested context inherits this run's cancellation token
// unless opts.Context overrides it, and links back to this context via
// Parent. Reentrancy, error wrapping and lifecycle events apply to the
// child owner exactly as at top level.
func (rc *RunContext) RunNested(child Component, opts EnterOptions, work Work) (any, error) {
	return enter(child, rc, opts, work)
}

// Context returns the cancellation context of this run.
func (rc *RunContext) Context() context.Context { return rc.ctx }

// Done returns a channel closed when the run's context is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.ctx.Done() }

// Err returns the cancellation error (if any) from the run's context.
func (rc *RunContext) Err() error { return rc.ctx.Err() }

// RunID returns this invocation's unique identifier.
func (rc *RunContext) RunID() string { return rc.runID }

// Owner returns the component this invocation runs on.
func (rc *RunContext) Owner() Component { return rc.owner }

// Parent returns the enclosing run context, or nil at top level.
func (rc *RunContext) Parent() *RunContext { return rc.parent }

// Params returns the input tuple as passed by the caller.
func (rc *RunContext) Params() []any { return rc.params }

// Logger returns the run's diagnostics logger.
func (rc *RunContext) Logger() logging.Logger { return rc.logger }

// Depth reports the nesting depth of this invocation; 0 at top level.
func (rc *RunContext) Depth() int {
	d := 0
	for p := rc.parent; p != nil; p = p.parent {
		d++
	}
	return d
}
