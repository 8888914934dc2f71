package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/agentcore-dev/agentcore/agent"
	"github.com/agentcore-dev/agentcore/core"
	"github.com/agentcore-dev/agentcore/logging"
	"github.com/agentcore-dev/agentcore/middleware"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// EnableTelemetry toggles the telemetry middleware stage. Resolved once
	// here; no global flag is consulted per call.
	EnableTelemetry bool

	// Middleware is appended after the default stages.
	Middleware []middleware.Stage

	// Logger for run diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Result is the settlement of one asynchronous run.
type Result struct {
	RunID  string
	Output any
	Err    error
}

// Runner executes a root agent. It resolves the middleware stage list once
// at construction and keeps a registry of active runs so callers can cancel
// by run id.
type Runner struct {
	agent  agent.Agent
	stages []middleware.Stage
	logger logging.Logger

	mu     sync.RWMutex
	active map[string]context.CancelFunc
}

// New constructs a Runner with optional overrides.
func New(a agent.Agent, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	stages := middleware.Defaults(middleware.Config{
		EnableTelemetry: opts.EnableTelemetry,
		Logger:          opts.Logger,
	})
	stages = append(stages, opts.Middleware...)

	return &Runner{
		agent:  a,
		stages: stages,
		logger: opts.Logger,
		active: make(map[string]context.CancelFunc),
	}
}

// Run starts an asynchronous invocation. The returned channel delivers
// exactly one Result and is then closed. The returned run id can be passed
// to Cancel while the run is active.
func (r *Runner) Run(ctx context.Context, input any) (string, <-chan Result) {
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	runCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	r.active[runID] = cancel
	r.mu.Unlock()

	results := make(chan Result, 1)
	go func() {
		// The registry entry is removed before the result is delivered, so
		// a caller holding the result never races a still-cancellable run.
		out, err := func() (any, error) {
			defer func() {
				r.mu.Lock()
				delete(r.active, runID)
				r.mu.Unlock()
				cancel()
			}()
			return core.Enter(r.agent, core.EnterOptions{
				Context:    runCtx,
				Params:     []any{input},
				Middleware: r.stages,
				Logger:     r.logger,
			}, func(rc *core.RunContext) (any, error) {
				return r.agent.Run(rc, input)
			})
		}()

		if err != nil {
			r.logger.Error("run failed", "run_id", runID, "agent", r.agent.Name(), "error", err.Error())
		}
		results <- Result{RunID: runID, Output: out, Err: err}
		close(results)
	}()

	return runID, results
}

// RunSync executes an invocation and blocks until it settles.
func (r *Runner) RunSync(ctx context.Context, input any) (any, error) {
	_, results := r.Run(ctx, input)
	res := <-results
	return res.Output, res.Err
}

// Cancel signals cancellation to an active run. The signal is advisory: the
// run settles when its work observes the token. Cancelling an unknown or
// already-settled run id returns an error.
func (r *Runner) Cancel(runID string) error {
	r.mu.RLock()
	cancel, ok := r.active[runID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("runner: no active run %q", runID)
	}
	cancel()
	return nil
}

// ActiveRuns returns the ids of runs that have not yet settled.
func (r *Runner) ActiveRuns() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.active))
	for id := range r.active {
		ids = append(ids, id)
	}
	return ids
}
