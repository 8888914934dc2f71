// Package agentcore provides a high-level façade over the execution core
// (run contexts, middleware, event buses) and the schema validation
// pipeline, enabling rapid construction of agent systems. Most applications
// interact with this package by:
//  1. Creating an AgentCore via New() (optionally overriding the logger and
//     default middleware)
//  2. Registering one or more agents (func, sequential, parallel, loop,
//     custom)
//  3. Invoking agents asynchronously (Invoke) or synchronously (InvokeSync)
//
// The façade delegates execution to runner.Runner while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a structured logger.
package agentcore

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentcore-dev/agentcore/agent"
	"github.com/agentcore-dev/agentcore/logging"
	"github.com/agentcore-dev/agentcore/middleware"
	"github.com/agentcore-dev/agentcore/runner"
)

// Options configures the AgentCore instance.
type Options struct {
	// EnableTelemetry toggles the telemetry middleware stage for all
	// registered agents. Resolved once at construction.
	EnableTelemetry bool

	// Middleware is appended after the default stages for all registered
	// agents.
	Middleware []middleware.Stage

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// AgentCore is the high-level façade aggregating per-agent runners.
type AgentCore struct {
	opts Options

	mu      sync.RWMutex
	runners map[string]*runner.Runner
}

// New creates a new AgentCore instance with optional overrides.
func New(optFns ...func(o *Options)) *AgentCore {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &AgentCore{
		opts:    opts,
		runners: make(map[string]*runner.Runner),
	}
}

// RegisterAgent adds an agent under its name. Registering a second agent
// with the same name is an error.
func (c *AgentCore) RegisterAgent(a agent.Agent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.runners[a.Name()]; exists {
		return fmt.Errorf("agent %q already registered", a.Name())
	}
	c.runners[a.Name()] = runner.New(a, func(o *runner.Options) {
		o.EnableTelemetry = c.opts.EnableTelemetry
		o.Middleware = c.opts.Middleware
		o.Logger = c.opts.Logger
	})
	return nil
}

// Invoke starts an asynchronous invocation of the named agent. The returned
// channel delivers exactly one result.
func (c *AgentCore) Invoke(ctx context.Context, agentName string, input any) (string, <-chan runner.Result, error) {
	r, err := c.lookup(agentName)
	if err != nil {
		return "", nil, err
	}
	runID, results := r.Run(ctx, input)
	return runID, results, nil
}

// InvokeSync executes the named agent and blocks until the run settles.
func (c *AgentCore) InvokeSync(ctx context.Context, agentName string, input any) (any, error) {
	r, err := c.lookup(agentName)
	if err != nil {
		return nil, err
	}
	return r.RunSync(ctx, input)
}

// Cancel signals cancellation to an active run by id, regardless of which
// agent it runs on.
func (c *AgentCore) Cancel(runID string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.runners {
		if r.Cancel(runID) == nil {
			return nil
		}
	}
	return fmt.Errorf("no active run %q", runID)
}

func (c *AgentCore) lookup(agentName string) (*runner.Runner, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.runners[agentName]
	if !ok {
		return nil, fmt.Errorf("agent %q not registered", agentName)
	}
	return r, nil
}
