package agent

import (
	"fmt"

	"github.com/agentcore-dev/agentcore/core"
	"github.com/agentcore-dev/agentcore/emitter"
)

// Agent is the invokable unit of work. It extends core.Component with an
// execution entry point; the surrounding run context supplies cancellation,
// nesting and lifecycle events.
type Agent interface {
	core.Component

	// Description returns a detailed description of this agent's purpose.
	Description() string

	// Run executes the agent's work inside an already-entered invocation.
	// Implementations observe rc for cooperative cancellation and must not
	// call Run on themselves, directly or indirectly.
	Run(rc *core.RunContext, input any) (any, error)
}

// BaseOptions configures a BaseAgent.
type BaseOptions struct {
	// Description shown to humans and models. Defaults to "Agent <name>".
	Description string

	// Memory is the agent's state accessor. Nil means stateless.
	Memory core.MemoryStore
}

// WithDescription sets the agent description.
func WithDescription(desc string) func(o *BaseOptions) {
	return func(o *BaseOptions) { o.Description = desc }
}

// WithMemory attaches a memory store to the agent.
func WithMemory(store core.MemoryStore) func(o *BaseOptions) {
	return func(o *BaseOptions) { o.Memory = store }
}

// BaseAgent bundles shared identity, event bus, run-state guard and memory
// plumbing. Embed it in concrete agent implementations and supply a Run
// method to satisfy the Agent interface.
type BaseAgent struct {
	name        string
	description string
	bus         *emitter.Emitter
	memory      core.MemoryStore
	state       core.RunState
}

// NewBase constructs a BaseAgent with its own root event bus.
func NewBase(name string, optFns ...func(o *BaseOptions)) BaseAgent {
	opts := BaseOptions{
		Description: fmt.Sprintf("Agent %s", name),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return BaseAgent{
		name:        name,
		description: opts.Description,
		bus:         emitter.New(name),
		memory:      opts.Memory,
	}
}

// Name returns the human-readable name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// Emitter returns the agent's root event bus.
func (b *BaseAgent) Emitter() *emitter.Emitter { return b.bus }

// RunState returns the agent's reentrancy guard.
func (b *BaseAgent) RunState() *core.RunState { return &b.state }

// Memory returns the agent's state accessor, nil when stateless.
func (b *BaseAgent) Memory() core.MemoryStore { return b.memory }

// Destroy tears down the event bus; events emitted afterwards are no-ops.
func (b *BaseAgent) Destroy() {
	if b.bus != nil {
		b.bus.Destroy()
	}
}

// CreateSnapshot captures the agent's run state.
func (b *BaseAgent) CreateSnapshot() core.Snapshot { return b.state.CreateSnapshot() }

// LoadSnapshot restores the agent's run state; the restored state is always
// idle.
func (b *BaseAgent) LoadSnapshot(s core.Snapshot) { b.state.LoadSnapshot(s) }

// FuncAgent adapts a plain function into an Agent. Useful for small
// processing steps inside composites and for tests.
type FuncAgent struct {
	BaseAgent
	fn func(rc *core.RunContext, input any) (any, error)
}

// NewFunc wraps fn as an Agent.
func NewFunc(name string, fn func(rc *core.RunContext, input any) (any, error), optFns ...func(o *BaseOptions)) *FuncAgent {
	return &FuncAgent{
		BaseAgent: NewBase(name, optFns...),
		fn:        fn,
	}
}

// Run implements Agent.
func (a *FuncAgent) Run(rc *core.RunContext, input any) (any, error) {
	return a.fn(rc, input)
}
