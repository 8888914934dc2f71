package tool

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentcore-dev/agentcore/core"
	"github.com/agentcore-dev/agentcore/emitter"
	"github.com/agentcore-dev/agentcore/logging"
)

// Per-call lifecycle topics. Emitted on the call's child bus, so a
// subscriber on the owning component's bus observes them under
// "tool.<name>.*".
const (
	TopicCallStart   = "start"
	TopicCallSuccess = "success"
	TopicCallError   = "error"
)

// CallStartPayload accompanies TopicCallStart.
type CallStartPayload struct {
	FunctionCallID string
	Args           map[string]any
}

// CallSuccessPayload accompanies TopicCallSuccess.
type CallSuccessPayload struct {
	FunctionCallID string
	Output         any
}

// CallErrorPayload accompanies TopicCallError.
type CallErrorPayload struct {
	FunctionCallID string
	Err            error
}

// Context is the per-call handle handed to a tool implementation. It carries
// the enclosing run's cancellation, a function call identifier correlating
// the model request with the execution, and a child event bus namespaced
// under tool.<name> on the owning component's bus.
type Context struct {
	rc             *core.RunContext
	functionCallID string
	bus            *emitter.Emitter
}

// NewContext derives a per-call Context from the enclosing run.
func NewContext(rc *core.RunContext, toolName string) *Context {
	var bus *emitter.Emitter
	if root := rc.Owner().Emitter(); root != nil {
		bus = root.Child([]string{"tool", toolName}, toolName)
	}
	return &Context{
		rc:             rc,
		functionCallID: uuid.NewString(),
		bus:            bus,
	}
}

// Run returns the enclosing run context.
func (tc *Context) Run() *core.RunContext { return tc.rc }

// Context returns the cancellation context of the enclosing run.
func (tc *Context) Context() context.Context { return tc.rc.Context() }

// FunctionCallID returns the identifier correlating this execution with the
// model's function call request.
func (tc *Context) FunctionCallID() string { return tc.functionCallID }

// Logger returns the enclosing run's diagnostics logger.
func (tc *Context) Logger() logging.Logger { return tc.rc.Logger() }

// Memory returns the owning component's memory store, if any.
func (tc *Context) Memory() core.MemoryStore { return tc.rc.Owner().Memory() }

// Emitter returns the call's namespaced event bus, nil when the owning
// component has none.
func (tc *Context) Emitter() *emitter.Emitter { return tc.bus }

// emit publishes a per-call event. Handler errors are logged, never
// propagated into the call's critical path.
func (tc *Context) emit(topic string, payload any) {
	if tc.bus == nil {
		return
	}
	if err := tc.bus.Emit(topic, payload); err != nil {
		tc.Logger().Warn("tool event handler failed", "topic", topic, "fc_id", tc.functionCallID, "error", err.Error())
	}
}
