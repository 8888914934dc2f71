package tool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore-dev/agentcore/core"
	"github.com/agentcore-dev/agentcore/emitter"
	"github.com/agentcore-dev/agentcore/schema"
)

type fakeComponent struct {
	name  string
	bus   *emitter.Emitter
	state core.RunState
}

func newFakeComponent(name string) *fakeComponent {
	return &fakeComponent{name: name, bus: emitter.New(name)}
}

func (c *fakeComponent) Name() string              { return c.name }
func (c *fakeComponent) Emitter() *emitter.Emitter { return c.bus }
func (c *fakeComponent) RunState() *core.RunState  { return &c.state }
func (c *fakeComponent) Memory() core.MemoryStore  { return nil }
func (c *fakeComponent) Destroy()                  { c.bus.Destroy() }

// callTool runs fn inside a real run context, the way agents invoke tools.
func callTool(t *testing.T, owner *fakeComponent, ft *FunctionTool, args map[string]any) (any, error) {
	t.Helper()
	var out any
	var callErr error
	_, err := core.Enter(owner, core.EnterOptions{}, func(rc *core.RunContext) (any, error) {
		out, callErr = ft.Call(NewContext(rc, ft.Name()), args)
		return nil, nil
	})
	require.NoError(t, err)
	return out, callErr
}

func sumSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}
}

func sumFunc(tc *Context, args map[string]any) (any, error) {
	return args["a"].(float64) + args["b"].(float64), nil
}

func TestNew_BadSchemaFailsAtRegistration(t *testing.T) {
	_, err := New("broken", "has a function in its schema", map[string]any{
		"type":   "object",
		"refine": func() {},
	}, sumFunc)

	var convErr *schema.ConversionError
	require.ErrorAs(t, err, &convErr)
}

func TestNew_InconsistentSchemaFailsAtRegistration(t *testing.T) {
	_, err := New("broken", "bad type keyword", map[string]any{
		"type": "no-such-type",
	}, sumFunc)

	var compileErr *schema.CompileError
	require.ErrorAs(t, err, &compileErr)
}

func TestCall_Success(t *testing.T) {
	ft, err := New("calculate_sum", "Calculate the sum of two numbers", sumSchema(), sumFunc)
	require.NoError(t, err)

	out, callErr := callTool(t, newFakeComponent("agent-1"), ft, map[string]any{"a": 1, "b": 2})
	require.NoError(t, callErr)
	assert.Equal(t, float64(3), out)
}

func TestCall_CoercesArguments(t *testing.T) {
	ft, err := New("calculate_sum", "Calculate the sum of two numbers", sumSchema(), sumFunc)
	require.NoError(t, err)

	out, callErr := callTool(t, newFakeComponent("agent-1"), ft, map[string]any{"a": "1.5", "b": 2})
	require.NoError(t, callErr)
	assert.Equal(t, 3.5, out)
}

func TestCall_ValidationFailure(t *testing.T) {
	ft, err := New("calculate_sum", "Calculate the sum of two numbers", sumSchema(), sumFunc)
	require.NoError(t, err)

	_, callErr := callTool(t, newFakeComponent("agent-1"), ft, map[string]any{"a": 1})

	var toolErr *ToolError
	require.ErrorAs(t, callErr, &toolErr)
	assert.Equal(t, CodeValidationError, toolErr.Code)
	assert.Equal(t, "calculate_sum", toolErr.Tool)

	violations, ok := toolErr.Details.([]schema.Violation)
	require.True(t, ok)
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0].Reason, "b")
}

func TestCall_ExecutionErrorWrapped(t *testing.T) {
	ft, err := New("failing", "always fails", map[string]any{"type": "object"},
		func(tc *Context, args map[string]any) (any, error) {
			return nil, errors.New("downstream unavailable")
		})
	require.NoError(t, err)

	_, callErr := callTool(t, newFakeComponent("agent-1"), ft, map[string]any{})

	var toolErr *ToolError
	require.ErrorAs(t, callErr, &toolErr)
	assert.Equal(t, CodeExecutionError, toolErr.Code)
	assert.Equal(t, "downstream unavailable", toolErr.Message)
}

func TestCall_CustomToolErrorForwardedUnchanged(t *testing.T) {
	custom := NewToolError("failing", "rate limited", "RATE_LIMITED")
	ft, err := New("failing", "always fails", map[string]any{"type": "object"},
		func(tc *Context, args map[string]any) (any, error) {
			return nil, custom
		})
	require.NoError(t, err)

	_, callErr := callTool(t, newFakeComponent("agent-1"), ft, map[string]any{})
	var toolErr *ToolError
	require.ErrorAs(t, callErr, &toolErr)
	assert.Same(t, custom, toolErr)
}

func TestCall_FillsDefaults(t *testing.T) {
	ft, err := New("greet", "Greet someone", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"greeting": map[string]any{"type": "string", "default": "hello"},
		},
		"required": []string{"name"},
	}, func(tc *Context, args map[string]any) (any, error) {
		return args["greeting"].(string) + " " + args["name"].(string), nil
	})
	require.NoError(t, err)

	out, callErr := callTool(t, newFakeComponent("agent-1"), ft, map[string]any{"name": "world"})
	require.NoError(t, callErr)
	assert.Equal(t, "hello world", out)
}

func TestCall_EventsScopedUnderToolNamespace(t *testing.T) {
	owner := newFakeComponent("agent-1")

	var topics []string
	owner.bus.On("tool.echo", func(ev emitter.Event) error {
		topics = append(topics, ev.Topic)
		return nil
	})

	ft, err := New("echo", "Echo the input", map[string]any{"type": "object"},
		func(tc *Context, args map[string]any) (any, error) { return args, nil })
	require.NoError(t, err)

	_, callErr := callTool(t, owner, ft, map[string]any{})
	require.NoError(t, callErr)

	assert.Equal(t, []string{"tool.echo.start", "tool.echo.success"}, topics)
}

func TestCall_ErrorEventEmitted(t *testing.T) {
	owner := newFakeComponent("agent-1")

	var topics []string
	owner.bus.On("tool", func(ev emitter.Event) error {
		topics = append(topics, ev.Topic)
		return nil
	})

	ft, err := New("failing", "always fails", map[string]any{"type": "object"},
		func(tc *Context, args map[string]any) (any, error) { return nil, errors.New("boom") })
	require.NoError(t, err)

	_, callErr := callTool(t, owner, ft, map[string]any{})
	require.Error(t, callErr)

	assert.Equal(t, []string{"tool.failing.start", "tool.failing.error"}, topics)
}

type weatherArgs struct {
	Location string `json:"location" jsonschema:"required"`
	Unit     string `json:"unit,omitempty"`
}

func TestNewTyped_DecodesArguments(t *testing.T) {
	ft, err := NewTyped("get_weather", "Get the weather for a city",
		func(tc *Context, args weatherArgs) (any, error) {
			return args.Location + "/" + args.Unit, nil
		})
	require.NoError(t, err)

	out, callErr := callTool(t, newFakeComponent("agent-1"), ft, map[string]any{
		"location": "oslo",
		"unit":     "celsius",
	})
	require.NoError(t, callErr)
	assert.Equal(t, "oslo/celsius", out)
}

func TestNewTyped_MissingRequiredRejected(t *testing.T) {
	ft, err := NewTyped("get_weather", "Get the weather for a city",
		func(tc *Context, args weatherArgs) (any, error) { return nil, nil })
	require.NoError(t, err)

	_, callErr := callTool(t, newFakeComponent("agent-1"), ft, map[string]any{"unit": "celsius"})

	var toolErr *ToolError
	require.ErrorAs(t, callErr, &toolErr)
	assert.Equal(t, CodeValidationError, toolErr.Code)
}

func TestContext_FunctionCallIDsUnique(t *testing.T) {
	owner := newFakeComponent("agent-1")
	_, err := core.Enter(owner, core.EnterOptions{}, func(rc *core.RunContext) (any, error) {
		a := NewContext(rc, "echo")
		b := NewContext(rc, "echo")
		assert.NotEqual(t, a.FunctionCallID(), b.FunctionCallID())
		return nil, nil
	})
	require.NoError(t, err)
}
