package tool

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/agentcore-dev/agentcore/schema"
)

// Func is the implementation signature wrapped by a FunctionTool. It
// receives a per-call Context plus already-validated arguments.
type Func func(tc *Context, args map[string]any) (any, error)

// Options configures validation behavior fixed at registration.
type Options struct {
	// Coerce enables lossless argument coercion (numeric strings to
	// numbers, single values to one-element arrays). Enabled by default.
	Coerce bool

	// FillDefaults injects schema-declared defaults for absent arguments.
	// Enabled by default.
	FillDefaults bool

	// StrictFormats makes format annotations assertive.
	StrictFormats bool
}

// FunctionTool is a generic adapter that exposes a plain Go function as a
// tool.
//
// The declared schema is normalized and compiled once at construction, so a
// bad schema is caught at registration rather than mid-run. Validation or
// execution failures are wrapped (or passed through) as *ToolError:
//
//	*ToolError (returned directly)  -> forwarded unchanged
//	validation failure              -> *ToolError{Code: "VALIDATION_ERROR"}
//	other error                     -> *ToolError{Code: "EXECUTION_ERROR"}
//
// A FunctionTool has no internal mutable state after construction and is
// safe for concurrent use by multiple goroutines.
type FunctionTool struct {
	name        string
	description string
	canonical   map[string]any
	validator   *schema.Validator
	fn          Func
}

// New constructs a FunctionTool from a declarative schema and function. The
// schema may be a JSON-Schema-shaped map or a Go struct; it is normalized
// and compiled here, and construction fails when it cannot be.
//
// Example:
//
//	sumTool, err := tool.New(
//	  "calculate_sum",
//	  "Calculate the sum of two numbers",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "a": map[string]any{"type": "number"},
//	      "b": map[string]any{"type": "number"},
//	    },
//	    "required": []string{"a", "b"},
//	  },
//	  func(tc *tool.Context, args map[string]any) (any, error) {
//	    return args["a"].(float64) + args["b"].(float64), nil
//	  },
//	)
func New(name, description string, inputSchema any, fn Func, optFns ...func(o *Options)) (*FunctionTool, error) {
	opts := Options{Coerce: true, FillDefaults: true}
	for _, optFn := range optFns {
		optFn(&opts)
	}

	canonical, err := schema.Normalize(inputSchema)
	if err != nil {
		return nil, fmt.Errorf("tool %q: %w", name, err)
	}

	validator, err := schema.Compile(canonical, func(o *schema.CompileOptions) {
		o.CoerceTypes = opts.Coerce
		o.UseDefaults = opts.FillDefaults
		o.StrictFormats = opts.StrictFormats
	})
	if err != nil {
		return nil, fmt.Errorf("tool %q: %w", name, err)
	}

	return &FunctionTool{
		name:        name,
		description: description,
		canonical:   canonical,
		validator:   validator,
		fn:          fn,
	}, nil
}

// NewTyped constructs a FunctionTool whose schema is derived from the
// argument struct's tags and whose implementation receives the decoded
// struct instead of a raw map.
//
// Example:
//
//	type SumArgs struct {
//	  A float64 `json:"a" jsonschema:"required"`
//	  B float64 `json:"b" jsonschema:"required"`
//	}
//
//	sumTool, err := tool.NewTyped(
//	  "calculate_sum",
//	  "Calculate the sum of two numbers",
//	  func(tc *tool.Context, args SumArgs) (any, error) {
//	    return args.A + args.B, nil
//	  },
//	)
func NewTyped[T any](name, description string, fn func(tc *Context, args T) (any, error), optFns ...func(o *Options)) (*FunctionTool, error) {
	var zero T
	return New(name, description, zero, func(tc *Context, args map[string]any) (any, error) {
		var typed T
		if err := decodeArgs(args, &typed); err != nil {
			return nil, &ToolError{
				Tool:    name,
				Message: fmt.Sprintf("argument decoding failed: %v", err),
				Code:    CodeValidationError,
			}
		}
		return fn(tc, typed)
	}, optFns...)
}

func decodeArgs(args map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

// Name returns the unique tool name used in function call declarations and
// routing.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description exposed to
// models.
func (t *FunctionTool) Description() string { return t.description }

// InputSchema returns the canonical schema describing expected arguments.
func (t *FunctionTool) InputSchema() map[string]any { return t.canonical }

// Call validates the provided args against the declared schema then invokes
// the underlying function. The implementation receives the validated value,
// with defaults filled and coercions applied; the caller's map is never
// mutated.
func (t *FunctionTool) Call(tc *Context, args map[string]any) (any, error) {
	logger := tc.Logger()
	start := time.Now()

	logger.Debug("tool.call.start", "tool", t.name, "fc_id", tc.FunctionCallID())
	tc.emit(TopicCallStart, CallStartPayload{FunctionCallID: tc.FunctionCallID(), Args: args})

	validated, violations := t.validator.Validate(args)
	if len(violations) > 0 {
		logger.Warn("tool.call.validation_failed", "tool", t.name, "violations", len(violations))

		err := &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("argument validation failed: %s at %q", violations[0].Reason, violations[0].Path),
			Code:    CodeValidationError,
			Details: violations,
		}
		tc.emit(TopicCallError, CallErrorPayload{FunctionCallID: tc.FunctionCallID(), Err: err})
		return nil, err
	}

	validatedArgs, _ := validated.(map[string]any)

	result, err := t.fn(tc, validatedArgs)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			logger.Error("tool.call.error", "tool", t.name, "error", toolErr.Message)
			tc.emit(TopicCallError, CallErrorPayload{FunctionCallID: tc.FunctionCallID(), Err: toolErr})
			return nil, toolErr
		}

		logger.Error("tool.call.error", "tool", t.name, "error", err.Error())

		toolErr := &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    CodeExecutionError,
		}
		tc.emit(TopicCallError, CallErrorPayload{FunctionCallID: tc.FunctionCallID(), Err: toolErr})
		return nil, toolErr
	}

	logger.Info("tool.call.success", "tool", t.name, "duration_ms", time.Since(start).Milliseconds())
	tc.emit(TopicCallSuccess, CallSuccessPayload{FunctionCallID: tc.FunctionCallID(), Output: result})

	return result, nil
}
