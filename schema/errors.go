package schema

import "fmt"

// ConversionError reports an input schema dialect that is fundamentally
// unconvertible to declarative JSON Schema (e.g. it embeds code-based
// refinement steps with no static shape). The constraint cannot be
// represented, so the normalizer rejects it rather than dropping it.
type ConversionError struct {
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("schema not convertible: %s", e.Reason)
}

func conversionErrorf(format string, args ...any) *ConversionError {
	return &ConversionError{Reason: fmt.Sprintf(format, args...)}
}

// CompileError reports an internally inconsistent canonical schema. It
// surfaces synchronously at compile time, never at first validation.
type CompileError struct {
	Reason string
	Err    error
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema compile failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("schema compile failed: %s", e.Reason)
}

// Unwrap exposes the underlying compiler error.
func (e *CompileError) Unwrap() error { return e.Err }
