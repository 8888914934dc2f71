package core

import (
	"errors"
	"fmt"
)

// ReentrancyError reports a second top-level invocation on an owner whose
// previous invocation has not settled. The new call is rejected immediately,
// before any user code runs; it is never queued behind the active one.
type ReentrancyError struct {
	Component string
}

func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("component %q is already running", e.Component)
}

// AgentError wraps any uncaught failure raised by invoked work. It carries
// the original error as its cause and names the owning component. Errors
// that are already part of the core taxonomy pass through unchanged, so an
// error is wrapped at most once as it propagates through nested contexts.
type AgentError struct {
	Component string
	Err       error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent error in %s: %v", e.Component, e.Err)
}

// Unwrap exposes the original cause for errors.Is / errors.As chains.
func (e *AgentError) Unwrap() error { return e.Err }

// NewAgentError wraps err as an AgentError attributed to component.
func NewAgentError(component string, err error) *AgentError {
	return &AgentError{Component: component, Err: err}
}

// wrapRunError applies the single-wrap rule at the run boundary.
func wrapRunError(component string, err error) error {
	var agentErr *AgentError
	if errors.As(err, &agentErr) {
		return err
	}
	var reentrancyErr *ReentrancyError
	if errors.As(err, &reentrancyErr) {
		return err
	}
	return NewAgentError(component, err)
}
