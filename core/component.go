package core

import (
	"github.com/agentcore-dev/agentcore/emitter"
)

// Component is the invokable instance contract. Anything executed through
// Enter (agents, tools wrapped as components, composites) exposes identity,
// an event bus for lifecycle observation, the run-state guard, a memory
// accessor and a teardown hook.
type Component interface {
	// Name returns the unique, human-readable component name.
	Name() string

	// Emitter returns the component's event bus. May return nil for
	// components that opt out of observability; the core treats a nil bus
	// as "emit nowhere".
	Emitter() *emitter.Emitter

	// RunState returns the per-owner reentrancy guard. Transitions are
	// performed only by Enter.
	RunState() *RunState

	// Memory returns the component's state accessor pair, or nil when the
	// component is stateless.
	Memory() MemoryStore

	// Destroy tears the component down. Implementations must at least
	// destroy the event bus so late-firing lifecycle events become no-ops.
	Destroy()
}

// Snapshotter is implemented by components whose run state can be persisted
// and restored. LoadSnapshot always restores to Idle.
type Snapshotter interface {
	CreateSnapshot() Snapshot
	LoadSnapshot(Snapshot)
}

// SearchResult is one record returned from a memory search.
type SearchResult struct {
	ID       string
	Content  string
	Metadata map[string]any
	Score    float64
}

// MemoryStore is the state accessor pair a component exposes: scoped
// key/value state plus append-only records with recall search. The core
// never interprets stored values; it only threads the accessor through to
// tools and nested invocations.
type MemoryStore interface {
	// GetState returns the value stored under key.
	GetState(key string) (any, bool)

	// SetState stores value under key.
	SetState(key string, value any)

	// DeleteState removes key.
	DeleteState(key string)

	// Store appends content plus metadata as a searchable record.
	Store(content string, metadata map[string]any) error

	// Search returns up to limit records relevant to query.
	Search(query string, limit int) ([]SearchResult, error)

	// Reset clears all state and records.
	Reset()
}
