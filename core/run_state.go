package core

import "sync"

// State is the run state of an invokable component.
type State int

const (
	// Idle means no invocation is active on the owner.
	Idle State = iota
	// Running means a top-level invocation is in flight.
	Running
)

// String returns the string representation of the state.
func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// RunState is the per-owner guard preventing overlapping top-level
// invocations. Transitions are performed only by Enter; everything else may
// merely observe. There is exactly one writer at a time by construction (a
// second invocation on the same owner is rejected, not queued), so a plain
// mutex around the transition suffices.
type RunState struct {
	mu    sync.Mutex
	state State
}

// begin transitions Idle -> Running, failing with a ReentrancyError when an
// invocation is already active.
func (s *RunState) begin(component string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		return &ReentrancyError{Component: component}
	}
	s.state = Running
	return nil
}

// end transitions back to Idle. Called exactly once per successful begin,
// from a deferred block, regardless of how the invocation settled.
func (s *RunState) end() {
	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
}

// Current returns the observed state.
func (s *RunState) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsRunning reports whether an invocation is active.
func (s *RunState) IsRunning() bool { return s.Current() == Running }

// Snapshot is the persisted form of a RunState.
type Snapshot struct {
	Running bool `json:"running"`
}

// CreateSnapshot captures the current state.
func (s *RunState) CreateSnapshot() Snapshot {
	return Snapshot{Running: s.IsRunning()}
}

// LoadSnapshot restores state from a snapshot. The flag is always reset to
// Idle: a loaded snapshot is by definition not mid-run.
func (s *RunState) LoadSnapshot(Snapshot) {
	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
}
