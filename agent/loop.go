package agent

import (
	"time"

	"github.com/agentcore-dev/agentcore/core"
)

// Loop coordinates the repeated execution of a single child agent.
//
// Each iteration runs in its own nested invocation; the output of one
// iteration feeds the next as input, so the child can converge on a result.
// Termination is controlled by a maximum iteration count, an optional
// predicate over the iteration output, and the run's cancellation token.
type Loop struct {
	BaseAgent
	child    Agent
	maxIters int
	interval time.Duration
	until    func(output any) bool
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithMaxIters caps the number of iterations. Default 100.
func WithMaxIters(n int) LoopOption {
	return func(l *Loop) { l.maxIters = n }
}

// WithInterval sets a delay between iterations, observed cooperatively
// against the run's cancellation token. Default none.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) { l.interval = d }
}

// WithUntil sets a termination predicate evaluated on each iteration's
// output; returning true stops the loop with that output.
//
// Example:
//
//	agent.WithUntil(func(output any) bool {
//	    s, ok := output.(string)
//	    return ok && strings.Contains(s, "COMPLETE")
//	})
func WithUntil(pred func(output any) bool) LoopOption {
	return func(l *Loop) { l.until = pred }
}

// NewLoop constructs a looping coordinator around a child agent.
// Defaults: 100 iterations, no interval, no predicate.
func NewLoop(name string, child Agent, opts ...LoopOption) *Loop {
	l := &Loop{
		BaseAgent: NewBase(name),
		child:     child,
		maxIters:  100,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Run implements Agent. It returns the output of the final iteration.
func (l *Loop) Run(rc *core.RunContext, input any) (any, error) {
	current := input
	for i := 0; i < l.maxIters; i++ {
		select {
		case <-rc.Done():
			return nil, rc.Err()
		default:
		}

		out, err := rc.RunNested(l.child, core.EnterOptions{}, func(nested *core.RunContext) (any, error) {
			return l.child.Run(nested, current)
		})
		if err != nil {
			return nil, err
		}
		current = out

		if l.until != nil && l.until(current) {
			return current, nil
		}

		if l.interval > 0 && i < l.maxIters-1 {
			select {
			case <-rc.Done():
				return nil, rc.Err()
			case <-time.After(l.interval):
			}
		}
	}
	return current, nil
}
