package agent

import (
	"context"
	"sync"

	"github.com/agentcore-dev/agentcore/core"
)

// Parallel coordinates the concurrent execution of multiple child agents.
//
// Every child receives the same input and runs in its own nested invocation
// on a shared context derived from the parent run. When any child fails the
// shared context is cancelled, so cooperative siblings can stop early; the
// composite still waits for every child to settle before returning.
type Parallel struct {
	BaseAgent
	children []Agent
}

// NewParallel creates a concurrent coordinator over the provided children.
func NewParallel(name string, children ...Agent) *Parallel {
	return &Parallel{
		BaseAgent: NewBase(name),
		children:  children,
	}
}

// Run implements Agent. It returns the child outputs in declaration order,
// or the first error encountered.
func (p *Parallel) Run(rc *core.RunContext, input any) (any, error) {
	ctx, cancel := context.WithCancel(rc.Context())
	defer cancel()

	outputs := make([]any, len(p.children))
	errs := make([]error, len(p.children))

	var wg sync.WaitGroup
	for i, child := range p.children {
		i, child := i, child
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := rc.RunNested(child, core.EnterOptions{Context: ctx}, func(nested *core.RunContext) (any, error) {
				return child.Run(nested, input)
			})
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			outputs[i] = out
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return outputs, nil
}
