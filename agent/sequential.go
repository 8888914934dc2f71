package agent

import (
	"github.com/agentcore-dev/agentcore/core"
)

// Sequential coordinates the execution of multiple child agents in order.
//
// Each child runs in its own nested invocation; its output becomes the next
// child's input, so the chain behaves like a pipeline. The first error stops
// further processing.
type Sequential struct {
	BaseAgent
	children []Agent
}

// NewSequential creates a pipeline over the provided children.
func NewSequential(name string, children ...Agent) *Sequential {
	return &Sequential{
		BaseAgent: NewBase(name),
		children:  children,
	}
}

// Run implements Agent. The output of each child feeds the next; the last
// child's output is returned.
func (s *Sequential) Run(rc *core.RunContext, input any) (any, error) {
	current := input
	for _, child := range s.children {
		out, err := rc.RunNested(child, core.EnterOptions{}, func(nested *core.RunContext) (any, error) {
			return child.Run(nested, current)
		})
		if err != nil {
			return nil, err
		}
		current = out
	}
	return current, nil
}
