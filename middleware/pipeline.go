package middleware

import (
	"context"
)

// Handler is the innermost unit of work a pipeline wraps: one invocation.
type Handler func(ctx context.Context) (any, error)

// Stage wraps a Handler and returns the wrapped Handler. Stages run
// single-threaded per invocation; there is no interleaving between stages of
// the same call.
type Stage func(next Handler) Handler

// Identity is the pass-through stage installed when a pipeline has no
// stages configured.
func Identity(next Handler) Handler { return next }

// Pipeline is an ordered list of stages. Order is insertion order: the first
// registered stage is outermost. Pipeline is not safe for concurrent
// mutation; register all stages before running.
type Pipeline struct {
	stages []Stage
}

// New constructs a pipeline from the given stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: append([]Stage(nil), stages...)}
}

// Use appends a stage to the pipeline.
func (p *Pipeline) Use(s Stage) { p.stages = append(p.stages, s) }

// Len reports the number of registered stages.
func (p *Pipeline) Len() int { return len(p.stages) }

// Compose builds the aggregate handler at pipeline construction time:
// stages are folded right-to-left so the first registered stage ends up
// outermost. If no stages are registered, Identity is applied so the shape
// is uniform.
func (p *Pipeline) Compose(final Handler) Handler {
	if len(p.stages) == 0 {
		return Identity(final)
	}
	h := final
	for i := len(p.stages) - 1; i >= 0; i-- {
		h = p.stages[i](h)
	}
	return h
}

// Run executes the composed pipeline around final.
func (p *Pipeline) Run(ctx context.Context, final Handler) (any, error) {
	return p.Compose(final)(ctx)
}
