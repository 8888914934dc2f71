package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/agentcore-dev/agentcore/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingStage(name string, log *[]string) Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context) (any, error) {
			*log = append(*log, name+"-before")
			out, err := next(ctx)
			*log = append(*log, name+"-after")
			return out, err
		}
	}
}

func TestPipeline_OnionOrdering(t *testing.T) {
	var log []string
	p := New(recordingStage("A", &log), recordingStage("B", &log))

	out, err := p.Run(context.Background(), func(ctx context.Context) (any, error) {
		log = append(log, "core")
		return "result", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "result", out)
	assert.Equal(t, []string{"A-before", "B-before", "core", "B-after", "A-after"}, log)
}

func TestPipeline_EmptyGetsIdentityStage(t *testing.T) {
	p := New()

	var ran bool
	out, err := p.Run(context.Background(), func(ctx context.Context) (any, error) {
		ran = true
		return 7, nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 7, out)
}

func TestPipeline_StageShortCircuits(t *testing.T) {
	var coreRan bool
	p := New(func(next Handler) Handler {
		return func(ctx context.Context) (any, error) {
			// Deliberately never calls next.
			return "short", nil
		}
	})

	out, err := p.Run(context.Background(), func(ctx context.Context) (any, error) {
		coreRan = true
		return nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "short", out)
	assert.False(t, coreRan, "short-circuiting stage must prevent the invocation")
}

func TestPipeline_StageReplacesError(t *testing.T) {
	replaced := errors.New("replaced")
	p := New(func(next Handler) Handler {
		return func(ctx context.Context) (any, error) {
			if _, err := next(ctx); err != nil {
				return nil, replaced
			}
			return nil, nil
		}
	})

	_, err := p.Run(context.Background(), func(ctx context.Context) (any, error) {
		return nil, errors.New("original")
	})

	assert.ErrorIs(t, err, replaced)
}

func TestPipeline_UseAppendsInOrder(t *testing.T) {
	var log []string
	p := New()
	p.Use(recordingStage("first", &log))
	p.Use(recordingStage("second", &log))
	require.Equal(t, 2, p.Len())

	_, err := p.Run(context.Background(), func(ctx context.Context) (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"first-before", "second-before", "second-after", "first-after"}, log)
}

func TestDefaults_TelemetryToggle(t *testing.T) {
	off := Defaults(Config{EnableTelemetry: false})
	require.Len(t, off, 1)

	on := Defaults(Config{EnableTelemetry: true, Logger: logging.NoOpLogger{}})
	require.Len(t, on, 1)

	// Telemetry stage passes output and error through untouched.
	boom := errors.New("boom")
	p := New(on...)
	out, err := p.Run(context.Background(), func(ctx context.Context) (any, error) {
		return "x", boom
	})
	assert.Equal(t, "x", out)
	assert.ErrorIs(t, err, boom)
}
