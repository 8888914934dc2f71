package agentcore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore-dev/agentcore/agent"
	"github.com/agentcore-dev/agentcore/core"
)

func TestInvokeSync(t *testing.T) {
	ac := New()
	require.NoError(t, ac.RegisterAgent(agent.NewFunc("echo",
		func(rc *core.RunContext, input any) (any, error) { return input, nil })))

	out, err := ac.InvokeSync(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestInvoke_UnknownAgent(t *testing.T) {
	ac := New()
	_, _, err := ac.Invoke(context.Background(), "ghost", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRegisterAgent_DuplicateName(t *testing.T) {
	ac := New()
	mk := func() *agent.FuncAgent {
		return agent.NewFunc("echo", func(rc *core.RunContext, input any) (any, error) { return nil, nil })
	}
	require.NoError(t, ac.RegisterAgent(mk()))
	assert.Error(t, ac.RegisterAgent(mk()))
}

func TestCancelAcrossAgents(t *testing.T) {
	ac := New()
	started := make(chan struct{})
	require.NoError(t, ac.RegisterAgent(agent.NewFunc("waiting",
		func(rc *core.RunContext, input any) (any, error) {
			close(started)
			select {
			case <-rc.Done():
				return nil, rc.Err()
			case <-time.After(5 * time.Second):
				return nil, nil
			}
		})))

	runID, results, err := ac.Invoke(context.Background(), "waiting", nil)
	require.NoError(t, err)

	<-started
	require.NoError(t, ac.Cancel(runID))

	res := <-results
	assert.ErrorIs(t, res.Err, context.Canceled)

	assert.Error(t, ac.Cancel(runID), "settled runs are no longer cancellable")
}
