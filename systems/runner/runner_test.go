package runner

import (
	"context"
	"testing"
	"time"

	"github.com/go-home-io/cmdswitch/mocks"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRunner() providers.IRunnerProvider {
	return NewRunner(&ConstructRunner{
		Logger: mocks.FakeNewLogger(nil),
	})
}

func runOnce(t *testing.T, command string) *providers.RunResult {
	r := getRunner()
	select {
	case res, ok := <-r.Run(context.Background(), command):
		require.True(t, ok, "channel closed without result")
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("command didn't finish")
	}

	return nil
}

// Tests output detection.
func TestRunOutput(t *testing.T) {
	data := []struct {
		cmd       string
		hasOutput bool
		isError   bool
	}{
		{cmd: "echo on", hasOutput: true, isError: false},
		{cmd: "true", hasOutput: false, isError: false},
		{cmd: "echo failed >&2", hasOutput: false, isError: true},
		{cmd: "echo on; echo failed >&2", hasOutput: true, isError: true},
		{cmd: "exit 3", hasOutput: false, isError: true},
		{cmd: "echo on; exit 1", hasOutput: true, isError: true},
		{cmd: "ping_nowhere_binary_which_does_not_exist", hasOutput: false, isError: true},
	}

	for _, v := range data {
		res := runOnce(t, v.cmd)
		assert.Equal(t, v.hasOutput, res.HasOutput, v.cmd)
		assert.Equal(t, v.isError, res.ErrorOccurred, v.cmd)
	}
}

// Tests that stderr is captured.
func TestRunStderr(t *testing.T) {
	res := runOnce(t, "echo failed >&2")
	assert.Equal(t, "failed", res.Stderr)
	assert.Nil(t, res.Err)
}

// Tests that result is delivered exactly once.
func TestRunSingleResult(t *testing.T) {
	c := getRunner().Run(context.Background(), "echo on")
	res, ok := <-c
	require.True(t, ok)
	require.NotNil(t, res)

	_, ok = <-c
	assert.False(t, ok, "second result")
}

// Tests that Run doesn't block while command is running.
func TestRunAsync(t *testing.T) {
	start := time.Now()
	c := getRunner().Run(context.Background(), "sleep 1")
	assert.True(t, time.Since(start) < 500*time.Millisecond, "run blocked")

	res := <-c
	assert.False(t, res.ErrorOccurred)
}

// Tests shutdown cancellation.
func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := getRunner().Run(ctx, "sleep 10")
	cancel()

	select {
	case res := <-c:
		assert.True(t, res.ErrorOccurred)
	case <-time.After(5 * time.Second):
		t.Fatal("command wasn't killed")
	}
}

// Tests that cancellation kills child processes too.
func TestRunCancelChildren(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := getRunner().Run(ctx, "sleep 10 && echo done")
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	cancel()

	select {
	case res := <-c:
		assert.True(t, res.ErrorOccurred)
		assert.False(t, res.HasOutput)
		assert.True(t, time.Since(start) < pipesWaitDelay, "children weren't killed")
	case <-time.After(5 * time.Second):
		t.Fatal("command wasn't killed")
	}
}
