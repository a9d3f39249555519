package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taddiemason/Gmail-MCP-Server/internal/codec"
)

func shellDriver(t *testing.T, script string, maxOutput int64, env map[string]string) *Driver {
	t.Helper()
	driver, err := NewDriver(Command{
		Path: "/bin/sh",
		Args: []string{"-c", script},
		Env:  env,
	}, 30*time.Second, maxOutput, nil)
	require.NoError(t, err)
	return driver
}

func TestInvokeDeliversPayloadOnStdin(t *testing.T) {
	driver := shellDriver(t, "cat", 1<<20, nil)

	args := map[string]any{"body": "She said \"hi\" \n twice", "max_results": 5}
	res, err := driver.Invoke(context.Background(), codec.Invocation{
		Tool:      "gmail_send_message",
		Schema:    "SendEmailInput",
		Arguments: args,
	}, 0)
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)

	// The worker sees the invocation exactly as encoded.
	decoded, err := codec.Decode(res.Stdout)
	require.NoError(t, err)
	assert.Equal(t, "gmail_send_message", decoded.Tool)
	assert.Equal(t, "SendEmailInput", decoded.Schema)
	assert.Equal(t, "She said \"hi\" \n twice", decoded.Arguments["body"])
}

func TestInvokeCapturesExitCodeAndStderr(t *testing.T) {
	driver := shellDriver(t, "echo boom >&2; exit 3", 1<<20, nil)

	res, err := driver.Invoke(context.Background(), codec.Invocation{Tool: "gmail_list_labels"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom\n", string(res.Stderr))
	assert.False(t, res.TimedOut)
	assert.False(t, res.Truncated)
}

func TestInvokeTimeoutKillsProcess(t *testing.T) {
	driver := shellDriver(t, "sleep 30", 1<<20, nil)

	started := time.Now()
	res, err := driver.Invoke(context.Background(), codec.Invocation{Tool: "gmail_list_labels"}, 150*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.Less(t, time.Since(started), 10*time.Second)
}

func TestInvokeOutputCeiling(t *testing.T) {
	driver := shellDriver(t, "yes 0123456789", 4096, nil)

	started := time.Now()
	res, err := driver.Invoke(context.Background(), codec.Invocation{Tool: "gmail_list_labels"}, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.False(t, res.TimedOut)
	assert.LessOrEqual(t, len(res.Stdout), 4096)
	assert.Less(t, time.Since(started), 10*time.Second)
}

func TestInvokeCallerCancelPropagates(t *testing.T) {
	driver := shellDriver(t, "sleep 30", 1<<20, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	started := time.Now()
	res, err := driver.Invoke(ctx, codec.Invocation{Tool: "gmail_list_labels"}, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, res.TimedOut)
	assert.NotEqual(t, 0, res.ExitCode)
	assert.Less(t, time.Since(started), 10*time.Second)
}

func TestInvokePassesConfiguredEnv(t *testing.T) {
	driver := shellDriver(t, `printf '%s' "$GMAIL_ACCESS_TOKEN"`, 1<<20, map[string]string{
		"GMAIL_ACCESS_TOKEN": "ya29.test-token",
	})

	res, err := driver.Invoke(context.Background(), codec.Invocation{Tool: "gmail_list_labels"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "ya29.test-token", string(res.Stdout))
}

func TestInvokeLaunchFailure(t *testing.T) {
	driver, err := NewDriver(Command{Path: "/nonexistent/worker-binary"}, time.Second, 1<<20, nil)
	require.NoError(t, err)

	_, err = driver.Invoke(context.Background(), codec.Invocation{Tool: "gmail_list_labels"}, 0)
	require.Error(t, err)
}

func TestNewDriverRequiresCommand(t *testing.T) {
	_, err := NewDriver(Command{}, time.Second, 1024, nil)
	require.Error(t, err)
}
