// Package worker launches one-shot subprocesses inside the worker runtime
// and enforces the per-call resource bounds: a wall-clock timeout and a
// ceiling on buffered output.
package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/taddiemason/Gmail-MCP-Server/internal/codec"
	"github.com/taddiemason/Gmail-MCP-Server/internal/protocol"
)

// Command describes how to reach the worker runtime. The arguments are passed
// argv-style; no shell ever interprets the invocation payload.
type Command struct {
	// Path is the executable, typically "docker".
	Path string
	// Args are the fixed arguments, e.g. ["exec","-i","gmail-mcp","python","/app/tool_runner.py"].
	Args []string
	// Env adds environment variables for the subprocess, notably the
	// access-token variable read by the worker's credential accessor.
	Env map[string]string
}

// Invoker runs one encoded invocation against the worker runtime.
type Invoker interface {
	// Invoke executes the invocation and returns the raw subprocess result.
	// The error is non-nil only when the subprocess could not be launched.
	Invoke(ctx context.Context, inv codec.Invocation, timeout time.Duration) (protocol.ExecResult, error)
}

// Driver is the subprocess-backed Invoker. One subprocess per call; nothing
// is shared between calls.
type Driver struct {
	command        Command
	defaultTimeout time.Duration
	maxOutputBytes int64
	logger         *slog.Logger
}

// NewDriver builds a Driver.
func NewDriver(command Command, defaultTimeout time.Duration, maxOutputBytes int64, logger *slog.Logger) (*Driver, error) {
	if command.Path == "" {
		return nil, fmt.Errorf("worker command path is empty")
	}
	if defaultTimeout <= 0 {
		defaultTimeout = 5 * time.Minute
	}
	if maxOutputBytes <= 0 {
		maxOutputBytes = 10 << 20
	}
	return &Driver{
		command:        command,
		defaultTimeout: defaultTimeout,
		maxOutputBytes: maxOutputBytes,
		logger:         logger,
	}, nil
}

// Invoke writes the encoded invocation to the subprocess stdin and collects
// stdout and stderr into size-capped buffers. Exceeding the timeout or the
// output ceiling terminates the subprocess; the flags on the returned result
// record which bound was hit.
func (d *Driver) Invoke(ctx context.Context, inv codec.Invocation, timeout time.Duration) (protocol.ExecResult, error) {
	if timeout <= 0 {
		timeout = d.defaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := codec.Encode(inv.Tool, inv.Schema, inv.Arguments)
	if err != nil {
		return protocol.ExecResult{}, err
	}

	cmd := exec.CommandContext(runCtx, d.command.Path, d.command.Args...)
	cmd.Stdin = bytes.NewReader(payload)

	stdout := newCappedBuffer(d.maxOutputBytes, cancel)
	stderr := newCappedBuffer(d.maxOutputBytes, cancel)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	cmd.Env = os.Environ()
	for key, value := range d.command.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	// Guarantees Wait returns shortly after the kill even if the worker
	// leaked the pipes to a grandchild.
	cmd.WaitDelay = 5 * time.Second

	started := time.Now()
	runErr := cmd.Run()

	res := protocol.ExecResult{
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		ExitCode:  -1,
		TimedOut:  errors.Is(runCtx.Err(), context.DeadlineExceeded),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if d.logger != nil {
		d.logger.Debug("worker invocation finished",
			"tool", inv.Tool,
			"exit_code", res.ExitCode,
			"duration", time.Since(started),
			"timed_out", res.TimedOut,
			"truncated", res.Truncated,
		)
	}

	if runErr != nil && cmd.ProcessState == nil && !res.TimedOut && !res.Truncated {
		return res, fmt.Errorf("launch worker process: %w", runErr)
	}
	return res, nil
}
