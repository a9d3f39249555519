// Package startup runs the one-time worker preflight before the bridge
// starts serving.
package startup

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Preflight checks that the worker runtime is reachable, typically with
// "docker inspect <container>". The result is advisory: dispatches fail on
// their own and the liveness probe never depends on the worker, so a failed
// preflight is logged and serving continues.
func Preflight(ctx context.Context, path string, args []string, timeout time.Duration, logger *slog.Logger) bool {
	if strings.TrimSpace(path) == "" {
		return true
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, path, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if logger != nil {
			logger.Warn("worker preflight failed",
				"error", err,
				"output", strings.TrimSpace(string(output)),
			)
		}
		return false
	}
	if logger != nil {
		logger.Info("worker preflight ok")
	}
	return true
}
