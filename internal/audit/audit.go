// Package audit records one event per dispatch milestone so operators can
// reconstruct what the bridge did for any correlation id.
package audit

import (
	"context"
	"log/slog"
)

// Event represents an audit entry for a capability dispatch.
type Event struct {
	// Type describes the event kind (dispatch, resolve_failed, outcome).
	Type string
	// Tool is the canonical capability name, or the raw identifier when
	// resolution failed.
	Tool string
	// CorrelationID links related events.
	CorrelationID string
	// Outcome is the outcome variant or error kind.
	Outcome string
	// Detail provides additional context.
	Detail string
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(_ context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info("audit",
		"type", event.Type,
		"tool", event.Tool,
		"correlation_id", event.CorrelationID,
		"outcome", event.Outcome,
		"detail", event.Detail,
	)
}
